package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jacentio/sheetstore/ingest"
	"github.com/jacentio/sheetstore/sheet"
	"github.com/jacentio/sheetstore/transform"
)

// Store owns a sheet tree and persists it after every mutation.
type Store struct {
	persister Persister
	fetcher   Fetcher
	config    Config

	mu       sync.Mutex
	tree     sheet.Tree
	loadGen  uint64
	inflight int
	status   Status
}

// Status describes the most recent Load.
type Status struct {
	// Loading is true while at least one Load is fetching.
	Loading bool

	// Err is the error of the last finished Load, or nil if it succeeded.
	Err error

	// LoadedAt is when the tree was last replaced by a Load. Zero if never.
	LoadedAt time.Time
}

// New creates a Store with an empty tree. Call Initialize to restore the last snapshot.
// A nil persister disables persistence; a nil fetcher disables Load.
func New(persister Persister, fetcher Fetcher, config Config) *Store {
	config.validate()
	if persister == nil {
		persister = nopPersister{}
	}
	return &Store{
		persister: persister,
		fetcher:   fetcher,
		config:    config,
		tree:      sheet.Tree{},
	}
}

// Initialize restores the persisted snapshot, or an empty tree if there is none
// or it cannot be read.
func (s *Store) Initialize(ctx context.Context) sheet.Tree {
	tree, found, err := s.persister.Load(ctx)
	if err != nil {
		s.config.Logger.Warn("failed to restore sheet snapshot",
			"error", &PersistenceError{Op: "load", Err: err},
		)
		found = false
	}
	if !found {
		tree = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree = sheet.Normalize(tree)

	s.config.Logger.Info("sheet initialized",
		"restored", found,
		"topics", len(s.tree),
		"questions", s.tree.QuestionCount(),
	)
	return s.tree.Clone()
}

// Tree returns a copy of the current tree.
func (s *Store) Tree() sheet.Tree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Clone()
}

// Progress returns the solved/total counts of the whole tree.
func (s *Store) Progress() sheet.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Progress()
}

// Status returns the state of the most recent Load.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.status
	st.Loading = s.inflight > 0
	return st
}

// Replace swaps the whole tree for tree and persists it.
func (s *Store) Replace(ctx context.Context, tree sheet.Tree) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(ctx, sheet.Normalize(tree))
}

// --- Loading ---

// Load fetches the payload at url (or Config.SourceURL when url is empty),
// transforms it and replaces the tree. On any error the tree is unchanged.
func (s *Store) Load(ctx context.Context, url string) error {
	if s.fetcher == nil {
		return ErrNoFetcher
	}
	if url == "" {
		url = s.config.SourceURL
	}
	if url == "" {
		return ErrNoSource
	}

	gen := s.beginLoad()

	fetchCtx := ctx
	if s.config.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.config.FetchTimeout)
		defer cancel()
	}

	raw, err := s.fetcher.Fetch(fetchCtx, url)
	if err != nil {
		if !errors.Is(err, ingest.ErrTransport) {
			err = &ingest.TransportError{URL: url, Err: err}
		}
		return s.endLoad(gen, err)
	}
	return s.finishLoad(ctx, gen, raw)
}

// LoadPayload transforms an already fetched payload and replaces the tree.
// It takes part in the same supersession order as Load.
func (s *Store) LoadPayload(ctx context.Context, raw []byte) error {
	gen := s.beginLoad()
	return s.finishLoad(ctx, gen, raw)
}

func (s *Store) beginLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadGen++
	s.inflight++
	return s.loadGen
}

// endLoad records the outcome of a load that did not commit.
func (s *Store) endLoad(gen uint64, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if gen == s.loadGen {
		s.status.Err = err
	}
	s.config.Logger.Warn("sheet load failed", "generation", gen, "error", err)
	return err
}

func (s *Store) finishLoad(ctx context.Context, gen uint64, raw []byte) error {
	p, err := transform.Decode(raw)
	if err != nil {
		return s.endLoad(gen, err)
	}
	tree, err := transform.Transform(p, s.config.Reporter)
	if err != nil {
		return s.endLoad(gen, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if gen != s.loadGen {
		s.config.Logger.Info("discarding superseded sheet load",
			"generation", gen,
			"latest", s.loadGen,
		)
		return ErrSuperseded
	}

	s.commit(ctx, tree)
	s.status.Err = nil
	s.status.LoadedAt = time.Now()

	s.config.Logger.Info("sheet loaded",
		"generation", gen,
		"topics", len(tree),
		"questions", tree.QuestionCount(),
	)
	return nil
}

// --- Topics ---

// AddTopic appends a topic with one empty "General" subtopic and returns it.
// Titles are not de-duplicated.
func (s *Store) AddTopic(ctx context.Context, title string) sheet.Topic {
	topic := sheet.NewTopic(s.config.IDs.NewID(KindTopic), title, s.config.IDs.NewID(KindSubTopic))
	s.mutate(ctx, func(t sheet.Tree) (sheet.Tree, error) {
		return sheet.AddTopic(t, topic), nil
	})
	return topic
}

// UpdateTopic renames a topic.
func (s *Store) UpdateTopic(ctx context.Context, topicID, title string) {
	s.mutate(ctx, func(t sheet.Tree) (sheet.Tree, error) {
		return sheet.UpdateTopic(t, topicID, title), nil
	})
}

// DeleteTopic removes a topic and everything under it.
func (s *Store) DeleteTopic(ctx context.Context, topicID string) {
	s.mutate(ctx, func(t sheet.Tree) (sheet.Tree, error) {
		return sheet.DeleteTopic(t, topicID), nil
	})
}

// ReorderTopics moves the topic at from to position to.
func (s *Store) ReorderTopics(ctx context.Context, from, to int) error {
	return s.mutate(ctx, func(t sheet.Tree) (sheet.Tree, error) {
		return sheet.ReorderTopics(t, from, to)
	})
}

// --- SubTopics ---

// AddSubTopic appends an empty subtopic to a topic. ok is false if the topic does not exist.
func (s *Store) AddSubTopic(ctx context.Context, topicID, title string) (st sheet.SubTopic, ok bool) {
	st = sheet.NewSubTopic(s.config.IDs.NewID(KindSubTopic), title)
	s.mutate(ctx, func(t sheet.Tree) (sheet.Tree, error) {
		_, ok = t.FindTopic(topicID)
		return sheet.AddSubTopic(t, topicID, st), nil
	})
	return st, ok
}

// UpdateSubTopic renames a subtopic.
func (s *Store) UpdateSubTopic(ctx context.Context, topicID, subTopicID, title string) {
	s.mutate(ctx, func(t sheet.Tree) (sheet.Tree, error) {
		return sheet.UpdateSubTopic(t, topicID, subTopicID, title), nil
	})
}

// DeleteSubTopic removes a subtopic and its questions.
func (s *Store) DeleteSubTopic(ctx context.Context, topicID, subTopicID string) {
	s.mutate(ctx, func(t sheet.Tree) (sheet.Tree, error) {
		return sheet.DeleteSubTopic(t, topicID, subTopicID), nil
	})
}

// ReorderSubTopics moves a subtopic within its topic.
func (s *Store) ReorderSubTopics(ctx context.Context, topicID string, from, to int) error {
	return s.mutate(ctx, func(t sheet.Tree) (sheet.Tree, error) {
		return sheet.ReorderSubTopics(t, topicID, from, to)
	})
}

// --- Questions ---

// AddQuestion appends a question built from in. ok is false if the subtopic does not exist.
func (s *Store) AddQuestion(ctx context.Context, topicID, subTopicID string, in sheet.QuestionInput) (q sheet.Question, ok bool) {
	q = sheet.NewQuestion(s.config.IDs.NewID(KindQuestion), in)
	s.mutate(ctx, func(t sheet.Tree) (sheet.Tree, error) {
		_, ok = t.FindSubTopic(topicID, subTopicID)
		return sheet.AddQuestion(t, topicID, subTopicID, q), nil
	})
	return q, ok
}

// UpdateQuestion applies patch to a question.
func (s *Store) UpdateQuestion(ctx context.Context, topicID, subTopicID, questionID string, patch sheet.QuestionPatch) {
	s.mutate(ctx, func(t sheet.Tree) (sheet.Tree, error) {
		return sheet.UpdateQuestion(t, topicID, subTopicID, questionID, patch), nil
	})
}

// DeleteQuestion removes a question.
func (s *Store) DeleteQuestion(ctx context.Context, topicID, subTopicID, questionID string) {
	s.mutate(ctx, func(t sheet.Tree) (sheet.Tree, error) {
		return sheet.DeleteQuestion(t, topicID, subTopicID, questionID), nil
	})
}

// ToggleQuestionSolved flips the solved flag of a question and returns the new value.
// ok is false if the question does not exist.
func (s *Store) ToggleQuestionSolved(ctx context.Context, topicID, subTopicID, questionID string) (solved, ok bool) {
	s.mutate(ctx, func(t sheet.Tree) (sheet.Tree, error) {
		next := sheet.ToggleQuestionSolved(t, topicID, subTopicID, questionID)
		var q sheet.Question
		if q, ok = next.FindQuestion(topicID, subTopicID, questionID); ok {
			solved = q.Solved
		}
		return next, nil
	})
	return solved, ok
}

// ReorderQuestions moves a question within its subtopic.
func (s *Store) ReorderQuestions(ctx context.Context, topicID, subTopicID string, from, to int) error {
	return s.mutate(ctx, func(t sheet.Tree) (sheet.Tree, error) {
		return sheet.ReorderQuestions(t, topicID, subTopicID, from, to)
	})
}

// --- commit ---

// mutate computes the next tree under the lock and commits it unless fn fails.
func (s *Store) mutate(ctx context.Context, fn func(sheet.Tree) (sheet.Tree, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.tree)
	if err != nil {
		return err
	}
	s.commit(ctx, next)
	return nil
}

// commit installs tree and writes it through. Caller must hold s.mu.
func (s *Store) commit(ctx context.Context, tree sheet.Tree) {
	s.tree = tree
	if err := s.persister.Save(ctx, tree); err != nil {
		s.config.Logger.Warn("failed to persist sheet snapshot",
			"error", &PersistenceError{Op: "save", Err: err},
			"topics", len(tree),
		)
	}
}
