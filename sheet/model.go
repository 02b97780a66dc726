package sheet

import "strings"

// Difficulty is the difficulty label of a question.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Default field values for questions that omit them.
const (
	DefaultSubTopicTitle = "General"
	DefaultQuestionTitle = "Untitled Question"
	DefaultPlatform      = "Unknown"
	DefaultDifficulty    = Easy
)

// ParseDifficulty matches s case-insensitively against the known labels.
// The second return value is false when s is not a known label, in which case
// DefaultDifficulty is returned.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, true
	case "medium":
		return Medium, true
	case "hard":
		return Hard, true
	}
	return DefaultDifficulty, false
}

// Question is a single practice item.
type Question struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Link       string     `json:"link"`
	Difficulty Difficulty `json:"difficulty"`
	Platform   string     `json:"platform"`
	Solved     bool       `json:"solved"`
}

// SubTopic groups questions under a topic. Question order is the display order.
type SubTopic struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Topic is a top-level node of the sheet.
type Topic struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	SubTopics []SubTopic `json:"subTopics"`
}

// Tree is the ordered sequence of topics that makes up a sheet.
type Tree []Topic

// QuestionInput carries the fields of a question being created.
// Zero values fall back to the package defaults.
type QuestionInput struct {
	Title      string
	Link       string
	Difficulty Difficulty
	Platform   string
	Solved     bool
}

// build returns the question for in with the given id and defaults applied.
func (in QuestionInput) build(id string) Question {
	q := Question{
		ID:         id,
		Title:      in.Title,
		Link:       in.Link,
		Difficulty: in.Difficulty,
		Platform:   in.Platform,
		Solved:     in.Solved,
	}
	if q.Title == "" {
		q.Title = DefaultQuestionTitle
	}
	if q.Difficulty == "" {
		q.Difficulty = DefaultDifficulty
	}
	if q.Platform == "" {
		q.Platform = DefaultPlatform
	}
	return q
}

// QuestionPatch is a shallow update of a question. Nil fields are left as they are.
// The id of a question cannot be patched.
type QuestionPatch struct {
	Title      *string
	Link       *string
	Difficulty *Difficulty
	Platform   *string
	Solved     *bool
}

// apply returns q with the non-nil fields of p written over it.
func (p QuestionPatch) apply(q Question) Question {
	if p.Title != nil {
		q.Title = *p.Title
	}
	if p.Link != nil {
		q.Link = *p.Link
	}
	if p.Difficulty != nil {
		q.Difficulty = *p.Difficulty
	}
	if p.Platform != nil {
		q.Platform = *p.Platform
	}
	if p.Solved != nil {
		q.Solved = *p.Solved
	}
	return q
}

// Clone returns a deep copy of t.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for i, topic := range t {
		out[i] = topic.Clone()
	}
	return out
}

// Clone returns a deep copy of t.
func (t Topic) Clone() Topic {
	if t.SubTopics != nil {
		subs := make([]SubTopic, len(t.SubTopics))
		for i, st := range t.SubTopics {
			subs[i] = st.Clone()
		}
		t.SubTopics = subs
	}
	return t
}

// Clone returns a deep copy of st.
func (st SubTopic) Clone() SubTopic {
	if st.Questions != nil {
		st.Questions = append([]Question(nil), st.Questions...)
	}
	return st
}

// Normalize returns a copy of t in which every nil sequence is replaced by an
// empty one, so trees decoded from different snapshot formats compare equal.
func Normalize(t Tree) Tree {
	out := make(Tree, len(t))
	for i, topic := range t {
		subs := make([]SubTopic, len(topic.SubTopics))
		for j, st := range topic.SubTopics {
			qs := make([]Question, len(st.Questions))
			copy(qs, st.Questions)
			st.Questions = qs
			subs[j] = st
		}
		topic.SubTopics = subs
		out[i] = topic
	}
	return out
}

// FindTopic returns the topic with the given id.
func (t Tree) FindTopic(topicID string) (Topic, bool) {
	for _, topic := range t {
		if topic.ID == topicID {
			return topic, true
		}
	}
	return Topic{}, false
}

// FindSubTopic returns the subtopic with the given id under the given topic.
func (t Tree) FindSubTopic(topicID, subTopicID string) (SubTopic, bool) {
	topic, ok := t.FindTopic(topicID)
	if !ok {
		return SubTopic{}, false
	}
	for _, st := range topic.SubTopics {
		if st.ID == subTopicID {
			return st, true
		}
	}
	return SubTopic{}, false
}

// FindQuestion returns the question with the given id under the given subtopic.
func (t Tree) FindQuestion(topicID, subTopicID, questionID string) (Question, bool) {
	st, ok := t.FindSubTopic(topicID, subTopicID)
	if !ok {
		return Question{}, false
	}
	for _, q := range st.Questions {
		if q.ID == questionID {
			return q, true
		}
	}
	return Question{}, false
}

// QuestionCount returns the number of questions reachable from the root.
func (t Tree) QuestionCount() int {
	n := 0
	for _, topic := range t {
		for _, st := range topic.SubTopics {
			n += len(st.Questions)
		}
	}
	return n
}
