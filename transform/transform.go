package transform

import (
	"github.com/jacentio/sheetstore/internal/keys"
	"github.com/jacentio/sheetstore/sheet"
)

// topicBuilder accumulates the subtopics of one topic in first-seen order.
type topicBuilder struct {
	topic  sheet.Topic
	subs   []sheet.SubTopic
	byName map[string]int // subtopic name -> index into subs
}

// group returns the subtopic named name, creating it at the end if needed.
func (b *topicBuilder) group(name string, ids *keys.Set) *sheet.SubTopic {
	if i, ok := b.byName[name]; ok {
		return &b.subs[i]
	}
	b.byName[name] = len(b.subs)
	b.subs = append(b.subs, sheet.NewSubTopic(ids.Claim(keys.SubTopicID(b.topic.Title, name)), name))
	return &b.subs[len(b.subs)-1]
}

// Transform builds the ordered tree described by p. Unplaceable records are
// reported to r and skipped. The only error is a *ValidationError from p.Validate.
func Transform(p *Payload, r Reporter) (sheet.Tree, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		r = Discard
	}
	cfg := p.Sheet.Config

	// 1. Index records by id
	records := make(map[string]*Record, len(p.Questions))
	for i := range p.Questions {
		records[p.Questions[i].ID] = &p.Questions[i]
	}

	// 2. One builder per topic, in topicOrder
	topicIDs := keys.NewSet()
	subTopicIDs := keys.NewSet()
	builders := make([]*topicBuilder, 0, len(cfg.TopicOrder))
	byTopic := make(map[string]*topicBuilder, len(cfg.TopicOrder))
	for _, name := range cfg.TopicOrder {
		if _, dup := byTopic[name]; dup {
			r.Report(Warning{Kind: DuplicateTopic, Topic: name})
			continue
		}
		b := &topicBuilder{
			topic:  sheet.Topic{ID: topicIDs.Claim(keys.TopicID(name)), Title: name},
			byName: make(map[string]int),
		}
		builders = append(builders, b)
		byTopic[name] = b
	}

	// 3. Walk questionOrder, grouping into subtopics on demand
	placed := make(map[string]struct{}, len(cfg.QuestionOrder))
	for _, id := range cfg.QuestionOrder {
		rec, ok := records[id]
		if !ok {
			r.Report(Warning{Kind: UnknownQuestion, QuestionID: id})
			continue
		}
		b, ok := byTopic[rec.Topic]
		if !ok {
			r.Report(Warning{Kind: UnknownTopic, QuestionID: id, Topic: rec.Topic})
			continue
		}
		if _, dup := placed[id]; dup {
			r.Report(Warning{Kind: DuplicateQuestion, QuestionID: id, Topic: rec.Topic})
			continue
		}
		placed[id] = struct{}{}

		name := rec.SubTopic
		if name == "" {
			name = sheet.DefaultSubTopicTitle
		}
		st := b.group(name, subTopicIDs)
		st.Questions = append(st.Questions, question(rec, r))
	}

	// 4. Materialize
	tree := make(sheet.Tree, 0, len(builders))
	for _, b := range builders {
		topic := b.topic
		topic.SubTopics = b.subs
		if topic.SubTopics == nil {
			topic.SubTopics = []sheet.SubTopic{}
		}
		tree = append(tree, topic)
	}
	return tree, nil
}

// question converts a record, applying the field fallbacks.
func question(rec *Record, r Reporter) sheet.Question {
	def := rec.Definition
	if def == nil {
		def = &QuestionDef{}
	}

	q := sheet.Question{
		ID:         rec.ID,
		Title:      firstNonEmpty(rec.Title, def.Name, sheet.DefaultQuestionTitle),
		Link:       firstNonEmpty(def.ProblemURL, rec.Resource),
		Difficulty: sheet.DefaultDifficulty,
		Platform:   firstNonEmpty(def.Platform, sheet.DefaultPlatform),
		Solved:     rec.IsSolved,
	}
	if def.Difficulty != "" {
		d, ok := sheet.ParseDifficulty(def.Difficulty)
		if !ok {
			r.Report(Warning{Kind: UnknownDifficulty, QuestionID: rec.ID, Topic: rec.Topic, Value: def.Difficulty})
		}
		q.Difficulty = d
	}
	return q
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
