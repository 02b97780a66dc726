package sheet

// NewTopic returns a topic holding a single empty "General" subtopic.
func NewTopic(id, title, generalID string) Topic {
	return Topic{
		ID:        id,
		Title:     title,
		SubTopics: []SubTopic{NewSubTopic(generalID, DefaultSubTopicTitle)},
	}
}

// NewSubTopic returns an empty subtopic.
func NewSubTopic(id, title string) SubTopic {
	return SubTopic{ID: id, Title: title, Questions: []Question{}}
}

// NewQuestion returns the question described by in, with defaults applied.
func NewQuestion(id string, in QuestionInput) Question {
	return in.build(id)
}

// --- Topic level ---

// AddTopic appends topic to the end of t.
func AddTopic(t Tree, topic Topic) Tree {
	out := make(Tree, 0, len(t)+1)
	out = append(out, t...)
	return append(out, topic.Clone())
}

// UpdateTopic renames the topic with the given id.
func UpdateTopic(t Tree, topicID, title string) Tree {
	return mapTopic(t, topicID, func(topic Topic) Topic {
		topic.Title = title
		return topic
	})
}

// DeleteTopic removes the topic with the given id together with everything under it.
func DeleteTopic(t Tree, topicID string) Tree {
	return filter(t, func(topic Topic) bool { return topic.ID != topicID })
}

// ReorderTopics moves the topic at from to position to.
func ReorderTopics(t Tree, from, to int) (Tree, error) {
	out, err := Move(t, from, to)
	if err != nil {
		return t, withOp(err, "reorder topics")
	}
	return out, nil
}

// --- SubTopic level ---

// AddSubTopic appends st to the subtopics of the given topic.
func AddSubTopic(t Tree, topicID string, st SubTopic) Tree {
	return mapTopic(t, topicID, func(topic Topic) Topic {
		subs := make([]SubTopic, 0, len(topic.SubTopics)+1)
		subs = append(subs, topic.SubTopics...)
		topic.SubTopics = append(subs, st.Clone())
		return topic
	})
}

// UpdateSubTopic renames a subtopic.
func UpdateSubTopic(t Tree, topicID, subTopicID, title string) Tree {
	return mapSubTopic(t, topicID, subTopicID, func(st SubTopic) SubTopic {
		st.Title = title
		return st
	})
}

// DeleteSubTopic removes a subtopic and all of its questions.
func DeleteSubTopic(t Tree, topicID, subTopicID string) Tree {
	return mapTopic(t, topicID, func(topic Topic) Topic {
		topic.SubTopics = filter(topic.SubTopics, func(st SubTopic) bool { return st.ID != subTopicID })
		return topic
	})
}

// ReorderSubTopics moves the subtopic at from to position to within one topic.
// An unknown topic id leaves t unchanged.
func ReorderSubTopics(t Tree, topicID string, from, to int) (Tree, error) {
	i := topicIndex(t, topicID)
	if i < 0 {
		return t, nil
	}
	subs, err := Move(t[i].SubTopics, from, to)
	if err != nil {
		return t, withOp(err, "reorder subtopics")
	}
	out := append(Tree(nil), t...)
	out[i].SubTopics = subs
	return out, nil
}

// --- Question level ---

// AddQuestion appends q to the given subtopic.
func AddQuestion(t Tree, topicID, subTopicID string, q Question) Tree {
	return mapSubTopic(t, topicID, subTopicID, func(st SubTopic) SubTopic {
		qs := make([]Question, 0, len(st.Questions)+1)
		qs = append(qs, st.Questions...)
		st.Questions = append(qs, q)
		return st
	})
}

// UpdateQuestion applies patch to the given question.
func UpdateQuestion(t Tree, topicID, subTopicID, questionID string, patch QuestionPatch) Tree {
	return mapSubTopic(t, topicID, subTopicID, func(st SubTopic) SubTopic {
		qs := make([]Question, len(st.Questions))
		for i, q := range st.Questions {
			if q.ID == questionID {
				q = patch.apply(q)
			}
			qs[i] = q
		}
		st.Questions = qs
		return st
	})
}

// DeleteQuestion removes a question.
func DeleteQuestion(t Tree, topicID, subTopicID, questionID string) Tree {
	return mapSubTopic(t, topicID, subTopicID, func(st SubTopic) SubTopic {
		st.Questions = filter(st.Questions, func(q Question) bool { return q.ID != questionID })
		return st
	})
}

// ToggleQuestionSolved flips the solved flag of a question.
func ToggleQuestionSolved(t Tree, topicID, subTopicID, questionID string) Tree {
	q, ok := t.FindQuestion(topicID, subTopicID, questionID)
	if !ok {
		return t
	}
	solved := !q.Solved
	return UpdateQuestion(t, topicID, subTopicID, questionID, QuestionPatch{Solved: &solved})
}

// ReorderQuestions moves the question at from to position to within one subtopic.
// An unknown topic or subtopic id leaves t unchanged.
func ReorderQuestions(t Tree, topicID, subTopicID string, from, to int) (Tree, error) {
	i := topicIndex(t, topicID)
	if i < 0 {
		return t, nil
	}
	j := subTopicIndex(t[i], subTopicID)
	if j < 0 {
		return t, nil
	}
	qs, err := Move(t[i].SubTopics[j].Questions, from, to)
	if err != nil {
		return t, withOp(err, "reorder questions")
	}
	out := append(Tree(nil), t...)
	subs := append([]SubTopic(nil), out[i].SubTopics...)
	subs[j].Questions = qs
	out[i].SubTopics = subs
	return out, nil
}

// --- helpers ---

func topicIndex(t Tree, topicID string) int {
	for i, topic := range t {
		if topic.ID == topicID {
			return i
		}
	}
	return -1
}

func subTopicIndex(topic Topic, subTopicID string) int {
	for i, st := range topic.SubTopics {
		if st.ID == subTopicID {
			return i
		}
	}
	return -1
}

// mapTopic returns a new tree with fn applied to the topic matching topicID.
func mapTopic(t Tree, topicID string, fn func(Topic) Topic) Tree {
	out := make(Tree, len(t))
	for i, topic := range t {
		if topic.ID == topicID {
			topic = fn(topic)
		}
		out[i] = topic
	}
	return out
}

// mapSubTopic returns a new tree with fn applied to the matching subtopic.
func mapSubTopic(t Tree, topicID, subTopicID string, fn func(SubTopic) SubTopic) Tree {
	return mapTopic(t, topicID, func(topic Topic) Topic {
		subs := make([]SubTopic, len(topic.SubTopics))
		for i, st := range topic.SubTopics {
			if st.ID == subTopicID {
				st = fn(st)
			}
			subs[i] = st
		}
		topic.SubTopics = subs
		return topic
	})
}

// filter returns a new slice holding the elements of s for which keep is true.
func filter[S ~[]E, E any](s S, keep func(E) bool) S {
	out := make(S, 0, len(s))
	for _, e := range s {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
