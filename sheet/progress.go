package sheet

// Progress counts solved questions against the total.
type Progress struct {
	Solved int `json:"solved"`
	Total  int `json:"total"`
}

// Percent returns the solved share in [0, 100]. An empty set is 0%.
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Solved) / float64(p.Total) * 100
}

// Complete reports whether every question is solved. An empty set is not complete.
func (p Progress) Complete() bool {
	return p.Total > 0 && p.Solved == p.Total
}

func (p Progress) add(o Progress) Progress {
	return Progress{Solved: p.Solved + o.Solved, Total: p.Total + o.Total}
}

// Progress returns the progress of a subtopic.
func (st SubTopic) Progress() Progress {
	p := Progress{Total: len(st.Questions)}
	for _, q := range st.Questions {
		if q.Solved {
			p.Solved++
		}
	}
	return p
}

// Progress returns the progress across all subtopics of a topic.
func (t Topic) Progress() Progress {
	var p Progress
	for _, st := range t.SubTopics {
		p = p.add(st.Progress())
	}
	return p
}

// Progress returns the progress across the whole sheet.
func (t Tree) Progress() Progress {
	var p Progress
	for _, topic := range t {
		p = p.add(topic.Progress())
	}
	return p
}
