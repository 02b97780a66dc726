package transform_test

import (
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/jacentio/sheetstore/sheet"
	"github.com/jacentio/sheetstore/transform"
)

func payload(topicOrder, questionOrder []string, records ...transform.Record) *transform.Payload {
	if records == nil {
		records = []transform.Record{}
	}
	return &transform.Payload{
		Sheet: &transform.Sheet{Config: &transform.SheetConfig{
			TopicOrder:    topicOrder,
			QuestionOrder: questionOrder,
		}},
		Questions: records,
	}
}

// layout flattens a tree into ordered (topic, subtopic, questions) triples.
func layout(tree sheet.Tree) [][]string {
	var out [][]string
	for _, topic := range tree {
		row := []string{topic.Title}
		for _, st := range topic.SubTopics {
			row = append(row, st.Title+":")
			for _, q := range st.Questions {
				row = append(row, q.ID)
			}
		}
		out = append(out, row)
	}
	return out
}

func TestTransform_TopicOrderWins(t *testing.T) {
	p := payload([]string{"A", "B"}, []string{"q2", "q1"},
		transform.Record{ID: "q1", Topic: "A"},
		transform.Record{ID: "q2", Topic: "B"},
	)

	tree, err := transform.Transform(p, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := [][]string{
		{"A", "General:", "q1"},
		{"B", "General:", "q2"},
	}
	if !reflect.DeepEqual(layout(tree), expected) {
		t.Errorf("expected %v, got %v", expected, layout(tree))
	}
}

func TestTransform_OrphanIDIsSkipped(t *testing.T) {
	records := []transform.Record{
		{ID: "q1", Topic: "A"},
		{ID: "q2", Topic: "A", SubTopic: "S"},
	}

	var c transform.Collector
	with, err := transform.Transform(payload([]string{"A"}, []string{"q1", "ghost", "q2"}, records...), &c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	without, err := transform.Transform(payload([]string{"A"}, []string{"q1", "q2"}, records...), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(with, without) {
		t.Errorf("orphan changed the result:\n with:    %+v\n without: %+v", with, without)
	}
	if c.Count(transform.UnknownQuestion) != 1 || c.Warnings[0].QuestionID != "ghost" {
		t.Errorf("expected one unknown_question warning for 'ghost', got %+v", c.Warnings)
	}
}

func TestTransform_UnknownTopicIsSkipped(t *testing.T) {
	var c transform.Collector
	tree, err := transform.Transform(payload([]string{"A"}, []string{"q1", "q2"},
		transform.Record{ID: "q1", Topic: "Z"},
		transform.Record{ID: "q2", Topic: "A"},
	), &c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tree.QuestionCount() != 1 {
		t.Errorf("expected 1 question, got %d", tree.QuestionCount())
	}
	if c.Count(transform.UnknownTopic) != 1 || c.Warnings[0].Topic != "Z" {
		t.Errorf("expected unknown_topic warning for Z, got %+v", c.Warnings)
	}
}

func TestTransform_EmptyTopicHasNoSubTopics(t *testing.T) {
	tree, err := transform.Transform(payload([]string{"A", "Empty"}, []string{"q1"},
		transform.Record{ID: "q1", Topic: "A"},
	), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tree) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(tree))
	}
	if tree[1].SubTopics == nil || len(tree[1].SubTopics) != 0 {
		t.Errorf("expected empty non-nil subtopic list, got %#v", tree[1].SubTopics)
	}
}

func TestTransform_SubTopicsInFirstSeenOrder(t *testing.T) {
	tree, err := transform.Transform(payload([]string{"A"}, []string{"q1", "q2", "q3", "q4"},
		transform.Record{ID: "q1", Topic: "A", SubTopic: "Zeta"},
		transform.Record{ID: "q2", Topic: "A", SubTopic: "Alpha"},
		transform.Record{ID: "q3", Topic: "A", SubTopic: "Zeta"},
		transform.Record{ID: "q4", Topic: "A"},
	), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := [][]string{{"A", "Zeta:", "q1", "q3", "Alpha:", "q2", "General:", "q4"}}
	if !reflect.DeepEqual(layout(tree), expected) {
		t.Errorf("expected %v, got %v", expected, layout(tree))
	}
}

func TestTransform_Duplicates(t *testing.T) {
	var c transform.Collector
	tree, err := transform.Transform(payload([]string{"A", "A"}, []string{"q1", "q1"},
		transform.Record{ID: "q1", Topic: "A"},
	), &c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tree) != 1 {
		t.Errorf("expected 1 topic, got %d", len(tree))
	}
	if tree.QuestionCount() != 1 {
		t.Errorf("expected 1 question, got %d", tree.QuestionCount())
	}
	if c.Count(transform.DuplicateTopic) != 1 || c.Count(transform.DuplicateQuestion) != 1 {
		t.Errorf("unexpected warnings: %+v", c.Warnings)
	}
}

func TestTransform_IDs(t *testing.T) {
	tree, err := transform.Transform(payload([]string{"Linked List", "linked  list"}, []string{"q1", "q2"},
		transform.Record{ID: "q1", Topic: "Linked List", SubTopic: "Fast Slow"},
		transform.Record{ID: "q2", Topic: "linked  list", SubTopic: "fast slow"},
	), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tree[0].ID != "topic-linked-list" {
		t.Errorf("expected 'topic-linked-list', got %q", tree[0].ID)
	}
	if tree[1].ID != "topic-linked-list-2" {
		t.Errorf("expected colliding slug to get a suffix, got %q", tree[1].ID)
	}
	if tree[0].SubTopics[0].ID != "subtopic-linked-list-fast-slow" {
		t.Errorf("unexpected subtopic id %q", tree[0].SubTopics[0].ID)
	}
	if tree[1].SubTopics[0].ID != "subtopic-linked-list-fast-slow-2" {
		t.Errorf("unexpected subtopic id %q", tree[1].SubTopics[0].ID)
	}
	if tree[0].SubTopics[0].Questions[0].ID != "q1" {
		t.Errorf("expected question id to come from the record, got %q", tree[0].SubTopics[0].Questions[0].ID)
	}
}

func TestTransform_FieldDefaults(t *testing.T) {
	tests := []struct {
		name     string
		rec      transform.Record
		expected sheet.Question
	}{
		{
			name:     "bare record",
			rec:      transform.Record{ID: "q", Topic: "A"},
			expected: sheet.Question{ID: "q", Title: "Untitled Question", Difficulty: sheet.Easy, Platform: "Unknown"},
		},
		{
			name: "title prefers record",
			rec: transform.Record{ID: "q", Topic: "A", Title: "Mine",
				Definition: &transform.QuestionDef{Name: "Theirs"}},
			expected: sheet.Question{ID: "q", Title: "Mine", Difficulty: sheet.Easy, Platform: "Unknown"},
		},
		{
			name:     "title falls back to definition name",
			rec:      transform.Record{ID: "q", Topic: "A", Definition: &transform.QuestionDef{Name: "Theirs"}},
			expected: sheet.Question{ID: "q", Title: "Theirs", Difficulty: sheet.Easy, Platform: "Unknown"},
		},
		{
			name: "link prefers problem url",
			rec: transform.Record{ID: "q", Topic: "A", Resource: "https://r",
				Definition: &transform.QuestionDef{ProblemURL: "https://p"}},
			expected: sheet.Question{ID: "q", Title: "Untitled Question", Link: "https://p", Difficulty: sheet.Easy, Platform: "Unknown"},
		},
		{
			name:     "link falls back to resource",
			rec:      transform.Record{ID: "q", Topic: "A", Resource: "https://r"},
			expected: sheet.Question{ID: "q", Title: "Untitled Question", Link: "https://r", Difficulty: sheet.Easy, Platform: "Unknown"},
		},
		{
			name: "definition fields",
			rec: transform.Record{ID: "q", Topic: "A", IsSolved: true,
				Definition: &transform.QuestionDef{Difficulty: "Hard", Platform: "codeforces"}},
			expected: sheet.Question{ID: "q", Title: "Untitled Question", Difficulty: sheet.Hard, Platform: "codeforces", Solved: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := transform.Transform(payload([]string{"A"}, []string{"q"}, tt.rec), nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			q := tree[0].SubTopics[0].Questions[0]
			if q != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, q)
			}
		})
	}
}

func TestTransform_UnknownDifficulty(t *testing.T) {
	var c transform.Collector
	tree, err := transform.Transform(payload([]string{"A"}, []string{"q"},
		transform.Record{ID: "q", Topic: "A", Definition: &transform.QuestionDef{Difficulty: "brutal"}},
	), &c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d := tree[0].SubTopics[0].Questions[0].Difficulty; d != sheet.Easy {
		t.Errorf("expected Easy, got %q", d)
	}
	if c.Count(transform.UnknownDifficulty) != 1 || c.Warnings[0].Value != "brutal" {
		t.Errorf("unexpected warnings: %+v", c.Warnings)
	}
}

func TestTransform_Validation(t *testing.T) {
	tests := []struct {
		name  string
		p     *transform.Payload
		field string
	}{
		{"nil payload", nil, "payload"},
		{"no sheet", &transform.Payload{Questions: []transform.Record{}}, "sheet.config"},
		{"no config", &transform.Payload{Sheet: &transform.Sheet{}, Questions: []transform.Record{}}, "sheet.config"},
		{"no questions", &transform.Payload{Sheet: &transform.Sheet{Config: &transform.SheetConfig{
			TopicOrder: []string{}, QuestionOrder: []string{},
		}}}, "questions"},
		{"no topicOrder", payload(nil, []string{}), "sheet.config.topicOrder"},
		{"no questionOrder", payload([]string{}, nil), "sheet.config.questionOrder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := transform.Transform(tt.p, nil)

			var ve *transform.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, ve.Field)
			}
			if !errors.Is(err, transform.ErrInvalidPayload) {
				t.Error("expected errors.Is(err, ErrInvalidPayload)")
			}
		})
	}
}

func TestDecode_Envelope(t *testing.T) {
	raw, err := os.ReadFile("testdata/sheet.json")
	if err != nil {
		t.Fatal(err)
	}

	p, err := transform.Decode(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var c transform.Collector
	tree, err := transform.Transform(p, &c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := [][]string{
		{"Arrays", "General:", "q3", "q2", "Sliding Window:", "q1"},
		{"Linked List", "Fast and Slow:", "q4"},
		{"Graphs"},
	}
	if !reflect.DeepEqual(layout(tree), expected) {
		t.Errorf("expected %v, got %v", expected, layout(tree))
	}

	q2, _ := tree.FindQuestion("topic-arrays", "subtopic-arrays-general", "q2")
	expectedQ2 := sheet.Question{ID: "q2", Title: "Custom Title", Link: "https://youtu.be/abc", Difficulty: sheet.Hard, Platform: "Unknown", Solved: true}
	if q2 != expectedQ2 {
		t.Errorf("expected %+v, got %+v", expectedQ2, q2)
	}

	if c.Count(transform.UnknownQuestion) != 1 || c.Count(transform.UnknownTopic) != 1 {
		t.Errorf("unexpected warnings: %+v", c.Warnings)
	}
}

func TestDecode_DirectBody(t *testing.T) {
	raw := []byte(`{"sheet":{"config":{"topicOrder":["A"],"questionOrder":["q1"]}},"questions":[{"_id":"q1","topic":"A"}]}`)

	p, err := transform.Decode(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Questions) != 1 || p.Questions[0].ID != "q1" {
		t.Errorf("unexpected payload: %+v", p)
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
	}{
		{"not json", `nope`, "payload"},
		{"array", `[]`, "payload"},
		{"neither data nor sheet", `{"status":{}}`, "payload"},
		{"null data", `{"data":null}`, "payload"},
		{"missing config", `{"data":{"sheet":{},"questions":[]}}`, "sheet.config"},
		{"topicOrder not array", `{"sheet":{"config":{"topicOrder":"A","questionOrder":[]}},"questions":[]}`, "data"},
		{"missing questions", `{"sheet":{"config":{"topicOrder":[],"questionOrder":[]}}}`, "questions"},
		{"missing questionOrder", `{"data":{"sheet":{"config":{"topicOrder":[]}},"questions":[]}}`, "sheet.config.questionOrder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := transform.Decode([]byte(tt.raw))

			var ve *transform.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("expected field %q, got %q (%v)", tt.field, ve.Field, err)
			}
		})
	}
}
