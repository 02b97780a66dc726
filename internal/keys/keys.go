// Package keys derives deterministic node ids from source names.
package keys

import (
	"strconv"
	"strings"
	"unicode"
)

// Slug lowercases s and collapses every run of whitespace into a single '-'.
func Slug(s string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// TopicID returns the id of the topic named name, e.g. "topic-linked-list".
func TopicID(name string) string {
	return "topic-" + Slug(name)
}

// SubTopicID returns the id of a subtopic, e.g. "subtopic-arrays-general".
func SubTopicID(topicName, subTopicName string) string {
	return Slug("subtopic-" + topicName + "-" + subTopicName)
}

// Set hands out ids that are unique within one scope. A candidate that was
// already issued gets a numeric suffix ("-2", "-3", ...).
type Set struct {
	seen map[string]struct{}
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{seen: make(map[string]struct{})}
}

// Claim returns candidate, or candidate with the lowest free suffix if it is taken.
func (s *Set) Claim(candidate string) string {
	id := candidate
	for n := 2; ; n++ {
		if _, taken := s.seen[id]; !taken {
			break
		}
		id = candidate + "-" + strconv.Itoa(n)
	}
	s.seen[id] = struct{}{}
	return id
}
