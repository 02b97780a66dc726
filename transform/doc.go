// Package transform rebuilds an ordered sheet tree from the flat payload
// served by the sheet API.
//
// The payload carries two order lists in its sheet config. topicOrder fixes
// the set and order of topics, including topics that end up with no
// questions. questionOrder fixes the order of questions across the whole
// dataset. Subtopics are created on demand, in the order their first question
// is seen while walking questionOrder; a topic with no matched questions has
// no subtopics at all.
//
// Records that cannot be placed (an id in questionOrder with no record, or a
// record whose topic is not in topicOrder) are skipped and reported to a
// [Reporter]. They never abort the transform.
package transform
