package answers

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Any matches every instance in a Filter.
const Any = -1

// Answer is one recorded value.
type Answer struct {
	GroupID        string
	GroupInstance  int
	BlockID        string
	AnswerID       string
	AnswerInstance int
	Value          cty.Value
}

type key struct {
	groupID        string
	groupInstance  int
	blockID        string
	answerID       string
	answerInstance int
}

func keyOf(a Answer) key {
	return key{a.GroupID, a.GroupInstance, a.BlockID, a.AnswerID, a.AnswerInstance}
}

// Store is a read-only snapshot of a respondent's answers. It is safe for
// concurrent use because nothing mutates it after NewStore returns.
type Store struct {
	answers []Answer
	index   map[key]int
}

// NewStore captures a snapshot. When the same answer is given more than once
// the last value wins, matching the append-only store it is copied from.
func NewStore(in ...Answer) *Store {
	s := &Store{index: make(map[key]int, len(in))}
	for _, a := range in {
		if a.Value.Type() == cty.NilType {
			a.Value = cty.NullVal(cty.DynamicPseudoType)
		}
		k := keyOf(a)
		if i, exists := s.index[k]; exists {
			s.answers[i] = a
			continue
		}
		s.index[k] = len(s.answers)
		s.answers = append(s.answers, a)
	}
	return s
}

// Len returns the number of recorded answers.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.answers)
}

// Get returns the value recorded for an exact address.
func (s *Store) Get(groupID, blockID, answerID string, groupInstance, answerInstance int) (cty.Value, bool) {
	if s == nil {
		return cty.NilVal, false
	}
	i, ok := s.index[key{groupID, groupInstance, blockID, answerID, answerInstance}]
	if !ok {
		return cty.NilVal, false
	}
	return s.answers[i].Value, true
}

// Filter selects answers. Empty strings and Any match everything.
type Filter struct {
	GroupID        string
	BlockID        string
	AnswerID       string
	GroupInstance  int
	AnswerInstance int
}

func (f Filter) matches(a Answer) bool {
	return (f.GroupID == "" || f.GroupID == a.GroupID) &&
		(f.BlockID == "" || f.BlockID == a.BlockID) &&
		(f.AnswerID == "" || f.AnswerID == a.AnswerID) &&
		(f.GroupInstance == Any || f.GroupInstance == a.GroupInstance) &&
		(f.AnswerInstance == Any || f.AnswerInstance == a.AnswerInstance)
}

// Filter returns the matching answers in insertion order.
func (s *Store) Filter(f Filter) []Answer {
	if s == nil {
		return nil
	}
	var out []Answer
	for _, a := range s.answers {
		if f.matches(a) {
			out = append(out, a)
		}
	}
	return out
}

// AnswerInstances returns the distinct answer instances recorded for the
// filter, sorted ascending.
func (s *Store) AnswerInstances(f Filter) []int {
	seen := make(map[int]struct{})
	for _, a := range s.Filter(f) {
		seen[a.AnswerInstance] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
