// Package techlist keeps the ordered, duplicate-free list of technology
// names edited in the project form.
package techlist

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// List holds trimmed, non-empty, unique entries in insertion order.
// The zero value is an empty list ready to use.
type List struct {
	items []string
}

// New returns a list seeded from existing values. Entries are trimmed,
// blanks dropped and duplicates collapsed to their first occurrence.
func New(seed []string) *List {
	l := &List{}
	for _, s := range seed {
		l.Add(s)
	}
	return l
}

// Add appends the trimmed text. It reports false and leaves the list
// unchanged when the text is blank or already present (exact match).
func (l *List) Add(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" || lo.Contains(l.items, t) {
		return false
	}
	l.items = append(l.items, t)
	return true
}

// Remove deletes the entry equal to text. Relative order of the rest is
// kept.
func (l *List) Remove(text string) bool {
	i := lo.IndexOf(l.items, text)
	if i < 0 {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	return true
}

// Items returns a copy of the entries. Never nil.
func (l *List) Items() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}
