// Package level implements the spaced-repetition level system for
// vocabulary terms: an ordered table of mastery levels with per-level
// retest windows, answer processing, and an urgency ordering used to
// decide what to test next.
package level

import "fmt"

// Level is a single mastery stage. MinDays is the minimum number of days
// that must pass after a test before the term may be tested again.
// MaxDays is the number of days after which the term is considered
// forgotten and falls back to the lowest level; nil means it never expires.
type Level struct {
	Name    string `json:"name"`
	Rank    int    `json:"rank"`
	MinDays int    `json:"min_days"`
	MaxDays *int   `json:"max_days"`
}

// Expires reports whether the level has a finite retention window.
func (l Level) Expires() bool {
	return l.MaxDays != nil
}

func (l Level) String() string {
	if l.MaxDays == nil {
		return fmt.Sprintf("%s(min=%d, max=inf)", l.Name, l.MinDays)
	}
	return fmt.Sprintf("%s(min=%d, max=%d)", l.Name, l.MinDays, *l.MaxDays)
}

// Table is an immutable ordered catalog of levels. The first entry is the
// floor every term starts at and falls back to; the last entry is terminal.
type Table struct {
	levels []Level
	byName map[string]int
}

// NewTable builds a table from levels in progression order. Ranks are
// assigned from position, overriding whatever the caller set. It fails on
// an empty list, duplicate names, or a level whose window is inverted
// (MaxDays < MinDays).
func NewTable(levels []Level) (*Table, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("level: table must contain at least one level")
	}
	t := &Table{
		levels: make([]Level, len(levels)),
		byName: make(map[string]int, len(levels)),
	}
	for i, lvl := range levels {
		if lvl.Name == "" {
			return nil, fmt.Errorf("level: level at rank %d has no name", i)
		}
		if _, dup := t.byName[lvl.Name]; dup {
			return nil, fmt.Errorf("level: duplicate level name %q", lvl.Name)
		}
		if lvl.MaxDays != nil && *lvl.MaxDays < lvl.MinDays {
			return nil, fmt.Errorf("level: %s has max_days %d below min_days %d", lvl.Name, *lvl.MaxDays, lvl.MinDays)
		}
		lvl.Rank = i
		t.levels[i] = lvl
		t.byName[lvl.Name] = i
	}
	return t, nil
}

func days(n int) *int { return &n }

// Default returns the stock seven-level table: four red stages with short
// windows, two yellow stages with a longer dwell time, and a terminal
// green stage reviewed roughly monthly.
func Default() *Table {
	t, err := NewTable([]Level{
		{Name: "Red-1", MinDays: 0, MaxDays: nil},
		{Name: "Red-2", MinDays: 1, MaxDays: days(7)},
		{Name: "Red-3", MinDays: 1, MaxDays: days(7)},
		{Name: "Red-4", MinDays: 1, MaxDays: days(7)},
		{Name: "Yellow-1", MinDays: 4, MaxDays: days(7)},
		{Name: "Yellow-2", MinDays: 4, MaxDays: days(7)},
		{Name: "Green", MinDays: 25, MaxDays: days(33)},
	})
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the level with the given name, or an UnknownLevelError.
func (t *Table) Lookup(name string) (Level, error) {
	i, ok := t.byName[name]
	if !ok {
		return Level{}, &UnknownLevelError{Name: name}
	}
	return t.levels[i], nil
}

// Next returns the level that follows name in the progression. The
// terminal level maps to itself; there is no wraparound.
func (t *Table) Next(name string) (Level, error) {
	i, ok := t.byName[name]
	if !ok {
		return Level{}, &UnknownLevelError{Name: name}
	}
	if i == len(t.levels)-1 {
		return t.levels[i], nil
	}
	return t.levels[i+1], nil
}

// Lowest returns the floor level every term starts at.
func (t *Table) Lowest() Level {
	return t.levels[0]
}

// Terminal returns the highest level in the progression.
func (t *Table) Terminal() Level {
	return t.levels[len(t.levels)-1]
}

// Levels returns a copy of the ordered catalog.
func (t *Table) Levels() []Level {
	out := make([]Level, len(t.levels))
	copy(out, t.levels)
	return out
}

// Len returns the number of levels in the table.
func (t *Table) Len() int {
	return len(t.levels)
}
