package app

import (
	"sort"
	"sync"
)

// Icon names used by the views.
const (
	IconPerson     = "io-person-circle-outline"
	IconCalendar   = "bi-calendar-event"
	IconCategory   = "md-category-outlined"
	IconUsers      = "la-users-solid"
	IconTrash      = "bi-trash"
	IconEdit       = "bi-pencil-square"
	IconViews      = "bi-eye-fill"
	IconThumbsDown = "bi-hand-thumbs-down"
	IconThumbsUp   = "bi-hand-thumbs-up"
)

var defaultIcons = map[string]string{
	IconPerson:     "@",
	IconCalendar:   "#",
	IconCategory:   "§",
	IconUsers:      "&",
	IconTrash:      "x",
	IconEdit:       "~",
	IconViews:      "*",
	IconThumbsDown: "-",
	IconThumbsUp:   "+",
}

// IconSet maps icon names to the glyphs views print.
type IconSet struct {
	mu     sync.RWMutex
	glyphs map[string]string
}

// NewIconSet returns an empty set.
func NewIconSet() *IconSet {
	return &IconSet{glyphs: map[string]string{}}
}

// Register adds or replaces an icon.
func (s *IconSet) Register(name, glyph string) {
	s.mu.Lock()
	s.glyphs[name] = glyph
	s.mu.Unlock()
}

// RegisterDefaults adds the application's icons.
func (s *IconSet) RegisterDefaults() {
	for name, glyph := range defaultIcons {
		s.Register(name, glyph)
	}
}

// Glyph returns the glyph for name, or "" when it is not registered.
func (s *IconSet) Glyph(name string) string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.glyphs[name]
}

// Names lists the registered icons in order.
func (s *IconSet) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.glyphs))
	for n := range s.glyphs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
