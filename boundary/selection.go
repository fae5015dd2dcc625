package boundary

import (
	"sync"

	"estate-explorer/models"
)

// Token identifies the selection a lookup was started for.
type Token struct {
	gen    uint64
	Target Request
}

// Selection holds the outline currently drawn and drops lookups that resolve
// after the user moved on to another region.
type Selection struct {
	mu     sync.Mutex
	gen    uint64
	target *Request
	drawn  []models.Coordinate
}

// Begin makes target the active selection and clears the drawn outline.
func (s *Selection) Begin(target Request) Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.target = &target
	s.drawn = nil
	return Token{gen: s.gen, Target: target}
}

// Pending returns the token of the active selection while its outline is
// still missing.
func (s *Selection) Pending() (Token, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.target == nil || s.drawn != nil {
		return Token{}, false
	}
	return Token{gen: s.gen, Target: *s.target}, true
}

// Apply draws coords when tok is still the active selection. It reports
// whether the outline was accepted.
func (s *Selection) Apply(tok Token, coords []models.Coordinate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.gen != s.gen || len(coords) == 0 {
		return false
	}
	s.drawn = coords
	return true
}

// Clear removes the outline without starting a new selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.target = nil
	s.drawn = nil
}

// Drawn returns the outline on screen, nil when none.
func (s *Selection) Drawn() []models.Coordinate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawn
}
