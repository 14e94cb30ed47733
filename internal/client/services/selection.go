package services

import (
	"sync"

	"github.com/dmitrijs2005/gophdiner/internal/client/models"
)

// TableSelection is the caller-owned chosen table. The resolver never
// changes it; callers decide when to Revalidate.
type TableSelection struct {
	mu       sync.Mutex
	table    int
	selected bool
}

// Select picks tableNumber if it is one of candidates.
func (s *TableSelection) Select(tableNumber int, candidates []models.TableCandidate) error {
	if !containsTable(candidates, tableNumber) {
		return ErrTableNotAvailable
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table, s.selected = tableNumber, true
	return nil
}

func (s *TableSelection) Selected() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table, s.selected
}

func (s *TableSelection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table, s.selected = 0, false
}

// Revalidate clears the selection if its table is no longer among
// candidates, and reports whether it did.
func (s *TableSelection) Revalidate(candidates []models.TableCandidate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.selected || containsTable(candidates, s.table) {
		return false
	}
	s.table, s.selected = 0, false
	return true
}

func containsTable(candidates []models.TableCandidate, tableNumber int) bool {
	for _, c := range candidates {
		if c.TableNumber == tableNumber {
			return true
		}
	}
	return false
}
