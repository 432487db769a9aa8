package background

import (
	"fmt"
	"strings"
	"time"

	"github.com/honeycarbs/talent-search/internal/domain"
)

// Flagged returns suspicious and critical employees, critical first
func (s *Service) Flagged() []Employee {
	s.mu.Lock()
	defer s.mu.Unlock()

	var critical, suspicious []Employee
	for _, e := range s.employees {
		switch e.Status {
		case Critical:
			critical = append(critical, e)
		case Suspicious:
			suspicious = append(suspicious, e)
		}
	}
	return copyEmployees(append(critical, suspicious...))
}

// AddNote replaces the reviewer notes on a flagged employee
func (s *Service) AddNote(id, note string) (Employee, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return Employee{}, fmt.Errorf("background: %w: note is empty", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return Employee{}, fmt.Errorf("background: employee %s: %w", id, domain.ErrNotFound)
	}
	e := &s.employees[i]
	if !e.Flagged() {
		return Employee{}, fmt.Errorf("background: employee %s is not flagged: %w", id, domain.ErrInvalidInput)
	}
	e.Notes = note
	return copyEmployees(s.employees[i : i+1])[0], nil
}

// Approve clears the flag on every listed employee and marks them verified. Either all of them
// are approved or none.
func (s *Service) Approve(ids []string) ([]Employee, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("background: %w: select at least one flagged check", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := make([]int, 0, len(ids))
	for _, id := range ids {
		i := s.indexLocked(id)
		if i < 0 {
			return nil, fmt.Errorf("background: employee %s: %w", id, domain.ErrNotFound)
		}
		if !s.employees[i].Flagged() {
			return nil, fmt.Errorf("background: employee %s is not flagged: %w", id, domain.ErrInvalidInput)
		}
		idx = append(idx, i)
	}

	out := make([]Employee, 0, len(idx))
	for _, i := range idx {
		e := &s.employees[i]
		e.Status = Verified
		e.Issue = ""
		e.FlaggedAt = time.Time{}
		for j := range e.Education {
			e.Education[j].Status = Verified
		}
		for j := range e.Employment {
			e.Employment[j].Status = Verified
		}
		out = append(out, *e)
	}

	s.logger.Info("flagged checks approved", "count", len(out))
	return copyEmployees(out), nil
}
