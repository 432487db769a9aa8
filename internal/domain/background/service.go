package background

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/pkg/logging"
)

// Status is the verification state of an employee
type Status string

const (
	Unverified Status = "unverified"
	InProgress Status = "in-progress"
	Verified   Status = "verified"
	Suspicious Status = "suspicious"
	Critical   Status = "critical"
)

// Label is the badge text for s
func (s Status) Label() string {
	switch s {
	case InProgress:
		return "In Progress"
	case Verified:
		return "Verified"
	case Suspicious:
		return "Suspicious"
	case Critical:
		return "Critical Issue"
	default:
		return "Unverified"
	}
}

// ParseOutcome accepts the statuses a completed check can end in
func ParseOutcome(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case Verified, Suspicious, Critical:
		return st, nil
	default:
		return "", fmt.Errorf("background: outcome %q: %w", s, domain.ErrInvalidInput)
	}
}

// CheckStatus tracks one initiated check
type CheckStatus string

const (
	CheckPending   CheckStatus = "pending"
	CheckSent      CheckStatus = "sent"
	CheckWaiting   CheckStatus = "waiting"
	CheckCompleted CheckStatus = "completed"
)

var checkProgress = map[CheckStatus]int{
	CheckPending:   0,
	CheckSent:      25,
	CheckWaiting:   60,
	CheckCompleted: 100,
}

// CheckType is what gets verified
type CheckType string

const (
	CheckEducation  CheckType = "education"
	CheckEmployment CheckType = "employment"
	CheckBoth       CheckType = "both"
)

// ParseCheckType accepts education, employment or both
func ParseCheckType(s string) (CheckType, error) {
	switch t := CheckType(strings.ToLower(strings.TrimSpace(s))); t {
	case CheckEducation, CheckEmployment, CheckBoth:
		return t, nil
	default:
		return "", fmt.Errorf("background: check type %q: %w", s, domain.ErrInvalidInput)
	}
}

// DefaultTemplate is the verification email body. Placeholders in brackets are filled per employee.
const DefaultTemplate = `Dear [Contact Name],

We are conducting a background verification for [Employee Name] who has applied for the position of [Role] at our organization.

Could you please confirm the following details:
- Employment/Education period
- Position/Degree held
- Performance/Academic standing

Please reply to this email with the verification details.

Thank you for your cooperation.

Best regards,
HR Team`

type Check struct {
	Types     []CheckType
	Status    CheckStatus
	Progress  int
	StartedAt time.Time
}

// Record is one education or employment entry awaiting or past verification
type Record struct {
	Title        string // degree or position
	Organization string // institution or company
	Period       string
	Status       Status
	Documents    []string
	Verifier     string // address the verification email goes to
}

type Employee struct {
	ID             string
	Name           string
	Email          string
	Role           string
	Department     string
	OnboardingDate time.Time
	Status         Status
	Check          *Check

	Education  []Record
	Employment []Record

	// set while the employee is flagged
	Issue     string
	FlaggedAt time.Time
	Notes     string
}

// Flagged reports whether the employee needs an admin review
func (e Employee) Flagged() bool {
	return e.Status == Suspicious || e.Status == Critical
}

// Counts feeds the summary cards
type Counts struct {
	Total      int
	Verified   int
	InProgress int
	Flagged    int // suspicious or critical
}

// Service keeps the employee roster and drives verification checks
type Service struct {
	notifier domain.Notifier
	logger   *logging.Logger
	clock    func() time.Time

	mu        sync.Mutex
	employees []Employee
}

// NewService builds a Service over roster. A nil roster starts from DefaultRoster.
func NewService(notifier domain.Notifier, logger *logging.Logger, roster []Employee) (*Service, error) {
	if notifier == nil {
		return nil, fmt.Errorf("background.Service: notifier is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if roster == nil {
		roster = DefaultRoster()
	}
	return &Service{
		notifier:  notifier,
		logger:    logger,
		clock:     time.Now,
		employees: copyEmployees(roster),
	}, nil
}

// List returns employees whose name, email or role contains term, case-insensitively
func (s *Service) List(term string) []Employee {
	s.mu.Lock()
	defer s.mu.Unlock()

	term = strings.ToLower(strings.TrimSpace(term))
	var out []Employee
	for _, e := range s.employees {
		if term == "" ||
			strings.Contains(strings.ToLower(e.Name), term) ||
			strings.Contains(strings.ToLower(e.Email), term) ||
			strings.Contains(strings.ToLower(e.Role), term) {
			out = append(out, e)
		}
	}
	return copyEmployees(out)
}

func (s *Service) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Counts{Total: len(s.employees)}
	for _, e := range s.employees {
		switch e.Status {
		case Verified:
			c.Verified++
		case InProgress:
			c.InProgress++
		case Suspicious, Critical:
			c.Flagged++
		}
	}
	return c
}

// Initiate starts checks for the selected employees. Each one moves to sent, gets a
// verification email, then waits for the reply. Employees whose email fails go back to pending.
func (s *Service) Initiate(ctx context.Context, ids []string, types []CheckType, template string) ([]Employee, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("background: %w: select at least one employee", domain.ErrInvalidInput)
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("background: %w: select at least one check type", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(template) == "" {
		template = DefaultTemplate
	}

	s.mu.Lock()
	idx := make([]int, 0, len(ids))
	for _, id := range ids {
		i := s.indexLocked(id)
		if i < 0 {
			s.mu.Unlock()
			return nil, fmt.Errorf("background: employee %s: %w", id, domain.ErrNotFound)
		}
		if s.employees[i].Email == "" {
			s.mu.Unlock()
			return nil, fmt.Errorf("background: employee %s has no email: %w", id, domain.ErrInvalidInput)
		}
		idx = append(idx, i)
	}

	// every id resolved, nothing has changed yet
	var selected []Employee
	for _, i := range idx {
		s.employees[i].Check = &Check{
			Types:     append([]CheckType(nil), types...),
			Status:    CheckSent,
			Progress:  checkProgress[CheckSent],
			StartedAt: s.clock(),
		}
		selected = append(selected, s.employees[i])
	}
	s.mu.Unlock()

	var errs []error
	for _, e := range selected {
		msg := domain.Message{
			To:      e.Email,
			Subject: "Background verification: " + e.Name,
			Body:    renderTemplate(template, e),
		}
		err := s.notifier.Send(ctx, msg)

		next := CheckWaiting
		if err != nil {
			next = CheckPending
			errs = append(errs, fmt.Errorf("background: notify %s: %w", e.Email, err))
			s.logger.Warn("verification email failed", "employee", e.ID, "err", err)
		}
		s.advance(e.ID, next)
	}

	s.logger.Info("background checks initiated", "count", len(selected), "types", types, "failed", len(errs))
	return s.byIDs(ids), errors.Join(errs...)
}

// Complete closes a waiting check with its outcome
func (s *Service) Complete(id string, outcome Status) (Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return Employee{}, fmt.Errorf("background: employee %s: %w", id, domain.ErrNotFound)
	}
	e := &s.employees[i]
	if e.Check == nil || e.Check.Status != CheckWaiting {
		return Employee{}, fmt.Errorf("background: employee %s has no check awaiting a reply: %w", id, domain.ErrInvalidInput)
	}
	e.Check.Status = CheckCompleted
	e.Check.Progress = checkProgress[CheckCompleted]
	e.Status = outcome
	if e.Flagged() {
		e.FlaggedAt = s.clock()
	}
	return copyEmployees([]Employee{*e})[0], nil
}

// Get returns one employee
func (s *Service) Get(id string) (Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return Employee{}, fmt.Errorf("background: employee %s: %w", id, domain.ErrNotFound)
	}
	return copyEmployees(s.employees[i : i+1])[0], nil
}

func (s *Service) advance(id string, next CheckStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 || s.employees[i].Check == nil {
		return
	}
	e := &s.employees[i]
	e.Check.Status = next
	e.Check.Progress = checkProgress[next]
	if next == CheckWaiting {
		e.Status = InProgress
	}
}

func (s *Service) byIDs(ids []string) []Employee {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Employee, 0, len(ids))
	for _, id := range ids {
		if i := s.indexLocked(id); i >= 0 {
			out = append(out, s.employees[i])
		}
	}
	return copyEmployees(out)
}

func (s *Service) indexLocked(id string) int {
	for i, e := range s.employees {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func renderTemplate(tpl string, e Employee) string {
	return strings.NewReplacer(
		"[Contact Name]", "Sir/Madam",
		"[Employee Name]", e.Name,
		"[Role]", e.Role,
	).Replace(tpl)
}

func copyEmployees(in []Employee) []Employee {
	if in == nil {
		return nil
	}
	out := make([]Employee, len(in))
	for i, e := range in {
		if e.Check != nil {
			c := *e.Check
			c.Types = append([]CheckType(nil), e.Check.Types...)
			e.Check = &c
		}
		e.Education = copyRecords(e.Education)
		e.Employment = copyRecords(e.Employment)
		out[i] = e
	}
	return out
}

func copyRecords(in []Record) []Record {
	if in == nil {
		return nil
	}
	out := make([]Record, len(in))
	for i, r := range in {
		r.Documents = append([]string(nil), r.Documents...)
		out[i] = r
	}
	return out
}

// DefaultRoster is the onboarding roster shown before any HR integration is configured
func DefaultRoster() []Employee {
	day := func(s string) time.Time {
		t, _ := time.Parse(time.DateOnly, s)
		return t
	}
	return []Employee{
		{
			ID: "1", Name: "Priya Sharma", Email: "priya.sharma@company.com", Role: "Software Engineer",
			Department: "Engineering", OnboardingDate: day("2025-05-20"), Status: Verified,
			Education: []Record{{
				Title: "Bachelor of Technology", Organization: "ABC University", Period: "2020-2024", Status: Verified,
				Documents: []string{"Degree Certificate", "Transcript"}, Verifier: "registrar@abcuniversity.edu",
			}},
			Employment: []Record{{
				Title: "Junior Software Engineer", Organization: "XYZ Corp", Period: "2024-2025", Status: Verified,
				Documents: []string{"Experience Letter", "Payslips"}, Verifier: "hr@xyzcorp.com",
			}},
		},
		{
			ID: "2", Name: "Rahul Kumar", Email: "rahul.kumar@company.com", Role: "Product Manager",
			Department: "Product", OnboardingDate: day("2025-05-18"), Status: InProgress,
			Education: []Record{{
				Title: "MBA", Organization: "Indian Institute of Management", Period: "2019-2021", Status: InProgress,
				Documents: []string{"Degree Certificate"}, Verifier: "records@iim.ac.in",
			}},
		},
		{
			ID: "3", Name: "Anita Singh", Email: "anita.singh@company.com", Role: "Designer",
			Department: "Design", OnboardingDate: day("2025-05-15"), Status: Suspicious,
			Issue: "University response indicates different graduation year", FlaggedAt: day("2025-05-26"),
			Notes: "Employee claims 2023, university says 2024",
			Education: []Record{{
				Title: "Bachelor of Design", Organization: "National Institute of Design", Period: "2019-2023", Status: Suspicious,
				Documents: []string{"Degree Certificate"}, Verifier: "registrar@nid.edu",
			}},
		},
		{
			ID: "4", Name: "Vikram Patel", Email: "vikram.patel@company.com", Role: "Data Scientist",
			Department: "Analytics", OnboardingDate: day("2025-05-10"), Status: Unverified,
		},
	}
}
