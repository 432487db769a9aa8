package background

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/honeycarbs/talent-search/internal/domain"
)

// SampleRoster is a minimal import file
const SampleRoster = `Name,Employee ID,Joining Date,Designation,Email
John Doe,EMP001,2024-01-15,Software Engineer,john.doe@company.com
Jane Smith,EMP002,2024-02-20,Product Manager,jane.smith@company.com
Mike Johnson,EMP003,2024-03-10,UI/UX Designer,mike.johnson@company.com
`

type column int

const (
	colName column = iota
	colID
	colJoined
	colDesignation
	colEmail
	numColumns
)

var headerAliases = map[string]column{
	"name":           colName,
	"employeename":   colName,
	"fullname":       colName,
	"employeeid":     colID,
	"empid":          colID,
	"id":             colID,
	"joiningdate":    colJoined,
	"dateofjoining":  colJoined,
	"onboardingdate": colJoined,
	"designation":    colDesignation,
	"position":       colDesignation,
	"role":           colDesignation,
	"email":          colEmail,
	"e-mail":         colEmail,
}

var columnNames = [numColumns]string{"Name", "Employee ID", "Joining Date", "Designation", "Email"}

// Import reads a CSV roster and adds its employees ahead of the existing ones. Name, Employee ID,
// Joining Date (YYYY-MM-DD) and Designation columns are required in any order; Email is optional.
// Nothing is added unless every row is valid.
func (s *Service) Import(r io.Reader) ([]Employee, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("background: import: %w: empty file", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("background: import: %w: %v", domain.ErrInvalidInput, err)
	}
	cols, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	var imported []Employee
	seen := make(map[string]bool)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("background: import: %w: %v", domain.ErrInvalidInput, err)
		}
		line, _ := cr.FieldPos(0)

		e, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("background: import line %d: %w", line, err)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("background: import line %d: duplicate employee id %s: %w", line, e.ID, domain.ErrInvalidInput)
		}
		seen[e.ID] = true
		imported = append(imported, e)
	}
	if len(imported) == 0 {
		return nil, fmt.Errorf("background: import: %w: no employees in file", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range imported {
		if s.indexLocked(e.ID) >= 0 {
			return nil, fmt.Errorf("background: import: employee id %s already on the roster: %w", e.ID, domain.ErrInvalidInput)
		}
	}
	s.employees = append(copyEmployees(imported), s.employees...)

	s.logger.Info("roster imported", "count", len(imported))
	return copyEmployees(imported), nil
}

func mapHeader(header []string) ([numColumns]int, error) {
	var cols [numColumns]int
	for i := range cols {
		cols[i] = -1
	}
	for i, h := range header {
		key := strings.NewReplacer(" ", "", "_", "", "\uFEFF", "").Replace(strings.ToLower(strings.TrimSpace(h)))
		if c, ok := headerAliases[key]; ok && cols[c] < 0 {
			cols[c] = i
		}
	}

	var missing []string
	for c := colName; c < colEmail; c++ {
		if cols[c] < 0 {
			missing = append(missing, columnNames[c])
		}
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("background: import: %w: missing columns %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseRow(row []string, cols [numColumns]int) (Employee, error) {
	field := func(c column) string {
		if i := cols[c]; i >= 0 && i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	for c := colName; c < colEmail; c++ {
		if field(c) == "" {
			return Employee{}, fmt.Errorf("%w: %s is empty", domain.ErrInvalidInput, columnNames[c])
		}
	}
	joined, err := time.Parse(time.DateOnly, field(colJoined))
	if err != nil {
		return Employee{}, fmt.Errorf("%w: joining date %q is not YYYY-MM-DD", domain.ErrInvalidInput, field(colJoined))
	}

	return Employee{
		ID:             field(colID),
		Name:           field(colName),
		Email:          field(colEmail),
		Role:           field(colDesignation),
		OnboardingDate: joined,
		Status:         Unverified,
	}, nil
}
