package background

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/honeycarbs/talent-search/internal/domain"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Message
	fail map[string]error
}

func (n *recordingNotifier) Send(_ context.Context, msg domain.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.fail[msg.To]; err != nil {
		return err
	}
	n.sent = append(n.sent, msg)
	return nil
}

func newService(t *testing.T, n domain.Notifier) *Service {
	t.Helper()
	svc, err := NewService(n, nil, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestCountsAndSearch(t *testing.T) {
	svc := newService(t, &recordingNotifier{})

	c := svc.Counts()
	if c.Total != 4 || c.Verified != 1 || c.InProgress != 1 || c.Flagged != 1 {
		t.Fatalf("unexpected counts %+v", c)
	}

	tests := map[string]int{"": 4, "DESIGN": 1, "company.com": 4, "kumar": 1, "nobody": 0}
	for term, want := range tests {
		if got := len(svc.List(term)); got != want {
			t.Fatalf("List(%q) = %d, want %d", term, got, want)
		}
	}
}

func TestInitiateValidation(t *testing.T) {
	svc := newService(t, &recordingNotifier{})
	ctx := context.Background()

	if _, err := svc.Initiate(ctx, nil, []CheckType{CheckBoth}, ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without employees, got %v", err)
	}
	if _, err := svc.Initiate(ctx, []string{"1"}, nil, ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without check types, got %v", err)
	}
	if _, err := svc.Initiate(ctx, []string{"99"}, []CheckType{CheckBoth}, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInitiateUnknownEmployeeLeavesOthersUntouched(t *testing.T) {
	n := &recordingNotifier{}
	svc := newService(t, n)

	_, err := svc.Initiate(context.Background(), []string{"4", "missing"}, []CheckType{CheckEducation}, "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(n.sent) != 0 {
		t.Fatalf("expected no emails, got %d", len(n.sent))
	}

	got := svc.List("vikram")
	if len(got) != 1 || got[0].Check != nil || got[0].Status != Unverified {
		t.Fatalf("employee 4 changed by a failed initiation: %+v", got)
	}

	// the same employee can still be initiated normally
	if _, err := svc.Initiate(context.Background(), []string{"4"}, []CheckType{CheckEducation}, ""); err != nil {
		t.Fatalf("Initiate: %v", err)
	}
}

func TestInitiateSendsAndWaits(t *testing.T) {
	n := &recordingNotifier{}
	svc := newService(t, n)

	got, err := svc.Initiate(context.Background(), []string{"4", "3"}, []CheckType{CheckEducation}, "")
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(got))
	}
	for _, e := range got {
		if e.Check == nil || e.Check.Status != CheckWaiting || e.Check.Progress != 60 {
			t.Fatalf("unexpected check for %s: %+v", e.ID, e.Check)
		}
		if e.Status != InProgress {
			t.Fatalf("expected in-progress status for %s, got %s", e.ID, e.Status)
		}
	}

	if len(n.sent) != 2 {
		t.Fatalf("expected 2 emails, got %d", len(n.sent))
	}
	body := n.sent[0].Body
	if !strings.Contains(body, "Vikram Patel") || !strings.Contains(body, "Data Scientist") || strings.Contains(body, "[Role]") {
		t.Fatalf("template not rendered: %s", body)
	}

	done, err := svc.Complete("4", Verified)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if done.Check.Progress != 100 || done.Status != Verified {
		t.Fatalf("unexpected completed employee %+v", done)
	}
}

func TestInitiateFailedEmailReturnsToPending(t *testing.T) {
	n := &recordingNotifier{fail: map[string]error{"rahul.kumar@company.com": errors.New("smtp down")}}
	svc := newService(t, n)

	got, err := svc.Initiate(context.Background(), []string{"1", "2"}, []CheckType{CheckBoth}, "custom [Employee Name]")
	if err == nil {
		t.Fatal("expected joined notify error")
	}
	if got[0].Check.Status != CheckWaiting || got[1].Check.Status != CheckPending || got[1].Check.Progress != 0 {
		t.Fatalf("unexpected check states: %+v / %+v", got[0].Check, got[1].Check)
	}
	if n.sent[0].Body != "custom Priya Sharma" {
		t.Fatalf("custom template not used: %q", n.sent[0].Body)
	}

	if _, err := svc.Complete("2", Verified); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected pending check to be rejected, got %v", err)
	}
}

func TestParseCheckType(t *testing.T) {
	if ct, err := ParseCheckType(" Employment "); err != nil || ct != CheckEmployment {
		t.Fatalf("unexpected %q, %v", ct, err)
	}
	if _, err := ParseCheckType("credit"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestParseOutcome(t *testing.T) {
	if st, err := ParseOutcome("Critical"); err != nil || st != Critical {
		t.Fatalf("unexpected %q, %v", st, err)
	}
	if _, err := ParseOutcome("in-progress"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
