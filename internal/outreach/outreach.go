// Package outreach drafts and sends recruiting emails to candidates.
package outreach

import (
	"context"
	"fmt"
	"strings"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/pkg/logging"
)

const topSkillCount = 3

// Drafter writes the outreach email body for a candidate
type Drafter interface {
	Draft(ctx context.Context, c domain.Candidate) (string, error)
}

// Template fills the standard outreach letter
type Template struct{}

func (Template) Draft(_ context.Context, c domain.Candidate) (string, error) {
	return fmt.Sprintf(`Hi %s,

I came across your profile and was impressed by your experience with %s. Our client is hiring in %s and I believe your skills would be a great fit.

We're looking for someone to join a dynamic team working on innovative projects. The role offers competitive compensation, flexibility, and opportunities for growth.

Would you be open to a quick call this week to discuss this opportunity further? If so, please suggest a convenient time.

Looking forward to connecting!

Best regards,
AI Recruiter
PeopleGPT`, c.Name, topSkills(c), c.DisplayLocation()), nil
}

func topSkills(c domain.Candidate) string {
	skills := c.Skills
	if len(skills) > topSkillCount {
		skills = skills[:topSkillCount]
	}
	return strings.Join(skills, ", ")
}

// generator is the subset of the Gemini client used for drafting
type generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// AI asks a language model for a personalised draft and falls back to Template on error
type AI struct {
	gen      generator
	fallback Drafter
	logger   *logging.Logger
}

func NewAI(gen generator, logger *logging.Logger) *AI {
	return &AI{gen: gen, fallback: Template{}, logger: logger}
}

func (a *AI) Draft(ctx context.Context, c domain.Candidate) (string, error) {
	text, err := a.gen.GenerateContent(ctx, prompt(c))
	if err != nil {
		a.logger.Warn("ai draft failed, using template", "candidate", c.ID, "err", err)
		return a.fallback.Draft(ctx, c)
	}
	return text, nil
}

func prompt(c domain.Candidate) string {
	var sb strings.Builder
	sb.WriteString("Write a short, friendly recruiting email (under 180 words, plain text, no subject line) to this candidate.\n")
	sb.WriteString("Mention their strongest skills and location. Sign it as \"AI Recruiter, PeopleGPT\".\n\n")
	fmt.Fprintf(&sb, "Name: %s\n", c.Name)
	fmt.Fprintf(&sb, "Location: %s\n", c.DisplayLocation())
	fmt.Fprintf(&sb, "Experience: %s\n", c.Experience)
	fmt.Fprintf(&sb, "Skills: %s\n", strings.Join(c.Skills, ", "))
	if c.Summary != "" {
		fmt.Fprintf(&sb, "Summary: %s\n", c.Summary)
	}
	for _, w := range c.WorkHistory {
		fmt.Fprintf(&sb, "Role: %s at %s (%s)\n", w.Title, w.Company, w.Duration)
	}
	return sb.String()
}

// Service drafts and sends outreach
type Service struct {
	drafter  Drafter
	notifier domain.Notifier
	logger   *logging.Logger
}

func NewService(drafter Drafter, notifier domain.Notifier, logger *logging.Logger) *Service {
	if drafter == nil {
		drafter = Template{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{drafter: drafter, notifier: notifier, logger: logger}
}

// Draft returns the email body proposed for c
func (s *Service) Draft(ctx context.Context, c domain.Candidate) (string, error) {
	return s.drafter.Draft(ctx, c)
}

// Send emails body to c. An empty body sends the draft.
func (s *Service) Send(ctx context.Context, c domain.Candidate, body string) error {
	if strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("outreach: candidate %s has no email: %w", c.ID, domain.ErrInvalidInput)
	}
	if strings.TrimSpace(body) == "" {
		var err error
		if body, err = s.Draft(ctx, c); err != nil {
			return fmt.Errorf("outreach: draft: %w", err)
		}
	}

	msg := domain.Message{
		To:      c.Email,
		Subject: fmt.Sprintf("Opportunity for %s", c.Name),
		Body:    body,
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		return fmt.Errorf("outreach: send: %w", err)
	}

	s.logger.Info("outreach email sent", "candidate", c.ID)
	return nil
}
