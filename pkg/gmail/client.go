package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Config holds Gmail settings. The token file must already exist: the server never runs the
// interactive consent flow.
type Config struct {
	CredentialsPath string
	TokenPath       string
	Sender          string
}

// Client sends mail through the Gmail API
type Client struct {
	service *gmailapi.Service
	sender  string
}

// NewClient loads OAuth credentials and a saved token, then builds the Gmail service
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Sender == "" {
		return nil, errors.New("gmail: sender is required")
	}

	b, err := os.ReadFile(cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("gmail: read credentials: %w", err)
	}

	oauthCfg, err := google.ConfigFromJSON(b, gmailapi.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("gmail: parse credentials: %w", err)
	}

	tok, err := tokenFromFile(cfg.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("gmail: read token: %w", err)
	}

	srv, err := gmailapi.NewService(ctx, option.WithHTTPClient(oauthCfg.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("gmail: create service: %w", err)
	}

	return &Client{service: srv, sender: cfg.Sender}, nil
}

// Send delivers a plain-text message from the configured sender
func (c *Client) Send(ctx context.Context, to, subject, body string) error {
	raw := buildMessage(c.sender, to, subject, body)
	msg := &gmailapi.Message{Raw: base64.URLEncoding.EncodeToString([]byte(raw))}

	if _, err := c.service.Users.Messages.Send("me", msg).Context(ctx).Do(); err != nil {
		return fmt.Errorf("gmail: send to %s: %w", to, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) string {
	var sb strings.Builder
	sb.WriteString("From: " + from + "\r\n")
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return sb.String()
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, err
	}
	return tok, nil
}
