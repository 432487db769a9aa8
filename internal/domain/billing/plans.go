package billing

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/honeycarbs/talent-search/internal/domain"
)

// Unlimited marks a plan without an upload cap
const Unlimited = -1

// Plan is one subscription tier. Prices are whole rupees per month.
type Plan struct {
	ID          string
	Name        string
	PriceINR    int
	Period      string
	Description string
	Features    []string
	ButtonText  string
	Popular     bool
	UploadLimit int
}

var plans = []Plan{
	{
		ID:          "free",
		Name:        "Free",
		PriceINR:    0,
		Period:      "/month",
		Description: "Perfect for getting started",
		Features:    []string{"3 resume uploads", "Basic search filters", "Standard support", "Basic candidate profiles"},
		ButtonText:  "Get Started",
		UploadLimit: 3,
	},
	{
		ID:          "premier",
		Name:        "Premier",
		PriceINR:    6000,
		Period:      "/month",
		Description: "Ideal for growing teams",
		Features: []string{
			"Unlimited resume uploads", "Advanced search & filters", "Email outreach tools",
			"Candidate ranking", "Priority support", "Export capabilities",
		},
		ButtonText:  "Choose Premier",
		Popular:     true,
		UploadLimit: Unlimited,
	},
	{
		ID:          "elite",
		Name:        "Elite",
		PriceINR:    15000,
		Period:      "/month",
		Description: "For enterprise-level hiring",
		Features: []string{
			"Everything in Premier", "Team collaboration", "ATS integration", "Custom branding",
			"Advanced analytics", "Dedicated account manager", "API access",
		},
		ButtonText:  "Choose Elite",
		UploadLimit: Unlimited,
	},
}

// en-IN groups by lakh and crore: ₹1,00,000
var printer = message.NewPrinter(language.MustParse("en-IN"))

// Plans returns every plan, cheapest first
func Plans() []Plan {
	out := make([]Plan, len(plans))
	for i, p := range plans {
		p.Features = append([]string(nil), p.Features...)
		out[i] = p
	}
	return out
}

// Lookup finds a plan by id or name, case-insensitively
func Lookup(name string) (Plan, error) {
	name = strings.TrimSpace(name)
	for _, p := range Plans() {
		if strings.EqualFold(p.ID, name) || strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Plan{}, fmt.Errorf("billing: plan %q: %w", name, domain.ErrNotFound)
}

// FormatINR renders a rupee amount with thousands grouping, e.g. ₹15,000
func FormatINR(amount int) string {
	return printer.Sprintf("₹%d", amount)
}

// Price is the formatted monthly price of p
func (p Plan) Price() string {
	return FormatINR(p.PriceINR)
}

// AllowsUpload reports whether one more upload fits after used uploads
func (p Plan) AllowsUpload(used int) bool {
	return p.UploadLimit == Unlimited || used < p.UploadLimit
}

// SubscriptionNotice is shown after a plan was chosen. Payment happens elsewhere.
func SubscriptionNotice(p Plan) string {
	return fmt.Sprintf("Processing %s plan subscription for %s", p.Name, p.Price())
}
