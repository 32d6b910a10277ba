package rules

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// NewRepository builds the built-in catalogs. This is the production
// repository; Overrides loaded from YAML can extend it.
func NewRepository() *Repository {
	return &Repository{
		textRules: []TextRule{
			{regexp.MustCompile(`(?i)congratulations.*won|lottery.*winner|claim.*prize`), "Prize Scam", SeverityScam},
			{regexp.MustCompile(`(?i)verify.*account|update.*payment|suspended.*account`), "Phishing", SeverityScam},
			{regexp.MustCompile(`(?i)urgent.*action|account.*blocked|verify.*within`), "Urgency Scam", SeverityScam},
			{regexp.MustCompile(`(?i)click.*link|bit\.ly|tinyurl`), "Suspicious Link", SeveritySuspicious},
			{regexp.MustCompile(`(?i)otp.*\d{4,6}|password.*\d+`), "OTP Harvesting", SeverityScam},
			{regexp.MustCompile(`(?i)tax.*refund|government.*money|stimulus.*payment`), "Tax Scam", SeverityScam},
			{regexp.MustCompile(`(?i)prince|inheritance.*million|transfer.*funds`), "Nigerian Scam", SeverityScam},
			{regexp.MustCompile(`(?i)covid.*relief|vaccine.*registration|corona.*help`), "Pandemic Scam", SeverityScam},
			{regexp.MustCompile(`(?i)loan.*approved|instant.*credit|pre-approved`), "Loan Scam", SeveritySuspicious},
			{regexp.MustCompile(`(?i)amazon|flipkart.*delivery|courier.*pending`), "Delivery Scam", SeveritySuspicious},
			{regexp.MustCompile(`(?i)bank.*manager|रुपये|ଟଙ୍କା`), "Suspicious Content", SeveritySuspicious},
		},
		safePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)appointment.*confirmed|booking.*successful|order.*placed`),
			regexp.MustCompile(`(?i)thank you.*purchase|receipt|invoice`),
			regexp.MustCompile(`(?i)meeting.*scheduled|calendar.*invite`),
		},
		numberRules: []NumberRule{
			{regexp.MustCompile(`^(\+91)?[6-9]\d{9}$`), "Valid Indian Mobile", RiskLow},
			{regexp.MustCompile(`^1800`), "Toll-Free", RiskLow},
			{regexp.MustCompile(`^140`), "Service Number", RiskLow},
			{regexp.MustCompile(`^\+1`), "International (US)", RiskMedium},
			{regexp.MustCompile(`^\+234`), "International (Nigeria)", RiskHigh},
			{regexp.MustCompile(`^\+44`), "International (UK)", RiskMedium},
			{regexp.MustCompile(`^\+86`), "International (China)", RiskMedium},
			{regexp.MustCompile(`^00`), "International Prefix", RiskMedium},
		},
		knownScamPrefixes: []string{
			"+234", "+233", "+254", "+255", "+256",
			"+1876", "+1869", "+1758",
		},
		trustedPrefixes: []string{
			"1800", "1860", "1900",
			"140", "155", "181",
		},
		voiceKeywords: []string{
			"congratulations", "winner", "lottery", "prize", "won",
			"bank account", "verify", "otp", "password", "cvv",
			"urgent", "suspended", "blocked", "expired",
			"tax refund", "government", "police", "arrest warrant",
			"loan approved", "credit card", "insurance claim",
			"courier", "customs", "package", "delivery pending",
			"relatives", "accident", "hospital", "emergency",
			"investment", "stock market", "crypto", "bitcoin",
		},
		metroStateCodes:   []string{"11", "22", "33", "44", "80"},
		mobilePattern:     regexp.MustCompile(`^(\+91)?[6-9]\d{9}$`),
		degeneratePattern: regexp.MustCompile(`^(\+91)?0{5,}|1{5,}|9{5,}`),
	}
}

// Overrides extends the built-in catalogs from an operator-supplied file.
// Extension only; built-in rules cannot be removed or reordered.
type Overrides struct {
	TextRules []struct {
		Pattern  string `yaml:"pattern"`
		Category string `yaml:"category"`
		Severity string `yaml:"severity"`
	} `yaml:"text_rules"`
	VoiceKeywords     []string `yaml:"voice_keywords"`
	KnownScamPrefixes []string `yaml:"known_scam_prefixes"`
	TrustedPrefixes   []string `yaml:"trusted_prefixes"`
}

// LoadOverrides reads an override file and applies it to a fresh built-in
// repository. A missing path returns the built-in repository unchanged.
func LoadOverrides(path string) (*Repository, error) {
	repo := NewRepository()
	if path == "" {
		return repo, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return repo, nil
		}
		return nil, fmt.Errorf("read rule overrides: %w", err)
	}

	var ov Overrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("parse rule overrides: %w", err)
	}
	if err := repo.apply(&ov); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *Repository) apply(ov *Overrides) error {
	for i, tr := range ov.TextRules {
		if strings.TrimSpace(tr.Pattern) == "" {
			return fmt.Errorf("text rule %d: pattern is empty", i)
		}
		re, err := regexp.Compile(`(?i)` + tr.Pattern)
		if err != nil {
			return fmt.Errorf("text rule %d: %w", i, err)
		}
		sev := TextSeverity(strings.ToLower(strings.TrimSpace(tr.Severity)))
		if sev != SeverityScam && sev != SeveritySuspicious {
			return fmt.Errorf("text rule %d: severity must be scam or suspicious, got %q", i, tr.Severity)
		}
		category := strings.TrimSpace(tr.Category)
		if category == "" {
			category = "Custom Rule"
		}
		r.textRules = append(r.textRules, TextRule{Pattern: re, Category: category, Severity: sev})
	}

	for _, kw := range ov.VoiceKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && !contains(r.voiceKeywords, kw) {
			r.voiceKeywords = append(r.voiceKeywords, kw)
		}
	}
	for _, p := range ov.KnownScamPrefixes {
		p = strings.TrimSpace(p)
		if p != "" && !contains(r.knownScamPrefixes, p) {
			r.knownScamPrefixes = append(r.knownScamPrefixes, p)
		}
	}
	for _, p := range ov.TrustedPrefixes {
		p = strings.TrimSpace(p)
		if p != "" && !contains(r.trustedPrefixes, p) {
			r.trustedPrefixes = append(r.trustedPrefixes, p)
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
