// Package privacy strips personally identifiable information from
// mention text before it is stored or exported.
package privacy

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
)

// PII kinds reported by Scrub. The values double as metric labels.
const (
	KindEmail      = "email"
	KindPhone      = "phone"
	KindSSN        = "ssn"
	KindCreditCard = "credit_card"
	KindIPAddress  = "ip_address"
)

type rule struct {
	kind  string
	re    *regexp.Regexp
	token string
}

// The phone pattern cannot partially match an SSN, card or IPv4 form,
// so rule order only fixes the order of reported kinds.
var rules = []rule{
	{KindEmail, regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[EMAIL_REDACTED]"},
	{KindPhone, regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`), "[PHONE_REDACTED]"},
	{KindSSN, regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`), "[SSN_REDACTED]"},
	{KindCreditCard, regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`), "[CARD_REDACTED]"},
	{KindIPAddress, regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`), "[IP_REDACTED]"},
}

// Scrubber anonymizes PII in free text and pseudonymizes author
// handles. Safe for concurrent use.
type Scrubber struct {
	salt string
}

// NewScrubber builds a scrubber. The salt hardens author hashes
// against dictionary lookups and must stay stable across restarts for
// hashes to remain joinable.
func NewScrubber(salt string) *Scrubber {
	return &Scrubber{salt: salt}
}

// Scrub replaces every PII match with a kind-specific token and
// returns the clean text plus the kinds found, each kind at most once.
func (s *Scrubber) Scrub(text string) (string, []string) {
	var kinds []string
	for _, r := range rules {
		if !r.re.MatchString(text) {
			continue
		}
		text = r.re.ReplaceAllString(text, r.token)
		kinds = append(kinds, r.kind)
	}
	return text, kinds
}

// Detect reports raw PII matches grouped by kind without modifying the
// text. Used by the export path to audit outgoing payloads.
func (s *Scrubber) Detect(text string) map[string][]string {
	detected := make(map[string][]string)
	for _, r := range rules {
		if matches := r.re.FindAllString(text, -1); len(matches) > 0 {
			detected[r.kind] = matches
		}
	}
	return detected
}

// HashAuthor replaces an author handle with a salted SHA-256 digest so
// per-author aggregation stays possible without storing the handle.
// Empty input stays empty.
func (s *Scrubber) HashAuthor(author string) string {
	if author == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(author + s.salt))
	return hex.EncodeToString(sum[:])
}
