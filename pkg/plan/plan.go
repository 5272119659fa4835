// Package plan defines the account plan document: a fixed, ordered set
// of generated sections for one subject, plus composition, formatting,
// and persistence.
package plan

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Canonical section keys, in display order
const (
	SectionExecutiveSummary  = "executive_summary"
	SectionKeyChallenges     = "key_challenges"
	SectionOpportunities     = "opportunities"
	SectionProposedSolutions = "proposed_solutions"
	SectionNextSteps         = "next_steps"
)

// SectionOrder fixes the display order of plan sections
var SectionOrder = []string{
	SectionExecutiveSummary,
	SectionKeyChallenges,
	SectionOpportunities,
	SectionProposedSolutions,
	SectionNextSteps,
}

// AccountPlan is the generated plan for one subject
type AccountPlan struct {
	Subject   string            `json:"subject"`
	Sections  map[string]string `json:"sections"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewAccountPlan creates an empty plan for subject with all canonical
// section keys present.
func NewAccountPlan(subject string) *AccountPlan {
	sections := make(map[string]string, len(SectionOrder))
	for _, key := range SectionOrder {
		sections[key] = ""
	}
	return &AccountPlan{
		Subject:   subject,
		Sections:  sections,
		CreatedAt: time.Now(),
	}
}

// Clone returns a deep copy with its own Sections map, so edits to
// the copy never reach the original.
func (p *AccountPlan) Clone() *AccountPlan {
	if p == nil {
		return nil
	}
	sections := make(map[string]string, len(p.Sections))
	for key, text := range p.Sections {
		sections[key] = text
	}
	return &AccountPlan{
		Subject:   p.Subject,
		Sections:  sections,
		CreatedAt: p.CreatedAt,
	}
}

// Section returns the text of the named section
func (p *AccountPlan) Section(key string) (string, bool) {
	text, ok := p.Sections[key]
	return text, ok
}

// SetSection overwrites the named section. Unknown keys are ignored so
// a plan never grows sections outside the canonical set.
func (p *AccountPlan) SetSection(key, text string) {
	if _, ok := p.Sections[key]; ok {
		p.Sections[key] = text
	}
}

// IsComplete reports whether every canonical section is non-empty
func (p *AccountPlan) IsComplete() bool {
	for _, key := range SectionOrder {
		if strings.TrimSpace(p.Sections[key]) == "" {
			return false
		}
	}
	return true
}

// ValidSection reports whether key names a canonical section
func ValidSection(key string) bool {
	for _, k := range SectionOrder {
		if k == key {
			return true
		}
	}
	return false
}

// SectionTitle renders a section key as a display title
func SectionTitle(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Format renders the full plan as a markdown document
func Format(p *AccountPlan) string {
	var b strings.Builder
	divider := strings.Repeat("=", 60)

	fmt.Fprintf(&b, "%s\n", divider)
	fmt.Fprintf(&b, "ACCOUNT PLAN: %s\n", strings.ToUpper(p.Subject))
	fmt.Fprintf(&b, "%s\n\n", divider)

	for _, key := range SectionOrder {
		fmt.Fprintf(&b, "## %s\n", SectionTitle(key))
		fmt.Fprintf(&b, "%s\n\n", p.Sections[key])
	}
	return b.String()
}

const (
	summarySentences   = 2
	summaryCharLimit   = 200
	summaryFooterHint  = "For the complete plan, ask me to show specific sections."
	summaryEmptyNotice = "No account plan available yet."
)

// summaryKeys is the subset of sections shown in the short summary
var summaryKeys = []struct {
	key   string
	title string
}{
	{SectionExecutiveSummary, "Executive Summary"},
	{SectionKeyChallenges, "Key Challenges"},
	{SectionOpportunities, "Main Opportunities"},
	{SectionProposedSolutions, "Proposed Solutions"},
	{SectionNextSteps, "Next Steps"},
}

// Summary renders a condensed view of the plan: the first couple of
// sentences of each summary section, each capped in length.
func Summary(p *AccountPlan) string {
	if p == nil || len(p.Sections) == 0 {
		return summaryEmptyNotice
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Account Plan Summary for %s\n\n", p.Subject)

	for _, entry := range summaryKeys {
		content := strings.TrimSpace(p.Sections[entry.key])
		if content == "" {
			continue
		}
		fmt.Fprintf(&b, "**%s:**\n%s\n\n", entry.title, briefOf(content))
	}

	b.WriteString(summaryFooterHint)
	return b.String()
}

// briefOf keeps the first sentences of content, capped at the summary
// character limit with an ellipsis.
func briefOf(content string) string {
	sentences := strings.SplitN(content, ". ", summarySentences+1)
	if len(sentences) > summarySentences {
		sentences = sentences[:summarySentences]
	}
	brief := strings.Join(sentences, ". ")
	return truncate(brief, summaryCharLimit)
}

// truncate caps text at limit bytes, backing up to a rune boundary so
// a multi-byte character is never split, and marks the cut with an
// ellipsis.
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit - 3
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
