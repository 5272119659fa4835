package plan

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNewAccountPlanHasAllSections(t *testing.T) {
	p := NewAccountPlan("Acme")

	assert.Equal(t, "Acme", p.Subject)
	assert.Len(t, p.Sections, len(SectionOrder))
	for _, key := range SectionOrder {
		_, ok := p.Section(key)
		assert.True(t, ok, "missing section %s", key)
	}
	assert.False(t, p.IsComplete())
}

func TestSetSectionIgnoresUnknownKeys(t *testing.T) {
	p := NewAccountPlan("Acme")
	p.SetSection("engagement_strategy", "should not appear")

	_, ok := p.Section("engagement_strategy")
	assert.False(t, ok)
	assert.Len(t, p.Sections, len(SectionOrder))
}

func TestIsComplete(t *testing.T) {
	p := NewAccountPlan("Acme")
	for _, key := range SectionOrder {
		p.SetSection(key, "content for "+key)
	}
	assert.True(t, p.IsComplete())

	p.SetSection(SectionNextSteps, "   ")
	assert.False(t, p.IsComplete())
}

func TestValidSection(t *testing.T) {
	assert.True(t, ValidSection(SectionExecutiveSummary))
	assert.True(t, ValidSection(SectionNextSteps))
	assert.False(t, ValidSection("company_overview"))
	assert.False(t, ValidSection(""))
}

func TestSectionTitle(t *testing.T) {
	assert.Equal(t, "Executive Summary", SectionTitle(SectionExecutiveSummary))
	assert.Equal(t, "Key Challenges", SectionTitle(SectionKeyChallenges))
	assert.Equal(t, "Next Steps", SectionTitle(SectionNextSteps))
}

func TestFormatContainsAllSectionsInOrder(t *testing.T) {
	p := NewAccountPlan("Acme")
	for _, key := range SectionOrder {
		p.SetSection(key, "text for "+key)
	}

	doc := Format(p)
	assert.Contains(t, doc, "ACCOUNT PLAN: ACME")

	lastIdx := -1
	for _, key := range SectionOrder {
		idx := strings.Index(doc, "## "+SectionTitle(key))
		assert.Greater(t, idx, lastIdx, "section %s out of order", key)
		lastIdx = idx
	}
}

func TestSummary(t *testing.T) {
	p := NewAccountPlan("Acme")
	p.SetSection(SectionExecutiveSummary, "Acme leads the widget market. Revenue is growing. A third sentence that should not appear.")
	p.SetSection(SectionNextSteps, strings.Repeat("Very long sentence without any period separators ", 10))

	out := Summary(p)
	assert.Contains(t, out, "Account Plan Summary for Acme")
	assert.Contains(t, out, "Acme leads the widget market. Revenue is growing")
	assert.NotContains(t, out, "third sentence")

	// Long section briefs are capped
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(line), summaryCharLimit+50)
	}
}

func TestSummaryEmptyPlan(t *testing.T) {
	assert.Equal(t, "No account plan available yet.", Summary(nil))
	assert.Equal(t, "No account plan available yet.", Summary(&AccountPlan{}))
}

func TestCapSection(t *testing.T) {
	short := "short text"
	assert.Equal(t, short, CapSection(short))

	long := strings.Repeat("x", SectionCharLimit+100)
	capped := CapSection(long)
	assert.Len(t, capped, SectionCharLimit)
	assert.True(t, strings.HasSuffix(capped, "..."))
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	// Multi-byte runes must never be split at the cap
	long := strings.Repeat("é", SectionCharLimit)
	capped := CapSection(long)
	assert.True(t, utf8.ValidString(capped))
	assert.LessOrEqual(t, len(capped), SectionCharLimit)
	assert.True(t, strings.HasSuffix(capped, "..."))

	brief := truncate(strings.Repeat("日本語", summaryCharLimit), summaryCharLimit)
	assert.True(t, utf8.ValidString(brief))
	assert.LessOrEqual(t, len(brief), summaryCharLimit)
}
