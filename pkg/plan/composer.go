package plan

import (
	"context"
	"fmt"

	"github.com/Achintharya/eightfold-bot/pkg/llm"
	"github.com/Achintharya/eightfold-bot/pkg/logger"
)

// SectionCharLimit caps stored section text. The cap is enforced after
// generation; the conciseness instruction alone is no guarantee.
const SectionCharLimit = 800

// Composer generates plan sections one at a time from a research
// narrative.
type Composer struct {
	provider llm.Provider
	progress func(string)
}

// NewComposer creates a composer. The progress callback receives a
// status line per section; pass nil to discard them.
func NewComposer(provider llm.Provider, progress func(string)) *Composer {
	if progress == nil {
		progress = func(string) {}
	}
	return &Composer{provider: provider, progress: progress}
}

// Compose generates every canonical section for subject from the
// research narrative. A failing section becomes an error placeholder
// rather than aborting the plan, so the result always has all keys
// populated.
func (c *Composer) Compose(ctx context.Context, subject, narrative string) *AccountPlan {
	p := NewAccountPlan(subject)

	// Without a generation provider the raw narrative stands in for
	// every section
	if c.provider == nil {
		for _, key := range SectionOrder {
			p.SetSection(key, CapSection(narrative))
		}
		return p
	}

	for _, key := range SectionOrder {
		c.progress(fmt.Sprintf("Writing %s...", SectionTitle(key)))

		instruction := fmt.Sprintf(
			"Based on the research about %s, write the %s section for an account plan. "+
				"Be concise: at most 3-4 bullet points or 2-3 short paragraphs. "+
				"Write in a professional business style with actionable insights.",
			subject, SectionTitle(key))

		content, err := c.provider.Generate(ctx, narrative, instruction)
		if err != nil {
			logger.Error("section %s generation failed: %v", key, err)
			p.SetSection(key, fmt.Sprintf("[Section generation failed: %v]", err))
			continue
		}
		p.SetSection(key, CapSection(content))
	}

	return p
}

// CapSection enforces the per-section character limit, marking
// truncation with an ellipsis.
func CapSection(text string) string {
	return truncate(text, SectionCharLimit)
}
