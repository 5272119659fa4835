package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/Achintharya/eightfold-bot/pkg/chat"
	"github.com/Achintharya/eightfold-bot/pkg/logger"
	"github.com/Achintharya/eightfold-bot/pkg/phase"
	"github.com/Achintharya/eightfold-bot/pkg/plan"
)

// sectionKeywords maps input keywords to section keys. The list is
// ordered; the first match wins.
var sectionKeywords = []struct {
	keyword string
	section string
}{
	{"executive", plan.SectionExecutiveSummary},
	{"summary", plan.SectionExecutiveSummary},
	{"challenge", plan.SectionKeyChallenges},
	{"opportunit", plan.SectionOpportunities},
	{"solution", plan.SectionProposedSolutions},
	{"next step", plan.SectionNextSteps},
	{"step", plan.SectionNextSteps},
}

// Edit-mode keyword tables, checked in priority order: regenerate
// beats enhance beats verbatim replacement.
var (
	regenerateKeywords = []string{"regenerate", "rewrite", "redo", "create again"}
	enhanceKeywords    = []string{"add", "include", "focus on", "emphasize", "expand"}
	focusMarkers       = []string{"focus on", "emphasize"}
)

// matchSection scans text for a section keyword
func matchSection(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, entry := range sectionKeywords {
		if strings.Contains(lower, entry.keyword) {
			return entry.section, true
		}
	}
	return "", false
}

// handleEditRequest enters the section-editing sub-protocol: pick a
// section from the input, or ask which one when none matches.
func (s *Session) handleEditRequest(text string) string {
	if s.plan == nil {
		return "There's no account plan to edit yet. Research a company first."
	}

	key, found := matchSection(text)
	if !found {
		s.phase = phase.Editing{Subject: s.subject}
		var b strings.Builder
		b.WriteString("Which section would you like to edit? Available sections:\n")
		for _, k := range plan.SectionOrder {
			fmt.Fprintf(&b, "- %s\n", plan.SectionTitle(k))
		}
		return strings.TrimRight(b.String(), "\n")
	}

	return s.selectSection(key)
}

// selectSection records the pending edit and shows the current content
// with the available edit modes.
func (s *Session) selectSection(key string) string {
	s.phase = phase.Editing{Subject: s.subject, Section: key}

	content, _ := s.plan.Section(key)
	divider := strings.Repeat("-", 40)

	return fmt.Sprintf(`Current %s content:
%s
%s
%s

You can:
1. Replace: provide new content for this section
2. Regenerate: say "regenerate with focus on [aspect]"
3. Enhance: say "add [what to add]" or "expand on [topic]"

What changes would you like to make?`,
		plan.SectionTitle(key), divider, content, divider)
}

// applyPendingEdit resolves the edit mode from the instructions and
// applies it to the pending section. The pending edit is always
// cleared afterwards, success or not, so the sub-protocol exits to a
// known state.
func (s *Session) applyPendingEdit(ctx context.Context, instructions string) string {
	editing := s.phase.(phase.Editing)
	key := editing.Section

	defer func() {
		s.phase = phase.Complete{Subject: s.subject}
	}()

	lower := strings.ToLower(instructions)
	switch {
	case containsAny(lower, regenerateKeywords):
		return s.regenerateSection(ctx, key, instructions)
	case containsAny(lower, enhanceKeywords):
		return s.enhanceSection(ctx, key, instructions)
	default:
		s.plan.SetSection(key, instructions)
		s.cache.PutPlan(s.subject, s.plan)
		return fmt.Sprintf("%s has been updated.\n\n%s", plan.SectionTitle(key), editAnotherText)
	}
}

// regenerateSection rewrites a section from scratch, optionally
// steered by a focus phrase pulled from the instructions.
func (s *Session) regenerateSection(ctx context.Context, key, instructions string) string {
	if s.provider == nil {
		return "Section regeneration needs a generation provider, which isn't configured.\nThe existing content is unchanged."
	}

	focus := extractFocus(instructions)

	instruction := fmt.Sprintf(
		"Based on the research about %s, regenerate the %s section for an account plan. ",
		s.subject, plan.SectionTitle(key))
	if focus != "" {
		instruction += fmt.Sprintf("Focus particularly on: %s. ", focus)
	}
	instruction += "Write in a professional business style with actionable insights."

	content, err := s.provider.Generate(ctx, s.narrative(), instruction)
	if err != nil {
		logger.Error("regenerate %s failed: %v", key, err)
		return fmt.Sprintf("Error regenerating section: %v\nThe existing content is unchanged.", err)
	}

	s.plan.SetSection(key, plan.CapSection(content))
	s.cache.PutPlan(s.subject, s.plan)

	suffix := ""
	if focus != "" {
		suffix = fmt.Sprintf(" with focus on %s", focus)
	}
	return fmt.Sprintf("%s has been regenerated%s.\n\nNew content:\n%s\n\n%s",
		plan.SectionTitle(key), suffix, plan.CapSection(content), editAnotherText)
}

// enhanceSection asks the provider to keep the current content and
// fold in the requested change.
func (s *Session) enhanceSection(ctx context.Context, key, instructions string) string {
	if s.provider == nil {
		return "Section enhancement needs a generation provider, which isn't configured.\nThe existing content is unchanged."
	}

	current, _ := s.plan.Section(key)

	instruction := fmt.Sprintf(
		"Current %s content:\n%s\n\nUser request: %s\n\n"+
			"Enhance this section per the request. Keep the existing content and add the requested improvements. "+
			"Write in a professional business style.",
		plan.SectionTitle(key), current, instructions)

	content, err := s.provider.Generate(ctx, s.narrative(), instruction)
	if err != nil {
		logger.Error("enhance %s failed: %v", key, err)
		return fmt.Sprintf("Error enhancing section: %v\nThe existing content is unchanged.", err)
	}

	s.plan.SetSection(key, plan.CapSection(content))
	s.cache.PutPlan(s.subject, s.plan)

	return fmt.Sprintf("%s has been enhanced.\n\nUpdated content:\n%s\n\n%s",
		plan.SectionTitle(key), plan.CapSection(content), editAnotherText)
}

// EditSection applies instructions to a named section directly. This
// is the entry point for callers that already know the section, like
// the HTTP layer.
func (s *Session) EditSection(ctx context.Context, key, instructions string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.plan == nil {
		return "There's no account plan to edit yet. Research a company first."
	}
	if !plan.ValidSection(key) {
		return fmt.Sprintf("Unknown section %q.", key)
	}

	s.conversation = chat.AddMessage(s.conversation, chat.NewUserMessage(instructions))
	s.phase = phase.Editing{Subject: s.subject, Section: key}
	response := s.applyPendingEdit(ctx, instructions)
	s.conversation = chat.AddMessage(s.conversation, chat.NewAgentMessage(response))
	return response
}

// extractFocus pulls the phrase following a focus marker
func extractFocus(instructions string) string {
	lower := strings.ToLower(instructions)
	for _, marker := range focusMarkers {
		if idx := strings.Index(lower, marker); idx >= 0 {
			return strings.TrimSpace(lower[idx+len(marker):])
		}
	}
	return ""
}

// narrative returns the active research narrative, empty when no
// bundle is loaded.
func (s *Session) narrative() string {
	if s.bundle == nil {
		return ""
	}
	return s.bundle.Narrative
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
