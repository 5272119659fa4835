package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/Achintharya/eightfold-bot/pkg/logger"
	"github.com/Achintharya/eightfold-bot/pkg/phase"
)

const farewellText = "Goodbye! Feel free to come back when you need company research or account planning."

const helpText = `I can help you research companies and build account plans.

Things you can ask me:
- "Research Acme Corp" - gather information and generate an account plan
- "Edit the challenges section" - revise part of the current plan
- "Save the plan" - write the current plan to disk
- "Status" - see where we are
- Or just name a company to get started`

const clarifyText = "I didn't catch that. Which company would you like me to research?"

const gatherSubjectText = "Sure - which company should I research?"

const planNextStepsText = `You can ask me to edit a section, save the plan, or research another company.`

const editAnotherText = `Would you like to edit another section, save the plan, or research a different company?`

// statusText reports progress for the current phase. Callers hold the
// session lock.
func (s *Session) statusText() string {
	switch p := s.phase.(type) {
	case phase.Idle:
		return "No research in progress. Name a company to get started."
	case phase.GatheringInfo:
		return "Waiting for you to tell me which company to research."
	case phase.Researching:
		return fmt.Sprintf("Currently researching %s.", p.Subject)
	case phase.Summarizing:
		return fmt.Sprintf("Summarizing research findings for %s.", p.Subject)
	case phase.GeneratingPlan:
		return fmt.Sprintf("Generating the account plan for %s.", p.Subject)
	case phase.Editing:
		if p.Section != "" {
			return fmt.Sprintf("Editing the %s section of the %s plan. Tell me what to change.", p.Section, p.Subject)
		}
		return fmt.Sprintf("Choosing a section of the %s plan to edit.", p.Subject)
	case phase.Complete:
		return fmt.Sprintf("Research and account plan for %s are complete. You can edit sections, save the plan, or start new research.", p.Subject)
	default:
		return "No research in progress."
	}
}

// generalConversation handles turns that match no routing rule. When a
// retrieval index and provider are available the answer is grounded in
// indexed research; otherwise a canned redirect keeps the session on
// topic.
func (s *Session) generalConversation(ctx context.Context, text string) string {
	const redirect = "I'm designed for company research and account planning. " +
		"Try asking me to research a company, or say \"help\" to see what I can do."

	if s.provider == nil {
		return redirect
	}

	contextText := s.narrative()
	if s.index != nil && s.subject != "" {
		snippets, err := s.index.Query(ctx, s.subject, text, 3)
		if err != nil {
			logger.Debug("retrieval query failed: %v", err)
		} else if len(snippets) > 0 {
			contextText = strings.Join(snippets, "\n\n")
		}
	}

	instruction := text
	if contextText != "" {
		instruction = fmt.Sprintf(
			"Answer the user's question using the research context where relevant. "+
				"If the question is unrelated to the research, answer briefly and steer back to company research.\n\nQuestion: %s",
			text)
	}

	answer, err := s.provider.Generate(ctx, contextText, instruction)
	if err != nil {
		logger.Debug("general conversation fallback failed: %v", err)
		return redirect
	}
	return answer
}
