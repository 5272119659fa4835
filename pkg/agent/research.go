package agent

import (
	"context"
	"fmt"

	"github.com/Achintharya/eightfold-bot/pkg/chat"
	"github.com/Achintharya/eightfold-bot/pkg/logger"
	"github.com/Achintharya/eightfold-bot/pkg/phase"
	"github.com/Achintharya/eightfold-bot/pkg/plan"
	"github.com/Achintharya/eightfold-bot/pkg/subject"
)

// Research starts or resumes research on a named subject directly,
// bypassing intent classification. Callers that already know the
// subject, like the HTTP layer, use this instead of ProcessInput.
func (s *Session) Research(ctx context.Context, name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turn.Reset()
	response := s.handleSubject(ctx, subject.Extract(name))

	s.conversation = chat.AddMessage(s.conversation, chat.NewUserMessage("research "+name))
	s.conversation = chat.AddMessage(s.conversation, chat.NewAgentMessage(response))
	return response
}

// handleSubject drives the research stage for an extracted subject
// name. Cached results short-circuit: a subject with both research and
// a plan never triggers an external call again.
func (s *Session) handleSubject(ctx context.Context, name string) string {
	if name == "" {
		s.phase = phase.GatheringInfo{}
		return gatherSubjectText
	}

	s.subject = name

	cachedBundle, hasResearch := s.cache.GetResearch(name)
	if hasResearch {
		if cachedPlan, hasPlan := s.cache.GetPlan(name); hasPlan {
			s.bundle = cachedBundle
			s.plan = cachedPlan
			s.phase = phase.Complete{Subject: name}
			logger.Info("cache hit for %s: research and plan", name)

			return fmt.Sprintf("I have existing research for %s. Loading the existing account plan.\n\n%s\n\n%s",
				name, plan.Summary(cachedPlan), planNextStepsText)
		}

		// Research is cached but no plan exists yet: reuse the
		// narrative and skip straight to composition
		logger.Info("cache hit for %s: research only", name)
		s.bundle = cachedBundle
		s.phase = phase.GeneratingPlan{Subject: name}

		header := fmt.Sprintf("I have existing research for %s. Generating a new account plan from it...\n", name)
		return header + s.composePlan(ctx)
	}

	return s.freshResearch(ctx, name)
}

// freshResearch runs the full research pipeline and then composes the
// plan. Collaborator failures reset the session to idle so a new
// attempt can start cleanly.
func (s *Session) freshResearch(ctx context.Context, name string) string {
	s.phase = phase.Researching{Subject: name}
	s.turn.WriteString(fmt.Sprintf("Starting fresh research on %s...\n", name))
	s.turn.WriteString("I'll gather information about this company from multiple sources...\n")

	bundle, err := s.coordinator.Research(ctx, name)
	if err != nil {
		s.phase = phase.Idle{}
		logger.Error("research failed for %s: %v", name, err)
		return s.turn.String() + fmt.Sprintf("\nError during research: %v\nYou can try again or pick another company.", err)
	}

	s.phase = phase.Summarizing{Subject: name}
	s.bundle = bundle
	s.cache.PutResearch(name, bundle)

	if s.index != nil {
		if err := s.index.IndexBundle(ctx, bundle); err != nil {
			logger.Warn("failed to index research for %s: %v", name, err)
		}
	}

	s.turn.WriteString("Update: research complete.\n")

	s.phase = phase.GeneratingPlan{Subject: name}
	return s.composePlan(ctx)
}

// composePlan generates all plan sections from the active research
// bundle, caches the result, and persists it.
func (s *Session) composePlan(ctx context.Context) string {
	p := s.composer.Compose(ctx, s.subject, s.bundle.Narrative)

	s.plan = p
	s.cache.PutPlan(s.subject, p)
	s.phase = phase.Complete{Subject: s.subject}

	saved := ""
	if s.plans != nil {
		result, err := s.plans.Save(p, s.bundle.Narrative)
		if err != nil {
			logger.Warn("failed to persist plan for %s: %v", s.subject, err)
		} else {
			saved = fmt.Sprintf("Account plan saved to %s\n\n", result.MarkdownPath)
		}
	}

	out := s.turn.String() + "\n" + saved + plan.Summary(p)
	s.turn.Reset()
	return out
}

// savePlan persists the active plan on explicit request
func (s *Session) savePlan() string {
	if s.plan == nil || s.subject == "" {
		return "No account plan to save. Please research a company first."
	}
	if s.plans == nil {
		return "Plan saving is not configured."
	}

	narrative := ""
	if s.bundle != nil {
		narrative = s.bundle.Narrative
	}

	result, err := s.plans.Save(s.plan, narrative)
	if err != nil {
		logger.Error("failed to save plan for %s: %v", s.subject, err)
		return fmt.Sprintf("Error saving plan: %v", err)
	}

	return fmt.Sprintf("Account plan saved.\n\nFiles created:\n- %s (timestamped)\n- %s (latest)\n- %s (structured data)",
		result.MarkdownPath, result.LatestPath, result.JSONPath)
}
