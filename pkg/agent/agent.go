// Package agent implements the conversational session that turns user
// input into research and plan-editing actions. Each Session is an
// independent conversation; there is no shared global agent.
package agent

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Achintharya/eightfold-bot/pkg/cache"
	"github.com/Achintharya/eightfold-bot/pkg/chat"
	"github.com/Achintharya/eightfold-bot/pkg/intent"
	"github.com/Achintharya/eightfold-bot/pkg/llm"
	"github.com/Achintharya/eightfold-bot/pkg/logger"
	"github.com/Achintharya/eightfold-bot/pkg/phase"
	"github.com/Achintharya/eightfold-bot/pkg/plan"
	"github.com/Achintharya/eightfold-bot/pkg/research"
	"github.com/Achintharya/eightfold-bot/pkg/retrieval"
	"github.com/Achintharya/eightfold-bot/pkg/subject"
	"github.com/Achintharya/eightfold-bot/pkg/summarize"
	"github.com/Achintharya/eightfold-bot/pkg/websearch"
)

// Options collects the collaborators a session needs. Cache and Plans
// may be shared across sessions; everything else is stateless.
type Options struct {
	Searcher   websearch.Searcher
	Summarizer summarize.Summarizer
	Provider   llm.Provider
	Cache      *cache.Store
	Plans      *plan.Store
	Index      *retrieval.Index // optional; enables grounded fallback answers
}

// Session is one conversation. Turns are processed strictly
// sequentially; the mutex enforces the one-in-flight-turn contract for
// callers that forget to serialize.
type Session struct {
	mu sync.Mutex

	id          string
	classifier  *intent.Classifier
	coordinator *research.Coordinator
	composer    *plan.Composer
	provider    llm.Provider
	cache       *cache.Store
	plans       *plan.Store
	index       *retrieval.Index

	conversation chat.Conversation
	phase        phase.Phase
	subject      string
	bundle       *research.Bundle
	plan         *plan.AccountPlan

	// turn accumulates progress lines emitted while the current turn
	// is being processed
	turn strings.Builder
}

// NewSession creates a fresh conversation session
func NewSession(opts Options) *Session {
	s := &Session{
		id:           uuid.NewString(),
		classifier:   intent.NewClassifier(),
		provider:     opts.Provider,
		cache:        opts.Cache,
		plans:        opts.Plans,
		index:        opts.Index,
		conversation: chat.NewConversation(),
		phase:        phase.Idle{},
	}
	if s.cache == nil {
		s.cache = cache.NewStore()
	}

	progress := func(line string) {
		s.turn.WriteString(line)
		s.turn.WriteString("\n")
	}
	s.coordinator = research.NewCoordinator(opts.Searcher, opts.Summarizer, progress)
	s.composer = plan.NewComposer(opts.Provider, progress)

	return s
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Phase returns the current lifecycle phase
func (s *Session) Phase() phase.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Subject returns the current subject, if any
func (s *Session) Subject() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subject
}

// History returns a copy of the conversation so far
func (s *Session) History() []chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return chat.GetMessages(s.conversation)
}

// Plan returns the active account plan, if any
func (s *Session) Plan() *plan.AccountPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan
}

// ProcessInput handles one user turn and returns the agent's response.
// Failures never escape as errors; they are folded into the response
// text and the session stays usable.
func (s *Session) ProcessInput(ctx context.Context, text string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversation = chat.AddMessage(s.conversation, chat.NewUserMessage(text))

	response := s.route(ctx, strings.TrimSpace(text))

	s.conversation = chat.AddMessage(s.conversation, chat.NewAgentMessage(response))
	return response
}

func (s *Session) route(ctx context.Context, text string) string {
	s.turn.Reset()

	// A pending edit captures the next turn as its instructions
	if phase.HasPendingEdit(s.phase) {
		return s.applyPendingEdit(ctx, text)
	}

	// Mid-section-selection: try to resolve the section from this turn
	// before falling back to general routing
	if editing, ok := s.phase.(phase.Editing); ok && editing.Section == "" {
		if key, found := matchSection(text); found {
			return s.selectSection(key)
		}
	}

	category := s.classifier.Classify(intent.Input{
		Text:  text,
		Phase: s.phase.Kind(),
	})
	logger.Debug("session %s classified %q as %s", s.id, text, category)

	switch category {
	case intent.CategoryExit:
		return farewellText
	case intent.CategoryHelp:
		return helpText
	case intent.CategorySavePlan:
		return s.savePlan()
	case intent.CategoryStatusCheck:
		return s.statusText()
	case intent.CategoryEditRequest:
		return s.handleEditRequest(text)
	case intent.CategoryClarification:
		return s.handleClarification(ctx, text)
	case intent.CategorySubjectName:
		return s.handleSubject(ctx, subject.Extract(text))
	default:
		return s.generalConversation(ctx, text)
	}
}

// handleClarification covers both empty input and the turn that
// answers a "which company?" question.
func (s *Session) handleClarification(ctx context.Context, text string) string {
	if text == "" || len(text) < 2 {
		return clarifyText
	}
	if _, ok := s.phase.(phase.GatheringInfo); ok {
		// The whole turn is the missing subject name
		return s.handleSubject(ctx, subject.Extract(text))
	}
	return clarifyText
}

// GetStatus reports the session's current progress
func (s *Session) GetStatus() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusText()
}

// GetPlanSummary returns the condensed view of the active plan
func (s *Session) GetPlanSummary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return plan.Summary(s.plan)
}

// ClearCache drops cached research and plans. An empty subject clears
// everything.
func (s *Session) ClearCache(subjectName string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if subjectName == "" {
		s.cache.ClearAll()
		return "All cached research and plans cleared."
	}
	s.cache.Clear(subjectName)
	return "Cache cleared for " + subject.Normalize(subjectName) + "."
}
