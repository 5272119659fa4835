// Package intent classifies raw user turns into routing categories.
// Classification is rule-based: an explicit, priority-ordered table of
// keyword rules, with a generative fallback as the residual category.
package intent

import (
	"sort"
	"strings"

	"github.com/Achintharya/eightfold-bot/pkg/phase"
	"github.com/Achintharya/eightfold-bot/pkg/subject"
)

// Category is the routing decision for one user turn
type Category string

const (
	CategoryExit          Category = "exit"
	CategoryHelp          Category = "help"
	CategorySavePlan      Category = "save_plan"
	CategoryStatusCheck   Category = "status_check"
	CategoryEditRequest   Category = "edit_request"
	CategoryClarification Category = "clarification"
	CategorySubjectName   Category = "subject_name"
	CategoryLLMFallback   Category = "llm_fallback"
)

// Input carries the turn text plus the state the rules may consult
type Input struct {
	Text  string
	Phase phase.Kind
}

// Rule is one classification rule. Rules fire in priority order,
// highest first; the first match wins.
type Rule struct {
	Name      string
	Condition func(Input) bool
	Category  Category
	Priority  int
}

// Classifier routes turns through its rule table
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier with the default rule table
func NewClassifier() *Classifier {
	c := &Classifier{}
	c.rules = defaultRules()
	c.sortRules()
	return c
}

// Classify returns the category for one turn. Ties are impossible:
// the table is ordered and the first matching rule decides.
func (c *Classifier) Classify(in Input) Category {
	in.Text = strings.TrimSpace(in.Text)
	for _, rule := range c.rules {
		if rule.Condition(in) {
			return rule.Category
		}
	}
	return CategoryLLMFallback
}

// AddRule adds a custom rule and re-sorts the table
func (c *Classifier) AddRule(rule Rule) {
	c.rules = append(c.rules, rule)
	c.sortRules()
}

// Rules returns the active table in evaluation order
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

func (c *Classifier) sortRules() {
	sort.SliceStable(c.rules, func(i, j int) bool {
		return c.rules[i].Priority > c.rules[j].Priority
	})
}

// Keyword tables for the default rules
var (
	exitKeywords   = []string{"exit", "quit", "bye", "goodbye"}
	helpKeywords   = []string{"help", "what can you do", "how do you work"}
	saveKeywords   = []string{"save", "export", "store", "keep"}
	statusKeywords = []string{"status", "progress", "how's it going", "update"}
	editKeywords   = []string{"edit", "change", "modify", "regenerate", "improve", "refine"}
)

func defaultRules() []Rule {
	return []Rule{
		{
			Name: "empty_input",
			Condition: func(in Input) bool {
				return len(in.Text) < 2
			},
			Category: CategoryClarification,
			Priority: 100,
		},
		{
			Name: "exit_keywords",
			Condition: func(in Input) bool {
				return containsAny(in.Text, exitKeywords)
			},
			Category: CategoryExit,
			Priority: 90,
		},
		{
			Name: "help_keywords",
			Condition: func(in Input) bool {
				return containsAny(in.Text, helpKeywords)
			},
			Category: CategoryHelp,
			Priority: 80,
		},
		{
			Name: "save_keywords",
			Condition: func(in Input) bool {
				return containsAny(in.Text, saveKeywords)
			},
			Category: CategorySavePlan,
			Priority: 70,
		},
		{
			Name: "status_keywords",
			Condition: func(in Input) bool {
				return containsAny(in.Text, statusKeywords)
			},
			Category: CategoryStatusCheck,
			Priority: 60,
		},
		{
			Name: "edit_keywords",
			Condition: func(in Input) bool {
				return containsAny(in.Text, editKeywords)
			},
			Category: CategoryEditRequest,
			Priority: 50,
		},
		{
			Name: "awaiting_subject",
			Condition: func(in Input) bool {
				return in.Phase == phase.KindGatheringInfo
			},
			Category: CategoryClarification,
			Priority: 40,
		},
		{
			Name: "subject_mention",
			Condition: func(in Input) bool {
				return subject.Matches(in.Text)
			},
			Category: CategorySubjectName,
			Priority: 30,
		},
		{
			Name: "generative_fallback",
			Condition: func(in Input) bool {
				return true
			},
			Category: CategoryLLMFallback,
			Priority: 1,
		},
	}
}

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
