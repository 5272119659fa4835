// Package cache holds per-subject research bundles and account plans
// for the lifetime of the process. There is no eviction and no
// persistence; entries go away on explicit clear or restart.
package cache

import (
	"strings"
	"sync"

	"github.com/Achintharya/eightfold-bot/pkg/plan"
	"github.com/Achintharya/eightfold-bot/pkg/research"
)

// Store maps normalized subject names to cached research bundles and
// generated plans. The two mappings are independent: a subject may
// have research without a plan, never the reverse.
type Store struct {
	mu       sync.RWMutex
	research map[string]*research.Bundle
	plans    map[string]*plan.AccountPlan
}

// NewStore creates an empty cache store
func NewStore() *Store {
	return &Store{
		research: make(map[string]*research.Bundle),
		plans:    make(map[string]*plan.AccountPlan),
	}
}

// Key normalizes a subject name into a cache key. Names differing only
// in case or whitespace map to the same entry.
func Key(subject string) string {
	return strings.ToLower(strings.Join(strings.Fields(subject), " "))
}

// GetResearch returns the cached research bundle for subject, if any
func (s *Store) GetResearch(subject string) (*research.Bundle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.research[Key(subject)]
	return b, ok
}

// PutResearch caches a research bundle, overwriting any prior entry
func (s *Store) PutResearch(subject string, bundle *research.Bundle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.research[Key(subject)] = bundle
}

// GetPlan returns the cached account plan for subject, if any. The
// result is a deep copy: plans are edited in place by sessions, and
// the cache is shared across sessions, so handing out the stored
// pointer would let one session's edit race another's read.
func (s *Store) GetPlan(subject string) (*plan.AccountPlan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.plans[Key(subject)]
	return p.Clone(), ok
}

// PutPlan caches a deep copy of the plan, overwriting any prior entry
func (s *Store) PutPlan(subject string, p *plan.AccountPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[Key(subject)] = p.Clone()
}

// Clear removes the given subject from both mappings. Clearing an
// absent subject is a no-op.
func (s *Store) Clear(subject string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := Key(subject)
	delete(s.research, key)
	delete(s.plans, key)
}

// ClearAll empties both mappings
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.research = make(map[string]*research.Bundle)
	s.plans = make(map[string]*plan.AccountPlan)
}

// Len returns the number of research and plan entries
func (s *Store) Len() (researchEntries, planEntries int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.research), len(s.plans)
}
