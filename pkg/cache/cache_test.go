package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Achintharya/eightfold-bot/pkg/plan"
	"github.com/Achintharya/eightfold-bot/pkg/research"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "microsoft", Key("Microsoft"))
	assert.Equal(t, "palo alto networks", Key("  Palo   Alto  NETWORKS "))
	assert.Equal(t, Key("ACME corp"), Key("acme Corp"))
}

func TestResearchRoundTrip(t *testing.T) {
	s := NewStore()

	_, ok := s.GetResearch("Acme")
	assert.False(t, ok)

	bundle := &research.Bundle{Subject: "Acme", Narrative: "widgets"}
	s.PutResearch("Acme", bundle)

	got, ok := s.GetResearch("acme")
	require.True(t, ok, "lookup must be case-insensitive")
	assert.Same(t, bundle, got)

	got, ok = s.GetResearch("  ACME  ")
	require.True(t, ok, "lookup must collapse whitespace")
	assert.Same(t, bundle, got)
}

func TestPlanRoundTrip(t *testing.T) {
	s := NewStore()

	p := plan.NewAccountPlan("Acme")
	p.SetSection(plan.SectionNextSteps, "call them")
	s.PutPlan("Acme", p)

	got, ok := s.GetPlan("acme")
	require.True(t, ok)
	assert.Equal(t, p, got)
	assert.NotSame(t, p, got, "cached plans must not alias the caller's pointer")
}

func TestGetPlanReturnsIsolatedCopy(t *testing.T) {
	s := NewStore()

	p := plan.NewAccountPlan("Acme")
	p.SetSection(plan.SectionNextSteps, "original")
	s.PutPlan("Acme", p)

	// Mutating the stored-from pointer must not reach the cache
	p.SetSection(plan.SectionNextSteps, "changed after put")
	got, ok := s.GetPlan("Acme")
	require.True(t, ok)
	text, _ := got.Section(plan.SectionNextSteps)
	assert.Equal(t, "original", text)

	// Mutating a retrieved copy must not reach the cache either
	got.SetSection(plan.SectionNextSteps, "changed after get")
	again, ok := s.GetPlan("Acme")
	require.True(t, ok)
	text, _ = again.Section(plan.SectionNextSteps)
	assert.Equal(t, "original", text)
}

func TestConcurrentPlanEditsAndReads(t *testing.T) {
	s := NewStore()
	base := plan.NewAccountPlan("Acme")
	for _, key := range plan.SectionOrder {
		base.SetSection(key, "seed content")
	}
	s.PutPlan("Acme", base)

	// One writer edits and re-caches; one reader renders summaries.
	// Shared-cache sessions do exactly this from different goroutines.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for n := 0; n < 200; n++ {
			p, ok := s.GetPlan("Acme")
			if !ok {
				continue
			}
			p.SetSection(plan.SectionNextSteps, fmt.Sprintf("revision %d", n))
			s.PutPlan("Acme", p)
		}
	}()
	go func() {
		defer wg.Done()
		for n := 0; n < 200; n++ {
			if p, ok := s.GetPlan("Acme"); ok {
				_ = plan.Summary(p)
			}
		}
	}()
	wg.Wait()

	got, ok := s.GetPlan("Acme")
	require.True(t, ok)
	text, _ := got.Section(plan.SectionNextSteps)
	assert.Contains(t, text, "revision")
}

func TestClearSubjectRemovesBothEntries(t *testing.T) {
	s := NewStore()
	s.PutResearch("Acme", &research.Bundle{Subject: "Acme"})
	s.PutPlan("Acme", plan.NewAccountPlan("Acme"))
	s.PutResearch("Other", &research.Bundle{Subject: "Other"})

	s.Clear("ACME")

	_, ok := s.GetResearch("Acme")
	assert.False(t, ok)
	_, ok = s.GetPlan("Acme")
	assert.False(t, ok)

	_, ok = s.GetResearch("Other")
	assert.True(t, ok, "clearing one subject must not touch others")
}

func TestClearAbsentSubjectIsNoOp(t *testing.T) {
	s := NewStore()
	assert.NotPanics(t, func() { s.Clear("Ghost") })
	assert.NotPanics(t, func() { s.Clear("Ghost") })
}

func TestClearAllEmptiesBothMappings(t *testing.T) {
	s := NewStore()
	s.PutResearch("A", &research.Bundle{Subject: "A"})
	s.PutResearch("B", &research.Bundle{Subject: "B"})
	s.PutPlan("A", plan.NewAccountPlan("A"))

	s.ClearAll()

	researchEntries, planEntries := s.Len()
	assert.Zero(t, researchEntries)
	assert.Zero(t, planEntries)

	_, ok := s.GetResearch("A")
	assert.False(t, ok)
}

func TestOverwriteReplacesEntry(t *testing.T) {
	s := NewStore()
	first := &research.Bundle{Subject: "Acme", Narrative: "v1"}
	second := &research.Bundle{Subject: "Acme", Narrative: "v2"}

	s.PutResearch("Acme", first)
	s.PutResearch("acme", second)

	got, ok := s.GetResearch("Acme")
	require.True(t, ok)
	assert.Equal(t, "v2", got.Narrative)
}
