package phase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected Kind
	}{
		{Idle{}, KindIdle},
		{GatheringInfo{}, KindGatheringInfo},
		{Researching{Subject: "Microsoft"}, KindResearching},
		{Summarizing{Subject: "Microsoft"}, KindSummarizing},
		{GeneratingPlan{Subject: "Microsoft"}, KindGeneratingPlan},
		{Editing{Subject: "Microsoft"}, KindEditing},
		{Complete{Subject: "Microsoft"}, KindComplete},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.phase.Kind())
	}
}

func TestHasPendingEdit(t *testing.T) {
	assert.False(t, HasPendingEdit(Idle{}))
	assert.False(t, HasPendingEdit(Complete{Subject: "Apple"}))
	assert.False(t, HasPendingEdit(Editing{Subject: "Apple"}), "editing without a selected section has no pending edit")
	assert.True(t, HasPendingEdit(Editing{Subject: "Apple", Section: "opportunities"}))
}

func TestSubject(t *testing.T) {
	s, ok := Subject(Researching{Subject: "Tesla"})
	assert.True(t, ok)
	assert.Equal(t, "Tesla", s)

	s, ok = Subject(Editing{Subject: "Tesla", Section: "next_steps"})
	assert.True(t, ok)
	assert.Equal(t, "Tesla", s)

	_, ok = Subject(Idle{})
	assert.False(t, ok)

	_, ok = Subject(GatheringInfo{})
	assert.False(t, ok)
}
