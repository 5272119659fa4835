// Package phase models the research lifecycle as a set of explicit
// variants. Each phase carries the data it needs, so callers never
// infer state from the presence of loose attributes.
package phase

// Kind identifies a phase variant
type Kind string

const (
	KindIdle           Kind = "idle"
	KindGatheringInfo  Kind = "gathering_info"
	KindResearching    Kind = "researching"
	KindSummarizing    Kind = "summarizing"
	KindGeneratingPlan Kind = "generating_plan"
	KindEditing        Kind = "editing"
	KindComplete       Kind = "complete"
)

// Phase is the sealed set of lifecycle states. Only the types in this
// package implement it.
type Phase interface {
	Kind() Kind
	isPhase()
}

// Idle is the starting phase: no subject, nothing in flight.
type Idle struct{}

// GatheringInfo means the agent asked for a subject name and the next
// user turn is treated as the answer.
type GatheringInfo struct{}

// Researching means web research for Subject is in progress.
type Researching struct {
	Subject string
}

// Summarizing means extracted sources for Subject are being condensed.
type Summarizing struct {
	Subject string
}

// GeneratingPlan means plan sections for Subject are being composed.
type GeneratingPlan struct {
	Subject string
}

// Editing means the section-editing sub-protocol is active. Section is
// empty while the agent is still asking which section to edit, and
// names the pending section once one has been selected.
type Editing struct {
	Subject string
	Section string
}

// Complete means a full plan exists for Subject.
type Complete struct {
	Subject string
}

func (Idle) Kind() Kind           { return KindIdle }
func (GatheringInfo) Kind() Kind  { return KindGatheringInfo }
func (Researching) Kind() Kind    { return KindResearching }
func (Summarizing) Kind() Kind    { return KindSummarizing }
func (GeneratingPlan) Kind() Kind { return KindGeneratingPlan }
func (Editing) Kind() Kind        { return KindEditing }
func (Complete) Kind() Kind       { return KindComplete }

func (Idle) isPhase()           {}
func (GatheringInfo) isPhase()  {}
func (Researching) isPhase()    {}
func (Summarizing) isPhase()    {}
func (GeneratingPlan) isPhase() {}
func (Editing) isPhase()        {}
func (Complete) isPhase()       {}

// HasPendingEdit reports whether p is an Editing phase with a section
// already selected.
func HasPendingEdit(p Phase) bool {
	e, ok := p.(Editing)
	return ok && e.Section != ""
}

// Subject returns the subject carried by p, if any.
func Subject(p Phase) (string, bool) {
	switch v := p.(type) {
	case Researching:
		return v.Subject, true
	case Summarizing:
		return v.Subject, true
	case GeneratingPlan:
		return v.Subject, true
	case Editing:
		return v.Subject, true
	case Complete:
		return v.Subject, true
	default:
		return "", false
	}
}
