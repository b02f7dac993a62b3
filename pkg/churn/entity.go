package churn

import "time"

// Lifecycle tags when an entity first became active relative to the
// analyzed window.
type Lifecycle uint8

const (
	// LifecycleNew marks an entity first observed inside the analyzed
	// window; FirstFile says where.
	LifecycleNew Lifecycle = iota

	// LifecyclePreexisting marks an entity present in the caller's
	// baseline set before the window started.
	LifecyclePreexisting
)

// String returns the lifecycle name.
func (l Lifecycle) String() string {
	if l == LifecyclePreexisting {
		return "pre-existing"
	}
	return "new"
}

// MarshalJSON renders the lifecycle as its name.
func (l Lifecycle) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// Pattern classifies an entity's activity shape across the run.
type Pattern uint8

const (
	PatternUnknown Pattern = iota
	PatternSingleBurst
	PatternConsistent
	PatternDeclining
	PatternSporadic
)

// String returns the pattern name.
func (p Pattern) String() string {
	switch p {
	case PatternSingleBurst:
		return "single_burst"
	case PatternConsistent:
		return "consistent"
	case PatternDeclining:
		return "declining"
	case PatternSporadic:
		return "sporadic"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the pattern as its name.
func (p Pattern) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// Entity is one distinct identity observed performing qualifying login
// events across the run. It is created on first observation, mutated by
// collection merges, and finalized (Pattern, Ephemeral, Confidence,
// Reasons) only in the classifier's second pass.
type Entity struct {
	ID          string `json:"entity_id"`
	DisplayName string `json:"display_name"`
	MountKey    string `json:"mount"`

	// FirstFile and LastFile are endpoints in the caller's file order.
	// Files holds every distinct file index the entity appeared in,
	// ascending, which equals chronological order for chronologically
	// ordered inputs.
	FirstFile int   `json:"first_file"`
	LastFile  int   `json:"last_file"`
	Files     []int `json:"files"`

	Logins    int64     `json:"logins"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`

	Lifecycle Lifecycle `json:"lifecycle"`

	Pattern    Pattern  `json:"pattern"`
	Ephemeral  bool     `json:"ephemeral"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons"`

	fileSet map[int]struct{}
}

// DaysActive returns the number of calendar days spanned by the
// entity's first and last observations, inclusive. Falls back to the
// file-appearance count when timestamps are missing.
func (e *Entity) DaysActive() int {
	if e.FirstSeen.IsZero() || e.LastSeen.IsZero() {
		return len(e.Files)
	}
	days := int(e.LastSeen.Sub(e.FirstSeen).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// Span returns the inclusive file-index distance between the entity's
// first and last appearance. A span greater than len(Files) means the
// activity had gaps.
func (e *Entity) Span() int {
	return e.LastFile - e.FirstFile + 1
}
