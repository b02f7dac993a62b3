package churn

import (
	"fmt"

	"github.com/logsieve/logsieve/internal/model"
)

// shortLived is a transient sample harvested from entities active in
// at most cfg.ShortLivedFiles files. It exists only to compute
// similarity counts during scoring and is discarded afterwards.
type shortLived struct {
	byMount  map[string]int
	byPrefix map[string]int
	byBoth   map[string]int
}

func sampleShortLived(cfg Config, entities []*Entity) *shortLived {
	s := &shortLived{
		byMount:  make(map[string]int),
		byPrefix: make(map[string]int),
		byBoth:   make(map[string]int),
	}
	for _, e := range entities {
		if len(e.Files) > cfg.ShortLivedFiles {
			continue
		}
		mount := e.MountKey
		prefix := model.NamePrefix(e.DisplayName)
		s.byMount[mount]++
		s.byPrefix[prefix]++
		s.byBoth[mount+"\x00"+prefix]++
	}
	return s
}

// similarOthers returns how many other short-lived entities share the
// entity's mount key or name prefix, by inclusion-exclusion over the
// sample maps.
func (s *shortLived) similarOthers(e *Entity) int {
	mount := e.MountKey
	prefix := model.NamePrefix(e.DisplayName)
	union := s.byMount[mount] + s.byPrefix[prefix] - s.byBoth[mount+"\x00"+prefix]
	if union < 1 {
		return 0
	}
	return union - 1 // exclude the entity itself
}

// classify populates Pattern, Ephemeral, Confidence, and Reasons for
// every entity. Pure scoring: it has no error path.
func classify(cfg Config, totalFiles int, entities []*Entity) {
	sample := sampleShortLived(cfg, entities)

	for _, e := range entities {
		e.Pattern = activityPattern(cfg, totalFiles, e)
		scoreEphemeral(cfg, totalFiles, sample, e)
	}
}

// activityPattern applies the decision table over file-appearance
// counts and run position.
func activityPattern(cfg Config, totalFiles int, e *Entity) Pattern {
	n := len(e.Files)
	switch {
	case n <= 1:
		return PatternSingleBurst
	case n == totalFiles || float64(n) >= cfg.ConsistentFraction*float64(totalFiles):
		return PatternConsistent
	case float64(e.LastFile) < float64(totalFiles)/2:
		return PatternDeclining
	case e.DaysActive() <= cfg.SingleBurstDays:
		return PatternSingleBurst
	default:
		return PatternSporadic
	}
}

// scoreEphemeral builds the additive confidence score, applies the gap
// penalty, and caps the result at 1.0.
func scoreEphemeral(cfg Config, totalFiles int, sample *shortLived, e *Entity) {
	n := len(e.Files)
	conf := 0.0
	var reasons []string

	switch n {
	case 1:
		conf += cfg.SingleFileWeight
		reasons = append(reasons, "active in only 1 file")
	case 2:
		conf += cfg.TwoFileWeight
		reasons = append(reasons, "active in only 2 files")
	}

	if n <= cfg.ShortLivedFiles {
		if others := sample.similarOthers(e); others > cfg.SimilarCutoff {
			conf += cfg.SimilarManyWeight
			reasons = append(reasons, fmt.Sprintf("%d similar short-lived entities share mount or name prefix", others))
		} else if others >= 1 {
			conf += cfg.SimilarSomeWeight
			reasons = append(reasons, fmt.Sprintf("%d similar short-lived entities share mount or name prefix", others))
		}

		if e.Logins <= cfg.LowEventMax {
			conf += cfg.LowEventWeight
			reasons = append(reasons, fmt.Sprintf("low event count (%d logins)", e.Logins))
		}
	}

	if n >= 2 && e.Span() > n {
		conf *= cfg.GapPenalty
		reasons = append(reasons, fmt.Sprintf("gapped activity: spans %d files but active in %d", e.Span(), n))
	}

	if conf > 1.0 {
		conf = 1.0
	}

	e.Confidence = conf
	e.Ephemeral = conf >= cfg.EphemeralThreshold

	if e.Ephemeral && n < totalFiles {
		if recent := totalFiles - 1 - e.LastFile; recent > 0 {
			reasons = append(reasons, fmt.Sprintf("not seen in most recent %d files", recent))
		} else {
			reasons = append(reasons, fmt.Sprintf("absent from %d of %d files", totalFiles-n, totalFiles))
		}
	}
	e.Reasons = reasons
}
