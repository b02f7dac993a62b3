// Package churn classifies entity lifecycle and churn across an
// ordered sequence of audit log files, typically one file per day.
//
// The analysis runs in two passes. Pass 1 streams every file through
// the processing engine and collects one Entity per distinct identity
// seen performing a qualifying login event. Pass 2 learns short-lived
// activity patterns from the collected entities and scores each one
// for ephemeral (automation-driven) usage.
package churn

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/logsieve/logsieve/internal/model"
	"github.com/logsieve/logsieve/pkg/engine"
)

// Analyzer runs the two-pass lifecycle classification.
type Analyzer struct {
	cfg      Config
	opts     engine.Options
	baseline map[string]struct{}
}

// New creates an Analyzer with the given heuristic constants.
func New(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// WithEngineOptions sets the processing engine options (mode, workers,
// progress output) for pass 1.
func (a *Analyzer) WithEngineOptions(opts engine.Options) *Analyzer {
	a.opts = opts
	return a
}

// WithBaseline supplies the set of entity IDs known to exist before
// the analyzed window. Entities in the baseline are tagged
// pre-existing; everything else is new at its first file.
func (a *Analyzer) WithBaseline(ids []string) *Analyzer {
	a.baseline = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		a.baseline[id] = struct{}{}
	}
	return a
}

// Report is the classifier's output: one finalized Entity per observed
// identity, plus run metadata.
type Report struct {
	RunID       string        `json:"run_id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Files       []string      `json:"files"`
	Entities    []*Entity     `json:"entities"`
	Stats       *engine.Stats `json:"-"`
}

// EphemeralCount returns how many entities were flagged ephemeral.
func (r *Report) EphemeralCount() int {
	n := 0
	for _, e := range r.Entities {
		if e.Ephemeral {
			n++
		}
	}
	return n
}

// Run analyzes the files, which must be in chronological order.
func (a *Analyzer) Run(ctx context.Context, files []string) (*Report, error) {
	opts := a.opts
	if opts.Description == "" {
		opts.Description = "collecting entities"
	}

	collected, stats, err := engine.Process(ctx, files, collectJob{}, opts)
	if err != nil {
		return nil, err
	}

	entities := finalize(collected, a.baseline)
	classify(a.cfg, len(files), entities)

	sort.Slice(entities, func(i, j int) bool {
		if entities[i].Confidence != entities[j].Confidence {
			return entities[i].Confidence > entities[j].Confidence
		}
		return entities[i].ID < entities[j].ID
	})

	return &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Files:       files,
		Entities:    entities,
		Stats:       stats,
	}, nil
}

// collection is the pass-1 accumulator: entities keyed by ID. All of
// its order facts (file endpoints, file-index sets, timestamp
// endpoints) are encoded order-independently so the merge is
// commutative and safe under any task completion order.
type collection struct {
	entities map[string]*Entity
}

type collectJob struct{}

func (collectJob) Identity() *collection {
	return &collection{entities: make(map[string]*Entity)}
}

func (collectJob) Reduce(acc *collection, rec *model.Record, file engine.File) {
	if !rec.IsLogin() || rec.Auth.EntityID == "" {
		return
	}

	e, ok := acc.entities[rec.Auth.EntityID]
	if !ok {
		e = &Entity{
			ID:        rec.Auth.EntityID,
			FirstFile: file.Index,
			LastFile:  file.Index,
			fileSet:   make(map[int]struct{}),
		}
		acc.entities[e.ID] = e
	}

	e.Logins++
	e.fileSet[file.Index] = struct{}{}
	if file.Index < e.FirstFile {
		e.FirstFile = file.Index
	}
	if file.Index > e.LastFile {
		e.LastFile = file.Index
	}
	if e.DisplayName == "" {
		e.DisplayName = rec.Auth.DisplayName
	}
	if e.MountKey == "" {
		e.MountKey = rec.MountKey()
	}
	if !rec.Time.IsZero() {
		if e.FirstSeen.IsZero() || rec.Time.Before(e.FirstSeen) {
			e.FirstSeen = rec.Time
		}
		if rec.Time.After(e.LastSeen) {
			e.LastSeen = rec.Time
		}
	}
}

func (collectJob) Merge(dst, src *collection) *collection {
	for id, se := range src.entities {
		de, ok := dst.entities[id]
		if !ok {
			dst.entities[id] = se
			continue
		}

		de.Logins += se.Logins
		for idx := range se.fileSet {
			de.fileSet[idx] = struct{}{}
		}
		if se.FirstFile < de.FirstFile {
			de.FirstFile = se.FirstFile
			// Earlier appearance wins naming, keeping the merge
			// deterministic regardless of merge order.
			if se.DisplayName != "" {
				de.DisplayName = se.DisplayName
			}
			if se.MountKey != "" {
				de.MountKey = se.MountKey
			}
		}
		if se.LastFile > de.LastFile {
			de.LastFile = se.LastFile
		}
		if de.DisplayName == "" {
			de.DisplayName = se.DisplayName
		}
		if de.MountKey == "" {
			de.MountKey = se.MountKey
		}
		if !se.FirstSeen.IsZero() && (de.FirstSeen.IsZero() || se.FirstSeen.Before(de.FirstSeen)) {
			de.FirstSeen = se.FirstSeen
		}
		if se.LastSeen.After(de.LastSeen) {
			de.LastSeen = se.LastSeen
		}
	}
	return dst
}

// finalize materializes sorted file lists and lifecycle tags once
// collection is complete.
func finalize(c *collection, baseline map[string]struct{}) []*Entity {
	entities := make([]*Entity, 0, len(c.entities))
	for _, e := range c.entities {
		e.Files = make([]int, 0, len(e.fileSet))
		for idx := range e.fileSet {
			e.Files = append(e.Files, idx)
		}
		sort.Ints(e.Files)
		e.fileSet = nil

		if _, ok := baseline[e.ID]; ok {
			e.Lifecycle = LifecyclePreexisting
		} else {
			e.Lifecycle = LifecycleNew
		}
		entities = append(entities, e)
	}
	return entities
}
