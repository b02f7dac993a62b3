package churn

// Config holds the classifier's heuristic constants. These are fixed
// design constants, not statistically calibrated values: callers
// needing different sensitivity tune them here without touching the
// scoring algorithm's structure.
type Config struct {
	// SingleFileWeight is added when an entity was active in exactly
	// one file; TwoFileWeight when in exactly two (mutually exclusive).
	SingleFileWeight float64 `yaml:"single_file_weight"`
	TwoFileWeight    float64 `yaml:"two_file_weight"`

	// SimilarManyWeight is added when more than SimilarCutoff other
	// short-lived entities share a mount or name prefix;
	// SimilarSomeWeight when at least one does.
	SimilarManyWeight float64 `yaml:"similar_many_weight"`
	SimilarSomeWeight float64 `yaml:"similar_some_weight"`
	SimilarCutoff     int     `yaml:"similar_cutoff"`

	// LowEventWeight is added for short-lived entities with at most
	// LowEventMax qualifying events.
	LowEventWeight float64 `yaml:"low_event_weight"`
	LowEventMax    int64   `yaml:"low_event_max"`

	// GapPenalty multiplies the confidence when the first-to-last file
	// span exceeds the number of files appeared in. Gapped, periodic
	// activity is evidence against churn.
	GapPenalty float64 `yaml:"gap_penalty"`

	// EphemeralThreshold is the confidence at or above which an entity
	// is flagged ephemeral.
	EphemeralThreshold float64 `yaml:"ephemeral_threshold"`

	// ShortLivedFiles is the appearance-count ceiling for the
	// short-lived sample used in similarity matching.
	ShortLivedFiles int `yaml:"short_lived_files"`

	// ConsistentFraction is the share of the run's files an entity
	// must appear in to be tagged consistent.
	ConsistentFraction float64 `yaml:"consistent_fraction"`

	// SingleBurstDays is the days-active ceiling under which sparse
	// activity still counts as a single burst.
	SingleBurstDays int `yaml:"single_burst_days"`
}

// DefaultConfig returns the standard heuristic constants.
func DefaultConfig() Config {
	return Config{
		SingleFileWeight:   0.5,
		TwoFileWeight:      0.3,
		SimilarManyWeight:  0.2,
		SimilarSomeWeight:  0.1,
		SimilarCutoff:      5,
		LowEventWeight:     0.1,
		LowEventMax:        5,
		GapPenalty:         0.7,
		EphemeralThreshold: 0.4,
		ShortLivedFiles:    2,
		ConsistentFraction: 2.0 / 3.0,
		SingleBurstDays:    2,
	}
}
