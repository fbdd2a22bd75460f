package core

// VarType tags a variable's role in the originating logic program, passed
// to AddVar. The core does not interpret the tag itself (that's the
// grounder's job); it is only surfaced to heuristics and post-propagators
// that want to treat atom/body variables differently.
type VarType int

const (
	VarAtom VarType = iota
	VarBody
	VarHybrid
)

// SearchMode selects whether conflict analysis learns a clause (the
// default) or falls back to chronological backtracking (flipping the
// topmost decision to its opposite value instead).
type SearchMode int

const (
	SearchCDNL SearchMode = iota
	SearchNoLearning
)

// ReduceScore selects how reduceLearnts ranks deletion candidates: by
// activity, by LBD, by a blend of both, or by a size-based tie-break.
type ReduceScore int

const (
	ScoreHeur ReduceScore = iota
	ScoreGlue
	ScoreBoth
	ScoreInLP // "in literals per clause": shortest-clauses-first, a size-based tie-breaker-only strategy
)

// RestartSchedule selects which RestartPolicy SearchConfig builds.
type RestartSchedule int

const (
	RestartLuby RestartSchedule = iota
	RestartGeometric
	RestartInnerOuterGeometric
	// RestartGlucose restarts as soon as a short window of recent
	// learnt-clause LBDs runs meaningfully hotter than the long-run
	// average, instead of on a fixed conflict-count schedule.
	RestartGlucose
)

// WatchInitMode mirrors clasp's WatchInitMode: how the initial two watches
// of a general clause are chosen.
type WatchInitMode int

const (
	WatchInitFirst WatchInitMode = iota // literals[0], literals[1] as given
	WatchInitRand                       // two random literals, using the solver-owned RNG
)

// SearchConfig bundles every tunable covering restart, reduce, deletion,
// strengthening, compression, and decision-sign policy.
type SearchConfig struct {
	// Restart policy.
	RestartSchedule RestartSchedule
	RestartBase      float64
	RestartFactor    float64
	RestartOuterFactor float64
	LubyUnit         int64
	RestartOnModel   bool
	BoundedRestarts  bool

	// Glucose-style restart trigger (only used when RestartSchedule ==
	// RestartGlucose).
	GlucoseFastDecay    float64
	GlucoseSlowDecay    float64
	GlucoseMargin       float64 // restart once fast EMA > slow EMA * margin
	GlucoseMinConflicts int64   // warm-up conflicts before the trigger is live

	// Reduce (deletion) policy.
	ReduceInitialLimit int
	ReduceGrowth       float64 // multiplicative growth per reduction, e.g. 1.1 (geometric) or additive via ReduceLinearStep
	ReduceLinearStep   int     // if > 0, grows the limit linearly instead of geometrically
	ReduceFraction     float64 // fraction of candidates removed each reduceLearnts call
	ReduceScore        ReduceScore
	ReduceGlueLimit    uint32  // LBD <= this is always protected ("glue")
	ReduceOnRestart    bool    // reset the reduce limit on every restart

	// Clause/variable scoring.
	ClauseDecay float64
	VarDecay    float64

	// Search mode and minimization.
	Mode         SearchMode
	Minimize     bool // enable recursive minimization
	CCMinKeepAct bool // bump activity during minimization too

	// Misc.
	PhaseSaving    bool
	SignDefault    LBool // default sign when no preference hint applies
	RandomFreq     float64
	CompressLimit  uint32 // clasp's trail-compression trigger
	WatchInit      WatchInitMode
	Heuristic      HeuristicKind

	// ConflictLimit stops Solve with ResultLimitReached once Stats.Conflicts
	// (measured from the start of that Solve call) reaches this value. Zero
	// means unlimited.
	ConflictLimit int64
}

// DefaultSearchConfig mirrors clasp/MiniSAT-style defaults, adapted from the
// teacher's DefaultOptions (internal/sat/solver.go).
var DefaultSearchConfig = SearchConfig{
	RestartSchedule:    RestartInnerOuterGeometric,
	RestartBase:        100,
	RestartFactor:      1.5,
	RestartOuterFactor: 1.5,
	LubyUnit:           32,
	RestartOnModel:     false,
	BoundedRestarts:    false,

	GlucoseFastDecay:    0.85,
	GlucoseSlowDecay:    0.999,
	GlucoseMargin:       1.25,
	GlucoseMinConflicts: 50,

	ReduceInitialLimit: 2000,
	ReduceGrowth:       1.1,
	ReduceFraction:     0.5,
	ReduceScore:        ScoreGlue,
	ReduceGlueLimit:    2,
	ReduceOnRestart:    false,

	ClauseDecay: 0.999,
	VarDecay:    0.95,

	Mode:         SearchCDNL,
	Minimize:     true,
	CCMinKeepAct: false,

	PhaseSaving: true,
	SignDefault: False,
	RandomFreq:  0.02,
	Heuristic:   HeuristicVSIDS,
}

// Stats is the search statistics surface.
type Stats struct {
	Conflicts  int64
	Restarts   int64
	Decisions  int64
	Propagations int64
	Reductions int64
	Models     int64
}
