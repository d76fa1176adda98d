package reconcile

// Collection table names the engine operates on.
const (
	TableQuestions  = "questions"
	TablePuzzles    = "puzzles"
	TableCategories = "categories"
	TableTopics     = "topics"
	TableSubtopics  = "subtopics"
	TableFeatures   = "features"
)

// Counts holds the denormalized aggregates for one taxonomy node.
type Counts struct {
	Quiz   int64 `json:"quiz"`
	Puzzle int64 `json:"puzzle"`
}

// Total returns the combined content count.
func (c Counts) Total() int64 {
	return c.Quiz + c.Puzzle
}

// ActionType represents the type of repair action.
type ActionType string

const (
	// ActionFixCount rewrites a node's stored counts to the true counts.
	ActionFixCount ActionType = "fix_count"
	// ActionUnpublishEmpty unpublishes a node whose true content count is zero.
	ActionUnpublishEmpty ActionType = "unpublish_empty"
	// ActionSyncNames rewrites a content row's denormalized taxonomy names
	// from the taxonomy nodes it references.
	ActionSyncNames ActionType = "sync_names"
)

// Action represents one planned repair write.
type Action struct {
	// Type specifies the repair to perform.
	Type ActionType `json:"type"`

	// Table is the collection the write targets.
	Table string `json:"table"`

	// Key is the document ID within the table.
	Key string `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Updates holds the column values the action writes.
	Updates map[string]any `json:"-"`
}

// Result describes the drift found on a single taxonomy node.
type Result struct {
	Table        string `json:"table"`
	ID           string `json:"id"`
	Name         string `json:"name"`
	StoredQuiz   int64  `json:"stored_quiz"`
	ActualQuiz   int64  `json:"actual_quiz"`
	StoredPuzzle int64  `json:"stored_puzzle"`
	ActualPuzzle int64  `json:"actual_puzzle"`
	IsPublished  bool   `json:"is_published"`
}

// Plan contains repair results and planned actions.
type Plan struct {
	// Results contains per-node drift data (only nodes with drift).
	Results []Result `json:"results"`

	// Actions contains planned repair writes.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// Summary provides aggregate statistics for a repair plan.
type Summary struct {
	// TotalNodes is the number of taxonomy nodes scanned.
	TotalNodes int `json:"total_nodes"`

	// CountMismatches counts nodes whose stored counts drifted.
	CountMismatches int `json:"count_mismatches"`

	// EmptyPublished counts published nodes with no content.
	EmptyPublished int `json:"empty_published"`

	// NameDrift counts content rows whose denormalized names drifted.
	NameDrift int `json:"name_drift"`
}

// Options controls repair behavior for ApplyPlan.
type Options struct {
	// DryRun prevents execution of any writes if true.
	DryRun bool

	// FixCounts enables count and publish-flag repairs.
	FixCounts bool

	// SyncNames enables denormalized-name repairs on content rows.
	SyncNames bool

	// Confirmed indicates the operator has confirmed the writes.
	// If false, nothing executes regardless of DryRun.
	Confirmed bool
}
