package domain

// Outcome of attempting to apply one fix.
const (
	OutcomeApplied = "applied"
	OutcomeDryRun  = "dry-run"
	OutcomeSkipped = "skipped"
	OutcomeStale   = "stale"
)

// ApplyResult records what happened to a single fix.
type ApplyResult struct {
	FilePath   string `json:"file_path"`
	Code       string `json:"code,omitempty"`
	Outcome    string `json:"outcome"`
	Detail     string `json:"detail,omitempty"`
	BackupPath string `json:"backup_path,omitempty"`
}

// ApplyPlan is the aggregate result of a fix-application run.
type ApplyPlan struct {
	Results []ApplyResult `json:"results"`
	Applied int           `json:"applied"`
	Skipped int           `json:"skipped"`
	Stale   int           `json:"stale"`
}

// ApplyOptions tunes a fix-application run beyond what Config carries.
type ApplyOptions struct {
	IncludeUnsafe bool `json:"include_unsafe"`
}
