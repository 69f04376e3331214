package domain

import (
	"fmt"
	"time"
)

// Severity classifies an issue for counting and display. Values are the
// wire literals; declaration order carries no meaning.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ParseSeverity maps a wire literal to a Severity by exact match.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityError, SeverityWarning, SeverityInfo:
		return Severity(s), nil
	}
	return "", fmt.Errorf("%w: invalid severity %q", ErrInvalidValue, s)
}

// IssueCategory classifies what kind of problem a tool reported.
type IssueCategory string

const (
	CategoryTypeError      IssueCategory = "type-error"
	CategoryStyleViolation IssueCategory = "style-violation"
	CategoryImportIssue    IssueCategory = "import-issue"
)

// ParseCategory maps a wire literal to an IssueCategory by exact match.
func ParseCategory(s string) (IssueCategory, error) {
	switch IssueCategory(s) {
	case CategoryTypeError, CategoryStyleViolation, CategoryImportIssue:
		return IssueCategory(s), nil
	}
	return "", fmt.Errorf("%w: invalid category %q", ErrInvalidValue, s)
}

// Tool sources an Issue may carry.
const (
	SourcePyright = "pyright"
	SourceRuff    = "ruff"
)

// Issue is a single finding reported by an external analysis tool.
// Immutable after construction; NewIssue is the only constructor.
type Issue struct {
	FilePath   string        `json:"file_path"`
	Line       int           `json:"line"`
	Column     int           `json:"column"`
	Severity   Severity      `json:"severity"`
	Category   IssueCategory `json:"category"`
	Code       string        `json:"code"`
	Message    string        `json:"message"`
	Suggestion string        `json:"suggestion,omitempty"`
	Source     string        `json:"source"`
}

// NewIssue validates the candidate issue and returns it, or a validation
// error naming the violated invariant.
func NewIssue(i Issue) (Issue, error) {
	if err := i.Validate(); err != nil {
		return Issue{}, err
	}
	return i, nil
}

// Validate checks every Issue invariant.
func (i Issue) Validate() error {
	if i.Line < 1 {
		return fmt.Errorf("%w: Line number must be >= 1", ErrValidation)
	}
	if i.Column < 1 {
		return fmt.Errorf("%w: Column number must be >= 1", ErrValidation)
	}
	if i.FilePath == "" {
		return fmt.Errorf("%w: file_path cannot be empty", ErrValidation)
	}
	if i.Code == "" {
		return fmt.Errorf("%w: code cannot be empty", ErrValidation)
	}
	if i.Message == "" {
		return fmt.Errorf("%w: message cannot be empty", ErrValidation)
	}
	if _, err := ParseSeverity(string(i.Severity)); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if _, err := ParseCategory(string(i.Category)); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if i.Source != SourcePyright && i.Source != SourceRuff {
		return fmt.Errorf("%w: source must be 'pyright' or 'ruff'", ErrValidation)
	}
	return nil
}

// ToMap produces the canonical wire form of the issue.
func (i Issue) ToMap() map[string]any {
	return map[string]any{
		"file_path":  i.FilePath,
		"line":       i.Line,
		"column":     i.Column,
		"severity":   string(i.Severity),
		"category":   string(i.Category),
		"code":       i.Code,
		"message":    i.Message,
		"suggestion": i.Suggestion,
		"source":     i.Source,
	}
}

// IssueFromMap is the inverse of ToMap. Missing required keys and
// invalid values fail; invariant violations surface from NewIssue.
func IssueFromMap(m map[string]any) (Issue, error) {
	filePath, err := stringField(m, "file_path")
	if err != nil {
		return Issue{}, err
	}
	line, err := intField(m, "line")
	if err != nil {
		return Issue{}, err
	}
	column, err := intField(m, "column")
	if err != nil {
		return Issue{}, err
	}
	sevRaw, err := stringField(m, "severity")
	if err != nil {
		return Issue{}, err
	}
	severity, err := ParseSeverity(sevRaw)
	if err != nil {
		return Issue{}, err
	}
	catRaw, err := stringField(m, "category")
	if err != nil {
		return Issue{}, err
	}
	category, err := ParseCategory(catRaw)
	if err != nil {
		return Issue{}, err
	}
	code, err := stringField(m, "code")
	if err != nil {
		return Issue{}, err
	}
	message, err := stringField(m, "message")
	if err != nil {
		return Issue{}, err
	}
	suggestion, err := optionalString(m, "suggestion", "")
	if err != nil {
		return Issue{}, err
	}
	source, err := optionalString(m, "source", "")
	if err != nil {
		return Issue{}, err
	}

	return NewIssue(Issue{
		FilePath:   filePath,
		Line:       line,
		Column:     column,
		Severity:   severity,
		Category:   category,
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Source:     source,
	})
}

// Fix is a proposed remediation for exactly one Issue. The issue is
// embedded by value; a Fix never references mutable finding state.
type Fix struct {
	FilePath     string `json:"file_path"`
	OriginalCode string `json:"original_code"`
	FixedCode    string `json:"fixed_code"`
	Issue        Issue  `json:"issue"`
	Explanation  string `json:"explanation"`
	Safe         bool   `json:"safe"`
}

// NewFix validates the candidate fix and returns it.
func NewFix(f Fix) (Fix, error) {
	if err := f.Validate(); err != nil {
		return Fix{}, err
	}
	return f, nil
}

// Validate checks every Fix invariant, including the embedded Issue.
func (f Fix) Validate() error {
	if f.FilePath == "" {
		return fmt.Errorf("%w: file_path cannot be empty", ErrValidation)
	}
	if f.Explanation == "" {
		return fmt.Errorf("%w: explanation cannot be empty", ErrValidation)
	}
	if f.OriginalCode == f.FixedCode {
		return fmt.Errorf("%w: original_code and fixed_code cannot be identical", ErrValidation)
	}
	return f.Issue.Validate()
}

// ToMap produces the canonical wire form of the fix.
func (f Fix) ToMap() map[string]any {
	return map[string]any{
		"file_path":     f.FilePath,
		"original_code": f.OriginalCode,
		"fixed_code":    f.FixedCode,
		"issue":         f.Issue.ToMap(),
		"explanation":   f.Explanation,
		"safe":          f.Safe,
	}
}

// FixFromMap is the inverse of ToMap. "safe" defaults to true when absent.
func FixFromMap(m map[string]any) (Fix, error) {
	filePath, err := stringField(m, "file_path")
	if err != nil {
		return Fix{}, err
	}
	original, err := stringField(m, "original_code")
	if err != nil {
		return Fix{}, err
	}
	fixed, err := stringField(m, "fixed_code")
	if err != nil {
		return Fix{}, err
	}
	issueMap, err := mapField(m, "issue")
	if err != nil {
		return Fix{}, err
	}
	issue, err := IssueFromMap(issueMap)
	if err != nil {
		return Fix{}, fmt.Errorf("issue: %w", err)
	}
	explanation, err := stringField(m, "explanation")
	if err != nil {
		return Fix{}, err
	}
	safe, err := optionalBool(m, "safe", true)
	if err != nil {
		return Fix{}, err
	}

	return NewFix(Fix{
		FilePath:     filePath,
		OriginalCode: original,
		FixedCode:    fixed,
		Issue:        issue,
		Explanation:  explanation,
		Safe:         safe,
	})
}

// ReportSummary holds aggregate counts for a Report. ByCategory and
// ByFile are caller-supplied aggregates; only the severity identity is
// enforced by the type.
type ReportSummary struct {
	TotalIssues int            `json:"total_issues"`
	Errors      int            `json:"errors"`
	Warnings    int            `json:"warnings"`
	Infos       int            `json:"infos"`
	ByCategory  map[string]int `json:"by_category"`
	ByFile      map[string]int `json:"by_file"`
}

// NewReportSummary validates the candidate summary and returns it with
// nil aggregate maps normalized to empty ones.
func NewReportSummary(s ReportSummary) (ReportSummary, error) {
	if err := s.Validate(); err != nil {
		return ReportSummary{}, err
	}
	if s.ByCategory == nil {
		s.ByCategory = map[string]int{}
	}
	if s.ByFile == nil {
		s.ByFile = map[string]int{}
	}
	return s, nil
}

// Validate checks every ReportSummary invariant.
func (s ReportSummary) Validate() error {
	if s.TotalIssues < 0 {
		return fmt.Errorf("%w: total_issues cannot be negative", ErrValidation)
	}
	if s.Errors < 0 {
		return fmt.Errorf("%w: errors cannot be negative", ErrValidation)
	}
	if s.Warnings < 0 {
		return fmt.Errorf("%w: warnings cannot be negative", ErrValidation)
	}
	if s.Infos < 0 {
		return fmt.Errorf("%w: infos cannot be negative", ErrValidation)
	}
	if s.Errors+s.Warnings+s.Infos != s.TotalIssues {
		return fmt.Errorf("%w: Sum of errors, warnings, and infos must equal total_issues", ErrValidation)
	}
	return nil
}

// ToMap produces the canonical wire form of the summary.
func (s ReportSummary) ToMap() map[string]any {
	return map[string]any{
		"total_issues": s.TotalIssues,
		"errors":       s.Errors,
		"warnings":     s.Warnings,
		"infos":        s.Infos,
		"by_category":  countMapToAny(s.ByCategory),
		"by_file":      countMapToAny(s.ByFile),
	}
}

// SummaryFromMap is the inverse of ToMap. The aggregate maps default to
// empty when absent.
func SummaryFromMap(m map[string]any) (ReportSummary, error) {
	total, err := intField(m, "total_issues")
	if err != nil {
		return ReportSummary{}, err
	}
	errs, err := intField(m, "errors")
	if err != nil {
		return ReportSummary{}, err
	}
	warnings, err := intField(m, "warnings")
	if err != nil {
		return ReportSummary{}, err
	}
	infos, err := intField(m, "infos")
	if err != nil {
		return ReportSummary{}, err
	}
	byCategory, err := optionalCountMap(m, "by_category")
	if err != nil {
		return ReportSummary{}, err
	}
	byFile, err := optionalCountMap(m, "by_file")
	if err != nil {
		return ReportSummary{}, err
	}

	return NewReportSummary(ReportSummary{
		TotalIssues: total,
		Errors:      errs,
		Warnings:    warnings,
		Infos:       infos,
		ByCategory:  byCategory,
		ByFile:      byFile,
	})
}

// Summarize derives a summary consistent with the given issue list.
func Summarize(issues []Issue) ReportSummary {
	summary := ReportSummary{
		ByCategory: map[string]int{},
		ByFile:     map[string]int{},
	}
	for _, issue := range issues {
		summary.TotalIssues++
		switch issue.Severity {
		case SeverityError:
			summary.Errors++
		case SeverityWarning:
			summary.Warnings++
		case SeverityInfo:
			summary.Infos++
		}
		summary.ByCategory[string(issue.Category)]++
		summary.ByFile[issue.FilePath]++
	}
	return summary
}

// Report is the complete result of one analysis run. Assembled once,
// never mutated afterwards.
type Report struct {
	Issues      []Issue       `json:"issues"`
	Fixes       []Fix         `json:"fixes"`
	Summary     ReportSummary `json:"summary"`
	Timestamp   time.Time     `json:"timestamp"`
	ProjectPath string        `json:"project_path"`
}

// NewReport validates the candidate report and returns it with nil
// slices normalized to empty ones.
func NewReport(r Report) (Report, error) {
	if err := r.Validate(); err != nil {
		return Report{}, err
	}
	if r.Issues == nil {
		r.Issues = []Issue{}
	}
	if r.Fixes == nil {
		r.Fixes = []Fix{}
	}
	return r, nil
}

// Validate checks the Report invariant.
func (r Report) Validate() error {
	if r.ProjectPath == "" {
		return fmt.Errorf("%w: project_path cannot be empty", ErrValidation)
	}
	return nil
}

// ToMap produces the canonical wire form of the report, the shape used
// for persistence and tool interchange. Timestamps encode as RFC 3339.
func (r Report) ToMap() map[string]any {
	issues := make([]any, 0, len(r.Issues))
	for _, issue := range r.Issues {
		issues = append(issues, issue.ToMap())
	}
	fixes := make([]any, 0, len(r.Fixes))
	for _, fix := range r.Fixes {
		fixes = append(fixes, fix.ToMap())
	}
	return map[string]any{
		"issues":       issues,
		"fixes":        fixes,
		"summary":      r.Summary.ToMap(),
		"timestamp":    r.Timestamp.Format(time.RFC3339Nano),
		"project_path": r.ProjectPath,
	}
}

// ReportFromMap is the inverse of ToMap. Issue and fix lists default to
// empty when absent; summary and timestamp are required.
func ReportFromMap(m map[string]any) (Report, error) {
	issueMaps, err := optionalMapSlice(m, "issues")
	if err != nil {
		return Report{}, err
	}
	issues := make([]Issue, 0, len(issueMaps))
	for i, im := range issueMaps {
		issue, err := IssueFromMap(im)
		if err != nil {
			return Report{}, fmt.Errorf("issues[%d]: %w", i, err)
		}
		issues = append(issues, issue)
	}

	fixMaps, err := optionalMapSlice(m, "fixes")
	if err != nil {
		return Report{}, err
	}
	fixes := make([]Fix, 0, len(fixMaps))
	for i, fm := range fixMaps {
		fix, err := FixFromMap(fm)
		if err != nil {
			return Report{}, fmt.Errorf("fixes[%d]: %w", i, err)
		}
		fixes = append(fixes, fix)
	}

	summaryMap, err := mapField(m, "summary")
	if err != nil {
		return Report{}, err
	}
	summary, err := SummaryFromMap(summaryMap)
	if err != nil {
		return Report{}, fmt.Errorf("summary: %w", err)
	}

	tsRaw, err := stringField(m, "timestamp")
	if err != nil {
		return Report{}, err
	}
	timestamp, err := time.Parse(time.RFC3339Nano, tsRaw)
	if err != nil {
		return Report{}, fmt.Errorf("%w: timestamp %q is not RFC 3339: %v", ErrInvalidValue, tsRaw, err)
	}

	projectPath, err := stringField(m, "project_path")
	if err != nil {
		return Report{}, err
	}

	return NewReport(Report{
		Issues:      issues,
		Fixes:       fixes,
		Summary:     summary,
		Timestamp:   timestamp,
		ProjectPath: projectPath,
	})
}
