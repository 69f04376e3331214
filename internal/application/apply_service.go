package application

import (
	"errors"
	"fmt"

	"github.com/pyqa/pyqa/internal/domain"
)

// ApplyService carries out the fix-application protocol: read the
// current file, verify the fix is not stale, back the file up, then
// write the fixed code. The ordering is load-bearing; a backup taken
// after the write would capture the wrong content.
type ApplyService struct {
	files domain.FileStore
}

func NewApplyService(files domain.FileStore) *ApplyService {
	return &ApplyService{files: files}
}

// ApplyFix applies a single fix under the given config. In dry-run mode
// the backup and write are skipped and the would-be change is reported.
// A file whose content drifted from the fix's original code yields
// domain.ErrStaleFix instead of a blind overwrite.
func (s *ApplyService) ApplyFix(fix domain.Fix, cfg domain.Config) (domain.ApplyResult, error) {
	result := domain.ApplyResult{FilePath: fix.FilePath, Code: fix.Issue.Code}

	current, err := s.files.Read(fix.FilePath)
	if err != nil {
		return result, fmt.Errorf("reading %s: %w", fix.FilePath, err)
	}
	if current != fix.OriginalCode {
		return result, fmt.Errorf("%w: %s changed since the fix was generated", domain.ErrStaleFix, fix.FilePath)
	}

	if cfg.DryRun {
		result.Outcome = domain.OutcomeDryRun
		result.Detail = fix.Explanation
		return result, nil
	}

	if cfg.BackupEnabled {
		backupPath, err := s.files.CreateBackup(fix.FilePath)
		if err != nil {
			return result, fmt.Errorf("backing up %s: %w", fix.FilePath, err)
		}
		result.BackupPath = backupPath
	}

	if err := s.files.Write(fix.FilePath, fix.FixedCode); err != nil {
		return result, fmt.Errorf("writing %s: %w", fix.FilePath, err)
	}

	result.Outcome = domain.OutcomeApplied
	result.Detail = fix.Explanation
	return result, nil
}

// ApplyAll runs the protocol over a list of fixes. Unsafe fixes are
// skipped unless opted in; stale fixes are recorded and the run
// continues. Any other failure aborts the run.
func (s *ApplyService) ApplyAll(fixes []domain.Fix, cfg domain.Config, opts domain.ApplyOptions) (domain.ApplyPlan, error) {
	plan := domain.ApplyPlan{Results: make([]domain.ApplyResult, 0, len(fixes))}

	for _, fix := range fixes {
		if !cfg.AutoFixEnabled {
			plan.Results = append(plan.Results, domain.ApplyResult{
				FilePath: fix.FilePath,
				Code:     fix.Issue.Code,
				Outcome:  domain.OutcomeSkipped,
				Detail:   "auto-fix is disabled in config",
			})
			plan.Skipped++
			continue
		}
		if !fix.Safe && !opts.IncludeUnsafe {
			plan.Results = append(plan.Results, domain.ApplyResult{
				FilePath: fix.FilePath,
				Code:     fix.Issue.Code,
				Outcome:  domain.OutcomeSkipped,
				Detail:   "unsafe fix; not applied automatically",
			})
			plan.Skipped++
			continue
		}

		result, err := s.ApplyFix(fix, cfg)
		if err != nil {
			if errors.Is(err, domain.ErrStaleFix) {
				result.Outcome = domain.OutcomeStale
				result.Detail = err.Error()
				plan.Results = append(plan.Results, result)
				plan.Stale++
				continue
			}
			return plan, err
		}

		plan.Results = append(plan.Results, result)
		if result.Outcome == domain.OutcomeApplied || result.Outcome == domain.OutcomeDryRun {
			plan.Applied++
		}
	}

	return plan, nil
}
