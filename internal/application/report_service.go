package application

import (
	"fmt"
	"time"

	"github.com/pyqa/pyqa/internal/domain"
)

// ReportService assembles reports from accumulated findings and moves
// them through the persistence port.
type ReportService struct {
	store domain.ReportStore
}

func NewReportService(store domain.ReportStore) *ReportService {
	return &ReportService{store: store}
}

// BuildReport assembles a validated report with a summary derived from
// the issue list.
func (s *ReportService) BuildReport(projectPath string, issues []domain.Issue, fixes []domain.Fix, now time.Time) (domain.Report, error) {
	summary, err := domain.NewReportSummary(domain.Summarize(issues))
	if err != nil {
		return domain.Report{}, fmt.Errorf("building summary: %w", err)
	}

	return domain.NewReport(domain.Report{
		Issues:      issues,
		Fixes:       fixes,
		Summary:     summary,
		Timestamp:   now,
		ProjectPath: projectPath,
	})
}

// Save persists a report at path in its canonical wire form.
func (s *ReportService) Save(report domain.Report, path string) error {
	return s.store.Save(report, path)
}

// Load reads a persisted report back from path.
func (s *ReportService) Load(path string) (domain.Report, error) {
	return s.store.Load(path)
}
