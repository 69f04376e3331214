package tui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pyqa/pyqa/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	info      = lipgloss.Color("#8B949E") // soft blue-gray
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	catNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport formats a report for the terminal.
func RenderReport(report domain.Report) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("pyqa")
	subtitle := dimStyle.Render("Python Code Quality")
	project := fileStyle.Render(shortenPath(report.ProjectPath))
	totalStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(totalColor(report.Summary)).
		Render(fmt.Sprintf("%d issues", report.Summary.TotalIssues))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + totalStyled + "\n" + project))
	b.WriteString("\n\n")

	// ── Summary ──
	b.WriteString("  ")
	b.WriteString(titleStyle.Render("Summary"))
	b.WriteString("  ")
	if report.Summary.Errors > 0 {
		b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d errors", report.Summary.Errors)))
		b.WriteString("  ")
	}
	if report.Summary.Warnings > 0 {
		b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d warnings", report.Summary.Warnings)))
		b.WriteString("  ")
	}
	if report.Summary.Infos > 0 {
		b.WriteString(infoTagStyle.Render(fmt.Sprintf("%d info", report.Summary.Infos)))
	}
	b.WriteString("\n\n")

	renderCategories(&b, report.Summary.ByCategory)

	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Issues ──
	if len(report.Issues) > 0 {
		issues := append([]domain.Issue(nil), report.Issues...)
		sortBySeverity(issues)
		for _, issue := range issues {
			renderIssue(&b, issue)
		}
	} else {
		b.WriteString("  " + passStyle.Render("No issues found.") + "\n")
	}

	// ── Fixes ──
	if len(report.Fixes) > 0 {
		b.WriteString("\n")
		b.WriteString("  " + titleStyle.Render(fmt.Sprintf("Fixes (%d)", len(report.Fixes))))
		b.WriteString("\n\n")
		for _, fix := range report.Fixes {
			renderFix(&b, fix)
		}
	}

	b.WriteString("\n")
	return b.String()
}

// RenderApplyPlan formats the outcome of a fix-application batch.
func RenderApplyPlan(plan domain.ApplyPlan) string {
	var b strings.Builder

	b.WriteString("  ")
	b.WriteString(titleStyle.Render("Applied fixes"))
	b.WriteString("  ")
	b.WriteString(passStyle.Render(fmt.Sprintf("%d applied", plan.Applied)))
	if plan.Skipped > 0 {
		b.WriteString("  " + skipStyle.Render(fmt.Sprintf("%d skipped", plan.Skipped)))
	}
	if plan.Stale > 0 {
		b.WriteString("  " + warnStyle.Render(fmt.Sprintf("%d stale", plan.Stale)))
	}
	b.WriteString("\n\n")

	for _, result := range plan.Results {
		var icon string
		switch result.Outcome {
		case domain.OutcomeApplied, domain.OutcomeDryRun:
			icon = passStyle.Render("●")
		case domain.OutcomeStale:
			icon = warnStyle.Render("●")
		default:
			icon = skipStyle.Render("○")
		}
		fmt.Fprintf(&b, "    %s %s %s %s\n",
			icon,
			fileStyle.Render(shortenPath(result.FilePath)),
			dimStyle.Render(result.Code),
			faintStyle.Render(result.Outcome),
		)
		if result.Detail != "" {
			fmt.Fprintf(&b, "         %s\n", faintStyle.Render(result.Detail))
		}
		if result.BackupPath != "" {
			fmt.Fprintf(&b, "         %s\n", faintStyle.Render("backup: "+shortenPath(result.BackupPath)))
		}
	}

	return b.String()
}

func renderCategories(b *strings.Builder, byCategory map[string]int) {
	if len(byCategory) == 0 {
		return
	}
	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		count := dimStyle.Render(fmt.Sprintf("%d", byCategory[name]))
		fmt.Fprintf(b, "  %s %s\n", catNameStyle.Render(padRight(name, 24)), count)
	}
	b.WriteString("\n")
}

func renderIssue(b *strings.Builder, issue domain.Issue) {
	tag := severityTag(issue.Severity)
	location := fmt.Sprintf("%s:%d:%d", shortenPath(issue.FilePath), issue.Line, issue.Column)

	fmt.Fprintf(b, "    %s %s  %s\n", tag, fileStyle.Render(location), faintStyle.Render(issue.Code))
	fmt.Fprintf(b, "         %s\n", dimStyle.Render(issue.Message))
	if issue.Suggestion != "" {
		fmt.Fprintf(b, "         %s\n", faintStyle.Render("suggestion: "+issue.Suggestion))
	}
}

func renderFix(b *strings.Builder, fix domain.Fix) {
	var marker string
	if fix.Safe {
		marker = passStyle.Render("safe  ")
	} else {
		marker = failStyle.Render("unsafe")
	}
	fmt.Fprintf(b, "    %s %s %s\n", marker, fileStyle.Render(shortenPath(fix.FilePath)), faintStyle.Render(fix.Issue.Code))
	fmt.Fprintf(b, "           %s\n", dimStyle.Render(fix.Explanation))
}

func severityTag(severity domain.Severity) string {
	switch severity {
	case domain.SeverityError:
		return errorTagStyle.Render("error")
	case domain.SeverityWarning:
		return warnTagStyle.Render("warn ")
	default:
		return infoTagStyle.Render("info ")
	}
}

func sortBySeverity(issues []domain.Issue) {
	order := map[domain.Severity]int{
		domain.SeverityError:   0,
		domain.SeverityWarning: 1,
		domain.SeverityInfo:    2,
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return order[issues[i].Severity] < order[issues[j].Severity]
	})
}

func totalColor(summary domain.ReportSummary) lipgloss.Color {
	switch {
	case summary.Errors > 0:
		return danger
	case summary.Warnings > 0:
		return warning
	case summary.TotalIssues > 0:
		return info
	default:
		return success
	}
}

func shortenPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) <= 3 {
		return path
	}
	return "…/" + strings.Join(parts[len(parts)-3:], "/")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
