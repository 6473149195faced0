package changelog

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"
)

// hoursPerDay converts estimate hours to working days, following the
// GitLab default of 8 hours per day.
const hoursPerDay = 8

// RenderMarkdown writes the milestone changelog block for the given report.
//
// The function is idempotent - given the same report, it produces identical output.
func RenderMarkdown(r Report, w io.Writer) error {
	if err := renderHeader(r.Milestone, w); err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	for _, section := range r.Products {
		if err := renderSection(section, w); err != nil {
			return fmt.Errorf("rendering product %s: %w", section.Name, err)
		}
	}

	if err := renderFooter(r, w); err != nil {
		return fmt.Errorf("rendering footer: %w", err)
	}

	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(r Report) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(r, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderHeader writes the bolded milestone heading with its date range.
func renderHeader(m Milestone, w io.Writer) error {
	header := fmt.Sprintf("**Changelog - %s** (%s → %s)\n\n",
		m.Title, FormatDate(m.Start), FormatDate(m.Due))
	_, err := w.Write([]byte(header))
	return err
}

// renderSection writes one product heading and its issue lines.
// The count word is always "issues", even for a single issue.
func renderSection(s ProductSection, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "**%s** (%d issues)\n", s.Name, len(s.Issues)); err != nil {
		return err
	}
	for _, issue := range s.Issues {
		if _, err := w.Write([]byte(formatIssueLine(issue) + "\n")); err != nil {
			return err
		}
	}
	_, err := w.Write([]byte("\n"))
	return err
}

// formatIssueLine formats a single issue entry. The label suffix is omitted
// when alias filtering leaves no labels to show.
func formatIssueLine(issue Issue) string {
	ref := fmt.Sprintf("%s#%d", issue.Project, issue.IID)
	labels := issue.DisplayLabels()
	if len(labels) > 0 {
		return fmt.Sprintf("* %s (%s) (%s)", issue.Title, ref, strings.Join(labels, ", "))
	}
	return fmt.Sprintf("* %s (%s)", issue.Title, ref)
}

// renderFooter writes the separator and totals line. The estimate suffix
// only appears when the milestone carries a positive total estimate.
func renderFooter(r Report, w io.Writer) error {
	footer := fmt.Sprintf("---\nTotal: %d issues closed", r.TotalIssues)
	if r.TotalHours > 0 {
		footer += " | Estimated: " + FormatEstimate(r.TotalHours)
	}
	footer += "\n"
	_, err := w.Write([]byte(footer))
	return err
}

// EstimateDays converts estimate hours to whole working days, rounding up.
// A 42 hour estimate spans 6 days even though only 2 hours fall on the last.
func EstimateDays(hours float64) int {
	return int(math.Ceil(hours / hoursPerDay))
}

// FormatEstimate renders a total estimate as hours and working days,
// e.g. "12.0h (2d)".
func FormatEstimate(hours float64) string {
	return fmt.Sprintf("%.1fh (%dd)", hours, EstimateDays(hours))
}

// FormatDate renders a milestone boundary date, or "N/A" when unset.
func FormatDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("2006-01-02")
}
