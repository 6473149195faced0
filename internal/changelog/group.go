package changelog

import (
	"sort"
	"strings"
)

// BuildReport groups issues into product sections and computes the totals
// for the footer. Products come out alphabetically with Uncategorized last;
// issues within a product are ordered by title, case-insensitively.
func BuildReport(m Milestone, issues []Issue, pm ProductMap) Report {
	grouped := make(map[string][]Issue)
	for _, issue := range issues {
		product := pm.Resolve(issue.ProjectURL)
		grouped[product] = append(grouped[product], issue)
	}

	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if (names[i] == Uncategorized) != (names[j] == Uncategorized) {
			return names[j] == Uncategorized
		}
		return names[i] < names[j]
	})

	report := Report{
		Milestone:   m,
		TotalIssues: len(issues),
	}
	for _, issue := range issues {
		report.TotalHours += issue.EstimateHours
	}

	for _, name := range names {
		section := ProductSection{Name: name, Issues: grouped[name]}
		sort.SliceStable(section.Issues, func(i, j int) bool {
			return strings.ToLower(section.Issues[i].Title) < strings.ToLower(section.Issues[j].Title)
		})
		report.Products = append(report.Products, section)
	}

	return report
}
