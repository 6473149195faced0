package changelog

import (
	"strings"
	"time"
)

// Uncategorized is the product that catches issues whose repository
// has no entry in the product mapping.
const Uncategorized = "Uncategorized"

// Issue is one closed issue as it appears in the changelog.
// EstimateHours is zero when the issue carries no time estimate.
type Issue struct {
	IID           int
	Title         string
	Project       string   // project name for display, e.g. "billing-service"
	ProjectURL    string   // canonical web URL, used for product resolution
	Labels        []string // raw labels; aliases filtered at render time
	EstimateHours float64
}

// DisplayLabels returns the issue labels with alias labels (leading "@")
// removed, preserving their original order.
func (i Issue) DisplayLabels() []string {
	var out []string
	for _, l := range i.Labels {
		if strings.HasPrefix(l, "@") {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Milestone identifies the milestone a changelog describes.
// Start and Due are nil when GitLab has no date set; they render as "N/A".
type Milestone struct {
	ID    int
	Title string
	State string
	Start *time.Time
	Due   *time.Time
}

// ProductSection is one product's slice of the changelog, with issues
// already sorted for rendering.
type ProductSection struct {
	Name   string
	Issues []Issue
}

// Report is a fully grouped and sorted milestone changelog, ready to render.
// Products are ordered alphabetically with Uncategorized last.
type Report struct {
	Milestone   Milestone
	Products    []ProductSection
	TotalIssues int
	TotalHours  float64
}

// ProductMap resolves a repository URL to the product it belongs to.
type ProductMap map[string]string

// NewProductMap builds the reverse repository-to-product mapping from the
// configured product definitions. Repository identifiers may be full URLs
// or paths relative to baseURL; both are normalized without a trailing slash.
func NewProductMap(products map[string][]string, baseURL string) ProductMap {
	base := strings.TrimRight(baseURL, "/")
	pm := make(ProductMap)
	for product, repos := range products {
		for _, repo := range repos {
			repo = strings.TrimSpace(repo)
			if repo == "" {
				continue
			}
			url := repo
			if !strings.HasPrefix(repo, "http://") && !strings.HasPrefix(repo, "https://") {
				url = base + "/" + strings.TrimLeft(repo, "/")
			}
			pm[strings.TrimRight(url, "/")] = product
		}
	}
	return pm
}

// Resolve returns the product for a repository URL, or Uncategorized
// when the URL has no mapping.
func (pm ProductMap) Resolve(projectURL string) string {
	if product, ok := pm[strings.TrimRight(projectURL, "/")]; ok {
		return product
	}
	return Uncategorized
}
