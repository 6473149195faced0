package gitlab

import (
	"context"
	"fmt"

	gl "gitlab.com/gitlab-org/api/client-go"

	"gitlab.com/lanterman/loglady/internal/changelog"
)

const secondsPerHour = 3600

// ClosedIssues returns every closed issue in the group assigned to the named
// milestone, across all of the group's projects. Issues whose project cannot
// be resolved are kept with a placeholder project name so they still appear
// in the report (under Uncategorized); the failure is logged as a warning.
func (c *Client) ClosedIssues(ctx context.Context, milestoneTitle string) ([]changelog.Issue, error) {
	opt := &gl.ListGroupIssuesOptions{
		Milestone:   gl.Ptr(milestoneTitle),
		State:       gl.Ptr("closed"),
		ListOptions: gl.ListOptions{PerPage: perPage},
	}
	var issues []changelog.Issue
	for {
		page, resp, err := c.api.Issues.ListGroupIssues(c.groupID, opt, gl.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("listing closed issues for milestone %q: %w", milestoneTitle, err)
		}
		for _, iss := range page {
			project := c.resolveProject(ctx, iss.ProjectID)
			issues = append(issues, toIssue(iss, project))
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	c.log.Debug().Int("count", len(issues)).Str("milestone", milestoneTitle).Msg("fetched closed issues")
	return issues, nil
}

// resolveProject looks up the project an issue belongs to, caching results so
// each project is fetched at most once per run. Lookup failures are cached
// too: a placeholder entry keeps the issue in the report and prevents
// repeated requests (and repeated warnings) for the same broken project.
func (c *Client) resolveProject(ctx context.Context, projectID int) projectInfo {
	if p, ok := c.projects[projectID]; ok {
		return p
	}
	project, _, err := c.api.Projects.GetProject(projectID, nil, gl.WithContext(ctx))
	if err != nil {
		c.log.Warn().Int("project_id", projectID).Err(err).Msg("could not resolve project, issues will be uncategorized")
		p := projectInfo{name: fmt.Sprintf("project-%d", projectID)}
		c.projects[projectID] = p
		return p
	}
	p := projectInfo{name: project.Name, webURL: project.WebURL}
	c.projects[projectID] = p
	return p
}

func toIssue(iss *gl.Issue, project projectInfo) changelog.Issue {
	var estimate float64
	if iss.TimeStats != nil {
		estimate = float64(iss.TimeStats.TimeEstimate) / secondsPerHour
	}
	return changelog.Issue{
		IID:           iss.IID,
		Title:         iss.Title,
		Project:       project.name,
		ProjectURL:    project.webURL,
		Labels:        []string(iss.Labels),
		EstimateHours: estimate,
	}
}
