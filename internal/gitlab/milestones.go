package gitlab

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	gl "gitlab.com/gitlab-org/api/client-go"

	"gitlab.com/lanterman/loglady/internal/changelog"
	errs "gitlab.com/lanterman/loglady/internal/errors"
)

// ResolveMilestone finds a group milestone by name or numeric ID. A reference
// consisting only of digits is treated as a milestone ID; anything else is
// matched by exact title against the group's milestones.
func (c *Client) ResolveMilestone(ctx context.Context, ref string) (changelog.Milestone, error) {
	if id, err := strconv.Atoi(ref); err == nil {
		return c.milestoneByID(ctx, id)
	}
	return c.milestoneByTitle(ctx, ref)
}

func (c *Client) milestoneByID(ctx context.Context, id int) (changelog.Milestone, error) {
	m, resp, err := c.api.GroupMilestones.GetGroupMilestone(c.groupID, id, gl.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return changelog.Milestone{}, errs.MilestoneNotFound(strconv.Itoa(id))
		}
		return changelog.Milestone{}, fmt.Errorf("fetching milestone %d: %w", id, err)
	}
	c.log.Debug().Int("id", m.ID).Str("title", m.Title).Msg("resolved milestone by ID")
	return toMilestone(m), nil
}

func (c *Client) milestoneByTitle(ctx context.Context, title string) (changelog.Milestone, error) {
	opt := &gl.ListGroupMilestonesOptions{
		Search:      gl.Ptr(title),
		ListOptions: gl.ListOptions{PerPage: perPage},
	}
	for {
		milestones, resp, err := c.api.GroupMilestones.ListGroupMilestones(c.groupID, opt, gl.WithContext(ctx))
		if err != nil {
			return changelog.Milestone{}, fmt.Errorf("searching milestones: %w", err)
		}
		for _, m := range milestones {
			if m.Title == title {
				c.log.Debug().Int("id", m.ID).Str("title", m.Title).Msg("resolved milestone by title")
				return toMilestone(m), nil
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return changelog.Milestone{}, errs.MilestoneNotFound(title)
}

// ListMilestones returns the group's milestones, optionally filtered by state
// ("active" or "closed"). An empty state returns all milestones.
func (c *Client) ListMilestones(ctx context.Context, state string) ([]changelog.Milestone, error) {
	opt := &gl.ListGroupMilestonesOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
	}
	if state != "" {
		opt.State = gl.Ptr(state)
	}
	var all []changelog.Milestone
	for {
		milestones, resp, err := c.api.GroupMilestones.ListGroupMilestones(c.groupID, opt, gl.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("listing milestones: %w", err)
		}
		for _, m := range milestones {
			all = append(all, toMilestone(m))
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return all, nil
}

func toMilestone(m *gl.GroupMilestone) changelog.Milestone {
	out := changelog.Milestone{
		ID:    m.ID,
		Title: m.Title,
		State: m.State,
	}
	if m.StartDate != nil {
		t := time.Time(*m.StartDate)
		out.Start = &t
	}
	if m.DueDate != nil {
		t := time.Time(*m.DueDate)
		out.Due = &t
	}
	return out
}
