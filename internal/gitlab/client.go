// Package gitlab wraps the GitLab API for milestone and issue retrieval.
//
// The wrapper exposes the three queries the changelog flow needs: resolving
// a milestone reference (name or numeric ID) within the configured group,
// listing the closed issues assigned to that milestone across the group, and
// verifying that the configured token authenticates at all. Results are
// converted to changelog types at the boundary so the rest of the codebase
// never touches API structs.
package gitlab

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	gl "gitlab.com/gitlab-org/api/client-go"

	errs "gitlab.com/lanterman/loglady/internal/errors"
)

// perPage is the page size for every list request. 100 is the API maximum.
const perPage = 100

// Client queries a single GitLab group.
type Client struct {
	api     *gl.Client
	groupID string
	log     zerolog.Logger

	// projects caches project lookups for the lifetime of the client so a
	// milestone with many issues in the same repository resolves each
	// project exactly once.
	projects map[int]projectInfo
}

type projectInfo struct {
	name   string
	webURL string
}

// NewClient builds a client for the given instance URL and group. The token
// is sent as a private token header on every request.
func NewClient(baseURL, token, groupID string, log zerolog.Logger) (*Client, error) {
	api, err := gl.NewClient(token, gl.WithBaseURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("creating GitLab client: %w", err)
	}
	return &Client{
		api:      api,
		groupID:  groupID,
		log:      log,
		projects: make(map[int]projectInfo),
	}, nil
}

// VerifyAuth checks that the configured token authenticates against the
// instance by fetching the current user, and returns the username. A 401 is
// reported as an authentication failure with remediation; other errors pass
// through wrapped.
func (c *Client) VerifyAuth(ctx context.Context) (string, error) {
	user, resp, err := c.api.Users.CurrentUser(gl.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return "", errs.GitLabAuthFailed(err)
		}
		return "", fmt.Errorf("verifying GitLab connection: %w", err)
	}
	c.log.Debug().Str("username", user.Username).Msg("authenticated against GitLab")
	return user.Username, nil
}
