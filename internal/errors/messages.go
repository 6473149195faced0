package errors

import "fmt"

// Common error messages for the loglady CLI.
// These templates ensure consistent, actionable error messages.

// MissingMilestone creates an error for a missing --milestone flag.
func MissingMilestone() *CLIError {
	return NewArgumentErrorWithUsage(
		"milestone name or ID is required",
		"loglady --milestone \"<name-or-id>\"",
		"Pass the milestone title: loglady --milestone \"2026.08\"",
		"Or its numeric ID: loglady --milestone 42",
		"List available milestones with: loglady milestones",
	)
}

// MilestoneNotFound creates an error when a milestone cannot be located in the group.
func MilestoneNotFound(milestone string) *CLIError {
	return NewNotFoundError(
		fmt.Sprintf("milestone not found: %s", milestone),
		"Check the milestone title for typos (matching is exact)",
		"List group milestones with: loglady milestones",
	)
}

// NoClosedIssues creates an error when a milestone has no closed issues to report.
func NoClosedIssues(milestone string) *CLIError {
	return NewNotFoundError(
		fmt.Sprintf("no closed issues found for milestone: %s", milestone),
		"Verify issues are assigned to the milestone and closed",
		"Check the group ID in your configuration",
	)
}

// GitLabAuthFailed creates an error when the GitLab token is rejected.
func GitLabAuthFailed(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"GitLab authentication failed",
		"Check that the token has read_api scope and has not expired",
		"Set a valid token with: export LOGLADY_GITLAB_TOKEN=<token>",
	)
}

// ConfigFileNotFound creates an error for a missing config file.
func ConfigFileNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file not found: %s", path),
		"Run 'loglady config init' to create a default configuration",
		"Or point --config at an existing file",
	)
}

// ConfigParseError creates an error for an invalid config file.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to parse config file: %s", path),
		"Check the file for YAML syntax errors",
		"Reset to defaults with: loglady config init --force",
	)
}

// MissingGitLabSettings creates an error when required GitLab settings are absent.
func MissingGitLabSettings(missing string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("missing required configuration: %s", missing),
		"Add the value to your config file under the gitlab section",
		"Or set it in the environment, e.g. LOGLADY_GITLAB_TOKEN=<token>",
	)
}

// WebhookNotConfigured creates an error when publishing is requested without a webhook.
func WebhookNotConfigured() *CLIError {
	return NewConfigError(
		"no webhook URL configured",
		"Set slack.webhook_url in your config file",
		"Or set it in the environment: LOGLADY_SLACK_WEBHOOK_URL=<url>",
	)
}

// WebhookPostFailed creates an error when the webhook rejects a post.
// The archive file written earlier in the run is unaffected.
func WebhookPostFailed(err error) *CLIError {
	return WrapWithMessage(err, API,
		"posting changelog to webhook failed",
		"Check the webhook URL and network connectivity",
		"Retry the post alone with: loglady --publish-only",
	)
}

// OutputFileNotFound creates an error when --publish-only finds no changelog to post.
func OutputFileNotFound(path string) *CLIError {
	return NewNotFoundError(
		fmt.Sprintf("changelog file not found: %s", path),
		"Generate it first: loglady --milestone \"<name>\"",
		"Or point --output at an existing changelog file",
	)
}

// ArchiveWriteFailed creates an error when the year file cannot be written.
func ArchiveWriteFailed(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("writing archive file failed: %s", path),
		"Check permissions on the archive directory",
		"Choose another location with --archive-dir",
	)
}
