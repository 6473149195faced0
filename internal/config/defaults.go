package config

// GetDefaultConfigTemplate returns a fully commented config template
// written by 'loglady config init'.
func GetDefaultConfigTemplate() string {
	return `# loglady configuration
# Every value can be overridden with a LOGLADY_* environment variable,
# e.g. LOGLADY_GITLAB_TOKEN overrides gitlab.token.

# GitLab connection
gitlab:
  url: https://gitlab.com             # Base URL of the GitLab instance
  token: ""                           # Personal access token with read_api scope
  group_id: ""                        # Numeric group ID or full group path

# Product -> repository mapping. Closed issues are grouped by the product
# their repository belongs to; issues from unlisted repositories land under
# "Uncategorized". Repositories may be full URLs or paths relative to the
# GitLab URL.
products: {}
#  Product One:
#    - group/repo-one
#    - https://gitlab.example.com/group/repo-two

# Slack publishing (optional). Leave webhook_url empty to skip posting.
slack:
  webhook_url: ""                     # Incoming webhook URL
  channel: ""                         # Optional channel override, e.g. "#releases"
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"gitlab": map[string]interface{}{
			// gitlab.com is the default instance; self-hosted setups
			// override url in their config file.
			"url":      "https://gitlab.com",
			"token":    "",
			"group_id": "",
		},
		// products: empty mapping means every issue renders under
		// "Uncategorized" until repositories are assigned to products.
		"products": map[string][]string{},
		"slack": map[string]interface{}{
			"webhook_url": "",
			"channel":     "",
		},
	}
}
