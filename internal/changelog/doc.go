// Package changelog turns closed GitLab issues into the milestone
// changelog block that loglady archives and publishes.
//
// This package implements:
//   - Grouping of issues into product sections via the repository mapping
//   - Alphabetical ordering of products and issue titles
//   - Time estimate totals in hours and working days (8h = 1d)
//   - Markdown rendering of the milestone block
//
// The rendered block is plain text; archival placement and webhook
// delivery live in the archive and publish packages.
package changelog
