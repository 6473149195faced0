// Package archive maintains the year-based changelog files. Each year file
// holds an ordered sequence of milestone blocks, newest first, with at most
// one block per milestone title.
package archive

import (
	"strings"
	"time"
)

// headingPrefix marks the first line of every milestone block.
const headingPrefix = "**Changelog - "

// timestampLayout formats the generation trailer timestamp.
const timestampLayout = "2006-01-02 15:04:05"

// heading returns the exact heading marker for a milestone title.
// The closing bold marker keeps prefix titles from matching each other.
func heading(title string) string {
	return headingPrefix + title + "**"
}

// Entry wraps a rendered milestone block into an archive entry: the block,
// a separator, the generation trailer, and a trailing blank line.
func Entry(block string, now time.Time) string {
	return strings.TrimRight(block, "\n") +
		"\n\n---\n*Generated on " + now.Format(timestampLayout) + "*\n\n"
}

// HasBlock reports whether the content already contains a block for the
// given milestone title. Matching is exact and case-sensitive.
func HasBlock(content, title string) bool {
	target := heading(title)
	for _, line := range strings.SplitAfter(content, "\n") {
		if strings.HasPrefix(line, target) {
			return true
		}
	}
	return false
}

// Merge produces the updated year-file content from the existing content and
// a new entry for the given milestone title.
//
// The new entry always lands at the top. An existing block with the same
// title - its span running from its heading line to just before the next
// heading or end of file - is dropped; every other byte of the existing
// content is preserved in its original order. Content before the first
// heading (a malformed file) is treated as opaque and preserved as-is.
func Merge(existing, entry, title string) string {
	if existing == "" {
		return entry
	}

	target := heading(title)

	var b strings.Builder
	b.Grow(len(entry) + len(existing))
	b.WriteString(entry)

	// Line scan: outside a matched block lines are copied verbatim, inside
	// they are dropped. Heading lines switch the state.
	skipping := false
	for _, line := range strings.SplitAfter(existing, "\n") {
		if strings.HasPrefix(line, headingPrefix) {
			skipping = strings.HasPrefix(line, target)
		}
		if !skipping {
			b.WriteString(line)
		}
	}

	return b.String()
}
