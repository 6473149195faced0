package archive

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)

// testBlock builds a minimal rendered milestone block.
func testBlock(title, line string) string {
	return "**Changelog - " + title + "** (2026-01-01 → 2026-01-31)\n\n" +
		"**Product** (1 issues)\n" +
		"* " + line + " (repo#1)\n\n" +
		"---\nTotal: 1 issues closed\n"
}

func testEntry(title, line string) string {
	return Entry(testBlock(title, line), fixedNow)
}

func TestEntry(t *testing.T) {
	got := Entry("**Changelog - M** (N/A → N/A)\n\n---\nTotal: 0 issues closed\n", fixedNow)

	want := "**Changelog - M** (N/A → N/A)\n\n---\nTotal: 0 issues closed\n" +
		"\n---\n*Generated on 2026-08-25 10:30:00*\n\n"
	assert.Equal(t, want, got)
}

func TestEntryNormalizesTrailingNewlines(t *testing.T) {
	a := Entry("block\n", fixedNow)
	b := Entry("block\n\n\n", fixedNow)
	assert.Equal(t, a, b)
	assert.True(t, strings.HasSuffix(a, "*Generated on 2026-08-25 10:30:00*\n\n"))
}

func TestHasBlock(t *testing.T) {
	content := testEntry("2026.08", "Issue A") + testEntry("2026.07", "Issue B")

	tests := map[string]struct {
		title string
		want  bool
	}{
		"existing title":           {title: "2026.08", want: true},
		"other existing title":     {title: "2026.07", want: true},
		"absent title":             {title: "2026.06", want: false},
		"prefix of existing title": {title: "2026.0", want: false},
		"trailing space differs":   {title: "2026.08 ", want: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, HasBlock(content, tc.title))
		})
	}
}

func TestMergeIntoEmptyFile(t *testing.T) {
	entry := testEntry("2026.08", "Issue A")
	assert.Equal(t, entry, Merge("", entry, "2026.08"))
}

func TestMergeInsertsNewBlockAtTop(t *testing.T) {
	existing := testEntry("2026.07", "Old issue") + testEntry("2026.06", "Older issue")
	entry := testEntry("2026.08", "New issue")

	merged := Merge(existing, entry, "2026.08")

	// New block first, prior content byte-identical after it.
	assert.Equal(t, entry+existing, merged)
}

func TestMergeIsIdempotent(t *testing.T) {
	entry := testEntry("2026.08", "Issue A")

	once := Merge("", entry, "2026.08")
	twice := Merge(once, entry, "2026.08")

	assert.Equal(t, once, twice)
}

func TestMergeReplacesBlockAndShiftsToTop(t *testing.T) {
	entryA := testEntry("2026.08", "Issue A")
	entryB := testEntry("2026.07", "Issue B")
	entryC := testEntry("2026.06", "Issue C")
	existing := entryA + entryB + entryC

	replacement := testEntry("2026.07", "Issue B revised")
	merged := Merge(existing, replacement, "2026.07")

	// Replaced block moves to the top; the others keep their bytes and order.
	assert.Equal(t, replacement+entryA+entryC, merged)
	assert.NotContains(t, merged, "Issue B (repo#1)")
	assert.Contains(t, merged, "Issue B revised (repo#1)")
}

func TestMergeReplacesTopBlockInPlace(t *testing.T) {
	entryA := testEntry("2026.08", "Issue A")
	entryB := testEntry("2026.07", "Issue B")
	existing := entryA + entryB

	replacement := testEntry("2026.08", "Issue A revised")
	merged := Merge(existing, replacement, "2026.08")

	assert.Equal(t, replacement+entryB, merged)
}

func TestMergeReplacesLastBlockWithoutTrailingNewline(t *testing.T) {
	entryA := testEntry("2026.08", "Issue A")
	// A hand-edited final block that lost its trailing newline.
	existing := entryA + "**Changelog - 2026.07** (N/A → N/A)\n\n---\nTotal: 0 issues closed"

	replacement := testEntry("2026.07", "Issue B")
	merged := Merge(existing, replacement, "2026.07")

	assert.Equal(t, replacement+entryA, merged)
}

func TestMergeExactTitleMatching(t *testing.T) {
	entryLong := testEntry("2026.08.1", "Point release issue")
	existing := entryLong

	entry := testEntry("2026.08", "Monthly issue")
	merged := Merge(existing, entry, "2026.08")

	// "2026.08" must not swallow the "2026.08.1" block.
	assert.Equal(t, entry+entryLong, merged)
}

func TestMergeTitleMatchingIsCaseSensitive(t *testing.T) {
	existing := testEntry("Sprint One", "Issue A")

	entry := testEntry("sprint one", "Issue B")
	merged := Merge(existing, entry, "sprint one")

	assert.Contains(t, merged, "**Changelog - Sprint One**")
	assert.Contains(t, merged, "**Changelog - sprint one**")
}

func TestMergeRemovesDuplicateBlocks(t *testing.T) {
	// A corrupted file holding the same milestone twice.
	dup := testEntry("2026.08", "First copy")
	existing := dup + testEntry("2026.07", "Other") + testEntry("2026.08", "Second copy")

	entry := testEntry("2026.08", "Canonical")
	merged := Merge(existing, entry, "2026.08")

	assert.Equal(t, 1, strings.Count(merged, "**Changelog - 2026.08**"))
	assert.Contains(t, merged, "Canonical")
	assert.NotContains(t, merged, "First copy")
	assert.NotContains(t, merged, "Second copy")
}

func TestMergePreservesMalformedContent(t *testing.T) {
	tests := map[string]struct {
		existing string
	}{
		"plain prose":              {existing: "# Notes\n\nsome handwritten notes\n"},
		"prose without newline":    {existing: "no trailing newline"},
		"prose before first block": {existing: "stray preamble\n" + testEntry("2026.07", "Issue B")},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			entry := testEntry("2026.08", "Issue A")
			merged := Merge(tc.existing, entry, "2026.08")

			// Entry lands at the top; every existing byte survives.
			require.True(t, strings.HasPrefix(merged, entry))
			assert.Equal(t, entry+tc.existing, merged)
		})
	}
}

func TestMergePriorBlocksByteIdentical(t *testing.T) {
	entries := []string{
		testEntry("2026.05", "May work"),
		testEntry("2026.04", "April work"),
		testEntry("2026.03", "March work"),
	}
	existing := strings.Join(entries, "")

	entry := testEntry("2026.06", "June work")
	merged := Merge(existing, entry, "2026.06")

	rest := strings.TrimPrefix(merged, entry)
	assert.Equal(t, existing, rest)
}
