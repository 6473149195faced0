package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"gitlab.com/lanterman/loglady/internal/changelog"
)

var yearPattern = regexp.MustCompile(`\d{4}`)

// Archiver writes milestone blocks into year files under Dir.
// The clock is injectable so the generation trailer is deterministic in tests.
type Archiver struct {
	// Dir is the archive directory; it is created on first write.
	Dir string
	// Now supplies the trailer timestamp.
	Now func() time.Time
	// Log receives merge diagnostics.
	Log zerolog.Logger
}

// New creates an archiver for the given directory.
func New(dir string) *Archiver {
	return &Archiver{
		Dir: dir,
		Now: time.Now,
		Log: zerolog.Nop(),
	}
}

// Year picks the archive year for a milestone: the due date's year, else the
// start date's year, else the first four-digit number in the title, else the
// current year.
func Year(m changelog.Milestone, now time.Time) int {
	if m.Due != nil {
		return m.Due.Year()
	}
	if m.Start != nil {
		return m.Start.Year()
	}
	if match := yearPattern.FindString(m.Title); match != "" {
		year, err := strconv.Atoi(match)
		if err == nil {
			return year
		}
	}
	return now.Year()
}

// Archive merges the rendered block into the milestone's year file and
// rewrites the file in full. It returns the path written and whether an
// existing block for the same title was replaced.
func (a *Archiver) Archive(m changelog.Milestone, block string) (string, bool, error) {
	now := a.Now()
	path := filepath.Join(a.Dir, fmt.Sprintf("%d.md", Year(m, now)))

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return path, false, fmt.Errorf("reading archive file: %w", err)
	}

	content := string(existing)
	replaced := HasBlock(content, m.Title)
	merged := Merge(content, Entry(block, now), m.Title)

	a.Log.Debug().
		Str("file", path).
		Str("milestone", m.Title).
		Bool("replaced", replaced).
		Msg("merging archive entry")

	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return path, replaced, fmt.Errorf("creating archive directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(merged), 0o644); err != nil {
		return path, replaced, fmt.Errorf("writing archive file: %w", err)
	}

	return path, replaced, nil
}
