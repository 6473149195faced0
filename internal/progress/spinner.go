package progress

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerInterval = 100 * time.Millisecond

// Spinner animates a long-running phase on stderr. On non-interactive
// terminals it stays silent: callers announce their steps themselves, so
// piped output and CI logs see one line per step instead of animation
// frames.
type Spinner struct {
	spin *spinner.Spinner
}

// NewSpinner builds a spinner for the given message. The spinner only
// animates when stderr is a terminal; LOGLADY_ASCII switches the charset
// and NO_COLOR drops the tint.
func NewSpinner(message string) *Spinner {
	caps := detectFor(os.Stderr)
	if !caps.IsTTY {
		return &Spinner{}
	}

	symbols := SelectSymbols(caps)
	s := spinner.New(spinner.CharSets[symbols.SpinnerSet], spinnerInterval,
		spinner.WithWriter(os.Stderr),
		spinner.WithSuffix(" "+message),
		spinner.WithHiddenCursor(true),
	)
	if caps.SupportsColor {
		_ = s.Color("cyan")
	}
	return &Spinner{spin: s}
}

// Start begins the animation when the terminal supports it.
func (s *Spinner) Start() {
	if s.spin != nil {
		s.spin.Start()
	}
}

// Stop halts the animation and clears the spinner line. Safe to call when
// the spinner never animated.
func (s *Spinner) Stop() {
	if s.spin != nil {
		s.spin.Stop()
	}
}
