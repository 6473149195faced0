package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gitlab.com/lanterman/loglady/internal/changelog"
	errs "gitlab.com/lanterman/loglady/internal/errors"
	"gitlab.com/lanterman/loglady/internal/gitlab"
	"gitlab.com/lanterman/loglady/internal/logging"
)

var milestonesState string

var milestonesCmd = &cobra.Command{
	Use:   "milestones",
	Short: "List the group's milestones",
	Long:  `List the milestones of the configured GitLab group with their IDs, states, and date ranges. Useful for finding the exact title to pass to --milestone.`,
	Example: `  # All milestones
  loglady milestones

  # Only milestones still open
  loglady milestones --state active`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMilestones(cmd)
	},
}

func init() {
	rootCmd.AddCommand(milestonesCmd)
	milestonesCmd.Flags().StringVar(&milestonesState, "state", "all", "Filter by state: active | closed | all")
}

func runMilestones(cmd *cobra.Command) error {
	state, err := normalizeState(milestonesState)
	if err != nil {
		return err
	}

	log := logging.New(verbose)
	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}
	if missing := cfg.MissingGitLab(); len(missing) > 0 {
		return errs.MissingGitLabSettings(strings.Join(missing, ", "))
	}

	client, err := gitlab.NewClient(cfg.GitLab.URL, cfg.GitLab.Token, cfg.GitLab.GroupID, log)
	if err != nil {
		return err
	}

	milestones, err := client.ListMilestones(cmd.Context(), state)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(milestones) == 0 {
		fmt.Fprintln(out, "No milestones found.")
		return nil
	}

	displayMilestones(cmd, milestones)
	return nil
}

// normalizeState validates the --state flag and converts "all" to the empty
// filter the API expects.
func normalizeState(state string) (string, error) {
	switch state {
	case "all":
		return "", nil
	case "active", "closed":
		return state, nil
	default:
		return "", errs.NewArgumentError(
			fmt.Sprintf("invalid state %q", state),
			"Valid states are: active, closed, all",
		)
	}
}

// displayMilestones prints one line per milestone with its ID, state, and
// date range.
func displayMilestones(cmd *cobra.Command, milestones []changelog.Milestone) {
	out := cmd.OutOrStdout()

	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	for _, m := range milestones {
		state := strings.ToUpper(m.State)
		if m.State == "active" {
			state = green(state)
		} else {
			state = red(state)
		}

		fmt.Fprintf(out, "- %s (ID: %d, State: %s)  %s\n",
			cyan(fmt.Sprintf("'%s'", m.Title)),
			m.ID,
			state,
			dim(fmt.Sprintf("%s → %s", changelog.FormatDate(m.Start), changelog.FormatDate(m.Due))),
		)
	}
}
