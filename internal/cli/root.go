// Package cli wires the loglady commands together: flag parsing, config
// loading, the generate flow on the root command, and the subcommands.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"gitlab.com/lanterman/loglady/internal/archive"
	"gitlab.com/lanterman/loglady/internal/changelog"
	"gitlab.com/lanterman/loglady/internal/config"
	errs "gitlab.com/lanterman/loglady/internal/errors"
	"gitlab.com/lanterman/loglady/internal/gitlab"
	"gitlab.com/lanterman/loglady/internal/logging"
	"gitlab.com/lanterman/loglady/internal/output"
	"gitlab.com/lanterman/loglady/internal/progress"
	"gitlab.com/lanterman/loglady/internal/publish"
)

var (
	cfgFile     string
	verbose     bool
	milestone   string
	dryRun      bool
	archiveDir  string
	outputFile  string
	publishOnly bool
)

var rootCmd = &cobra.Command{
	Use:   "loglady",
	Short: "Generate product changelogs from GitLab milestones",
	Long: `loglady builds a markdown changelog for a GitLab group milestone.

It fetches the milestone's closed issues, groups them by product using the
configured repository mapping, renders a changelog block, archives the block
into a per-year markdown file, and optionally posts it to Slack.

Source: https://gitlab.com/lanterman/loglady`,
	Example: `  # Generate the changelog for a milestone
  loglady --milestone "2026.08"

  # Preview without writing or posting
  loglady --milestone "2026.08" --dry-run

  # Re-post the last generated changelog to Slack
  loglady --publish-only

  # List the group's milestones
  loglady milestones`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runGenerate(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (default: ./loglady.yaml, then the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug diagnostics on stderr")

	rootCmd.Flags().StringVarP(&milestone, "milestone", "m", "", "Milestone name or numeric ID")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the changelog without writing the archive or posting")
	rootCmd.Flags().StringVar(&archiveDir, "archive-dir", "changelog_archive", "Directory for the per-year archive files")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "changelog.md", "Path for the rendered changelog file")
	rootCmd.Flags().BoolVar(&publishOnly, "publish-only", false, "Skip generation and post the --output file to Slack")
}

// Execute runs the root command and converts failures into process exit
// codes. Structured errors print with their remediation; everything else
// prints as a plain error line.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		if cliErr := errs.AsCLIError(err); cliErr != nil {
			errs.PrintError(cliErr)
			return NewExitError(categoryExitCode(cliErr.Category), err)
		}
		errs.PrintSimpleError(err, errs.Runtime)
		return NewExitError(ExitRuntime, err)
	}
	return nil
}

// stepper numbers the progress steps printed to stderr.
type stepper struct {
	out   io.Writer
	n     int
	total int
}

func (s *stepper) step(name string) {
	s.n++
	output.PrintStepHeader(s.out, s.n, s.total, name)
}

func (s *stepper) success(message string) {
	output.PrintStepSuccess(s.out, message)
}

// runGenerate is the main flow: resolve the milestone, fetch its closed
// issues, render the changelog, archive it, and post it.
func runGenerate(cmd *cobra.Command) error {
	log := logging.New(verbose)

	if publishOnly {
		return runPublishOnly(cmd, log)
	}
	if milestone == "" {
		return errs.MissingMilestone()
	}

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

	ctx := cmd.Context()
	errOut := cmd.ErrOrStderr()

	total := 3
	if !dryRun {
		total++
		if cfg.HasSlack() {
			total++
		}
	}
	steps := &stepper{out: errOut, total: total}

	steps.step("Connecting to GitLab")
	username, err := client.VerifyAuth(ctx)
	if err != nil {
		return err
	}
	steps.success(fmt.Sprintf("Connected as %s", username))

	steps.step(fmt.Sprintf("Resolving milestone %q", milestone))
	ms, err := client.ResolveMilestone(ctx, milestone)
	if err != nil {
		return err
	}
	steps.success(describeMilestone(ms))

	steps.step("Fetching closed issues")
	spin := progress.NewSpinner("fetching issues")
	spin.Start()
	issues, err := client.ClosedIssues(ctx, ms.Title)
	spin.Stop()
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		if dryRun {
			output.PrintNotice(errOut, fmt.Sprintf("No closed issues for milestone %s, nothing to preview.", ms.Title))
			return nil
		}
		return errs.NoClosedIssues(ms.Title)
	}
	steps.success(fmt.Sprintf("%d closed issues", len(issues)))

	products := changelog.NewProductMap(cfg.Products, cfg.GitLab.URL)
	report := changelog.BuildReport(ms, issues, products)
	block, err := changelog.RenderMarkdownString(report)
	if err != nil {
		return err
	}

	printBlock(cmd.OutOrStdout(), block)

	if dryRun {
		if cfg.HasSlack() {
			pub := newPublisher(cfg, cmd.OutOrStdout(), log)
			if _, err := pub.Publish(ctx, block, true); err != nil {
				return err
			}
		}
		output.PrintNotice(errOut, "Dry run: nothing written, nothing posted.")
		return nil
	}

	steps.step("Archiving")
	if err := os.WriteFile(outputFile, []byte(block), 0o644); err != nil {
		return fmt.Errorf("writing output file %s: %w", outputFile, err)
	}
	arch := archive.New(archiveDir)
	arch.Log = log
	archivePath, replaced, err := arch.Archive(ms, block)
	if err != nil {
		return errs.ArchiveWriteFailed(archiveDir, err)
	}
	detail := "new block"
	if replaced {
		detail = "replaced existing block"
	}
	steps.success(fmt.Sprintf("Archived to %s (%s)", archivePath, detail))

	if !cfg.HasSlack() {
		output.PrintNotice(errOut, "Slack webhook not configured, skipping post.")
		return nil
	}

	steps.step("Posting to Slack")
	pub := newPublisher(cfg, cmd.OutOrStdout(), log)
	n, err := pub.Publish(ctx, block, false)
	if err != nil {
		return err
	}
	steps.success(fmt.Sprintf("Posted to Slack (%d message(s))", n))
	return nil
}

// runPublishOnly posts a previously generated changelog file without
// touching GitLab or the archive.
func runPublishOnly(cmd *cobra.Command, log zerolog.Logger) error {
	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}
	if !cfg.HasSlack() {
		return errs.WebhookNotConfigured()
	}

	pub := newPublisher(cfg, cmd.OutOrStdout(), log)
	n, err := pub.PublishFile(cmd.Context(), outputFile, dryRun)
	if err != nil {
		return err
	}
	if !dryRun {
		output.PrintStepSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Posted %s to Slack (%d message(s))", outputFile, n))
	}
	return nil
}

// loadConfiguration resolves and loads the config file, mapping failures to
// structured errors with remediation.
func loadConfiguration() (*config.Configuration, error) {
	path, err := config.ResolveConfigPath(cfgFile)
	if err != nil {
		return nil, errs.ConfigFileNotFound(cfgFile)
	}
	cfg, err := config.Load(path)
	if err != nil {
		source := path
		if source == "" {
			source = "configuration"
		}
		return nil, errs.ConfigParseError(source, err)
	}
	return cfg, nil
}

// newPublisher builds a publisher whose dry-run output lands on the
// command's stdout.
func newPublisher(cfg *config.Configuration, out io.Writer, log zerolog.Logger) *publish.Publisher {
	pub := publish.New(cfg.Slack.WebhookURL, cfg.Slack.Channel)
	pub.Out = out
	pub.Log = log
	return pub
}

// printBlock writes the rendered changelog to stdout, framed by dividers
// when attached to a terminal.
func printBlock(out io.Writer, block string) {
	isTTY := progress.DetectTerminalCapabilities().IsTTY
	if isTTY {
		output.PrintDivider(out)
	}
	fmt.Fprint(out, block)
	if isTTY {
		output.PrintDivider(out)
	}
}

// describeMilestone summarizes a resolved milestone for the step output.
func describeMilestone(m changelog.Milestone) string {
	return fmt.Sprintf("Milestone %s (%s → %s)",
		m.Title, changelog.FormatDate(m.Start), changelog.FormatDate(m.Due))
}
