package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/mergemetrics/internal/adapter/driving/cli/report"
	"github.com/ericfisherdev/mergemetrics/internal/application"
	"github.com/ericfisherdev/mergemetrics/internal/config"
	"github.com/ericfisherdev/mergemetrics/internal/domain/model"
)

// ErrRepoNotFound is returned when a requested repository does not exist or
// is not visible with the configured token.
var ErrRepoNotFound = errors.New("repository not found")

// Dependencies are the collaborators shared by every command.
type Dependencies struct {
	Config   *config.Config
	Provider *application.GitHubClientProvider
	Palette  report.Palette
	Out      io.Writer // reports
	Err      io.Writer // progress and warnings
}

// NewRootCommand builds the mergemetrics command tree.
func NewRootCommand(deps Dependencies, version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "mergemetrics",
		Short:         "Engineering velocity reports from merged pull requests",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(deps.Out)
	root.SetErr(deps.Err)

	root.AddCommand(newGitHubCommand(deps), newWhoamiCommand(deps))
	return root
}

type githubOptions struct {
	ranges    []string
	repos     []string
	labels    []string
	selection model.ReportSelection
}

func newGitHubCommand(deps Dependencies) *cobra.Command {
	var opts githubOptions

	cmd := &cobra.Command{
		Use:   "github",
		Short: "Report merged pull request metrics per date range",
		Example: "  mergemetrics github --ranges 2020-08-03..2020-08-14,2020-08-17..2020-08-28 \\\n" +
			"    --repos acme/web,acme/api --include-authors --include-reviewers",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("repos") {
				opts.repos = deps.Config.Profile.Repos
			}
			if !cmd.Flags().Changed("labels") {
				opts.labels = deps.Config.Profile.Labels
			}
			return runGitHub(cmd, deps, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&opts.ranges, "ranges", nil, "date ranges to compare, as start..end")
	flags.StringSliceVar(&opts.repos, "repos", nil, "repositories, as owner/repo or repo with MERGEMETRICS_DEFAULT_OWNER")
	flags.StringSliceVar(&opts.labels, "labels", nil, "only count pull requests carrying every label")
	flags.BoolVar(&opts.selection.PullRequests, "include-prs", false, "print every merged pull request")
	flags.BoolVar(&opts.selection.Authors, "include-authors", false, "print metrics per author")
	flags.BoolVar(&opts.selection.Projects, "include-projects", false, "print metrics per repository")
	flags.BoolVar(&opts.selection.Reviewers, "include-reviewers", false, "print review activity per reviewer")
	_ = cmd.MarkFlagRequired("ranges")

	return cmd
}

func runGitHub(cmd *cobra.Command, deps Dependencies, opts githubOptions) error {
	ctx := cmd.Context()

	ranges, err := ParseRanges(opts.ranges)
	if err != nil {
		return err
	}
	if len(opts.repos) == 0 {
		return fmt.Errorf("%w: no repositories given (--repos or profile repos)", ErrInvalidRepo)
	}
	repos, err := ParseRepos(opts.repos, deps.Config.DefaultOwner)
	if err != nil {
		return err
	}

	client, err := deps.Provider.Get(ctx)
	if err != nil {
		return err
	}

	for _, repo := range repos {
		valid, err := client.IsRepoValid(ctx, repo)
		if err != nil {
			return fmt.Errorf("validating %s: %w", repo.FullName(), err)
		}
		if !valid {
			return fmt.Errorf("%s %w. Check the project name or %s value.", repo.FullName(), ErrRepoNotFound, config.TokenEnvVar)
		}
	}

	fmt.Fprintln(deps.Err, "Fetching metrics")
	metrics, err := application.NewMetricsService(client).FetchRanges(ctx, application.FetchRequest{
		Repos:     repos,
		Ranges:    ranges,
		Labels:    opts.labels,
		Selection: opts.selection,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Err, "Metrics fetched")

	return report.NewRenderer(deps.Out, deps.Palette).Render(metrics, opts.selection)
}

func newWhoamiCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the GitHub user the token belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, err := deps.Provider.Get(ctx)
			if err != nil {
				return err
			}

			user, err := client.GetUser(ctx)
			if err != nil {
				return fmt.Errorf("fetching user: %w", err)
			}
			if user == nil {
				fmt.Fprintln(deps.Out, deps.Palette.Bad("Invalid "+config.TokenEnvVar+" token."))
				return nil
			}

			if user.Name != "" {
				fmt.Fprintf(deps.Out, "%s (@%s)\n", user.Name, user.Login)
			} else {
				fmt.Fprintf(deps.Out, "@%s\n", user.Login)
			}
			if user.Email != "" {
				fmt.Fprintln(deps.Out, user.Email)
			}
			return nil
		},
	}
}
