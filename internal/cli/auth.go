package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/runoshun/daytrack/internal/app"
	"github.com/runoshun/daytrack/internal/domain"
	"github.com/spf13/cobra"
)

// newAuthCommand creates the auth command.
func newAuthCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage credentials",
		Long:  `Store API credentials outside of the config files.`,
	}

	cmd.AddCommand(newAuthGithubCommand(c))
	cmd.AddCommand(newAuthGoogleCommand(c))

	return cmd
}

// newAuthGithubCommand creates the auth github subcommand.
func newAuthGithubCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Token  string
		Delete bool
	}

	cmd := &cobra.Command{
		Use:   "github",
		Short: "Store the GitHub token in the OS keychain",
		Long: `Store a GitHub personal access token in the OS keychain.

The token is read from --token or from the first line of stdin.
A token set in [projects.<id>.github] token takes precedence.

Examples:
  # Store a token
  echo "$GITHUB_TOKEN" | daytrack auth github

  # Remove the stored token
  daytrack auth github --delete`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Delete {
				if err := c.Tokens.Delete(domain.GithubTokenScope); err != nil {
					return fmt.Errorf("delete token: %w", err)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Removed GitHub token")
				return nil
			}

			token := opts.Token
			if token == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no token given (use --token or stdin)")
				}
				token = strings.TrimSpace(line)
			}

			if err := c.Tokens.Set(domain.GithubTokenScope, token); err != nil {
				return fmt.Errorf("store token: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Stored GitHub token")
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Token, "token", "", "Token to store (default: read from stdin)")
	cmd.Flags().BoolVar(&opts.Delete, "delete", false, "Remove the stored token")

	return cmd
}

// newAuthGoogleCommand creates the auth google subcommand.
func newAuthGoogleCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "google",
		Short: "Authorize the time sheet calendar",
		Long: `Run the OAuth consent flow for the calendar configured in [google]
and cache the token. Open the printed URL in a browser.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.CalendarAuth == nil {
				return domain.ErrExporterDisabled
			}
			w := cmd.OutOrStdout()
			err := c.CalendarAuth.Authorize(cmd.Context(), func(url string) {
				_, _ = fmt.Fprintf(w, "Open this URL to authorize daytrack:\n\n  %s\n\n", url)
			})
			if err != nil {
				return fmt.Errorf("authorize calendar: %w", err)
			}
			_, _ = fmt.Fprintln(w, "Calendar authorized")
			return nil
		},
	}
}
