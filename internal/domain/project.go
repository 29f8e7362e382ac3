package domain

import "fmt"

// githubWebBase is the host used for issue links.
const githubWebBase = "https://github.com"

// Project groups tasks and carries the issue-tracker settings for them.
type Project struct {
	Github *GithubConfig // nil = no tracker configured
	ID     string
	Title  string
}

// GithubConfig holds the GitHub tracker settings of a project.
// Fields are ordered to minimize memory padding.
type GithubConfig struct {
	Repo                     string `toml:"repo"`                                // owner/name
	FilterUsername           string `toml:"filter_username,omitempty"`           // Own login; its comments don't count as remote updates
	Token                    string `toml:"token,omitempty"`                     // Overrides the keychain token
	APIBaseURL               string `toml:"api_base_url,omitempty"`              // Defaults to https://api.github.com
	IsSearchIssuesFromGithub bool   `toml:"search_issues_from_github,omitempty"` // Allow remote search
}

// IssueURL returns the web URL of an issue in the configured repository.
func (c *GithubConfig) IssueURL(issueID string) string {
	return fmt.Sprintf("%s/%s/issues/%s", githubWebBase, c.Repo, issueID)
}
