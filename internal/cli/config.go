package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/daytrack/internal/app"
	"github.com/runoshun/daytrack/internal/domain"
	"github.com/spf13/cobra"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage daytrack configuration files and settings.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display effective configuration after merging all sources.

Shows which config files were loaded and the final merged configuration.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.ConfigLoader.Load()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, "[Loaded from]")
			printConfigSource(w, c.ConfigManager.GetGlobalConfigInfo())
			printConfigSource(w, c.ConfigManager.GetLocalConfigInfo())
			_, _ = fmt.Fprintln(w)

			_, _ = fmt.Fprintln(w, "[Effective config]")
			data, err := toml.Marshal(maskTokens(cfg))
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, _ = w.Write(data)
			return nil
		},
	}
}

// maskTokens returns a copy of cfg with project tokens hidden.
func maskTokens(cfg *domain.Config) *domain.Config {
	masked := *cfg
	masked.Projects = make(map[string]domain.ProjectConfig, len(cfg.Projects))
	for id, pc := range cfg.Projects {
		if pc.Github != nil && pc.Github.Token != "" {
			gh := *pc.Github
			gh.Token = "********"
			pc.Github = &gh
		}
		masked.Projects[id] = pc
	}
	return &masked
}

func printConfigSource(w io.Writer, info domain.ConfigInfo) {
	if info.Exists {
		_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
	} else {
		_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
	}
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the global config file",
		Long: `Create the global config file from the default template.

Error conditions:
- Config already exists: "config file already exists"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := c.ConfigManager.InitGlobalConfig()
			if errors.Is(err, domain.ErrConfigExists) {
				return fmt.Errorf("%w: %s", err, c.ConfigManager.GetGlobalConfigInfo().Path)
			}
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config at %s\n", c.ConfigManager.GetGlobalConfigInfo().Path)
			return nil
		},
	}
}
