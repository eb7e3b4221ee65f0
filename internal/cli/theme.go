package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/config"
)

// themeCommand creates the theme command, which shows or changes the
// persisted color theme.
func (c *CLI) themeCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Show or set the color theme",
		Long:      "Without an argument, theme toggles between light and dark. The choice is saved to the config file.",
		ValidArgs: []string{string(config.ThemeLight), string(config.ThemeDark)},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			next := cfg.Theme.Toggle()
			if len(args) == 1 {
				if next, err = config.ParseTheme(args[0]); err != nil {
					return err
				}
			}
			if err := c.saveTheme(cfg, next); err != nil {
				return err
			}

			printSuccess("Theme set to %s", styleHighlight.Render(string(next)))
			return nil
		},
	}
}

// saveTheme persists theme to the config file.
func (c *CLI) saveTheme(cfg config.Config, theme config.Theme) error {
	cfg.Theme = theme
	if err := config.Save(c.configPath, cfg); err != nil {
		return err
	}
	c.Logger.Debug("theme saved", "theme", theme)
	return nil
}
