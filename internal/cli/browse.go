package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/config"
)

// browseCommand creates the browse command, the interactive terminal UI.
func (c *CLI) browseCommand() *cobra.Command {
	var exportPath string

	cmd := &cobra.Command{
		Use:   "browse <file>",
		Short: "Explore and edit a mindmap in the terminal",
		Long: `Browse opens the document in an interactive outline.

The root starts expanded and everything below it collapsed. Press enter to
expand or collapse a node, e to edit its long summary, d to delete it,
x to export the current tree and t to switch between light and dark.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if exportPath == "" {
				exportPath = cfg.ExportName
			}

			sess, err := c.openSession(args[0])
			if err != nil {
				return err
			}

			model := newBrowseModel(sess, browseOptions{
				Theme:      cfg.Theme,
				ExportPath: exportPath,
				SaveTheme: func(t config.Theme) error {
					return c.saveTheme(cfg, t)
				},
			})

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&exportPath, "output", "o", "", "file written by the export key (default from config, mindmap.json)")

	return cmd
}
