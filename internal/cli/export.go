package cli

import (
	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/mindmap/pkg/io"
)

// exportCommand creates the export command, which normalizes a document to
// the canonical JSON form.
func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write a document back out as canonical JSON",
		Long: `Export loads a JSON or YAML document, validates it and writes it as
indented JSON. Empty optional fields are dropped and children lists keep
their order. The output name defaults to the configured export name
(mindmap.json).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if output == "" {
				output = cfg.ExportName
			}

			sess, err := c.openSession(args[0])
			if err != nil {
				return err
			}
			doc := sess.Export()
			if err := pkgio.ExportFile(doc, output); err != nil {
				return err
			}

			printSuccess("Exported %s", fmtCount(doc.Count(), "node"))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default from config, mindmap.json)")

	return cmd
}
