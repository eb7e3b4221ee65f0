package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/mindmap"
)

// validateCommand creates the validate command, which checks a document
// against the node schema without changing it.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a document is a well-formed mindmap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := c.openSession(args[0])
			if err != nil {
				printError("%s is not a valid mindmap", args[0])
				return err
			}

			tree := sess.Tree()
			printSuccess("%s is valid", args[0])
			printKeyValue("Root", tree.Root().Label)
			printKeyValue("Nodes", fmtCount(tree.Len(), "node"))
			printKeyValue("Depth", fmtCount(height(tree.Root()), "level"))
			printNextStep("Explore it", "mindmap browse "+args[0])
			return nil
		},
	}
}

// height returns the number of edges on the longest path from n to a leaf.
func height(n *mindmap.Node) int {
	h := 0
	for _, c := range n.Children() {
		h = max(h, height(c)+1)
	}
	return h
}
