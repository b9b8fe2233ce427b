package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/NC1107/CxBlueprint/internal/core/flow"
	"github.com/NC1107/CxBlueprint/pkg/wire"
)

// newInspectCmd prints a human-readable summary of a flow document: entry
// point, every node with its type, and the outgoing transitions per node.
func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <flow-file>",
		Short: "Summarize the nodes and transitions of a flow document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			g, err := wire.Decompile(doc)
			if err != nil {
				return fmt.Errorf("inspect %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Flow: %s\n", g.Name)
			if g.Description != "" {
				fmt.Fprintf(out, "Description: %s\n", g.Description)
			}
			fmt.Fprintf(out, "Entry: %s\n", g.EntryPoint())
			fmt.Fprintf(out, "Nodes: %d, Edges: %d\n\n", g.Len(), len(g.Edges()))

			for _, n := range g.Nodes() {
				marker := " "
				if n.ID == g.EntryPoint() {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s (%s)\n", marker, n.ID, n.Type)
				for _, e := range g.EdgesFrom(n.ID) {
					fmt.Fprintf(out, "    %s -> %s\n", edgeLabel(e), e.To)
				}
				if keys := paramKeys(n); len(keys) > 0 {
					fmt.Fprintf(out, "    parameters: %v\n", keys)
				}
			}
			return nil
		},
	}
}

func edgeLabel(e *flow.Edge) string {
	switch e.Kind {
	case flow.EdgeCondition:
		return fmt.Sprintf("when %q", e.Match)
	case flow.EdgeDefault:
		return "otherwise"
	case flow.EdgeError:
		return fmt.Sprintf("on error %q", e.ErrorCode)
	default:
		return "then"
	}
}

func paramKeys(n *flow.Node) []string {
	keys := make([]string, 0, len(n.Parameters))
	for k := range n.Parameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
