package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NC1107/CxBlueprint/pkg/blocks"
	"github.com/NC1107/CxBlueprint/pkg/wire"
)

// newValidateCmd validates a flow document: it must parse, decompile to a
// graph, and recompile to an equivalent document. Orphan nodes and unknown
// block types are reported as warnings.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <flow-file>",
		Short: "Check a flow document for structural problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			path := args[0]

			doc, err := readDocument(path)
			if err != nil {
				return err
			}
			g, err := wire.Decompile(doc)
			if err != nil {
				return fmt.Errorf("validate %s: %w", path, err)
			}
			logger.Debug("decompiled", "nodes", g.Len(), "edges", len(g.Edges()))

			for _, n := range g.Nodes() {
				if !blocks.Known(n.Type) {
					logger.Warn("unknown block type", "node", n.ID, "type", n.Type)
				}
			}

			recompiled, diags, err := wire.Compile(g)
			if err != nil {
				return fmt.Errorf("validate %s: %w", path, err)
			}
			for _, d := range diags {
				logger.Warn(d.Detail, "code", d.Code, "node", d.NodeID)
			}

			// A clean document should survive a decompile/recompile
			// round trip byte for byte once normalized.
			orig, err := doc.Encode()
			if err != nil {
				return err
			}
			norm, err := recompiled.Encode()
			if err != nil {
				return err
			}
			if !bytes.Equal(orig, norm) {
				logger.Info("document is not in canonical form; run fmt to normalize", "file", path)
			}

			logger.Info("flow is valid", "file", path, "nodes", g.Len(), "edges", len(g.Edges()), "warnings", len(diags))
			return nil
		},
	}
}
