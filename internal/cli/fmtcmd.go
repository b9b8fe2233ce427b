package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NC1107/CxBlueprint/pkg/wire"
)

// newFmtCmd rewrites a flow document in canonical form: decompile, recompile
// (which recomputes the layout and canonicalizes key order), and write the
// result. The output codec and compression are selectable, so fmt doubles as
// the converter between engine-facing JSON and compact archives.
func newFmtCmd() *cobra.Command {
	var (
		output   string
		codec    string
		compress string
	)
	cmd := &cobra.Command{
		Use:   "fmt <flow-file>",
		Short: "Rewrite a flow document in canonical form",
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
				return fmt.Errorf("fmt %s: %w", path, err)
			}
			normalized, diags, err := wire.Compile(g)
			if err != nil {
				return fmt.Errorf("fmt %s: %w", path, err)
			}
			for _, d := range diags {
				logger.Warn(d.Detail, "code", d.Code, "node", d.NodeID)
			}

			s, err := serializerFor(codec, compress)
			if err != nil {
				return err
			}
			dest := output
			if dest == "" {
				dest = path
			}
			if err := writeDocument(dest, normalized, s); err != nil {
				return err
			}
			logger.Info("wrote canonical document", "file", dest, "codec", codec, "compression", compress)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this path instead of rewriting in place")
	cmd.Flags().StringVar(&codec, "codec", "json", "output codec: json or msgpack")
	cmd.Flags().StringVar(&compress, "compress", "none", "output compression: none, gzip or zstd")
	return cmd
}
