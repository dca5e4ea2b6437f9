package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/encoding"
)

func newConvertCmd(g *globals) *cobra.Command {
	var compact bool
	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert plain text to a raw document",
		Long: `convert reads plain text, one block per line, and writes the raw
document. With no file or "-" it reads standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			c := content.FromText(string(text))

			var doc []byte
			if compact {
				doc, err = encoding.Marshal(c)
				doc = append(doc, '\n')
			} else {
				doc, err = encoding.MarshalIndent(c)
			}
			if err != nil {
				return err
			}
			g.logger.Debug("converted", "blocks", c.Len())
			_, err = cmd.OutOrStdout().Write(doc)
			return err
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "write the document on a single line")
	return cmd
}

// readInput reads the named file, or standard input for none or "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", args[0], err)
	}
	return data, nil
}
