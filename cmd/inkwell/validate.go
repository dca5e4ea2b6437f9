package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/inkwell/internal/engine/encoding"
)

func newValidateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a raw document",
		Long: `validate decodes a raw document and checks its structure. With no
file or "-" it reads standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			c, err := encoding.Unmarshal(data)
			if err != nil {
				return err
			}
			if err := c.Validate(); err != nil {
				return fmt.Errorf("invalid document: %w", err)
			}
			g.logger.Debug("validated", "blocks", c.Len(), "entities", c.Entities().Len())
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d blocks, %d entities\n", c.Len(), c.Entities().Len())
			return nil
		},
	}
}
