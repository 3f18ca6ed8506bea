package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramkit/ramkit/internal/layout"
)

const flagNameCount = "count"

type sumConfig struct {
	Base   *baseConfiguration
	Offset int64
	Count  int
}

func newSumCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &sumConfig{Base: baseConfig}
	var cmd = &cobra.Command{
		Use:   "sum FILE",
		Short: "Sums consecutive unsigned 64-bit words without overflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mem, err := loadRegion(args[0])
			if err != nil {
				return err
			}
			sum, err := layout.SumUint64(mem, config.Offset, config.Count)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", sum.ToBig().String(), sum.Hex())
			return err
		},
	}
	cmd.Flags().Int64Var(&config.Offset, flagNameOffset, 0, "index of the first word")
	cmd.Flags().IntVar(&config.Count, flagNameCount, 1, "number of words")
	return cmd
}
