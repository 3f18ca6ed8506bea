package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramkit/ramkit/internal/cli/flags"
	"github.com/ramkit/ramkit/internal/layout"
	"github.com/ramkit/ramkit/internal/util"
)

const flagNameSet = "set"

type patchConfig struct {
	Base       *baseConfiguration
	LayoutFile string
	Values     flags.KeyValueFlags
}

func newPatchCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &patchConfig{Base: baseConfig}
	var cmd = &cobra.Command{
		Use:   "patch FILE",
		Short: "Writes field values into an image in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return patch(cmd, config, args[0])
		},
	}
	cmd.Flags().StringVar(&config.LayoutFile, flagNameLayout, "", "layout file (YAML)")
	cmd.Flags().Var(&config.Values, flagNameSet, "field=value to write, can be repeated")
	_ = cmd.MarkFlagRequired(flagNameLayout)
	_ = cmd.MarkFlagRequired(flagNameSet)
	return cmd
}

// patch applies all values to a copy of the image and only then replaces the file.
func patch(cmd *cobra.Command, config *patchConfig, file string) error {
	l, err := layout.LoadFile(config.LayoutFile)
	if err != nil {
		return err
	}
	mem, err := loadRegion(file)
	if err != nil {
		return err
	}
	for _, kv := range config.Values.Pairs() {
		if err := l.Set(mem, kv[0], kv[1]); err != nil {
			return err
		}
		log.Debug("Set %s = %s", kv[0], kv[1])
	}
	if err := util.WriteFileAtomic(file, mem.AllBytes()); err != nil {
		return fmt.Errorf("failed to save image, %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "patched %d field(s) in %s\n", len(config.Values), file)
	return err
}
