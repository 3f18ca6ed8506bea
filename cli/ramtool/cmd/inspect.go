package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ramkit/ramkit/internal/layout"
	"github.com/ramkit/ramkit/internal/util"
)

const (
	flagNameLayout = "layout"
	flagNameFormat = "format"
)

type inspectConfig struct {
	Base       *baseConfiguration
	LayoutFile string
	Format     string
}

func newInspectCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &inspectConfig{Base: baseConfig}
	var cmd = &cobra.Command{
		Use:   "inspect FILE...",
		Short: "Decodes records from images using a YAML layout",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspect(cmd, config, args)
		},
	}
	cmd.Flags().StringVar(&config.LayoutFile, flagNameLayout, "", "layout file (YAML)")
	cmd.Flags().StringVar(&config.Format, flagNameFormat, string(layout.FormatText), "output format, one of: text, json, yaml, cbor")
	_ = cmd.MarkFlagRequired(flagNameLayout)
	return cmd
}

func inspect(cmd *cobra.Command, config *inspectConfig, files []string) error {
	l, err := layout.LoadFile(config.LayoutFile)
	if err != nil {
		return err
	}
	util.WriteDebugJsonLog(log, "Loaded layout", l)

	outputs := make([][]byte, len(files))
	g, ctx := errgroup.WithContext(cmd.Context())
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mem, err := loadRegion(file)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			rec, err := l.Decode(mem)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			rec.Source = file
			outputs[i], err = rec.Encode(layout.Format(config.Format))
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			log.Debug("Decoded %s, %d fields", file, len(rec.Fields))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, out := range outputs {
		if _, err := cmd.OutOrStdout().Write(out); err != nil {
			return err
		}
	}
	return nil
}
