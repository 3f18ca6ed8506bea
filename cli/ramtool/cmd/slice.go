package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ramkit/ramkit/internal/util"
	"github.com/ramkit/ramkit/pkg/memory"
)

const (
	flagNameOffset = "offset"
	flagNameLength = "length"
	flagNameSink   = "sink"
	flagNameHex    = "hex"
)

type sliceConfig struct {
	Base   *baseConfiguration
	Offset int64
	Length int
	Sink   string
	Hex    bool
}

func newSliceCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &sliceConfig{Base: baseConfig}
	var cmd = &cobra.Command{
		Use:   "slice FILE",
		Short: "Copies a window of an image to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return slice(cmd, config, args[0])
		},
	}
	cmd.Flags().Int64Var(&config.Offset, flagNameOffset, 0, "index of the first byte")
	cmd.Flags().IntVar(&config.Length, flagNameLength, -1, "number of bytes, the rest of the image when negative")
	cmd.Flags().StringVar(&config.Sink, flagNameSink, memory.SinkStream.String(), "transfer through sink kind, one of: stream, channel, buffer")
	cmd.Flags().BoolVar(&config.Hex, flagNameHex, false, "write 0x prefixed hex instead of raw bytes")
	return cmd
}

func slice(cmd *cobra.Command, config *sliceConfig, file string) error {
	out := cmd.OutOrStdout()
	if !config.Hex && isTerminal(out) {
		return fmt.Errorf("refusing to write raw bytes to a terminal, use --%s or redirect the output", flagNameHex)
	}
	mem, err := loadRegion(file)
	if err != nil {
		return err
	}
	length := config.Length
	if length < 0 {
		length = int(util.Max(mem.Size()-config.Offset, 0))
	}

	var target io.Writer = out
	var hexBuf bytes.Buffer
	if config.Hex {
		target = &hexBuf
	}
	n, err := copyWindow(mem, config.Offset, length, config.Sink, target)
	if err != nil {
		return err
	}
	log.Debug("Copied %d bytes from %s through %s sink", n, file, config.Sink)
	if config.Hex {
		_, err = fmt.Fprintln(out, util.EncodeHex(hexBuf.Bytes()))
	}
	return err
}

// copyWindow moves the window into w through a sink of the requested kind.
func copyWindow(mem memory.ReadOnly, offset int64, length int, sink string, w io.Writer) (int64, error) {
	switch sink {
	case memory.SinkStream.String():
		return mem.CopyToSink(offset, length, w)
	case memory.SinkBuffer.String():
		buf := memory.NewBuffer(length)
		n, err := mem.CopyToSink(offset, length, buf)
		if err != nil {
			return n, err
		}
		_, err = w.Write(buf.Written())
		return n, err
	case memory.SinkChannel.String():
		ch := make(chan []byte, 1)
		n, err := mem.CopyToSink(offset, length, ch)
		if err != nil {
			return n, err
		}
		_, err = w.Write(<-ch)
		return n, err
	}
	return 0, fmt.Errorf("unknown sink %q, expected one of: stream, channel, buffer", sink)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
