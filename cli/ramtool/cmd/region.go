package cmd

import (
	"fmt"
	"os"

	"github.com/ramkit/ramkit/internal/logger"
	"github.com/ramkit/ramkit/pkg/memory"
)

var log = logger.CreateForPackage()

// loadRegion reads the whole file into a region backed by a private slice.
func loadRegion(path string) (*memory.BufferBacked, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image, %w", err)
	}
	return memory.New(data)
}
