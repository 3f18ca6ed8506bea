// Package wasmmem supplies memory regions backed by the linear memory of a wazero module.
//
// A region aliases the module memory: writes through the region are visible to the guest
// and the other way around. The window stays valid until the guest memory grows.
package wasmmem

import (
	"context"
	"fmt"

	"github.com/ramkit/ramkit/internal/errors"
	"github.com/ramkit/ramkit/internal/logger"
	"github.com/ramkit/ramkit/pkg/memory"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

const DefaultMemoryExport = "memory"

var log = logger.CreateForPackage()

type Instance struct {
	runtime wazero.Runtime
	mod     api.Module
	mem     api.Memory
}

// Region wraps length bytes of mem starting at offset.
func Region(mem api.Memory, offset, length uint32) (*memory.BufferBacked, error) {
	if mem == nil {
		return nil, errors.Wrap(memory.ErrNullArgument, "wasm memory is nil")
	}
	// uint64 so that offset+length can not wrap around
	if uint64(offset)+uint64(length) > uint64(mem.Size()) {
		return nil, errors.Wrapf(memory.ErrOutOfRange, "window [%d, %d) outside wasm memory of %d bytes", offset, uint64(offset)+uint64(length), mem.Size())
	}
	buf, ok := mem.Read(offset, length)
	if !ok {
		return nil, errors.Wrapf(memory.ErrOutOfRange, "window [%d, %d) not readable", offset, uint64(offset)+uint64(length))
	}
	if buf == nil {
		buf = []byte{}
	}
	return memory.New(buf)
}

// Instantiate compiles and instantiates wasmSrc and looks up the memory exported as exportName.
func Instantiate(ctx context.Context, wasmSrc []byte, exportName string, cfg wazero.RuntimeConfig) (*Instance, error) {
	if len(wasmSrc) < 1 {
		return nil, errors.Wrap(memory.ErrInvalidArgument, "wasm src is missing")
	}
	if cfg == nil {
		cfg = wazero.NewRuntimeConfig()
	}
	rt := wazero.NewRuntimeWithConfig(ctx, cfg)
	m, err := rt.Instantiate(ctx, wasmSrc)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to instantiate wasm module, %w", err)
	}
	mem := m.ExportedMemory(exportName)
	if mem == nil {
		_ = rt.Close(ctx)
		return nil, errors.Wrapf(memory.ErrInvalidArgument, "module does not export memory %q", exportName)
	}
	log.Debug("Instantiated wasm module with %d bytes of memory", mem.Size())
	return &Instance{runtime: rt, mod: m, mem: mem}, nil
}

func (i *Instance) Memory() api.Memory {
	return i.mem
}

// Region returns a region over the instance memory, see Region.
func (i *Instance) Region(offset, length uint32) (*memory.BufferBacked, error) {
	return Region(i.mem, offset, length)
}

func (i *Instance) Close(ctx context.Context) error {
	return i.runtime.Close(ctx)
}
