// Package viper redirects viper's jwalterweatherman notepad into a ramkit logger. Import it
// for side effects before creating viper instances.
package viper

import (
	"strings"

	"github.com/ramkit/ramkit/internal/errors"
	"github.com/ramkit/ramkit/internal/errors/errstr"
	"github.com/ramkit/ramkit/internal/logger"

	jww "github.com/spf13/jwalterweatherman"
)

type (
	viperLogWriter struct {
		writeFunc func(format string, args ...interface{})
	}
)

func (w *viperLogWriter) Write(p []byte) (n int, err error) {
	if w == nil || w.writeFunc == nil {
		return 0, errors.Wrap(errors.ErrInvalidArgument, errstr.NilArgument)
	}
	w.writeFunc("%s", strings.TrimSpace(string(p)))
	return len(p), nil
}

func init() {
	log := logger.Create("github.com/spf13/viper")
	jww.SetLogThreshold(jww.LevelTrace)
	jww.SetStdoutThreshold(jww.LevelCritical)
	jww.SetFlags(0)
	jww.SetPrefix("github.com/spf13/viper")
	jww.SetLogOutput(&viperLogWriter{writeFunc: log.Debug})
}
