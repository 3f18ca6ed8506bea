package util

import (
	"encoding/json"

	"github.com/ramkit/ramkit/internal/logger"
)

func WriteDebugJsonLog(l logger.Logger, m string, arg interface{}) {
	if l.GetLevel() >= logger.DEBUG {
		j, _ := json.MarshalIndent(arg, "", "\t")
		l.Debug("%s\n%s", m, string(j))
	}
}
