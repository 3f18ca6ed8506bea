package logger

import (
	"os"
	"runtime"
	"strconv"
	"strings"
)

// goroutineID parses the id from the first line of the stack trace,
// "goroutine 17 [running]:". Returns 0 when the line has another shape.
func goroutineID() uint64 {
	var buf [64]byte
	fields := strings.Fields(string(buf[:runtime.Stack(buf[:], false)]))
	if len(fields) < 2 || fields[0] != "goroutine" {
		return 0
	}
	id, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// shortCaller keeps the file name and at most two parent directories of a caller path.
func shortCaller(i interface{}) string {
	caller, ok := i.(string)
	if !ok || caller == "" {
		return ""
	}
	parts := strings.Split(caller, string(os.PathSeparator))
	if len(parts) > 3 {
		parts = parts[len(parts)-3:]
	}
	return strings.Join(parts, "/")
}
