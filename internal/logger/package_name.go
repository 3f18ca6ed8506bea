package logger

import (
	"runtime"
	"strings"
)

// PackageNameResolver names loggers after the package that creates them.
type PackageNameResolver struct {
	BasePackage string
	// Depth of the caller on the stack, 2 (the caller of the logging code) when zero.
	Depth int
}

// PackageName returns the caller's package path relative to BasePackage,
// e.g. "pkg/memory" for github.com/ramkit/ramkit/pkg/memory.
func (r *PackageNameResolver) PackageName() string {
	depth := r.Depth
	if depth == 0 {
		depth = 2
	}
	pc, _, _, ok := runtime.Caller(depth)
	if !ok {
		return ""
	}
	return relativePackage(runtime.FuncForPC(pc).Name(), r.BasePackage)
}

// relativePackage strips the function part of a qualified function name
// ("a/b/pkg.(*T).Method") and the base package prefix of what remains.
func relativePackage(funcName, base string) string {
	pkg := funcName
	lastSlash := strings.LastIndexByte(pkg, '/')
	if dot := strings.IndexByte(pkg[lastSlash+1:], '.'); dot >= 0 {
		pkg = pkg[:lastSlash+1+dot]
	}
	if base != "" {
		if _, rest, found := strings.Cut(pkg, base); found {
			pkg = rest
		}
	}
	return strings.Trim(pkg, "/")
}
