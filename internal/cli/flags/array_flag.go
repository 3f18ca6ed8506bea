package flags

import (
	"strings"

	"github.com/ramkit/ramkit/internal/errors"
)

// KeyValueFlags collects repeated key=value flag values in the order they were given.
type KeyValueFlags []string

func (f *KeyValueFlags) String() string {
	return strings.Join(*f, ", ")
}

func (f *KeyValueFlags) Set(value string) error {
	if k, _, ok := strings.Cut(value, "="); !ok || k == "" {
		return errors.Wrapf(errors.ErrInvalidArgument, "expected key=value, got %q", value)
	}
	*f = append(*f, value)
	return nil
}

func (f *KeyValueFlags) Type() string {
	return "key=value"
}

// Pairs splits every value at the first '='.
func (f *KeyValueFlags) Pairs() [][2]string {
	result := make([][2]string, 0, len(*f))
	for _, v := range *f {
		k, val, _ := strings.Cut(v, "=")
		result = append(result, [2]string{k, val})
	}
	return result
}
