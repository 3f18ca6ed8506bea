package keyvaluedb

import (
	"reflect"

	"github.com/ramkit/ramkit/internal/errors"
)

var (
	errInvalidKey = errors.Wrap(errors.ErrInvalidArgument, "invalid key")
	errValueIsNil = errors.Wrap(errors.ErrNullArgument, "value is nil")
)

func CheckKey(key []byte) error {
	if len(key) == 0 {
		return errInvalidKey
	}
	return nil
}

func CheckValue(val any) error {
	if val == nil {
		return errValueIsNil
	}
	if reflect.ValueOf(val).Kind() == reflect.Ptr && reflect.ValueOf(val).IsNil() {
		return errValueIsNil
	}
	return nil
}

func CheckKeyAndValue(key []byte, val any) error {
	if err := CheckKey(key); err != nil {
		return err
	}
	if err := CheckValue(val); err != nil {
		return err
	}
	return nil
}
