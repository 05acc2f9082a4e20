package engine

import (
	"github.com/pkg/errors"

	"github.com/eternalApril/lunakv/internal/storage"
)

var (
	// ErrTypeMismatch is returned when an operation is applied to a key holding another type
	ErrTypeMismatch = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")
	// ErrInvalidArgument is returned for arguments the operation cannot accept
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownCommand is returned by Execute for names missing from the command table
	ErrUnknownCommand = errors.New("unknown command")
	// ErrWrongArity is returned by Execute when the argument count does not match the command
	ErrWrongArity = errors.New("wrong number of arguments")
)

func wrongType(key string, got, want storage.DataType) error {
	return errors.Wrapf(ErrTypeMismatch, "key %q holds %s, operation needs %s", key, got, want)
}

func invalidArgument(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}
