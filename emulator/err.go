package emulator

import (
	"errors"

	"github.com/ezrec/regmach/translate"
)

var f = translate.From

var (
	ErrTickLimit           = errors.New(f("tick limit reached"))
	ErrCheckpointUnreached = errors.New(f("halted without a checkpoint result"))
	ErrDetectMode          = errors.New(f("detect mode unknown"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Ip     int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d ip %d %v", err.LineNo, err.Ip, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
