package modbuiltin

import (
	"github.com/vybium/modbuiltin/internal/modbuiltin/builtin"
)

// ErrorCode re-exports the mod-builtin engine's error taxonomy so
// callers outside this module never need to import internal/.
type ErrorCode = builtin.ErrorCode

const (
	ErrUnknown                          = builtin.ErrUnknown
	ErrFillMemoryNoBuiltinSet           = builtin.ErrFillMemoryNoBuiltinSet
	ErrModBuiltinsMismatchedInstanceDef = builtin.ErrModBuiltinsMismatchedInstanceDef
	ErrFillMemoryMaxExceeded            = builtin.ErrFillMemoryMaxExceeded
	ErrFillMemoryCouldNotFillTable      = builtin.ErrFillMemoryCouldNotFillTable
	ErrSafeDivFail                      = builtin.ErrSafeDivFail
	ErrModBuiltinNLessThanOne           = builtin.ErrModBuiltinNLessThanOne
	ErrModBuiltinMissingValue           = builtin.ErrModBuiltinMissingValue
	ErrWordExceedsModBuiltinWordBitLen  = builtin.ErrWordExceedsModBuiltinWordBitLen
	ErrWriteNWordsValueNotZero          = builtin.ErrWriteNWordsValueNotZero
	ErrModBuiltinSecurityCheck          = builtin.ErrModBuiltinSecurityCheck
	ErrMemory                           = builtin.ErrMemory
	ErrMath                             = builtin.ErrMath
)

// BuiltinError is the error type every operation in this package
// returns. Use errors.As to recover it and inspect Code.
type BuiltinError = builtin.BuiltinError
