package builtin

import (
	"fmt"
	"math/big"

	"github.com/vybium/modbuiltin/internal/modbuiltin/memory"
)

// ErrorCode enumerates the flat error taxonomy of the mod-builtin
// runner. Each kind carries whatever structured context it needs (an
// address, a word, a bit length, ...), because the VM surfaces these
// fields directly in diagnostics rather than just a message.
type ErrorCode int

const (
	ErrUnknown ErrorCode = iota

	// Engine-level (fill_memory).
	ErrFillMemoryNoBuiltinSet
	ErrModBuiltinsMismatchedInstanceDef
	ErrFillMemoryMaxExceeded
	ErrFillMemoryCouldNotFillTable
	ErrSafeDivFail

	// Input-reader level.
	ErrModBuiltinNLessThanOne
	ErrModBuiltinMissingValue

	// Codec level.
	ErrWordExceedsModBuiltinWordBitLen
	ErrWriteNWordsValueNotZero

	// Security checker.
	ErrModBuiltinSecurityCheck

	// Underlying collaborators, wrapped rather than reinvented.
	ErrMemory
	ErrMath
)

// BuiltinError is the single error type every mod-builtin operation
// returns, carrying a Code/Message/Cause shape so callers can
// type-switch on Code rather than matching error strings.
type BuiltinError struct {
	Code    ErrorCode
	Name    string // builtin name ("add_mod_builtin" / "mul_mod_builtin")
	Message string
	Cause   error

	// Optional structured context, populated depending on Code.
	Addr    *memory.Relocatable
	BitLen  int
	Word    *big.Int
	Max     int
	AddIdx  int
	MulIdx  int
}

func (e *BuiltinError) Error() string {
	msg := e.Message
	if e.Addr != nil {
		msg = fmt.Sprintf("%s (address %s)", msg, *e.Addr)
	}
	if e.Name != "" {
		msg = fmt.Sprintf("%s: %s", e.Name, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("mod-builtin error [%d]: %s (caused by: %v)", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("mod-builtin error [%d]: %s", e.Code, msg)
}

func (e *BuiltinError) Unwrap() error {
	return e.Cause
}

func (e *BuiltinError) Is(target error) bool {
	t, ok := target.(*BuiltinError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func errFillMemoryNoBuiltinSet() error {
	return &BuiltinError{Code: ErrFillMemoryNoBuiltinSet, Message: "fill_memory called with neither add_mod nor mul_mod set"}
}

func errMismatchedInstanceDef() error {
	return &BuiltinError{Code: ErrModBuiltinsMismatchedInstanceDef, Message: "add_mod and mul_mod instance definitions have different word_bit_len"}
}

func errFillMemoryMaxExceeded(name string, max int) error {
	return &BuiltinError{Code: ErrFillMemoryMaxExceeded, Name: name, Max: max, Message: fmt.Sprintf("n exceeds the maximum of %d operations per fill_memory call", max)}
}

func errCouldNotFillTable(addIdx, mulIdx int) error {
	return &BuiltinError{Code: ErrFillMemoryCouldNotFillTable, AddIdx: addIdx, MulIdx: mulIdx, Message: fmt.Sprintf("could not fill the values table: stuck at add_mod_index=%d, mul_mod_index=%d", addIdx, mulIdx)}
}

func errSafeDivFail(n, batchSize int) error {
	return &BuiltinError{Code: ErrSafeDivFail, Message: fmt.Sprintf("n=%d is not a multiple of batch_size=%d", n, batchSize)}
}

func errNLessThanOne(name string, n int) error {
	return &BuiltinError{Code: ErrModBuiltinNLessThanOne, Name: name, Message: fmt.Sprintf("n=%d, expected n >= 1", n)}
}

func errMissingValue(name string, addr memory.Relocatable) error {
	a := addr
	return &BuiltinError{Code: ErrModBuiltinMissingValue, Name: name, Addr: &a, Message: "missing value"}
}

func errWordExceedsBitLen(name string, addr memory.Relocatable, bitLen int, word *big.Int) error {
	a := addr
	return &BuiltinError{Code: ErrWordExceedsModBuiltinWordBitLen, Name: name, Addr: &a, BitLen: bitLen, Word: new(big.Int).Set(word), Message: fmt.Sprintf("word %s exceeds word_bit_len %d", word, bitLen)}
}

func errWriteNotZero(name string) error {
	return &BuiltinError{Code: ErrWriteNWordsValueNotZero, Name: name, Message: "value being written does not fit in N_WORDS words"}
}

func errSecurityCheck(name, message string) error {
	return &BuiltinError{Code: ErrModBuiltinSecurityCheck, Name: name, Message: message}
}

func errMemory(cause error) error {
	return &BuiltinError{Code: ErrMemory, Message: "memory access failed", Cause: cause}
}

func errMath(cause error) error {
	return &BuiltinError{Code: ErrMath, Message: "arithmetic failed", Cause: cause}
}
