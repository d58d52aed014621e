/*
File    : pl0run/astinterp/errors.go
*/
package astinterp

import "github.com/pl0toolkit/pl0run/vm"

// Sentinel errors shared with vm's runtime error kinds, so a caller can use
// the same errors.Is checks against either execution strategy.
var (
	ErrDivisionByZero    = vm.ErrDivisionByZero
	ErrUninitializedRead = vm.ErrUninitializedRead
	ErrKindMismatch      = vm.ErrKindMismatch
)
