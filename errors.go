package terra

import (
	errorsmod "cosmossdk.io/errors"
)

// Codespace is the error codespace of the terra package.
const Codespace = "terra"

// Sentinel errors. Errors returned by this package wrap one of them,
// so they can be matched with [errors.Is].
var (
	ErrParse          = errorsmod.Register(Codespace, 2, "parse error")
	ErrOverflow       = errorsmod.Register(Codespace, 3, "overflow")
	ErrUnderflow      = errorsmod.Register(Codespace, 4, "underflow")
	ErrDivideByZero   = errorsmod.Register(Codespace, 5, "division by zero")
	ErrDenomMismatch  = errorsmod.Register(Codespace, 6, "denom mismatch")
	ErrInvalidAddress = errorsmod.Register(Codespace, 7, "invalid address")
	ErrInvalidPubKey  = errorsmod.Register(Codespace, 8, "invalid public key")
	ErrInvalidRate    = errorsmod.Register(Codespace, 9, "invalid exchange rate")
	ErrExponent       = errorsmod.Register(Codespace, 10, "exponent out of range")
)
