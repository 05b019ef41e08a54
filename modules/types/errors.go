package types

import (
	errorsmod "cosmossdk.io/errors"
)

const codespace = "types"

var (
	// ErrTimestampOverflow is returned when a timestamp operation exceeds the
	// representable range. It is deliberately distinct from any policy error
	// so callers can tell "too large to reason about" from "reasoned about
	// and rejected".
	ErrTimestampOverflow = errorsmod.Register(codespace, 2, "timestamp out of representable range")

	// ErrInvalidDuration is returned for durations that cannot be used in
	// timestamp arithmetic or wire encoding.
	ErrInvalidDuration = errorsmod.Register(codespace, 3, "invalid duration")
)
