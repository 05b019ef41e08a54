package handler

import (
	errorsmod "cosmossdk.io/errors"
)

const codespace = "handler"

var (
	// ErrLightClientNotFound is returned when no light client is registered
	// for the client type resolved from a client identifier.
	ErrLightClientNotFound = errorsmod.Register(codespace, 2, "light client not found")

	// ErrLightClientNotRegistered is returned when no light client is
	// registered for a client-state type URL.
	ErrLightClientNotRegistered = errorsmod.Register(codespace, 3, "light client not registered for type URL")
)
