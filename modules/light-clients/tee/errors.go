package tee

import (
	errorsmod "cosmossdk.io/errors"
)

const codespace = "tee"

var (
	// ErrUnexpectedClientType is returned for an Any carrying a type URL
	// this client does not serve.
	ErrUnexpectedClientType = errorsmod.Register(codespace, 2, "unexpected client type")

	// ErrUnexpectedHeaderType is returned for an Any header with an
	// unexpected type URL.
	ErrUnexpectedHeaderType = errorsmod.Register(codespace, 3, "unexpected header type")

	// ErrInvalidClientState is returned for a malformed client state.
	ErrInvalidClientState = errorsmod.Register(codespace, 4, "invalid client state")

	// ErrInvalidConsensusState is returned for a malformed consensus state.
	ErrInvalidConsensusState = errorsmod.Register(codespace, 5, "invalid consensus state")

	// ErrInvalidHeader is returned when a header fails validation against
	// the stored trusted state.
	ErrInvalidHeader = errorsmod.Register(codespace, 6, "invalid header")

	// ErrUnexpectedStateID is returned when the header's previous state ID
	// does not match the stored consensus state.
	ErrUnexpectedStateID = errorsmod.Register(codespace, 7, "unexpected previous state ID")

	// ErrUnregisteredEnclaveKey is returned when the commitment signer is
	// not an enclave key registered in the client state.
	ErrUnregisteredEnclaveKey = errorsmod.Register(codespace, 8, "unregistered enclave key")

	// ErrUnimplemented is returned by the state-verification entry points
	// pending their per-proof-type algorithms.
	ErrUnimplemented = errorsmod.Register(codespace, 9, "unimplemented")
)
