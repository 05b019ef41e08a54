package commitments

import (
	errorsmod "cosmossdk.io/errors"
)

const codespace = "commitments"

var (
	// ErrOutOfTrustingPeriod is returned when the trusted state is older than
	// the trusting period at validation time. Recoverable only by presenting
	// a fresher trusted state.
	ErrOutOfTrustingPeriod = errorsmod.Register(codespace, 2, "out of trusting period")

	// ErrHeaderFromFuture is returned when the untrusted header claims a
	// timestamp further in the future than the clock drift bound allows.
	ErrHeaderFromFuture = errorsmod.Register(codespace, 3, "header is from the future")

	// ErrInvalidContextHeader is returned for a malformed commitment context
	// header word.
	ErrInvalidContextHeader = errorsmod.Register(codespace, 4, "invalid commitment context header")

	// ErrUnknownContextType is returned for a context discriminant outside
	// the known range. Decoders fail closed and never default to Empty.
	ErrUnknownContextType = errorsmod.Register(codespace, 5, "unknown commitment context type")

	// ErrInvalidContextBody is returned when the context body does not match
	// the declared context type.
	ErrInvalidContextBody = errorsmod.Register(codespace, 6, "invalid commitment context body")

	// ErrInvalidCommitment is returned for any shape mismatch while decoding
	// a commitment: wrong tuple arity, wrong fixed-width size, nonzero
	// reserved bytes.
	ErrInvalidCommitment = errorsmod.Register(codespace, 7, "invalid commitment")

	// ErrUnknownCommitmentType is returned for a commitment discriminant
	// outside the known range.
	ErrUnknownCommitmentType = errorsmod.Register(codespace, 8, "unknown commitment type")

	// ErrInvalidCommitmentProof is returned for a malformed commitment proof.
	ErrInvalidCommitmentProof = errorsmod.Register(codespace, 9, "invalid commitment proof")

	// ErrSigningFailed is returned when the enclave key cannot produce a
	// signature. No partially-formed proof is ever returned alongside it.
	ErrSigningFailed = errorsmod.Register(codespace, 10, "commitment signing failed")
)
