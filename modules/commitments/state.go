package commitments

import (
	"bytes"

	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/teebridge/teelc/modules/types"
)

// StateIDSize is the size of a StateID in bytes (a protocol constant).
const StateIDSize = 32

// StateID is a collision-resistant content hash identifying a specific
// client/consensus state pair. It is purely derived data: both the enclave
// side and the on-chain verifier compute it independently and compare,
// without transmitting the full state.
type StateID [StateIDSize]byte

// Bytes returns the state ID as a byte slice.
func (id StateID) Bytes() []byte {
	return id[:]
}

// IsZero reports whether the state ID is all zero. The zero ID is reserved
// to mark an absent state ID on the wire.
func (id StateID) IsZero() bool {
	return bytes.Equal(id[:], make([]byte, StateIDSize))
}

func (id StateID) String() string {
	return hexutil.Encode(id[:])
}

// GenStateIDFromAny derives the state ID for an encoded client/consensus
// state pair.
func GenStateIDFromAny(anyClientState, anyConsensusState types.Any) (StateID, error) {
	clientStateBytes, err := types.MarshalAny(anyClientState)
	if err != nil {
		return StateID{}, errorsmod.Wrapf(ErrInvalidCommitment, "failed to marshal client state: %v", err)
	}
	consensusStateBytes, err := types.MarshalAny(anyConsensusState)
	if err != nil {
		return StateID{}, errorsmod.Wrapf(ErrInvalidCommitment, "failed to marshal consensus state: %v", err)
	}
	return GenStateIDFromBytes(clientStateBytes, consensusStateBytes)
}

// GenStateIDFromBytes derives the state ID as the Keccak-256 digest of the
// ABI-packed (bytes, bytes) state pair. Deterministic and pure: identical
// inputs always yield an identical identifier.
func GenStateIDFromBytes(clientStateBytes, consensusStateBytes []byte) (StateID, error) {
	bz, err := stateIDHashArgs.Pack(clientStateBytes, consensusStateBytes)
	if err != nil {
		return StateID{}, errorsmod.Wrapf(ErrInvalidCommitment, "failed to pack state pair: %v", err)
	}
	return StateID(crypto.Keccak256Hash(bz)), nil
}
