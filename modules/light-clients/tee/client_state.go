// Package tee implements the light client tracking a TEE-backed enclave
// light-client bridge: its client state pins the expected enclave identity
// and the enclave keys allowed to sign commitments, and its consensus states
// are the state IDs the enclave attested to.
package tee

import (
	"bytes"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/common"

	"github.com/teebridge/teelc/modules/commitments"
	"github.com/teebridge/teelc/modules/types"
)

const (
	// ClientType is the client type string of the TEE client.
	ClientType = "tee-client"

	// MrEnclaveSize is the size of the enclave measurement in bytes.
	MrEnclaveSize = 32
)

// ClientState is the on-chain view of the enclave bridge.
type ClientState struct {
	// LatestHeight only ever increases: updates take the max of the current
	// and incoming header height.
	LatestHeight types.Height

	// MrEnclave is the expected enclave measurement. Attestation-report
	// validation against it happens in the key-registration subsystem.
	MrEnclave []byte

	// KeyExpiration bounds how long a registered enclave key may be used
	// after its attestation.
	KeyExpiration time.Duration

	// Keys are the enclave signer addresses allowed to produce commitments.
	Keys []common.Address
}

// NewClientState creates a new ClientState instance.
func NewClientState(latestHeight types.Height, mrEnclave []byte, keyExpiration time.Duration, keys []common.Address) *ClientState {
	return &ClientState{
		LatestHeight:  latestHeight,
		MrEnclave:     mrEnclave,
		KeyExpiration: keyExpiration,
		Keys:          keys,
	}
}

// ClientType returns the TEE client type.
func (*ClientState) ClientType() string {
	return ClientType
}

// Validate performs a basic validation of the client state fields.
func (cs *ClientState) Validate() error {
	if len(cs.MrEnclave) != MrEnclaveSize {
		return errorsmod.Wrapf(ErrInvalidClientState, "invalid mr_enclave length: expected=%d actual=%d", MrEnclaveSize, len(cs.MrEnclave))
	}
	if len(cs.Keys) == 0 {
		return errorsmod.Wrap(ErrInvalidClientState, "enclave keys cannot be empty")
	}
	seen := make(map[common.Address]bool, len(cs.Keys))
	for _, key := range cs.Keys {
		if key == (common.Address{}) {
			return errorsmod.Wrap(ErrInvalidClientState, "enclave key cannot be the zero address")
		}
		if seen[key] {
			return errorsmod.Wrapf(ErrInvalidClientState, "duplicate enclave key %s", key)
		}
		seen[key] = true
	}
	return nil
}

// Contains reports whether the given signer is a registered enclave key.
func (cs *ClientState) Contains(signer common.Address) bool {
	for _, key := range cs.Keys {
		if key == signer {
			return true
		}
	}
	return false
}

// WithHeader returns the client state advanced by the given header. The
// latest height is monotonic: it becomes the max of the current and header
// heights.
func (cs ClientState) WithHeader(headerHeight types.Height) ClientState {
	if cs.LatestHeight.LT(headerHeight) {
		cs.LatestHeight = headerHeight
	}
	return cs
}

// ConsensusState records the state ID the enclave attested to at a height.
// It is derived once per verified header and never mutated after creation.
type ConsensusState struct {
	StateID   commitments.StateID
	Timestamp types.Time
}

// NewConsensusState creates a new ConsensusState instance.
func NewConsensusState(stateID commitments.StateID, timestamp types.Time) *ConsensusState {
	return &ConsensusState{
		StateID:   stateID,
		Timestamp: timestamp,
	}
}

// ClientType returns the TEE client type.
func (*ConsensusState) ClientType() string {
	return ClientType
}

// ValidateBasic performs a basic validation of the consensus state fields.
func (cs *ConsensusState) ValidateBasic() error {
	if bytes.Equal(cs.StateID.Bytes(), make([]byte, commitments.StateIDSize)) {
		return errorsmod.Wrap(ErrInvalidConsensusState, "state ID cannot be zero")
	}
	return nil
}
