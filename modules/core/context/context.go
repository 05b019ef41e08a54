// Package context provides the execution context handed to every handler
// call: the host's client store, the enclave signing key and the host
// clock. The context itself holds no locks; the host serializes conflicting
// updates per client ID.
package context

import (
	"encoding/binary"

	errorsmod "cosmossdk.io/errors"

	"github.com/teebridge/teelc/modules/commitments"
	"github.com/teebridge/teelc/modules/core/exported"
	"github.com/teebridge/teelc/modules/core/host"
	"github.com/teebridge/teelc/modules/core/store"
	"github.com/teebridge/teelc/modules/types"
)

const codespace = "context"

var (
	// ErrClientTypeNotFound is returned when no client type is registered
	// for a client identifier.
	ErrClientTypeNotFound = errorsmod.Register(codespace, 2, "client type not found")

	// ErrClientStateNotFound is returned when no client state is stored for
	// a client identifier.
	ErrClientStateNotFound = errorsmod.Register(codespace, 3, "client state not found")

	// ErrConsensusStateNotFound is returned when no consensus state is
	// stored for a client identifier at the requested height.
	ErrConsensusStateNotFound = errorsmod.Register(codespace, 4, "consensus state not found")

	// ErrCorruptedState is returned when stored state fails to decode.
	ErrCorruptedState = errorsmod.Register(codespace, 5, "corrupted state in store")
)

var _ exported.HostClientReader = (*Context)(nil)

// Context is the per-call execution context.
type Context struct {
	store      store.KVStore
	enclaveKey commitments.Signer
	now        func() types.Time
}

// NewContext creates a context over the given store and enclave key, using
// the canonical host clock.
func NewContext(kvs store.KVStore, enclaveKey commitments.Signer) *Context {
	return &Context{
		store:      kvs,
		enclaveKey: enclaveKey,
		now:        types.Now,
	}
}

// WithHostTimestamp overrides the host clock. Intended for tests.
func (c *Context) WithHostTimestamp(now func() types.Time) *Context {
	c.now = now
	return c
}

// GetEnclaveKey returns the enclave signing key. Signing does not mutate key
// material, so the key is safe to share across concurrent calls.
func (c *Context) GetEnclaveKey() commitments.Signer {
	return c.enclaveKey
}

// HostTimestamp implements exported.HostClientReader.
func (c *Context) HostTimestamp() types.Time {
	return c.now()
}

// ClientType implements exported.HostClientReader.
func (c *Context) ClientType(clientID string) (string, error) {
	bz := c.store.Get(host.FullClientTypeKey(clientID))
	if bz == nil {
		return "", errorsmod.Wrapf(ErrClientTypeNotFound, "client_id=%s", clientID)
	}
	return string(bz), nil
}

// ClientState implements exported.HostClientReader.
func (c *Context) ClientState(clientID string) (types.Any, error) {
	bz := c.store.Get(host.FullClientStateKey(clientID))
	if bz == nil {
		return types.Any{}, errorsmod.Wrapf(ErrClientStateNotFound, "client_id=%s", clientID)
	}
	anyState, err := types.UnmarshalAny(bz)
	if err != nil {
		return types.Any{}, errorsmod.Wrapf(ErrCorruptedState, "client_id=%s: %v", clientID, err)
	}
	return anyState, nil
}

// ConsensusState implements exported.HostClientReader.
func (c *Context) ConsensusState(clientID string, height types.Height) (types.Any, error) {
	bz := c.store.Get(host.FullConsensusStateKey(clientID, height))
	if bz == nil {
		return types.Any{}, errorsmod.Wrapf(ErrConsensusStateNotFound, "client_id=%s height=%s", clientID, height)
	}
	anyState, err := types.UnmarshalAny(bz)
	if err != nil {
		return types.Any{}, errorsmod.Wrapf(ErrCorruptedState, "client_id=%s height=%s: %v", clientID, height, err)
	}
	return anyState, nil
}

// SetClientType stores the client type for a client identifier.
func (c *Context) SetClientType(clientID, clientType string) {
	c.store.Set(host.FullClientTypeKey(clientID), []byte(clientType))
}

// SetClientState stores the encoded client state for a client identifier.
func (c *Context) SetClientState(clientID string, anyClientState types.Any) error {
	bz, err := types.MarshalAny(anyClientState)
	if err != nil {
		return errorsmod.Wrapf(ErrCorruptedState, "client_id=%s: %v", clientID, err)
	}
	c.store.Set(host.FullClientStateKey(clientID), bz)
	return nil
}

// SetConsensusState stores the encoded consensus state for a client
// identifier at the given height.
func (c *Context) SetConsensusState(clientID string, height types.Height, anyConsensusState types.Any) error {
	bz, err := types.MarshalAny(anyConsensusState)
	if err != nil {
		return errorsmod.Wrapf(ErrCorruptedState, "client_id=%s height=%s: %v", clientID, height, err)
	}
	c.store.Set(host.FullConsensusStateKey(clientID, height), bz)
	return nil
}

// NextClientSequence returns and advances the counter used to generate
// client identifiers.
func (c *Context) NextClientSequence() uint64 {
	var sequence uint64
	if bz := c.store.Get(host.NextClientSequenceKey()); bz != nil {
		sequence = binary.BigEndian.Uint64(bz)
	}

	next := make([]byte, 8)
	binary.BigEndian.PutUint64(next, sequence+1)
	c.store.Set(host.NextClientSequenceKey(), next)

	return sequence
}
