package commitments

import (
	"encoding/binary"
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/teebridge/teelc/modules/types"
)

const (
	// Commitment wire discriminants. Zero is deliberately unused so an
	// all-zero header can never decode to a valid commitment.
	CommitmentTypeUpdateClient uint16 = 1
	CommitmentTypeState        uint16 = 2

	// CommitmentHeaderSize is the size of the fixed commitment header word.
	CommitmentHeaderSize = 32
)

// CommitmentPrefix is the key prefix of the counterparty chain's commitment
// store a state commitment was verified against.
type CommitmentPrefix = []byte

// Commitment is an attestable fact about a light-client operation, destined
// to be proven on-chain. Like CommitmentContext, the set of commitment types
// is closed and each variant maps to exactly one wire discriminant.
type Commitment interface {
	// CommitmentType returns the wire discriminant of the commitment.
	CommitmentType() uint16

	// ABIEncode serializes the commitment, including its header word.
	ABIEncode() ([]byte, error)
}

var (
	_ Commitment = (*UpdateClientCommitment)(nil)
	_ Commitment = (*StateCommitment)(nil)
)

// UpdateClientCommitment attests to a light-client state transition produced
// by verifying a header.
//
// PrevStateID and PrevHeight are nil only for a client's first (creation)
// commitment.
type UpdateClientCommitment struct {
	PrevStateID *StateID
	NewStateID  StateID
	NewState    *types.Any
	PrevHeight  *types.Height
	NewHeight   types.Height
	Timestamp   types.Time
	Context     CommitmentContext
}

// CommitmentType implements Commitment.
func (*UpdateClientCommitment) CommitmentType() uint16 {
	return CommitmentTypeUpdateClient
}

// abiUpdateClientCommitment is the ABI-compatible body layout. Absent
// optional fields are encoded as the all-zero word / empty bytes; neither is
// a legal present value, so the encoding round-trips losslessly.
type abiUpdateClientCommitment struct {
	PrevStateId [32]byte
	NewStateId  [32]byte
	NewState    []byte
	PrevHeight  [32]byte
	NewHeight   [32]byte
	Timestamp   *big.Int
	Context     []byte
}

// ABIEncode implements Commitment.
func (c *UpdateClientCommitment) ABIEncode() ([]byte, error) {
	body := abiUpdateClientCommitment{
		NewStateId: c.NewStateID,
		NewHeight:  HeightWord(c.NewHeight),
		Timestamp:  new(big.Int).SetUint64(c.Timestamp.UnixTimestampNanos()),
	}
	if c.PrevStateID != nil {
		body.PrevStateId = *c.PrevStateID
	}
	if c.PrevHeight != nil {
		body.PrevHeight = HeightWord(*c.PrevHeight)
	}
	if c.NewState != nil {
		bz, err := types.MarshalAny(*c.NewState)
		if err != nil {
			return nil, errorsmod.Wrapf(ErrInvalidCommitment, "failed to marshal new state: %v", err)
		}
		body.NewState = bz
	}

	context := c.Context
	if context == nil {
		context = EmptyContext{}
	}
	contextBytes, err := context.ABIEncode()
	if err != nil {
		return nil, err
	}
	body.Context = contextBytes

	bz, err := updateClientCommitmentArgs.Pack(body)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidCommitment, "failed to pack update client commitment: %v", err)
	}
	return encodeCommitmentEnvelope(CommitmentTypeUpdateClient, bz)
}

func abiDecodeUpdateClientCommitment(bz []byte) (*UpdateClientCommitment, error) {
	values, err := updateClientCommitmentArgs.Unpack(bz)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidCommitment, "failed to unpack update client commitment: %v", err)
	}
	if len(values) != 1 {
		return nil, errorsmod.Wrapf(ErrInvalidCommitment, "invalid update client commitment arity: expected=1 actual=%d", len(values))
	}
	body := abi.ConvertType(values[0], new(abiUpdateClientCommitment)).(*abiUpdateClientCommitment)

	c := &UpdateClientCommitment{
		NewStateID: body.NewStateId,
	}

	if prev := StateID(body.PrevStateId); !prev.IsZero() {
		c.PrevStateID = &prev
	}
	if len(body.NewState) != 0 {
		anyState, err := types.UnmarshalAny(body.NewState)
		if err != nil {
			return nil, errorsmod.Wrapf(ErrInvalidCommitment, "failed to unmarshal new state: %v", err)
		}
		c.NewState = &anyState
	}

	prevHeight, err := ParseHeightWord(body.PrevHeight)
	if err != nil {
		return nil, err
	}
	c.PrevHeight = prevHeight

	newHeight, err := ParseHeightWord(body.NewHeight)
	if err != nil {
		return nil, err
	}
	if newHeight != nil {
		c.NewHeight = *newHeight
	}

	if !body.Timestamp.IsUint64() || body.Timestamp.Uint64() > types.MaxUnixTimestampNanos {
		return nil, errorsmod.Wrapf(types.ErrTimestampOverflow, "commitment timestamp %s exceeds representable range", body.Timestamp)
	}
	timestamp, err := types.FromUnixTimestampNanos(body.Timestamp.Uint64())
	if err != nil {
		return nil, err
	}
	c.Timestamp = timestamp

	context, err := ABIDecodeCommitmentContext(body.Context)
	if err != nil {
		return nil, err
	}
	c.Context = context

	return c, nil
}

// StateCommitment attests to the result of a membership or non-membership
// verification against the counterparty chain's committed state.
//
// Value is nil for non-membership: the all-zero word marks an absent value
// on the wire and is never a legal membership digest.
type StateCommitment struct {
	Prefix  CommitmentPrefix
	Path    string
	Value   *[32]byte
	Height  types.Height
	StateID StateID
}

// CommitmentType implements Commitment.
func (*StateCommitment) CommitmentType() uint16 {
	return CommitmentTypeState
}

type abiStateCommitment struct {
	Prefix  []byte
	Path    []byte
	Value   [32]byte
	Height  [32]byte
	StateId [32]byte
}

// ABIEncode implements Commitment.
func (c *StateCommitment) ABIEncode() ([]byte, error) {
	body := abiStateCommitment{
		Prefix:  c.Prefix,
		Path:    []byte(c.Path),
		Height:  HeightWord(c.Height),
		StateId: c.StateID,
	}
	if c.Value != nil {
		body.Value = *c.Value
	}

	bz, err := stateCommitmentArgs.Pack(body)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidCommitment, "failed to pack state commitment: %v", err)
	}
	return encodeCommitmentEnvelope(CommitmentTypeState, bz)
}

func abiDecodeStateCommitment(bz []byte) (*StateCommitment, error) {
	values, err := stateCommitmentArgs.Unpack(bz)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidCommitment, "failed to unpack state commitment: %v", err)
	}
	if len(values) != 1 {
		return nil, errorsmod.Wrapf(ErrInvalidCommitment, "invalid state commitment arity: expected=1 actual=%d", len(values))
	}
	body := abi.ConvertType(values[0], new(abiStateCommitment)).(*abiStateCommitment)

	c := &StateCommitment{
		Prefix:  body.Prefix,
		Path:    string(body.Path),
		StateID: body.StateId,
	}

	var zero [32]byte
	if body.Value != zero {
		value := body.Value
		c.Value = &value
	}

	height, err := ParseHeightWord(body.Height)
	if err != nil {
		return nil, err
	}
	if height != nil {
		c.Height = *height
	}

	return c, nil
}

// abiCommitment is the ABI-compatible envelope shared by all commitment
// types, mirroring the context envelope: a fixed header word (bytes 0-1 hold
// the big-endian type discriminant, bytes 2-31 are reserved) followed by the
// type-specific body.
type abiCommitment struct {
	Header          [32]byte
	CommitmentBytes []byte
}

func encodeCommitmentEnvelope(commitmentType uint16, body []byte) ([]byte, error) {
	var header [CommitmentHeaderSize]byte
	binary.BigEndian.PutUint16(header[0:2], commitmentType)

	bz, err := commitmentArgs.Pack(abiCommitment{
		Header:          header,
		CommitmentBytes: body,
	})
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidCommitment, "failed to pack commitment: %v", err)
	}
	return bz, nil
}

// ABIDecodeCommitment parses an encoded commitment, failing closed on
// unknown discriminants.
func ABIDecodeCommitment(bz []byte) (Commitment, error) {
	values, err := commitmentArgs.Unpack(bz)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidCommitment, "failed to unpack commitment: %v", err)
	}
	if len(values) != 1 {
		return nil, errorsmod.Wrapf(ErrInvalidCommitment, "invalid commitment arity: expected=1 actual=%d", len(values))
	}
	env := abi.ConvertType(values[0], new(abiCommitment)).(*abiCommitment)

	commitmentType := binary.BigEndian.Uint16(env.Header[0:2])
	switch commitmentType {
	case CommitmentTypeUpdateClient:
		return abiDecodeUpdateClientCommitment(env.CommitmentBytes)
	case CommitmentTypeState:
		return abiDecodeStateCommitment(env.CommitmentBytes)
	default:
		return nil, errorsmod.Wrapf(ErrUnknownCommitmentType, "unknown commitment type: %d", commitmentType)
	}
}
