package tee

import (
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/teebridge/teelc/modules/commitments"
	"github.com/teebridge/teelc/modules/types"
)

// Type URLs identifying the TEE client's states inside an Any.
const (
	ClientStateTypeURL    = "/teelc.lightclients.tee.v1.ClientState"
	ConsensusStateTypeURL = "/teelc.lightclients.tee.v1.ConsensusState"
	HeaderTypeURL         = "/teelc.lightclients.tee.v1.Header"
)

// The Any value bytes follow the same contract ABI tuple convention as the
// commitment wire format, so verifier contracts can decode states without a
// protobuf runtime.
var (
	clientStateTupleType, _ = abi.NewType("tuple", "", []abi.ArgumentMarshaling{
		{Name: "latestHeight", Type: "bytes32"},
		{Name: "mrEnclave", Type: "bytes"},
		{Name: "keyExpiration", Type: "uint64"},
		{Name: "keys", Type: "address[]"},
	})
	clientStateArgs = abi.Arguments{{Name: "clientState", Type: clientStateTupleType}}

	consensusStateTupleType, _ = abi.NewType("tuple", "", []abi.ArgumentMarshaling{
		{Name: "stateId", Type: "bytes32"},
		{Name: "timestamp", Type: "uint128"},
	})
	consensusStateArgs = abi.Arguments{{Name: "consensusState", Type: consensusStateTupleType}}

	headerTupleType, _ = abi.NewType("tuple", "", []abi.ArgumentMarshaling{
		{Name: "commitmentBytes", Type: "bytes"},
		{Name: "signature", Type: "bytes"},
	})
	headerArgs = abi.Arguments{{Name: "header", Type: headerTupleType}}
)

type abiClientState struct {
	LatestHeight  [32]byte
	MrEnclave     []byte
	KeyExpiration uint64
	Keys          []common.Address
}

type abiConsensusState struct {
	StateId   [32]byte
	Timestamp *big.Int
}

type abiHeader struct {
	CommitmentBytes []byte
	Signature       []byte
}

// PackClientState encodes a client state into an Any.
func PackClientState(cs *ClientState) (types.Any, error) {
	keyExpiration, err := types.DurationNanos(cs.KeyExpiration)
	if err != nil {
		return types.Any{}, errorsmod.Wrapf(ErrInvalidClientState, "invalid key expiration: %v", err)
	}
	bz, err := clientStateArgs.Pack(abiClientState{
		LatestHeight:  commitments.HeightWord(cs.LatestHeight),
		MrEnclave:     cs.MrEnclave,
		KeyExpiration: keyExpiration,
		Keys:          cs.Keys,
	})
	if err != nil {
		return types.Any{}, errorsmod.Wrapf(ErrInvalidClientState, "failed to pack client state: %v", err)
	}
	return types.NewAny(ClientStateTypeURL, bz), nil
}

// UnpackClientState decodes a client state from an Any, rejecting foreign
// type URLs.
func UnpackClientState(anyClientState types.Any) (*ClientState, error) {
	if anyClientState.TypeUrl != ClientStateTypeURL {
		return nil, errorsmod.Wrapf(ErrUnexpectedClientType, "type_url=%s", anyClientState.TypeUrl)
	}
	values, err := clientStateArgs.Unpack(anyClientState.Value)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidClientState, "failed to unpack client state: %v", err)
	}
	if len(values) != 1 {
		return nil, errorsmod.Wrapf(ErrInvalidClientState, "invalid client state arity: expected=1 actual=%d", len(values))
	}
	body := abi.ConvertType(values[0], new(abiClientState)).(*abiClientState)

	latestHeight, err := commitments.ParseHeightWord(body.LatestHeight)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidClientState, "invalid latest height: %v", err)
	}
	cs := &ClientState{
		MrEnclave:     body.MrEnclave,
		KeyExpiration: 0,
		Keys:          body.Keys,
	}
	if latestHeight != nil {
		cs.LatestHeight = *latestHeight
	}
	keyExpiration, err := types.NanosToDuration(body.KeyExpiration)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidClientState, "invalid key expiration: %v", err)
	}
	cs.KeyExpiration = keyExpiration

	return cs, nil
}

// PackConsensusState encodes a consensus state into an Any.
func PackConsensusState(cs *ConsensusState) (types.Any, error) {
	var stateID [32]byte
	copy(stateID[:], cs.StateID.Bytes())
	bz, err := consensusStateArgs.Pack(abiConsensusState{
		StateId:   stateID,
		Timestamp: new(big.Int).SetUint64(cs.Timestamp.UnixTimestampNanos()),
	})
	if err != nil {
		return types.Any{}, errorsmod.Wrapf(ErrInvalidConsensusState, "failed to pack consensus state: %v", err)
	}
	return types.NewAny(ConsensusStateTypeURL, bz), nil
}

// UnpackConsensusState decodes a consensus state from an Any, rejecting
// foreign type URLs.
func UnpackConsensusState(anyConsensusState types.Any) (*ConsensusState, error) {
	if anyConsensusState.TypeUrl != ConsensusStateTypeURL {
		return nil, errorsmod.Wrapf(ErrUnexpectedClientType, "type_url=%s", anyConsensusState.TypeUrl)
	}
	values, err := consensusStateArgs.Unpack(anyConsensusState.Value)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidConsensusState, "failed to unpack consensus state: %v", err)
	}
	if len(values) != 1 {
		return nil, errorsmod.Wrapf(ErrInvalidConsensusState, "invalid consensus state arity: expected=1 actual=%d", len(values))
	}
	body := abi.ConvertType(values[0], new(abiConsensusState)).(*abiConsensusState)

	if !body.Timestamp.IsUint64() || body.Timestamp.Uint64() > types.MaxUnixTimestampNanos {
		return nil, errorsmod.Wrapf(types.ErrTimestampOverflow, "consensus state timestamp %s exceeds representable range", body.Timestamp)
	}
	timestamp, err := types.FromUnixTimestampNanos(body.Timestamp.Uint64())
	if err != nil {
		return nil, err
	}
	return NewConsensusState(commitments.StateID(body.StateId), timestamp), nil
}

// PackHeader encodes a header into an Any.
func PackHeader(h *Header) (types.Any, error) {
	bz, err := headerArgs.Pack(abiHeader{
		CommitmentBytes: h.CommitmentBytes,
		Signature:       h.Signature,
	})
	if err != nil {
		return types.Any{}, errorsmod.Wrapf(ErrInvalidHeader, "failed to pack header: %v", err)
	}
	return types.NewAny(HeaderTypeURL, bz), nil
}

// UnpackHeader decodes a header from an Any, rejecting foreign type URLs.
func UnpackHeader(anyHeader types.Any) (*Header, error) {
	if anyHeader.TypeUrl != HeaderTypeURL {
		return nil, errorsmod.Wrapf(ErrUnexpectedHeaderType, "type_url=%s", anyHeader.TypeUrl)
	}
	values, err := headerArgs.Unpack(anyHeader.Value)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidHeader, "failed to unpack header: %v", err)
	}
	if len(values) != 1 {
		return nil, errorsmod.Wrapf(ErrInvalidHeader, "invalid header arity: expected=1 actual=%d", len(values))
	}
	body := abi.ConvertType(values[0], new(abiHeader)).(*abiHeader)
	return NewHeader(body.CommitmentBytes, body.Signature), nil
}
