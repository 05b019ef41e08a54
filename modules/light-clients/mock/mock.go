// Package mock provides a deterministic light client for exercising the
// dispatch layer in tests. Headers are trusted as-is; verification succeeds
// unconditionally and returns commitments derived only from the inputs.
package mock

import (
	"encoding/binary"

	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/teebridge/teelc/modules/commitments"
	"github.com/teebridge/teelc/modules/core/exported"
	"github.com/teebridge/teelc/modules/types"
)

const (
	// ClientType is the client type string of the mock client.
	ClientType = "mock-client"

	ClientStateTypeURL    = "/teelc.lightclients.mock.v1.ClientState"
	ConsensusStateTypeURL = "/teelc.lightclients.mock.v1.ConsensusState"
	HeaderTypeURL         = "/teelc.lightclients.mock.v1.Header"
)

const codespace = "mock"

// ErrInvalidState is returned for malformed mock states and headers.
var ErrInvalidState = errorsmod.Register(codespace, 2, "invalid mock state")

var _ exported.LightClient = (*LightClient)(nil)

// LightClient is the mock implementation.
type LightClient struct{}

// NewLightClient creates a new mock light client.
func NewLightClient() *LightClient {
	return &LightClient{}
}

// ClientType implements exported.LightClient.
func (*LightClient) ClientType() string {
	return ClientType
}

// NewClientState encodes a mock client state tracking the given height.
func NewClientState(latestHeight types.Height) types.Any {
	word := commitments.HeightWord(latestHeight)
	return types.NewAny(ClientStateTypeURL, word[:])
}

// NewConsensusState encodes a mock consensus state with the given timestamp.
func NewConsensusState(timestamp types.Time) types.Any {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, timestamp.UnixTimestampNanos())
	return types.NewAny(ConsensusStateTypeURL, bz)
}

// NewHeader encodes a mock header carrying the new height and timestamp.
func NewHeader(height types.Height, timestamp types.Time) types.Any {
	word := commitments.HeightWord(height)
	bz := make([]byte, 40)
	copy(bz[0:32], word[:])
	binary.BigEndian.PutUint64(bz[32:40], timestamp.UnixTimestampNanos())
	return types.NewAny(HeaderTypeURL, bz)
}

func parseClientState(anyClientState types.Any) (types.Height, error) {
	if anyClientState.TypeUrl != ClientStateTypeURL {
		return types.Height{}, errorsmod.Wrapf(ErrInvalidState, "unexpected client state type URL: %s", anyClientState.TypeUrl)
	}
	if len(anyClientState.Value) != 32 {
		return types.Height{}, errorsmod.Wrapf(ErrInvalidState, "invalid client state length: %d", len(anyClientState.Value))
	}
	var word [32]byte
	copy(word[:], anyClientState.Value)
	height, err := commitments.ParseHeightWord(word)
	if err != nil {
		return types.Height{}, err
	}
	if height == nil {
		return types.Height{}, errorsmod.Wrap(ErrInvalidState, "client state height cannot be zero")
	}
	return *height, nil
}

func parseConsensusState(anyConsensusState types.Any) (types.Time, error) {
	if anyConsensusState.TypeUrl != ConsensusStateTypeURL {
		return types.Time{}, errorsmod.Wrapf(ErrInvalidState, "unexpected consensus state type URL: %s", anyConsensusState.TypeUrl)
	}
	if len(anyConsensusState.Value) != 8 {
		return types.Time{}, errorsmod.Wrapf(ErrInvalidState, "invalid consensus state length: %d", len(anyConsensusState.Value))
	}
	return types.FromUnixTimestampNanos(binary.BigEndian.Uint64(anyConsensusState.Value))
}

func parseHeader(anyHeader types.Any) (types.Height, types.Time, error) {
	if anyHeader.TypeUrl != HeaderTypeURL {
		return types.Height{}, types.Time{}, errorsmod.Wrapf(ErrInvalidState, "unexpected header type URL: %s", anyHeader.TypeUrl)
	}
	if len(anyHeader.Value) != 40 {
		return types.Height{}, types.Time{}, errorsmod.Wrapf(ErrInvalidState, "invalid header length: %d", len(anyHeader.Value))
	}
	var word [32]byte
	copy(word[:], anyHeader.Value[0:32])
	height, err := commitments.ParseHeightWord(word)
	if err != nil {
		return types.Height{}, types.Time{}, err
	}
	if height == nil {
		return types.Height{}, types.Time{}, errorsmod.Wrap(ErrInvalidState, "header height cannot be zero")
	}
	timestamp, err := types.FromUnixTimestampNanos(binary.BigEndian.Uint64(anyHeader.Value[32:40]))
	if err != nil {
		return types.Height{}, types.Time{}, err
	}
	return *height, timestamp, nil
}

// LatestHeight implements exported.LightClient.
func (*LightClient) LatestHeight(ctx exported.HostClientReader, clientID string) (types.Height, error) {
	anyClientState, err := ctx.ClientState(clientID)
	if err != nil {
		return types.Height{}, err
	}
	return parseClientState(anyClientState)
}

// CreateClient implements exported.LightClient.
func (*LightClient) CreateClient(ctx exported.HostClientReader, anyClientState, anyConsensusState types.Any) (*exported.CreateClientResult, error) {
	height, err := parseClientState(anyClientState)
	if err != nil {
		return nil, err
	}
	timestamp, err := parseConsensusState(anyConsensusState)
	if err != nil {
		return nil, err
	}
	stateID, err := commitments.GenStateIDFromAny(anyClientState, anyConsensusState)
	if err != nil {
		return nil, err
	}
	return &exported.CreateClientResult{
		Height: height,
		Commitment: commitments.UpdateClientCommitment{
			NewStateID: stateID,
			NewHeight:  height,
			Timestamp:  timestamp,
			Context:    commitments.EmptyContext{},
		},
		Prove: true,
	}, nil
}

// UpdateClient implements exported.LightClient.
func (*LightClient) UpdateClient(ctx exported.HostClientReader, clientID string, anyHeader types.Any) (*exported.UpdateClientResult, error) {
	headerHeight, headerTimestamp, err := parseHeader(anyHeader)
	if err != nil {
		return nil, err
	}

	anyClientState, err := ctx.ClientState(clientID)
	if err != nil {
		return nil, err
	}
	prevHeight, err := parseClientState(anyClientState)
	if err != nil {
		return nil, err
	}
	anyConsensusState, err := ctx.ConsensusState(clientID, prevHeight)
	if err != nil {
		return nil, err
	}
	prevStateID, err := commitments.GenStateIDFromAny(anyClientState, anyConsensusState)
	if err != nil {
		return nil, err
	}

	newAnyClientState := NewClientState(headerHeight)
	newAnyConsensusState := NewConsensusState(headerTimestamp)
	newStateID, err := commitments.GenStateIDFromAny(newAnyClientState, newAnyConsensusState)
	if err != nil {
		return nil, err
	}

	return &exported.UpdateClientResult{
		NewAnyClientState:    newAnyClientState,
		NewAnyConsensusState: newAnyConsensusState,
		Height:               headerHeight,
		Commitment: commitments.UpdateClientCommitment{
			PrevStateID: &prevStateID,
			NewStateID:  newStateID,
			NewState:    &newAnyClientState,
			PrevHeight:  &prevHeight,
			NewHeight:   headerHeight,
			Timestamp:   headerTimestamp,
			Context:     commitments.EmptyContext{},
		},
		Prove: true,
	}, nil
}

// stateID recomputes the identifier of the stored state pair at the given
// height, so mock verification results carry a realistic state binding.
func stateID(ctx exported.HostClientReader, clientID string, height types.Height) (commitments.StateID, error) {
	anyClientState, err := ctx.ClientState(clientID)
	if err != nil {
		return commitments.StateID{}, err
	}
	anyConsensusState, err := ctx.ConsensusState(clientID, height)
	if err != nil {
		return commitments.StateID{}, err
	}
	return commitments.GenStateIDFromAny(anyClientState, anyConsensusState)
}

func membershipResult(ctx exported.HostClientReader, clientID string, prefix commitments.CommitmentPrefix, path string, value []byte, proofHeight types.Height) (*exported.StateVerificationResult, error) {
	id, err := stateID(ctx, clientID, proofHeight)
	if err != nil {
		return nil, err
	}
	sc := commitments.StateCommitment{
		Prefix:  prefix,
		Path:    path,
		Height:  proofHeight,
		StateID: id,
	}
	if value != nil {
		digest := crypto.Keccak256Hash(value)
		sc.Value = (*[32]byte)(&digest)
	}
	return &exported.StateVerificationResult{StateCommitment: sc}, nil
}

// VerifyClient implements exported.LightClient.
func (*LightClient) VerifyClient(ctx exported.HostClientReader, clientID string, targetAnyClientState types.Any, prefix commitments.CommitmentPrefix, counterpartyClientID string, proofHeight types.Height, proof []byte) (*exported.StateVerificationResult, error) {
	bz, err := types.MarshalAny(targetAnyClientState)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidState, "failed to marshal target client state: %v", err)
	}
	return membershipResult(ctx, clientID, prefix, "clients/"+counterpartyClientID+"/clientState", bz, proofHeight)
}

// VerifyClientConsensus implements exported.LightClient.
func (*LightClient) VerifyClientConsensus(ctx exported.HostClientReader, clientID string, targetAnyConsensusState types.Any, prefix commitments.CommitmentPrefix, counterpartyClientID string, counterpartyConsensusHeight types.Height, proofHeight types.Height, proof []byte) (*exported.StateVerificationResult, error) {
	bz, err := types.MarshalAny(targetAnyConsensusState)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidState, "failed to marshal target consensus state: %v", err)
	}
	path := "clients/" + counterpartyClientID + "/consensusStates/" + counterpartyConsensusHeight.String()
	return membershipResult(ctx, clientID, prefix, path, bz, proofHeight)
}

// VerifyConnection implements exported.LightClient.
func (*LightClient) VerifyConnection(ctx exported.HostClientReader, clientID string, expectedConnectionBytes []byte, prefix commitments.CommitmentPrefix, counterpartyConnectionID string, proofHeight types.Height, proof []byte) (*exported.StateVerificationResult, error) {
	return membershipResult(ctx, clientID, prefix, "connections/"+counterpartyConnectionID, expectedConnectionBytes, proofHeight)
}

// VerifyChannel implements exported.LightClient.
func (*LightClient) VerifyChannel(ctx exported.HostClientReader, clientID string, expectedChannelBytes []byte, prefix commitments.CommitmentPrefix, counterpartyPortID, counterpartyChannelID string, proofHeight types.Height, proof []byte) (*exported.StateVerificationResult, error) {
	path := "channelEnds/ports/" + counterpartyPortID + "/channels/" + counterpartyChannelID
	return membershipResult(ctx, clientID, prefix, path, expectedChannelBytes, proofHeight)
}

// VerifyMembership implements exported.LightClient.
func (*LightClient) VerifyMembership(ctx exported.HostClientReader, clientID string, prefix commitments.CommitmentPrefix, path string, value []byte, proofHeight types.Height, proof []byte) (*exported.StateVerificationResult, error) {
	return membershipResult(ctx, clientID, prefix, path, value, proofHeight)
}

// VerifyNonMembership implements exported.LightClient.
func (*LightClient) VerifyNonMembership(ctx exported.HostClientReader, clientID string, prefix commitments.CommitmentPrefix, path string, proofHeight types.Height, proof []byte) (*exported.StateVerificationResult, error) {
	return membershipResult(ctx, clientID, prefix, path, nil, proofHeight)
}
