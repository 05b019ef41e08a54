package tee

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/teebridge/teelc/modules/commitments"
	"github.com/teebridge/teelc/modules/core/exported"
	"github.com/teebridge/teelc/modules/enclave"
	"github.com/teebridge/teelc/modules/types"
)

var _ exported.LightClient = (*LightClient)(nil)

// LightClient verifies enclave-signed update-client commitments against the
// registered enclave keys and advances the tracked state accordingly.
type LightClient struct{}

// NewLightClient creates a new TEE light client.
func NewLightClient() *LightClient {
	return &LightClient{}
}

// ClientType implements exported.LightClient.
func (*LightClient) ClientType() string {
	return ClientType
}

// LatestHeight implements exported.LightClient.
func (*LightClient) LatestHeight(ctx exported.HostClientReader, clientID string) (types.Height, error) {
	anyClientState, err := ctx.ClientState(clientID)
	if err != nil {
		return types.Height{}, err
	}
	clientState, err := UnpackClientState(anyClientState)
	if err != nil {
		return types.Height{}, err
	}
	return clientState.LatestHeight, nil
}

// CreateClient implements exported.LightClient. The genesis commitment
// carries an empty context: there is no previously trusted state to bound.
func (*LightClient) CreateClient(ctx exported.HostClientReader, anyClientState, anyConsensusState types.Any) (*exported.CreateClientResult, error) {
	clientState, err := UnpackClientState(anyClientState)
	if err != nil {
		return nil, err
	}
	if err := clientState.Validate(); err != nil {
		return nil, err
	}
	consensusState, err := UnpackConsensusState(anyConsensusState)
	if err != nil {
		return nil, err
	}
	if err := consensusState.ValidateBasic(); err != nil {
		return nil, err
	}

	stateID, err := commitments.GenStateIDFromAny(anyClientState, anyConsensusState)
	if err != nil {
		return nil, err
	}

	return &exported.CreateClientResult{
		Height: clientState.LatestHeight,
		Commitment: commitments.UpdateClientCommitment{
			NewStateID: stateID,
			NewHeight:  clientState.LatestHeight,
			Timestamp:  consensusState.Timestamp,
			Context:    commitments.EmptyContext{},
		},
		Prove: true,
	}, nil
}

// UpdateClient implements exported.LightClient.
func (*LightClient) UpdateClient(ctx exported.HostClientReader, clientID string, anyHeader types.Any) (*exported.UpdateClientResult, error) {
	header, err := UnpackHeader(anyHeader)
	if err != nil {
		return nil, err
	}
	if err := header.ValidateBasic(); err != nil {
		return nil, err
	}

	anyClientState, err := ctx.ClientState(clientID)
	if err != nil {
		return nil, err
	}
	clientState, err := UnpackClientState(anyClientState)
	if err != nil {
		return nil, err
	}

	newClientState, newConsensusState, commitment, err := checkHeaderAndUpdateState(ctx, clientID, clientState, header)
	if err != nil {
		return nil, err
	}

	newAnyClientState, err := PackClientState(newClientState)
	if err != nil {
		return nil, err
	}
	newAnyConsensusState, err := PackConsensusState(newConsensusState)
	if err != nil {
		return nil, err
	}

	return &exported.UpdateClientResult{
		NewAnyClientState:    newAnyClientState,
		NewAnyConsensusState: newAnyConsensusState,
		Height:               commitment.NewHeight,
		Commitment:           *commitment,
		Prove:                true,
	}, nil
}

// checkHeaderAndUpdateState verifies the header's commitment against the
// stored trusted state and computes the post-update states.
//
// Every failure is a typed error: a malformed or adversarial header must
// never abort the process.
func checkHeaderAndUpdateState(
	ctx exported.HostClientReader,
	clientID string,
	clientState *ClientState,
	header *Header,
) (*ClientState, *ConsensusState, *commitments.UpdateClientCommitment, error) {
	commitment, err := header.Commitment()
	if err != nil {
		return nil, nil, nil, err
	}

	signer, err := enclave.RecoverSigner(header.CommitmentBytes, header.Signature)
	if err != nil {
		return nil, nil, nil, errorsmod.Wrapf(ErrInvalidHeader, "failed to recover signer: %v", err)
	}
	if !clientState.Contains(signer) {
		return nil, nil, nil, errorsmod.Wrapf(ErrUnregisteredEnclaveKey, "signer=%s", signer)
	}

	// Only the genesis commitment omits the previous fields, and genesis
	// never flows through UpdateClient.
	if commitment.PrevHeight == nil || commitment.PrevStateID == nil {
		return nil, nil, nil, errorsmod.Wrap(ErrInvalidHeader, "header commitment must reference a previous state")
	}

	anyTrustedConsensusState, err := ctx.ConsensusState(clientID, *commitment.PrevHeight)
	if err != nil {
		return nil, nil, nil, err
	}
	trustedConsensusState, err := UnpackConsensusState(anyTrustedConsensusState)
	if err != nil {
		return nil, nil, nil, err
	}
	if trustedConsensusState.StateID != *commitment.PrevStateID {
		return nil, nil, nil, errorsmod.Wrapf(
			ErrUnexpectedStateID,
			"expected=%s actual=%s", trustedConsensusState.StateID, commitment.PrevStateID,
		)
	}

	if err := commitment.Context.Validate(ctx.HostTimestamp()); err != nil {
		return nil, nil, nil, err
	}

	newClientState := clientState.WithHeader(commitment.NewHeight)
	newConsensusState := NewConsensusState(commitment.NewStateID, commitment.Timestamp)
	return &newClientState, newConsensusState, commitment, nil
}

// The per-proof-type verification algorithms for the TEE client are served
// by the counterparty clients registered alongside it; the entry points below
// stay as explicit typed errors until the enclave-side proof formats land.

// VerifyClient implements exported.LightClient.
func (*LightClient) VerifyClient(ctx exported.HostClientReader, clientID string, targetAnyClientState types.Any, prefix commitments.CommitmentPrefix, counterpartyClientID string, proofHeight types.Height, proof []byte) (*exported.StateVerificationResult, error) {
	return nil, errorsmod.Wrap(ErrUnimplemented, "VerifyClient")
}

// VerifyClientConsensus implements exported.LightClient.
func (*LightClient) VerifyClientConsensus(ctx exported.HostClientReader, clientID string, targetAnyConsensusState types.Any, prefix commitments.CommitmentPrefix, counterpartyClientID string, counterpartyConsensusHeight types.Height, proofHeight types.Height, proof []byte) (*exported.StateVerificationResult, error) {
	return nil, errorsmod.Wrap(ErrUnimplemented, "VerifyClientConsensus")
}

// VerifyConnection implements exported.LightClient.
func (*LightClient) VerifyConnection(ctx exported.HostClientReader, clientID string, expectedConnectionBytes []byte, prefix commitments.CommitmentPrefix, counterpartyConnectionID string, proofHeight types.Height, proof []byte) (*exported.StateVerificationResult, error) {
	return nil, errorsmod.Wrap(ErrUnimplemented, "VerifyConnection")
}

// VerifyChannel implements exported.LightClient.
func (*LightClient) VerifyChannel(ctx exported.HostClientReader, clientID string, expectedChannelBytes []byte, prefix commitments.CommitmentPrefix, counterpartyPortID, counterpartyChannelID string, proofHeight types.Height, proof []byte) (*exported.StateVerificationResult, error) {
	return nil, errorsmod.Wrap(ErrUnimplemented, "VerifyChannel")
}

// VerifyMembership implements exported.LightClient.
func (*LightClient) VerifyMembership(ctx exported.HostClientReader, clientID string, prefix commitments.CommitmentPrefix, path string, value []byte, proofHeight types.Height, proof []byte) (*exported.StateVerificationResult, error) {
	return nil, errorsmod.Wrap(ErrUnimplemented, "VerifyMembership")
}

// VerifyNonMembership implements exported.LightClient.
func (*LightClient) VerifyNonMembership(ctx exported.HostClientReader, clientID string, prefix commitments.CommitmentPrefix, path string, proofHeight types.Height, proof []byte) (*exported.StateVerificationResult, error) {
	return nil, errorsmod.Wrap(ErrUnimplemented, "VerifyNonMembership")
}
