package handler

import (
	"github.com/teebridge/teelc/modules/commitments"
	"github.com/teebridge/teelc/modules/core/context"
	"github.com/teebridge/teelc/modules/core/registry"
	"github.com/teebridge/teelc/modules/types"
)

// Each verification call runs the same state machine:
// resolve the registered light client by client ID, delegate the
// protocol-specific verification to it, then wrap the resulting state
// commitment through the prover with the enclave key. A failure at any step
// is terminal for that call; the caller decides whether to retry the whole
// verification with fresher proof data.

// VerifyClientInput carries a request to verify the counterparty's stored
// client state for this chain.
type VerifyClientInput struct {
	ClientID             string
	TargetAnyClientState types.Any
	Prefix               commitments.CommitmentPrefix
	CounterpartyClientID string
	ProofHeight          types.Height
	Proof                []byte
}

// VerifyClientResult carries the signed proof of a VerifyClient call.
type VerifyClientResult struct {
	Proof commitments.CommitmentProof
}

// VerifyClient verifies the counterparty's stored client state and proves
// the resulting state commitment.
func VerifyClient(ctx *context.Context, reg *registry.Registry, input VerifyClientInput) (*VerifyClientResult, error) {
	enclaveKey := ctx.GetEnclaveKey()
	lc, err := getLightClientByClientID(ctx, reg, input.ClientID)
	if err != nil {
		return nil, err
	}

	res, err := lc.VerifyClient(ctx, input.ClientID, input.TargetAnyClientState, input.Prefix, input.CounterpartyClientID, input.ProofHeight, input.Proof)
	if err != nil {
		return nil, err
	}

	proof, err := commitments.ProveStateCommitment(enclaveKey, &res.StateCommitment)
	if err != nil {
		return nil, err
	}
	return &VerifyClientResult{Proof: *proof}, nil
}

// VerifyClientConsensusInput carries a request to verify the counterparty's
// stored consensus state for this chain at a given consensus height.
type VerifyClientConsensusInput struct {
	ClientID                    string
	TargetAnyConsensusState     types.Any
	Prefix                      commitments.CommitmentPrefix
	CounterpartyClientID        string
	CounterpartyConsensusHeight types.Height
	ProofHeight                 types.Height
	Proof                       []byte
}

// VerifyClientConsensusResult carries the signed proof of a
// VerifyClientConsensus call.
type VerifyClientConsensusResult struct {
	Proof commitments.CommitmentProof
}

// VerifyClientConsensus verifies the counterparty's stored consensus state
// and proves the resulting state commitment.
func VerifyClientConsensus(ctx *context.Context, reg *registry.Registry, input VerifyClientConsensusInput) (*VerifyClientConsensusResult, error) {
	enclaveKey := ctx.GetEnclaveKey()
	lc, err := getLightClientByClientID(ctx, reg, input.ClientID)
	if err != nil {
		return nil, err
	}

	res, err := lc.VerifyClientConsensus(ctx, input.ClientID, input.TargetAnyConsensusState, input.Prefix, input.CounterpartyClientID, input.CounterpartyConsensusHeight, input.ProofHeight, input.Proof)
	if err != nil {
		return nil, err
	}

	proof, err := commitments.ProveStateCommitment(enclaveKey, &res.StateCommitment)
	if err != nil {
		return nil, err
	}
	return &VerifyClientConsensusResult{Proof: *proof}, nil
}

// VerifyConnectionInput carries a request to verify the counterparty's
// connection end.
type VerifyConnectionInput struct {
	ClientID                 string
	ExpectedConnectionBytes  []byte
	Prefix                   commitments.CommitmentPrefix
	CounterpartyConnectionID string
	ProofHeight              types.Height
	Proof                    []byte
}

// VerifyConnectionResult carries the signed proof of a VerifyConnection
// call.
type VerifyConnectionResult struct {
	Proof commitments.CommitmentProof
}

// VerifyConnection verifies the counterparty's connection end and proves the
// resulting state commitment.
func VerifyConnection(ctx *context.Context, reg *registry.Registry, input VerifyConnectionInput) (*VerifyConnectionResult, error) {
	enclaveKey := ctx.GetEnclaveKey()
	lc, err := getLightClientByClientID(ctx, reg, input.ClientID)
	if err != nil {
		return nil, err
	}

	res, err := lc.VerifyConnection(ctx, input.ClientID, input.ExpectedConnectionBytes, input.Prefix, input.CounterpartyConnectionID, input.ProofHeight, input.Proof)
	if err != nil {
		return nil, err
	}

	proof, err := commitments.ProveStateCommitment(enclaveKey, &res.StateCommitment)
	if err != nil {
		return nil, err
	}
	return &VerifyConnectionResult{Proof: *proof}, nil
}

// VerifyChannelInput carries a request to verify the counterparty's channel
// end.
type VerifyChannelInput struct {
	ClientID              string
	ExpectedChannelBytes  []byte
	Prefix                commitments.CommitmentPrefix
	CounterpartyPortID    string
	CounterpartyChannelID string
	ProofHeight           types.Height
	Proof                 []byte
}

// VerifyChannelResult carries the signed proof of a VerifyChannel call.
type VerifyChannelResult struct {
	Proof commitments.CommitmentProof
}

// VerifyChannel verifies the counterparty's channel end and proves the
// resulting state commitment.
func VerifyChannel(ctx *context.Context, reg *registry.Registry, input VerifyChannelInput) (*VerifyChannelResult, error) {
	enclaveKey := ctx.GetEnclaveKey()
	lc, err := getLightClientByClientID(ctx, reg, input.ClientID)
	if err != nil {
		return nil, err
	}

	res, err := lc.VerifyChannel(ctx, input.ClientID, input.ExpectedChannelBytes, input.Prefix, input.CounterpartyPortID, input.CounterpartyChannelID, input.ProofHeight, input.Proof)
	if err != nil {
		return nil, err
	}

	proof, err := commitments.ProveStateCommitment(enclaveKey, &res.StateCommitment)
	if err != nil {
		return nil, err
	}
	return &VerifyChannelResult{Proof: *proof}, nil
}
