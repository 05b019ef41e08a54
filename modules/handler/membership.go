package handler

import (
	"github.com/teebridge/teelc/modules/commitments"
	"github.com/teebridge/teelc/modules/core/context"
	"github.com/teebridge/teelc/modules/core/registry"
	"github.com/teebridge/teelc/modules/types"
)

// VerifyMembershipInput carries a request to verify the existence of a value
// at a path in the counterparty chain's committed state.
type VerifyMembershipInput struct {
	ClientID    string
	Prefix      commitments.CommitmentPrefix
	Path        string
	Value       []byte
	ProofHeight types.Height
	Proof       []byte
}

// VerifyMembershipResult carries the signed proof of a VerifyMembership
// call.
type VerifyMembershipResult struct {
	Proof commitments.CommitmentProof
}

// VerifyMembership verifies the existence of a value at a path and proves
// the resulting state commitment.
func VerifyMembership(ctx *context.Context, reg *registry.Registry, input VerifyMembershipInput) (*VerifyMembershipResult, error) {
	enclaveKey := ctx.GetEnclaveKey()
	lc, err := getLightClientByClientID(ctx, reg, input.ClientID)
	if err != nil {
		return nil, err
	}

	res, err := lc.VerifyMembership(ctx, input.ClientID, input.Prefix, input.Path, input.Value, input.ProofHeight, input.Proof)
	if err != nil {
		return nil, err
	}

	proof, err := commitments.ProveStateCommitment(enclaveKey, &res.StateCommitment)
	if err != nil {
		return nil, err
	}
	return &VerifyMembershipResult{Proof: *proof}, nil
}

// VerifyNonMembershipInput carries a request to verify the absence of a path
// in the counterparty chain's committed state.
type VerifyNonMembershipInput struct {
	ClientID    string
	Prefix      commitments.CommitmentPrefix
	Path        string
	ProofHeight types.Height
	Proof       []byte
}

// VerifyNonMembershipResult carries the signed proof of a
// VerifyNonMembership call.
type VerifyNonMembershipResult struct {
	Proof commitments.CommitmentProof
}

// VerifyNonMembership verifies the absence of a path and proves the
// resulting state commitment.
func VerifyNonMembership(ctx *context.Context, reg *registry.Registry, input VerifyNonMembershipInput) (*VerifyNonMembershipResult, error) {
	enclaveKey := ctx.GetEnclaveKey()
	lc, err := getLightClientByClientID(ctx, reg, input.ClientID)
	if err != nil {
		return nil, err
	}

	res, err := lc.VerifyNonMembership(ctx, input.ClientID, input.Prefix, input.Path, input.ProofHeight, input.Proof)
	if err != nil {
		return nil, err
	}

	proof, err := commitments.ProveStateCommitment(enclaveKey, &res.StateCommitment)
	if err != nil {
		return nil, err
	}
	return &VerifyNonMembershipResult{Proof: *proof}, nil
}
