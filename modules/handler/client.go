package handler

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/teebridge/teelc/modules/commitments"
	"github.com/teebridge/teelc/modules/core/context"
	"github.com/teebridge/teelc/modules/core/host"
	"github.com/teebridge/teelc/modules/core/registry"
	"github.com/teebridge/teelc/modules/types"
)

// CreateClientInput carries an initial client/consensus state pair.
type CreateClientInput struct {
	AnyClientState    types.Any
	AnyConsensusState types.Any
}

// CreateClientResult carries the generated client identifier and, when the
// light client requests proving, the signed creation commitment.
type CreateClientResult struct {
	ClientID string
	Proof    *commitments.CommitmentProof
}

// CreateClient resolves the light client by the client-state type URL,
// delegates validation of the initial state pair, persists the new client
// and proves its creation commitment when requested.
func CreateClient(ctx *context.Context, reg *registry.Registry, input CreateClientInput) (*CreateClientResult, error) {
	lc, ok := reg.GetRouteByTypeURL(input.AnyClientState.TypeUrl)
	if !ok {
		return nil, errorsmod.Wrapf(ErrLightClientNotRegistered, "type_url=%s", input.AnyClientState.TypeUrl)
	}

	res, err := lc.CreateClient(ctx, input.AnyClientState, input.AnyConsensusState)
	if err != nil {
		return nil, err
	}

	clientID := host.FormatClientIdentifier(lc.ClientType(), ctx.NextClientSequence())

	ctx.SetClientType(clientID, lc.ClientType())
	if err := ctx.SetClientState(clientID, input.AnyClientState); err != nil {
		return nil, err
	}
	if err := ctx.SetConsensusState(clientID, res.Height, input.AnyConsensusState); err != nil {
		return nil, err
	}

	result := &CreateClientResult{ClientID: clientID}
	if res.Prove {
		proof, err := commitments.ProveCommitment(ctx.GetEnclaveKey(), &res.Commitment)
		if err != nil {
			return nil, err
		}
		result.Proof = proof
	}
	return result, nil
}

// UpdateClientInput carries a header for an existing client.
type UpdateClientInput struct {
	ClientID  string
	AnyHeader types.Any
}

// UpdateClientResult carries the new height and, when the light client
// requests proving, the signed update commitment.
type UpdateClientResult struct {
	Height types.Height
	Proof  *commitments.CommitmentProof
}

// UpdateClient resolves the light client by client identifier, delegates
// header verification, persists the advanced states and proves the update
// commitment when requested. The host serializes updates per client ID; two
// racing updates would violate the latest-height monotonicity invariant.
func UpdateClient(ctx *context.Context, reg *registry.Registry, input UpdateClientInput) (*UpdateClientResult, error) {
	lc, err := getLightClientByClientID(ctx, reg, input.ClientID)
	if err != nil {
		return nil, err
	}

	res, err := lc.UpdateClient(ctx, input.ClientID, input.AnyHeader)
	if err != nil {
		return nil, err
	}

	if err := ctx.SetClientState(input.ClientID, res.NewAnyClientState); err != nil {
		return nil, err
	}
	if err := ctx.SetConsensusState(input.ClientID, res.Height, res.NewAnyConsensusState); err != nil {
		return nil, err
	}

	result := &UpdateClientResult{Height: res.Height}
	if res.Prove {
		proof, err := commitments.ProveCommitment(ctx.GetEnclaveKey(), &res.Commitment)
		if err != nil {
			return nil, err
		}
		result.Proof = proof
	}
	return result, nil
}
