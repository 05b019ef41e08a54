package exported

import (
	"github.com/teebridge/teelc/modules/commitments"
	"github.com/teebridge/teelc/modules/types"
)

// HostClientReader gives light-client implementations read access to the
// host's client store and clock. Persistence of new states after a
// successful update is the host's responsibility.
type HostClientReader interface {
	// ClientType returns the client type registered for the given client
	// identifier.
	ClientType(clientID string) (string, error)

	// ClientState returns the encoded client state for the given client
	// identifier.
	ClientState(clientID string) (types.Any, error)

	// ConsensusState returns the encoded consensus state for the given
	// client identifier at the given height.
	ConsensusState(clientID string, height types.Height) (types.Any, error)

	// HostTimestamp returns the host's view of the current time, used as the
	// "current timestamp" for commitment context validation.
	HostTimestamp() types.Time
}

// CreateClientResult is returned by LightClient.CreateClient.
type CreateClientResult struct {
	Height     types.Height
	Commitment commitments.UpdateClientCommitment
	Prove      bool
}

// UpdateClientResult is returned by LightClient.UpdateClient. The new states
// are persisted by the caller on success.
type UpdateClientResult struct {
	NewAnyClientState    types.Any
	NewAnyConsensusState types.Any
	Height               types.Height
	Commitment           commitments.UpdateClientCommitment
	Prove                bool
}

// StateVerificationResult is returned by the Verify* operations.
type StateVerificationResult struct {
	StateCommitment commitments.StateCommitment
}

// LightClient is the protocol-specific verification logic registered per
// client type. Implementations compute commitments; they never sign them —
// proving is the dispatch layer's job.
type LightClient interface {
	// ClientType returns the client type string the implementation serves.
	ClientType() string

	// LatestHeight returns the latest verified height of the given client.
	LatestHeight(ctx HostClientReader, clientID string) (types.Height, error)

	// CreateClient validates an initial client/consensus state pair and
	// computes the client's creation commitment.
	CreateClient(ctx HostClientReader, anyClientState, anyConsensusState types.Any) (*CreateClientResult, error)

	// UpdateClient verifies a header against the stored trusted state and
	// computes the resulting state transition and its commitment.
	UpdateClient(ctx HostClientReader, clientID string, anyHeader types.Any) (*UpdateClientResult, error)

	// VerifyClient verifies a proof that the counterparty chain stores the
	// given client state for this chain.
	VerifyClient(ctx HostClientReader, clientID string, targetAnyClientState types.Any, prefix commitments.CommitmentPrefix, counterpartyClientID string, proofHeight types.Height, proof []byte) (*StateVerificationResult, error)

	// VerifyClientConsensus verifies a proof that the counterparty chain
	// stores the given consensus state at the given consensus height.
	VerifyClientConsensus(ctx HostClientReader, clientID string, targetAnyConsensusState types.Any, prefix commitments.CommitmentPrefix, counterpartyClientID string, counterpartyConsensusHeight types.Height, proofHeight types.Height, proof []byte) (*StateVerificationResult, error)

	// VerifyConnection verifies a proof of the counterparty chain's
	// connection end.
	VerifyConnection(ctx HostClientReader, clientID string, expectedConnectionBytes []byte, prefix commitments.CommitmentPrefix, counterpartyConnectionID string, proofHeight types.Height, proof []byte) (*StateVerificationResult, error)

	// VerifyChannel verifies a proof of the counterparty chain's channel
	// end.
	VerifyChannel(ctx HostClientReader, clientID string, expectedChannelBytes []byte, prefix commitments.CommitmentPrefix, counterpartyPortID, counterpartyChannelID string, proofHeight types.Height, proof []byte) (*StateVerificationResult, error)

	// VerifyMembership verifies a proof of the existence of a value at a
	// given path in the counterparty chain's committed state.
	VerifyMembership(ctx HostClientReader, clientID string, prefix commitments.CommitmentPrefix, path string, value []byte, proofHeight types.Height, proof []byte) (*StateVerificationResult, error)

	// VerifyNonMembership verifies a proof of the absence of a given path in
	// the counterparty chain's committed state.
	VerifyNonMembership(ctx HostClientReader, clientID string, prefix commitments.CommitmentPrefix, path string, proofHeight types.Height, proof []byte) (*StateVerificationResult, error)
}
