package commitments

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/common"
)

// Signer is the enclave-held signing capability the prover binds commitments
// to. Signing is read-only with respect to key material, so a Signer may be
// shared across concurrent proving calls.
type Signer interface {
	// Sign signs the given message bytes.
	Sign(msg []byte) ([]byte, error)

	// Address returns the signer's on-chain identity.
	Address() common.Address
}

// ProveCommitment encodes the commitment, signs the encoded bytes with the
// enclave key and packages the result. A signing failure never yields a
// partially-formed proof.
func ProveCommitment(enclaveKey Signer, commitment Commitment) (*CommitmentProof, error) {
	commitmentBytes, err := commitment.ABIEncode()
	if err != nil {
		return nil, err
	}
	signature, err := enclaveKey.Sign(commitmentBytes)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrSigningFailed, "failed to sign commitment: %v", err)
	}
	return NewCommitmentProof(commitmentBytes, enclaveKey.Address(), signature), nil
}

// ProveStateCommitment is a convenience wrapper over ProveCommitment for the
// state-verification dispatch path.
func ProveStateCommitment(enclaveKey Signer, commitment *StateCommitment) (*CommitmentProof, error) {
	return ProveCommitment(enclaveKey, commitment)
}
