package commitments

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// CommitmentProof wraps an encoded commitment together with the identity of
// the enclave key that signed it and the signature over the encoded bytes.
// It is produced exactly once per verification call and is immutable
// thereafter; the caller is responsible for transmission to the on-chain
// verifier.
type CommitmentProof struct {
	CommitmentBytes []byte
	Signer          common.Address
	Signature       []byte
}

// NewCommitmentProof creates a new CommitmentProof instance.
func NewCommitmentProof(commitmentBytes []byte, signer common.Address, signature []byte) *CommitmentProof {
	return &CommitmentProof{
		CommitmentBytes: commitmentBytes,
		Signer:          signer,
		Signature:       signature,
	}
}

// Commitment re-decodes the commitment the proof was produced over.
func (p *CommitmentProof) Commitment() (Commitment, error) {
	return ABIDecodeCommitment(p.CommitmentBytes)
}

type abiCommitmentProof struct {
	CommitmentBytes []byte
	Signer          common.Address
	Signature       []byte
}

// ABIEncode serializes the proof as the tuple (bytes, address, bytes).
func (p *CommitmentProof) ABIEncode() ([]byte, error) {
	bz, err := commitmentProofArgs.Pack(abiCommitmentProof{
		CommitmentBytes: p.CommitmentBytes,
		Signer:          p.Signer,
		Signature:       p.Signature,
	})
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidCommitmentProof, "failed to pack commitment proof: %v", err)
	}
	return bz, nil
}

// ABIDecodeCommitmentProof parses an encoded commitment proof.
func ABIDecodeCommitmentProof(bz []byte) (*CommitmentProof, error) {
	values, err := commitmentProofArgs.Unpack(bz)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidCommitmentProof, "failed to unpack commitment proof: %v", err)
	}
	if len(values) != 1 {
		return nil, errorsmod.Wrapf(ErrInvalidCommitmentProof, "invalid commitment proof arity: expected=1 actual=%d", len(values))
	}
	proof := abi.ConvertType(values[0], new(abiCommitmentProof)).(*abiCommitmentProof)
	return NewCommitmentProof(proof.CommitmentBytes, proof.Signer, proof.Signature), nil
}
