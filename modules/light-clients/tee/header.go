package tee

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/teebridge/teelc/modules/commitments"
)

// Header wraps a signed update-client commitment produced by an enclave. The
// commitment bytes carry the attested state transition; the signature binds
// them to a registered enclave key.
type Header struct {
	CommitmentBytes []byte
	Signature       []byte
}

// NewHeader creates a new Header instance.
func NewHeader(commitmentBytes, signature []byte) *Header {
	return &Header{
		CommitmentBytes: commitmentBytes,
		Signature:       signature,
	}
}

// ClientType returns the TEE client type.
func (*Header) ClientType() string {
	return ClientType
}

// Commitment decodes the update-client commitment the header carries.
func (h *Header) Commitment() (*commitments.UpdateClientCommitment, error) {
	c, err := commitments.ABIDecodeCommitment(h.CommitmentBytes)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidHeader, "failed to decode commitment: %v", err)
	}
	uc, ok := c.(*commitments.UpdateClientCommitment)
	if !ok {
		return nil, errorsmod.Wrapf(ErrInvalidHeader, "unexpected commitment type: %d", c.CommitmentType())
	}
	return uc, nil
}

// ValidateBasic performs a basic validation of the header fields.
func (h *Header) ValidateBasic() error {
	if len(h.CommitmentBytes) == 0 {
		return errorsmod.Wrap(ErrInvalidHeader, "commitment bytes cannot be empty")
	}
	if len(h.Signature) == 0 {
		return errorsmod.Wrap(ErrInvalidHeader, "signature cannot be empty")
	}
	return nil
}
