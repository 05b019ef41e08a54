// Package enclave provides the signing key held inside the trusted
// execution environment. Attestation-report issuance and remote attestation
// for the key are handled by an external subsystem; this package only covers
// the signing capability bound to commitments.
package enclave

import (
	"crypto/ecdsa"

	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// SignatureLength is the expected length of an ECDSA signature (r||s||v).
	SignatureLength = 65
)

const codespace = "enclave"

var (
	// ErrInvalidSignature is returned when a signature cannot be recovered
	// or does not have the expected shape.
	ErrInvalidSignature = errorsmod.Register(codespace, 2, "invalid signature")

	// ErrSigningFailed is returned when the key cannot produce a signature.
	ErrSigningFailed = errorsmod.Register(codespace, 3, "signing failed")
)

// Key is a secp256k1 signing key held by the enclave. Its public identity is
// the derived address, which on-chain verifiers recover from signatures.
type Key struct {
	privKey *ecdsa.PrivateKey
}

// GenerateKey creates a fresh enclave key.
func GenerateKey() (*Key, error) {
	privKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, errorsmod.Wrapf(ErrSigningFailed, "failed to generate key: %v", err)
	}
	return &Key{privKey: privKey}, nil
}

// NewKey wraps an existing secp256k1 private key.
func NewKey(privKey *ecdsa.PrivateKey) *Key {
	return &Key{privKey: privKey}
}

// Address returns the key's on-chain identity.
func (k *Key) Address() common.Address {
	return crypto.PubkeyToAddress(k.privKey.PublicKey)
}

// Sign signs the Keccak-256 digest of msg, producing a recoverable
// (r||s||v) signature.
func (k *Key) Sign(msg []byte) ([]byte, error) {
	sig, err := crypto.Sign(crypto.Keccak256(msg), k.privKey)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrSigningFailed, "failed to sign message: %v", err)
	}
	return sig, nil
}

// RecoverSigner recovers the address that produced sig over msg with Sign.
func RecoverSigner(msg, sig []byte) (common.Address, error) {
	if len(sig) != SignatureLength {
		return common.Address{}, errorsmod.Wrapf(ErrInvalidSignature, "invalid signature length: expected=%d actual=%d", SignatureLength, len(sig))
	}
	pubKey, err := crypto.SigToPub(crypto.Keccak256(msg), sig)
	if err != nil {
		return common.Address{}, errorsmod.Wrapf(ErrInvalidSignature, "failed to recover public key: %v", err)
	}
	return crypto.PubkeyToAddress(*pubKey), nil
}
