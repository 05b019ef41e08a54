package commitments

import (
	"encoding/binary"

	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/teebridge/teelc/modules/types"
)

// All wire encodings use the fixed 32-byte-word, MSB-first tuple convention
// of contract ABI encoding (bytes32 + bytes fields), so that an on-chain
// verifier with only fixed-width-word primitives can decode them without
// length-prefixed fields.
var (
	commitmentContextTupleType, _ = abi.NewType("tuple", "", []abi.ArgumentMarshaling{
		{Name: "header", Type: "bytes32"},
		{Name: "contextBytes", Type: "bytes"},
	})
	commitmentContextArgs = abi.Arguments{{Name: "commitmentContext", Type: commitmentContextTupleType}}

	trustingPeriodContextTupleType, _ = abi.NewType("tuple", "", []abi.ArgumentMarshaling{
		{Name: "timestamps", Type: "bytes32"},
		{Name: "params", Type: "bytes32"},
	})
	trustingPeriodContextArgs = abi.Arguments{{Name: "trustingPeriodContext", Type: trustingPeriodContextTupleType}}

	commitmentTupleType, _ = abi.NewType("tuple", "", []abi.ArgumentMarshaling{
		{Name: "header", Type: "bytes32"},
		{Name: "commitmentBytes", Type: "bytes"},
	})
	commitmentArgs = abi.Arguments{{Name: "commitment", Type: commitmentTupleType}}

	updateClientCommitmentTupleType, _ = abi.NewType("tuple", "", []abi.ArgumentMarshaling{
		{Name: "prevStateId", Type: "bytes32"},
		{Name: "newStateId", Type: "bytes32"},
		{Name: "newState", Type: "bytes"},
		{Name: "prevHeight", Type: "bytes32"},
		{Name: "newHeight", Type: "bytes32"},
		{Name: "timestamp", Type: "uint128"},
		{Name: "context", Type: "bytes"},
	})
	updateClientCommitmentArgs = abi.Arguments{{Name: "updateClientCommitment", Type: updateClientCommitmentTupleType}}

	stateCommitmentTupleType, _ = abi.NewType("tuple", "", []abi.ArgumentMarshaling{
		{Name: "prefix", Type: "bytes"},
		{Name: "path", Type: "bytes"},
		{Name: "value", Type: "bytes32"},
		{Name: "height", Type: "bytes32"},
		{Name: "stateId", Type: "bytes32"},
	})
	stateCommitmentArgs = abi.Arguments{{Name: "stateCommitment", Type: stateCommitmentTupleType}}

	commitmentProofTupleType, _ = abi.NewType("tuple", "", []abi.ArgumentMarshaling{
		{Name: "commitmentBytes", Type: "bytes"},
		{Name: "signer", Type: "address"},
		{Name: "signature", Type: "bytes"},
	})
	commitmentProofArgs = abi.Arguments{{Name: "commitmentProof", Type: commitmentProofTupleType}}

	bytesType, _    = abi.NewType("bytes", "", nil)
	stateIDHashArgs = abi.Arguments{
		{Name: "clientState", Type: bytesType},
		{Name: "consensusState", Type: bytesType},
	}
)

// putUint128 writes v into a 16-byte big-endian 128-bit field. Values are
// bounded by types.MaxUnixTimestampNanos, so the upper 8 bytes stay zero.
func putUint128(dst []byte, v uint64) {
	binary.BigEndian.PutUint64(dst[8:16], v)
}

// parseUint128 reads a big-endian 128-bit field, rejecting values that do
// not fit the representable timestamp/duration range.
func parseUint128(src []byte) (uint64, error) {
	for _, b := range src[:8] {
		if b != 0 {
			return 0, errorsmod.Wrap(types.ErrTimestampOverflow, "128-bit field exceeds representable range")
		}
	}
	v := binary.BigEndian.Uint64(src[8:16])
	if v > types.MaxUnixTimestampNanos {
		return 0, errorsmod.Wrapf(types.ErrTimestampOverflow, "value %d exceeds maximum %d", v, types.MaxUnixTimestampNanos)
	}
	return v, nil
}

// HeightWord packs a height into a 32-byte word: bytes 16-23 hold the
// revision number, bytes 24-31 the revision height, both big-endian.
// The all-zero word stands for an absent height.
func HeightWord(h types.Height) [32]byte {
	var word [32]byte
	binary.BigEndian.PutUint64(word[16:24], h.RevisionNumber)
	binary.BigEndian.PutUint64(word[24:32], h.RevisionHeight)
	return word
}

// ParseHeightWord parses a height word. It returns nil for the all-zero
// word and fails on nonzero reserved bytes.
func ParseHeightWord(word [32]byte) (*types.Height, error) {
	for _, b := range word[:16] {
		if b != 0 {
			return nil, errorsmod.Wrap(ErrInvalidCommitment, "nonzero reserved bytes in height word")
		}
	}
	h := types.NewHeight(
		binary.BigEndian.Uint64(word[16:24]),
		binary.BigEndian.Uint64(word[24:32]),
	)
	if h.IsZero() {
		return nil, nil
	}
	return &h, nil
}
