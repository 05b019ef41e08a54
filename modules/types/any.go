package types

import (
	"github.com/cosmos/gogoproto/proto"
	gogotypes "github.com/cosmos/gogoproto/types"
)

// Any is the type-tagged opaque byte representation used for every client
// and consensus state crossing a module boundary. Concrete light-client
// state types are only materialized inside their owning implementation.
type Any = gogotypes.Any

// NewAny wraps the given encoded value with its type URL.
func NewAny(typeURL string, value []byte) Any {
	return Any{
		TypeUrl: typeURL,
		Value:   value,
	}
}

// MarshalAny deterministically serializes an Any so that content hashes
// derived from it are stable across processes.
func MarshalAny(a Any) ([]byte, error) {
	return proto.Marshal(&a)
}

// UnmarshalAny parses the wire form produced by MarshalAny.
func UnmarshalAny(bz []byte) (Any, error) {
	var a Any
	if err := proto.Unmarshal(bz, &a); err != nil {
		return Any{}, err
	}
	return a, nil
}
