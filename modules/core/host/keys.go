// Package host defines the store key paths under which client state is
// persisted, in the format "clients/{clientID}/{path}".
package host

import (
	"fmt"

	"github.com/teebridge/teelc/modules/types"
)

// KeyClientStorePrefix defines the KVStore key prefix for clients.
var KeyClientStorePrefix = []byte("clients")

const (
	KeyClientState          = "clientState"
	KeyClientType           = "clientType"
	KeyConsensusStatePrefix = "consensusStates"

	// KeyNextClientSequence is the key for the counter used to generate
	// client identifiers.
	KeyNextClientSequence = "nextClientSequence"
)

// FullClientPath returns the full path of a specific client path in the
// format "clients/{clientID}/{path}" as a string.
func FullClientPath(clientID string, path string) string {
	return fmt.Sprintf("%s/%s/%s", KeyClientStorePrefix, clientID, path)
}

// FullClientKey returns the full path of a specific client path in the
// format "clients/{clientID}/{path}" as a byte array.
func FullClientKey(clientID string, path []byte) []byte {
	return []byte(FullClientPath(clientID, string(path)))
}

// FullClientStatePath takes a client identifier and returns a path under
// which to store a particular client state.
func FullClientStatePath(clientID string) string {
	return FullClientPath(clientID, KeyClientState)
}

// FullClientStateKey takes a client identifier and returns a key under which
// to store a particular client state.
func FullClientStateKey(clientID string) []byte {
	return []byte(FullClientStatePath(clientID))
}

// FullClientTypePath takes a client identifier and returns a path under
// which to store the client's type.
func FullClientTypePath(clientID string) string {
	return FullClientPath(clientID, KeyClientType)
}

// FullClientTypeKey takes a client identifier and returns a key under which
// to store the client's type.
func FullClientTypeKey(clientID string) []byte {
	return []byte(FullClientTypePath(clientID))
}

// ConsensusStatePath returns the suffix store key for the consensus state at
// a particular height.
func ConsensusStatePath(height types.Height) string {
	return fmt.Sprintf("%s/%s", KeyConsensusStatePrefix, height)
}

// FullConsensusStatePath takes a client identifier and returns a path under
// which to store the consensus state of a client.
func FullConsensusStatePath(clientID string, height types.Height) string {
	return FullClientPath(clientID, ConsensusStatePath(height))
}

// FullConsensusStateKey returns the store key for the consensus state of a
// particular client.
func FullConsensusStateKey(clientID string, height types.Height) []byte {
	return []byte(FullConsensusStatePath(clientID, height))
}

// NextClientSequenceKey returns the store key for the client identifier
// counter.
func NextClientSequenceKey() []byte {
	return []byte(KeyNextClientSequence)
}

// FormatClientIdentifier returns the client identifier for the given client
// type and sequence.
func FormatClientIdentifier(clientType string, sequence uint64) string {
	return fmt.Sprintf("%s-%d", clientType, sequence)
}
