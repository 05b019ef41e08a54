// Package store defines the key/value store abstraction the enclave host
// provides for client and consensus state persistence. The host is
// responsible for its own concurrency discipline (per-client-ID
// serialization of updates).
package store

// KVStore is the minimal key/value capability the core requires.
type KVStore interface {
	// Get returns the value for the given key, or nil if absent.
	Get(key []byte) []byte

	// Set stores the value under the given key.
	Set(key, value []byte)

	// Delete removes the value under the given key, if any.
	Delete(key []byte)
}

// MemStore is an in-memory KVStore used by tests and single-process hosts.
type MemStore struct {
	kv map[string][]byte
}

var _ KVStore = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{kv: make(map[string][]byte)}
}

// Get implements KVStore.
func (s *MemStore) Get(key []byte) []byte {
	return s.kv[string(key)]
}

// Set implements KVStore.
func (s *MemStore) Set(key, value []byte) {
	s.kv[string(key)] = value
}

// Delete implements KVStore.
func (s *MemStore) Delete(key []byte) {
	delete(s.kv, string(key))
}
