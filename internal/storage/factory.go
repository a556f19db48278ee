package storage

import "fmt"

// StoreType selects a persistence backend.
type StoreType string

const (
	MemoryStoreType StoreType = "memory"
	JSONStoreType   StoreType = "json"
)

// Config selects and configures a persistence backend.
type Config struct {
	Type StoreType
	Path string // used by the JSON store
}

// New creates a store from the given configuration.
func New(config Config) (Store, error) {
	switch config.Type {
	case MemoryStoreType:
		return NewMemoryStore(), nil
	case JSONStoreType:
		if config.Path == "" {
			return nil, fmt.Errorf("file path is required for JSON storage")
		}
		return NewJSONStore(config.Path)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", config.Type)
	}
}
