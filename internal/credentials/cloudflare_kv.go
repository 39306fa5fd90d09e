//go:build js && wasm

package credentials

import (
	"fmt"

	"github.com/syumai/workers/cloudflare/kv"
)

const kvCredentialsKey = "linkedin_credentials"

// KVStore keeps the credential record in a Cloudflare Workers KV namespace
type KVStore struct {
	kvStore *kv.Namespace
}

// NewKVStore binds to the KV namespace configured in wrangler.toml
func NewKVStore(binding string) (*KVStore, error) {
	kvStore, err := kv.NewNamespace(binding)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize KV namespace: %w", err)
	}
	return &KVStore{kvStore: kvStore}, nil
}

func (c *KVStore) Load() (*Record, error) {
	credsJSON, err := c.kvStore.GetString(kvCredentialsKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get credentials from KV: %w", err)
	}

	if credsJSON == "" {
		return nil, fmt.Errorf("%w: no credentials found in KV", ErrNotConfigured)
	}

	return decodeRecord([]byte(credsJSON))
}

func (c *KVStore) Save(rec *Record) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	if err := c.kvStore.PutString(kvCredentialsKey, string(data), nil); err != nil {
		return fmt.Errorf("failed to store credentials in KV: %w", err)
	}

	return nil
}
