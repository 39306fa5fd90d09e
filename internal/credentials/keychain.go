package credentials

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"

	"github.com/rs/zerolog"
)

// DefaultKeychainService is the generic-password service name used on macOS.
const DefaultKeychainService = "hax-poster-linkedin"

// security(1) exits with 44 when the requested item does not exist.
const securityItemNotFound = 44

var errKeychainItemNotFound = errors.New("keychain item not found")

type securityRunner func(args ...string) ([]byte, error)

// KeychainStore keeps the credential record as a generic password in the
// macOS login keychain, driven through the security CLI.
type KeychainStore struct {
	Service string
	Account string
	run     securityRunner
	logger  *zerolog.Logger
}

// NewKeychainStore creates a keychain-backed store for the given service name
func NewKeychainStore(service string, logger zerolog.Logger) *KeychainStore {
	if service == "" {
		service = DefaultKeychainService
	}
	return &KeychainStore{
		Service: service,
		Account: "hax-poster",
		run:     runSecurity,
		logger:  &logger,
	}
}

func (k *KeychainStore) Load() (*Record, error) {
	output, err := k.run("find-generic-password", "-s", k.Service, "-w")
	if errors.Is(err, errKeychainItemNotFound) {
		return nil, fmt.Errorf("%w: no keychain item %q", ErrNotConfigured, k.Service)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve password from Keychain: %w", err)
	}
	return decodeRecord(bytes.TrimSpace(output))
}

// Save replaces the keychain item in a single add-generic-password -U call.
func (k *KeychainStore) Save(rec *Record) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	if _, err := k.run("add-generic-password", "-s", k.Service, "-a", k.Account, "-w", string(data), "-U"); err != nil {
		return fmt.Errorf("failed to update keychain: %w", err)
	}

	if k.logger != nil {
		k.logger.Debug().Str("service", k.Service).Msg("🔑 Stored credentials in keychain")
	}
	return nil
}

func runSecurity(args ...string) ([]byte, error) {
	output, err := exec.Command("security", args...).Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == securityItemNotFound {
		return nil, errKeychainItemNotFound
	}
	return output, err
}
