package config

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/keygen"
	gossh "golang.org/x/crypto/ssh"
)

var (
	// ErrNilConfig is returned when a nil config is passed to a function.
	ErrNilConfig = errors.New("nil config")

	// ErrEmptySSHKeyPath is returned when the SSH key path is empty.
	ErrEmptySSHKeyPath = errors.New("empty SSH key path")
)

// KeyPair returns the server's SSH key pair, generating it on first use.
func KeyPair(cfg *Config) (*keygen.SSHKeyPair, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SSH.KeyPath == "" {
		return nil, ErrEmptySSHKeyPath
	}

	return keygen.New(cfg.SSH.KeyPath, keygen.WithKeyType(keygen.Ed25519), keygen.WithWrite())
}

// parseAuthKeys parses authorized keys from either file paths or string authorized_keys.
func parseAuthKeys(aks []string) []gossh.PublicKey {
	exist := make(map[string]struct{}, 0)
	pks := make([]gossh.PublicKey, 0)
	for _, key := range aks {
		if bts, err := os.ReadFile(key); err == nil {
			// key is a file
			key = strings.TrimSpace(string(bts))
		}

		if pk, _, _, _, err := gossh.ParseAuthorizedKey([]byte(key)); err == nil {
			ak := marshalAuthorizedKey(pk)
			if _, ok := exist[ak]; !ok {
				pks = append(pks, pk)
				exist[ak] = struct{}{}
			}
		}
	}
	return pks
}

// marshalAuthorizedKey returns the key in authorized_keys format, without
// comment or trailing newline.
func marshalAuthorizedKey(pk gossh.PublicKey) string {
	return strings.TrimSpace(string(gossh.MarshalAuthorizedKey(pk)))
}

// AuthorizedKeys returns the public keys allowed to connect. A nil slice
// means anyone can connect.
func (c *Config) AuthorizedKeys() []gossh.PublicKey {
	if len(c.SSH.AuthorizedKeys) == 0 {
		return nil
	}
	return parseAuthKeys(c.SSH.AuthorizedKeys)
}
