package ssh

import (
	"strconv"

	"github.com/charmbracelet/ssh"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	gossh "golang.org/x/crypto/ssh"
)

var authCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "soft_orgs",
	Subsystem: "ssh",
	Name:      "auth_total",
	Help:      "The total number of auth requests by method",
}, []string{"method", "allowed"})

// Allowed reports whether pk may connect. Anyone may connect when no
// authorized keys are configured.
func (s *SSHServer) Allowed(pk ssh.PublicKey) bool {
	aks := s.cfg.AuthorizedKeys()
	if len(aks) == 0 {
		return true
	}
	if pk == nil {
		return false
	}
	for _, ak := range aks {
		if ssh.KeysEqual(pk, ak) {
			return true
		}
	}
	return false
}

// PublicKeyHandler handles public key authentication. The fingerprint of the
// accepted key is kept in the session permissions so the
// AuthenticationMiddleware can verify it.
func (s *SSHServer) PublicKeyHandler(ctx ssh.Context, pk ssh.PublicKey) bool {
	if pk == nil {
		return false
	}
	allowed := s.Allowed(pk)
	authCounter.WithLabelValues("publickey", strconv.FormatBool(allowed)).Inc()
	if allowed {
		setFingerprint(ctx, gossh.FingerprintSHA256(pk))
	}
	return allowed
}

// KeyboardInteractiveHandler handles keyboard interactive authentication.
// This is used after all public key authentication has failed, and only
// succeeds when anyone can connect.
func (s *SSHServer) KeyboardInteractiveHandler(ctx ssh.Context, _ gossh.KeyboardInteractiveChallenge) bool {
	allowed := len(s.cfg.AuthorizedKeys()) == 0
	authCounter.WithLabelValues("keyboard-interactive", strconv.FormatBool(allowed)).Inc()
	if allowed {
		// A key tried before does not authenticate this session.
		setFingerprint(ctx, "")
	}
	return allowed
}

func setFingerprint(ctx ssh.Context, fp string) {
	perms := ctx.Permissions()
	if perms == nil || perms.Permissions == nil {
		perms = &ssh.Permissions{Permissions: &gossh.Permissions{}}
	}
	if perms.Extensions == nil {
		perms.Extensions = make(map[string]string)
	}
	perms.Extensions["pubkey-fp"] = fp
	ctx.SetValue(ssh.ContextKeyPermissions, perms)
}
