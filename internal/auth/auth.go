package auth

import (
	"crypto/subtle"

	"github.com/jadralna-sola/sailing-school-web/internal/config"
	"github.com/rs/zerolog"
)

// Realm is the value sent in the WWW-Authenticate challenge.
const Realm = "admin"

// Authenticator gates the admin surface with HTTP Basic credentials
// compared against the two configured secrets.
type Authenticator struct {
	cfg *config.Config
	log zerolog.Logger
}

func NewAuthenticator(cfg *config.Config, log zerolog.Logger) *Authenticator {
	if cfg.AdminUser == "" || cfg.AdminPass == "" {
		log.Warn().Msg("admin credentials not configured, admin routes will reject all requests")
	}
	return &Authenticator{cfg: cfg, log: log}
}

// validCredentials compares both values in constant time. Unconfigured
// credentials never match, so an empty ADMIN_PASS cannot be logged into.
func (a *Authenticator) validCredentials(user, pass string) bool {
	if a.cfg.AdminUser == "" || a.cfg.AdminPass == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(a.cfg.AdminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(a.cfg.AdminPass)) == 1
	return userOK && passOK
}
