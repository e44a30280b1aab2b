package pages

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// CSRFField is the hidden input carrying the form token.
const CSRFField = "_csrf"

// CSRF issues and checks form tokens bound to a session id.
type CSRF struct {
	secret []byte
}

// NewCSRF returns a token issuer keyed by secret. An empty secret is
// replaced by a random one, so tokens do not survive a restart.
func NewCSRF(secret []byte) *CSRF {
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			panic("pages: read random csrf secret: " + err.Error())
		}
	}
	return &CSRF{secret: append([]byte(nil), secret...)}
}

// Token returns the token for session.
func (c *CSRF) Token(session string) string {
	return hex.EncodeToString(c.sum(session))
}

// Valid reports whether token was issued for session.
func (c *CSRF) Valid(session, token string) bool {
	if session == "" || token == "" {
		return false
	}
	raw, err := hex.DecodeString(token)
	if err != nil {
		return false
	}
	return hmac.Equal(raw, c.sum(session))
}

func (c *CSRF) sum(session string) []byte {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(session))
	return mac.Sum(nil)
}
