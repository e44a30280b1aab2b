package flash

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// DefaultCookieName names the session cookie when none is configured.
const DefaultCookieName = "mediaui_session"

// Sessions binds a Store to browser sessions identified by a uuid cookie.
type Sessions struct {
	Store      *Store
	CookieName string
	// Secure marks the cookie as HTTPS only.
	Secure bool
}

// NewSessions returns sessions backed by store.
func NewSessions(store *Store, cookieName string) *Sessions {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &Sessions{Store: store, CookieName: cookieName}
}

// ID returns the session id of the request, issuing a new cookie when the
// request has none or carries an invalid one.
func (s *Sessions) ID(w http.ResponseWriter, r *http.Request) string {
	if id, ok := s.Lookup(r); ok {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     s.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
	})
	return id
}

// Take reads and clears the pending message of the request's session.
func (s *Sessions) Take(r *http.Request) (string, bool) {
	id, ok := s.Lookup(r)
	if !ok {
		return "", false
	}
	return s.Store.Take(id)
}

// Queue returns a message queue bound to the request's session.
func (s *Sessions) Queue(w http.ResponseWriter, r *http.Request) *RequestQueue {
	return &RequestQueue{sessions: s, w: w, r: r}
}

// Lookup returns the valid session id carried by the request, if any.
func (s *Sessions) Lookup(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(s.CookieName)
	if err != nil {
		return "", false
	}
	parsed, err := uuid.Parse(cookie.Value)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

// RequestQueue queues a message for the next page load of one session.
type RequestQueue struct {
	sessions *Sessions
	w        http.ResponseWriter
	r        *http.Request
}

// SetForNextPageLoad stores message under the request's session.
func (q *RequestQueue) SetForNextPageLoad(message string) {
	q.sessions.Store.Set(q.sessions.ID(q.w, q.r), message)
}
