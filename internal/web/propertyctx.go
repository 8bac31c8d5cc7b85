package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

const (
	PropertyHeader = "X-Property-ID"
	propertyCookie = "pms_property"
	cookieMaxAge   = 30 * 24 * time.Hour
)

// PropertyContext remembers which property a client is working on in a
// signed cookie.
type PropertyContext struct {
	sc *securecookie.SecureCookie
}

// NewPropertyContext signs with hashKey and, when blockKey is set, encrypts
// with it too.
func NewPropertyContext(hashKey, blockKey []byte) *PropertyContext {
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(int(cookieMaxAge.Seconds()))
	return &PropertyContext{sc: sc}
}

func (pc *PropertyContext) Set(w http.ResponseWriter, r *http.Request, id uuid.UUID) error {
	encoded, err := pc.sc.Encode(propertyCookie, id.String())
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     propertyCookie,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
		MaxAge:   int(cookieMaxAge.Seconds()),
	})
	return nil
}

func (pc *PropertyContext) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     propertyCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// FromRequest returns the property named by the X-Property-ID header, or
// failing that by the signed cookie. A nil PropertyContext only reads the
// header.
func (pc *PropertyContext) FromRequest(r *http.Request) (uuid.UUID, bool) {
	if h := strings.TrimSpace(r.Header.Get(PropertyHeader)); h != "" {
		id, err := uuid.Parse(h)
		return id, err == nil
	}
	if pc == nil {
		return uuid.Nil, false
	}
	c, err := r.Cookie(propertyCookie)
	if err != nil {
		return uuid.Nil, false
	}
	var raw string
	if err := pc.sc.Decode(propertyCookie, c.Value, &raw); err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	return id, err == nil
}
