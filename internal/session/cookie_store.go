package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ikkim/cafe-backend/pkg/logger"
)

// CookieStore keeps the whole session client-side in an HS256-signed JWT
type CookieStore struct {
	secret []byte
	maxAge time.Duration
	secure bool
}

type sessionClaims struct {
	payload
	jwt.RegisteredClaims
}

func NewCookieStore(secret string, maxAge time.Duration, secure bool) *CookieStore {
	return &CookieStore{
		secret: []byte(secret),
		maxAge: maxAge,
		secure: secure,
	}
}

// Load never fails on a bad cookie; a tampered or expired cookie yields a
// fresh session.
func (s *CookieStore) Load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return New(), nil
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Debug("Session cookie expired")
		} else {
			logger.Warn("Discarding invalid session cookie", map[string]interface{}{
				"error": fmt.Sprint(err),
			})
		}
		return New(), nil
	}

	return fromPayload("", claims.payload), nil
}

func (s *CookieStore) Save(w http.ResponseWriter, r *http.Request, sess *Session) error {
	if sess.Empty() {
		expireCookie(w, s.secure)
		sess.markClean()
		return nil
	}

	now := time.Now()
	claims := sessionClaims{
		payload: sess.toPayload(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.maxAge)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}

	setCookie(w, signed, s.maxAge, s.secure)
	sess.markClean()
	return nil
}

func setCookie(w http.ResponseWriter, value string, maxAge time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func expireCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
