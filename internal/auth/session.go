package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/karanvs/se-portal/internal/models"
	"github.com/rs/zerolog/log"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "session"

const (
	sessionTTL  = 24 * time.Hour
	rememberTTL = 30 * 24 * time.Hour
)

// Claims defines the session token claims.
type Claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

type contextKey string

// userKey is the context key for the resolved current user.
const userKey = contextKey("currentUser")

// UserLoader resolves a session-embedded user id to a full User.
type UserLoader interface {
	GetUserByID(id int64) (models.User, error)
}

// Manager issues and validates client-held session tokens. Sessions are
// stateless on the server: the cookie is the only session storage, signed so
// it is tamper-evident.
type Manager struct {
	secret []byte
	users  UserLoader
}

// NewManager creates a session Manager signing tokens with secret and
// resolving users through the given loader.
func NewManager(secret []byte, users UserLoader) *Manager {
	return &Manager{secret: secret, users: users}
}

// Issue establishes a session for the user. With remember set the cookie
// persists across browser restarts; otherwise it lasts only for the current
// browser session, with the token itself expiring after a day.
func (m *Manager) Issue(w http.ResponseWriter, user models.User, remember bool) error {
	ttl := sessionTTL
	if remember {
		ttl = rememberTTL
	}

	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}

	cookie := &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	}
	if remember {
		cookie.Expires = now.Add(ttl)
	}
	http.SetCookie(w, cookie)
	return nil
}

// Clear tears down the session by expiring its cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
}

// validate parses and verifies a session token string.
func (m *Manager) validate(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return claims, nil
}

// Middleware resolves the current user from the session cookie, if any, and
// stores it in the request context. A missing, invalid or stale session is
// treated as an anonymous visitor, never as an error.
func (m *Manager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := m.validate(cookie.Value)
			if err != nil {
				log.Debug().Err(err).Msg("Rejected session token")
				next.ServeHTTP(w, r)
				return
			}

			// The account may have disappeared since the token was issued
			user, err := m.users.GetUserByID(claims.UserID)
			if err != nil {
				log.Debug().Err(err).Int64("user_id", claims.UserID).Msg("Session user not found")
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser guards a route: anonymous visitors are redirected to the
// homepage instead of reaching the handler.
func (m *Manager) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r.Context()); !ok {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentUser returns the authenticated user carried by ctx, if any.
func CurrentUser(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}

// WithUser returns a context carrying user as the authenticated user.
// Exported for handler tests.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}
