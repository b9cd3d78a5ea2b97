package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/cafe-backend/internal/app/model"
	"github.com/ikkim/cafe-backend/internal/session"
)

// Context keys for request-scoped session state
const (
	SessionKey      = "session"
	CurrentUserKey  = "current_user"
	sessionStoreKey = "session_store"
)

// UserLoader resolves the user id stored in the session
type UserLoader interface {
	GetUserByID(id uint) (*model.User, error)
}

type SessionMiddleware struct {
	store session.Store
	users UserLoader
}

func NewSessionMiddleware(store session.Store, users UserLoader) *SessionMiddleware {
	return &SessionMiddleware{
		store: store,
		users: users,
	}
}

// Load attaches the session and the current user, if any, to the request.
// It runs before every guard. A session whose user no longer exists is
// treated as logged out.
func (m *SessionMiddleware) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		sess, err := m.store.Load(c.Request)
		if err != nil {
			log.Error("Failed to load session", err)
			sess = session.New()
		}
		c.Set(SessionKey, sess)
		c.Set(sessionStoreKey, m.store)

		if userID, ok := sess.UserID(); ok {
			user, err := m.users.GetUserByID(userID)
			if err != nil {
				log.Warn("Session user not found, clearing login", map[string]interface{}{
					"user_id": userID,
					"error":   err.Error(),
				})
				sess.Delete(session.CurrUserKey)
			} else {
				c.Set(CurrentUserKey, user)
			}
		}

		c.Next()

		// handlers save before writing; this covers responses that never
		// wrote a body
		if sess.Dirty() && !c.Writer.Written() {
			if err := m.store.Save(c.Writer, c.Request, sess); err != nil {
				log.Error("Failed to save session", err)
			}
		}
	}
}

// GetSession returns the request session, or a detached empty one when the
// session middleware did not run
func GetSession(c *gin.Context) *session.Session {
	if v, exists := c.Get(SessionKey); exists {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	sess := session.New()
	c.Set(SessionKey, sess)
	return sess
}

// SaveSession persists pending session changes. Call it before writing the
// response so the cookie header is still writable.
func SaveSession(c *gin.Context) error {
	sess := GetSession(c)
	if !sess.Dirty() {
		return nil
	}
	v, exists := c.Get(sessionStoreKey)
	if !exists {
		return nil
	}
	store, ok := v.(session.Store)
	if !ok {
		return nil
	}
	return store.Save(c.Writer, c.Request, sess)
}

// CurrentUser returns the logged-in user for this request
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*model.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// Login records user as logged in for this and later requests
func Login(c *gin.Context, user *model.User) {
	GetSession(c).SetUserID(user.ID)
	c.Set(CurrentUserKey, user)
}

// Logout is a no-op when nobody is logged in
func Logout(c *gin.Context) {
	GetSession(c).Delete(session.CurrUserKey)
	c.Set(CurrentUserKey, (*model.User)(nil))
}

// Flash queues a message for the next rendered page
func Flash(c *gin.Context, category, message string) {
	GetSession(c).AddFlash(category, message)
}

// Redirect saves the session then sends a 302
func Redirect(c *gin.Context, location string) {
	if err := SaveSession(c); err != nil {
		GetLoggerFromContext(c).Error("Failed to save session", err)
	}
	c.Redirect(http.StatusFound, location)
}
