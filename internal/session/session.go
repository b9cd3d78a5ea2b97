package session

import (
	"net/http"
	"strconv"
)

// CurrUserKey holds the logged-in user's id
const CurrUserKey = "curr_user"

// CookieName is the cookie carrying the session (or its id)
const CookieName = "session"

// Flash is a one-shot message shown on the next rendered page
type Flash struct {
	Category string `json:"category"` // success, danger, info
	Message  string `json:"message"`
}

// Store loads and persists sessions for a request
type Store interface {
	Load(r *http.Request) (*Session, error)
	Save(w http.ResponseWriter, r *http.Request, s *Session) error
}

// Session is request-scoped state. It is not safe for concurrent use.
type Session struct {
	id      string
	values  map[string]string
	flashes []Flash
	dirty   bool
}

type payload struct {
	Values  map[string]string `json:"values,omitempty"`
	Flashes []Flash           `json:"flashes,omitempty"`
}

func New() *Session {
	return &Session{values: map[string]string{}}
}

func fromPayload(id string, p payload) *Session {
	s := New()
	s.id = id
	for k, v := range p.Values {
		s.values[k] = v
	}
	s.flashes = append(s.flashes, p.Flashes...)
	return s
}

func (s *Session) toPayload() payload {
	return payload{Values: s.values, Flashes: s.flashes}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *Session) Set(key, value string) {
	s.values[key] = value
	s.dirty = true
}

// Delete removes key; deleting an absent key is a no-op
func (s *Session) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.dirty = true
}

// UserID returns the logged-in user id, if any
func (s *Session) UserID() (uint, bool) {
	raw, ok := s.values[CurrUserKey]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (s *Session) SetUserID(id uint) {
	s.Set(CurrUserKey, strconv.FormatUint(uint64(id), 10))
}

func (s *Session) AddFlash(category, message string) {
	s.flashes = append(s.flashes, Flash{Category: category, Message: message})
	s.dirty = true
}

// PopFlashes returns pending flashes and clears them
func (s *Session) PopFlashes() []Flash {
	if len(s.flashes) == 0 {
		return nil
	}
	out := s.flashes
	s.flashes = nil
	s.dirty = true
	return out
}

// Dirty reports whether the session changed since it was loaded
func (s *Session) Dirty() bool {
	return s.dirty
}

// Empty reports whether there is nothing worth persisting
func (s *Session) Empty() bool {
	return len(s.values) == 0 && len(s.flashes) == 0
}

func (s *Session) markClean() {
	s.dirty = false
}
