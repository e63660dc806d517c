// Package identity holds who is acting on a request and lets dependent views
// react when that changes.
package identity

import (
	"sync"

	authdomain "mindmaker-backend/internal/auth/domain"
)

// Identity is the acting user. The zero value is an anonymous caller.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

// Anonymous is the identity of an unauthenticated caller.
var Anonymous = Identity{}

// FromUser builds the identity of an authenticated user. A nil user is anonymous.
func FromUser(user *authdomain.User) Identity {
	if user == nil {
		return Anonymous
	}
	return Identity{UserID: user.ID, Email: user.Email, Name: user.Name}
}

// Authenticated reports whether the identity belongs to a signed-in user.
func (i Identity) Authenticated() bool {
	return i.UserID != ""
}

// Store is the current identity plus its subscribers. It is established when a
// session starts, changes on sign-in and sign-out, and is dropped with the view
// that owns it.
type Store struct {
	mu      sync.RWMutex
	current Identity
	nextID  int
	subs    map[int]func(Identity)
}

func NewStore(initial Identity) *Store {
	return &Store{
		current: initial,
		subs:    make(map[int]func(Identity)),
	}
}

func (s *Store) Current() Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set replaces the identity and notifies subscribers when it changed.
func (s *Store) Set(id Identity) {
	s.mu.Lock()
	if s.current == id {
		s.mu.Unlock()
		return
	}
	s.current = id
	subs := make([]func(Identity), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(id)
	}
}

// Clear signs the identity out.
func (s *Store) Clear() {
	s.Set(Anonymous)
}

// Subscribe registers fn for identity changes. The returned function removes it.
func (s *Store) Subscribe(fn func(Identity)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Sessions hands out one Store per signed-in user, so every view opened for
// that user sees the same sign-in and sign-out events. Anonymous callers get a
// private Store.
type Sessions struct {
	mu      sync.Mutex
	entries map[string]*session
}

type session struct {
	store *Store
	refs  int
}

func NewSessions() *Sessions {
	return &Sessions{entries: make(map[string]*session)}
}

// Acquire returns the Store for who and a release func that must be called
// when the caller is done with it. Acquiring a signed-out user's Store signs
// it back in, which notifies the views still holding it.
func (s *Sessions) Acquire(who Identity) (*Store, func()) {
	if !who.Authenticated() {
		return NewStore(who), func() {}
	}

	s.mu.Lock()
	e, ok := s.entries[who.UserID]
	if !ok {
		e = &session{store: NewStore(who)}
		s.entries[who.UserID] = e
	}
	e.refs++
	s.mu.Unlock()

	e.store.Set(who)

	var once sync.Once
	return e.store, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			e.refs--
			if e.refs == 0 && s.entries[who.UserID] == e {
				delete(s.entries, who.UserID)
			}
		})
	}
}

// SignOut clears the Store of userID if anything still holds it.
func (s *Sessions) SignOut(userID string) {
	s.mu.Lock()
	e, ok := s.entries[userID]
	s.mu.Unlock()
	if ok {
		e.store.Clear()
	}
}

// Active is the number of users with a live Store.
func (s *Sessions) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
