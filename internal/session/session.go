// Package session replaces the ambient AuthContext of the original UI
// with an explicitly passed value: acquired at program start, torn down
// at logout, never global.
package session

import "sync"

type User struct {
	ID     int64
	Nombre string
	Tipo   string // "admin" | "cliente"
}

type Session struct {
	mu   sync.Mutex
	user *User
}

func New() *Session { return &Session{} }

func (s *Session) Login(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
}

func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

// CurrentUser reports the established identity, if any.
func (s *Session) CurrentUser() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}
