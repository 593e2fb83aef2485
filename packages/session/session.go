package session

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/l3montree-dev/honeypot-dashboard/packages/metrics"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// keys of the values a client keeps for its session
const (
	KeyIsLoggedIn = "isLoggedIn"
	KeyUserRole   = "userRole"
	KeyUsername   = "username"
	KeyToken      = "token"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Account struct {
	Username string
	Password string
	Role     Role
}

// DefaultAccounts are the two demo logins of the dashboard.
func DefaultAccounts() []Account {
	return []Account{
		{Username: "admin", Password: "admin123", Role: RoleAdmin},
		{Username: "user", Password: "user123", Role: RoleUser},
	}
}

// Session replaces the loose client side flags with one object.
type Session struct {
	LoggedIn bool   `json:"isLoggedIn"`
	Role     Role   `json:"userRole"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

func (s Session) IsAdmin() bool {
	return s.LoggedIn && s.Role == RoleAdmin
}

// Values returns the session as client storage entries.
func (s Session) Values() map[string]string {
	return map[string]string{
		KeyIsLoggedIn: strconv.FormatBool(s.LoggedIn),
		KeyUserRole:   string(s.Role),
		KeyUsername:   s.Username,
		KeyToken:      s.Token,
	}
}

// FromValues reads a session from client storage entries. A missing role
// means user.
func FromValues(values map[string]string) Session {
	role := Role(values[KeyUserRole])
	if role == "" {
		role = RoleUser
	}
	return Session{
		LoggedIn: values[KeyIsLoggedIn] == "true",
		Role:     role,
		Username: values[KeyUsername],
		Token:    values[KeyToken],
	}
}

type credential struct {
	hash []byte
	role Role
}

// Authenticator checks logins against a fixed set of accounts.
type Authenticator struct {
	credentials map[string]credential
}

func NewAuthenticator(accounts ...Account) (*Authenticator, error) {
	credentials := make(map[string]credential, len(accounts))
	for _, account := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("could not hash password of %s: %w", account.Username, err)
		}
		credentials[account.Username] = credential{hash: hash, role: account.Role}
	}
	return &Authenticator{credentials: credentials}, nil
}

func (a *Authenticator) Authenticate(username, password string) (Role, error) {
	cred, ok := a.credentials[username]
	if !ok {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(cred.hash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return cred.role, nil
}

// Manager keeps logged in sessions by token. Sessions do not expire.
type Manager struct {
	auth     *Authenticator
	sessions map[string]Session
	lock     sync.RWMutex
}

func NewManager(auth *Authenticator) *Manager {
	return &Manager{
		auth:     auth,
		sessions: make(map[string]Session),
	}
}

func (m *Manager) Login(username, password string) (Session, error) {
	role, err := m.auth.Authenticate(username, password)
	if err != nil {
		return Session{}, err
	}
	s := Session{
		LoggedIn: true,
		Role:     role,
		Username: username,
		Token:    uuid.New().String(),
	}

	m.lock.Lock()
	m.sessions[s.Token] = s
	count := len(m.sessions)
	m.lock.Unlock()

	metrics.SetActiveSessions(count)
	return s, nil
}

func (m *Manager) Lookup(token string) (Session, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	s, ok := m.sessions[token]
	return s, ok
}

// Logout removes the session. It reports whether the token was known.
func (m *Manager) Logout(token string) bool {
	m.lock.Lock()
	_, ok := m.sessions[token]
	delete(m.sessions, token)
	count := len(m.sessions)
	m.lock.Unlock()

	metrics.SetActiveSessions(count)
	return ok
}

func (m *Manager) Count() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.sessions)
}
