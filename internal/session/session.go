// Package session persists the client's authentication, registration and
// pending-edit state in a key-value store that survives reloads.
package session

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/eventdesk/internal/model"
)

// Storage keys, shared with the browser build's localStorage layout.
const (
	KeyAuth        = "Auth"
	KeyRegister    = "Register"
	KeyRole        = "role"
	KeyUserName    = "userName"
	KeyEditEventID = "editEventId"
)

// KV is a string key-value store. Get reports ok=false for absent keys.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// State is a snapshot of the session. Role and UserName are meaningful only
// while Authenticated is true.
type State struct {
	Authenticated bool
	Registering   bool
	Role          model.Role
	UserName      string
	PendingEditID string
}

// Login returns s authenticated as name with role.
func (s State) Login(role model.Role, name string) State {
	s.Authenticated = true
	s.Role = role
	s.UserName = name
	return s
}

// LoggedOut clears authentication, role and user name. Registration and
// pending-edit state are kept.
func (s State) LoggedOut() State {
	s.Authenticated = false
	s.Role = model.RoleNone
	s.UserName = ""
	return s
}

// WithRegistering sets the registration flag.
func (s State) WithRegistering(on bool) State {
	s.Registering = on
	return s
}

// WithPendingEdit sets the event selected for editing; "" clears it.
func (s State) WithPendingEdit(id string) State {
	s.PendingEditID = id
	return s
}

// Store reads and writes State through a KV. Writes are immediately durable.
type Store struct {
	kv  KV
	log *zap.Logger
}

// NewStore constructs a Store over kv.
func NewStore(kv KV, log *zap.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// Load reads the full state. Absent keys and read failures yield defaults.
func (s *Store) Load() State {
	return State{
		Authenticated: s.get(KeyAuth) == "true",
		Registering:   s.get(KeyRegister) == "true",
		Role:          model.ParseRole(s.get(KeyRole)),
		UserName:      s.get(KeyUserName),
		PendingEditID: s.get(KeyEditEventID),
	}
}

// Save writes every key of st. Empty optional values are removed.
func (s *Store) Save(st State) error {
	if err := s.setBool(KeyAuth, st.Authenticated); err != nil {
		return err
	}
	if err := s.setBool(KeyRegister, st.Registering); err != nil {
		return err
	}
	if err := s.setOrRemove(KeyRole, string(st.Role)); err != nil {
		return err
	}
	if err := s.setOrRemove(KeyUserName, st.UserName); err != nil {
		return err
	}
	return s.setOrRemove(KeyEditEventID, st.PendingEditID)
}

// IsAuthenticated reports whether a user is signed in.
func (s *Store) IsAuthenticated() bool { return s.get(KeyAuth) == "true" }

// IsRegistering reports whether the registration flow is active.
func (s *Store) IsRegistering() bool { return s.get(KeyRegister) == "true" }

// SetAuthenticated records the authentication flag.
func (s *Store) SetAuthenticated(on bool) error { return s.setBool(KeyAuth, on) }

// SetRole records the signed-in user's role.
func (s *Store) SetRole(r model.Role) error { return s.setOrRemove(KeyRole, string(r)) }

// SetUserName records the signed-in user's display name.
func (s *Store) SetUserName(name string) error { return s.setOrRemove(KeyUserName, name) }

// BeginRegistration enters the registration flow.
func (s *Store) BeginRegistration() error { return s.setBool(KeyRegister, true) }

// EndRegistration leaves the registration flow.
func (s *Store) EndRegistration() error { return s.setBool(KeyRegister, false) }

// SetPendingEdit stashes the id of the event to edit.
func (s *Store) SetPendingEdit(id string) error { return s.setOrRemove(KeyEditEventID, id) }

// PendingEdit returns the stashed event id, "" if none.
func (s *Store) PendingEdit() string { return s.get(KeyEditEventID) }

// ClearPendingEdit drops the stashed event id.
func (s *Store) ClearPendingEdit() error { return s.remove(KeyEditEventID) }

// Logout clears authentication, role and user name.
func (s *Store) Logout() error {
	if err := s.setBool(KeyAuth, false); err != nil {
		return err
	}
	if err := s.remove(KeyRole); err != nil {
		return err
	}
	return s.remove(KeyUserName)
}

func (s *Store) get(key string) string {
	v, ok, err := s.kv.Get(key)
	if err != nil {
		s.log.Warn("session read failed", zap.String("key", key), zap.Error(err))
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

func (s *Store) setBool(key string, on bool) error {
	v := "false"
	if on {
		v = "true"
	}
	if err := s.kv.Set(key, v); err != nil {
		return fmt.Errorf("session set %s: %w", key, err)
	}
	return nil
}

func (s *Store) setOrRemove(key, value string) error {
	if value == "" {
		return s.remove(key)
	}
	if err := s.kv.Set(key, value); err != nil {
		return fmt.Errorf("session set %s: %w", key, err)
	}
	return nil
}

func (s *Store) remove(key string) error {
	if err := s.kv.Remove(key); err != nil {
		return fmt.Errorf("session remove %s: %w", key, err)
	}
	return nil
}
