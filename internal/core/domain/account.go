package domain

import (
	"errors"
	"sort"
	"strings"
)

// Role is a named permission grant attached to an account.
type Role string

const (
	RoleUser          Role = "USER"
	RoleModerator     Role = "MODERATOR"
	RoleAdministrator Role = "ADMINISTRATOR"
)

// AdminLogin is the account created by the startup bootstrap.
const AdminLogin = "admin"

var ErrAccountNotFound = errors.New("account not found")
var ErrAccountExists = errors.New("account already exists")
var ErrInvalidRole = errors.New("invalid role")

var knownRoles = map[Role]struct{}{
	RoleUser:          {},
	RoleModerator:     {},
	RoleAdministrator: {},
}

// ParseRole normalizes token to its canonical upper-case form and reports
// ErrInvalidRole when it does not name a known role.
func ParseRole(token string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(token)))
	if _, ok := knownRoles[r]; !ok {
		return "", ErrInvalidRole
	}
	return r, nil
}

// RoleSet is the set of roles held by one account.
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

// Add inserts r and reports whether the set changed.
func (s RoleSet) Add(r Role) bool {
	if _, ok := s[r]; ok {
		return false
	}
	s[r] = struct{}{}
	return true
}

// Remove deletes r and reports whether the set changed.
func (s RoleSet) Remove(r Role) bool {
	if _, ok := s[r]; !ok {
		return false
	}
	delete(s, r)
	return true
}

func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

// Strings returns the role names in lexical order.
func (s RoleSet) Strings() []string {
	out := make([]string, 0, len(s))
	for r := range s {
		out = append(out, string(r))
	}
	sort.Strings(out)
	return out
}

func (s RoleSet) Clone() RoleSet {
	c := make(RoleSet, len(s))
	for r := range s {
		c[r] = struct{}{}
	}
	return c
}

// Account is a registered user's credential and profile record.
// Login is the immutable unique key.
type Account struct {
	Login          string
	PasswordDigest string
	FirstName      string
	LastName       string
	Roles          RoleSet
}

// AddRole grants r and reports whether the role set changed.
func (a *Account) AddRole(r Role) bool {
	if a.Roles == nil {
		a.Roles = NewRoleSet()
	}
	return a.Roles.Add(r)
}

// RemoveRole revokes r and reports whether the role set changed.
func (a *Account) RemoveRole(r Role) bool {
	if a.Roles == nil {
		return false
	}
	return a.Roles.Remove(r)
}

func (a *Account) HasRole(r Role) bool {
	return a.Roles.Has(r)
}
