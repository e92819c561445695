package storage

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/stroyservice/intake-system/internal/core/domain"
)

// roleDocument mirrors the on-disk layout of the role sets.
type roleDocument struct {
	Developers []int64 `json:"DEVELOPERS"`
	Admins     []int64 `json:"ADMINS"`
	Users      []int64 `json:"USERS"`
}

func (d *roleDocument) set(role domain.Role) *[]int64 {
	switch role {
	case domain.RoleDeveloper:
		return &d.Developers
	case domain.RoleAdmin:
		return &d.Admins
	default:
		return &d.Users
	}
}

// RoleStore is a file-backed role registry. Every operation loads a fresh
// snapshot of the document and every mutation rewrites it whole; the mutex is
// the single serialization point for concurrent handlers.
type RoleStore struct {
	path string
	mu   sync.Mutex
	log  zerolog.Logger
}

func NewRoleStore(path string, log zerolog.Logger) *RoleStore {
	return &RoleStore{path: path, log: log}
}

// load reads the backing document. A missing or corrupt file yields an empty
// registry: the store fails open to an empty-but-valid state, never an error.
func (s *RoleStore) load() roleDocument {
	var doc roleDocument
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("failed to read role document, treating as empty")
		}
		return doc
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("corrupt role document, treating as empty")
		return roleDocument{}
	}
	return doc
}

func (s *RoleStore) save(doc roleDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Resolve returns the highest-privilege role granted to id, or guest.
func (s *RoleStore) Resolve(_ context.Context, id int64) domain.Role {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	switch {
	case contains(doc.Developers, id):
		return domain.RoleDeveloper
	case contains(doc.Admins, id):
		return domain.RoleAdmin
	case contains(doc.Users, id):
		return domain.RoleUser
	}
	return domain.RoleGuest
}

// Grant adds id to the given role set. Granting an already held role is a
// no-op.
func (s *RoleStore) Grant(_ context.Context, id int64, role domain.Role) error {
	if !role.Grantable() {
		return domain.ErrUnknownRole
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	set := doc.set(role)
	if contains(*set, id) {
		return nil
	}
	*set = append(*set, id)
	return s.save(doc)
}

// Revoke removes id from a single role set.
func (s *RoleStore) Revoke(_ context.Context, id int64, role domain.Role) (bool, error) {
	if !role.Grantable() {
		return false, domain.ErrUnknownRole
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	set := doc.set(role)
	next, removed := remove(*set, id)
	if !removed {
		return false, nil
	}
	*set = next
	return true, s.save(doc)
}

// RevokeAll removes id from every role set it belongs to.
func (s *RoleStore) RevokeAll(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	removedAny := false
	for _, set := range []*[]int64{&doc.Users, &doc.Admins, &doc.Developers} {
		next, removed := remove(*set, id)
		if removed {
			*set = next
			removedAny = true
		}
	}
	if !removedAny {
		return false, nil
	}
	return true, s.save(doc)
}

// List returns a snapshot of every role set.
func (s *RoleStore) List(_ context.Context) (map[domain.Role][]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	return map[domain.Role][]int64{
		domain.RoleDeveloper: append([]int64(nil), doc.Developers...),
		domain.RoleAdmin:     append([]int64(nil), doc.Admins...),
		domain.RoleUser:      append([]int64(nil), doc.Users...),
	}, nil
}

func contains(set []int64, id int64) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

func remove(set []int64, id int64) ([]int64, bool) {
	for i, v := range set {
		if v == id {
			return append(set[:i:i], set[i+1:]...), true
		}
	}
	return set, false
}
