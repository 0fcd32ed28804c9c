package auth_test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"news-portal/internal/domain/entity"
)

type stubUsers struct {
	mu    sync.Mutex
	next  int
	byID  map[entity.UserID]*entity.User
	err   error
	calls int
}

func newStubUsers() *stubUsers {
	return &stubUsers{byID: map[entity.UserID]*entity.User{}}
}

func (s *stubUsers) Create(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return s.err
	}
	for _, existing := range s.byID {
		if existing.Email == strings.ToLower(u.Email) {
			return entity.ErrDuplicateEmail
		}
	}
	s.next++
	u.ID = entity.UserID(fmt.Sprintf("u%d", s.next))
	c := *u
	s.byID[u.ID] = &c
	return nil
}

func (s *stubUsers) FindByID(_ context.Context, id entity.UserID) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (s *stubUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.byID {
		if u.Email == strings.ToLower(email) {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}
