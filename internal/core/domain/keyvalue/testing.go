package keyvalue

import (
	"context"
	"sync"
)

type FakeStore struct {
	GetError error
	SetError error
	DelError error
	values   map[string][]byte
	lock     sync.Mutex
}

func NewFakeStore() *FakeStore {
	return &FakeStore{values: make(map[string][]byte)}
}

func (s *FakeStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.GetError != nil {
		return nil, s.GetError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	value, ok := s.values[key]
	if !ok {
		return nil, ErrKeyDoesNotExist
	}
	return value, nil
}

func (s *FakeStore) Set(ctx context.Context, key string, value []byte) error {
	if s.SetError != nil {
		return s.SetError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.values[key] = value
	return nil
}

func (s *FakeStore) Del(ctx context.Context, key string) error {
	if s.DelError != nil {
		return s.DelError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.values, key)
	return nil
}
