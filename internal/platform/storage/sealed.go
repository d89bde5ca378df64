package storage

import (
	"context"
	"fmt"

	"paystructure/internal/platform/crypto"
)

// Sealed encrypts blobs before they reach the wrapped backend.
type Sealed struct {
	inner  Backend
	crypto *crypto.Service
}

func NewSealed(inner Backend, svc *crypto.Service) *Sealed {
	return &Sealed{inner: inner, crypto: svc}
}

// Seal wraps inner with encryption and keeps its Locker, if it has one.
func Seal(inner Backend, svc *crypto.Service) Backend {
	sealed := NewSealed(inner, svc)
	if locker, ok := inner.(Locker); ok {
		return &lockingSealed{Sealed: sealed, locker: locker}
	}
	return sealed
}

type lockingSealed struct {
	*Sealed
	locker Locker
}

func (s *lockingSealed) Lock(ctx context.Context, key string) (func(), error) {
	return s.locker.Lock(ctx, key)
}

func (s *Sealed) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.inner.Load(ctx, key)
	if err != nil || data == nil {
		return data, err
	}
	plain, err := s.crypto.Decrypt(data)
	if err != nil {
		return nil, fmt.Errorf("decrypt %s: %w", key, err)
	}
	return plain, nil
}

func (s *Sealed) Save(ctx context.Context, key string, data []byte) error {
	sealed, err := s.crypto.Encrypt(data)
	if err != nil {
		return fmt.Errorf("encrypt %s: %w", key, err)
	}
	return s.inner.Save(ctx, key, sealed)
}

func (s *Sealed) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

func (s *Sealed) Close() error {
	return s.inner.Close()
}
