package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RR-LN/comercio-cart/internal/cart"
	"github.com/RR-LN/comercio-cart/internal/logger"
	"github.com/RR-LN/comercio-cart/internal/wire"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cart:session:"

// Store keeps one cart snapshot per session in redis. Every save refreshes
// the TTL, so a session cart expires ttl after its last change.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Connect dials redis and checks it answers before returning a client.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

// Load returns the saved snapshot, or an empty one when the session has none.
func (s *Store) Load(ctx context.Context, sessionID string) (cart.Snapshot, error) {
	if sessionID == "" {
		return cart.Snapshot{}, fmt.Errorf("sessionID is empty")
	}

	raw, err := s.rdb.Get(ctx, keyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.Snapshot{}, nil
	}
	if err != nil {
		return cart.Snapshot{}, fmt.Errorf("rdb.Get: %w", err)
	}

	var items []wire.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return cart.Snapshot{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	domainItems, err := wire.ItemsToDomain(items)
	if err != nil {
		return cart.Snapshot{}, fmt.Errorf("wire.ItemsToDomain: %w", err)
	}

	return cart.NewSnapshot(domainItems), nil
}

func (s *Store) Save(ctx context.Context, sessionID string, snap cart.Snapshot) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is empty")
	}

	raw, err := json.Marshal(wire.ItemsFromDomain(snap.Items()))
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := s.rdb.Set(ctx, keyPrefix+sessionID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("rdb.Set: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("rdb.Del: %w", err)
	}
	return nil
}

// Bind saves every change of cs under sessionID until the returned function
// is called. Save failures are logged; the in-memory cart stays authoritative
// for the running session.
func Bind(ctx context.Context, s *Store, sessionID string, cs *cart.Store, log *logger.Logger) func() {
	return cs.Subscribe(func(snap cart.Snapshot) {
		if err := s.Save(ctx, sessionID, snap); err != nil {
			log.Error("session cart save failed", "session_id", sessionID, "error", err)
		}
	})
}
