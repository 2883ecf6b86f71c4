// Package store holds the session-scoped client state: category cache,
// authenticated identity, token pair and cart. There is one Store per
// session root, passed down explicitly; every write replaces a whole
// field and persists the full state snapshot.
package store

import (
	"context"
	"encoding/json"
	"log"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/storage"
)

// StateKey is the single storage key the persisted state lives under.
const StateKey = "shopping-store"

// State is the persisted subset of client state. It is treated as an
// immutable value: commands produce a new State rather than patching
// fields in place.
type State struct {
	Categories []domain.Category `json:"categories"`
	User       domain.User       `json:"user"`
	Tokens     domain.Tokens     `json:"tokens"`
	Cart       []domain.CartItem `json:"cart"`
}

type Store struct {
	storage storage.Storage
	state   State
}

// New loads any prior session state from storage. State that is missing
// or fails to deserialize is treated as no prior state; New never
// fails on bad persisted data.
func New(ctx context.Context, st storage.Storage) *Store {
	s := &Store{storage: st}

	data, err := st.Get(ctx, StateKey)
	if err != nil {
		return s
	}
	var prior State
	if err := json.Unmarshal(data, &prior); err != nil {
		log.Printf("discarding unreadable session state: %v", err)
		return s
	}
	s.state = prior
	return s
}

// Read selectors. Slices are returned as copies so a caller can never
// mutate store state in place; the only write path is the setters.

func (s *Store) Categories() []domain.Category {
	return append([]domain.Category(nil), s.state.Categories...)
}

func (s *Store) User() domain.User {
	return s.state.User
}

func (s *Store) Tokens() domain.Tokens {
	return s.state.Tokens
}

func (s *Store) Cart() []domain.CartItem {
	return append([]domain.CartItem(nil), s.state.Cart...)
}

// Setters. Each one replaces its field wholesale and persists the new
// state snapshot.

func (s *Store) SetCategories(ctx context.Context, categories []domain.Category) error {
	next := s.state
	next.Categories = append([]domain.Category(nil), categories...)
	return s.commit(ctx, next)
}

func (s *Store) UpdateUser(ctx context.Context, user domain.User) error {
	next := s.state
	next.User = user
	return s.commit(ctx, next)
}

func (s *Store) UpdateTokens(ctx context.Context, tokens domain.Tokens) error {
	next := s.state
	next.Tokens = tokens
	return s.commit(ctx, next)
}

func (s *Store) UpdateCart(ctx context.Context, cart []domain.CartItem) error {
	next := s.state
	next.Cart = append([]domain.CartItem(nil), cart...)
	return s.commit(ctx, next)
}

// Reset drops the in-memory state and the persisted copy.
func (s *Store) Reset(ctx context.Context) error {
	s.state = State{}
	return s.storage.Delete(ctx, StateKey)
}

func (s *Store) commit(ctx context.Context, next State) error {
	data, err := json.Marshal(next)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, StateKey, data); err != nil {
		return err
	}
	s.state = next
	return nil
}
