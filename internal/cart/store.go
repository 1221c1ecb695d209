// Package cart holds the user's selection of products and quantities.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/pricelist/internal/common"
	"github.com/Veraticus/pricelist/internal/model"
	"github.com/Veraticus/pricelist/internal/service"
)

// DefaultKey is the store key the cart is persisted under.
const DefaultKey = "priceListCart"

// Store is the cart state machine. Lines keep insertion order and there is
// at most one line per product code. The whole cart is written to the
// backing store after every change; write failures are logged and kept in
// LastError but never returned to the caller.
//
// A Store is not safe for concurrent use.
type Store struct {
	kv      service.KeyValueStore
	lastErr error
	key     string
	lines   []model.CartLine
}

// NewStore creates an empty cart persisted to kv under key. A nil kv keeps
// the cart in memory only.
func NewStore(kv service.KeyValueStore, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{kv: kv, key: key}
}

// Load replaces the cart with the persisted one. Missing data leaves the
// cart empty without error; unreadable or corrupt data leaves it empty and
// returns an error wrapping common.ErrPersistenceFailure.
func (s *Store) Load(ctx context.Context) error {
	s.lines = nil
	if s.kv == nil {
		return nil
	}

	data, err := s.kv.Read(ctx, s.key)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.lastErr = fmt.Errorf("%w: read %s: %w", common.ErrPersistenceFailure, s.key, err)
		common.LogError(err, "Failed to read saved cart", common.Fields{"key": s.key})
		return s.lastErr
	}

	lines, err := decodeLines(data)
	if err != nil {
		s.lastErr = fmt.Errorf("%w: decode %s: %w", common.ErrPersistenceFailure, s.key, err)
		common.LogError(err, "Discarding corrupt saved cart", common.Fields{"key": s.key})
		return s.lastErr
	}

	s.lines = lines
	slog.Debug("Loaded saved cart", "key", s.key, "lines", len(lines))
	return nil
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []model.CartLine {
	out := make([]model.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Line returns the line for code.
func (s *Store) Line(code string) (model.CartLine, bool) {
	if i := s.find(code); i >= 0 {
		return s.lines[i], true
	}
	return model.CartLine{}, false
}

// Contains reports whether code has a line.
func (s *Store) Contains(code string) bool {
	return s.find(code) >= 0
}

// Len is the number of lines.
func (s *Store) Len() int {
	return len(s.lines)
}

// LastError is the most recent persistence failure, if any.
func (s *Store) LastError() error {
	return s.lastErr
}

// Add puts one unit of p in the cart. An existing line is incremented and its
// captured prices are left untouched.
func (s *Store) Add(ctx context.Context, p model.Product) {
	if i := s.find(p.Code); i >= 0 {
		s.lines[i].Quantity = max(1, s.lines[i].Quantity+1)
	} else {
		s.lines = append(s.lines, model.NewCartLine(p))
	}
	s.persist(ctx)
}

// Remove deletes the line for code, if any.
func (s *Store) Remove(ctx context.Context, code string) {
	i := s.find(code)
	if i < 0 {
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.persist(ctx)
}

// Increment adds one unit to an existing line.
func (s *Store) Increment(ctx context.Context, code string) {
	i := s.find(code)
	if i < 0 {
		return
	}
	s.lines[i].Quantity++
	s.persist(ctx)
}

// Decrement removes one unit from an existing line. Quantity stops at zero;
// the line itself stays until Remove.
func (s *Store) Decrement(ctx context.Context, code string) {
	i := s.find(code)
	if i < 0 || s.lines[i].Quantity <= 0 {
		return
	}
	s.lines[i].Quantity--
	s.persist(ctx)
}

// SetQuantity sets an existing line to max(0, n). Unknown codes are ignored.
func (s *Store) SetQuantity(ctx context.Context, code string, n int) {
	i := s.find(code)
	if i < 0 {
		return
	}
	s.lines[i].Quantity = max(0, n)
	s.persist(ctx)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.lines = nil
	s.persist(ctx)
}

func (s *Store) find(code string) int {
	for i := range s.lines {
		if s.lines[i].Code == code {
			return i
		}
	}
	return -1
}

func (s *Store) persist(ctx context.Context) {
	if s.kv == nil {
		return
	}

	data, err := encodeLines(s.lines)
	if err == nil {
		err = s.kv.Write(ctx, s.key, data)
	}
	if err != nil {
		s.lastErr = fmt.Errorf("%w: write %s: %w", common.ErrPersistenceFailure, s.key, err)
		common.LogError(err, "Failed to save cart", common.Fields{"key": s.key, "lines": len(s.lines)})
		return
	}
	s.lastErr = nil
}

func encodeLines(lines []model.CartLine) ([]byte, error) {
	if lines == nil {
		lines = []model.CartLine{}
	}
	return json.Marshal(lines)
}

// decodeLines reads a persisted cart. Lines without a code are dropped and
// repeated codes are merged into the first occurrence.
func decodeLines(data []byte) ([]model.CartLine, error) {
	var raw []model.CartLine
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	lines := make([]model.CartLine, 0, len(raw))
	seen := make(map[string]int, len(raw))
	for _, line := range raw {
		if line.Code == "" {
			continue
		}
		if i, ok := seen[line.Code]; ok {
			lines[i].Quantity += line.Quantity
			continue
		}
		seen[line.Code] = len(lines)
		lines = append(lines, line)
	}
	return lines, nil
}
