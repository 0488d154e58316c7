// Package cartstore holds the client-local shopping cart: an ordered list
// of product lines and a derived total, persisted through an injected
// storage port after every mutation.
package cartstore

import (
	"encoding/json"
	"log"
	"sync"
)

// StorageKey is the key the cart state is persisted under.
const StorageKey = "cart"

// Product carries the fields captured into a cart line at add time.
type Product struct {
	ID    uint
	Name  string
	Price float64
	Image string
	Stock int
}

// Line is one product entry in the cart. Stock is the cap frozen at add
// time; UpdateQuantity never raises Quantity above it.
type Line struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Stock     int     `json:"stock"`
	Quantity  int     `json:"quantity"`
}

// State is the persisted cart shape. Total is always recomputed from
// Items, never patched incrementally.
type State struct {
	Items []Line  `json:"items"`
	Total float64 `json:"total"`
}

type Store struct {
	mu      sync.Mutex
	storage Storage
	state   State
}

// New returns a store hydrated from storage. Missing or corrupt storage
// yields the empty cart rather than an error.
func New(storage Storage) *Store {
	s := &Store{storage: storage}
	data, err := storage.Read(StorageKey)
	if err != nil || len(data) == 0 {
		return s
	}
	var snapshot State
	if err := json.Unmarshal(data, &snapshot); err != nil {
		log.Printf("cartstore: discarding corrupt cart state: %v", err)
		return s
	}
	s.load(snapshot)
	return s
}

// AddToCart merges quantity into an existing line for the product, or
// appends a new line capturing the product's current name, price, image,
// and stock. Quantities below 1 count as 1. No stock clamp is applied at
// add time.
func (s *Store) AddToCart(p Product, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		quantity = 1
	}
	for i := range s.state.Items {
		if s.state.Items[i].ProductID == p.ID {
			s.state.Items[i].Quantity += quantity
			s.recompute()
			s.persist()
			return
		}
	}
	s.state.Items = append(s.state.Items, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Stock:     p.Stock,
		Quantity:  quantity,
	})
	s.recompute()
	s.persist()
}

// RemoveFromCart deletes the matching line. Removing an absent product is
// a no-op.
func (s *Store) RemoveFromCart(productID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Items {
		if s.state.Items[i].ProductID == productID {
			s.state.Items = append(s.state.Items[:i], s.state.Items[i+1:]...)
			break
		}
	}
	s.recompute()
	s.persist()
}

// UpdateQuantity sets the line's quantity, clamped to the stock captured
// at add time. A quantity of zero or less after clamping removes the
// line, so a line captured with zero stock is dropped; an unknown
// product is a no-op.
func (s *Store) UpdateQuantity(productID uint, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Items {
		if s.state.Items[i].ProductID != productID {
			continue
		}
		if quantity > s.state.Items[i].Stock {
			quantity = s.state.Items[i].Stock
		}
		if quantity <= 0 {
			s.state.Items = append(s.state.Items[:i], s.state.Items[i+1:]...)
		} else {
			s.state.Items[i].Quantity = quantity
		}
		s.recompute()
		s.persist()
		return
	}
}

// ClearCart empties the cart and persists the empty state.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Items = nil
	s.recompute()
	s.persist()
}

// LoadCart replaces the cart verbatim from a snapshot without persisting.
// Used to hydrate view state; missing fields default to the empty cart.
func (s *Store) LoadCart(snapshot State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(snapshot)
}

// Snapshot returns a copy of the current state, e.g. for order submission.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Line, len(s.state.Items))
	copy(items, s.state.Items)
	return State{Items: items, Total: s.state.Total}
}

func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Total
}

// load copies the snapshot items so later in-place mutations never write
// through to the caller's slice.
func (s *Store) load(snapshot State) {
	var items []Line
	if len(snapshot.Items) > 0 {
		items = make([]Line, len(snapshot.Items))
		copy(items, snapshot.Items)
	}
	s.state.Items = items
	s.state.Total = snapshot.Total
}

func (s *Store) recompute() {
	total := 0.0
	for _, line := range s.state.Items {
		total += line.Price * float64(line.Quantity)
	}
	s.state.Total = total
}

// persist writes the full state to storage. A write failure never fails
// the mutation; it is logged and swallowed.
func (s *Store) persist() {
	data, err := json.Marshal(s.state)
	if err != nil {
		log.Printf("cartstore: failed to encode cart state: %v", err)
		return
	}
	if err := s.storage.Write(StorageKey, data); err != nil {
		log.Printf("cartstore: failed to persist cart state: %v", err)
	}
}
