// Package repository provides data access layer implementations for paylink.
package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/rideandbuy/paylink/internal/models"
)

// DuplicatePolicy decides what Create does when the reference already exists
type DuplicatePolicy int

const (
	// DuplicateOverwrite replaces the existing record (last writer wins).
	DuplicateOverwrite DuplicatePolicy = iota
	// DuplicateReject fails with models.ErrDuplicateReference.
	DuplicateReject
)

// Mutator applies a change to a transaction in place. Returning an error
// aborts the update and leaves the stored record untouched.
type Mutator func(txn *models.Transaction) error

// TransactionRepository defines the interface for transaction data access
type TransactionRepository interface {
	Create(input models.NewTransaction) (*models.Transaction, error)
	Get(reference string) (*models.Transaction, error)
	Update(reference string, mutate Mutator) (*models.Transaction, error)
	SetLinkInfo(reference, linkID, linkURL, qrCodeURL string) (*models.Transaction, error)
	Exists(reference string) bool
}

type transactionEntry struct {
	mu  sync.Mutex
	txn models.Transaction
}

// TransactionStore is an in-memory TransactionRepository keyed by reference.
//
// The map lock only guards membership; each record has its own lock so work on
// different references never contends, and Update runs the whole
// read-modify-write under the record lock. Records are never evicted.
type TransactionStore struct {
	now     func() time.Time
	entries map[string]*transactionEntry
	policy  DuplicatePolicy
	mu      sync.RWMutex
}

// TransactionStoreOption configures a TransactionStore
type TransactionStoreOption func(*TransactionStore)

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) TransactionStoreOption {
	return func(s *TransactionStore) {
		s.now = now
	}
}

// NewTransactionStore creates an empty in-memory store
func NewTransactionStore(policy DuplicatePolicy, opts ...TransactionStoreOption) *TransactionStore {
	s := &TransactionStore{
		now:     time.Now,
		entries: make(map[string]*transactionEntry),
		policy:  policy,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new PENDING transaction
func (s *TransactionStore) Create(input models.NewTransaction) (*models.Transaction, error) {
	entry := &transactionEntry{
		txn: models.Transaction{
			Reference:   input.Reference,
			AmountCents: input.AmountCents,
			CustomerID:  input.CustomerID,
			Description: input.Description,
			Currency:    input.Currency,
			State:       models.TransactionStatePending,
			CreatedAt:   s.now().UTC(),
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[input.Reference]; exists && s.policy == DuplicateReject {
		return nil, fmt.Errorf("reference %q: %w", input.Reference, models.ErrDuplicateReference)
	}
	s.entries[input.Reference] = entry

	created := entry.txn
	return &created, nil
}

// Get returns a copy of the transaction stored under reference
func (s *TransactionStore) Get(reference string) (*models.Transaction, error) {
	entry, ok := s.lookup(reference)
	if !ok {
		return nil, fmt.Errorf("transaction %q: %w", reference, models.ErrNotFound)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	txn := cloneTransaction(entry.txn)
	return &txn, nil
}

// Exists reports whether a transaction is stored under reference
func (s *TransactionStore) Exists(reference string) bool {
	_, ok := s.lookup(reference)
	return ok
}

// Update atomically applies mutate to the transaction stored under reference
// and returns the resulting record.
func (s *TransactionStore) Update(reference string, mutate Mutator) (*models.Transaction, error) {
	entry, ok := s.lookup(reference)
	if !ok {
		return nil, fmt.Errorf("transaction %q: %w", reference, models.ErrNotFound)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	working := cloneTransaction(entry.txn)
	if err := mutate(&working); err != nil {
		return nil, err
	}

	// Identity and amount are immutable whatever the mutator did.
	working.Reference = entry.txn.Reference
	working.AmountCents = entry.txn.AmountCents
	working.Currency = entry.txn.Currency
	working.CreatedAt = entry.txn.CreatedAt

	entry.txn = working

	result := cloneTransaction(working)
	return &result, nil
}

// SetLinkInfo records the provider link for a transaction. Link fields are
// write-once: repeating the same values is a no-op, different values fail
// with models.ErrLinkAlreadySet.
func (s *TransactionStore) SetLinkInfo(reference, linkID, linkURL, qrCodeURL string) (*models.Transaction, error) {
	return s.Update(reference, func(txn *models.Transaction) error {
		if txn.LinkID != "" || txn.LinkURL != "" {
			if txn.LinkID == linkID && txn.LinkURL == linkURL {
				return nil
			}
			return fmt.Errorf("transaction %q: %w", reference, models.ErrLinkAlreadySet)
		}

		txn.LinkID = linkID
		txn.LinkURL = linkURL
		txn.QRCodeURL = qrCodeURL
		return nil
	})
}

func (s *TransactionStore) lookup(reference string) (*transactionEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[reference]
	return entry, ok
}

func cloneTransaction(txn models.Transaction) models.Transaction {
	if txn.ResolvedAt != nil {
		resolvedAt := *txn.ResolvedAt
		txn.ResolvedAt = &resolvedAt
	}
	return txn
}
