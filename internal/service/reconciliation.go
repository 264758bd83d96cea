package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rideandbuy/paylink/internal/models"
	"github.com/rideandbuy/paylink/internal/repository"
)

// WebhookResult reports what a webhook delivery did
type WebhookResult struct {
	Reference string
	Outcome   Outcome
	State     models.TransactionState
	Applied   bool
}

// StatusView is the read-only projection returned to status pollers
type StatusView struct {
	CreatedAt             time.Time
	ResolvedAt            *time.Time
	Reference             string
	State                 models.TransactionState
	Currency              string
	ProviderTransactionID string
	FailureReason         string
	LinkURL               string
	AmountCents           int64
}

// ReconciliationEngine applies provider webhook events to stored transactions
// and serves the status read path.
type ReconciliationEngine struct {
	store  repository.TransactionRepository
	now    func() time.Time
	logger *slog.Logger
}

// NewReconciliationEngine creates a new ReconciliationEngine
func NewReconciliationEngine(store repository.TransactionRepository, logger *slog.Logger) *ReconciliationEngine {
	return &ReconciliationEngine{
		store:  store,
		now:    time.Now,
		logger: logger,
	}
}

// HandleWebhook normalizes a raw webhook body and applies it
func (e *ReconciliationEngine) HandleWebhook(ctx context.Context, body []byte) (*WebhookResult, error) {
	event, err := NormalizeWebhook(body)
	if err != nil {
		e.logger.Warn("webhook without reference", "body_bytes", len(body))
		return nil, err
	}
	return e.Apply(ctx, event)
}

// Apply runs the state machine for a normalized event. Unhandled events and
// events for already resolved transactions succeed without mutation.
func (e *ReconciliationEngine) Apply(_ context.Context, event *WebhookEvent) (*WebhookResult, error) {
	result := &WebhookResult{
		Reference: event.Reference,
		Outcome:   event.Outcome,
	}

	if event.Outcome == OutcomeUnhandled {
		e.logger.Warn("ignoring unhandled webhook event",
			"reference", event.Reference,
			"kind", event.Kind,
			"shape", event.Shape,
		)
		return result, nil
	}

	resolvedAt := e.now().UTC()
	updated, err := e.store.Update(event.Reference, func(txn *models.Transaction) error {
		if txn.State.IsTerminal() {
			return nil
		}

		result.Applied = true
		txn.ResolvedAt = &resolvedAt

		switch event.Outcome {
		case OutcomeApproved:
			txn.State = models.TransactionStateApproved
			if event.ProviderTransactionID != "" {
				txn.ProviderTransactionID = event.ProviderTransactionID
			}
		case OutcomeDeclined:
			txn.State = models.TransactionStateDeclined
			if event.Reason != "" {
				txn.FailureReason = event.Reason
			}
		case OutcomeFailed:
			txn.State = models.TransactionStateFailed
			if event.Error != "" {
				txn.FailureReason = event.Error
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			e.logger.Warn("webhook for unknown transaction",
				"reference", event.Reference,
				"outcome", event.Outcome,
			)
			return nil, &ServiceError{
				Code:    ErrCodeUnknownTransaction,
				Message: fmt.Sprintf("transaction %q does not exist", event.Reference),
				Err:     err,
			}
		}
		return nil, &ServiceError{
			Code:    ErrCodeInternalError,
			Message: "failed to apply webhook",
			Err:     err,
		}
	}

	result.State = updated.State

	e.logger.Info("webhook reconciled",
		"reference", event.Reference,
		"shape", event.Shape,
		"outcome", event.Outcome,
		"applied", result.Applied,
		"state", updated.State,
	)

	return result, nil
}

// QueryStatus returns the current view of a transaction
func (e *ReconciliationEngine) QueryStatus(_ context.Context, reference string) (*StatusView, error) {
	txn, err := e.store.Get(reference)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{
				Code:    ErrCodeNotFound,
				Message: "transaction not found",
			}
		}
		return nil, &ServiceError{
			Code:    ErrCodeInternalError,
			Message: "failed to load transaction",
			Err:     err,
		}
	}

	return &StatusView{
		Reference:             txn.Reference,
		State:                 txn.State,
		AmountCents:           txn.AmountCents,
		Currency:              txn.Currency,
		CreatedAt:             txn.CreatedAt,
		ResolvedAt:            txn.ResolvedAt,
		ProviderTransactionID: txn.ProviderTransactionID,
		FailureReason:         txn.FailureReason,
		LinkURL:               txn.LinkURL,
	}, nil
}
