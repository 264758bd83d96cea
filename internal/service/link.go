package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rideandbuy/paylink/internal/config"
	"github.com/rideandbuy/paylink/internal/models"
	"github.com/rideandbuy/paylink/internal/provider"
	"github.com/rideandbuy/paylink/internal/repository"
)

// CreateLinkInput is a request to charge a customer for a rental
type CreateLinkInput struct {
	Reference   string
	Description string
	CustomerID  string
	AmountCents int64
}

// LinkResult is the payment link issued for a transaction
type LinkResult struct {
	Reference   string
	LinkID      string
	LinkURL     string
	QRCodeURL   string
	Currency    string
	AmountCents int64
}

// LinkService issues provider payment links and records the pending transaction
type LinkService struct {
	store  repository.TransactionRepository
	issuer LinkIssuer
	logger *slog.Logger
	app    config.AppConfig
}

// NewLinkService creates a new LinkService
func NewLinkService(
	store repository.TransactionRepository,
	issuer LinkIssuer,
	app config.AppConfig,
	logger *slog.Logger,
) *LinkService {
	return &LinkService{
		store:  store,
		issuer: issuer,
		logger: logger,
		app:    app,
	}
}

// CreateLink validates the request, asks the provider for a link and stores
// the transaction. Nothing is stored when the provider call fails.
func (s *LinkService) CreateLink(ctx context.Context, input CreateLinkInput) (*LinkResult, error) {
	input.Reference = strings.TrimSpace(input.Reference)

	if err := ValidateReference(input.Reference); err != nil {
		return nil, &ServiceError{
			Code:    ErrCodeValidation,
			Message: err.Error(),
		}
	}

	if err := ValidateAmountBounds(input.AmountCents, s.app.MinAmountCents, s.app.MaxAmountCents, s.app.Currency); err != nil {
		return nil, &ServiceError{
			Code:    ErrCodeValidation,
			Message: err.Error(),
		}
	}

	if s.app.DuplicatePolicy == config.DuplicatePolicyReject && s.store.Exists(input.Reference) {
		return nil, duplicateReferenceError(input.Reference, nil)
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		description = s.app.DefaultDescription
	}

	link, err := s.issuer.CreatePaymentLink(ctx, provider.LinkRequest{
		Reference:   input.Reference,
		ProductName: s.app.DefaultDescription,
		Description: description,
		AmountCents: input.AmountCents,
	})
	if err != nil {
		s.logger.Error("provider rejected payment link",
			"reference", input.Reference,
			"error", err,
		)
		return nil, &ServiceError{
			Code:    ErrCodeProviderError,
			Message: "failed to create payment link",
			Err:     err,
		}
	}

	txn, err := s.store.Create(models.NewTransaction{
		Reference:   input.Reference,
		AmountCents: input.AmountCents,
		CustomerID:  input.CustomerID,
		Description: description,
		Currency:    s.app.Currency,
	})
	if err != nil {
		if errors.Is(err, models.ErrDuplicateReference) {
			return nil, duplicateReferenceError(input.Reference, err)
		}
		return nil, &ServiceError{
			Code:    ErrCodeInternalError,
			Message: fmt.Sprintf("failed to create transaction: %v", err),
		}
	}

	txn, err = s.store.SetLinkInfo(txn.Reference, link.ID, link.URL, link.QRCodeURL)
	if err != nil {
		if errors.Is(err, models.ErrLinkAlreadySet) {
			return nil, &ServiceError{
				Code:    ErrCodeLinkAlreadySet,
				Message: "transaction already has a payment link",
				Err:     err,
			}
		}
		return nil, &ServiceError{
			Code:    ErrCodeInternalError,
			Message: fmt.Sprintf("failed to record payment link: %v", err),
		}
	}

	s.logger.Info("payment link created",
		"reference", txn.Reference,
		"amount_cents", txn.AmountCents,
		"link_id", txn.LinkID,
	)

	return &LinkResult{
		Reference:   txn.Reference,
		LinkID:      txn.LinkID,
		LinkURL:     txn.LinkURL,
		QRCodeURL:   txn.QRCodeURL,
		Currency:    txn.Currency,
		AmountCents: txn.AmountCents,
	}, nil
}

func duplicateReferenceError(reference string, err error) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeDuplicateReference,
		Message: fmt.Sprintf("reference %q already exists", reference),
		Err:     err,
	}
}
