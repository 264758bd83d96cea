package service

import (
	"context"

	"github.com/rideandbuy/paylink/internal/provider"
)

// HealthChecker validates system health.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// LinkIssuer requests hosted payment pages from the provider
type LinkIssuer interface {
	CreatePaymentLink(ctx context.Context, req provider.LinkRequest) (*provider.Link, error)
}

// LinkCreator handles payment link creation
type LinkCreator interface {
	CreateLink(ctx context.Context, input CreateLinkInput) (*LinkResult, error)
}

// Reconciler applies provider webhooks to transactions
type Reconciler interface {
	HandleWebhook(ctx context.Context, body []byte) (*WebhookResult, error)
}

// StatusQuerier serves transaction status reads
type StatusQuerier interface {
	QueryStatus(ctx context.Context, reference string) (*StatusView, error)
}

// Ensure concrete types implement interfaces
var (
	_ LinkIssuer    = (*provider.Client)(nil)
	_ LinkCreator   = (*LinkService)(nil)
	_ Reconciler    = (*ReconciliationEngine)(nil)
	_ StatusQuerier = (*ReconciliationEngine)(nil)
)
