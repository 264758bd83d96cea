package models

import "time"

// TransactionState represents where a payment link is in its lifecycle
type TransactionState string

const (
	TransactionStatePending  TransactionState = "PENDING"
	TransactionStateApproved TransactionState = "APPROVED"
	TransactionStateDeclined TransactionState = "DECLINED"
	TransactionStateFailed   TransactionState = "FAILED"
)

// IsTerminal reports whether no further transitions are accepted from s.
func (s TransactionState) IsTerminal() bool {
	switch s {
	case TransactionStateApproved, TransactionStateDeclined, TransactionStateFailed:
		return true
	default:
		return false
	}
}

// Transaction is the local record of one payment-link request
type Transaction struct {
	CreatedAt             time.Time        `json:"createdAt"`
	ResolvedAt            *time.Time       `json:"resolvedAt,omitempty"`
	Reference             string           `json:"reference"`
	CustomerID            string           `json:"customerId,omitempty"`
	Description           string           `json:"description,omitempty"`
	Currency              string           `json:"currency"`
	LinkID                string           `json:"linkId,omitempty"`
	LinkURL               string           `json:"linkUrl,omitempty"`
	QRCodeURL             string           `json:"qrCodeUrl,omitempty"`
	State                 TransactionState `json:"state"`
	ProviderTransactionID string           `json:"providerTransactionId,omitempty"`
	FailureReason         string           `json:"failureReason,omitempty"`
	AmountCents           int64            `json:"amountCents"`
}

// NewTransaction carries the caller-supplied, immutable fields of a Transaction
type NewTransaction struct {
	Reference   string
	CustomerID  string
	Description string
	Currency    string
	AmountCents int64
}

// IdempotencyKey tracks processed requests so retries replay the original response
type IdempotencyKey struct {
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	Key            string    `db:"key" json:"key"`
	RequestPath    string    `db:"request_path" json:"requestPath"`
	ResponseBody   string    `db:"response_body" json:"responseBody"`
	ResponseStatus int       `db:"response_status" json:"responseStatus"`
}
