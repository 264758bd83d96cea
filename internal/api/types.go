package api

import "time"

// ErrorCode is the machine readable error identifier returned in error bodies
type ErrorCode string

// Defines values for ErrorCode.
const (
	ErrorCodeInvalidRequest     ErrorCode = "invalid_request"
	ErrorCodeValidationError    ErrorCode = "validation_error"
	ErrorCodeDuplicateReference ErrorCode = "duplicate_reference"
	ErrorCodeMissingReference   ErrorCode = "missing_reference"
	ErrorCodeUnknownTransaction ErrorCode = "unknown_transaction"
	ErrorCodeNotFound           ErrorCode = "not_found"
	ErrorCodeLinkAlreadySet     ErrorCode = "link_already_set"
	ErrorCodeProviderError      ErrorCode = "provider_error"
	ErrorCodeInternalError      ErrorCode = "internal_error"
)

// TransactionState defines model for TransactionState.
type TransactionState string

// Defines values for TransactionState.
const (
	Pending  TransactionState = "PENDING"
	Approved TransactionState = "APPROVED"
	Declined TransactionState = "DECLINED"
	Failed   TransactionState = "FAILED"
)

// WebhookOutcome defines model for WebhookOutcome.
type WebhookOutcome string

// HealthStatus defines model for HealthResponse.Status.
type HealthStatus string

// Defines values for HealthStatus.
const (
	Healthy   HealthStatus = "healthy"
	Unhealthy HealthStatus = "unhealthy"
)

// ErrorResponse defines model for ErrorResponse.
type ErrorResponse struct {
	Error   ErrorCode `json:"error"`
	Message string    `json:"message"`
	Ok      bool      `json:"ok"`
}

// HealthResponse defines model for HealthResponse.
type HealthResponse struct {
	Status HealthStatus `json:"status"`
}

// CreatePaymentLinkRequest defines model for CreatePaymentLinkRequest.
type CreatePaymentLinkRequest struct {
	CustomerId  *string `json:"customerId,omitempty"`
	Description *string `json:"description,omitempty"`
	Reference   string  `json:"reference"`
	AmountCents int64   `json:"amountCents"`
}

// PaymentLinkResponse defines model for PaymentLinkResponse.
type PaymentLinkResponse struct {
	QrCodeUrl   *string `json:"qrCodeUrl,omitempty"`
	Currency    string  `json:"currency"`
	LinkId      string  `json:"linkId"`
	LinkUrl     string  `json:"linkUrl"`
	Reference   string  `json:"reference"`
	AmountCents int64   `json:"amountCents"`
	Ok          bool    `json:"ok"`
}

// WebhookAckResponse defines model for WebhookAckResponse.
type WebhookAckResponse struct {
	State   *TransactionState `json:"state,omitempty"`
	Outcome WebhookOutcome    `json:"outcome"`
	Applied bool              `json:"applied"`
	Ok      bool              `json:"ok"`
}

// TransactionStatusResponse defines model for TransactionStatusResponse.
type TransactionStatusResponse struct {
	CreatedAt             time.Time        `json:"createdAt"`
	ResolvedAt            *time.Time       `json:"resolvedAt,omitempty"`
	FailureReason         *string          `json:"failureReason,omitempty"`
	LinkUrl               *string          `json:"linkUrl,omitempty"`
	ProviderTransactionId *string          `json:"providerTransactionId,omitempty"`
	Amount                string           `json:"amount"`
	Currency              string           `json:"currency"`
	Reference             string           `json:"reference"`
	State                 TransactionState `json:"state"`
	AmountCents           int64            `json:"amountCents"`
	Ok                    bool             `json:"ok"`
}
