// Package provider talks to the payment provider's identity and payment-link APIs.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/rideandbuy/paylink/internal/config"
)

const (
	tokenPath        = "connect/token"
	paymentLinksPath = "payment_links"

	maxErrorBodyBytes = 4096
)

// LinkRequest describes the payment link to issue
type LinkRequest struct {
	Reference   string
	ProductName string
	Description string
	AmountCents int64
}

// Link is the hosted payment page issued by the provider
type Link struct {
	ID        string
	URL       string
	QRCodeURL string
}

// APIError is returned when the provider answers with a non-2xx status
type APIError struct {
	Body       string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}

// Client issues payment links. Access tokens are obtained with the OAuth2
// client-credentials grant and cached until they expire.
type Client struct {
	httpClient *http.Client
	now        func() time.Time
	logger     *slog.Logger
	cfg        config.ProviderConfig
	apiURL     string
}

// NewClient creates a provider client from configuration
func NewClient(cfg config.ProviderConfig, logger *slog.Logger) *Client {
	tokenConfig := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     joinURL(cfg.AuthURL, tokenPath),
		AuthStyle:    oauth2.AuthStyleInParams,
		EndpointParams: url.Values{
			"audience": {cfg.Audience},
		},
	}

	// The token endpoint uses its own client so its timeout is independent of
	// the payment-link request timeout.
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{
		Timeout: cfg.TokenTimeout,
	})

	httpClient := tokenConfig.Client(tokenCtx)
	httpClient.Timeout = cfg.RequestTimeout

	return &Client{
		httpClient: httpClient,
		now:        time.Now,
		logger:     logger,
		cfg:        cfg,
		apiURL:     joinURL(cfg.APIURL, paymentLinksPath),
	}
}

// CreatePaymentLink asks the provider for a hosted payment page for req
func (c *Client) CreatePaymentLink(ctx context.Context, req LinkRequest) (*Link, error) {
	body, err := json.Marshal(c.buildPayload(req))
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment link request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build payment link request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug("requesting payment link",
		"reference", req.Reference,
		"amount_cents", req.AmountCents,
		"url", c.apiURL,
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment link request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes)) //nolint:errcheck // best effort
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(errBody))}
	}

	var parsed linkResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode payment link response: %w", err)
	}

	link := parsed.link()
	if link.ID == "" || link.URL == "" {
		return nil, fmt.Errorf("invalid provider response: missing link id or url")
	}

	c.logger.Info("payment link issued",
		"reference", req.Reference,
		"link_id", link.ID,
	)

	return &link, nil
}

func (c *Client) buildPayload(req LinkRequest) linkPayload {
	redirect := joinURL(c.cfg.RedirectBaseURL, "api/wompi/redirect-to-app") + "?referencia=" + url.QueryEscape(req.Reference)
	now := c.now().UTC()

	return linkPayload{
		MerchantReference: req.Reference,
		Amount:            req.AmountCents,
		ProductName:       req.ProductName,
		PaymentMethods: paymentMethods{
			AllowCard: true,
		},
		MaxInstallments: "Tres",
		ProductInfo: productInfo{
			Description: req.Description,
		},
		Settings: linkSettings{
			RedirectURL:          redirect,
			ReturnURL:            joinURL(c.cfg.RedirectBaseURL, "api/wompi/return"),
			WebhookURL:           c.cfg.WebhookURL,
			DefaultQuantity:      1,
			AttemptWindowMinutes: 15,
			NotifyCustomer:       true,
		},
		Validity: linkValidity{
			StartsAt: now.Format(time.RFC3339),
			EndsAt:   now.Add(c.cfg.LinkValidity).Format(time.RFC3339),
		},
	}
}

func joinURL(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}
