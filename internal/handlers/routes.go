package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rideandbuy/paylink/internal/api"
	"github.com/rideandbuy/paylink/internal/config"
	"github.com/rideandbuy/paylink/internal/middleware"
	"github.com/rideandbuy/paylink/internal/repository"
	"github.com/rideandbuy/paylink/internal/service"
)

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(
	cfg *config.Config,
	store repository.TransactionRepository,
	issuer service.LinkIssuer,
	idempotencyRepo repository.IdempotencyRepository,
	logger *slog.Logger,
) (http.Handler, error) {
	linkService := service.NewLinkService(store, issuer, cfg.App, logger)
	engine := service.NewReconciliationEngine(store, logger)

	handler := NewHandler(linkService, engine, engine, idempotencyRepo, logger)

	mux := http.NewServeMux()
	api.RegisterDocsRoutes(mux)
	mux.HandleFunc("GET /health", handler.GetHealth)
	mux.HandleFunc("POST /api/v1/payment-links", handler.CreatePaymentLink)
	mux.HandleFunc("POST /webhook/wompi", handler.HandleWompiWebhook)
	mux.HandleFunc("GET /api/v1/transactions/{reference}", handler.GetTransactionStatus)

	swagger, err := api.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}
	validator, err := middleware.RequestValidator(swagger, logger)
	if err != nil {
		return nil, err
	}

	var finalHandler http.Handler = mux

	finalHandler = validator(finalHandler)
	finalHandler = middleware.Idempotency(idempotencyRepo, logger)(finalHandler)
	finalHandler = middleware.Logging(logger)(finalHandler)
	finalHandler = middleware.CORS(cfg.App.CORSAllowedOrigin)(finalHandler)
	finalHandler = middleware.RequestID()(finalHandler)

	return finalHandler, nil
}
