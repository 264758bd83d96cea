package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
)

type validationErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Ok      bool   `json:"ok"`
}

// RequestValidator checks requests against the OpenAPI document before they
// reach the handlers. Requests for routes the document does not describe pass
// through untouched.
func RequestValidator(swagger *openapi3.T, logger *slog.Logger) (func(http.Handler) http.Handler, error) {
	router, err := legacyrouter.NewRouter(swagger)
	if err != nil {
		return nil, fmt.Errorf("failed to build OpenAPI router: %w", err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				var routeErr *routers.RouteError
				if !errors.As(err, &routeErr) {
					logger.Warn("failed to match OpenAPI route", "error", err, "path", r.URL.Path)
				}
				next.ServeHTTP(w, r)
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}

			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				logger.Debug("request failed validation",
					"path", r.URL.Path,
					"error", err,
					"request_id", RequestIDFromContext(r.Context()),
				)
				writeValidationError(w, validationMessage(err))
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Parameter != nil {
			return fmt.Sprintf("invalid parameter %q: %s", reqErr.Parameter.Name, reqErr.Reason)
		}
		var schemaErr *openapi3.SchemaError
		if errors.As(reqErr.Err, &schemaErr) {
			return fmt.Sprintf("invalid request body: %s", schemaErr.Reason)
		}
		if reqErr.Reason != "" {
			return reqErr.Reason
		}
	}
	return err.Error()
}

func writeValidationError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	//nolint:errcheck // Best effort response writing
	json.NewEncoder(w).Encode(validationErrorResponse{
		Error:   "invalid_request",
		Message: message,
	})
}
