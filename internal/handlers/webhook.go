package handlers

import (
	"io"
	"net/http"

	"github.com/rideandbuy/paylink/internal/api"
)

// HandleWompiWebhook handles POST /webhook/wompi
func (h *Handler) HandleWompiWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes))
	if err != nil {
		h.logger.Warn("failed to read webhook body", "error", err)
		writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidRequest, "failed to read request body")
		return
	}

	result, err := h.reconciler.HandleWebhook(r.Context(), body)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	resp := api.WebhookAckResponse{
		Ok:      true,
		Outcome: api.WebhookOutcome(result.Outcome),
		Applied: result.Applied,
	}
	if result.State != "" {
		state := api.TransactionState(result.State)
		resp.State = &state
	}

	writeJSON(w, http.StatusOK, resp)
}
