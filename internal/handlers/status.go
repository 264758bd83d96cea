package handlers

import (
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/rideandbuy/paylink/internal/api"
	"github.com/rideandbuy/paylink/internal/service"
)

// GetTransactionStatus handles GET /api/v1/transactions/{reference}
func (h *Handler) GetTransactionStatus(w http.ResponseWriter, r *http.Request) {
	var reference string
	err := runtime.BindStyledParameterWithOptions("simple", "reference", r.PathValue("reference"), &reference,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidRequest, "invalid reference: "+err.Error())
		return
	}

	view, err := h.statusQuerier.QueryStatus(r.Context(), reference)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.TransactionStatusResponse{
		Ok:                    true,
		Reference:             view.Reference,
		State:                 api.TransactionState(view.State),
		AmountCents:           view.AmountCents,
		Amount:                service.FormatCents(view.AmountCents),
		Currency:              view.Currency,
		CreatedAt:             view.CreatedAt,
		ResolvedAt:            view.ResolvedAt,
		ProviderTransactionId: optionalString(view.ProviderTransactionID),
		FailureReason:         optionalString(view.FailureReason),
		LinkUrl:               optionalString(view.LinkURL),
	})
}
