package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rideandbuy/paylink/internal/api"
	"github.com/rideandbuy/paylink/internal/service"
)

// CreatePaymentLink handles POST /api/v1/payment-links
func (h *Handler) CreatePaymentLink(w http.ResponseWriter, r *http.Request) {
	var body api.CreatePaymentLinkRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err := decoder.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidRequest, "request body must be a JSON object")
		return
	}

	result, err := h.linkService.CreateLink(r.Context(), service.CreateLinkInput{
		Reference:   body.Reference,
		AmountCents: body.AmountCents,
		Description: stringValue(body.Description),
		CustomerID:  stringValue(body.CustomerId),
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.PaymentLinkResponse{
		Ok:          true,
		Reference:   result.Reference,
		LinkId:      result.LinkID,
		LinkUrl:     result.LinkURL,
		QrCodeUrl:   optionalString(result.QRCodeURL),
		AmountCents: result.AmountCents,
		Currency:    result.Currency,
	})
}
