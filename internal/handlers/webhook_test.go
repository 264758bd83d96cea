package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rideandbuy/paylink/internal/api"
	"github.com/rideandbuy/paylink/internal/models"
	"github.com/rideandbuy/paylink/internal/service"
	"github.com/rideandbuy/paylink/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandleWompiWebhook_Applied(t *testing.T) {
	mockReconciler := mocks.NewMockReconciler(t)
	handler := NewHandler(nil, mockReconciler, nil, nil, testLogger())

	body := `{"ResultadoTransaccion":"ExitosaAprobada","EnlacePago":{"IdentificadorEnlaceComercio":"R-1"},"IdTransaccion":"TX9"}`
	mockReconciler.On("HandleWebhook", mock.Anything, []byte(body)).Return(&service.WebhookResult{
		Reference: "R-1",
		Outcome:   service.OutcomeApproved,
		State:     models.TransactionStateApproved,
		Applied:   true,
	}, nil)

	rec := httptest.NewRecorder()
	handler.HandleWompiWebhook(rec, httptest.NewRequest(http.MethodPost, "/webhook/wompi", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[api.WebhookAckResponse](t, rec)
	assert.True(t, resp.Ok)
	assert.True(t, resp.Applied)
	assert.Equal(t, api.WebhookOutcome("approved"), resp.Outcome)
	require.NotNil(t, resp.State)
	assert.Equal(t, api.Approved, *resp.State)
}

func TestHandleWompiWebhook_UnhandledIsAcknowledged(t *testing.T) {
	mockReconciler := mocks.NewMockReconciler(t)
	handler := NewHandler(nil, mockReconciler, nil, nil, testLogger())

	mockReconciler.On("HandleWebhook", mock.Anything, mock.Anything).Return(&service.WebhookResult{
		Reference: "R-1",
		Outcome:   service.OutcomeUnhandled,
	}, nil)

	rec := httptest.NewRecorder()
	handler.HandleWompiWebhook(rec, httptest.NewRequest(http.MethodPost, "/webhook/wompi",
		strings.NewReader(`{"event":"link.viewed","data":{"reference":"R-1"}}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[api.WebhookAckResponse](t, rec)
	assert.True(t, resp.Ok)
	assert.False(t, resp.Applied)
	assert.Equal(t, api.WebhookOutcome("unhandled"), resp.Outcome)
	assert.Nil(t, resp.State)
}

func TestHandleWompiWebhook_Errors(t *testing.T) {
	tests := []struct {
		name           string
		serviceCode    string
		expectedCode   api.ErrorCode
		expectedStatus int
	}{
		{
			name:           "missing reference returns 400",
			serviceCode:    service.ErrCodeMissingReference,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   api.ErrorCodeMissingReference,
		},
		{
			name:           "unknown transaction returns 404",
			serviceCode:    service.ErrCodeUnknownTransaction,
			expectedStatus: http.StatusNotFound,
			expectedCode:   api.ErrorCodeUnknownTransaction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReconciler := mocks.NewMockReconciler(t)
			handler := NewHandler(nil, mockReconciler, nil, nil, testLogger())

			mockReconciler.On("HandleWebhook", mock.Anything, mock.Anything).
				Return(nil, &service.ServiceError{Code: tt.serviceCode, Message: "rejected"})

			rec := httptest.NewRecorder()
			handler.HandleWompiWebhook(rec, httptest.NewRequest(http.MethodPost, "/webhook/wompi", strings.NewReader(`{}`)))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedCode, decodeError(t, rec).Error)
		})
	}
}

func TestHandleWompiWebhook_BodyTooLarge(t *testing.T) {
	mockReconciler := mocks.NewMockReconciler(t)
	handler := NewHandler(nil, mockReconciler, nil, nil, testLogger())

	body := strings.Repeat("a", maxWebhookBodyBytes+1)
	rec := httptest.NewRecorder()
	handler.HandleWompiWebhook(rec, httptest.NewRequest(http.MethodPost, "/webhook/wompi", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, api.ErrorCodeInvalidRequest, decodeError(t, rec).Error)
	mockReconciler.AssertNotCalled(t, "HandleWebhook", mock.Anything, mock.Anything)
}
