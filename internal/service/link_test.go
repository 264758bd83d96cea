package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rideandbuy/paylink/internal/config"
	"github.com/rideandbuy/paylink/internal/models"
	"github.com/rideandbuy/paylink/internal/provider"
	"github.com/rideandbuy/paylink/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLinkIssuer struct {
	mock.Mock
}

func newMockLinkIssuer(t *testing.T) *mockLinkIssuer {
	m := &mockLinkIssuer{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockLinkIssuer) CreatePaymentLink(ctx context.Context, req provider.LinkRequest) (*provider.Link, error) {
	args := m.Called(ctx, req)
	link, _ := args.Get(0).(*provider.Link) //nolint:errcheck // nil allowed
	return link, args.Error(1)
}

func testAppConfig(policy string) config.AppConfig {
	return config.AppConfig{
		Currency:           "USD",
		DuplicatePolicy:    policy,
		DefaultDescription: "Renta de Vehículo",
		MinAmountCents:     100,
		MaxAmountCents:     100000,
	}
}

func testLink(id string) *provider.Link {
	return &provider.Link{
		ID:        id,
		URL:       "https://pay.example/" + id,
		QRCodeURL: "https://pay.example/" + id + ".png",
	}
}

func TestLinkService_CreateLink(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		store := newTestStore(repository.DuplicateOverwrite)
		issuer := newMockLinkIssuer(t)
		svc := NewLinkService(store, issuer, testAppConfig(config.DuplicatePolicyOverwrite), testLogger())
		ctx := context.Background()

		issuer.On("CreatePaymentLink", ctx, provider.LinkRequest{
			Reference:   "R-1",
			ProductName: "Renta de Vehículo",
			Description: "Renta de Vehículo",
			AmountCents: 500,
		}).Return(testLink("L-1"), nil)

		result, err := svc.CreateLink(ctx, CreateLinkInput{Reference: " R-1 ", AmountCents: 500, CustomerID: "cust-7"})
		require.NoError(t, err)

		assert.Equal(t, "R-1", result.Reference)
		assert.Equal(t, "L-1", result.LinkID)
		assert.Equal(t, "https://pay.example/L-1", result.LinkURL)
		assert.Equal(t, "https://pay.example/L-1.png", result.QRCodeURL)
		assert.Equal(t, "USD", result.Currency)
		assert.Equal(t, int64(500), result.AmountCents)

		txn, err := store.Get("R-1")
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatePending, txn.State)
		assert.Equal(t, "cust-7", txn.CustomerID)
		assert.Equal(t, "Renta de Vehículo", txn.Description)
		assert.Equal(t, "L-1", txn.LinkID)
		assert.Equal(t, "https://pay.example/L-1", txn.LinkURL)
	})

	t.Run("custom description is passed through", func(t *testing.T) {
		store := newTestStore(repository.DuplicateOverwrite)
		issuer := newMockLinkIssuer(t)
		svc := NewLinkService(store, issuer, testAppConfig(config.DuplicatePolicyOverwrite), testLogger())

		issuer.On("CreatePaymentLink", mock.Anything, mock.MatchedBy(func(req provider.LinkRequest) bool {
			return req.Description == "Renta de vehículo por 3 días" && req.ProductName == "Renta de Vehículo"
		})).Return(testLink("L-2"), nil)

		_, err := svc.CreateLink(context.Background(), CreateLinkInput{
			Reference:   "R-2",
			AmountCents: 1500,
			Description: "  Renta de vehículo por 3 días ",
		})
		require.NoError(t, err)

		txn, err := store.Get("R-2")
		require.NoError(t, err)
		assert.Equal(t, "Renta de vehículo por 3 días", txn.Description)
	})

	t.Run("empty reference", func(t *testing.T) {
		store := newTestStore(repository.DuplicateOverwrite)
		issuer := newMockLinkIssuer(t)
		svc := NewLinkService(store, issuer, testAppConfig(config.DuplicatePolicyOverwrite), testLogger())

		result, err := svc.CreateLink(context.Background(), CreateLinkInput{Reference: "  ", AmountCents: 500})

		assert.Nil(t, result)
		requireCode(t, err, ErrCodeValidation)
		issuer.AssertNotCalled(t, "CreatePaymentLink", mock.Anything, mock.Anything)
	})

	t.Run("provider failure stores nothing", func(t *testing.T) {
		store := newTestStore(repository.DuplicateOverwrite)
		issuer := newMockLinkIssuer(t)
		svc := NewLinkService(store, issuer, testAppConfig(config.DuplicatePolicyOverwrite), testLogger())

		providerErr := &provider.APIError{StatusCode: 503, Body: "unavailable"}
		issuer.On("CreatePaymentLink", mock.Anything, mock.Anything).Return(nil, providerErr)

		result, err := svc.CreateLink(context.Background(), CreateLinkInput{Reference: "R-1", AmountCents: 500})

		assert.Nil(t, result)
		requireCode(t, err, ErrCodeProviderError)

		var apiErr *provider.APIError
		assert.True(t, errors.As(err, &apiErr))
		assert.False(t, store.Exists("R-1"))
	})
}

func TestLinkService_AmountBounds(t *testing.T) {
	tests := []struct {
		name      string
		errSubstr string
		amount    int64
	}{
		{name: "below min", amount: 99, errSubstr: "amount must be at least 1.00 USD"},
		{name: "exactly min", amount: 100},
		{name: "exactly max", amount: 100000},
		{name: "above max", amount: 100001, errSubstr: "amount must be at most 1000.00 USD"},
		{name: "zero", amount: 0, errSubstr: "at least"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(repository.DuplicateOverwrite)
			issuer := newMockLinkIssuer(t)
			svc := NewLinkService(store, issuer, testAppConfig(config.DuplicatePolicyOverwrite), testLogger())

			if tt.errSubstr == "" {
				issuer.On("CreatePaymentLink", mock.Anything, mock.Anything).Return(testLink("L-1"), nil)
			}

			result, err := svc.CreateLink(context.Background(), CreateLinkInput{Reference: "R-1", AmountCents: tt.amount})

			if tt.errSubstr == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.amount, result.AmountCents)
				assert.True(t, store.Exists("R-1"))
				return
			}

			assert.Nil(t, result)
			requireCode(t, err, ErrCodeValidation)
			assert.Contains(t, err.Error(), tt.errSubstr)
			assert.False(t, store.Exists("R-1"))
		})
	}
}

func TestLinkService_DuplicateReference(t *testing.T) {
	t.Run("reject policy fails before calling the provider", func(t *testing.T) {
		store := newTestStore(repository.DuplicateReject)
		issuer := newMockLinkIssuer(t)
		svc := NewLinkService(store, issuer, testAppConfig(config.DuplicatePolicyReject), testLogger())
		ctx := context.Background()

		issuer.On("CreatePaymentLink", mock.Anything, mock.Anything).Return(testLink("L-1"), nil).Once()

		_, err := svc.CreateLink(ctx, CreateLinkInput{Reference: "R-1", AmountCents: 500})
		require.NoError(t, err)

		result, err := svc.CreateLink(ctx, CreateLinkInput{Reference: "R-1", AmountCents: 900})
		assert.Nil(t, result)
		requireCode(t, err, ErrCodeDuplicateReference)

		issuer.AssertNumberOfCalls(t, "CreatePaymentLink", 1)

		txn, err := store.Get("R-1")
		require.NoError(t, err)
		assert.Equal(t, int64(500), txn.AmountCents)
		assert.Equal(t, "L-1", txn.LinkID)
	})

	t.Run("overwrite policy replaces the record", func(t *testing.T) {
		store := newTestStore(repository.DuplicateOverwrite)
		issuer := newMockLinkIssuer(t)
		svc := NewLinkService(store, issuer, testAppConfig(config.DuplicatePolicyOverwrite), testLogger())
		ctx := context.Background()

		issuer.On("CreatePaymentLink", mock.Anything, mock.Anything).Return(testLink("L-1"), nil).Once()
		issuer.On("CreatePaymentLink", mock.Anything, mock.Anything).Return(testLink("L-2"), nil).Once()

		_, err := svc.CreateLink(ctx, CreateLinkInput{Reference: "R-1", AmountCents: 500})
		require.NoError(t, err)

		result, err := svc.CreateLink(ctx, CreateLinkInput{Reference: "R-1", AmountCents: 900})
		require.NoError(t, err)
		assert.Equal(t, "L-2", result.LinkID)

		txn, err := store.Get("R-1")
		require.NoError(t, err)
		assert.Equal(t, int64(900), txn.AmountCents)
		assert.Equal(t, "L-2", txn.LinkID)
		assert.Equal(t, models.TransactionStatePending, txn.State)
	})
}
