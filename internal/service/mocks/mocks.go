// Package mocks provides testify mocks for the service and repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/rideandbuy/paylink/internal/models"
	"github.com/rideandbuy/paylink/internal/service"
	"github.com/stretchr/testify/mock"
)

type cleanupT interface {
	mock.TestingT
	Cleanup(func())
}

// MockLinkCreator is a mock of service.LinkCreator
type MockLinkCreator struct {
	mock.Mock
}

// NewMockLinkCreator creates a MockLinkCreator whose expectations are asserted on cleanup
func NewMockLinkCreator(t cleanupT) *MockLinkCreator {
	m := &MockLinkCreator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// CreateLink provides a mock function
func (m *MockLinkCreator) CreateLink(ctx context.Context, input service.CreateLinkInput) (*service.LinkResult, error) {
	args := m.Called(ctx, input)
	result, _ := args.Get(0).(*service.LinkResult) //nolint:errcheck // nil allowed
	return result, args.Error(1)
}

// MockReconciler is a mock of service.Reconciler
type MockReconciler struct {
	mock.Mock
}

// NewMockReconciler creates a MockReconciler whose expectations are asserted on cleanup
func NewMockReconciler(t cleanupT) *MockReconciler {
	m := &MockReconciler{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// HandleWebhook provides a mock function
func (m *MockReconciler) HandleWebhook(ctx context.Context, body []byte) (*service.WebhookResult, error) {
	args := m.Called(ctx, body)
	result, _ := args.Get(0).(*service.WebhookResult) //nolint:errcheck // nil allowed
	return result, args.Error(1)
}

// MockStatusQuerier is a mock of service.StatusQuerier
type MockStatusQuerier struct {
	mock.Mock
}

// NewMockStatusQuerier creates a MockStatusQuerier whose expectations are asserted on cleanup
func NewMockStatusQuerier(t cleanupT) *MockStatusQuerier {
	m := &MockStatusQuerier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// QueryStatus provides a mock function
func (m *MockStatusQuerier) QueryStatus(ctx context.Context, reference string) (*service.StatusView, error) {
	args := m.Called(ctx, reference)
	view, _ := args.Get(0).(*service.StatusView) //nolint:errcheck // nil allowed
	return view, args.Error(1)
}

// MockHealthChecker is a mock of service.HealthChecker
type MockHealthChecker struct {
	mock.Mock
}

// NewMockHealthChecker creates a MockHealthChecker whose expectations are asserted on cleanup
func NewMockHealthChecker(t cleanupT) *MockHealthChecker {
	m := &MockHealthChecker{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// PingContext provides a mock function
func (m *MockHealthChecker) PingContext(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockIdempotencyRepository is a mock of repository.IdempotencyRepository
type MockIdempotencyRepository struct {
	mock.Mock
}

// NewMockIdempotencyRepository creates a MockIdempotencyRepository whose expectations are asserted on cleanup
func NewMockIdempotencyRepository(t cleanupT) *MockIdempotencyRepository {
	m := &MockIdempotencyRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Get provides a mock function
func (m *MockIdempotencyRepository) Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error) {
	args := m.Called(ctx, key, requestPath)
	cached, _ := args.Get(0).(*models.IdempotencyKey) //nolint:errcheck // nil allowed
	return cached, args.Error(1)
}

// Store provides a mock function
func (m *MockIdempotencyRepository) Store(ctx context.Context, idemKey *models.IdempotencyKey) error {
	args := m.Called(ctx, idemKey)
	return args.Error(0)
}

// DeleteOlderThan provides a mock function
func (m *MockIdempotencyRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	deleted, _ := args.Get(0).(int64) //nolint:errcheck // zero allowed
	return deleted, args.Error(1)
}

// PingContext provides a mock function
func (m *MockIdempotencyRepository) PingContext(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
