package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jpher/readiness-funnel/internal/entity"
	"github.com/jpher/readiness-funnel/internal/infra/queue"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Upsert(ctx context.Context, lead *entity.Lead) (bool, error) {
	args := m.Called(ctx, lead)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindEligible(ctx context.Context, fromStep int, sentBefore time.Time, limit int) ([]*entity.Lead, error) {
	args := m.Called(ctx, fromStep, sentBefore, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) AdvanceStep(ctx context.Context, email string, toStep int, sentAt time.Time) (bool, error) {
	args := m.Called(ctx, email, toStep, sentAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeadRepository) MarkUnsubscribed(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockSuppressionRepository
type MockSuppressionRepository struct {
	mock.Mock
}

func (m *MockSuppressionRepository) Add(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockSuppressionRepository) Exists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendWelcome(lead *entity.Lead) error {
	args := m.Called(lead)
	return args.Error(0)
}

func (m *MockEmailService) SendStep(lead *entity.Lead, subject, templateFile string) error {
	args := m.Called(lead, subject, templateFile)
	return args.Error(0)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishLeadCaptured(ctx context.Context, payload queue.LeadCapturedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
