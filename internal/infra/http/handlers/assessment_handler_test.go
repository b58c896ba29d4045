package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jpher/readiness-funnel/internal/infra/http/handlers"
	"github.com/jpher/readiness-funnel/internal/usecase"
)

type MockAssessmentSubmitter struct {
	mock.Mock
}

func (m *MockAssessmentSubmitter) Execute(ctx context.Context, input usecase.SubmitAssessmentInput) (*usecase.SubmitAssessmentOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SubmitAssessmentOutput), args.Error(1)
}

func submitRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/submit-assessment", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// ============ TESTES ============

func TestAssessmentHandlerSuccess(t *testing.T) {
	submitter := new(MockAssessmentSubmitter)
	submitter.On("Execute", mock.Anything, mock.MatchedBy(func(in usecase.SubmitAssessmentInput) bool {
		return in.Email == "maria@example.com" && in.Scores.Data == 10
	})).Return(&usecase.SubmitAssessmentOutput{
		Success:        true,
		TotalScore:     45,
		Percentage:     75,
		ReadinessLevel: "High Readiness - Ready to Execute",
		EmailSent:      true,
	}, nil)

	handler := handlers.NewAssessmentHandler(submitter)
	rec := httptest.NewRecorder()

	handler.Handle(rec, submitRequest(`{
		"name": "Maria Souza",
		"email": "maria@example.com",
		"scores": {"data": 10, "process": 9, "team": 8, "strategic": 10, "change": 8}
	}`))

	assert.Equal(t, http.StatusOK, rec.Code)

	var output usecase.SubmitAssessmentOutput
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &output))
	assert.True(t, output.Success)
	assert.Equal(t, 75, output.Percentage)
}

func TestAssessmentHandlerInvalidJSON(t *testing.T) {
	submitter := new(MockAssessmentSubmitter)
	handler := handlers.NewAssessmentHandler(submitter)
	rec := httptest.NewRecorder()

	handler.Handle(rec, submitRequest(`{"name": `))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	submitter.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestAssessmentHandlerDomainError(t *testing.T) {
	submitter := new(MockAssessmentSubmitter)
	submitter.On("Execute", mock.Anything, mock.Anything).
		Return(nil, &usecase.DomainError{Code: "VALIDATION_ERROR", Message: "email: invalid email address"})

	handler := handlers.NewAssessmentHandler(submitter)
	rec := httptest.NewRecorder()

	handler.Handle(rec, submitRequest(`{"name": "Maria", "email": "nope"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid email address")
}

func TestAssessmentHandlerTechnicalError(t *testing.T) {
	submitter := new(MockAssessmentSubmitter)
	submitter.On("Execute", mock.Anything, mock.Anything).
		Return(nil, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: "connection refused"})

	handler := handlers.NewAssessmentHandler(submitter)
	rec := httptest.NewRecorder()

	handler.Handle(rec, submitRequest(`{"name": "Maria", "email": "maria@example.com"}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// Detalhe interno não vaza para o cliente
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestAssessmentHandlerStatus(t *testing.T) {
	handler := handlers.NewAssessmentHandler(new(MockAssessmentSubmitter))
	rec := httptest.NewRecorder()

	handler.HandleStatus(rec, httptest.NewRequest(http.MethodGet, "/submit-assessment", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Assessment API is running")
}
