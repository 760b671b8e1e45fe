package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog-service/internal/domain"
	"catalog-service/internal/events"
	"catalog-service/internal/repository"
	"catalog-service/pkg/errors"
	"catalog-service/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCatalogRepository is a mock implementation of CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Snapshot), args.Error(1)
}

func (m *MockCatalogRepository) Increment(ctx context.Context, id int) (repository.Result, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(repository.Result), args.Error(1)
}

func (m *MockCatalogRepository) Decrement(ctx context.Context, id int) (repository.Result, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(repository.Result), args.Error(1)
}

func (m *MockCatalogRepository) AddItem(ctx context.Context, name, priceText string) (repository.Result, error) {
	args := m.Called(ctx, name, priceText)
	return args.Get(0).(repository.Result), args.Error(1)
}

func (m *MockCatalogRepository) DeleteItem(ctx context.Context, id int) (repository.Result, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(repository.Result), args.Error(1)
}

func (m *MockCatalogRepository) Reset(ctx context.Context) (domain.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Snapshot), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event interface{}) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func setupTestRouter(handler *CatalogHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware(zap.NewNop()))
	router.Use(middleware.IdempotencyMiddleware(middleware.NewInMemoryRequestIDStore(), zap.NewNop(), time.Minute))
	router.Use(middleware.ErrorHandler(zap.NewNop()))

	v1 := router.Group("/api/v1")
	{
		catalog := v1.Group("/catalog")
		{
			catalog.GET("", handler.GetCatalog)
			catalog.GET("/total", handler.GetTotal)
			catalog.POST("/items", handler.AddItem)
			catalog.POST("/items/:id/increment", handler.IncrementItem)
			catalog.POST("/items/:id/decrement", handler.DecrementItem)
			catalog.DELETE("/items/:id", handler.DeleteItem)
			catalog.POST("/reset", handler.ResetCatalog)
		}
	}

	return router
}

func seededSnapshot(quantities ...int) domain.Snapshot {
	c := domain.NewSeededCatalog()
	for i, q := range quantities {
		for n := 0; n < q; n++ {
			c.Increment(i + 1)
		}
	}
	return c.Snapshot()
}

func decodeCatalog(t *testing.T, w *httptest.ResponseRecorder) CatalogResponse {
	t.Helper()
	var resp CatalogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errors.StandardError {
	t.Helper()
	var resp errors.StandardError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetCatalog_Success(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	handler := NewCatalogHandler(zap.NewNop(), mockRepo, new(MockEventPublisher))
	router := setupTestRouter(handler)

	mockRepo.On("Snapshot", mock.Anything).Return(seededSnapshot(2, 1), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeCatalog(t, w)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "Produto A - R$ 10.00 (x2)", resp.Items[0].Label)
	assert.Equal(t, "20.00", resp.Items[0].Subtotal)
	assert.Equal(t, "40.00", resp.Total)
	assert.Equal(t, "Total: R$ 40.00", resp.TotalLabel)
	assert.Nil(t, resp.Applied)
	mockRepo.AssertExpectations(t)
}

func TestGetCatalog_RepositoryError(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	handler := NewCatalogHandler(zap.NewNop(), mockRepo, new(MockEventPublisher))
	router := setupTestRouter(handler)

	mockRepo.On("Snapshot", mock.Anything).Return(domain.Snapshot{}, stderrors.New("boom"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "InternalError", decodeError(t, w).Code)
}

func TestGetTotal_Success(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	handler := NewCatalogHandler(zap.NewNop(), mockRepo, new(MockEventPublisher))
	router := setupTestRouter(handler)

	mockRepo.On("Snapshot", mock.Anything).Return(seededSnapshot(1, 0), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/total", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp TotalResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "10.00", resp.Total)
	assert.Equal(t, "Total: R$ 10.00", resp.Label)
}

func TestAddItem_Success(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	mockEventBus := new(MockEventPublisher)
	handler := NewCatalogHandler(zap.NewNop(), mockRepo, mockEventBus)
	router := setupTestRouter(handler)

	c := domain.NewSeededCatalog()
	item, err := c.AddItem("Produto D", "12.50")
	require.NoError(t, err)

	mockRepo.On("AddItem", mock.Anything, "Produto D", "12.50").
		Return(repository.Result{Item: item, Applied: true, Snapshot: c.Snapshot()}, nil)
	mockEventBus.On("Publish", mock.Anything, mock.MatchedBy(func(e events.CatalogItemAddedEvent) bool {
		return e.ItemID == 3 && e.Name == "Produto D" && e.Price == "12.50" && e.Quantity == 0
	})).Return(nil)

	body, _ := json.Marshal(AddItemRequest{Name: "Produto D", Price: "12.50"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/items", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp AddItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Item.ID)
	assert.Equal(t, "12.50", resp.Item.Price)
	assert.Equal(t, 3, resp.Catalog.Count)
	mockRepo.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
}

func TestAddItem_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		request     AddItemRequest
		repoErr     error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "missing name",
			request:     AddItemRequest{Name: "", Price: "10"},
			repoErr:     domain.ErrMissingField,
			wantCode:    "MissingField",
			wantMessage: "fill in name and price",
		},
		{
			name:        "negative price",
			request:     AddItemRequest{Name: "Produto D", Price: "-5"},
			repoErr:     domain.ErrInvalidPrice,
			wantCode:    "InvalidPrice",
			wantMessage: "enter a valid price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCatalogRepository)
			mockEventBus := new(MockEventPublisher)
			handler := NewCatalogHandler(zap.NewNop(), mockRepo, mockEventBus)
			router := setupTestRouter(handler)

			mockRepo.On("AddItem", mock.Anything, tt.request.Name, tt.request.Price).
				Return(repository.Result{}, tt.repoErr)

			body, _ := json.Marshal(tt.request)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/items", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantMessage, resp.Message)
			mockEventBus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}
}

func TestAddItem_MalformedBody(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	handler := NewCatalogHandler(zap.NewNop(), mockRepo, new(MockEventPublisher))
	router := setupTestRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/items", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "InvalidRequest", decodeError(t, w).Code)
	mockRepo.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
}

func TestIncrementItem_PublishesEvent(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	mockEventBus := new(MockEventPublisher)
	handler := NewCatalogHandler(zap.NewNop(), mockRepo, mockEventBus)
	router := setupTestRouter(handler)

	snap := seededSnapshot(1, 0)
	mockRepo.On("Increment", mock.Anything, 1).
		Return(repository.Result{Item: snap.Items[0], Applied: true, Snapshot: snap}, nil)
	mockEventBus.On("Publish", mock.Anything, mock.MatchedBy(func(e events.ItemQuantityIncrementedEvent) bool {
		return e.ItemID == 1 && e.Quantity == 1 && e.Total == "10.00"
	})).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/items/1/increment", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeCatalog(t, w)
	require.NotNil(t, resp.Applied)
	assert.True(t, *resp.Applied)
	assert.Equal(t, "10.00", resp.Total)
	mockEventBus.AssertExpectations(t)
}

func TestIncrementItem_PublishFailureDoesNotFailRequest(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	mockEventBus := new(MockEventPublisher)
	handler := NewCatalogHandler(zap.NewNop(), mockRepo, mockEventBus)
	router := setupTestRouter(handler)

	snap := seededSnapshot(0, 1)
	mockRepo.On("Increment", mock.Anything, 2).
		Return(repository.Result{Item: snap.Items[1], Applied: true, Snapshot: snap}, nil)
	mockEventBus.On("Publish", mock.Anything, mock.Anything).Return(stderrors.New("broker down"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/items/2/increment", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "20.00", decodeCatalog(t, w).Total)
}

func TestDecrementItem_AtZeroIsNoOp(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	mockEventBus := new(MockEventPublisher)
	handler := NewCatalogHandler(zap.NewNop(), mockRepo, mockEventBus)
	router := setupTestRouter(handler)

	snap := seededSnapshot()
	mockRepo.On("Decrement", mock.Anything, 1).
		Return(repository.Result{Item: snap.Items[0], Applied: false, Snapshot: snap}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/items/1/decrement", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeCatalog(t, w)
	require.NotNil(t, resp.Applied)
	assert.False(t, *resp.Applied)
	assert.Equal(t, 0, resp.Items[0].Quantity)
	mockEventBus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestItemRoutes_InvalidID(t *testing.T) {
	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/catalog/items/abc/increment"},
		{http.MethodPost, "/api/v1/catalog/items/1.5/decrement"},
		{http.MethodDelete, "/api/v1/catalog/items/x"},
	}

	for _, p := range paths {
		t.Run(p.path, func(t *testing.T) {
			mockRepo := new(MockCatalogRepository)
			handler := NewCatalogHandler(zap.NewNop(), mockRepo, new(MockEventPublisher))
			router := setupTestRouter(handler)

			req := httptest.NewRequest(p.method, p.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "InvalidRequest", decodeError(t, w).Code)
			assert.Empty(t, mockRepo.Calls)
		})
	}
}

func TestDeleteItem_PublishesEvent(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	mockEventBus := new(MockEventPublisher)
	handler := NewCatalogHandler(zap.NewNop(), mockRepo, mockEventBus)
	router := setupTestRouter(handler)

	c := domain.NewSeededCatalog()
	c.Increment(1)
	removed, _ := c.DeleteItem(1)
	mockRepo.On("DeleteItem", mock.Anything, 1).
		Return(repository.Result{Item: removed, Applied: true, Snapshot: c.Snapshot()}, nil)
	mockEventBus.On("Publish", mock.Anything, mock.MatchedBy(func(e events.CatalogItemDeletedEvent) bool {
		return e.ItemID == 1 && e.Quantity == 1
	})).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/catalog/items/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeCatalog(t, w)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "0.00", resp.Total)
	mockEventBus.AssertExpectations(t)
}

func TestResetCatalog(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	handler := NewCatalogHandler(zap.NewNop(), mockRepo, new(MockEventPublisher))
	router := setupTestRouter(handler)

	mockRepo.On("Reset", mock.Anything).Return(seededSnapshot(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/reset", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeCatalog(t, w)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "0.00", resp.Total)
}

func TestNewItemResponse(t *testing.T) {
	resp := newItemResponse(domain.Item{ID: 3, Name: "Produto C", Price: decimal.RequireFromString("15.5"), Quantity: 2})

	assert.Equal(t, "15.50", resp.Price)
	assert.Equal(t, "31.00", resp.Subtotal)
	assert.Equal(t, "Produto C - R$ 15.50 (x2)", resp.Label)
}
