package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	apperrors "catalog-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrRequestIDNotFound is returned by a RequestIDStore for unknown or expired ids
var ErrRequestIDNotFound = errors.New("request ID not found")

// RequestIDStore stores processed request IDs with their responses
type RequestIDStore interface {
	// Reserve claims the id for one in-flight request. It reports false when the id is already
	// reserved or holds a stored response.
	Reserve(ctx context.Context, requestID string, ttl time.Duration) (bool, error)
	Store(ctx context.Context, requestID string, response []byte, ttl time.Duration) error
	Get(ctx context.Context, requestID string) ([]byte, error)
	// Release drops a reservation whose request did not produce a response worth replaying
	Release(ctx context.Context, requestID string) error
}

// PendingMarker is the value a reserved id holds until its response is stored
var PendingMarker = []byte(`{"status":0}`)

// InMemoryRequestIDStore is an in-memory implementation of RequestIDStore
type InMemoryRequestIDStore struct {
	mu    sync.Mutex
	store map[string]requestIDEntry
	now   func() time.Time
}

type requestIDEntry struct {
	response  []byte
	expiresAt time.Time
}

// NewInMemoryRequestIDStore creates a new in-memory request ID store.
// Expired entries are dropped lazily on lookup and on every Store.
func NewInMemoryRequestIDStore() *InMemoryRequestIDStore {
	return &InMemoryRequestIDStore{
		store: make(map[string]requestIDEntry),
		now:   time.Now,
	}
}

func (s *InMemoryRequestIDStore) Reserve(ctx context.Context, requestID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if entry, exists := s.store[requestID]; exists && !now.After(entry.expiresAt) {
		return false, nil
	}
	s.store[requestID] = requestIDEntry{
		response:  PendingMarker,
		expiresAt: now.Add(ttl),
	}
	return true, nil
}

func (s *InMemoryRequestIDStore) Store(ctx context.Context, requestID string, response []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, entry := range s.store {
		if now.After(entry.expiresAt) {
			delete(s.store, id)
		}
	}
	s.store[requestID] = requestIDEntry{
		response:  response,
		expiresAt: now.Add(ttl),
	}
	return nil
}

func (s *InMemoryRequestIDStore) Get(ctx context.Context, requestID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.store[requestID]
	if !exists {
		return nil, ErrRequestIDNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.store, requestID)
		return nil, ErrRequestIDNotFound
	}
	return entry.response, nil
}

func (s *InMemoryRequestIDStore) Release(ctx context.Context, requestID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.store, requestID)
	return nil
}

// cachedResponse is what gets stored per request ID. Status 0 marks a reservation.
type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

func isWrite(method string) bool {
	return method != http.MethodGet && method != http.MethodHead && method != http.MethodOptions
}

// IdempotencyMiddleware replays the stored response when a write request repeats its X-Request-ID,
// so an intent is never applied twice. The id is reserved before the handler runs: a duplicate that
// arrives while the first request is in flight gets 409. Only 2xx responses are kept; any other
// outcome releases the id so the client can retry.
// Register it after authentication so replays are only served to authorized callers.
func IdempotencyMiddleware(store RequestIDStore, logger *zap.Logger, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isWrite(c.Request.Method) {
			c.Next()
			return
		}

		requestID := GetRequestID(c)
		if requestID == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := c.Request.Method + " " + c.Request.URL.Path + " " + requestID

		reserved, err := store.Reserve(ctx, key, ttl)
		if err != nil {
			// fail open
			logger.Warn("Error reserving request ID",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
			c.Next()
			return
		}
		if !reserved {
			replay(c, store, logger, key, requestID)
			return
		}

		stored := false
		defer func() {
			if stored {
				return
			}
			if err := store.Release(context.Background(), key); err != nil {
				logger.Warn("Failed to release request ID", zap.String("request_id", requestID), zap.Error(err))
			}
		}()

		writer := &responseWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		if status < 200 || status >= 300 || len(writer.body) == 0 {
			return
		}

		payload, err := json.Marshal(cachedResponse{Status: status, Body: writer.body})
		if err != nil {
			logger.Warn("Failed to encode response for idempotency", zap.String("request_id", requestID), zap.Error(err))
			return
		}
		if err := store.Store(ctx, key, payload, ttl); err != nil {
			logger.Warn("Failed to store response for idempotency",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
			return
		}
		stored = true
	}
}

// replay answers a request whose id is already taken, either with the stored response
// or with 409 while the first request is still running
func replay(c *gin.Context, store RequestIDStore, logger *zap.Logger, key, requestID string) {
	raw, err := store.Get(c.Request.Context(), key)
	if err == nil {
		var cached cachedResponse
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil && cached.Status != 0 {
			logger.Info("Duplicate request detected, returning cached response",
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			c.Header("Idempotent-Replayed", "true")
			c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
			c.Abort()
			return
		}
	} else if !errors.Is(err, ErrRequestIDNotFound) {
		logger.Warn("Error reading request ID store",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}

	logger.Info("Duplicate request while the first is in flight",
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
	)
	stdErr := apperrors.NewRequestInProgress(requestID)
	c.AbortWithStatusJSON(stdErr.HTTPStatus(), stdErr)
}

// responseWriter captures the response body
type responseWriter struct {
	gin.ResponseWriter
	body []byte
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body = append(w.body, s...)
	return w.ResponseWriter.WriteString(s)
}
