package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heysheets/config"
	storeRepo "heysheets/database/repository/store"
	"heysheets/models"
	"heysheets/services/chat"
)

type fakeChatService struct {
	resp *models.ChatResponse
	err  error
}

func (f *fakeChatService) Handle(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	return f.resp, f.err
}

type fakeStoreRepo struct {
	store *models.Store
	err   error
}

func (f *fakeStoreRepo) GetByID(ctx context.Context, id string) (*models.Store, error) {
	return f.store, f.err
}

type fakeCatalog struct {
	services []models.Service
	err      error
}

func (f *fakeCatalog) LoadServices(ctx context.Context, store models.Store) ([]models.Service, error) {
	return f.services, f.err
}

func setupRouter(h *ChatHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	config.AppConfig.RequestTimeoutSecs = 30

	r := gin.New()
	r.POST("/api/chat", h.HandleChat)
	r.GET("/api/chat/services/:storeId", h.ListStoreServices)
	return r
}

func postChat(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleChatOK(t *testing.T) {
	h := NewChatHandler(&fakeChatService{resp: &models.ChatResponse{Text: "hi there"}}, &fakeStoreRepo{}, &fakeCatalog{})
	r := setupRouter(h)

	w := postChat(t, r, models.ChatRequest{
		StoreID:  "store-1",
		Messages: []models.ChatMessage{{Role: "user", Content: "hi"}},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "hi there", resp.Text)
}

func TestHandleChatMalformedBody(t *testing.T) {
	h := NewChatHandler(&fakeChatService{}, &fakeStoreRepo{}, &fakeCatalog{})
	r := setupRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleChatInvalidRequest(t *testing.T) {
	h := NewChatHandler(&fakeChatService{err: chat.ErrInvalidRequest}, &fakeStoreRepo{}, &fakeCatalog{})
	r := setupRouter(h)

	w := postChat(t, r, models.ChatRequest{StoreID: "store-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleChatStoreNotFound(t *testing.T) {
	err := fmt.Errorf("load store missing: %w", storeRepo.ErrStoreNotFound)
	h := NewChatHandler(&fakeChatService{err: err}, &fakeStoreRepo{}, &fakeCatalog{})
	r := setupRouter(h)

	w := postChat(t, r, models.ChatRequest{
		StoreID:  "missing",
		Messages: []models.ChatMessage{{Role: "user", Content: "hi"}},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleChatInternalError(t *testing.T) {
	h := NewChatHandler(&fakeChatService{err: errors.New("boom")}, &fakeStoreRepo{}, &fakeCatalog{})
	r := setupRouter(h)

	w := postChat(t, r, models.ChatRequest{
		StoreID:  "store-1",
		Messages: []models.ChatMessage{{Role: "user", Content: "hi"}},
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Internal detail stays out of the response body.
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestListStoreServices(t *testing.T) {
	store := &models.Store{ID: "store-1", Name: "Glow Studio"}
	services := []models.Service{{ID: "yoga", Name: "Yoga Class", DurationMinutes: 60}}
	h := NewChatHandler(&fakeChatService{}, &fakeStoreRepo{store: store}, &fakeCatalog{services: services})
	r := setupRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/services/store-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		StoreID  string           `json:"storeId"`
		Services []models.Service `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "store-1", resp.StoreID)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "Yoga Class", resp.Services[0].Name)
}

func TestListStoreServicesNotFound(t *testing.T) {
	h := NewChatHandler(&fakeChatService{}, &fakeStoreRepo{err: storeRepo.ErrStoreNotFound}, &fakeCatalog{})
	r := setupRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/services/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
