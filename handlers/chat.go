package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"heysheets/config"
	storeRepo "heysheets/database/repository/store"
	"heysheets/models"
	"heysheets/services/catalog"
	"heysheets/services/chat"
	"heysheets/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler exposes the chat orchestration pipeline over HTTP.
type ChatHandler struct {
	Chat    chat.ChatService
	Stores  storeRepo.StoreRepository
	Catalog catalog.CatalogService
}

// NewChatHandler constructs a ChatHandler.
func NewChatHandler(chatSvc chat.ChatService, stores storeRepo.StoreRepository, catalogSvc catalog.CatalogService) *ChatHandler {
	return &ChatHandler{Chat: chatSvc, Stores: stores, Catalog: catalogSvc}
}

// HandleChat runs one chat turn for POST /api/chat.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(),
		time.Duration(config.AppConfig.RequestTimeoutSecs)*time.Second)
	defer cancel()

	resp, err := h.Chat.Handle(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrInvalidRequest):
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		case errors.Is(err, storeRepo.ErrStoreNotFound):
			utils.JSONError(c, http.StatusNotFound, "store not found", req.StoreID)
		default:
			logger.Error("chat turn failed",
				zap.String("storeID", req.StoreID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "chat failed",
				"An unexpected error occurred. Please try again later.")
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListStoreServices returns the store's service catalog for
// GET /api/chat/services/:storeId. It backs the widget's "see all services"
// suggestion.
func (h *ChatHandler) ListStoreServices(c *gin.Context) {
	logger := utils.GetLogger()
	storeID := c.Param("storeId")

	ctx, cancel := context.WithTimeout(c.Request.Context(),
		time.Duration(config.AppConfig.RequestTimeoutSecs)*time.Second)
	defer cancel()

	store, err := h.Stores.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, storeRepo.ErrStoreNotFound) {
			utils.JSONError(c, http.StatusNotFound, "store not found", storeID)
			return
		}
		logger.Error("failed to load store", zap.String("storeID", storeID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load store", "")
		return
	}

	services, err := h.Catalog.LoadServices(ctx, *store)
	if err != nil {
		logger.Error("failed to load services", zap.String("storeID", storeID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load services", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"storeId": storeID, "services": services})
}
