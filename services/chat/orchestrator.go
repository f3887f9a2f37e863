package chat

import (
	"context"
	"fmt"
	"time"

	storeRepo "heysheets/database/repository/store"
	"heysheets/models"
	"heysheets/services/availability"
	"heysheets/services/booking"
	"heysheets/services/catalog"
	"heysheets/services/intelligence"
	"heysheets/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatService runs one full chat turn: classify, dispatch, synthesize.
type ChatService interface {
	Handle(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}

// DefaultChatService implements ChatService. Each turn is stateless: all
// state arrives in the request and leaves in the response.
type DefaultChatService struct {
	Stores       storeRepo.StoreRepository
	Catalog      catalog.CatalogService
	Availability availability.AvailabilityEngine
	Booking      booking.BookingEngine
	Classifier   intelligence.Classifier
	Synthesizer  intelligence.Synthesizer
	// Debug mirrors per-turn events to the observability collaborator.
	// Nil disables emission.
	Debug DebugSink
}

// ErrInvalidRequest is returned for requests missing a store id or messages.
var ErrInvalidRequest = fmt.Errorf("chat request requires storeId and at least one message")

func (s *DefaultChatService) Handle(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	logger := utils.GetLogger()

	if req.StoreID == "" || len(req.Messages) == 0 {
		return nil, ErrInvalidRequest
	}

	debug := models.ChatDebug{RequestID: uuid.New().String()}

	store, err := s.Stores.GetByID(ctx, req.StoreID)
	if err != nil {
		return nil, fmt.Errorf("load store %s: %w", req.StoreID, err)
	}

	// Catalog context for the classifier. The widget may replay its local
	// copy so the turn can skip the sheet read.
	var services []models.Service
	if req.CachedData != nil && len(req.CachedData.Services) > 0 {
		services = req.CachedData.Services
	} else {
		services, err = s.Catalog.LoadServices(ctx, *store)
		if err != nil {
			logger.Warn("classifier will run without catalog context",
				zap.String("storeID", store.ID), zap.Error(err))
			services = nil
		}
	}

	now := time.Now().In(availability.BusinessLocation())

	classifyStart := time.Now()
	classification, usage := s.Classifier.Classify(ctx, req.Model, req.Messages, services, now)
	debug.Tokens.Add(usage)
	debug.Timings = append(debug.Timings, models.StageTiming{
		Stage:      "classify",
		DurationMs: time.Since(classifyStart).Milliseconds(),
	})
	debug.Intent = classification.Intent
	debug.Confidence = classification.Confidence

	var result *models.ToolResult
	if tool := classification.Tool(); tool != "" {
		toolStart := time.Now()
		r := s.dispatch(ctx, *store, tool, classification.Params, services)
		result = &r
		debug.FunctionCalls = append(debug.FunctionCalls, models.FunctionCall{
			Name:       tool,
			Code:       r.Code,
			Success:    r.Success,
			DurationMs: time.Since(toolStart).Milliseconds(),
		})
		debug.Timings = append(debug.Timings, models.StageTiming{
			Stage:      "tool",
			DurationMs: time.Since(toolStart).Milliseconds(),
		})
	}

	synthStart := time.Now()
	text, synthUsage := s.Synthesizer.Synthesize(ctx, req.Model, classification, result)
	debug.Tokens.Add(synthUsage)
	debug.Timings = append(debug.Timings, models.StageTiming{
		Stage:      "synthesize",
		DurationMs: time.Since(synthStart).Milliseconds(),
	})
	debug.CostUSD = intelligence.EstimateCost(debug.Tokens)

	resp := &models.ChatResponse{
		Text:        text,
		RichContent: richContent(result),
		Suggestions: suggestions(classification, result),
		Debug:       debug,
	}

	if s.Debug != nil {
		s.Debug.Emit(ctx, debug)
	}
	return resp, nil
}

// dispatch routes the recommended tool call. Engines own their parameter
// validation, so an under-specified call comes back as a clarification
// prompt rather than an error.
func (s *DefaultChatService) dispatch(ctx context.Context, store models.Store, tool string, params models.ClassificationParams, services []models.Service) models.ToolResult {
	switch tool {
	case models.ToolCheckAvailability:
		return s.Availability.CheckAvailability(ctx, store,
			str(params.ServiceName), str(params.Date), str(params.Time))

	case models.ToolGetBookingSlots:
		start := str(params.Date)
		end := ""
		if start != "" {
			// A specific date narrows the range; otherwise the engine
			// defaults to a week from today.
			end = start
		} else {
			loc := availability.BusinessLocation()
			start = time.Now().In(loc).Format("2006-01-02")
			end = time.Now().In(loc).AddDate(0, 0, 6).Format("2006-01-02")
		}
		return s.Availability.GetBookingSlots(ctx, store,
			str(params.ServiceName), start, end, str(params.Date), str(params.Time))

	case models.ToolCreateBooking:
		return s.Booking.CreateBooking(ctx, store, booking.BookingParams{
			ServiceName:   str(params.ServiceName),
			Date:          str(params.Date),
			Time:          str(params.Time),
			CustomerName:  str(params.CustomerName),
			CustomerEmail: str(params.Email),
			CustomerPhone: str(params.Phone),
		})

	case models.ToolListServices:
		if len(services) == 0 {
			loaded, err := s.Catalog.LoadServices(ctx, store)
			if err != nil {
				utils.GetLogger().Error("failed to list services",
					zap.String("storeID", store.ID), zap.Error(err))
				return models.Failure(tool, models.CodeToolError,
					"Sorry, I could not load the service list right now.")
			}
			services = loaded
		}
		return models.ToolResult{
			Tool:     tool,
			Success:  true,
			Code:     models.CodeOK,
			Services: services,
		}

	default:
		return models.Failure(tool, models.CodeToolError, "Sorry, I could not help with that.")
	}
}

func richContent(result *models.ToolResult) *models.RichContent {
	if result == nil || !result.Success {
		return nil
	}
	if result.SlotList != nil {
		return &models.RichContent{Type: "slots", SlotList: result.SlotList}
	}
	if result.Services != nil {
		return &models.RichContent{Type: "services", Services: result.Services}
	}
	return nil
}

// suggestions offers the widget quick-reply chips matched to where the
// conversation can go next.
func suggestions(classification models.Classification, result *models.ToolResult) []string {
	if result == nil {
		if classification.Intent == models.IntentGreeting {
			return []string{"Show me your services", "Check availability"}
		}
		return nil
	}
	switch result.Code {
	case models.CodeServiceNotFound:
		return []string{"Show all services"}
	case models.CodeFullyBooked, models.CodeNoClassScheduled, models.CodeNotAvailable:
		return []string{"Show available times"}
	case models.CodeOK:
		if result.SlotList != nil || result.Availability != nil {
			return []string{"Book it"}
		}
	}
	return nil
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
