package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	sheetRepo "heysheets/database/repository/sheet"
	"heysheets/models"
	"heysheets/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CatalogService loads the store's service catalog from its sheet.
type CatalogService interface {
	LoadServices(ctx context.Context, store models.Store) ([]models.Service, error)
}

// DefaultCatalogService implements CatalogService with a Redis read-through
// cache in front of the sheet.
type DefaultCatalogService struct {
	Sheets   sheetRepo.SheetRepository
	Cache    *redis.Client
	CacheTTL time.Duration
}

// ErrNoServicesTab is returned when the store schema has no tab matching
// "services".
var ErrNoServicesTab = fmt.Errorf("no services tab in store schema")

func (s *DefaultCatalogService) LoadServices(ctx context.Context, store models.Store) ([]models.Service, error) {
	logger := utils.GetLogger()
	cacheKey := utils.CatalogCachePrefix + store.ID + ":services"

	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var services []models.Service
			if err := json.Unmarshal([]byte(data), &services); err == nil {
				return services, nil
			}
			logger.Warn("discarding unreadable catalog cache entry", zap.String("storeID", store.ID))
		}
	}

	tab := ResolveTab("services", store.Schema)
	if tab == "" {
		return nil, ErrNoServicesTab
	}

	rows, err := s.Sheets.ReadTab(ctx, store.SpreadsheetID, tab)
	if err != nil {
		return nil, fmt.Errorf("load services for store %s: %w", store.ID, err)
	}

	services := ParseServiceRows(rows, logger)

	if s.Cache != nil && len(services) > 0 {
		if data, err := json.Marshal(services); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, data, s.CacheTTL).Err(); err != nil {
				logger.Warn("failed to cache catalog", zap.String("storeID", store.ID), zap.Error(err))
			}
		}
	}
	return services, nil
}

// ParseServiceRows converts sheet rows into Services. Rows with a missing
// name or a non-positive duration are skipped.
func ParseServiceRows(rows []map[string]string, logger *zap.Logger) []models.Service {
	services := make([]models.Service, 0, len(rows))
	for i, row := range rows {
		svc := models.Service{
			ID:       rowValue(row, "id", "service id", "service_id"),
			Name:     rowValue(row, "name", "service", "service name", "title"),
			Location: rowValue(row, "location", "venue"),
			Capacity: models.DefaultCapacity,
		}
		if svc.Name == "" {
			continue
		}
		if svc.ID == "" {
			svc.ID = slugify(svc.Name)
		}

		duration, err := strconv.Atoi(rowValue(row, "duration", "duration (min)", "duration_minutes", "minutes"))
		if err != nil || duration <= 0 {
			logger.Warn("skipping service row with invalid duration",
				zap.Int("row", i), zap.String("name", svc.Name))
			continue
		}
		svc.DurationMinutes = duration

		if raw := rowValue(row, "price", "cost"); raw != "" {
			cleaned := strings.TrimLeft(raw, "$€£¥ ")
			cleaned = strings.ReplaceAll(cleaned, ",", "")
			if price, err := strconv.ParseFloat(cleaned, 64); err == nil {
				svc.Price = price
			}
		}

		if raw := rowValue(row, "capacity", "max capacity", "spots"); raw != "" {
			if capacity, err := strconv.Atoi(raw); err == nil && capacity >= 1 {
				svc.Capacity = capacity
			}
		}

		services = append(services, svc)
	}
	return services
}

// rowValue looks a cell up by any of the given header names, ignoring case.
func rowValue(row map[string]string, keys ...string) string {
	for header, value := range row {
		lower := strings.ToLower(strings.TrimSpace(header))
		for _, key := range keys {
			if lower == key {
				return strings.TrimSpace(value)
			}
		}
	}
	return ""
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug
}
