package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tutorhub/models"
	"tutorhub/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Service looks up the subjects and school levels offered on the platform.
// Read-only; only the teacher-subjects step consumes it.
type Service interface {
	ListSubjects(ctx context.Context) ([]models.Subject, error)
	ListLevels(ctx context.Context) ([]models.Level, error)
}

const (
	subjectsCacheKey = "catalog:subjects"
	levelsCacheKey   = "catalog:levels"
)

// HTTPCatalog fetches the catalog from the collaborator API with a Redis
// read-through cache; the catalog changes rarely and every teacher signup
// hits it.
type HTTPCatalog struct {
	BaseURL    string
	HTTPClient *http.Client
	Cache      *redis.Client
	CacheTTL   time.Duration
}

func NewHTTPCatalog(baseURL string, cache *redis.Client, cacheTTL time.Duration) *HTTPCatalog {
	return &HTTPCatalog{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Cache:      cache,
		CacheTTL:   cacheTTL,
	}
}

func (c *HTTPCatalog) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	var subjects []models.Subject
	if err := c.fetch(ctx, "/api/catalog/subjects", subjectsCacheKey, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (c *HTTPCatalog) ListLevels(ctx context.Context) ([]models.Level, error) {
	var levels []models.Level
	if err := c.fetch(ctx, "/api/catalog/levels", levelsCacheKey, &levels); err != nil {
		return nil, err
	}
	return levels, nil
}

func (c *HTTPCatalog) fetch(ctx context.Context, path, cacheKey string, out any) error {
	if c.Cache != nil {
		if data, err := c.Cache.Get(ctx, cacheKey).Result(); err == nil {
			if err := json.Unmarshal([]byte(data), out); err == nil {
				return nil
			}
			utils.GetLogger().Warn("Catalog cache entry unreadable, refetching", zap.String("key", cacheKey))
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		utils.GetLogger().Error("Catalog: failed to build request", zap.String("path", path), zap.Error(err))
		return errors.New(utils.GenericUserError)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		utils.GetLogger().Error("Catalog: request failed", zap.String("path", path), zap.Error(err))
		return errors.New(utils.GenericUserError)
	}
	defer resp.Body.Close()

	var env models.APIEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		utils.GetLogger().Error("Catalog: failed to decode response", zap.String("path", path), zap.Error(err))
		return errors.New(utils.GenericUserError)
	}
	if !env.Success {
		if env.Error != "" {
			return fmt.Errorf("catalog lookup failed: %s", env.Error)
		}
		return errors.New(utils.GenericUserError)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		utils.GetLogger().Error("Catalog: failed to decode data", zap.String("path", path), zap.Error(err))
		return errors.New(utils.GenericUserError)
	}

	if c.Cache != nil {
		if err := c.Cache.Set(ctx, cacheKey, env.Data, c.CacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("Catalog: failed to cache entry", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return nil
}
