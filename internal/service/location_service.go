package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Leganyst/crew-platform/internal/cache"
	"github.com/Leganyst/crew-platform/internal/model"
	"github.com/Leganyst/crew-platform/internal/repository"
)

const locationSuggestions = 20

// LocationService — подсказки площадок.
type LocationService struct {
	locations repository.LocationRepository
	cache     cache.Store
}

func NewLocationService(locations repository.LocationRepository, store cache.Store) *LocationService {
	return &LocationService{locations: locations, cache: store}
}

func (s *LocationService) List(ctx context.Context, prefix string) ([]model.Location, error) {
	prefix = strings.TrimSpace(prefix)
	return cache.Remember(ctx, s.cache, cache.TableLocations, cache.Key("prefix", strings.ToLower(prefix)), func(ctx context.Context) ([]model.Location, error) {
		locs, err := s.locations.List(ctx, prefix, locationSuggestions)
		if err != nil {
			return nil, fmt.Errorf("list locations: %w", err)
		}
		return locs, nil
	})
}
