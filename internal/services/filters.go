package services

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/kerjaplus/jobboard/internal/clients/cms"
	"github.com/kerjaplus/jobboard/internal/domain/models"
	"github.com/kerjaplus/jobboard/internal/events"
	"github.com/kerjaplus/jobboard/internal/logger"
	"github.com/kerjaplus/jobboard/internal/metrics"
	gocache "github.com/patrickmn/go-cache"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const filterCacheKey = "job-filters"

type cmsFiltersClient interface {
	GetFilters(ctx context.Context) (*cms.FilterData, error)
}

type filterCacheEntry struct {
	data      *models.FilterData
	fetchedAt time.Time
}

// FilterService serves the aggregated filter blob from a TTL-guarded cache.
// On upstream failure it degrades to stale data if any exists, else to an
// empty but structurally valid fallback; it never fails the caller.
type FilterService struct {
	client cmsFiltersClient
	cache  *gocache.Cache
	ttl    time.Duration
	now    func() time.Time
}

func NewFilterService(bus EventBus.Bus, client cmsFiltersClient, cache *gocache.Cache, ttl time.Duration) (*FilterService, error) {

	s := &FilterService{
		client: client,
		cache:  cache,
		ttl:    ttl,
		now:    time.Now,
	}

	if bus != nil {
		if err := bus.Subscribe(events.ContentUpdatedTopic, s.onContentUpdated); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *FilterService) GetFiltersData(ctx context.Context) *models.FilterData {

	entry, cached := s.cachedEntry()
	if cached && s.now().Sub(entry.fetchedAt) < s.ttl {
		metrics.FilterCacheRequests.WithLabelValues("hit").Inc()
		return entry.data
	}

	metrics.FilterCacheRequests.WithLabelValues("miss").Inc()

	raw, err := s.client.GetFilters(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCache).
			Errorf("failed to refresh filter data: %v", err)

		if cached {
			metrics.FilterCacheRequests.WithLabelValues("stale").Inc()
			return entry.data
		}
		return emptyFilterData()
	}

	data := filterDataFromCMS(raw)
	s.cache.Set(filterCacheKey, filterCacheEntry{data: data, fetchedAt: s.now()}, gocache.NoExpiration)
	return data
}

// ClearCache forces the next GetFiltersData call to hit the upstream.
func (s *FilterService) ClearCache() {
	s.cache.Delete(filterCacheKey)
}

func (s *FilterService) cachedEntry() (filterCacheEntry, bool) {
	cached, found := s.cache.Get(filterCacheKey)
	if !found {
		return filterCacheEntry{}, false
	}
	entry, ok := cached.(filterCacheEntry)
	return entry, ok
}

func (s *FilterService) onContentUpdated(event events.ContentUpdated) {
	if event.Type == events.ContentTypeJob || event.Type == events.ContentTypeFilters {
		s.ClearCache()
		log.Infof("filter cache cleared after %v update", event.Type)
	}
}

func filterDataFromCMS(raw *cms.FilterData) *models.FilterData {
	return &models.FilterData{
		EmploymentTypes:  optionsFromCMS(raw.EmploymentTypes),
		ExperienceLevels: optionsFromCMS(raw.ExperienceLevels),
		EducationLevels:  optionsFromCMS(raw.EducationLevels),
		Categories:       optionsFromCMS(raw.Categories),
		Tags:             optionsFromCMS(raw.Tags),
		WorkPolicies:     optionsFromCMS(raw.WorkPolicies),
		Provinces:        optionsFromCMS(raw.Provinces),
		Regencies:        optionsFromCMS(raw.Regencies),
		Skills:           optionsFromCMS(raw.Skills),
		SalaryRange:      models.SalaryRange{Min: raw.SalaryRange.Min, Max: raw.SalaryRange.Max},
	}
}

func optionsFromCMS(options []cms.FilterOption) []models.FilterOption {
	return lo.Map(options, func(option cms.FilterOption, _ int) models.FilterOption {
		return models.FilterOption{ID: option.ID, Name: option.Name, Slug: option.Slug, Count: option.Count}
	})
}

func emptyFilterData() *models.FilterData {
	return &models.FilterData{
		EmploymentTypes:  []models.FilterOption{},
		ExperienceLevels: []models.FilterOption{},
		EducationLevels:  []models.FilterOption{},
		Categories:       []models.FilterOption{},
		Tags:             []models.FilterOption{},
		WorkPolicies:     []models.FilterOption{},
		Provinces:        []models.FilterOption{},
		Regencies:        []models.FilterOption{},
		Skills:           []models.FilterOption{},
	}
}
