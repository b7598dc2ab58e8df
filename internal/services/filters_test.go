package services

import (
	"context"
	"testing"
	"time"

	"github.com/kerjaplus/jobboard/internal/clients/cms"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type fakeFiltersClient struct {
	calls int
	data  *cms.FilterData
	err   error
}

func (f *fakeFiltersClient) GetFilters(_ context.Context) (*cms.FilterData, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func testFilterData() *cms.FilterData {
	return &cms.FilterData{
		Categories: []cms.FilterOption{{ID: "cat-7", Name: "Teknologi Informasi", Count: 61}},
		Provinces:  []cms.FilterOption{{ID: "p-31", Name: "DKI Jakarta", Count: 77}},
	}
}

func newTestFilterService(t *testing.T, client cmsFiltersClient, ttl time.Duration) *FilterService {
	service, err := NewFilterService(nil, client, gocache.New(gocache.NoExpiration, 0), ttl)
	assert.NoError(t, err)
	return service
}

func Test_FilterService_SecondCallWithinTTL_UsesCache(t *testing.T) {

	client := &fakeFiltersClient{data: testFilterData()}
	service := newTestFilterService(t, client, 5*time.Minute)

	first := service.GetFiltersData(context.Background())
	second := service.GetFiltersData(context.Background())

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, first, second)
	assert.Equal(t, "Teknologi Informasi", first.Categories[0].Name)
}

func Test_FilterService_ClearCache_ForcesRefetchWithinTTL(t *testing.T) {

	client := &fakeFiltersClient{data: testFilterData()}
	service := newTestFilterService(t, client, 5*time.Minute)

	service.GetFiltersData(context.Background())
	service.ClearCache()
	service.GetFiltersData(context.Background())

	assert.Equal(t, 2, client.calls)
}

func Test_FilterService_ExpiredTTL_Refetches(t *testing.T) {

	client := &fakeFiltersClient{data: testFilterData()}
	service := newTestFilterService(t, client, 5*time.Minute)

	now := time.Now()
	service.now = func() time.Time { return now }

	service.GetFiltersData(context.Background())

	service.now = func() time.Time { return now.Add(6 * time.Minute) }
	service.GetFiltersData(context.Background())

	assert.Equal(t, 2, client.calls)
}

func Test_FilterService_RefetchFailure_ServesStaleData(t *testing.T) {

	client := &fakeFiltersClient{data: testFilterData()}
	service := newTestFilterService(t, client, 5*time.Minute)

	now := time.Now()
	service.now = func() time.Time { return now }

	fresh := service.GetFiltersData(context.Background())

	client.err = errors.New("cms is down")
	service.now = func() time.Time { return now.Add(10 * time.Minute) }

	stale := service.GetFiltersData(context.Background())

	assert.Equal(t, fresh, stale)
	assert.Equal(t, 2, client.calls)
}

func Test_FilterService_FailureWithoutCache_ReturnsEmptyShape(t *testing.T) {

	client := &fakeFiltersClient{err: errors.New("cms is down")}
	service := newTestFilterService(t, client, 5*time.Minute)

	data := service.GetFiltersData(context.Background())

	assert.NotNil(t, data)
	assert.Empty(t, data.Categories)
	assert.Empty(t, data.Provinces)
	assert.NotNil(t, data.EmploymentTypes)
}
