package services

import (
	"context"
	"sync"

	"github.com/kerjaplus/jobboard/internal/clients/cms"
	"github.com/kerjaplus/jobboard/internal/domain/models"
	"github.com/kerjaplus/jobboard/internal/logger"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const (
	// jobsBatchSize bounds the fan-out of GetJobsByIDs.
	jobsBatchSize = 10

	// maxSitemapPages is a hard ceiling against a misbehaving upstream that
	// keeps reporting more pages.
	maxSitemapPages = 100

	sitemapPageSize = 100
)

type cmsJobsClient interface {
	GetJobs(ctx context.Context, parameters cms.SearchParameters) (*cms.JobsResult, error)
	GetJobByID(ctx context.Context, id string) (*cms.JobPost, error)
	GetJobBySlug(ctx context.Context, slug string) (*cms.JobPost, error)
}

type JobService struct {
	client  cmsJobsClient
	siteURL string
}

func NewJobService(client cmsJobsClient, siteURL string) *JobService {
	return &JobService{client: client, siteURL: siteURL}
}

func (s *JobService) GetJobs(ctx context.Context, parameters cms.SearchParameters, page, perPage int) (*models.JobsPage, error) {

	parameters.Page = page
	parameters.PerPage = perPage

	result, err := s.client.GetJobs(ctx, parameters)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCmsApi).Errorf("failed to get jobs: %v", err)
		return nil, err
	}

	jobs := lo.Map(result.Posts, func(post cms.JobPost, _ int) models.Job {
		return jobFromPost(&post, s.siteURL)
	})

	return &models.JobsPage{
		Jobs:        jobs,
		CurrentPage: result.Pagination.Page,
		TotalPages:  result.Pagination.TotalPages,
		TotalJobs:   result.Pagination.Total,
		HasMore:     result.Pagination.HasNextPage,
	}, nil
}

// GetJobBySlug returns (nil, nil) when the CMS has no job with that slug.
func (s *JobService) GetJobBySlug(ctx context.Context, slug string) (*models.Job, error) {

	post, err := s.client.GetJobBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, cms.ErrNotFound) {
			return nil, nil
		}
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCmsApi).Errorf("failed to get job by slug: %v", err)
		return nil, err
	}

	job := jobFromPost(post, s.siteURL)
	return &job, nil
}

func (s *JobService) GetJobByID(ctx context.Context, id string) (*models.Job, error) {

	post, err := s.client.GetJobByID(ctx, id)
	if err != nil {
		if errors.Is(err, cms.ErrNotFound) {
			return nil, nil
		}
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCmsApi).Errorf("failed to get job by id: %v", err)
		return nil, err
	}

	job := jobFromPost(post, s.siteURL)
	return &job, nil
}

// GetJobsByIDs fetches jobs in batches of jobsBatchSize, concurrently within
// a batch. Failed members are dropped from the result, not surfaced; the
// returned slice keeps the order of the input ids.
func (s *JobService) GetJobsByIDs(ctx context.Context, ids []string) ([]models.Job, error) {

	results := make([]*models.Job, len(ids))

	for batchStart := 0; batchStart < len(ids); batchStart += jobsBatchSize {

		batchEnd := batchStart + jobsBatchSize
		if batchEnd > len(ids) {
			batchEnd = len(ids)
		}

		var wg sync.WaitGroup
		for i := batchStart; i < batchEnd; i++ {
			wg.Add(1)
			go func(index int, id string) {
				defer wg.Done()

				post, err := s.client.GetJobByID(ctx, id)
				if err != nil {
					log.WithField(logger.ErrorTypeField, logger.ErrorTypeCmsApi).
						Errorf("failed to get job %v for batch: %v", id, err)
					return
				}

				job := jobFromPost(post, s.siteURL)
				results[index] = &job
			}(i, ids[i])
		}
		wg.Wait()
	}

	jobs := make([]models.Job, 0, len(ids))
	for _, job := range results {
		if job != nil {
			jobs = append(jobs, *job)
		}
	}
	return jobs, nil
}

// GetRelatedJobs returns jobs sharing the source job's first category,
// excluding the source job itself. A job without categories has no related
// jobs; no category-filtered fetch is issued for it.
func (s *JobService) GetRelatedJobs(ctx context.Context, jobID string, limit int) ([]models.Job, error) {

	post, err := s.client.GetJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, cms.ErrNotFound) {
			return []models.Job{}, nil
		}
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCmsApi).Errorf("failed to get job for related: %v", err)
		return nil, err
	}

	if len(post.Categories) == 0 {
		return []models.Job{}, nil
	}

	parameters := cms.SearchParameters{Categories: []string{post.Categories[0].ID}}
	page, err := s.GetJobs(ctx, parameters, 1, limit+1)
	if err != nil {
		return nil, err
	}

	related := lo.Filter(page.Jobs, func(job models.Job, _ int) bool {
		return job.ID != jobID
	})

	if len(related) > limit {
		related = related[:limit]
	}
	return related, nil
}

// GetAllForSitemap walks pages sequentially until the upstream reports
// exhaustion or a page comes back empty. A page failure halts the loop and
// returns whatever was accumulated so far.
func (s *JobService) GetAllForSitemap(ctx context.Context) ([]models.Job, error) {

	var jobs []models.Job

	for pageNum := 1; ; pageNum++ {

		if pageNum > maxSitemapPages {
			log.Warnf("sitemap job aggregation hit the %v-page ceiling, upstream keeps reporting more", maxSitemapPages)
			break
		}

		page, err := s.GetJobs(ctx, cms.SearchParameters{}, pageNum, sitemapPageSize)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeCmsApi).
				Errorf("sitemap job aggregation stopped at page %v: %v", pageNum, err)
			break
		}

		if len(page.Jobs) == 0 {
			break
		}

		jobs = append(jobs, page.Jobs...)

		if !page.HasMore {
			break
		}
	}

	return jobs, nil
}
