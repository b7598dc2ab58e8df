package services

import (
	"context"

	"github.com/kerjaplus/jobboard/internal/clients/cms"
	"github.com/kerjaplus/jobboard/internal/logger"
	"github.com/kerjaplus/jobboard/internal/metrics"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type bookmarkPruneRepository interface {
	DistinctJobIDs(ctx context.Context) ([]string, error)
	RemoveByJobID(ctx context.Context, jobID string) (int64, error)
}

type jobExistenceChecker interface {
	GetJobByID(ctx context.Context, id string) (*cms.JobPost, error)
}

// BookmarksCleaner prunes bookmarks whose job post no longer exists upstream
// (job posts expire and get unpublished). Runs daily.
type BookmarksCleaner struct {
	bookmarks bookmarkPruneRepository
	client    jobExistenceChecker
	cron      *cron.Cron
}

func NewBookmarksCleaner(bookmarks bookmarkPruneRepository, client jobExistenceChecker) (*BookmarksCleaner, error) {

	bc := &BookmarksCleaner{
		bookmarks: bookmarks,
		client:    client,
		cron:      cron.New(),
	}

	_, err := bc.cron.AddFunc("30 2 * * *", bc.pruneOrphaned)
	if err != nil {
		return nil, err
	}

	bc.cron.Start()
	log.Info("bookmarks cleaner started")
	return bc, nil
}

func (bc *BookmarksCleaner) Stop() {
	bc.cron.Stop()
}

func (bc *BookmarksCleaner) pruneOrphaned() {

	ctx := context.Background()

	jobIDs, err := bc.bookmarks.DistinctJobIDs(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to list bookmarked job ids: %v", err)
		return
	}

	var pruned int64
	for _, jobID := range jobIDs {

		_, err := bc.client.GetJobByID(ctx, jobID)
		if err == nil {
			continue
		}

		if !errors.Is(err, cms.ErrNotFound) {
			// transient upstream trouble, keep the bookmark
			continue
		}

		rowsAffected, err := bc.bookmarks.RemoveByJobID(ctx, jobID)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to prune bookmarks for job %v: %v", jobID, err)
			continue
		}
		pruned += rowsAffected
	}

	if pruned > 0 {
		metrics.PrunedBookmarksCounter.Add(float64(pruned))
	}
	log.Infof("bookmarks cleaner finished, checked %v jobs, pruned %v bookmarks", len(jobIDs), pruned)
}
