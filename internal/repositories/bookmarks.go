package repositories

import (
	"context"
	"github.com/kerjaplus/jobboard/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Bookmarks struct {
	db *gorm.DB
}

func NewBookmarksRepository(db *gorm.DB) *Bookmarks {
	return &Bookmarks{db: db}
}

func (repo *Bookmarks) Add(ctx context.Context, bookmark models.Bookmark) error {
	return repo.db.WithContext(ctx).Create(&bookmark).Error
}

func (repo *Bookmarks) Remove(ctx context.Context, userID int64, jobID string) error {
	return repo.db.WithContext(ctx).
		Delete(&models.Bookmark{}, "user_id = ? AND job_id = ?", userID, jobID).Error
}

func (repo *Bookmarks) GetByUser(ctx context.Context, userID int64, limit int, offset int) ([]models.Bookmark, error) {

	var bookmarks []models.Bookmark
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookmarks).Error; err != nil {
		return nil, err
	}
	return bookmarks, nil
}

func (repo *Bookmarks) IsBookmarked(ctx context.Context, userID int64, jobID string) (bool, error) {

	var bookmark models.Bookmark
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		First(&bookmark).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (repo *Bookmarks) GetCountByUser(ctx context.Context, userID int64) (int64, error) {

	var count int64
	if err := repo.db.WithContext(ctx).Model(&models.Bookmark{}).Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *Bookmarks) DistinctJobIDs(ctx context.Context) ([]string, error) {

	var jobIDs []string
	if err := repo.db.WithContext(ctx).Model(&models.Bookmark{}).
		Distinct("job_id").
		Pluck("job_id", &jobIDs).Error; err != nil {
		return nil, err
	}
	return jobIDs, nil
}

func (repo *Bookmarks) RemoveByJobID(ctx context.Context, jobID string) (int64, error) {
	res := repo.db.WithContext(ctx).Delete(&models.Bookmark{}, "job_id = ?", jobID)
	return res.RowsAffected, res.Error
}
