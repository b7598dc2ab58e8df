package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/kerjaplus/jobboard/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func newTestRepository(t *testing.T) *Bookmarks {

	dbContext, err := NewDbContext(":memory:")
	assert.NoError(t, err)
	assert.NoError(t, dbContext.Migrate())

	t.Cleanup(func() { _ = dbContext.Close() })
	return NewBookmarksRepository(dbContext.DB)
}

func bookmark(userID int64, jobID string) models.Bookmark {
	return models.Bookmark{
		UserID:  userID,
		JobID:   jobID,
		JobSlug: "slug-" + jobID,
	}
}

func Test_Bookmarks_AddAndIsBookmarked(t *testing.T) {

	repo := newTestRepository(t)
	ctx := context.Background()

	assert.NoError(t, repo.Add(ctx, bookmark(1, "jp-1")))

	bookmarked, err := repo.IsBookmarked(ctx, 1, "jp-1")
	assert.NoError(t, err)
	assert.True(t, bookmarked)

	bookmarked, err = repo.IsBookmarked(ctx, 1, "jp-2")
	assert.NoError(t, err)
	assert.False(t, bookmarked)
}

func Test_Bookmarks_DuplicateAdd_Fails(t *testing.T) {

	repo := newTestRepository(t)
	ctx := context.Background()

	assert.NoError(t, repo.Add(ctx, bookmark(1, "jp-1")))
	assert.Error(t, repo.Add(ctx, bookmark(1, "jp-1")))
}

func Test_Bookmarks_Remove(t *testing.T) {

	repo := newTestRepository(t)
	ctx := context.Background()

	assert.NoError(t, repo.Add(ctx, bookmark(1, "jp-1")))
	assert.NoError(t, repo.Remove(ctx, 1, "jp-1"))

	bookmarked, err := repo.IsBookmarked(ctx, 1, "jp-1")
	assert.NoError(t, err)
	assert.False(t, bookmarked)
}

func Test_Bookmarks_GetByUser_OrdersNewestFirst(t *testing.T) {

	repo := newTestRepository(t)
	ctx := context.Background()

	older := bookmark(1, "jp-1")
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := bookmark(1, "jp-2")
	newer.CreatedAt = time.Now()

	assert.NoError(t, repo.Add(ctx, older))
	assert.NoError(t, repo.Add(ctx, newer))
	assert.NoError(t, repo.Add(ctx, bookmark(2, "jp-3")))

	bookmarks, err := repo.GetByUser(ctx, 1, 10, 0)
	assert.NoError(t, err)

	assert.Len(t, bookmarks, 2)
	assert.Equal(t, "jp-2", bookmarks[0].JobID)
	assert.Equal(t, "jp-1", bookmarks[1].JobID)
}

func Test_Bookmarks_GetByUser_AppliesLimitAndOffset(t *testing.T) {

	repo := newTestRepository(t)
	ctx := context.Background()

	base := time.Now()
	for i, jobID := range []string{"jp-1", "jp-2", "jp-3"} {
		b := bookmark(1, jobID)
		b.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		assert.NoError(t, repo.Add(ctx, b))
	}

	bookmarks, err := repo.GetByUser(ctx, 1, 1, 1)
	assert.NoError(t, err)

	assert.Len(t, bookmarks, 1)
	assert.Equal(t, "jp-2", bookmarks[0].JobID)
}

func Test_Bookmarks_GetCountByUser(t *testing.T) {

	repo := newTestRepository(t)
	ctx := context.Background()

	assert.NoError(t, repo.Add(ctx, bookmark(1, "jp-1")))
	assert.NoError(t, repo.Add(ctx, bookmark(1, "jp-2")))
	assert.NoError(t, repo.Add(ctx, bookmark(2, "jp-1")))

	count, err := repo.GetCountByUser(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func Test_Bookmarks_DistinctJobIDs(t *testing.T) {

	repo := newTestRepository(t)
	ctx := context.Background()

	assert.NoError(t, repo.Add(ctx, bookmark(1, "jp-1")))
	assert.NoError(t, repo.Add(ctx, bookmark(2, "jp-1")))
	assert.NoError(t, repo.Add(ctx, bookmark(2, "jp-2")))

	jobIDs, err := repo.DistinctJobIDs(ctx)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"jp-1", "jp-2"}, jobIDs)
}

func Test_Bookmarks_RemoveByJobID_RemovesAcrossUsers(t *testing.T) {

	repo := newTestRepository(t)
	ctx := context.Background()

	assert.NoError(t, repo.Add(ctx, bookmark(1, "jp-1")))
	assert.NoError(t, repo.Add(ctx, bookmark(2, "jp-1")))
	assert.NoError(t, repo.Add(ctx, bookmark(2, "jp-2")))

	removed, err := repo.RemoveByJobID(ctx, "jp-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	count, err := repo.GetCountByUser(ctx, 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
