package services

import (
	"context"

	"github.com/kerjaplus/jobboard/internal/clients/cms"
	"github.com/kerjaplus/jobboard/internal/domain/models"
	"github.com/kerjaplus/jobboard/internal/logger"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type cmsArticlesClient interface {
	GetPosts(ctx context.Context, query cms.PostsQuery) (*cms.PostsResult, error)
	GetPostByID(ctx context.Context, id string) (*cms.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*cms.Post, error)
}

type ArticleService struct {
	client cmsArticlesClient
}

func NewArticleService(client cmsArticlesClient) *ArticleService {
	return &ArticleService{client: client}
}

func (s *ArticleService) GetArticles(ctx context.Context, page, perPage int) (*models.ArticlesPage, error) {

	result, err := s.client.GetPosts(ctx, cms.PostsQuery{Page: page, PerPage: perPage})
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCmsApi).Errorf("failed to get articles: %v", err)
		return nil, err
	}

	return &models.ArticlesPage{
		Articles:    lo.Map(result.Posts, func(post cms.Post, _ int) models.Article { return articleFromPost(&post) }),
		CurrentPage: result.Pagination.Page,
		TotalPages:  result.Pagination.TotalPages,
		TotalItems:  result.Pagination.Total,
		HasMore:     result.Pagination.HasNextPage,
	}, nil
}

func (s *ArticleService) GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {

	post, err := s.client.GetPostBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, cms.ErrNotFound) {
			return nil, nil
		}
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCmsApi).Errorf("failed to get article by slug: %v", err)
		return nil, err
	}

	article := articleFromPost(post)
	return &article, nil
}

// GetRelatedArticles returns articles sharing the source article's first
// category. Unlike jobs, an article without categories falls back to the
// most recent articles.
func (s *ArticleService) GetRelatedArticles(ctx context.Context, articleID string, limit int) ([]models.Article, error) {

	post, err := s.client.GetPostByID(ctx, articleID)
	if err != nil {
		if errors.Is(err, cms.ErrNotFound) {
			return []models.Article{}, nil
		}
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCmsApi).Errorf("failed to get article for related: %v", err)
		return nil, err
	}

	query := cms.PostsQuery{Page: 1, PerPage: limit + 1}
	if len(post.Categories) > 0 {
		query.CategoryID = post.Categories[0].ID
	}

	result, err := s.client.GetPosts(ctx, query)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCmsApi).Errorf("failed to get related articles: %v", err)
		return nil, err
	}

	related := lo.FilterMap(result.Posts, func(post cms.Post, _ int) (models.Article, bool) {
		if post.ID == articleID {
			return models.Article{}, false
		}
		return articleFromPost(&post), true
	})

	if len(related) > limit {
		related = related[:limit]
	}
	return related, nil
}

// GetAllForSitemap mirrors the bounded page walk the job service does.
func (s *ArticleService) GetAllForSitemap(ctx context.Context) ([]models.Article, error) {

	var articles []models.Article

	for pageNum := 1; ; pageNum++ {

		if pageNum > maxSitemapPages {
			log.Warnf("sitemap article aggregation hit the %v-page ceiling", maxSitemapPages)
			break
		}

		page, err := s.GetArticles(ctx, pageNum, sitemapPageSize)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeCmsApi).
				Errorf("sitemap article aggregation stopped at page %v: %v", pageNum, err)
			break
		}

		if len(page.Articles) == 0 {
			break
		}

		articles = append(articles, page.Articles...)

		if !page.HasMore {
			break
		}
	}

	return articles, nil
}

func articleFromPost(post *cms.Post) models.Article {
	return models.Article{
		ID:             post.ID,
		Slug:           post.Slug,
		Title:          post.Title,
		Content:        post.Content,
		Excerpt:        post.Excerpt,
		Category:       firstName(post.Categories),
		Categories:     lo.Map(post.Categories, func(c cms.Named, _ int) string { return c.Name }),
		SEOTitle:       post.SEOTitle,
		SEODescription: post.SEODescription,
		PublishedAt:    post.PublishedAt,
	}
}
