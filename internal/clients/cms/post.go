package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

type getPostsResponse struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

type getPostResponse struct {
	Post Post `json:"post"`
}

// Post is the raw article shape of the CMS API.
type Post struct {
	ID             string    `json:"id"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Excerpt        string    `json:"excerpt"`
	SEOTitle       string    `json:"seo_title"`
	SEODescription string    `json:"seo_description"`
	Categories     []Named   `json:"categories"`
	PublishedAt    time.Time `json:"published_at"`
}

type Page struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PostsQuery struct {
	Page       int
	PerPage    int
	CategoryID string
}

func (q PostsQuery) toURLParams() url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.PerPage))
	params.Set("status", "published")

	if q.CategoryID != "" {
		params.Set("category", q.CategoryID)
	}

	return params
}

type PostsResult struct {
	Posts      []Post
	Pagination Pagination
}

func (c *Client) GetPosts(ctx context.Context, query PostsQuery) (*PostsResult, error) {

	body, err := c.sendRequest(ctx, "posts", "/posts", query.toURLParams())
	if err != nil {
		return nil, err
	}

	var postsResponse getPostsResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&postsResponse); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	return &PostsResult{Posts: postsResponse.Posts, Pagination: postsResponse.Pagination}, nil
}

func (c *Client) GetPostByID(ctx context.Context, id string) (*Post, error) {

	body, err := c.sendRequest(ctx, "post", "/posts/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var postResponse getPostResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&postResponse); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	return &postResponse.Post, nil
}

func (c *Client) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {

	body, err := c.sendRequest(ctx, "post_by_slug", "/posts/slug/"+url.PathEscape(slug), nil)
	if err != nil {
		return nil, err
	}

	var postResponse getPostResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&postResponse); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	return &postResponse.Post, nil
}

func (c *Client) GetPages(ctx context.Context) ([]Page, error) {

	body, err := c.sendRequest(ctx, "pages", "/pages", nil)
	if err != nil {
		return nil, err
	}

	var pagesResponse struct {
		Pages []Page `json:"pages"`
	}
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&pagesResponse); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	return pagesResponse.Pages, nil
}

func (c *Client) GetCategories(ctx context.Context) ([]Named, error) {

	body, err := c.sendRequest(ctx, "categories", "/categories", nil)
	if err != nil {
		return nil, err
	}

	var categoriesResponse struct {
		Categories []Named `json:"categories"`
	}
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&categoriesResponse); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	return categoriesResponse.Categories, nil
}

func (c *Client) GetTags(ctx context.Context) ([]Named, error) {

	body, err := c.sendRequest(ctx, "tags", "/tags", nil)
	if err != nil {
		return nil, err
	}

	var tagsResponse struct {
		Tags []Named `json:"tags"`
	}
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&tagsResponse); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	return tagsResponse.Tags, nil
}
