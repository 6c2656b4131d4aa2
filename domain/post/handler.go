package post

import (
	"database/sql"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"github.com/quillstack/be-cms-platform/config"
	"github.com/quillstack/be-cms-platform/domain/content"
	"github.com/quillstack/be-cms-platform/pkg/apperrors"
	"github.com/quillstack/be-cms-platform/pkg/logger"
	"github.com/quillstack/be-cms-platform/utils"
)

var validate = validator.New()

// normalizeContent parses the submitted block JSON, enforces affiliate
// URLs and re-serializes so the stored form has freshly computed block
// numbers. Returns the normalized JSON and the block count.
func normalizeContent(raw string) (string, int, *apperrors.AppError) {
	blocks, err := content.Parse(raw)
	if err != nil {
		var perr *content.ParseError
		if errors.As(err, &perr) {
			return "", 0, apperrors.NewBadRequest(
				apperrors.ErrCodeContentParseFailed,
				"Invalid content format.",
			)
		}
		return "", 0, apperrors.NewInternal(apperrors.ErrCodeUnexpectedError, "Failed to read content.", err)
	}
	if badURL := firstInvalidLinkURL(blocks); badURL != "" {
		return "", 0, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidURL,
			"Affiliate link URL is not a valid http(s) URL.",
		).WithDetail(badURL)
	}
	doc := content.FromBlocks(blocks, content.EditPolicy)
	normalized, serr := doc.Serialize()
	if serr != nil {
		return "", 0, apperrors.NewInternal(apperrors.ErrCodeUnexpectedError, "Failed to store content.", serr)
	}
	return normalized, len(blocks), nil
}

// firstInvalidLinkURL walks every affiliate annotation and returns the
// first URL that does not parse as an absolute http(s) URL.
func firstInvalidLinkURL(blocks []content.Block) string {
	checkItems := func(items []content.ListItem) string {
		var walk func(items []content.ListItem) string
		walk = func(items []content.ListItem) string {
			for _, it := range items {
				if it.Affiliate.Kind != content.LinkNone && it.Affiliate.URL != "" &&
					!utils.IsValidURL(it.Affiliate.URL) {
					return it.Affiliate.URL
				}
				if it.Nested != nil {
					if bad := walk(it.Nested.Items); bad != "" {
						return bad
					}
				}
			}
			return ""
		}
		return walk(items)
	}
	for _, b := range blocks {
		if b.Affiliate.Kind != content.LinkNone && b.Affiliate.URL != "" &&
			!utils.IsValidURL(b.Affiliate.URL) {
			return b.Affiliate.URL
		}
		if bad := checkItems(b.ListItems); bad != "" {
			return bad
		}
	}
	return ""
}

// CreatePostHandler creates a post from the admin editor.
func CreatePostHandler(c echo.Context) error {
	log := logger.Get().WithComponent("post")

	req := new(PostRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Invalid request payload."))
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField, "Title and content are required."))
	}

	normalized, blockCount, appErr := normalizeContent(req.Content)
	if appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}

	slug := content.GenerateSlug(req.Title, req.Slug)

	tx, err := config.DB.Beginx()
	if err != nil {
		log.Error("Failed to begin transaction", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRow(`
		INSERT INTO posts (title, slug, excerpt, content, category, image_url,
			seo_title, seo_description, seo_keywords, author, featured, published,
			shedule_publish, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING id
	`, req.Title, slug, req.Excerpt, normalized, req.Category, req.ImageURL,
		req.SEOTitle, req.SEODescription, pq.StringArray(req.SEOKeywords),
		req.Author, req.Featured, req.Published, req.ShedulePublish).Scan(&id)
	if err != nil {
		log.Error("Failed to insert post", err, logger.Slug(slug))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Failed to create post.", err))
	}

	if err := replaceTags(tx, id, req.Tags); err != nil {
		log.Error("Failed to attach tags", err, logger.PostID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Failed to create post.", err))
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit post", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Failed to create post.", err))
	}

	log.Info("Post created", logger.PostID(id), logger.Slug(slug), logger.BlockCount(blockCount))
	return apperrors.RespondWithCreated(c, PostResponse{ID: id, Slug: slug})
}

// UpdatePostHandler updates a post. The existing slug is preserved
// while its base still derives from the title, so published URLs stay
// stable across edits.
func UpdatePostHandler(c echo.Context) error {
	log := logger.Get().WithComponent("post")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid post id."))
	}

	req := new(PostRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Invalid request payload."))
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField, "Title and content are required."))
	}

	var existingSlug string
	err = config.DB.Get(&existingSlug, `SELECT slug FROM posts WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodePostNotFound, "Post not found."))
	}
	if err != nil {
		log.Error("Failed to fetch post", err, logger.PostID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}

	normalized, blockCount, appErr := normalizeContent(req.Content)
	if appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}

	slug := content.GenerateSlug(req.Title, existingSlug)

	tx, err := config.DB.Beginx()
	if err != nil {
		log.Error("Failed to begin transaction", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE posts
		SET title = $1, slug = $2, excerpt = $3, content = $4, category = $5,
			image_url = $6, seo_title = $7, seo_description = $8, seo_keywords = $9,
			author = $10, featured = $11, published = $12, shedule_publish = $13,
			updated_at = NOW()
		WHERE id = $14
	`, req.Title, slug, req.Excerpt, normalized, req.Category, req.ImageURL,
		req.SEOTitle, req.SEODescription, pq.StringArray(req.SEOKeywords),
		req.Author, req.Featured, req.Published, req.ShedulePublish, id)
	if err != nil {
		log.Error("Failed to update post", err, logger.PostID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Failed to update post.", err))
	}

	if err := replaceTags(tx, id, req.Tags); err != nil {
		log.Error("Failed to replace tags", err, logger.PostID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Failed to update post.", err))
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit post update", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Failed to update post.", err))
	}

	// Rendered HTML may have changed; drop both cache entries in case
	// the slug itself changed.
	config.InvalidateRender(c.Request().Context(), existingSlug)
	config.InvalidateRender(c.Request().Context(), slug)

	log.Info("Post updated", logger.PostID(id), logger.Slug(slug), logger.BlockCount(blockCount))
	return apperrors.RespondWithSuccess(c, PostResponse{ID: id, Slug: slug})
}

func replaceTags(tx interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}, postID int64, tags []int64) error {
	if _, err := tx.Exec(`DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return err
	}
	for _, tagID := range tags {
		if _, err := tx.Exec(
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`, postID, tagID); err != nil {
			return err
		}
	}
	return nil
}

// GetPostHandler returns one post for the editor, tags included.
func GetPostHandler(c echo.Context) error {
	log := logger.Get().WithComponent("post")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid post id."))
	}

	var p Post
	err = config.DB.Get(&p, `
		SELECT id, title, slug, excerpt, content, category, image_url,
			seo_title, seo_description, seo_keywords, author, featured,
			published, shedule_publish, created_at, updated_at
		FROM posts WHERE id = $1
	`, id)
	if err == sql.ErrNoRows {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodePostNotFound, "Post not found."))
	}
	if err != nil {
		log.Error("Failed to fetch post", err, logger.PostID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}

	p.Tags, err = loadTags(id)
	if err != nil {
		log.Error("Failed to load tags", err, logger.PostID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}

	return apperrors.RespondWithSuccess(c, p)
}

func loadTags(postID int64) ([]int64, error) {
	tags := []int64{}
	err := config.DB.Select(&tags,
		`SELECT tag_id FROM post_tags WHERE post_id = $1 ORDER BY tag_id`, postID)
	return tags, err
}

// ListPostsHandler returns a paginated listing for the admin dashboard.
func ListPostsHandler(c echo.Context) error {
	log := logger.Get().WithComponent("post")

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := config.DB.Get(&total, `SELECT COUNT(*) FROM posts`); err != nil {
		log.Error("Failed to count posts", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}

	posts := []Post{}
	err := config.DB.Select(&posts, `
		SELECT id, title, slug, excerpt, content, category, image_url,
			seo_title, seo_description, seo_keywords, author, featured,
			published, shedule_publish, created_at, updated_at
		FROM posts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		log.Error("Failed to list posts", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}

	return apperrors.RespondWithSuccess(c, ListResponse{
		Posts: posts, Total: total, Limit: limit, Offset: offset,
	})
}

// DeletePostHandler removes a post and its tag links.
func DeletePostHandler(c echo.Context) error {
	log := logger.Get().WithComponent("post")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid post id."))
	}

	var slug string
	err = config.DB.Get(&slug, `SELECT slug FROM posts WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodePostNotFound, "Post not found."))
	}
	if err != nil {
		log.Error("Failed to fetch post", err, logger.PostID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}

	if _, err := config.DB.Exec(`DELETE FROM posts WHERE id = $1`, id); err != nil {
		log.Error("Failed to delete post", err, logger.PostID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Failed to delete post.", err))
	}

	config.InvalidateRender(c.Request().Context(), slug)
	log.Info("Post deleted", logger.PostID(id), logger.Slug(slug))
	return apperrors.RespondWithSuccess(c, map[string]string{"status": "deleted"})
}

// GetPublicPostHandler serves a published post rendered to sanitized
// HTML for the public blog page. Rendered HTML is cached by slug.
func GetPublicPostHandler(c echo.Context) error {
	log := logger.Get().WithComponent("post")
	slug := c.Param("slug")

	var p Post
	err := config.DB.Get(&p, `
		SELECT id, title, slug, excerpt, content, category, image_url,
			seo_title, seo_description, seo_keywords, author, featured,
			published, shedule_publish, created_at, updated_at
		FROM posts WHERE slug = $1 AND published = TRUE
	`, slug)
	if err == sql.ErrNoRows {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodePostNotFound, "Post not found."))
	}
	if err != nil {
		log.Error("Failed to fetch post", err, logger.Slug(slug))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}

	html, cached := config.GetCachedRender(c.Request().Context(), slug)
	if !cached {
		blocks, perr := content.Parse(p.Content)
		if perr != nil {
			// Stored content should always parse; render the empty
			// state rather than failing the whole page.
			log.Error("Stored content failed to parse", perr, logger.PostID(p.ID))
			blocks = nil
		}
		html = content.RenderHTML(blocks, content.RenderRich)
		config.SetCachedRender(c.Request().Context(), slug, html)
	}

	return apperrors.RespondWithSuccess(c, PublicPost{
		Title:          p.Title,
		Slug:           p.Slug,
		Excerpt:        p.Excerpt,
		HTML:           html,
		Category:       p.Category,
		ImageURL:       p.ImageURL,
		Author:         p.Author,
		SEOTitle:       p.SEOTitle,
		SEODescription: p.SEODescription,
		SEOKeywords:    p.SEOKeywords,
		PublishedAt:    p.UpdatedAt,
	})
}
