package post

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillstack/be-cms-platform/config"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	config.DB = sqlx.NewDb(mockDB, "sqlmock")
	t.Cleanup(func() {
		config.DB.Close()
		config.DB = nil
	})
	return mock
}

func newContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

const validContent = `[{"type":"text","content":"Hello world","metadata":{"headingLevel":1}}]`

func TestCreatePostHandler(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO posts")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM post_tags WHERE post_id = $1")).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO post_tags")).
		WithArgs(int64(42), int64(7)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	body, _ := json.Marshal(map[string]interface{}{
		"title":   "Hello World",
		"content": validContent,
		"tags":    []int64{7},
	})
	c, rec := newContext(http.MethodPost, "/posts", string(body))

	require.NoError(t, CreatePostHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp PostResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.True(t, strings.HasPrefix(resp.Slug, "hello-world-"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePostHandlerRejectsMalformedContent(t *testing.T) {
	setupMockDB(t)

	body, _ := json.Marshal(map[string]string{
		"title":   "Broken",
		"content": `{"not":"an array"}`,
	})
	c, rec := newContext(http.MethodPost, "/posts", string(body))

	require.NoError(t, CreatePostHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "CONTENT_PARSE_FAILED")
}

func TestCreatePostHandlerRejectsBadAffiliateURL(t *testing.T) {
	setupMockDB(t)

	badContent := `[{"type":"text","content":"buy this","metadata":{"headingLevel":0},"affiliateLink":{"type":"custom","name":"shop","url":"not a url"}}]`
	body, _ := json.Marshal(map[string]string{
		"title":   "Shopping",
		"content": badContent,
	})
	c, rec := newContext(http.MethodPost, "/posts", string(body))

	require.NoError(t, CreatePostHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_INVALID_URL")
}

func TestCreatePostHandlerRequiresTitle(t *testing.T) {
	setupMockDB(t)

	body, _ := json.Marshal(map[string]string{"content": validContent})
	c, rec := newContext(http.MethodPost, "/posts", string(body))

	require.NoError(t, CreatePostHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPostHandlerNotFound(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM posts WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	c, rec := newContext(http.MethodGet, "/posts/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")

	require.NoError(t, GetPostHandler(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "RESOURCE_POST_NOT_FOUND")
}

func postColumns() []string {
	return []string{
		"id", "title", "slug", "excerpt", "content", "category", "image_url",
		"seo_title", "seo_description", "seo_keywords", "author", "featured",
		"published", "shedule_publish", "created_at", "updated_at",
	}
}

func TestGetPublicPostHandlerRendersHTML(t *testing.T) {
	mock := setupMockDB(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM posts WHERE slug = $1 AND published = TRUE")).
		WithArgs("hello-world").
		WillReturnRows(sqlmock.NewRows(postColumns()).AddRow(
			int64(1), "Hello World", "hello-world", "an excerpt", validContent,
			"Guides", "", "", "", "{}", "jo", false, true, nil, now, now,
		))

	c, rec := newContext(http.MethodGet, "/blog/hello-world", "")
	c.SetParamNames("slug")
	c.SetParamValues("hello-world")

	require.NoError(t, GetPublicPostHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp PublicPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Hello World", resp.Title)
	assert.Contains(t, resp.HTML, "<h1>Hello world</h1>")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPostsHandlerClampsLimit(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM posts")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(postColumns()))

	c, rec := newContext(http.MethodGet, "/posts?limit=9999", "")

	require.NoError(t, ListPostsHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 20, resp.Limit)

	assert.NoError(t, mock.ExpectationsWereMet())
}
