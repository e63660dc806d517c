package delivery

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"mindmaker-backend/internal/auth/identity"
	"mindmaker-backend/internal/blog/domain"
	"mindmaker-backend/internal/blog/dto"
	"mindmaker-backend/internal/blog/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBlog answers from fixed data and records uploads.
type stubBlog struct {
	usecase.BlogUsecase
	uploadedKind usecase.ImageKind
	uploadedName string
}

func (s *stubBlog) Get(_ context.Context, _ identity.Identity, slug string) (*domain.Post, error) {
	if slug == "hello" {
		return &domain.Post{ID: "p1", Slug: "hello", IsPublished: true}, nil
	}
	return nil, domain.ErrPostNotFound
}

func (s *stubBlog) CanManage(context.Context, identity.Identity) (bool, error) {
	return false, nil
}

func (s *stubBlog) Create(_ context.Context, _ identity.Identity, req *dto.CreatePostRequest) (*domain.Post, error) {
	if req.Title == "taken" {
		return nil, domain.ErrSlugTaken
	}
	return &domain.Post{ID: "p2", Title: req.Title}, nil
}

func (s *stubBlog) SetPublished(context.Context, identity.Identity, string, bool) (*domain.Post, error) {
	return nil, domain.ErrForbidden
}

func (s *stubBlog) UploadImage(_ context.Context, _ identity.Identity, kind usecase.ImageKind, file usecase.Upload) (*dto.ImageUploadResponse, error) {
	s.uploadedKind = kind
	s.uploadedName = file.Filename
	return &dto.ImageUploadResponse{URL: "http://cdn/blog-files/featured/1_" + file.Filename}, nil
}

func newBlogRouter(stub *stubBlog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBlogHandler(stub)
	r := gin.New()
	r.GET("/api/blog/:slug", h.GetPost)
	r.POST("/api/blog", h.CreatePost)
	r.PATCH("/api/blog/:id/status", h.UpdatePostStatus)
	r.POST("/api/blog/images", h.UploadImage)
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetPostStatuses(t *testing.T) {
	r := newBlogRouter(&stubBlog{})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/blog/hello", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"can_manage":false`)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/blog/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreatePostStatuses(t *testing.T) {
	r := newBlogRouter(&stubBlog{})

	post := func(body string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/blog", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		return serve(r, req).Code
	}

	assert.Equal(t, http.StatusCreated, post(`{"title":"Hello","content":"body"}`))
	assert.Equal(t, http.StatusConflict, post(`{"title":"taken","content":"body"}`))
	assert.Equal(t, http.StatusBadRequest, post(`{"content":"no title"}`))
}

func TestUpdatePostStatusValidation(t *testing.T) {
	r := newBlogRouter(&stubBlog{})

	req := httptest.NewRequest(http.MethodPatch, "/api/blog/p1/status", bytes.NewBufferString(`{"status":"archived"}`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusBadRequest, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodPatch, "/api/blog/p1/status", bytes.NewBufferString(`{"status":"published"}`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusForbidden, serve(r, req).Code)
}

func TestUploadImageMultipart(t *testing.T) {
	stub := &stubBlog{}
	r := newBlogRouter(stub)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("kind", "featured"))
	fw, err := mw.CreateFormFile("file", "cover.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("png"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/blog/images", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := serve(r, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, usecase.ImageFeatured, stub.uploadedKind)
	assert.Equal(t, "cover.png", stub.uploadedName)
	assert.Contains(t, w.Body.String(), "featured/1_cover.png")

	w = serve(r, httptest.NewRequest(http.MethodPost, "/api/blog/images", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
