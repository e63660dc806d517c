package delivery

import (
	"errors"
	"net/http"

	authDelivery "mindmaker-backend/internal/auth/delivery"
	"mindmaker-backend/internal/blog/domain"
	"mindmaker-backend/internal/blog/dto"
	"mindmaker-backend/internal/blog/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const maxImageSize = 10 << 20

// BlogHandler handles blog-related HTTP requests
type BlogHandler struct {
	blogUsecase usecase.BlogUsecase
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(blogUsecase usecase.BlogUsecase) *BlogHandler {
	return &BlogHandler{blogUsecase: blogUsecase}
}

// ListPosts returns the posts visible to the caller
// GET /api/blog
func (h *BlogHandler) ListPosts(c *gin.Context) {
	posts, err := h.blogUsecase.List(c.Request.Context(), authDelivery.IdentityFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// SearchPosts ranks visible posts against q
// GET /api/blog/search?q=
func (h *BlogHandler) SearchPosts(c *gin.Context) {
	posts, err := h.blogUsecase.Search(c.Request.Context(), authDelivery.IdentityFrom(c), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "query": c.Query("q")})
}

// GetPost returns one post by slug
// GET /api/blog/:slug
func (h *BlogHandler) GetPost(c *gin.Context) {
	who := authDelivery.IdentityFrom(c)
	post, err := h.blogUsecase.Get(c.Request.Context(), who, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	canManage, err := h.blogUsecase.CanManage(c.Request.Context(), who)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post, "can_manage": canManage})
}

// CreatePost creates a draft
// POST /api/blog
func (h *BlogHandler) CreatePost(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.blogUsecase.Create(c.Request.Context(), authDelivery.IdentityFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// UpdatePostStatus publishes or unpublishes a post
// PATCH /api/blog/:id/status
func (h *BlogHandler) UpdatePostStatus(c *gin.Context) {
	var req dto.UpdatePostStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.blogUsecase.SetPublished(c.Request.Context(), authDelivery.IdentityFrom(c), c.Param("id"), req.Status == "published")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost removes a post and its featured image
// DELETE /api/blog/:id
func (h *BlogHandler) DeletePost(c *gin.Context) {
	if err := h.blogUsecase.Delete(c.Request.Context(), authDelivery.IdentityFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

// UploadImage stores a featured or inline image
// POST /api/blog/images (multipart: file, kind)
func (h *BlogHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds 10MB"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	kind := usecase.ImageKind(c.DefaultPostForm("kind", string(usecase.ImageContent)))
	resp, err := h.blogUsecase.UploadImage(c.Request.Context(), authDelivery.IdentityFrom(c), kind, usecase.Upload{
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		Body:     file,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmptyTitle), errors.Is(err, domain.ErrInvalidImageKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("component", "blog").Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
