// Package sitemap publishes the public pages of the site as sitemap.xml.
package sitemap

import (
	"context"
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	blogdomain "mindmaker-backend/internal/blog/domain"
	docdomain "mindmaker-backend/internal/document/domain"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// PublicDocuments lists documents anyone may view.
type PublicDocuments interface {
	ListPublic(ctx context.Context) ([]*docdomain.Document, error)
}

// PublishedPosts lists posts anyone may read.
type PublishedPosts interface {
	ListPublished(ctx context.Context) ([]*blogdomain.Post, error)
}

// URL is one <url> entry.
type URL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

// URLSet is the sitemap document.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

type Handler struct {
	baseURL   string
	documents PublicDocuments
	posts     PublishedPosts
	now       func() time.Time
}

func NewHandler(baseURL string, documents PublicDocuments, posts PublishedPosts) *Handler {
	return &Handler{
		baseURL:   strings.TrimRight(baseURL, "/"),
		documents: documents,
		posts:     posts,
		now:       time.Now,
	}
}

// Build collects the site root, the blog index, every public document and
// every published post.
func (h *Handler) Build(ctx context.Context) (*URLSet, error) {
	today := h.now().UTC().Format("2006-01-02")
	set := &URLSet{
		Xmlns: namespace,
		URLs: []URL{
			{Loc: h.baseURL, LastMod: today, ChangeFreq: "monthly", Priority: 1.0},
			{Loc: h.baseURL + "/blog", LastMod: today, ChangeFreq: "weekly", Priority: 0.8},
		},
	}

	docs, err := h.documents.ListPublic(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		set.URLs = append(set.URLs, URL{
			Loc:        h.baseURL + "/doc/" + d.ID,
			LastMod:    lastMod(d.UpdatedAt, d.CreatedAt),
			ChangeFreq: "yearly",
			Priority:   0.4,
		})
	}

	posts, err := h.posts.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		set.URLs = append(set.URLs, URL{
			Loc:        h.baseURL + "/blog/" + p.Slug,
			LastMod:    lastMod(p.UpdatedAt, p.CreatedAt),
			ChangeFreq: "weekly",
			Priority:   0.6,
		})
	}

	return set, nil
}

// Sitemap handles GET /sitemap.xml
func (h *Handler) Sitemap(c *gin.Context) {
	set, err := h.Build(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Str("component", "sitemap").Msg("build sitemap failed")
		c.String(http.StatusInternalServerError, "failed to build sitemap")
		return
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to build sitemap")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), body...))
}

func lastMod(times ...time.Time) string {
	for _, t := range times {
		if !t.IsZero() {
			return t.UTC().Format("2006-01-02")
		}
	}
	return ""
}
