// Package export turns a document into a PNG image of its layout.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"mindmaker-backend/internal/auth/identity"
	"mindmaker-backend/internal/board"
	"mindmaker-backend/internal/document/usecase"

	"github.com/rs/zerolog"
)

// ExportSelector is the element of the export page that gets captured.
const ExportSelector = "#export-view"

const fallbackFilename = "document-export.png"

// ErrCapture wraps every rasterizer failure.
var ErrCapture = errors.New("export capture failed")

// Settings are the export dimensions: the width of the export view in CSS
// pixels and the device scale it is captured at.
type Settings struct {
	Width int     `json:"width"`
	Scale float64 `json:"scale"`
}

// SettingsSource supplies the settings for each export, so they can change at
// runtime.
type SettingsSource interface {
	ExportSettings() Settings
}

// StaticSettings is a SettingsSource that never changes.
type StaticSettings Settings

func (s StaticSettings) ExportSettings() Settings { return Settings(s) }

// Rasterizer captures the element matching selector in page as a PNG.
type Rasterizer interface {
	Capture(ctx context.Context, page []byte, selector string, settings Settings) ([]byte, error)
}

// Result is a finished export.
type Result struct {
	Filename string
	PNG      []byte
}

type Service struct {
	documents  usecase.DocumentUsecase
	rasterizer Rasterizer
	settings   SettingsSource
	log        zerolog.Logger
}

func NewService(documents usecase.DocumentUsecase, rasterizer Rasterizer, settings SettingsSource, log zerolog.Logger) *Service {
	return &Service{
		documents:  documents,
		rasterizer: rasterizer,
		settings:   settings,
		log:        log,
	}
}

// Export re-reads documentID with its cards and comments, renders the export
// layout without interactive controls and rasterizes it. Nothing is returned
// unless the capture succeeded.
func (s *Service) Export(ctx context.Context, who identity.Identity, documentID string) (*Result, error) {
	view, err := s.documents.Open(ctx, who, documentID)
	if err != nil {
		return nil, err
	}
	defer view.Close()

	if err := view.Refresh(ctx); err != nil {
		return nil, err
	}

	// An unknown template still exports: the page shows the error state.
	rendered := view.Render(board.ModeExport)

	settings := s.settings.ExportSettings()

	var page bytes.Buffer
	if err := board.WriteExportPage(&page, rendered, settings.Width); err != nil {
		return nil, fmt.Errorf("render export page: %w", err)
	}

	png, err := s.rasterizer.Capture(ctx, page.Bytes(), ExportSelector, settings)
	if err != nil {
		s.log.Error().Err(err).Str("document_id", documentID).Msg("capture failed")
		return nil, fmt.Errorf("%w: %v", ErrCapture, err)
	}

	s.log.Info().
		Str("document_id", documentID).
		Int("bytes", len(png)).
		Int("width", settings.Width).
		Float64("scale", settings.Scale).
		Msg("document exported")

	return &Result{Filename: Filename(rendered.Document.Title), PNG: png}, nil
}

// Filename is "<title>.png", or document-export.png for a blank title. Path
// separators and quotes are replaced so the name is safe in a
// Content-Disposition header.
func Filename(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return fallbackFilename
	}
	title = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', '\r', '\n':
			return '_'
		}
		return r
	}, title)
	return title + ".png"
}
