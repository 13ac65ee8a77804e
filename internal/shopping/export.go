// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package shopping

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/foodgram/internal/logging"
	"github.com/tomtom215/foodgram/internal/metrics"
	"github.com/tomtom215/foodgram/internal/models"
)

// Export formats.
const (
	FormatPDF  = "pdf"
	FormatText = "txt"
)

// FileBaseName is the download name without extension.
const FileBaseName = "shopping_list"

// ErrUnsupportedFormat is returned for a format with no registered renderer.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// SupportedFormats lists the formats every Exporter understands.
func SupportedFormats() []string {
	return []string{FormatPDF, FormatText}
}

// IsSupportedFormat reports whether format has a renderer.
func IsSupportedFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatPDF, FormatText:
		return true
	}
	return false
}

// Renderer turns a shopping list into a document body.
type Renderer interface {
	Render(items []models.ShoppingItem) ([]byte, error)
	ContentType() string
}

// Document is a rendered shopping list ready to be served as a download.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
	Items       int
}

// ContentDisposition returns the attachment header value for the document.
func (d *Document) ContentDisposition() string {
	return fmt.Sprintf("attachment; filename=%q", d.Filename)
}

// Exporter aggregates a cart and renders it in a requested format.
type Exporter struct {
	aggregator    *Aggregator
	renderers     map[string]Renderer
	defaultFormat string
}

// NewExporter creates an Exporter with text and PDF renderers. fontPath may
// name a TrueType font for the PDF renderer; empty uses the bundled font.
// An unusable font is reported here.
func NewExporter(aggregator *Aggregator, defaultFormat, fontPath string) (*Exporter, error) {
	pdf, err := NewPDFRenderer(fontPath)
	if err != nil {
		return nil, err
	}
	defaultFormat = strings.ToLower(defaultFormat)
	if !IsSupportedFormat(defaultFormat) {
		defaultFormat = FormatPDF
	}
	return &Exporter{
		aggregator: aggregator,
		renderers: map[string]Renderer{
			FormatText: TextRenderer{},
			FormatPDF:  pdf,
		},
		defaultFormat: defaultFormat,
	}, nil
}

// DefaultFormat returns the format used when the caller names none.
func (e *Exporter) DefaultFormat() string {
	return e.defaultFormat
}

// Export builds the shopping list document for userID. An empty format
// selects the default.
func (e *Exporter) Export(ctx context.Context, userID int64, format string) (*Document, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = e.defaultFormat
	}
	renderer, ok := e.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	items, err := e.aggregator.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	body, err := renderer.Render(items)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s shopping list: %w", format, err)
	}

	metrics.RecordShoppingListExport(format, len(items))
	logging.Ctx(ctx).Debug().
		Int64("user_id", userID).
		Str("format", format).
		Int("items", len(items)).
		Int("bytes", len(body)).
		Msg("Shopping list exported")

	return &Document{
		Filename:    FileBaseName + "." + format,
		ContentType: renderer.ContentType(),
		Body:        body,
		Items:       len(items),
	}, nil
}

// TextRenderer renders the plain-text list.
type TextRenderer struct{}

// Render implements Renderer.
func (TextRenderer) Render(items []models.ShoppingItem) ([]byte, error) {
	return []byte(RenderText(items)), nil
}

// ContentType implements Renderer.
func (TextRenderer) ContentType() string {
	return "text/plain; charset=utf-8"
}
