// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package shopping

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/tomtom215/foodgram/internal/models"
)

const (
	pdfTitle      = "Shopping list"
	pdfFontFamily = "ListFont"
	pdfLineHeight = 7.0
)

var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	defaultFontRegular []byte

	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	defaultFontBold []byte
)

// PDFRenderer lays the shopping list out on A4 pages with a UTF-8 TrueType
// font, so Cyrillic and other non-Latin names print as entered.
type PDFRenderer struct {
	regular []byte
	bold    []byte

	// now stamps the document dates. Tests pin it for byte-stable output.
	now func() time.Time
}

// NewPDFRenderer loads the font at fontPath, or the bundled DejaVu Sans
// when fontPath is empty. A custom font is used for both the title and the
// items. The font is checked with a trial render, so a missing or
// unreadable file fails here instead of on the first download.
func NewPDFRenderer(fontPath string) (*PDFRenderer, error) {
	r := &PDFRenderer{regular: defaultFontRegular, bold: defaultFontBold, now: time.Now}
	if fontPath != "" {
		data, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("read pdf font: %w", err)
		}
		r.regular, r.bold = data, data
	}
	if _, err := r.Render(nil); err != nil {
		return nil, fmt.Errorf("pdf font %q: %w", fontPath, err)
	}
	return r, nil
}

// ContentType implements Renderer.
func (r *PDFRenderer) ContentType() string {
	return "application/pdf"
}

// Render implements Renderer. An empty list yields a page with only the title.
func (r *PDFRenderer) Render(items []models.ShoppingItem) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	stamp := r.now().UTC()
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)
	pdf.SetTitle(pdfTitle, true)
	pdf.SetCreator("foodgram", true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	// fpdf prints font parse failures instead of recording them; the
	// SetFont below then reports the family as undefined.
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "", r.regular)
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "B", r.bold)

	pdf.AddPage()
	pdf.SetFont(pdfFontFamily, "B", 16)
	pdf.CellFormat(0, 10, pdfTitle, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont(pdfFontFamily, "", 12)
	for _, item := range items {
		pdf.MultiCell(0, pdfLineHeight, FormatLine(item), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("pdf layout: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}
