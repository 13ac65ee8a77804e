// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

// Package media stores recipe images uploaded as base64 data URIs and serves
// them back under the configured media URL.
package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/tomtom215/foodgram/internal/config"
	"github.com/tomtom215/foodgram/internal/logging"
	"github.com/tomtom215/foodgram/internal/metrics"
)

// ImageDir is the directory, relative to the media root, recipe images are
// written to. Stored paths look like "recipes/images/<uuid>.png".
const ImageDir = "recipes/images"

var (
	// ErrInvalidImage indicates the value is not a base64 data URI of a
	// supported image type.
	ErrInvalidImage = errors.New("invalid image: expected a base64 data URI of a png, jpeg, gif or webp image")

	// ErrImageTooLarge indicates the decoded image exceeds the size limit.
	ErrImageTooLarge = errors.New("image is too large")
)

// allowed maps accepted MIME types to the extension files are stored with.
var allowed = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Store writes images below a root directory.
type Store struct {
	root     string
	baseURL  string
	maxBytes int64
}

// NewStore creates a store from the API configuration.
func NewStore(cfg *config.APIConfig) *Store {
	base := cfg.MediaURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &Store{root: cfg.MediaDir, baseURL: base, maxBytes: cfg.MaxImageBytes}
}

// SaveDataURI decodes a "data:image/<type>;base64,<payload>" value, checks
// the content really is a supported image and writes it. It returns the
// stored path relative to the media root.
func (s *Store) SaveDataURI(ctx context.Context, dataURI string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := s.decode(dataURI)
	if err != nil {
		return "", err
	}

	mtype := mimetype.Detect(data)
	ext, ok := allowed[mtype.String()]
	if !ok {
		return "", fmt.Errorf("%w: detected %s", ErrInvalidImage, mtype.String())
	}

	rel := path.Join(ImageDir, uuid.NewString()+ext)
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create media directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil { //nolint:gosec // public media
		return "", fmt.Errorf("write image: %w", err)
	}

	metrics.MediaImagesStored.WithLabelValues(mtype.String()).Inc()
	logging.Ctx(ctx).Debug().Str("path", rel).Int("bytes", len(data)).Msg("Stored recipe image")
	return rel, nil
}

func (s *Store) decode(dataURI string) ([]byte, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(dataURI), "data:")
	if !ok {
		return nil, ErrInvalidImage
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(header, ";base64") || !strings.HasPrefix(header, "image/") {
		return nil, ErrInvalidImage
	}
	if s.maxBytes > 0 && int64(base64.StdEncoding.DecodedLen(len(payload))) > s.maxBytes+2 {
		return nil, ErrImageTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(data) == 0 {
		return nil, ErrInvalidImage
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, ErrImageTooLarge
	}
	return data, nil
}

// Delete removes a stored image. Missing files and empty paths are ignored.
func (s *Store) Delete(rel string) error {
	if rel == "" {
		return nil
	}
	full, err := s.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

// resolve maps a stored path to a file below the root, rejecting traversal.
func (s *Store) resolve(rel string) (string, error) {
	clean := path.Clean("/" + rel)
	if !strings.HasPrefix(clean, "/"+ImageDir+"/") {
		return "", fmt.Errorf("refusing to touch %q outside %s", rel, ImageDir)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

// URL returns the public path of a stored image, e.g.
// "/media/recipes/images/x.png". An empty path yields "".
func (s *Store) URL(rel string) string {
	if rel == "" {
		return ""
	}
	return s.baseURL + strings.TrimPrefix(rel, "/")
}

// Prefix is the URL prefix the Handler must be mounted at.
func (s *Store) Prefix() string {
	return s.baseURL
}

// Handler serves stored files. Directory listings are disabled.
func (s *Store) Handler() http.Handler {
	fs := http.FileServer(noListing{http.Dir(s.root)})
	return http.StripPrefix(strings.TrimSuffix(s.baseURL, "/"), fs)
}

type noListing struct {
	fs http.FileSystem
}

func (n noListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
