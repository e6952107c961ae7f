// Package document downloads and processes message attachments: text
// extraction for PDFs and plain text, URL passthrough for images.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
	cache "github.com/patrickmn/go-cache"

	"relaybot/internal/models"
)

// Per-attachment failure conditions. These never abort the rest of a
// message.
var (
	ErrUnsupportedType = errors.New("file type not supported")
	ErrFileTooLarge    = errors.New("file size exceeds limit")
)

// supportedTypes maps accepted MIME types to internal file kinds.
var supportedTypes = map[string]string{
	"application/pdf": "pdf",
	"text/plain":      "txt",
	"image/jpeg":      "image",
	"image/png":       "image",
	"image/gif":       "image",
	"image/webp":      "image",
}

// Service downloads and processes attachments. Processed results are
// cached by URL so re-sent attachments skip the download.
type Service struct {
	uploadsDir  string
	maxFileSize int64
	client      *http.Client
	processed   *cache.Cache
}

// NewService creates the uploads directory if needed.
func NewService(uploadsDir string, maxFileSizeMB int) (*Service, error) {
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &Service{
		uploadsDir:  uploadsDir,
		maxFileSize: int64(maxFileSizeMB) * 1024 * 1024,
		client:      &http.Client{Timeout: 60 * time.Second},
		processed:   cache.New(30*time.Minute, 10*time.Minute),
	}, nil
}

// IsSupported reports whether a declared content type is processable.
func (s *Service) IsSupported(contentType string) bool {
	_, ok := supportedTypes[mimeBase(contentType)]
	return ok
}

// mimeBase strips parameters like "; charset=utf-8".
func mimeBase(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.TrimSpace(strings.ToLower(contentType))
}

// Process downloads and processes one attachment. The temp file is
// removed after extraction; only the processed descriptor survives.
func (s *Service) Process(ctx context.Context, att models.AttachmentRef) (*models.ProcessedFile, error) {
	kind, ok := supportedTypes[mimeBase(att.ContentType)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, att.ContentType)
	}
	if att.Size > s.maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, att.Size, s.maxFileSize)
	}

	if cached, found := s.processed.Get(att.URL); found {
		pf := cached.(models.ProcessedFile)
		return &pf, nil
	}

	// Images are never downloaded; vision models take the URL as-is.
	if kind == "image" {
		pf := &models.ProcessedFile{
			Type:         "image",
			OriginalName: att.Name,
			Size:         att.Size,
			URL:          att.URL,
		}
		s.processed.Set(att.URL, *pf, cache.DefaultExpiration)
		return pf, nil
	}

	path, err := s.download(ctx, att)
	if err != nil {
		return nil, err
	}
	defer s.cleanup(path)

	pf := &models.ProcessedFile{
		Type:         kind,
		OriginalName: att.Name,
		Size:         att.Size,
	}

	switch kind {
	case "pdf":
		text, pages, err := extractPDF(path)
		if err != nil {
			return nil, fmt.Errorf("failed to process PDF file: %w", err)
		}
		pf.Text = text
		pf.Pages = pages
	case "txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to process text file: %w", err)
		}
		pf.Text = string(data)
	}

	s.processed.Set(att.URL, *pf, cache.DefaultExpiration)
	return pf, nil
}

// download fetches the attachment to the uploads dir, enforcing the
// size ceiling on the actual bytes as well as the declared size.
func (s *Service) download(ctx context.Context, att models.AttachmentRef) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", att.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create download request: %w", err)
	}
	req.Header.Set("User-Agent", "relaybot file processor")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("file download returned status %d", resp.StatusCode)
	}
	if resp.ContentLength > s.maxFileSize {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, resp.ContentLength, s.maxFileSize)
	}

	path := filepath.Join(s.uploadsDir, uuid.NewString()+"_"+filepath.Base(att.Name))
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer out.Close()

	n, err := io.Copy(out, io.LimitReader(resp.Body, s.maxFileSize+1))
	if err != nil {
		s.cleanup(path)
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if n > s.maxFileSize {
		s.cleanup(path)
		return "", fmt.Errorf("%w: body larger than %d bytes", ErrFileTooLarge, s.maxFileSize)
	}

	return path, nil
}

func (s *Service) cleanup(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️ [DOCUMENT] Failed to remove temp file %s: %v", path, err)
	}
}

// extractPDF pulls the plain text and page count out of a PDF.
func extractPDF(path string) (string, int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", 0, err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", 0, err
	}
	return buf.String(), r.NumPage(), nil
}

// FormatFileContent renders a processed file as inline conversation
// context for the model.
func FormatFileContent(pf *models.ProcessedFile) string {
	switch pf.Type {
	case "pdf":
		return fmt.Sprintf("[Attached PDF: %s, %d pages]\n%s", pf.OriginalName, pf.Pages, pf.Text)
	case "txt":
		return fmt.Sprintf("[Attached file: %s]\n%s", pf.OriginalName, pf.Text)
	case "image":
		return fmt.Sprintf("[Attached image: %s]", pf.OriginalName)
	default:
		return fmt.Sprintf("[Attached file: %s]", pf.OriginalName)
	}
}
