package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"podder.dev/internal/metrics"
)

// DefaultImageExtensions are the upload types accepted out of the box
var DefaultImageExtensions = []string{"png", "jpg", "jpeg", "gif", "webp"}

// Upload describes a stored file
type Upload struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// UploadService stores project images on disk
type UploadService struct {
	dir       string
	urlPrefix string
	allowed   map[string]bool
	newID     func() string
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewUploadService stores files in dir and reports them under urlPrefix
func NewUploadService(dir, urlPrefix string, extensions []string, m *metrics.Metrics, logger *zap.Logger) *UploadService {
	if len(extensions) == 0 {
		extensions = DefaultImageExtensions
	}
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{
		dir:       dir,
		urlPrefix: urlPrefix,
		allowed:   allowed,
		newID:     uuid.NewString,
		metrics:   m,
		logger:    logger,
	}
}

// Allowed reports whether the name carries an accepted extension
func (s *UploadService) Allowed(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	return s.allowed[strings.ToLower(filename[i+1:])]
}

// Save validates the client file name and streams r to a uniquely named file
func (s *UploadService) Save(filename string, r io.Reader) (*Upload, error) {
	if filename == "" {
		s.metrics.ObserveUpload(metrics.ResultRejected)
		return nil, invalid("No file selected")
	}
	if !s.Allowed(filename) {
		s.metrics.ObserveUpload(metrics.ResultRejected)
		return nil, invalid("Invalid file type")
	}

	ext := strings.ToLower(filename[strings.LastIndex(filename, ".")+1:])
	name := SecureFilename(filename)
	if !strings.HasSuffix(strings.ToLower(name), "."+ext) {
		name = "upload." + ext
	}
	name = s.newID() + "_" + name

	if err := s.write(name, r); err != nil {
		s.metrics.ObserveUpload(metrics.ResultError)
		return nil, err
	}

	s.metrics.ObserveUpload(metrics.ResultSuccess)
	s.logger.Info("stored upload", zap.String("filename", name))
	return &Upload{
		Filename: name,
		URL:      path.Join(s.urlPrefix, name),
	}, nil
}

func (s *UploadService) write(name string, r io.Reader) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst := filepath.Join(s.dir, name)
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}

	_, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		os.Remove(dst)
		return fmt.Errorf("failed to store %s: %w", name, err)
	}
	return nil
}

// SecureFilename reduces a client supplied name to a safe ASCII file name.
// Accents are folded, path separators and whitespace become underscores, and
// anything outside [A-Za-z0-9._-] is dropped. Leading and trailing dots and
// underscores are trimmed, so the result may be empty.
func SecureFilename(name string) string {
	name = norm.NFKD.String(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return ' '
		case r > unicode.MaxASCII:
			return -1
		}
		return r
	}, name)
	name = strings.Join(strings.Fields(name), "_")
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '_' || r == '.' || r == '-':
			return r
		}
		return -1
	}, name)
	return strings.Trim(name, "._")
}
