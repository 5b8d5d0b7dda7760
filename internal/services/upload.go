package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"codetrek/internal/models"
	"codetrek/internal/repositories"

	"github.com/google/uuid"
)

const uploadDir = "uploads"

// UploadService stores uploaded files under a media root and records them.
type UploadService struct {
	uploads   repositories.UploadRepository
	mediaRoot string
	mediaURL  string
}

func NewUploadService(uploads repositories.UploadRepository, mediaRoot, mediaURL string) *UploadService {
	if !strings.HasSuffix(mediaURL, "/") {
		mediaURL += "/"
	}
	return &UploadService{uploads: uploads, mediaRoot: mediaRoot, mediaURL: mediaURL}
}

// Save writes the file under a generated name and returns its record with
// FileURL set relative to the media URL.
func (s *UploadService) Save(ctx context.Context, userID int64, header *multipart.FileHeader) (*models.UploadedFile, error) {
	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	rel := path.Join(uploadDir, name)
	dest := filepath.Join(s.mediaRoot, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := writeFile(dest, src); err != nil {
		return nil, err
	}

	fileType := header.Header.Get("Content-Type")
	if fileType == "" {
		fileType = "application/octet-stream"
	}

	file := &models.UploadedFile{
		UserID:   userID,
		File:     rel,
		FileName: filepath.Base(header.Filename),
		FileType: fileType,
	}
	if err := s.uploads.Create(ctx, file); err != nil {
		_ = os.Remove(dest)
		return nil, err
	}

	file.FileURL = s.mediaURL + rel
	return file, nil
}

func writeFile(dest string, src io.Reader) error {
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		_ = os.Remove(dest)
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dest, err)
	}
	return nil
}
