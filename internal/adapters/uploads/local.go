package uploads

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"confregistry/internal/domain"
)

const (
	maxPaperSize = 20 << 20 // 20 MiB
	maxProofSize = 10 << 20 // 10 MiB
)

// localStore writes accepted uploads into a single flat directory on disk.
// Generated names keep files unique within the directory so they can be
// served back at /uploads/<name> without any lookup table.
type localStore struct {
	dir       string
	generator domain.CodeGenerator
}

// NewLocalStore returns a FileStore rooted at dir, creating dir if needed.
func NewLocalStore(dir string, generator domain.CodeGenerator) (domain.FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &localStore{dir: dir, generator: generator}, nil
}

func (s *localStore) Save(ctx context.Context, upload domain.FileUpload) (*domain.StoredFile, error) {
	if err := validate(upload); err != nil {
		return nil, err
	}

	code, err := s.generator.NewCode()
	if err != nil {
		return nil, fmt.Errorf("generate filename: %w", err)
	}
	name := code + extensionOf(upload.Filename)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, upload.Reader); err != nil {
		return nil, fmt.Errorf("write upload file: %w", err)
	}
	return &domain.StoredFile{Filename: name, Original: upload.Filename}, nil
}

func validate(upload domain.FileUpload) error {
	ct := strings.ToLower(upload.ContentType)
	switch upload.Kind {
	case domain.UploadPaper:
		if !strings.Contains(ct, "pdf") {
			return domain.ErrUnsupportedMedia
		}
		if upload.Size > maxPaperSize {
			return domain.ErrPayloadTooLarge
		}
	case domain.UploadProof:
		if !strings.Contains(ct, "image") && !strings.Contains(ct, "pdf") {
			return domain.ErrUnsupportedMedia
		}
		if upload.Size > maxProofSize {
			return domain.ErrPayloadTooLarge
		}
	default:
		return fmt.Errorf("unknown upload kind %q", upload.Kind)
	}
	return nil
}

// extensionOf returns the client filename's extension, defaulting to .pdf
// when there is none. filepath.Ext only looks at the final path element, so
// the result never contains a separator.
func extensionOf(filename string) string {
	if ext := filepath.Ext(filename); ext != "" {
		return ext
	}
	return ".pdf"
}
