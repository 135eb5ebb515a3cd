package domain

import (
	"context"
	"io"
)

// UploadKind selects the validation profile applied to an incoming file.
type UploadKind string

const (
	// UploadPaper accepts PDF documents up to 20 MiB.
	UploadPaper UploadKind = "paper"
	// UploadProof accepts images or PDFs up to 10 MiB.
	UploadProof UploadKind = "proof"
)

// FileUpload is an incoming multipart attachment handed to the file store.
type FileUpload struct {
	Kind        UploadKind
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// StoredFile reports where an accepted upload was written.
type StoredFile struct {
	Filename string // generated, unique within the upload directory
	Original string // client-supplied name
}

// FileStore validates and persists uploaded attachments (infrastructure port).
// Save fails with ErrUnsupportedMedia or ErrPayloadTooLarge on rejection.
type FileStore interface {
	Save(ctx context.Context, upload FileUpload) (*StoredFile, error)
}
