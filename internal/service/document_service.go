package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/stemsi/institute-backend/internal/config"
)

// DocumentStore is a blob backend. Store writes r under name, replacing any
// existing object, and returns the path or URL to record.
type DocumentStore interface {
	Store(ctx context.Context, name string, r io.Reader, contentType string) (string, error)
}

// Accepted agreement document types.
var allowedDocumentTypes = []string{"application/pdf"}

// DocumentService checks agreement uploads and hands them to a DocumentStore.
type DocumentService struct {
	store    DocumentStore
	maxBytes int64
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(cfg *config.Config, store DocumentStore) *DocumentService {
	return &DocumentService{store: store, maxBytes: cfg.MaxDocumentBytes}
}

// AgreementName derives the stored name of an institute's agreement:
// "agreements/<institute name, spaces as underscores>_<file name>".
// Two uploads with the same institute and file name share a name.
func AgreementName(instituteName, fileName string) string {
	base := strings.ReplaceAll(strings.TrimSpace(instituteName), " ", "_")
	return "agreements/" + base + "_" + filepath.Base(fileName)
}

// StoreAgreement validates the upload and stores it. Type and size problems
// are ValidationErrors; backend failures are StorageErrors.
func (s *DocumentService) StoreAgreement(ctx context.Context, instituteName, fileName string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", &ValidationError{
			Field:  "agreement",
			Reason: fmt.Sprintf("document exceeds %d bytes", s.maxBytes),
			Err:    ErrDocumentTooLarge,
		}
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedDocumentTypes...) {
		return "", &ValidationError{
			Field:  "agreement",
			Reason: fmt.Sprintf("%s is not accepted (allowed: %s)", mtype.String(), strings.Join(allowedDocumentTypes, ", ")),
			Err:    ErrUnsupportedDocument,
		}
	}

	path, err := s.store.Store(ctx, AgreementName(instituteName, fileName), bytes.NewReader(data), mtype.String())
	if err != nil {
		return "", &StorageError{Op: "store", Err: err}
	}
	return path, nil
}
