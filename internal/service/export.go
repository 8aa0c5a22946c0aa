package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"userapi/internal/repository"
	"userapi/internal/storage"
)

const (
	exportPrefix      = "exports"
	exportContentType = "application/json"
	exportURLExpiry   = 15 * time.Minute
)

var ErrInvalidExportName = errors.New("invalid export name")

// ExportResult describes a stored snapshot of the user collection.
type ExportResult struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Size  int64  `json:"size"`
	Count int    `json:"count"`
	URL   string `json:"url"`
}

// ExportService snapshots the user collection into object storage.
type ExportService interface {
	// Export writes every user as one JSON array and returns a pre-signed download URL.
	// The object is removed again when the URL cannot be generated.
	Export(ctx context.Context) (*ExportResult, error)

	// Open streams a previously exported snapshot. The caller closes the reader.
	Open(ctx context.Context, name string) (io.ReadCloser, storage.ObjectInfo, error)
}

type exportService struct {
	store storage.Storage
	repo  repository.UserRepository
	now   func() time.Time
}

// NewExportService constructs a new ExportService.
func NewExportService(store storage.Storage, repo repository.UserRepository) ExportService {
	return &exportService{store: store, repo: repo, now: time.Now}
}

func (s *exportService) Export(ctx context.Context) (*ExportResult, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(users)
	if err != nil {
		return nil, fmt.Errorf("encode users: %w", err)
	}

	name := fmt.Sprintf("users-%s-%s.json", s.now().UTC().Format("20060102T150405Z"), uuid.New().String())
	key := path.Join(exportPrefix, name)

	info, err := s.store.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: exportContentType,
		Metadata: map[string]string{
			"user-count": strconv.Itoa(len(users)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	url, err := s.store.PresignGet(ctx, info.Key, exportURLExpiry)
	if err != nil {
		// Rollback: an export nobody can download is not kept
		if delErr := s.store.Delete(ctx, info.Key); delErr != nil {
			return nil, fmt.Errorf("presign failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("presign failed: %w", err)
	}

	return &ExportResult{
		Key:   info.Key,
		Name:  name,
		Size:  info.Size,
		Count: len(users),
		URL:   url,
	}, nil
}

func (s *exportService) Open(ctx context.Context, name string) (io.ReadCloser, storage.ObjectInfo, error) {
	if !validExportName(name) {
		return nil, storage.ObjectInfo{}, ErrInvalidExportName
	}
	return s.store.Get(ctx, path.Join(exportPrefix, name))
}

func validExportName(name string) bool {
	return strings.HasPrefix(name, "users-") &&
		strings.HasSuffix(name, ".json") &&
		!strings.ContainsAny(name, `/\`) &&
		!strings.Contains(name, "..")
}
