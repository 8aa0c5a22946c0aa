package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"userapi/internal/service"
	"userapi/internal/storage"
)

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Export(ctx context.Context) (*service.ExportResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}

func (m *MockExportService) Open(ctx context.Context, name string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, name)
	var rc io.ReadCloser
	if args.Get(0) != nil {
		rc = args.Get(0).(io.ReadCloser)
	}
	return rc, args.Get(1).(storage.ObjectInfo), args.Error(2)
}
