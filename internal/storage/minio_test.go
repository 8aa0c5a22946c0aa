package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"

	"userapi/internal/config"
)

func TestNewMinIO_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.MinIOConfig
		wantMsg string
	}{
		{name: "missing endpoint", cfg: config.MinIOConfig{}, wantMsg: "endpoint"},
		{name: "missing credentials", cfg: config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "exports"}, wantMsg: "credentials"},
		{name: "missing bucket", cfg: config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}, wantMsg: "bucket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIO(context.Background(), tt.cfg)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, config.ErrConfiguration)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestTranslate(t *testing.T) {
	notFound := minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
	assert.ErrorIs(t, translate(notFound), ErrObjectNotFound)

	denied := minio.ErrorResponse{Code: "AccessDenied"}
	assert.Equal(t, denied, translate(denied))

	other := errors.New("connection reset")
	assert.Same(t, other, translate(other))
}
