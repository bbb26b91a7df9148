package storage

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/faktura/backend/internal/domain/shared"
	"github.com/faktura/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
)

func testStorageConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Bucket:            "faktura-archive",
		AccessKey:         "test-key",
		SecretKey:         "test-secret",
		Endpoint:          "http://localhost:9000",
		UsePathStyle:      true,
		PresignExpiration: 15 * time.Minute,
	}
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.StorageConfig
		wantErr string
	}{
		{"nil config", nil, "configuration is required"},
		{"missing bucket", &config.StorageConfig{AccessKey: "k", SecretKey: "s"}, "bucket is required"},
		{"missing access key", &config.StorageConfig{Bucket: "b", SecretKey: "s"}, "access key is required"},
		{"missing secret key", &config.StorageConfig{Bucket: "b", AccessKey: "k"}, "secret key is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewS3ObjectStorage(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("valid config", func(t *testing.T) {
		s, err := NewS3ObjectStorage(testStorageConfig(), WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		assert.Equal(t, "faktura-archive", s.Bucket())
		assert.Equal(t, 15*time.Minute, s.presignExpiration)
	})

	t.Run("default presign expiration", func(t *testing.T) {
		cfg := testStorageConfig()
		cfg.PresignExpiration = 0
		s, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute, s.presignExpiration)
	})

	t.Run("WithPresignExpiration", func(t *testing.T) {
		s, err := NewS3ObjectStorage(testStorageConfig(), WithPresignExpiration(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, time.Hour, s.presignExpiration)
	})
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		ssl      bool
		want     string
	}{
		{"", false, ""},
		{"localhost:9000", false, "http://localhost:9000"},
		{"s3.fr-par.scw.cloud", true, "https://s3.fr-par.scw.cloud"},
		{"https://fsn1.your-objectstorage.com", false, "https://fsn1.your-objectstorage.com"},
	}
	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			got, err := normalizeEndpoint(tt.endpoint, tt.ssl)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestS3ObjectStorage_Presign(t *testing.T) {
	s, err := NewS3ObjectStorage(testStorageConfig())
	require.NoError(t, err)
	ctx := context.Background()
	key := "tenants/t1/receipts/beleg.pdf"

	t.Run("upload", func(t *testing.T) {
		url, expiresAt, err := s.PresignUpload(ctx, key, "application/pdf", 0)
		require.NoError(t, err)
		assert.Contains(t, url, "localhost:9000/faktura-archive/")
		assert.Contains(t, url, "X-Amz-Signature")
		assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, time.Minute)
	})

	t.Run("download", func(t *testing.T) {
		url, expiresAt, err := s.PresignDownload(ctx, key, time.Hour)
		require.NoError(t, err)
		assert.True(t, strings.Contains(url, "beleg.pdf"))
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)
	})
}

func TestS3ObjectStorage_EmptyKey(t *testing.T) {
	s, err := NewS3ObjectStorage(testStorageConfig())
	require.NoError(t, err)
	ctx := context.Background()

	assert.ErrorIs(t, s.Put(ctx, "", []byte("x"), "text/plain"), errKeyRequired)
	_, err = s.Get(ctx, "")
	assert.ErrorIs(t, err, errKeyRequired)
	_, _, err = s.PresignUpload(ctx, "", "text/plain", 0)
	assert.ErrorIs(t, err, errKeyRequired)
	_, _, err = s.PresignDownload(ctx, "", 0)
	assert.ErrorIs(t, err, errKeyRequired)
	_, err = s.Exists(ctx, "")
	assert.ErrorIs(t, err, errKeyRequired)
	assert.ErrorIs(t, s.Delete(ctx, ""), errKeyRequired)
}

func TestS3ObjectStorage_MinIO(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "minio/minio:latest",
			ExposedPorts: []string{"9000/tcp"},
			Env: map[string]string{
				"MINIO_ROOT_USER":     "faktura",
				"MINIO_ROOT_PASSWORD": "faktura-secret",
			},
			Cmd:        []string{"server", "/data"},
			WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp").WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.PortEndpoint(ctx, "9000/tcp", "http")
	require.NoError(t, err)

	s, err := NewS3ObjectStorage(&config.StorageConfig{
		Endpoint:     endpoint,
		Bucket:       "faktura-archive",
		AccessKey:    "faktura",
		SecretKey:    "faktura-secret",
		UsePathStyle: true,
	})
	require.NoError(t, err)
	require.NoError(t, s.EnsureBucket(ctx))
	require.NoError(t, s.EnsureBucket(ctx))

	key := fmt.Sprintf("tenants/%s/invoice/RE-2026-00001.json", "t1")
	require.NoError(t, s.Put(ctx, key, []byte(`{"number":"RE-2026-00001"}`), "application/json"))

	exists, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"number":"RE-2026-00001"}`, string(data))

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
