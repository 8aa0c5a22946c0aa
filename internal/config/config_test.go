package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("STORE_CONNECTION_STRING", "mongodb://localhost:27017")
	t.Setenv("STORE_DATABASE_NAME", "usersdb")
	t.Setenv("STORE_COLLECTION_NAME", "Users")
	t.Setenv("STORE_MAX_POOL_SIZE", "20")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg := Load()

	assert.Equal(t, DriverMongoDB, cfg.Store.Driver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Store.ConnectionString)
	assert.Equal(t, "usersdb", cfg.Store.DatabaseName)
	assert.Equal(t, "Users", cfg.Store.CollectionName)
	assert.Equal(t, 20, cfg.Store.MaxPoolSize)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.NoError(t, cfg.Store.Validate())
}

func TestStoreConfig_Validate(t *testing.T) {
	valid := StoreConfig{
		Driver:           DriverMongoDB,
		ConnectionString: "mongodb://localhost:27017",
		DatabaseName:     "usersdb",
		CollectionName:   "Users",
	}

	tests := []struct {
		name    string
		mutate  func(c *StoreConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(c *StoreConfig) {}},
		{name: "empty driver defaults", mutate: func(c *StoreConfig) { c.Driver = "" }},
		{
			name:    "missing connection string",
			mutate:  func(c *StoreConfig) { c.ConnectionString = "" },
			wantErr: "connection string required",
		},
		{
			name:    "blank database name",
			mutate:  func(c *StoreConfig) { c.DatabaseName = "   " },
			wantErr: "database name required",
		},
		{
			name:    "missing collection name",
			mutate:  func(c *StoreConfig) { c.CollectionName = "" },
			wantErr: "collection name required",
		},
		{
			name:    "everything missing",
			mutate:  func(c *StoreConfig) { *c = StoreConfig{} },
			wantErr: "connection string, database name, collection name required",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *StoreConfig) { c.Driver = "cassandra" },
			wantErr: `unsupported store driver "cassandra"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrConfiguration)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMinIOConfig_Enabled(t *testing.T) {
	assert.False(t, MinIOConfig{}.Enabled())
	assert.True(t, MinIOConfig{Endpoint: "localhost:9000"}.Enabled())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.False(t, getEnvBool(key, false))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
