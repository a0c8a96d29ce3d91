package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ceptorclub/ceptor/core"
)

const sampleConfig = `
server:
  dsn: "host=db user=postgres password=secret port=5432 sslmode=disable"
  dbName: ceptor
  redisAddr: redis:6379
  memcachedAddr: memcached:11211
ceptor:
  apiKey: from-file
  frontendURL: https://ceptor.example
  modules:
    scheduler: false
  image:
    endpoint: http://image:8080/retrieve
    timeout: 10
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	config := Config{}
	if assert.NoError(t, config.Load(path)) {
		assert.Equal(t, "redis:6379", config.Server.RedisAddr)
		assert.Equal(t, "from-file", config.Ceptor.APIKey)
		assert.True(t, config.Ceptor.Modules.VotingEnabled())
		assert.False(t, config.Ceptor.Modules.SchedulerEnabled())
		assert.Equal(t, 10, config.Ceptor.Image.Timeout)
	}
}

func TestLoadMissingFile(t *testing.T) {
	config := Config{}
	assert.NoError(t, config.Load(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Equal(t, Config{}, config)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("API_KEY", "from-env")
	t.Setenv("PORT", "3001")
	t.Setenv("DB_COLLECTION", "members,characters,nfts")
	t.Setenv("TRACE_ENDPOINT", "otel:4318")

	config := Config{}
	config.Ceptor.APIKey = "from-file"
	assert.NoError(t, config.LoadEnv(filepath.Join(t.TempDir(), ".env")))

	assert.Equal(t, "from-env", config.Ceptor.APIKey)
	assert.Equal(t, "3001", config.Server.Port)
	assert.True(t, config.Server.EnableTrace)
	assert.Equal(t, core.Collections{
		Users:       "members",
		Characters:  "characters",
		Submissions: "nfts",
		Campaigns:   core.DefaultCampaignsCollection,
	}, config.Ceptor.Collections)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	assert.NoError(t, os.WriteFile(path, []byte("FRONTEND_URL=http://localhost:3000\n"), 0o600))
	t.Setenv("FRONTEND_URL", "")
	os.Unsetenv("FRONTEND_URL")

	config := Config{}
	assert.NoError(t, config.LoadEnv(path))
	assert.Equal(t, "http://localhost:3000", config.Ceptor.FrontendURL)
	assert.Equal(t, "8000", config.Server.Port)
}

func TestDSN(t *testing.T) {
	testCases := []struct {
		dsn    string
		dbName string
		want   string
	}{
		{"host=db user=postgres", "ceptor", "host=db user=postgres dbname=ceptor"},
		{"host=db dbname=other", "ceptor", "host=db dbname=other"},
		{"postgres://u:p@db:5432?sslmode=disable", "ceptor", "postgres://u:p@db:5432/ceptor?sslmode=disable"},
		{"postgres://u:p@db:5432/other", "ceptor", "postgres://u:p@db:5432/other"},
		{"host=db", "", "host=db"},
	}

	for _, tc := range testCases {
		config := Config{Server: Server{Dsn: tc.dsn, DBName: tc.dbName}}
		assert.Equal(t, tc.want, config.DSN())
	}
}
