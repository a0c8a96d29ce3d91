package image

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"testing"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ceptorclub/ceptor/client/mock"
	"github.com/ceptorclub/ceptor/core"
	"github.com/ceptorclub/ceptor/internal/testutil"
)

var ctx = context.Background()
var mc *memcache.Client

func TestMain(m *testing.M) {
	log.Println("Test Start")

	var cleanup_mc func()
	mc, cleanup_mc = testutil.CreateMC()
	defer cleanup_mc()

	m.Run()

	log.Println("Test End")
}

func config() core.Config {
	config := testutil.TestConfig
	config.Image = core.Image{Endpoint: "http://image.internal/retrieve", Timeout: 5, CacheTTL: 60}
	return config
}

func TestFetchCachesResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	payload := json.RawMessage(`{"prompt":"cached dragon"}`)
	answer := json.RawMessage(`{"url":"https://img.example/dragon.png"}`)

	mockClient := mock_client.NewMockClient(ctrl)
	mockClient.EXPECT().RetrieveImage(gomock.Any(), "http://image.internal/retrieve", payload, gomock.Any()).Return(answer, nil).Times(1)

	s := NewService(mockClient, mc, config())

	first, err := s.Fetch(ctx, payload)
	if assert.NoError(t, err) {
		assert.JSONEq(t, string(answer), string(first))
	}

	// second call is served from memcached
	second, err := s.Fetch(ctx, payload)
	if assert.NoError(t, err) {
		assert.JSONEq(t, string(answer), string(second))
	}

	item, err := mc.Get(cacheKey(payload))
	if assert.NoError(t, err) {
		assert.Equal(t, []byte(answer), item.Value)
	}
}

func TestFetchWithoutCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	payload := json.RawMessage(`{"prompt":"uncached"}`)

	mockClient := mock_client.NewMockClient(ctrl)
	mockClient.EXPECT().RetrieveImage(gomock.Any(), gomock.Any(), payload, gomock.Any()).Return(json.RawMessage(`{}`), nil).Times(2)

	s := NewService(mockClient, nil, config())

	for i := 0; i < 2; i++ {
		_, err := s.Fetch(ctx, payload)
		assert.NoError(t, err)
	}
}

func TestFetchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	payload := json.RawMessage(`{"prompt":"fails"}`)

	mockClient := mock_client.NewMockClient(ctrl)
	mockClient.EXPECT().RetrieveImage(gomock.Any(), gomock.Any(), payload, gomock.Any()).Return(nil, errors.New("image service returned 502"))

	s := NewService(mockClient, mc, config())

	_, err := s.Fetch(ctx, payload)
	assert.EqualError(t, err, "image service returned 502")

	// failures are not cached
	_, err = mc.Get(cacheKey(payload))
	assert.ErrorIs(t, err, memcache.ErrCacheMiss)
}

func TestFetchNoEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := NewService(mock_client.NewMockClient(ctrl), nil, testutil.TestConfig)

	_, err := s.Fetch(ctx, json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrNoEndpoint)
}

func TestCacheKey(t *testing.T) {
	a := cacheKey(json.RawMessage(`{"a":1}`))
	b := cacheKey(json.RawMessage(`{"a":2}`))
	assert.NotEqual(t, a, b)
	assert.Len(t, a, len("image:")+64)
}
