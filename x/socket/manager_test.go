package socket

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ceptorclub/ceptor/core"
	"github.com/ceptorclub/ceptor/core/mock"
	"github.com/ceptorclub/ceptor/internal/testutil"
)

var rdb *redis.Client
var m core.SocketManager

func TestMain(tm *testing.M) {
	log.Println("Test Start")

	var cleanup_rdb func()
	rdb, cleanup_rdb = testutil.CreateRDB()
	defer cleanup_rdb()

	m = NewManager(rdb)
	tm.Run()

	log.Println("Test End")
}

func setupServer(t *testing.T, image core.ImageService) *httptest.Server {
	h := NewHandler(NewService(m, image), m, testutil.TestConfig)

	e := echo.New()
	e.GET("/socket", h.Connect)

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)
	return server
}

func dial(server *httptest.Server, query string) (*websocket.Conn, *http.Response, error) {
	u := "ws" + strings.TrimPrefix(server.URL, "http") + "/socket" + query
	return websocket.DefaultDialer.Dial(u, nil)
}

func waitConnections(t *testing.T, n int64) {
	assert.Eventually(t, func() bool {
		return m.CurrentConnectionCount() == n
	}, 5*time.Second, 10*time.Millisecond)
}

func TestHandshakeRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no Fetch call may happen
	image := mock_core.NewMockImageService(ctrl)
	server := setupServer(t, image)

	for _, query := range []string{"", "?token=wrong"} {
		conn, resp, err := dial(server, query)
		assert.Error(t, err)
		assert.Nil(t, conn)
		if assert.NotNil(t, resp) {
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		}
	}
	assert.Equal(t, int64(0), m.CurrentConnectionCount())
}

func TestImageRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	image := mock_core.NewMockImageService(ctrl)
	image.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(json.RawMessage(`{"url":"https://img.example/dragon.png"}`), nil)
	image.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, errors.New("upstream unavailable"))

	server := setupServer(t, image)

	conn, _, err := dial(server, "?token="+testutil.TestConfig.APIKey)
	if !assert.NoError(t, err) {
		return
	}
	defer conn.Close()

	request := core.Event{Type: core.EventImageRequest, Payload: json.RawMessage(`{"prompt":"dragon"}`)}
	assert.NoError(t, conn.WriteJSON(request))

	var response core.Event
	assert.NoError(t, conn.ReadJSON(&response))
	assert.Equal(t, core.EventImageResponse, response.Type)
	assert.JSONEq(t, `{"url":"https://img.example/dragon.png"}`, string(response.Payload))
	assert.Empty(t, response.Error)

	assert.NoError(t, conn.WriteJSON(request))

	response = core.Event{}
	assert.NoError(t, conn.ReadJSON(&response))
	assert.Equal(t, core.EventImageResponse, response.Type)
	assert.Equal(t, "upstream unavailable", response.Error)

	conn.Close()
	waitConnections(t, 0)
}

func TestBroadcast(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := setupServer(t, mock_core.NewMockImageService(ctrl))

	header := http.Header{}
	header.Set(core.APIKeyHeader, testutil.TestConfig.APIKey)
	u := "ws" + strings.TrimPrefix(server.URL, "http") + "/socket"

	first, _, err := websocket.DefaultDialer.Dial(u, header)
	if !assert.NoError(t, err) {
		return
	}
	defer first.Close()

	second, _, err := websocket.DefaultDialer.Dial(u, header)
	if !assert.NoError(t, err) {
		return
	}
	defer second.Close()

	waitConnections(t, 2)

	err = m.Broadcast(ctx, core.Event{Type: core.EventTest, Payload: json.RawMessage(`"test"`)})
	assert.NoError(t, err)

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var event core.Event
		if assert.NoError(t, conn.ReadJSON(&event)) {
			assert.Equal(t, core.EventTest, event.Type)
			assert.JSONEq(t, `"test"`, string(event.Payload))
		}
	}

	first.Close()
	second.Close()
	waitConnections(t, 0)
}

func TestDisconnectEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := setupServer(t, mock_core.NewMockImageService(ctrl))

	conn, _, err := dial(server, "?token="+testutil.TestConfig.APIKey)
	if !assert.NoError(t, err) {
		return
	}
	defer conn.Close()

	waitConnections(t, 1)

	assert.NoError(t, conn.WriteJSON(core.Event{Type: core.EventTest, Payload: json.RawMessage(`"ping"`)}))
	assert.NoError(t, conn.WriteJSON(core.Event{Type: core.EventDisconnect}))

	waitConnections(t, 0)
}

func TestSlowImageRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	release := make(chan struct{})
	fetched := make(chan struct{})

	image := mock_core.NewMockImageService(ctrl)
	image.EXPECT().Fetch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ json.RawMessage) (json.RawMessage, error) {
			close(fetched)
			<-release
			return json.RawMessage(`{"images":[1]}`), nil
		},
	)

	server := setupServer(t, image)

	conn, _, err := dial(server, "?token="+testutil.TestConfig.APIKey)
	if !assert.NoError(t, err) {
		close(release)
		return
	}
	defer conn.Close()
	waitConnections(t, 1)

	assert.NoError(t, conn.WriteJSON(core.Event{Type: core.EventImageRequest, Payload: json.RawMessage(`{"prompt":"owlbear"}`)}))
	<-fetched

	// the pending fetch does not hold up the disconnect
	assert.NoError(t, conn.WriteJSON(core.Event{Type: core.EventDisconnect}))
	waitConnections(t, 0)

	close(release)
}
