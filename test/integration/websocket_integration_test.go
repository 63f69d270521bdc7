package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	apiws "github.com/PunithVT/livekit-voice-agent/api/ws"
	"github.com/PunithVT/livekit-voice-agent/config"
	"github.com/PunithVT/livekit-voice-agent/internal/domain"
	"github.com/PunithVT/livekit-voice-agent/internal/nats"
	"github.com/PunithVT/livekit-voice-agent/internal/redis"
	wsint "github.com/PunithVT/livekit-voice-agent/internal/ws"
	"github.com/PunithVT/livekit-voice-agent/pkg/logger"
	"github.com/PunithVT/livekit-voice-agent/service"
)

type testClient struct {
	conn     *websocket.Conn
	identity string
	t        *testing.T
}

func setupTest(t *testing.T) *httptest.Server {
	cfg := config.MustReadConfig("../../config_test.json")
	baseLogger := logger.NewLogger(cfg.LogLevel, cfg.LogFile)
	ctx := logger.NewContext(context.Background(), baseLogger)

	natsClient, err := nats.NewNATSClient(cfg.NATSURL)
	require.NoError(t, err)

	redisClient, err := redis.NewRedisClient(cfg.RedisURL)
	require.NoError(t, err)
	require.NoError(t, redisClient.FlushAll())

	registry := wsint.NewRegistry(baseLogger.WithModule("registry"), nil)
	tutorService := service.NewTutorService(natsClient, redisClient, uuid.NewString(), baseLogger)

	mux := http.NewServeMux()
	apiws.RegisterRoutes(mux, apiws.WSConfig{
		Registry:     registry,
		TutorService: tutorService,
		RootCtx:      ctx,
	})
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		redisClient.Close()
		natsClient.Close()
	})

	return server
}

func connectClient(t *testing.T, server *httptest.Server, room, identity string) *testClient {
	wsURL := "ws" + server.URL[4:] + fmt.Sprintf("/ws/%s/%s", room, identity)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	c := &testClient{conn: conn, identity: identity, t: t}
	t.Cleanup(func() { conn.Close() })
	return c
}

func (c *testClient) send(ev domain.Event) {
	require.NoError(c.t, c.conn.WriteJSON(ev))
}

func (c *testClient) receive() domain.Event {
	var ev domain.Event
	c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	require.NoError(c.t, c.conn.ReadJSON(&ev))
	return ev
}

func TestConnectReceivesWelcome(t *testing.T) {
	server := setupTest(t)

	client := connectClient(t, server, "algebra-101", "user1")
	welcome := client.receive()
	require.Equal(t, domain.EventConnection, welcome.Type)
	require.Equal(t, "connected", welcome.Status)
	require.Equal(t, "algebra-101", welcome.Room)
	require.NotEmpty(t, welcome.Timestamp)
}

func TestJoinAnnouncedToExistingMembers(t *testing.T) {
	server := setupTest(t)

	client1 := connectClient(t, server, "algebra-101", "user1")
	_ = client1.receive() // welcome

	client2 := connectClient(t, server, "algebra-101", "user2")
	_ = client2.receive() // welcome

	joined := client1.receive()
	require.Equal(t, domain.EventUserJoined, joined.Type)
	require.Equal(t, "user2", joined.User)
	require.Equal(t, 2, joined.Participants)
}

func TestMessageBroadcastExcludesSender(t *testing.T) {
	server := setupTest(t)

	client1 := connectClient(t, server, "algebra-101", "user1")
	_ = client1.receive() // welcome

	client2 := connectClient(t, server, "algebra-101", "user2")
	_ = client2.receive() // welcome
	_ = client1.receive() // user2 joined

	client1.send(domain.Event{Type: domain.EventMessage, Content: "what is a derivative?"})

	msg := client2.receive()
	require.Equal(t, domain.EventMessage, msg.Type)
	require.Equal(t, "what is a derivative?", msg.Content)
	require.Equal(t, "user1", msg.User)
	require.NotEmpty(t, msg.Timestamp)

	// Sender gets nothing back; the next event it sees is its own pong.
	client1.send(domain.Event{Type: domain.EventPing})
	pong := client1.receive()
	require.Equal(t, domain.EventPong, pong.Type)
}

func TestPingPongStaysPrivate(t *testing.T) {
	server := setupTest(t)

	client1 := connectClient(t, server, "algebra-101", "user1")
	_ = client1.receive() // welcome

	client2 := connectClient(t, server, "algebra-101", "user2")
	_ = client2.receive() // welcome
	_ = client1.receive() // user2 joined

	client2.send(domain.Event{Type: domain.EventPing})
	pong := client2.receive()
	require.Equal(t, domain.EventPong, pong.Type)

	// client1 must not see the pong; verify with a follow-up message.
	client2.send(domain.Event{Type: domain.EventMessage, Content: "still here"})
	msg := client1.receive()
	require.Equal(t, domain.EventMessage, msg.Type)
	require.Equal(t, "still here", msg.Content)
}

func TestLeaveAnnouncedToRemainingMembers(t *testing.T) {
	server := setupTest(t)

	client1 := connectClient(t, server, "algebra-101", "user1")
	_ = client1.receive() // welcome

	client2 := connectClient(t, server, "algebra-101", "user2")
	_ = client2.receive() // welcome
	_ = client1.receive() // user2 joined

	require.NoError(t, client2.conn.Close())

	left := client1.receive()
	require.Equal(t, domain.EventUserLeft, left.Type)
	require.Equal(t, "user2", left.User)
	require.Equal(t, 1, left.Participants)
}
