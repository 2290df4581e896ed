package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chathub/internal/app/hub"
	"chathub/internal/configs"
	"chathub/internal/handler"
)

const readTimeout = 2 * time.Second

func newTestServer(t *testing.T) (*httptest.Server, *hub.Hub) {
	t.Helper()

	cfg := &configs.AppConfig{
		Environment:     "development",
		Port:            8080,
		AllowedOrigins:  []string{},
		DefaultRoom:     "chat1",
		MaxPayloadBytes: configs.DefaultMaxPayloadBytes,
	}

	h := hub.New(cfg.DefaultRoom)
	srv := httptest.NewServer(handler.Router(&handler.AppDeps{Hub: h, Config: cfg}))
	t.Cleanup(srv.Close)

	return srv, h
}

// wsClient wraps one WebSocket connection for protocol-level assertions.
type wsClient struct {
	t    *testing.T
	conn *websocket.Conn

	// sessionID is learned from the session event after joining.
	sessionID string
}

func dial(t *testing.T, srv *httptest.Server) *wsClient {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	t.Cleanup(func() { conn.Close() })

	return &wsClient{t: t, conn: conn}
}

func (c *wsClient) emit(event string, data any) {
	c.t.Helper()

	raw, err := json.Marshal(data)
	require.NoError(c.t, err)

	require.NoError(c.t, c.conn.WriteJSON(hub.Envelope{Event: event, Data: raw}))
}

// join registers the client and consumes the session event so the caller
// knows its own id.
func (c *wsClient) join(info hub.JoinInfo) {
	c.t.Helper()

	c.emit(hub.EventJoin, info)

	var p hub.SessionPayload
	c.readEvent(hub.EventSession, &p)
	require.NotEmpty(c.t, p.ID)
	c.sessionID = p.ID
}

// readEvent reads frames until one matching the wanted event arrives,
// unmarshaling its data into out. Unrelated events are skipped.
func (c *wsClient) readEvent(event string, out any) {
	c.t.Helper()

	deadline := time.Now().Add(readTimeout)
	require.NoError(c.t, c.conn.SetReadDeadline(deadline))

	for {
		var env hub.Envelope
		err := c.conn.ReadJSON(&env)
		require.NoError(c.t, err, "waiting for %q event", event)

		if env.Event != event {
			continue
		}

		if out != nil {
			require.NoError(c.t, json.Unmarshal(env.Data, out))
		}
		return
	}
}

// readUserListWith reads userList pushes until one satisfies the predicate.
// Presence pushes replace each other, so tests only assert on the newest
// list matching the expected shape.
func (c *wsClient) readUserListWith(pred func([]hub.UserEntry) bool) []hub.UserEntry {
	c.t.Helper()

	deadline := time.Now().Add(readTimeout)
	require.NoError(c.t, c.conn.SetReadDeadline(deadline))

	for {
		var env hub.Envelope
		err := c.conn.ReadJSON(&env)
		require.NoError(c.t, err, "waiting for matching userList")

		if env.Event != hub.EventUserList {
			continue
		}

		var list []hub.UserEntry
		require.NoError(c.t, json.Unmarshal(env.Data, &list))
		if pred(list) {
			return list
		}
	}
}

func TestJoinPushesSessionAndUserList(t *testing.T) {
	srv, _ := newTestServer(t)

	alice := dial(t, srv)
	alice.join(hub.JoinInfo{Name: "Alice", Age: "30", Country: "NZ", Room: "chat1"})

	list := alice.readUserListWith(func(l []hub.UserEntry) bool { return len(l) == 1 })
	assert.Equal(t, hub.UserEntry{
		ID:      alice.sessionID,
		Name:    "Alice",
		Age:     "30",
		Country: "NZ",
		Room:    "chat1",
	}, list[0])
}

func TestRoomMessageReachesAllRoomMembers(t *testing.T) {
	srv, _ := newTestServer(t)

	alice := dial(t, srv)
	alice.join(hub.JoinInfo{Name: "Alice", Room: "chat1"})

	bob := dial(t, srv)
	bob.join(hub.JoinInfo{Name: "Bob", Room: "chat1"})

	// Wait until both ends agree on membership before messaging.
	alice.readUserListWith(func(l []hub.UserEntry) bool { return len(l) == 2 })
	bob.readUserListWith(func(l []hub.UserEntry) bool { return len(l) == 2 })

	alice.emit(hub.EventRoomMessage, hub.RoomMessageInbound{Room: "chat1", Text: "hi"})

	want := hub.RoomMessagePayload{Text: "hi", FromID: alice.sessionID, FromName: "Alice"}

	var got hub.RoomMessagePayload
	bob.readEvent(hub.EventRoomMessage, &got)
	assert.Equal(t, want, got)

	// The sender receives its own message and recognizes it by fromId.
	alice.readEvent(hub.EventRoomMessage, &got)
	assert.Equal(t, want, got)
	assert.Equal(t, alice.sessionID, got.FromID)
}

func TestPrivateMessageEchoesToSender(t *testing.T) {
	srv, _ := newTestServer(t)

	alice := dial(t, srv)
	alice.join(hub.JoinInfo{Name: "Alice", Room: "chat1"})

	bob := dial(t, srv)
	bob.join(hub.JoinInfo{Name: "Bob", Room: "chat1"})

	bob.readUserListWith(func(l []hub.UserEntry) bool { return len(l) == 2 })

	bob.emit(hub.EventPrivateMessage, hub.PrivateMessageInbound{
		ToID:    alice.sessionID,
		Text:    "hey",
		IsImage: false,
	})

	want := hub.PrivateMessagePayload{
		FromID:   bob.sessionID,
		ToID:     alice.sessionID,
		FromName: "Bob",
		Text:     "hey",
		IsImage:  false,
	}

	var got hub.PrivateMessagePayload
	alice.readEvent(hub.EventPrivateMessage, &got)
	assert.Equal(t, want, got)

	bob.readEvent(hub.EventPrivateMessage, &got)
	assert.Equal(t, want, got, "sender must receive the identical echoed message")
}

func TestSwitchRoomUpdatesPresenceAndNotifies(t *testing.T) {
	srv, _ := newTestServer(t)

	alice := dial(t, srv)
	alice.join(hub.JoinInfo{Name: "Alice", Room: "chat1"})

	bob := dial(t, srv)
	bob.join(hub.JoinInfo{Name: "Bob", Room: "chat1"})

	alice.readUserListWith(func(l []hub.UserEntry) bool { return len(l) == 2 })

	bob.emit(hub.EventSwitchRoom, hub.SwitchRoomPayload{NewRoom: "chat2"})

	var notice hub.SystemMessagePayload
	alice.readEvent(hub.EventSystemMessage, &notice)
	assert.Equal(t, "Bob left chat1", notice.Text)

	list := alice.readUserListWith(func(l []hub.UserEntry) bool {
		return len(l) == 2 && l[1].Room == "chat2"
	})
	assert.Equal(t, bob.sessionID, list[1].ID)
}

func TestDisconnectRemovesSessionFromPresence(t *testing.T) {
	srv, h := newTestServer(t)

	alice := dial(t, srv)
	alice.join(hub.JoinInfo{Name: "Alice", Room: "chat1"})

	bob := dial(t, srv)
	bob.join(hub.JoinInfo{Name: "Bob", Room: "chat1"})

	alice.readUserListWith(func(l []hub.UserEntry) bool { return len(l) == 2 })

	require.NoError(t, bob.conn.Close())

	list := alice.readUserListWith(func(l []hub.UserEntry) bool { return len(l) == 1 })
	assert.Equal(t, alice.sessionID, list[0].ID)

	require.Eventually(t, func() bool {
		return len(h.Users()) == 1
	}, readTimeout, 10*time.Millisecond)
}

func TestEventsBeforeJoinAreDropped(t *testing.T) {
	srv, h := newTestServer(t)

	stranger := dial(t, srv)
	stranger.emit(hub.EventRoomMessage, hub.RoomMessageInbound{Room: "chat1", Text: "anyone?"})

	// The connection stays open and a later join still works.
	stranger.join(hub.JoinInfo{Name: "Latecomer"})

	list := stranger.readUserListWith(func(l []hub.UserEntry) bool { return len(l) == 1 })
	assert.Equal(t, "Latecomer", list[0].Name)
	assert.Len(t, h.Users(), 1)
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	res, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Code int `json:"code"`
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, 0, body.Code)
	assert.Equal(t, "ok", body.Data.Status)
}

func TestDiagnosticAPI(t *testing.T) {
	srv, _ := newTestServer(t)

	alice := dial(t, srv)
	alice.join(hub.JoinInfo{Name: "Alice", Room: "chat1"})

	res, err := http.Get(srv.URL + "/api/rooms")
	require.NoError(t, err)
	defer res.Body.Close()

	var roomsBody struct {
		Code int `json:"code"`
		Data struct {
			Rooms map[string]int `json:"rooms"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&roomsBody))
	assert.Equal(t, map[string]int{"chat1": 1}, roomsBody.Data.Rooms)

	res2, err := http.Get(srv.URL + "/api/rooms/chat1/members")
	require.NoError(t, err)
	defer res2.Body.Close()

	var membersBody struct {
		Code int `json:"code"`
		Data struct {
			Members []hub.UserEntry `json:"members"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res2.Body).Decode(&membersBody))
	require.Len(t, membersBody.Data.Members, 1)
	assert.Equal(t, "Alice", membersBody.Data.Members[0].Name)

	res3, err := http.Get(srv.URL + "/api/rooms/nowhere/members")
	require.NoError(t, err)
	defer res3.Body.Close()
	assert.Equal(t, http.StatusNotFound, res3.StatusCode)
}
