package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"

	"github.com/yungbote/sahayak-backend/internal/games"
	"github.com/yungbote/sahayak-backend/internal/http/response"
	"github.com/yungbote/sahayak-backend/internal/realtime"
)

const (
	wsWriteWait    = 10 * time.Second
	wsPongWait     = 2 * time.Minute
	wsPingInterval = wsPongWait * 9 / 10
	wsMaxMessage   = 16 << 10
)

type wsOptions struct {
	upgrader websocket.Upgrader
}

func newWSOptions(allowedOrigins []string) wsOptions {
	allowAll := lo.Contains(allowedOrigins, "*")
	return wsOptions{upgrader: websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowAll || lo.Contains(allowedOrigins, origin)
		},
	}}
}

// wsMessage is the envelope for both directions. Inbound messages carry a game action in
// their own fields; "ping", "state" and "end" are handled by the socket itself.
type wsMessage struct {
	Type    string             `json:"type"`
	Session *games.State       `json:"session,omitempty"`
	Error   *response.APIError `json:"error,omitempty"`
	Time    *time.Time         `json:"time,omitempty"`
}

// GET /ws/games/sessions/:id
//
// Every socket on a session watches it through the hub, so actions taken over REST or from
// another socket reach all of them. Replies meant for one socket (pong, errors) bypass the hub.
func (h *GameHandler) PlayWS(c *gin.Context) {
	id := c.Param("id")
	st, err := h.arcade.Get(id)
	if err != nil {
		response.RespondAPIError(c, gameError(err))
		return
	}
	conn, err := h.ws.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		_ = c.Error(err)
		return
	}

	client := h.hub.NewClient(16)
	h.hub.Subscribe(client, id)

	direct := make(chan wsMessage, 8)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		defer conn.Close()
		writeLoop(conn, client, direct)
	}()
	defer func() {
		h.hub.Remove(client)
		<-writerDone
	}()

	reply := func(m wsMessage) bool {
		select {
		case direct <- m:
			return true
		case <-writerDone:
			return false
		}
	}
	replyErr := func(err error) bool {
		e := gameError(err)
		return reply(wsMessage{Type: "error", Error: &response.APIError{Message: e.Error(), Code: e.Code}})
	}

	conn.SetReadLimit(wsMaxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	if !reply(wsMessage{Type: "state", Session: &st}) {
		return
	}
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))

		var act games.Action
		if err := json.Unmarshal(raw, &act); err != nil {
			if !replyErr(games.ErrInvalidAction) {
				return
			}
			continue
		}

		switch act.Type {
		case "ping":
			now := time.Now().UTC()
			if !reply(wsMessage{Type: "pong", Time: &now}) {
				return
			}
		case "state":
			st, err := h.arcade.Get(id)
			if err != nil {
				replyErr(err)
				return
			}
			if !reply(wsMessage{Type: "state", Session: &st}) {
				return
			}
		case "end":
			if err := h.arcade.End(id); err != nil {
				replyErr(err)
				return
			}
			// The writer closes the socket once the ended event reaches it.
			h.ended(id)
		default:
			st, err := h.arcade.Act(id, act)
			if err != nil {
				if !replyErr(err) || errors.Is(err, games.ErrSessionNotFound) {
					return
				}
				continue
			}
			h.publish(st)
		}
	}
}

// writeLoop is the only writer on conn. It returns when the hub closes the client, when the
// session ends or when a write fails.
func writeLoop(conn *websocket.Conn, client *realtime.Client, direct <-chan wsMessage) {
	ping := time.NewTicker(wsPingInterval)
	defer ping.Stop()

	write := func(m wsMessage) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(m) == nil
	}
	for {
		select {
		case m := <-direct:
			if !write(m) {
				return
			}
		case msg, ok := <-client.Outbound:
			if !ok {
				// Flush replies queued before the reader went away.
				for {
					select {
					case m := <-direct:
						if !write(m) {
							return
						}
					default:
						return
					}
				}
			}
			switch msg.Event {
			case realtime.EventState:
				st, ok := msg.Data.(games.State)
				if !ok {
					continue
				}
				if !write(wsMessage{Type: "state", Session: &st}) {
					return
				}
			case realtime.EventEnded:
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"), time.Now().Add(wsWriteWait))
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}
