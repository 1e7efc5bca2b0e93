package ws

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vmalkov/signalhub/internal/core"
)

// Handler upgrades HTTP connections and supervises each peer session: it
// owns the read loop, feeds frames to the router in receipt order, and
// runs disconnect cleanup exactly once when the loop exits.
type Handler struct {
	hub          *core.Hub
	writeTimeout time.Duration
	log          *zerolog.Logger
}

// NewHandler builds the websocket handler for the signaling endpoint.
func NewHandler(hub *core.Hub, writeTimeout time.Duration, logger *zerolog.Logger) *Handler {
	return &Handler{hub: hub, writeTimeout: writeTimeout, log: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	logger := h.log.With().Str("conn_id", uuid.NewString()).Logger()
	logger.Info().Str("remote_addr", r.RemoteAddr).Msg("new connection")

	sess := &session{
		hub:  h.hub,
		conn: &peerConn{conn: conn, timeout: h.writeTimeout},
		log:  &logger,
	}
	defer sess.cleanup()

	err = sess.readLoop(r.Context(), conn)

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			logger.Warn().Err(err).Msg("connection closed with error")
		}
	}

	conn.Close(status, reason)
}

// peerConn adapts a websocket connection to the hub's send contract. Each
// send is bounded by the configured write timeout so one stalled peer
// cannot hold up deliveries to others indefinitely. coder/websocket
// serializes concurrent writers internally.
type peerConn struct {
	conn    *websocket.Conn
	timeout time.Duration
}

func (p *peerConn) Send(v any) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	return wsjson.Write(ctx, p.conn, v)
}
