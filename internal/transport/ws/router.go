package ws

import (
	"context"
	"encoding/json"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"

	"github.com/vmalkov/signalhub/internal/core"
	"github.com/vmalkov/signalhub/internal/proto"
)

// session is the per-connection routing state: the identity announced by
// the peer's join, if any, plus the send half handed to the hub.
type session struct {
	hub      *core.Hub
	conn     core.Conn
	log      *zerolog.Logger
	clientID string
}

// readLoop consumes text frames until the connection closes or errors,
// routing each one synchronously so frames from a single peer are always
// processed in receipt order.
func (s *session) readLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		_, raw, err := conn.Read(ctx)
		if err != nil {
			return err
		}
		s.route(raw)
	}
}

// route decodes one frame and dispatches it. Malformed or incomplete
// frames are dropped without a reply; nothing a peer sends can close its
// own connection here.
func (s *session) route(raw []byte) {
	var env proto.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.log.Warn().Err(err).Msg("invalid frame, dropping")
		return
	}

	switch {
	case env.Type == proto.TypeJoin:
		s.handleJoin(env)
	case proto.Relayed(env.Type):
		s.handleRelay(env, raw)
	case env.Type == proto.TypeLeave:
		if s.clientID != "" {
			s.hub.Leave(s.clientID)
		}
	default:
		s.log.Warn().Str("type", env.Type).Msg("unknown message type, dropping")
	}
}

func (s *session) handleJoin(env proto.Envelope) {
	if env.ClientID == "" || env.RoomID == "" {
		s.log.Warn().Msg("join missing client_id or room_id, dropping")
		return
	}
	s.clientID = env.ClientID
	s.hub.Join(s.conn, env.ClientID, env.RoomID, env.Name)
}

func (s *session) handleRelay(env proto.Envelope, raw []byte) {
	if s.clientID == "" {
		s.log.Debug().Str("type", env.Type).Msg("relay before join, dropping")
		return
	}
	if env.Target == "" {
		s.log.Warn().Str("type", env.Type).Msg("relay missing target, dropping")
		return
	}

	frame, err := proto.DecodeFrame(raw)
	if err != nil {
		s.log.Warn().Err(err).Msg("invalid frame, dropping")
		return
	}
	if !frame.Has(proto.PayloadField(env.Type)) {
		s.log.Warn().Str("type", env.Type).Msg("relay missing payload, dropping")
		return
	}

	s.hub.Relay(s.clientID, env.Target, env.Type, frame)
}

// cleanup runs once per connection, after the read loop exits for any
// reason. A connection that never joined has nothing to clean up.
func (s *session) cleanup() {
	if s.clientID == "" {
		return
	}
	s.hub.Disconnect(s.clientID)
}
