// Package core holds the signaling registry and routing semantics: which
// peers exist, which room each belongs to, and which connections receive
// which notifications. It knows nothing about websockets; transports hand
// it a Conn per peer.
package core

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/vmalkov/signalhub/internal/proto"
)

// Hub is the registry of connected clients and the rooms they occupy.
// All methods are safe for concurrent use. Each mutation runs together
// with the notifications it triggers as one atomic step under the hub
// lock, so concurrent joins and leaves on the same room always observe
// consistent member lists.
//
// A client_id reused by a second connection silently overwrites the first
// entry without closing the old connection; the stale membership is only
// reconciled when the orphaned connection dies. Known sharp edge, kept
// compatible with existing clients.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*Client
	rooms   map[string]*Room
	log     *zerolog.Logger
}

// NewHub creates an empty registry.
func NewHub(logger *zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]*Room),
		log:     logger,
	}
}

// Join registers the peer (overwriting any existing entry for the same
// id), inserts it into the room, notifies the other members with
// peer_joined, and replies to the joiner with a room_joined listing the
// members as of after the insertion, excluding the joiner itself.
func (h *Hub) Join(conn Conn, clientID, roomID, name string) {
	if name == "" {
		name = proto.DefaultName
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	c := &Client{ID: clientID, Name: name, Room: roomID, conn: conn}
	h.clients[clientID] = c

	room := h.rooms[roomID]
	if room == nil {
		room = newRoom(roomID)
		h.rooms[roomID] = room
	}
	room.add(c)

	h.log.Info().Str("client_id", clientID).Str("room_id", roomID).Msg("client joined room")

	h.broadcast(room, clientID, proto.PeerJoined{
		Type:     proto.TypePeerJoined,
		PeerID:   clientID,
		PeerName: name,
	})

	peers := make([]proto.PeerInfo, 0, len(room.members)-1)
	for id, member := range room.members {
		if id == clientID {
			continue
		}
		peers = append(peers, proto.PeerInfo{ID: id, Name: member.Name})
	}
	if err := c.conn.Send(proto.RoomJoined{Type: proto.TypeRoomJoined, Peers: peers}); err != nil {
		h.log.Warn().Err(err).Str("client_id", clientID).Msg("send room_joined failed")
	}
}

// Relay stamps the frame with the sender's identity and forwards it to
// the target's connection unmodified. An unknown target drops the frame;
// the sender is never told either way.
func (h *Hub) Relay(senderID, targetID, msgType string, frame proto.Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()

	target, ok := h.clients[targetID]
	if !ok {
		h.log.Debug().Str("type", msgType).Str("from", senderID).Str("target", targetID).Msg("relay target not registered, dropping")
		return
	}

	frame.Stamp("from", senderID)
	if err := target.conn.Send(frame); err != nil {
		h.log.Warn().Err(err).Str("type", msgType).Str("target", targetID).Msg("relay send failed")
		return
	}
	h.log.Info().Str("type", msgType).Str("from", senderID).Str("target", targetID).Msg("forwarded signaling frame")
}

// Leave removes the client from the registry and its room, notifying the
// remaining members. Leaving twice, or without ever joining, is a no-op.
func (h *Hub) Leave(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.removeClient(clientID) {
		h.log.Info().Str("client_id", clientID).Msg("client left room")
	}
}

// Disconnect is the cleanup path for a terminated connection: same
// effects as Leave. Connection supervisors call it exactly once per
// connection, whatever the exit cause.
func (h *Hub) Disconnect(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.removeClient(clientID) {
		h.log.Info().Str("client_id", clientID).Msg("cleaned up client")
	}
}

// removeClient drops the registry entry and room membership, broadcasting
// peer_left to whoever remains and deleting the room once empty. Reports
// whether the client was registered. Callers hold the hub lock.
func (h *Hub) removeClient(clientID string) bool {
	c, ok := h.clients[clientID]
	if !ok {
		return false
	}
	delete(h.clients, clientID)

	room := h.rooms[c.Room]
	if room == nil {
		return true
	}
	room.remove(clientID)

	h.broadcast(room, clientID, proto.PeerLeft{
		Type:   proto.TypePeerLeft,
		PeerID: clientID,
	})

	if room.empty() {
		delete(h.rooms, c.Room)
		h.log.Info().Str("room_id", c.Room).Msg("room deleted")
	}
	return true
}

// broadcast delivers v to every member of the room except the excluded
// id. Best-effort: a failed send is logged and the remaining members
// still get their copy. Callers hold the hub lock.
func (h *Hub) broadcast(room *Room, exclude string, v any) {
	for id, member := range room.members {
		if id == exclude {
			continue
		}
		if err := member.conn.Send(v); err != nil {
			h.log.Warn().Err(err).Str("client_id", id).Str("room_id", room.ID).Msg("broadcast send failed")
		}
	}
}

// Registered reports whether a client id currently resolves to a live
// entry.
func (h *Hub) Registered(clientID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, ok := h.clients[clientID]
	return ok
}

// Members returns the member ids of a room, or nil if the room does not
// exist. A room exists if and only if it has members.
func (h *Hub) Members(roomID string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := h.rooms[roomID]
	if room == nil {
		return nil
	}
	ids := make([]string, 0, len(room.members))
	for id := range room.members {
		ids = append(ids, id)
	}
	return ids
}
