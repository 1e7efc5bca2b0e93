// Package proto defines the wire messages exchanged with signaling peers.
// Every frame is a JSON object with a "type" discriminator; field names
// are case-sensitive and fields a handler does not recognize are ignored.
package proto

import "encoding/json"

// Inbound message types.
const (
	TypeJoin         = "join"
	TypeOffer        = "offer"
	TypeAnswer       = "answer"
	TypeICECandidate = "ice_candidate"
	TypeLeave        = "leave"
)

// Outbound message types.
const (
	TypeRoomJoined = "room_joined"
	TypePeerJoined = "peer_joined"
	TypePeerLeft   = "peer_left"
)

// DefaultName is used for peers that join without announcing a display name.
const DefaultName = "Anonymous"

// Envelope carries the fields the server itself reads from an inbound
// frame. Relay payloads (sdp, candidate) are deliberately not modeled:
// they stay in the raw frame and pass through opaque.
type Envelope struct {
	Type     string `json:"type"`
	ClientID string `json:"client_id,omitempty"`
	RoomID   string `json:"room_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Target   string `json:"target,omitempty"`
}

// Relayed reports whether frames of this type are forwarded verbatim to a
// target peer instead of being handled by the server.
func Relayed(t string) bool {
	switch t {
	case TypeOffer, TypeAnswer, TypeICECandidate:
		return true
	}
	return false
}

// PayloadField names the opaque payload field a relayed type must carry.
func PayloadField(t string) string {
	if t == TypeICECandidate {
		return "candidate"
	}
	return "sdp"
}

// PeerInfo is one entry of a room_joined member list.
type PeerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoomJoined is the reply to a successful join. Peers lists the other
// members of the room at the moment the joiner was inserted.
type RoomJoined struct {
	Type  string     `json:"type"`
	Peers []PeerInfo `json:"peers"`
}

// PeerJoined notifies existing room members about a new peer.
type PeerJoined struct {
	Type     string `json:"type"`
	PeerID   string `json:"peer_id"`
	PeerName string `json:"peer_name"`
}

// PeerLeft notifies remaining room members that a peer is gone.
type PeerLeft struct {
	Type   string `json:"type"`
	PeerID string `json:"peer_id"`
}

// Frame is an inbound frame split into its fields with each field's
// original bytes intact, so a relayed sdp or candidate reaches the target
// exactly as the sender encoded it.
type Frame map[string]json.RawMessage

// DecodeFrame splits a raw frame into its fields.
func DecodeFrame(raw []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return f, nil
}

// Stamp sets a string-valued field, overwriting anything the sender may
// have put there.
func (f Frame) Stamp(key, value string) {
	b, _ := json.Marshal(value)
	f[key] = b
}

// Has reports whether a field is present in the frame.
func (f Frame) Has(key string) bool {
	_, ok := f[key]
	return ok
}
