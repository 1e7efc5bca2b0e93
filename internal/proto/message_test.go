package proto

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestFramePreservesPayloadBytes(t *testing.T) {
	raw := []byte(`{"type":"offer","target":"bob","sdp":{"type":"offer","sdp":"v=0\r\no=- 46117 2 IN IP4 127.0.0.1\r\n"}}`)

	frame, err := DecodeFrame(raw)
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}

	want := []byte(`{"type":"offer","sdp":"v=0\r\no=- 46117 2 IN IP4 127.0.0.1\r\n"}`)
	if !bytes.Equal(frame["sdp"], want) {
		t.Fatalf("sdp bytes changed: got %s, want %s", frame["sdp"], want)
	}
}

func TestStampOverwritesSenderSuppliedFrom(t *testing.T) {
	frame, err := DecodeFrame([]byte(`{"type":"answer","target":"bob","from":"mallory","sdp":"x"}`))
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}

	frame.Stamp("from", "alice")

	out, err := json.Marshal(frame)
	if err != nil {
		t.Fatalf("marshal frame: %v", err)
	}
	var decoded struct {
		From string `json:"from"`
		SDP  string `json:"sdp"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	if decoded.From != "alice" {
		t.Fatalf("from = %q, want alice", decoded.From)
	}
	if decoded.SDP != "x" {
		t.Fatalf("sdp = %q, want x", decoded.SDP)
	}
}

func TestRelayedTypes(t *testing.T) {
	for _, typ := range []string{TypeOffer, TypeAnswer, TypeICECandidate} {
		if !Relayed(typ) {
			t.Errorf("Relayed(%q) = false", typ)
		}
	}
	for _, typ := range []string{TypeJoin, TypeLeave, TypePeerLeft, "ping", ""} {
		if Relayed(typ) {
			t.Errorf("Relayed(%q) = true", typ)
		}
	}
	if got := PayloadField(TypeICECandidate); got != "candidate" {
		t.Fatalf("payload field for ice_candidate = %q", got)
	}
	if got := PayloadField(TypeOffer); got != "sdp" {
		t.Fatalf("payload field for offer = %q", got)
	}
}
