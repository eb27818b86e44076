package network

import (
	"encoding/json"
	"testing"

	"github.com/VanDung-dev/QNetX-Engine/qnet"
)

// FuzzDecodeEnvelope checks that arbitrary input never panics the decoder.
// Run with: go test -fuzz=FuzzDecodeEnvelope -fuzztime=30s ./network/
func FuzzDecodeEnvelope(f *testing.F) {
	valid, _ := NewPacketEnvelope("A", "tcp://127.0.0.1:5555", "A", "B", qnet.Packet("data"), true).Encode()
	f.Add(valid)
	f.Add([]byte(`{"type":"packet","from":"A","to":"B","payload":""}`))
	f.Add([]byte(`{}`))
	f.Add([]byte(`[]`))
	f.Add([]byte(`null`))
	f.Add([]byte(`{"type":"packet","to":"B","compressed":true,"payload":"AAAA"}`))

	f.Fuzz(func(t *testing.T, data []byte) {
		env, err := DecodeEnvelope(data)
		if err != nil {
			return
		}
		if _, err := env.Packet(); err == nil {
			if _, err := json.Marshal(env); err != nil {
				t.Errorf("decoded envelope does not re-encode: %v", err)
			}
		}
	})
}

// FuzzPeerInfoParsing tests PeerInfo JSON parsing with random inputs.
func FuzzPeerInfoParsing(f *testing.F) {
	f.Add([]byte(`{"id":"peer1","address":"tcp://127.0.0.1:5000"}`))
	f.Add([]byte(`{"id":"","address":"","static":true}`))
	f.Add([]byte(`{}`))

	f.Fuzz(func(t *testing.T, data []byte) {
		var peer PeerInfo
		if err := json.Unmarshal(data, &peer); err == nil {
			_, _ = json.Marshal(peer)
		}
	})
}
