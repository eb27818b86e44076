package qnetx

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VanDung-dev/QNetX-Engine/metrics"
	"github.com/VanDung-dev/QNetX-Engine/qnum"
)

func TestChannelSeed(t *testing.T) {
	// 'A' = 65, 'B' = 66
	assert.Equal(t, []uint8{5, 6, 0, 0}, channelSeed("A", "B"))
	// "ab" + "cd" = 97 98 99 100
	assert.Equal(t, []uint8{7, 8, 9, 0}, channelSeed("ab", "cd"))
	assert.Equal(t, []uint8{7, 8, 9, 0}, channelSeed("abcdef", "zz"))
	assert.Equal(t, []uint8{0, 0, 0, 0}, channelSeed("", ""))
}

func TestEntangleChannel(t *testing.T) {
	m := metrics.NewMetrics("test", prometheus.NewRegistry())
	mesh := NewMesh(DefaultConfig(), WithRecorder(m))

	id := mesh.EntangleChannel("A", "B")
	require.Len(t, id, SeedWidth)

	state, ok := mesh.GetChannel(id)
	require.True(t, ok)
	assert.Equal(t, SeedWidth, state.Len())

	// The seed is classical, so the derived id is deterministic.
	assert.Equal(t, id, mesh.EntangleChannel("A", "B"))
	assert.Equal(t, 1, mesh.Len())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Events.WithLabelValues(metrics.EventEntanglement)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Channels))
}

func TestGetChannelMiss(t *testing.T) {
	mesh := NewMesh(DefaultConfig())
	_, ok := mesh.GetChannel(ChannelID{9, 9, 9, 9})
	assert.False(t, ok)
}

func TestGetChannelReturnsCopy(t *testing.T) {
	mesh := NewMesh(DefaultConfig())
	id := ChannelID{1, 2, 3, 4}
	superposed, err := qnum.FromSuperposed([]qnum.State{
		{Digits: []uint8{1, 2, 3, 4}, Weight: 1},
		{Digits: []uint8{5, 6, 7, 8}, Weight: 1},
	})
	require.NoError(t, err)
	mesh.Insert(id, superposed)

	state, _ := mesh.GetChannel(id)
	state.Measure()

	again, _ := mesh.GetChannel(id)
	assert.False(t, again.IsClassical())
}

func TestLookup(t *testing.T) {
	mesh := NewMesh(DefaultConfig())
	_, ok := mesh.Lookup(ChannelID{9})
	assert.False(t, ok)

	id := ChannelID{0, 2, 0, 0}
	mesh.Insert(id, qnum.FromDigits(id))

	ch, ok := mesh.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, id, ch.ID)
	assert.False(t, ch.CreatedAt.IsZero())
	assert.Equal(t, "0200", ch.State.String())

	// The returned channel is a copy.
	ch.ID[0] = 7
	again, _ := mesh.Lookup(id)
	assert.Equal(t, ChannelID{0, 2, 0, 0}, again.ID)
}

func TestInsertOverwritesOnCollision(t *testing.T) {
	mesh := NewMesh(DefaultConfig())
	id := ChannelID{1, 1, 1, 1}

	mesh.Insert(id, qnum.FromDigits([]uint8{1, 1, 1, 1}))
	mesh.Insert(id, qnum.FromDigits([]uint8{2, 2, 2, 2}))

	state, ok := mesh.GetChannel(id)
	require.True(t, ok)
	assert.Equal(t, []uint8{2, 2, 2, 2}, state.Measure())
	assert.Equal(t, 1, mesh.Len())
}

func TestConcurrentEntangle(t *testing.T) {
	mesh := NewMesh(DefaultConfig())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mesh.EntangleChannel(Dimension(fmt.Sprintf("d%d", i)), "x")
			_ = mesh.Channels()
		}()
	}
	wg.Wait()

	assert.Positive(t, mesh.Len())
	for _, ch := range mesh.Channels() {
		_, ok := mesh.GetChannel(ch.ID)
		assert.True(t, ok)
	}
}

func TestChannelsSortedByID(t *testing.T) {
	mesh := NewMesh(DefaultConfig())
	mesh.Insert(ChannelID{3, 0, 0, 0}, qnum.Zero(4))
	mesh.Insert(ChannelID{1, 0, 0, 0}, qnum.Zero(4))
	mesh.Insert(ChannelID{2, 0, 0, 0}, qnum.Zero(4))

	channels := mesh.Channels()
	require.Len(t, channels, 3)
	assert.Equal(t, "1000", channels[0].ID.String())
	assert.Equal(t, "2000", channels[1].ID.String())
	assert.Equal(t, "3000", channels[2].ID.String())
}

func TestChannelIDJSON(t *testing.T) {
	data, err := json.Marshal(ChannelID{1, 2, 3, 4})
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2,3,4]`, string(data))

	var id ChannelID
	require.NoError(t, json.Unmarshal([]byte(`[5,6,0,0]`), &id))
	assert.Equal(t, ChannelID{5, 6, 0, 0}, id)

	assert.Error(t, json.Unmarshal([]byte(`[300]`), &id))
	assert.Error(t, json.Unmarshal([]byte(`"AQID"`), &id))
}

func TestParseChannelID(t *testing.T) {
	id, err := ParseChannelID("5600")
	require.NoError(t, err)
	assert.Equal(t, ChannelID{5, 6, 0, 0}, id)

	_, err = ParseChannelID("56a0")
	assert.Error(t, err)
}
