package arrow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelSnapshotIPC(t *testing.T) {
	prefix := uint8(5)
	rows := []ChannelRow{
		{ChannelID: "5600", Prefix: &prefix, Width: 4, Entropy: 0, MostLikely: "5600", CreatedAt: 1700000000000},
		{ChannelID: "", Width: 4, Entropy: 1.38, MostLikely: "0000", Anomalous: true, CreatedAt: 1700000000001},
	}

	record := ChannelsToRecord(rows)
	defer record.Release()
	assert.Equal(t, int64(2), record.NumRows())

	w := NewIPCWriter()
	data, err := w.SerializeToIPC(record)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	decoded, err := w.DeserializeFromIPC(data)
	require.NoError(t, err)
	defer decoded.Release()

	got, err := RecordToChannels(decoded)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestEmptySnapshot(t *testing.T) {
	record := ChannelsToRecord(nil)
	defer record.Release()

	data, err := NewIPCWriter().SerializeToIPC(record)
	require.NoError(t, err)

	decoded, err := NewIPCWriter().DeserializeFromIPC(data)
	require.NoError(t, err)
	defer decoded.Release()
	assert.Zero(t, decoded.NumRows())
}

func TestDeserializeGarbage(t *testing.T) {
	_, err := NewIPCWriter().DeserializeFromIPC([]byte("not arrow"))
	assert.Error(t, err)
}

func TestRecordToChannelsNil(t *testing.T) {
	_, err := RecordToChannels(nil)
	assert.Error(t, err)
}
