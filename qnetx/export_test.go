package qnetx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VanDung-dev/QNetX-Engine/arrow"
	"github.com/VanDung-dev/QNetX-Engine/qnum"
)

func TestExportArrow(t *testing.T) {
	mesh := NewMesh(DefaultConfig())
	mesh.Insert(ChannelID{5, 6, 0, 0}, qnum.FromDigits([]uint8{5, 6, 0, 0}))
	mesh.Insert(ChannelID{7, 0, 0, 0}, superposed(t, []uint8{1, 1, 0, 0}, []uint8{2, 2, 0, 0}))

	data, err := ExportArrow(mesh, NewAnomalyFilter(DefaultConfig()))
	require.NoError(t, err)

	record, err := arrow.NewIPCWriter().DeserializeFromIPC(data)
	require.NoError(t, err)
	defer record.Release()

	rows, err := arrow.RecordToChannels(record)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "5600", rows[0].ChannelID)
	assert.Equal(t, "5600", rows[0].MostLikely)
	require.NotNil(t, rows[0].Prefix)
	assert.Equal(t, uint8(5), *rows[0].Prefix)
	assert.False(t, rows[0].Anomalous)

	assert.Equal(t, "7000", rows[1].ChannelID)
	assert.True(t, rows[1].Anomalous)
	assert.Equal(t, int32(4), rows[1].Width)
}

func TestSnapshotWithoutFilter(t *testing.T) {
	mesh := NewMesh(DefaultConfig())
	mesh.Insert(ChannelID{}, superposed(t, []uint8{1, 1}, []uint8{2, 2}))

	rows := Snapshot(mesh, nil)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Prefix)
	assert.False(t, rows[0].Anomalous)
}
