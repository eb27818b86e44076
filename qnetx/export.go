package qnetx

import (
	"github.com/VanDung-dev/QNetX-Engine/arrow"
)

// Snapshot describes every channel of mesh, marking those whose entropy
// exceeds the filter threshold. A nil filter marks nothing.
func Snapshot(mesh *Mesh, filter *AnomalyFilter) []arrow.ChannelRow {
	channels := mesh.Channels()
	rows := make([]arrow.ChannelRow, len(channels))

	for i, ch := range channels {
		entropy := ch.State.Entropy()
		rows[i] = arrow.ChannelRow{
			ChannelID:  ch.ID.String(),
			Width:      int32(ch.State.Len()),
			Entropy:    entropy,
			MostLikely: ch.State.String(),
			Anomalous:  filter != nil && entropy > filter.Threshold(),
			CreatedAt:  ch.CreatedAt.UnixMilli(),
		}
		if len(ch.ID) > 0 {
			prefix := ch.ID[0]
			rows[i].Prefix = &prefix
		}
	}
	return rows
}

// ExportArrow serializes a Snapshot of mesh to Arrow IPC bytes.
func ExportArrow(mesh *Mesh, filter *AnomalyFilter) ([]byte, error) {
	record := arrow.ChannelsToRecord(Snapshot(mesh, filter))
	defer record.Release()

	return arrow.NewIPCWriter().SerializeToIPC(record)
}
