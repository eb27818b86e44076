package arrow

import (
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ChannelRow is one channel of a registry snapshot.
type ChannelRow struct {
	ChannelID  string  `json:"channel_id"`
	Prefix     *uint8  `json:"prefix,omitempty"`
	Width      int32   `json:"width"`
	Entropy    float64 `json:"entropy"`
	MostLikely string  `json:"most_likely"`
	Anomalous  bool    `json:"anomalous"`
	CreatedAt  int64   `json:"created_at"`
}

// ChannelSchema returns the Arrow schema of a channel snapshot.
//
// Fields:
//   - channel_id: string - decimal digits of the ChannelID
//   - prefix: uint8 (nullable) - first digit, null for an empty id
//   - width: int32 - number of digit positions of the state
//   - entropy: float64 - state entropy in nats
//   - most_likely: string - most likely digit per position
//   - anomalous: bool - entropy above the anomaly threshold
//   - created_at: int64 - insertion time, Unix milliseconds
func ChannelSchema() *arrow.Schema {
	return arrow.NewSchema(
		[]arrow.Field{
			{Name: "channel_id", Type: arrow.BinaryTypes.String},
			{Name: "prefix", Type: arrow.PrimitiveTypes.Uint8, Nullable: true},
			{Name: "width", Type: arrow.PrimitiveTypes.Int32},
			{Name: "entropy", Type: arrow.PrimitiveTypes.Float64},
			{Name: "most_likely", Type: arrow.BinaryTypes.String},
			{Name: "anomalous", Type: arrow.FixedWidthTypes.Boolean},
			{Name: "created_at", Type: arrow.PrimitiveTypes.Int64},
		},
		nil,
	)
}

// ChannelsToRecord builds a record from rows. An empty slice yields a record
// with zero rows. The caller must Release the record.
func ChannelsToRecord(rows []ChannelRow) arrow.Record {
	builder := array.NewRecordBuilder(memory.DefaultAllocator, ChannelSchema())
	defer builder.Release()

	idBuilder := builder.Field(0).(*array.StringBuilder)
	prefixBuilder := builder.Field(1).(*array.Uint8Builder)
	widthBuilder := builder.Field(2).(*array.Int32Builder)
	entropyBuilder := builder.Field(3).(*array.Float64Builder)
	likelyBuilder := builder.Field(4).(*array.StringBuilder)
	anomalousBuilder := builder.Field(5).(*array.BooleanBuilder)
	createdBuilder := builder.Field(6).(*array.Int64Builder)

	for _, row := range rows {
		idBuilder.Append(row.ChannelID)
		if row.Prefix != nil {
			prefixBuilder.Append(*row.Prefix)
		} else {
			prefixBuilder.AppendNull()
		}
		widthBuilder.Append(row.Width)
		entropyBuilder.Append(row.Entropy)
		likelyBuilder.Append(row.MostLikely)
		anomalousBuilder.Append(row.Anomalous)
		createdBuilder.Append(row.CreatedAt)
	}

	return builder.NewRecord()
}

// RecordToChannels converts a snapshot record back to rows.
func RecordToChannels(record arrow.Record) ([]ChannelRow, error) {
	if record == nil {
		return nil, errors.New("record is nil")
	}
	if !record.Schema().Equal(ChannelSchema()) {
		return nil, fmt.Errorf("unexpected schema: %s", record.Schema())
	}

	ids := record.Column(0).(*array.String)
	prefixes := record.Column(1).(*array.Uint8)
	widths := record.Column(2).(*array.Int32)
	entropies := record.Column(3).(*array.Float64)
	likely := record.Column(4).(*array.String)
	anomalous := record.Column(5).(*array.Boolean)
	created := record.Column(6).(*array.Int64)

	rows := make([]ChannelRow, record.NumRows())
	for i := range rows {
		rows[i] = ChannelRow{
			ChannelID:  ids.Value(i),
			Width:      widths.Value(i),
			Entropy:    entropies.Value(i),
			MostLikely: likely.Value(i),
			Anomalous:  anomalous.Value(i),
			CreatedAt:  created.Value(i),
		}
		if !prefixes.IsNull(i) {
			p := prefixes.Value(i)
			rows[i].Prefix = &p
		}
	}
	return rows, nil
}
