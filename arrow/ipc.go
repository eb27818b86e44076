package arrow

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// IPCWriter writes Arrow records to the IPC stream format.
type IPCWriter struct {
	allocator memory.Allocator
}

// NewIPCWriter creates a new IPCWriter.
func NewIPCWriter() *IPCWriter {
	return &IPCWriter{
		allocator: memory.DefaultAllocator,
	}
}

// SerializeToIPC serializes an Arrow Record to IPC bytes.
func (w *IPCWriter) SerializeToIPC(record arrow.Record) ([]byte, error) {
	var buf bytes.Buffer

	writer := ipc.NewWriter(&buf, ipc.WithSchema(record.Schema()), ipc.WithAllocator(w.allocator))
	defer writer.Close()

	if err := writer.Write(record); err != nil {
		return nil, fmt.Errorf("failed to write record: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	return buf.Bytes(), nil
}

// DeserializeFromIPC reads the first record of IPC bytes. The caller must
// Release the returned record.
func (w *IPCWriter) DeserializeFromIPC(data []byte) (arrow.Record, error) {
	reader, err := ipc.NewReader(bytes.NewReader(data), ipc.WithAllocator(w.allocator))
	if err != nil {
		return nil, fmt.Errorf("failed to create reader: %w", err)
	}
	defer reader.Release()

	if !reader.Next() {
		if reader.Err() != nil {
			return nil, reader.Err()
		}
		return nil, errors.New("no records in IPC data")
	}

	record := reader.Record()
	record.Retain()

	return record, nil
}
