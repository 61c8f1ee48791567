// Package snapshot encodes the todos table into a portable binary file:
// a fixed header followed by an lz4 frame holding a MessagePack document.
package snapshot

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/adfharrison1/todod/pkg/domain"
)

// Data is the document stored inside a snapshot
type Data struct {
	Todos      []domain.Todo `msgpack:"todos"`
	ExportedAt int64         `msgpack:"exported_at"`
}

// Write encodes todos as a snapshot into w
func Write(w io.Writer, todos []domain.Todo) error {
	if err := WriteHeader(w); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	zw := lz4.NewWriter(w)
	data := Data{Todos: todos, ExportedAt: time.Now().Unix()}
	if err := msgpack.NewEncoder(zw).Encode(&data); err != nil {
		return fmt.Errorf("failed to encode MessagePack: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to compress data: %w", err)
	}
	return nil
}

// Read decodes a snapshot previously produced by Write
func Read(r io.Reader) (*Data, error) {
	if _, err := ReadHeader(r); err != nil {
		return nil, err
	}

	var data Data
	if err := msgpack.NewDecoder(lz4.NewReader(r)).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if data.Todos == nil {
		data.Todos = make([]domain.Todo, 0)
	}
	return &data, nil
}

// SaveToFile writes a snapshot of todos to filename, replacing it atomically
func SaveToFile(filename string, todos []domain.Todo) error {
	tmp := filename + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := Write(file, todos); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close file: %w", err)
	}
	return os.Rename(tmp, filename)
}

// LoadFromFile reads a snapshot file
func LoadFromFile(filename string) (*Data, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	return Read(file)
}
