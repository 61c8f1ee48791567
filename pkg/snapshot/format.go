package snapshot

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// Magic bytes to identify a todo snapshot
	MagicBytes = "TDSN"
	// Current version
	FormatVersion = 1
	// File extension for snapshot files
	FileExtension = ".tdsnap"
)

// FileHeader represents the header of a snapshot
type FileHeader struct {
	Magic    [4]byte // "TDSN"
	Version  uint8   // Format version
	Flags    uint8   // Reserved for future use
	Reserved [2]byte // Reserved for future use
}

// WriteHeader writes the snapshot header to the given writer
func WriteHeader(w io.Writer) error {
	header := FileHeader{
		Magic:   [4]byte{'T', 'D', 'S', 'N'},
		Version: FormatVersion,
	}

	return binary.Write(w, binary.LittleEndian, header)
}

// ReadHeader reads and validates the snapshot header
func ReadHeader(r io.Reader) (*FileHeader, error) {
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicBytes {
		return nil, fmt.Errorf("invalid snapshot format: expected %s, got %s", MagicBytes, string(header.Magic[:]))
	}

	if header.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported snapshot version: %d", header.Version)
	}

	return &header, nil
}
