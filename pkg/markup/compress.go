package markup

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"os"

	"github.com/golang/snappy"
)

// Compressed container layout:
//
//	[0:4]  magic "SFZ1"
//	[4:8]  crc32 (Castagnoli) of the uncompressed document
//	[8:]   snappy block encoding of the document
var containerMagic = []byte("SFZ1")

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// ErrCorruptFile reports a container whose checksum or framing failed.
var ErrCorruptFile = errors.New("corrupt markup container")

// Compress wraps an encoded document in the compressed container.
func Compress(doc []byte) []byte {
	out := make([]byte, 8, 8+snappy.MaxEncodedLen(len(doc)))
	copy(out, containerMagic)
	binary.LittleEndian.PutUint32(out[4:8], crc32.Checksum(doc, castagnoli))
	return append(out, snappy.Encode(nil, doc)...)
}

// Decompress unwraps a compressed container and verifies its checksum.
func Decompress(data []byte) ([]byte, error) {
	if len(data) < 8 || string(data[:4]) != string(containerMagic) {
		return nil, fmt.Errorf("%w: bad magic", ErrCorruptFile)
	}
	doc, err := snappy.Decode(nil, data[8:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}
	want := binary.LittleEndian.Uint32(data[4:8])
	if got := crc32.Checksum(doc, castagnoli); got != want {
		return nil, fmt.Errorf("%w: checksum mismatch (want %08x, got %08x)", ErrCorruptFile, want, got)
	}
	return doc, nil
}

// WriteFile writes an encoded document to disk, compressing it when
// compress is set.
func WriteFile(path string, doc []byte, compress bool) error {
	if compress {
		doc = Compress(doc)
	}
	return os.WriteFile(path, doc, 0o644)
}

// ReadFile reads an encoded document from disk, transparently
// decompressing containers identified by their magic.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) >= 4 && string(data[:4]) == string(containerMagic) {
		return Decompress(data)
	}
	return data, nil
}
