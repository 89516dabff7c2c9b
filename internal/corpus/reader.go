// Package corpus reads the on-disk discrete feature sequences that
// internal/hmm trains on: one file per utterance, each a
// CRC-32-protected (and optionally Reed-Solomon-protected) sequence of
// big-endian uint16 codebook symbols. Lattice/HTK file formats are
// explicitly out of scope; this is a flat format with just enough
// integrity protection to survive corpus files pulled off flaky
// removable storage.
package corpus

import (
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// magic identifies a discretehmm corpus file (format version 1).
var magic = [4]byte{'D', 'H', 'C', '1'}

// Reader walks a directory of utterance files in lexical filename
// order and decodes each one in turn.
type Reader struct {
	dir          string
	files        []string
	pos          int
	codebookSize int
	rs           *RSCodec // nil disables the Reed-Solomon unwrap
}

// NewReader opens dir and indexes every *.corpus file inside it,
// sorted by filename. codebookSize bounds the symbols a valid file may
// contain; rs, if non-nil, is applied to every file's raw bytes before
// the CRC/symbol layer is parsed.
func NewReader(dir string, codebookSize int, rs *RSCodec) (*Reader, error) {
	if codebookSize <= 0 {
		return nil, fmt.Errorf("corpus: NewReader: codebook_size must be positive")
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".corpus") {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("corpus: NewReader: %w", err)
	}
	sort.Strings(files)

	return &Reader{
		dir:          dir,
		files:        files,
		codebookSize: codebookSize,
		rs:           rs,
	}, nil
}

// Len returns the number of utterance files indexed.
func (r *Reader) Len() int { return len(r.files) }

// Next decodes the next utterance's features. It returns io.EOF once
// every indexed file has been read.
func (r *Reader) Next() (features []int, utteranceID string, err error) {
	if r.pos >= len(r.files) {
		return nil, "", io.EOF
	}
	path := r.files[r.pos]
	r.pos++

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("corpus: read %s: %w", path, err)
	}
	if r.rs != nil {
		raw, err = r.rs.Recover(raw)
		if err != nil {
			return nil, "", fmt.Errorf("corpus: reed-solomon recover %s: %w", path, err)
		}
	}

	features, err = decode(raw, r.codebookSize)
	if err != nil {
		return nil, "", fmt.Errorf("corpus: decode %s: %w", path, err)
	}
	return features, utteranceIDFromPath(path), nil
}

// Reset rewinds the reader to the first file.
func (r *Reader) Reset() { r.pos = 0 }

func utteranceIDFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// decode parses [MAGIC 4B][uint32 numFrames][uint16 symbol]*numFrames
// [CRC32 4B], validating both the trailer checksum and every symbol
// against codebookSize. The CRC is located right after the payload
// rather than at the very end of raw, so that trailing zero padding
// left behind by a Reed-Solomon shard split does not defeat it.
func decode(raw []byte, codebookSize int) ([]int, error) {
	if len(raw) < 8 || [4]byte(raw[:4]) != magic {
		return nil, fmt.Errorf("bad magic")
	}
	numFrames := binary.BigEndian.Uint32(raw[4:8])
	payloadEnd := 8 + int(numFrames)*2
	if len(raw) < payloadEnd+4 {
		return nil, fmt.Errorf("truncated corpus record")
	}

	body := raw[:payloadEnd]
	expected := binary.BigEndian.Uint32(raw[payloadEnd : payloadEnd+4])
	if corpusCRC32(body) != expected {
		return nil, fmt.Errorf("crc32 mismatch")
	}

	payload := raw[8:payloadEnd]
	features := make([]int, numFrames)
	for i := range features {
		symbol := binary.BigEndian.Uint16(payload[i*2 : i*2+2])
		if int(symbol) >= codebookSize {
			return nil, fmt.Errorf("frame %d: symbol %d >= codebook_size %d", i, symbol, codebookSize)
		}
		features[i] = int(symbol)
	}
	return features, nil
}

// Encode serializes features into the on-disk corpus format, ready to
// be written to a file (and optionally wrapped with an RSCodec).
func Encode(features []int, codebookSize int) ([]byte, error) {
	body := make([]byte, 8, 8+len(features)*2)
	copy(body[:4], magic[:])
	binary.BigEndian.PutUint32(body[4:8], uint32(len(features)))
	for _, symbol := range features {
		if symbol < 0 || symbol >= codebookSize {
			return nil, fmt.Errorf("corpus: Encode: symbol %d out of [0,%d)", symbol, codebookSize)
		}
		var buf [2]byte
		binary.BigEndian.PutUint16(buf[:], uint16(symbol))
		body = append(body, buf[:]...)
	}
	return appendChecksum(body), nil
}
