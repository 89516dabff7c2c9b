package corpus

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/klauspost/reedsolomon"
)

// corpusCRC32 is the IEEE-polynomial checksum decode uses to catch a
// truncated or bit-flipped utterance file before it ever reaches the
// symbol layer.
func corpusCRC32(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// appendChecksum appends a 4-byte big-endian CRC-32 trailer to an
// encoded utterance record.
func appendChecksum(record []byte) []byte {
	out := make([]byte, len(record)+4)
	copy(out, record)
	binary.BigEndian.PutUint32(out[len(record):], corpusCRC32(record))
	return out
}

// RSCodec Reed-Solomon encodes whole *.corpus files, splitting a file
// into dataShards equal-size shards plus parityShards parity shards.
// Recover detects shards altered by bit errors (such as flaky removable
// storage introduces) and rejects the file; it does not repair them,
// since no shard is ever marked missing for Reconstruct to rebuild. Symbol
// decoding never sees a shard boundary: Protect/Recover operate on the
// full encoded record decode() later parses.
type RSCodec struct {
	enc        reedsolomon.Encoder
	dataShards int
	parShards  int
}

// DefaultDataShards and DefaultParityShards give RS(255,223): 223 data
// shards and 32 parity shards per file.
const (
	DefaultDataShards   = 223
	DefaultParityShards = 32
)

// NewRSCodec builds the default RS(255,223) codec used when a corpus
// directory is read with --corpus-fec.
func NewRSCodec() (*RSCodec, error) {
	return NewRSCodecCustom(DefaultDataShards, DefaultParityShards)
}

// NewRSCodecCustom builds a codec with a caller-chosen shard split,
// mainly so tests can exercise recovery without RS(255,223)'s minimum
// 223-byte block size.
func NewRSCodecCustom(dataShards, parityShards int) (*RSCodec, error) {
	enc, err := reedsolomon.New(dataShards, parityShards)
	if err != nil {
		return nil, fmt.Errorf("corpus: new reed-solomon codec: %w", err)
	}
	return &RSCodec{enc: enc, dataShards: dataShards, parShards: parityShards}, nil
}

// Protect pads and splits record across dataShards equal shards, adds
// parShards parity shards, and concatenates all of them into the bytes
// that get written to disk in place of the plain record.
func (c *RSCodec) Protect(record []byte) ([]byte, error) {
	shards, err := c.splitData(record)
	if err != nil {
		return nil, err
	}
	if err := c.enc.Encode(shards); err != nil {
		return nil, fmt.Errorf("corpus: reed-solomon encode: %w", err)
	}

	total := c.dataShards + c.parShards
	out := make([]byte, 0, total*len(shards[0]))
	for _, shard := range shards {
		out = append(out, shard...)
	}
	return out, nil
}

// Recover verifies protected's shards and returns the original
// (zero-padded) record. protected is the raw bytes read back off disk;
// every shard is present, so Reconstruct has nothing to rebuild, and a
// shard altered in place makes Verify fail and Recover return an error.
func (c *RSCodec) Recover(protected []byte) ([]byte, error) {
	shards, err := c.splitEncoded(protected)
	if err != nil {
		return nil, err
	}
	if err := c.enc.Reconstruct(shards); err != nil {
		return nil, fmt.Errorf("corpus: reed-solomon reconstruct: %w", err)
	}
	ok, err := c.enc.Verify(shards)
	if err != nil {
		return nil, fmt.Errorf("corpus: reed-solomon verify: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("corpus: utterance file corrupted beyond repair")
	}

	var out []byte
	for i := 0; i < c.dataShards; i++ {
		out = append(out, shards[i]...)
	}
	return out, nil
}

func (c *RSCodec) splitData(record []byte) ([][]byte, error) {
	total := c.dataShards + c.parShards
	shardSize := (len(record) + c.dataShards - 1) / c.dataShards
	if shardSize == 0 {
		shardSize = 1
	}

	shards := make([][]byte, total)
	for i := 0; i < c.dataShards; i++ {
		shards[i] = make([]byte, shardSize)
		start := i * shardSize
		if start < len(record) {
			end := start + shardSize
			if end > len(record) {
				end = len(record)
			}
			copy(shards[i], record[start:end])
		}
	}
	for i := c.dataShards; i < total; i++ {
		shards[i] = make([]byte, shardSize)
	}
	return shards, nil
}

func (c *RSCodec) splitEncoded(protected []byte) ([][]byte, error) {
	total := c.dataShards + c.parShards
	if total == 0 || len(protected)%total != 0 {
		return nil, fmt.Errorf("corpus: protected record size %d not divisible by %d shards", len(protected), total)
	}
	shardSize := len(protected) / total

	shards := make([][]byte, total)
	for i := 0; i < total; i++ {
		shards[i] = make([]byte, shardSize)
		copy(shards[i], protected[i*shardSize:(i+1)*shardSize])
	}
	return shards, nil
}
