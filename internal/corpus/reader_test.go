package corpus

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSmallRSCodec(t *testing.T) (*RSCodec, error) {
	t.Helper()
	return NewRSCodecCustom(16, 4)
}

func writeUtterance(t *testing.T, dir, name string, features []int, k int) {
	t.Helper()
	raw, err := Encode(features, k)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), raw, 0o644))
}

func TestReader_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeUtterance(t, dir, "a.corpus", []int{0, 1, 2, 1, 0}, 4)
	writeUtterance(t, dir, "b.corpus", []int{3, 3, 3}, 4)

	r, err := NewReader(dir, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())

	features, id, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", id)
	assert.Equal(t, []int{0, 1, 2, 1, 0}, features)

	features, id, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "b", id)
	assert.Equal(t, []int{3, 3, 3}, features)

	_, _, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReader_IgnoresNonCorpusFiles(t *testing.T) {
	dir := t.TempDir()
	writeUtterance(t, dir, "a.corpus", []int{0}, 2)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("not a corpus file"), 0o644))

	r, err := NewReader(dir, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
}

func TestReader_RejectsCorruptedFile(t *testing.T) {
	dir := t.TempDir()
	writeUtterance(t, dir, "a.corpus", []int{0, 1}, 2)

	raw, err := os.ReadFile(filepath.Join(dir, "a.corpus"))
	require.NoError(t, err)
	raw[0] ^= 0xFF
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.corpus"), raw, 0o644))

	r, err := NewReader(dir, 2, nil)
	require.NoError(t, err)
	_, _, err = r.Next()
	require.Error(t, err)
}

func TestReader_RejectsSymbolOutOfCodebookRange(t *testing.T) {
	dir := t.TempDir()
	writeUtterance(t, dir, "a.corpus", []int{0, 1, 2}, 3)

	r, err := NewReader(dir, 2, nil)
	require.NoError(t, err)
	_, _, err = r.Next()
	require.Error(t, err)
}

func TestReader_ReedSolomonProtected(t *testing.T) {
	dir := t.TempDir()

	rs, err := newSmallRSCodec(t)
	require.NoError(t, err)

	raw, err := Encode([]int{0, 1, 1, 0}, 2)
	require.NoError(t, err)
	encoded, err := rs.Protect(raw)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.corpus"), encoded, 0o644))

	r, err := NewReader(dir, 2, rs)
	require.NoError(t, err)
	features, _, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1, 0}, features)
}
