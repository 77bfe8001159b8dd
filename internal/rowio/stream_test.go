package rowio

import (
	"errors"
	"io"
	"testing"
)

// chunkReader returns one chunk per Read call, so multi-byte runes can
// be split across reads deliberately.
type chunkReader struct {
	chunks [][]byte
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.chunks[0])
	c.chunks[0] = c.chunks[0][n:]
	if len(c.chunks[0]) == 0 {
		c.chunks = c.chunks[1:]
	}
	return n, nil
}

// ----------------------------------------------------------------------------
// Sanitizer Tests
// ----------------------------------------------------------------------------

func TestSanitizer_RuneSplitAcrossReads(t *testing.T) {
	// "é" is 0xC3 0xA9; split between two reads it must be reassembled,
	// not scrubbed.
	s := newSanitizer(&chunkReader{chunks: [][]byte{{'a', 0xC3}, {0xA9, 'b'}}})

	out, err := io.ReadAll(s)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(out) != "aéb" {
		t.Errorf("read %q, want %q", out, "aéb")
	}
}

func TestSanitizer_ShortBufferKeepsPending(t *testing.T) {
	s := newSanitizer(&chunkReader{chunks: [][]byte{{0xC3}, {0xA9}}})

	// First read defers the incomplete rune prefix.
	buf := make([]byte, 8)
	if n, err := s.Read(buf); n != 0 || err != nil {
		t.Fatalf("first read = (%d, %v), want (0, nil)", n, err)
	}

	// A buffer with no room past the prefix must refuse rather than
	// emit a partial rune and drop the rest.
	if _, err := s.Read(make([]byte, 1)); !errors.Is(err, io.ErrShortBuffer) {
		t.Fatalf("short read err = %v, want io.ErrShortBuffer", err)
	}

	// The deferred bytes survive the refusal.
	n, err := s.Read(buf)
	if err != nil {
		t.Fatalf("final read: %v", err)
	}
	if string(buf[:n]) != "é" {
		t.Errorf("final read = %q, want %q", buf[:n], "é")
	}
}
