package financisto

import (
	"bufio"
	"compress/gzip"
	"io"
)

// Financisto backups may or may not be gzip-compressed; the only way to tell
// is the two-byte magic number at the start of the stream.
const (
	gzipMagic1 = 0x1f
	gzipMagic2 = 0x8b
)

// newBackupReader wraps r, transparently decompressing gzip input. The
// signature bytes are peeked, not consumed, so uncompressed backups pass
// through intact.
func newBackupReader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	sig, err := br.Peek(2)
	if err != nil {
		if err == io.EOF {
			// Shorter than two bytes: cannot be gzip, let the parser see it as-is.
			return br, nil
		}
		return nil, err
	}

	if sig[0] == gzipMagic1 && sig[1] == gzipMagic2 {
		return gzip.NewReader(br)
	}
	return br, nil
}
