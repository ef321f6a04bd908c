// Package verify checks a written container against the entries it was
// assembled from.
package verify

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"

	"github.com/user/icomerge/internal/registry"
	"github.com/user/icomerge/internal/sniffer"
)

// ErrMismatch is wrapped by every verification failure.
var ErrMismatch = errors.New("container mismatch")

// Container re-reads out as an ICO and checks that it holds exactly the given
// entries: same keys, sizes and offsets, and byte-identical payloads.
func Container(out io.ReadSeeker, entries []registry.Entry, bufSize int) error {
	res, err := sniffer.Sniff(out, "")
	if err != nil {
		return fmt.Errorf("rescan output: %w", err)
	}
	if res.Kind != sniffer.KindICO {
		return fmt.Errorf("%w: output is %s, not ICO", ErrMismatch, res.Kind)
	}
	if len(res.Entries) != len(entries) {
		return fmt.Errorf("%w: %d icons written, %d expected", ErrMismatch, len(res.Entries), len(entries))
	}

	buf := make([]byte, max(bufSize, 512))
	for i, want := range entries {
		got := res.Entries[i]
		if got.Key != want.Key {
			return fmt.Errorf("%w: entry %d is %s, expected %s", ErrMismatch, i, got.Key, want.Key)
		}
		if got.Source.Size != want.Source.Size || got.Source.Offset != want.Source.Target {
			return fmt.Errorf("%w: %s at %08x:%d, expected %08x:%d", ErrMismatch, want.Key,
				got.Source.Offset, got.Source.Size, want.Source.Target, want.Source.Size)
		}

		wantSum, err := digest(want.Source.File, want.Source.Offset, want.Source.Size, buf)
		if err != nil {
			return fmt.Errorf("hash %s in %s: %w", want.Key, want.Source.Path, err)
		}
		gotSum, err := digest(out, got.Source.Offset, got.Source.Size, buf)
		if err != nil {
			return fmt.Errorf("hash %s in output: %w", want.Key, err)
		}
		if !bytes.Equal(gotSum, wantSum) {
			return fmt.Errorf("%w: %s payload differs", ErrMismatch, want.Key)
		}
	}
	return nil
}

// digest returns the BLAKE2b-256 sum of size bytes of r starting at offset.
func digest(r io.ReadSeeker, offset, size uint32, buf []byte) ([]byte, error) {
	if _, err := r.Seek(int64(offset), io.SeekStart); err != nil {
		return nil, err
	}
	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, err
	}
	n, err := io.CopyBuffer(h, io.LimitReader(r, int64(size)), buf)
	if err != nil {
		return nil, err
	}
	if n != int64(size) {
		return nil, io.ErrUnexpectedEOF
	}
	return h.Sum(nil), nil
}
