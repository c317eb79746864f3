// Package frame implements the IWA chunk framing codec: the outermost
// layer of an .iwa file, below archive segments.
//
// Grounded on iwafile.py's IWACompressedChunk (_decompress_all/to_buffer)
// and spec.md §4.1/§6's normative grammar:
//
//	chunk := 0x00 u24_le(payload_len) snappy(uncompressed)
package frame

import (
	"github.com/iwahq/numbers/compress"
	"github.com/iwahq/numbers/internal/errs"
	"github.com/iwahq/numbers/internal/pool"
	"github.com/iwahq/numbers/internal/wire"
)

// WindowSize is the maximum number of uncompressed bytes per Snappy window,
// per spec.md §3's chunk-size invariant.
const WindowSize = 65536

// headerSize is the fixed 0x00 + 3-byte-length chunk header.
const headerSize = 4

// Decompress parses every chunk in data and returns the concatenated
// uncompressed stream. A chunk whose leading byte isn't 0x00 is a framing
// error; a chunk whose payload fails to Snappy-decompress is passed through
// raw, matching the teacher data's tolerance for occasionally-uncompressed
// archives.
func Decompress(data []byte) ([]byte, error) {
	codec := compress.NewSnappyCodec()

	out := pool.GetFileBuffer()
	defer pool.PutFileBuffer(out)

	for len(data) > 0 {
		if len(data) < headerSize {
			return nil, errs.ErrMalformedFraming
		}

		if data[0] != 0x00 {
			return nil, errs.ErrMalformedFraming
		}

		length := wire.U24(data[1:4])
		data = data[headerSize:]

		if uint32(len(data)) < length {
			return nil, errs.ErrMalformedFraming
		}

		payload := data[:length]
		data = data[length:]

		plain, err := codec.Decompress(payload)
		if err != nil || plain == nil {
			plain = payload
		}

		if _, err := out.Write(plain); err != nil {
			return nil, err
		}
	}

	return append([]byte(nil), out.Bytes()...), nil
}

// Compress splits data into ≤WindowSize windows, Snappy-compresses each,
// and frames each with a 0x00 + 3-byte-length header.
func Compress(data []byte) ([]byte, error) {
	codec := compress.NewSnappyCodec()

	out := pool.GetFileBuffer()
	defer pool.PutFileBuffer(out)

	for len(data) > 0 {
		n := len(data)
		if n > WindowSize {
			n = WindowSize
		}

		window := data[:n]
		data = data[n:]

		compressed, err := codec.Compress(window)
		if err != nil {
			return nil, err
		}

		if len(compressed) > 0xFFFFFF {
			return nil, errs.ErrMalformedFraming
		}

		header := make([]byte, headerSize)
		header[0] = 0x00
		wire.PutU24(header[1:4], uint32(len(compressed)))

		if _, err := out.Write(header); err != nil {
			return nil, err
		}
		if _, err := out.Write(compressed); err != nil {
			return nil, err
		}
	}

	return append([]byte(nil), out.Bytes()...), nil
}
