// Package compress turns an arbitrary byte stream into a forward-only stream of
// decompressed bytes.
//
// # Overview
//
// The compression format is detected from the leading bytes of the stream only; file
// names and extensions are never consulted. When no known signature matches, the
// stream is passed through unchanged.
//
//	Format   | Magic bytes                     | Library
//	---------|---------------------------------|---------------------------------
//	Gzip     | 1F 8B                           | github.com/klauspost/compress/gzip
//	Bzip2    | 42 5A 68 ("BZh")                | compress/bzip2
//	Xz       | FD 37 7A 58 5A 00               | github.com/ulikunitz/xz
//	Zstd     | 28 B5 2F FD                     | github.com/klauspost/compress/zstd
//	LZ4      | 04 22 4D 18                     | github.com/pierrec/lz4/v4
//	S2       | FF 06 00 00 "S2sTwO" / "sNaPpY" | github.com/klauspost/compress/s2
//
// Gzip streams made of several members (including BGZF) are decoded as one stream.
// Building with the "gozstd" tag (and cgo) switches the Zstd decoder to
// github.com/valyala/gozstd.
//
// # Architecture
//
// Every format implements one interface:
//
//	type Decoder interface {
//	    NewReader(r io.Reader) (io.ReadCloser, error)
//	}
//
// A Source owns exactly one decoder instance and exposes a single capability,
// ReadMore, that the record buffer uses to pull more decompressed bytes:
//
//	src, err := compress.NewSource(file)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	buf := make([]byte, 64*1024)
//	for {
//	    n, err := src.ReadMore(buf)
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err // *errs.IOError or *errs.CorruptDataError
//	    }
//	    process(buf[:n])
//	}
//
// # Error Handling
//
// Failures are classified at the Source boundary:
//   - errs.ErrIO when the underlying reader failed
//   - errs.ErrCorruptCompressedData when the decoder rejected the stream,
//     including truncated compressed input
//
// # Thread Safety
//
// Decoder values are stateless and safe to share. A Source is owned by one consumer
// and must not be used concurrently.
package compress
