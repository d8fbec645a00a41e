package compress

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"math/rand"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"

	"github.com/arloliu/kmerio/format"
)

// bzip2Fixture holds bzip2Plain compressed with the bzip2 tool; the standard library
// only decodes bzip2.
const bzip2Fixture = "425a6839314159265359a57eb9be0000045f800010400030012880040001201c0020003100000649a3d4608bc312b08f194c96773a31542e33e2ee48a70a1214afd737c0"

const bzip2Plain = ">r1 first\nACGTACGT\nACGT\n>r2\nGGCC\n"

// sampleFASTA builds a deterministic multi-record FASTA text of roughly n bytes.
func sampleFASTA(n int) []byte {
	rng := rand.New(rand.NewSource(42))
	var buf bytes.Buffer
	for rec := 0; buf.Len() < n; rec++ {
		buf.WriteString(">read")
		buf.WriteByte(byte('0' + rec%10))
		buf.WriteString(" sample\n")
		for line := 0; line < 3; line++ {
			for i := 0; i < 60; i++ {
				buf.WriteByte("ACGT"[rng.Intn(4)])
			}
			buf.WriteByte('\n')
		}
	}

	return buf.Bytes()
}

func compressFixture(t *testing.T, c format.CompressionType, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	switch c {
	case format.CompressionNone:
		buf.Write(data)
	case format.CompressionGzip:
		w := gzip.NewWriter(&buf)
		_, err := w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case format.CompressionZstd:
		w, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case format.CompressionS2:
		w := s2.NewWriter(&buf)
		_, err := w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case format.CompressionLZ4:
		w := lz4.NewWriter(&buf)
		_, err := w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case format.CompressionXz:
		w, err := xz.NewWriter(&buf)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case format.CompressionBzip2:
		require.Equal(t, bzip2Plain, string(data), "bzip2 fixture is fixed")
		raw, err := hex.DecodeString(bzip2Fixture)
		require.NoError(t, err)
		buf.Write(raw)
	default:
		t.Fatalf("no fixture writer for %s", c)
	}

	return buf.Bytes()
}

// readAll drains a Source through ReadMore with a deliberately small buffer.
func readAll(src *Source, chunk int) ([]byte, error) {
	var out []byte
	p := make([]byte, chunk)
	for {
		n, err := src.ReadMore(p)
		out = append(out, p[:n]...)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}

// failingReader returns data, then err forever.
type failingReader struct {
	data []byte
	err  error
}

func (f *failingReader) Read(p []byte) (int, error) {
	if len(f.data) == 0 {
		return 0, f.err
	}
	n := copy(p, f.data)
	f.data = f.data[n:]

	return n, nil
}

// stallingReader never makes progress.
type stallingReader struct{}

func (stallingReader) Read([]byte) (int, error) { return 0, nil }
