package compress

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/kmerio/errs"
	"github.com/arloliu/kmerio/format"
)

func TestSource_Decompresses(t *testing.T) {
	for _, c := range allCompressions {
		t.Run(c.String(), func(t *testing.T) {
			data := sampleFASTA(200 * 1024)
			if c == format.CompressionBzip2 {
				data = []byte(bzip2Plain)
			}

			src, err := NewSource(bytes.NewReader(compressFixture(t, c, data)))
			require.NoError(t, err)
			defer src.Close()

			require.Equal(t, c, src.Compression())

			got, err := readAll(src, 4093)
			require.NoError(t, err)
			require.Equal(t, data, got)
			require.Equal(t, int64(len(data)), src.Offset())

			// End of stream is sticky.
			n, err := src.ReadMore(make([]byte, 8))
			require.Equal(t, 0, n)
			require.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestSource_TinyReads(t *testing.T) {
	data := []byte(bzip2Plain)
	src, err := NewSource(bytes.NewReader(compressFixture(t, format.CompressionGzip, data)))
	require.NoError(t, err)
	defer src.Close()

	got, err := readAll(src, 1)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestSource_Empty(t *testing.T) {
	src, err := NewSource(bytes.NewReader(nil))
	require.NoError(t, err)
	defer src.Close()

	require.Equal(t, format.CompressionNone, src.Compression())

	n, err := src.ReadMore(make([]byte, 16))
	require.Equal(t, 0, n)
	require.ErrorIs(t, err, io.EOF)
}

func TestSource_ShorterThanMagic(t *testing.T) {
	src, err := NewSource(bytes.NewReader([]byte(">a\n")))
	require.NoError(t, err)
	defer src.Close()

	got, err := readAll(src, 2)
	require.NoError(t, err)
	require.Equal(t, ">a\n", string(got))
}

func TestSource_ZeroLengthBuffer(t *testing.T) {
	src, err := NewSource(bytes.NewReader([]byte(">a\nAC\n")))
	require.NoError(t, err)
	defer src.Close()

	n, err := src.ReadMore(nil)
	require.Equal(t, 0, n)
	require.NoError(t, err)
}

func TestSource_GzipMultiMember(t *testing.T) {
	first := []byte(">r1\nACGT\n")
	second := []byte(">r2\nTTGG\n")

	var stream bytes.Buffer
	stream.Write(compressFixture(t, format.CompressionGzip, first))
	stream.Write(compressFixture(t, format.CompressionGzip, second))

	src, err := NewSource(&stream)
	require.NoError(t, err)
	defer src.Close()

	got, err := readAll(src, 5)
	require.NoError(t, err)
	require.Equal(t, append(first, second...), got)
}

func TestSource_CorruptHeader(t *testing.T) {
	// Gzip magic followed by an unknown compression method.
	bad := []byte{0x1f, 0x8b, 0x63, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xff, 'A', 'C', 'G', 'T'}

	_, err := NewSource(bytes.NewReader(bad))
	require.ErrorIs(t, err, errs.ErrCorruptCompressedData)
	require.NotErrorIs(t, err, errs.ErrIO)

	var cde *errs.CorruptDataError
	require.True(t, errors.As(err, &cde))
	require.Equal(t, "Gzip", cde.Compression)
}

func TestSource_TruncatedStream(t *testing.T) {
	data := sampleFASTA(64 * 1024)
	for _, c := range []format.CompressionType{format.CompressionGzip, format.CompressionZstd} {
		t.Run(c.String(), func(t *testing.T) {
			encoded := compressFixture(t, c, data)
			encoded = encoded[:len(encoded)/2]

			src, err := NewSource(bytes.NewReader(encoded))
			require.NoError(t, err)
			defer src.Close()

			got, err := readAll(src, 1024)
			require.ErrorIs(t, err, errs.ErrCorruptCompressedData)
			require.NotErrorIs(t, err, errs.ErrIO)
			require.Less(t, len(got), len(data))
			require.Equal(t, string(data[:len(got)]), string(got), "bytes before the failure are intact")

			// The error is sticky.
			_, again := src.ReadMore(make([]byte, 16))
			require.Equal(t, err, again)
		})
	}
}

func TestSource_IOError(t *testing.T) {
	diskGone := errors.New("disk gone")

	t.Run("plain", func(t *testing.T) {
		data := []byte(">r1\nACGTACGTACGT\n")
		src, err := NewSource(&failingReader{data: data, err: diskGone})
		require.NoError(t, err)
		defer src.Close()

		got, err := readAll(src, 64)
		require.Equal(t, data, got, "bytes read before the failure are delivered")
		require.ErrorIs(t, err, errs.ErrIO)
		require.ErrorIs(t, err, diskGone)
		require.NotErrorIs(t, err, errs.ErrCorruptCompressedData)

		var ioe *errs.IOError
		require.True(t, errors.As(err, &ioe))
		require.Equal(t, int64(len(data)), ioe.Offset)
	})

	t.Run("gzip", func(t *testing.T) {
		encoded := compressFixture(t, format.CompressionGzip, sampleFASTA(64*1024))
		src, err := NewSource(&failingReader{data: encoded[:len(encoded)/2], err: diskGone})
		require.NoError(t, err)
		defer src.Close()

		_, err = readAll(src, 1024)
		require.ErrorIs(t, err, errs.ErrIO)
		require.NotErrorIs(t, err, errs.ErrCorruptCompressedData)
	})

	t.Run("fails while peeking", func(t *testing.T) {
		_, err := NewSource(&failingReader{err: diskGone})
		require.ErrorIs(t, err, errs.ErrIO)
		require.ErrorIs(t, err, diskGone)
	})

	t.Run("no progress", func(t *testing.T) {
		_, err := NewSource(stallingReader{})
		require.ErrorIs(t, err, errs.ErrIO)
		require.ErrorIs(t, err, io.ErrNoProgress)
	})
}

func TestNewSourceWithCompression(t *testing.T) {
	data := []byte(bzip2Plain)

	src, err := NewSourceWithCompression(bytes.NewReader(compressFixture(t, format.CompressionZstd, data)), format.CompressionZstd)
	require.NoError(t, err)
	defer src.Close()

	got, err := readAll(src, 3)
	require.NoError(t, err)
	require.Equal(t, data, got)

	_, err = NewSourceWithCompression(bytes.NewReader(data), format.CompressionType(0))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestSource_Close(t *testing.T) {
	src, err := NewSource(bytes.NewReader(compressFixture(t, format.CompressionGzip, []byte(bzip2Plain))))
	require.NoError(t, err)

	require.NoError(t, src.Close())
	require.NoError(t, src.Close())

	n, err := src.ReadMore(make([]byte, 8))
	require.Equal(t, 0, n)
	require.ErrorIs(t, err, io.EOF)
}
