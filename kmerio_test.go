package kmerio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/kmerio/errs"
	"github.com/arloliu/kmerio/fastx"
	"github.com/arloliu/kmerio/format"
	"github.com/arloliu/kmerio/kmer"
)

const exampleFASTA = ">seq1\nACGT\n>seq2\nNNAC\n"

func TestOpen(t *testing.T) {
	parser, err := Open(strings.NewReader(exampleFASTA))
	require.NoError(t, err)
	defer parser.Close()

	var ids []string
	for rec, err := range parser.All() {
		require.NoError(t, err)
		ids = append(ids, string(rec.ID))
	}
	require.Equal(t, []string{"seq1", "seq2"}, ids)
	require.Equal(t, format.FormatFASTA, parser.Format())
}

func TestReadAll(t *testing.T) {
	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	_, err := w.Write([]byte(exampleFASTA))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	plain, err := ReadAll(strings.NewReader(exampleFASTA))
	require.NoError(t, err)
	compressed, err := ReadAll(&gz, fastx.WithBufferSize(3))
	require.NoError(t, err)

	require.Equal(t, plain, compressed)
	require.Len(t, plain, 2)
	require.Equal(t, "NNAC", string(plain[1].Seq))
}

func TestReadAll_PartialOnError(t *testing.T) {
	records, err := ReadAll(strings.NewReader("@r1\nAC\n+\nII\n@r2\nACGT\n+\nFF\n"))
	require.ErrorIs(t, err, errs.ErrQualityLengthMismatch)
	require.Len(t, records, 1)
	require.Equal(t, "r1", string(records[0].ID))
}

func TestCanonicalPipeline(t *testing.T) {
	records, err := ReadAll(strings.NewReader(exampleFASTA))
	require.NoError(t, err)

	engine, err := NewCanonicalEngine(2)
	require.NoError(t, err)

	var got [][]string
	for _, rec := range records {
		var kmers []string
		for km := range engine.Kmers(rec.Seq) {
			kmers = append(kmers, string(kmer.Unpack(nil, km.Value, 2)))
		}
		got = append(got, kmers)
	}
	require.Equal(t, [][]string{{"AC", "CG", "AC"}, {"AC"}}, got)
}

func TestEngineConstructors(t *testing.T) {
	_, err := NewEngine(0)
	require.ErrorIs(t, err, errs.ErrInvalidKmerLength)

	e, err := NewEngine(5, kmer.WithPacked(true))
	require.NoError(t, err)
	require.True(t, e.Packed())

	e, err = NewMinimizerEngine(15, 10)
	require.NoError(t, err)
	require.True(t, e.Canonical())
	require.Equal(t, 10, e.Window())

	_, err = NewMinimizerEngine(15, 0)
	require.ErrorIs(t, err, errs.ErrInvalidWindowSize)
}
