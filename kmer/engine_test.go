package kmer

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/kmerio/alphabet"
	"github.com/arloliu/kmerio/errs"
)

func randomSeq(rng *rand.Rand, n int, letters string) []byte {
	seq := make([]byte, n)
	for i := range seq {
		seq[i] = letters[rng.Intn(len(letters))]
	}

	return seq
}

func collect(e *Engine, seq []byte) []Kmer {
	return slices.Collect(e.Kmers(seq))
}

func TestNewEngine_Validation(t *testing.T) {
	tests := []struct {
		name string
		k    int
		opts []Option
		err  error
	}{
		{"zero k", 0, nil, errs.ErrInvalidKmerLength},
		{"negative k", -3, nil, errs.ErrInvalidKmerLength},
		{"zero k canonical", 0, []Option{WithCanonical(true)}, errs.ErrInvalidKmerLength},
		{"packed k too large", 33, []Option{WithPacked(true)}, errs.ErrInvalidKmerLength},
		{"canonical k too large", 64, []Option{WithCanonical(true)}, errs.ErrInvalidKmerLength},
		{"window with k too large", 40, []Option{WithWindow(5)}, errs.ErrInvalidKmerLength},
		{"zero window", 5, []Option{WithWindow(0)}, errs.ErrInvalidWindowSize},
		{"negative window", 5, []Option{WithWindow(-1)}, errs.ErrInvalidWindowSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEngine(tt.k, tt.opts...)
			require.ErrorIs(t, err, tt.err)
			require.Nil(t, e)
		})
	}

	_, err := NewEngine(5, WithComplementTable(nil))
	require.Error(t, err)
}

func TestNewEngine_Accessors(t *testing.T) {
	e, err := NewEngine(33)
	require.NoError(t, err, "raw mode has no upper bound on k")
	require.False(t, e.Packed())
	require.False(t, e.Canonical())
	require.Equal(t, 1, e.Window())

	e, err = NewEngine(21, WithCanonical(true), WithWindow(11))
	require.NoError(t, err)
	require.Equal(t, 21, e.K())
	require.True(t, e.Packed())
	require.True(t, e.Canonical())
	require.Equal(t, 11, e.Window())
	require.Same(t, alphabet.DefaultComplement, e.Complement())

	e, err = NewEngine(32, WithPacked(true))
	require.NoError(t, err)
	require.True(t, e.Packed())
	require.False(t, e.Canonical())
}

func TestEngine_RawCount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 0; n <= 40; n++ {
		seq := randomSeq(rng, n, "ACGTNRY")
		for k := 1; k <= 12; k++ {
			e, err := NewEngine(k)
			require.NoError(t, err)

			kmers := collect(e, seq)
			require.Len(t, kmers, max(0, n-k+1), "n=%d k=%d", n, k)
			require.Equal(t, len(kmers), e.Windows(n))
			for i, km := range kmers {
				require.Equal(t, i, km.Pos)
				require.Equal(t, seq[i:i+k], km.Seq)
				require.Equal(t, k, cap(km.Seq), "views are capped")
				require.Equal(t, Forward, km.Strand)
				require.Zero(t, km.Value)
			}
		}
	}
}

func TestEngine_CanonicalExample(t *testing.T) {
	e, err := NewEngine(2, WithCanonical(true))
	require.NoError(t, err)

	// seq1: AC, CG, GT. GT's reverse complement is AC.
	kmers := collect(e, []byte("ACGT"))
	require.Len(t, kmers, 3)

	ac, _ := Pack([]byte("AC"))
	cg, _ := Pack([]byte("CG"))
	require.Equal(t, []Kmer{
		{Pos: 0, Seq: []byte("AC"), Value: ac, Strand: Forward},
		{Pos: 1, Seq: []byte("CG"), Value: cg, Strand: Forward},
		{Pos: 2, Seq: []byte("GT"), Value: ac, Strand: Reverse},
	}, kmers)

	// seq2: every window touching N is skipped, leaving AC at position 2.
	kmers = collect(e, []byte("NNAC"))
	require.Len(t, kmers, 1)
	require.Equal(t, 2, kmers[0].Pos)
	require.Equal(t, "AC", string(kmers[0].Seq))
	require.Equal(t, ac, kmers[0].Value)
}

func TestEngine_PackedSkipsNonACGT(t *testing.T) {
	e, err := NewEngine(3, WithPacked(true))
	require.NoError(t, err)

	var positions []int
	for km := range e.Kmers([]byte("ACGNTTAC-GGA")) {
		positions = append(positions, km.Pos)
		require.Equal(t, Forward, km.Strand)
	}
	// ACG | TTA TAC | GGA
	require.Equal(t, []int{0, 4, 5, 9}, positions)
}

func TestEngine_PackedMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, k := range []int{1, 2, 3, 5, 8, 15, 16, 21, 31, 32} {
		for _, canonical := range []bool{false, true} {
			e, err := NewEngine(k, WithPacked(true), WithCanonical(canonical))
			require.NoError(t, err)

			for range 20 {
				seq := randomSeq(rng, 200, "ACGTACGTACGTN")

				var want []Kmer
				for pos := 0; pos+k <= len(seq); pos++ {
					window := seq[pos : pos+k]
					value, ok := Pack(window)
					if !ok {
						continue
					}
					strand := Forward
					if canonical {
						var canon []byte
						canon, strand = CanonicalBytes(nil, window, nil)
						value, ok = Pack(canon)
						require.True(t, ok)
					}
					want = append(want, Kmer{Pos: pos, Seq: window, Value: value, Strand: strand})
				}

				got := collect(e, seq)
				require.Len(t, got, len(want), "k=%d", k)
				for i := range want {
					require.Equal(t, want[i].Pos, got[i].Pos)
					require.Equal(t, want[i].Value, got[i].Value, "k=%d pos=%d", k, want[i].Pos)
					require.Equal(t, want[i].Strand, got[i].Strand)
					require.Equal(t, want[i].Seq, got[i].Seq)
				}
			}
		}
	}
}

func TestEngine_LowercasePacksLikeUppercase(t *testing.T) {
	e, err := NewEngine(4, WithCanonical(true))
	require.NoError(t, err)

	upper := collect(e, []byte("ACGTTGCAAC"))
	lower := collect(e, []byte("acgtTGCaac"))
	require.Len(t, lower, len(upper))
	for i := range upper {
		require.Equal(t, upper[i].Value, lower[i].Value)
		require.Equal(t, upper[i].Strand, lower[i].Strand)
	}
}

func TestEngine_StrandInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, k := range []int{1, 4, 7, 16, 32} {
		e, err := NewEngine(k, WithCanonical(true))
		require.NoError(t, err)

		for range 50 {
			kmer := randomSeq(rng, k, "ACGT")
			rc := alphabet.ReverseComplement(nil, kmer, nil)

			fwd := collect(e, kmer)
			rev := collect(e, rc)
			require.Len(t, fwd, 1)
			require.Len(t, rev, 1)
			require.Equal(t, fwd[0].Value, rev[0].Value)

			a, _ := CanonicalBytes(nil, kmer, nil)
			b, _ := CanonicalBytes(nil, rc, nil)
			require.Equal(t, a, b)
		}
	}
}

func TestEngine_Restartable(t *testing.T) {
	e, err := NewEngine(3, WithCanonical(true))
	require.NoError(t, err)

	seq := []byte("ACGTTGCANNACGT")
	it := e.Kmers(seq)
	first := slices.Collect(it)
	second := slices.Collect(it)
	require.Equal(t, first, second)

	// Breaking out early is safe.
	n := 0
	for range it {
		n++
		if n == 2 {
			break
		}
	}
	require.Equal(t, 2, n)
}

func TestEngine_ShortSequence(t *testing.T) {
	for _, opts := range [][]Option{nil, {WithPacked(true)}, {WithCanonical(true)}} {
		e, err := NewEngine(5, opts...)
		require.NoError(t, err)
		require.Empty(t, collect(e, []byte("ACGT")))
		require.Empty(t, collect(e, nil))
	}
}

func TestEngine_K32(t *testing.T) {
	e, err := NewEngine(32, WithPacked(true))
	require.NoError(t, err)

	seq := []byte("TTTTTTTTTTTTTTTTTTTTTTTTTTTTTTTTA")
	kmers := collect(e, seq)
	require.Len(t, kmers, 2)
	require.Equal(t, ^uint64(0), kmers[0].Value)
	require.Equal(t, ^uint64(3), kmers[1].Value, "31 Ts then A")
}

func TestEngine_CanonicalBytesUsesTable(t *testing.T) {
	// A table that leaves every base alone makes the reverse complement a plain reversal.
	identity := alphabet.NewComplementTable(nil)
	e, err := NewEngine(3, WithComplementTable(identity))
	require.NoError(t, err)

	got, strand := e.CanonicalBytes(nil, []byte("TCA"))
	require.Equal(t, "ACT", string(got))
	require.Equal(t, Reverse, strand)
}
