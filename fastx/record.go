package fastx

import (
	"bytes"

	"github.com/arloliu/kmerio/alphabet"
)

// Record is one parsed FASTA or FASTQ record.
//
// The byte slices returned by Parser.Next are borrowed: they alias parser-owned
// storage that is overwritten by the following Next call. Use Clone to keep a record.
type Record struct {
	// Header is the header line without its leading '>' or '@'.
	Header []byte
	// ID is the token before the first whitespace of the header.
	ID []byte
	// Desc is the header remainder after the whitespace following ID, possibly empty.
	Desc []byte
	// Seq is the concatenation of all sequence lines.
	Seq []byte
	// Qual is the concatenation of all quality lines; nil for FASTA records.
	Qual []byte
}

// IsFASTQ reports whether the record carries qualities.
func (r Record) IsFASTQ() bool {
	return r.Qual != nil
}

// Len returns the sequence length.
func (r Record) Len() int {
	return len(r.Seq)
}

// Clone returns a deep copy whose slices no longer alias parser storage.
// Nil-ness of every field is preserved, so a FASTQ record with an empty
// sequence stays a FASTQ record.
func (r Record) Clone() Record {
	return Record{
		Header: bytes.Clone(r.Header),
		ID:     bytes.Clone(r.ID),
		Desc:   bytes.Clone(r.Desc),
		Seq:    bytes.Clone(r.Seq),
		Qual:   bytes.Clone(r.Qual),
	}
}

// StripDescription returns the record with its header reduced to the ID.
// The description is kept in Desc, not discarded.
func (r Record) StripDescription() Record {
	r.Header = r.ID
	return r
}

// ReverseComplement returns a newly allocated reverse complement of the sequence.
// A nil table selects alphabet.DefaultComplement.
func (r Record) ReverseComplement(t *alphabet.ComplementTable) []byte {
	return alphabet.ReverseComplement(make([]byte, 0, len(r.Seq)), r.Seq, t)
}

// ReverseQuality returns a newly allocated copy of the qualities in reverse order,
// matching ReverseComplement position by position. Returns nil for FASTA records.
func (r Record) ReverseQuality() []byte {
	if r.Qual == nil {
		return nil
	}
	out := make([]byte, len(r.Qual))
	for i, q := range r.Qual {
		out[len(out)-1-i] = q
	}

	return out
}

// splitHeader splits a header (without marker) into the ID token and description.
// Leading whitespace before the ID is ignored.
func splitHeader(header []byte) (id, desc []byte) {
	header = bytes.TrimLeft(header, " \t")
	i := bytes.IndexAny(header, " \t")
	if i < 0 {
		return header, header[len(header):]
	}
	id = header[:i]
	desc = bytes.TrimLeft(header[i:], " \t")

	return id, desc
}
