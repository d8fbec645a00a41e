// Package fastx parses FASTA and FASTQ records from plain or compressed byte streams.
//
// # Grammar
//
// FASTA: a header line ">id[ description]" followed by zero or more sequence lines,
// wrapped arbitrarily, up to the next header or the end of input.
//
// FASTQ: a header line "@id[ description]", one sequence block (one or more lines), a
// separator line starting with '+' whose content is ignored, then quality lines until
// the quality block is exactly as long as the sequence block. A record with an empty
// sequence still has its (empty) quality line. Blank lines are allowed before the first
// record and at the end of input only.
//
// Both: CRLF line endings are accepted and the last line may lack its newline. Headers
// may be empty: ">" and "@" alone are records with an empty ID.
//
// # Usage
//
//	parser, err := fastx.NewParser(file)
//	if err != nil {
//	    return err
//	}
//	defer parser.Close()
//
//	for {
//	    rec, err := parser.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    keep = append(keep, rec.Clone()) // rec itself is reused by the next call
//	}
//
// # Errors
//
// Malformed input yields *errs.FormatError, which matches errs.ErrFormat and one of
// errs.ErrUnrecognizedLeadingByte, errs.ErrTruncatedRecord,
// errs.ErrQualityLengthMismatch or errs.ErrLineTooLong under
// errors.Is. The parser does not resynchronise: once an error is returned the stream
// is poisoned and every later call returns the same error.
package fastx
