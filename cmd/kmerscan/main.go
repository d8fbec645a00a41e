// Command kmerscan summarises FASTA/FASTQ files: record and base counts, k-mer counts
// and minimizer density. Files may be compressed with any format kmerio detects.
//
// Usage:
//
//	kmerscan [-k 21] [-w 11] [-canonical] [-uppercase] [-max-line n] file...
//
// One tab-separated line is written per file. Files are processed in parallel, each by
// its own parser and counter.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/exascience/pargo/parallel"

	"github.com/arloliu/kmerio/fastx"
	"github.com/arloliu/kmerio/kmer"
)

type config struct {
	k         int
	w         int
	canonical bool
	uppercase bool
	maxLine   int
}

type summary struct {
	path        string
	format      string
	compression string
	records     int
	bases       int64
	kmers       uint64
	distinct    int
	minimizers  int64
	elapsed     time.Duration
	err         error
}

func main() {
	var cfg config
	flag.IntVar(&cfg.k, "k", 21, "k-mer length")
	flag.IntVar(&cfg.w, "w", 11, "minimizer window, in k-mers")
	flag.BoolVar(&cfg.canonical, "canonical", true, "count canonical k-mers")
	flag.BoolVar(&cfg.uppercase, "uppercase", false, "upper-case sequences while parsing")
	flag.IntVar(&cfg.maxLine, "max-line", 0, "reject lines longer than `n` bytes (0: unlimited)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: kmerscan [flags] file...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	engine, err := newEngine(cfg)
	if err != nil {
		logger.Error("invalid k-mer settings", "k", cfg.k, "w", cfg.w, "error", err)
		os.Exit(2)
	}

	paths := flag.Args()
	results := make([]summary, len(paths))
	parallel.Range(0, len(paths), 0, func(low, high int) {
		for i := low; i < high; i++ {
			logger.Info("scanning", "file", paths[i])
			results[i] = scanFile(paths[i], cfg, engine)
			if results[i].err != nil {
				logger.Error("scan failed", "file", paths[i], "records", results[i].records, "error", results[i].err)
				continue
			}
			logger.Info("done", "file", paths[i], "records", results[i].records, "elapsed", results[i].elapsed)
		}
	})

	failed := writeSummaries(os.Stdout, results)
	if failed > 0 {
		os.Exit(1)
	}
}

func newEngine(cfg config) (*kmer.Engine, error) {
	opts := []kmer.Option{kmer.WithWindow(cfg.w)}
	if cfg.canonical {
		opts = append(opts, kmer.WithCanonical(true))
	} else {
		opts = append(opts, kmer.WithPacked(true))
	}

	return kmer.NewEngine(cfg.k, opts...)
}

func scanFile(path string, cfg config, engine *kmer.Engine) summary {
	start := time.Now()
	s := summary{path: path}

	f, err := os.Open(path)
	if err != nil {
		s.err = err
		return s
	}
	defer f.Close()

	opts := []fastx.Option{fastx.WithMaxLineSize(cfg.maxLine)}
	if cfg.uppercase {
		opts = append(opts, fastx.WithUppercase())
	}

	parser, err := fastx.NewParser(f, opts...)
	if err != nil {
		s.err = err
		return s
	}
	defer parser.Close()

	counter := kmer.NewCounter(engine)
	for rec, err := range parser.All() {
		if err != nil {
			s.err = err
			break
		}
		s.bases += int64(rec.Len())
		if err := counter.Add(rec.Seq); err != nil {
			s.err = err
			break
		}
		for range engine.Minimizers(rec.Seq) {
			s.minimizers++
		}
	}

	s.format = parser.Format().String()
	s.compression = parser.Compression().String()
	s.records = parser.Records()
	s.kmers = counter.Total()
	s.distinct = counter.Distinct()
	s.elapsed = time.Since(start)

	return s
}

// writeSummaries prints one row per file and returns the number of failed files.
func writeSummaries(w io.Writer, results []summary) int {
	tw := tabwriter.NewWriter(w, 0, 8, 1, '\t', 0)
	fmt.Fprintln(tw, "file\tformat\tcompression\trecords\tbases\tkmers\tdistinct\tminimizers\tstatus")

	failed := 0
	for _, s := range results {
		status := "ok"
		if s.err != nil {
			status = "error: " + s.err.Error()
			failed++
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
			s.path, s.format, s.compression, s.records, s.bases, s.kmers, s.distinct, s.minimizers, status)
	}
	_ = tw.Flush()

	return failed
}
