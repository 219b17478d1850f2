package engine

import (
	"bytes"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
)

// Result is the outcome of one engine on one file.
type Result struct {
	File           string
	Engine         string
	OriginalSize   int
	CompressedSize int
	CompressTime   time.Duration
	DecompressTime time.Duration
}

// Ratio returns the compressed size as a percentage of the original size.
func (r Result) Ratio() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return float64(r.CompressedSize) / float64(r.OriginalSize) * 100
}

// Benchmark compresses and decompresses every file with every engine,
// verifies the round trip and prints a comparison table to opts.Out.
func Benchmark(files []string, opts Options) ([]Result, error) {
	opts = opts.withDefaults()
	var results []Result
	for _, file := range files {
		content, err := readFile(file, opts)
		if err != nil {
			return nil, err
		}
		info.Fprintf(opts.Out, "Benchmarking %s...\n", file)
		for _, engine := range Engines {
			result, err := benchmarkEngine(engine, content)
			if err != nil {
				return nil, errors.Wrap(err, file)
			}
			result.File = file
			results = append(results, result)
		}
	}

	tw := tabwriter.NewWriter(opts.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tENGINE\tORIGINAL\tCOMPRESSED\tRATIO\tCOMPRESS\tDECOMPRESS")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.2f%%\t%v\t%v\n",
			r.File, r.Engine, r.OriginalSize, r.CompressedSize, r.Ratio(), r.CompressTime, r.DecompressTime)
	}
	if err := tw.Flush(); err != nil {
		return nil, errors.Wrap(err, "writing benchmark table")
	}
	return results, nil
}

func benchmarkEngine(engine string, content []byte) (Result, error) {
	file := compressor{
		compressionEngine: engine,
	}
	start := time.Now()
	if _, err := file.write(content); err != nil {
		return Result{}, err
	}
	compressTime := time.Since(start)

	start = time.Now()
	restored, err := file.read()
	if err != nil {
		return Result{}, err
	}
	decompressTime := time.Since(start)

	if !bytes.Equal(content, restored) {
		return Result{}, errors.Errorf("%s: round trip mismatch", engine)
	}
	return Result{
		Engine:         engine,
		OriginalSize:   len(content),
		CompressedSize: len(file.compressedContent),
		CompressTime:   compressTime,
		DecompressTime: decompressTime,
	}, nil
}
