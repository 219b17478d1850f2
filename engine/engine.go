package engine

import (
	"bytes"
	"io"
	"os"
	"strings"

	pb "github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/FitrahHaque/huffman-engine/compressor/huffman"
)

// Engines lists the algorithms known to the engine.  Only huffman is used to
// produce files; the others are baselines for Benchmark.
var Engines = [...]string{
	"huffman",
	"gzip",
	"zstd",
}

// DefaultExtension is appended to compressed file names.
const DefaultExtension = "huf"

// Options configures file operations.
type Options struct {
	// Extension of compressed files, without the dot.
	Extension string
	// Delete removes each input file once it has been processed.
	Delete bool
	// Quiet disables progress bars.
	Quiet bool
	// Out receives status lines and progress bars; os.Stdout if nil.
	Out io.Writer
}

func (o Options) withDefaults() Options {
	if o.Extension == "" {
		o.Extension = DefaultExtension
	}
	o.Extension = strings.TrimPrefix(o.Extension, ".")
	if o.Out == nil {
		o.Out = os.Stdout
	}
	return o
}

var (
	info    = color.New(color.FgCyan)
	success = color.New(color.FgGreen)
	warning = color.New(color.FgYellow)
)

var writers = map[string]func(io.Writer) (io.WriteCloser, error){
	"huffman": func(w io.Writer) (io.WriteCloser, error) {
		return huffman.NewWriter(w), nil
	},
	"gzip": func(w io.Writer) (io.WriteCloser, error) {
		return gzip.NewWriter(w), nil
	},
	"zstd": func(w io.Writer) (io.WriteCloser, error) {
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, err
		}
		return enc, nil
	},
}

var readers = map[string]func(io.Reader) (io.ReadCloser, error){
	"huffman": func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(huffman.NewReader(r)), nil
	},
	"gzip": func(r io.Reader) (io.ReadCloser, error) {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr, nil
	},
	"zstd": func(r io.Reader) (io.ReadCloser, error) {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	},
}

type compressor struct {
	compressionEngine string
	compressedContent []byte
}

func (c *compressor) write(content []byte) (int, error) {
	newWriter, ok := writers[c.compressionEngine]
	if !ok {
		return 0, errors.Errorf("unknown engine %q", c.compressionEngine)
	}
	var b bytes.Buffer
	w, err := newWriter(&b)
	if err != nil {
		return 0, errors.Wrapf(err, "%s: creating writer", c.compressionEngine)
	}
	if _, err := w.Write(content); err != nil {
		return 0, errors.Wrapf(err, "%s: compressing", c.compressionEngine)
	}
	if err := w.Close(); err != nil {
		return 0, errors.Wrapf(err, "%s: compressing", c.compressionEngine)
	}
	c.compressedContent = b.Bytes()
	return len(c.compressedContent), nil
}

func (c *compressor) read() ([]byte, error) {
	newReader, ok := readers[c.compressionEngine]
	if !ok {
		return nil, errors.Errorf("unknown engine %q", c.compressionEngine)
	}
	r, err := newReader(bytes.NewReader(c.compressedContent))
	if err != nil {
		return nil, errors.Wrapf(err, "%s: creating reader", c.compressionEngine)
	}
	defer r.Close()
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: decompressing", c.compressionEngine)
	}
	return content, nil
}

// CompressFiles compresses every file to <file>.<Extension>.
func CompressFiles(files []string, opts Options) error {
	opts = opts.withDefaults()
	for _, file := range files {
		if _, err := compressFile(file, file+"."+opts.Extension, opts); err != nil {
			return err
		}
	}
	if opts.Delete {
		return deleteFiles(files)
	}
	return nil
}

// DecompressFiles restores every file.  The output name is the input name
// without its Extension, or the input name plus ".out" when it does not carry
// the extension.
func DecompressFiles(files []string, opts Options) error {
	opts = opts.withDefaults()
	for _, file := range files {
		if _, err := decompressFile(file, decompressedName(file, opts.Extension), opts); err != nil {
			return err
		}
	}
	if opts.Delete {
		return deleteFiles(files)
	}
	return nil
}

func decompressedName(file, extension string) string {
	if trimmed := strings.TrimSuffix(file, "."+extension); trimmed != file && trimmed != "" {
		return trimmed
	}
	return file + ".out"
}

func compressFile(filePath string, outputFileName string, opts Options) ([]byte, error) {
	fileContent, err := readFile(filePath, opts)
	if err != nil {
		return nil, err
	}
	info.Fprintf(opts.Out, "Compressing %s...\n", filePath)
	file := compressor{
		compressionEngine: "huffman",
	}
	if _, err := file.write(fileContent); err != nil {
		return nil, errors.Wrap(err, filePath)
	}
	compressed := file.compressedContent
	if err = os.WriteFile(outputFileName, compressed, 0644); err != nil {
		return nil, errors.Wrap(err, "writing compressed file")
	}
	success.Fprintf(opts.Out, "Original size (in bytes): %v\n", len(fileContent))
	success.Fprintf(opts.Out, "Compressed size (in bytes): %v\n", len(compressed))
	if len(fileContent) > 0 {
		success.Fprintf(opts.Out, "Compression ratio: %.2f%%\n", float32(len(compressed))/float32(len(fileContent))*100)
	}
	if len(compressed) >= len(fileContent) {
		warning.Fprintf(opts.Out, "%s did not shrink\n", filePath)
	}
	return compressed, nil
}

func decompressFile(filePath string, outputFileName string, opts Options) ([]byte, error) {
	compressed, err := readFile(filePath, opts)
	if err != nil {
		return nil, err
	}
	info.Fprintf(opts.Out, "Decompressing %s...\n", filePath)
	file := compressor{
		compressionEngine: "huffman",
		compressedContent: compressed,
	}
	content, err := file.read()
	if err != nil {
		return nil, errors.Wrap(err, filePath)
	}
	if err = os.WriteFile(outputFileName, content, 0644); err != nil {
		return nil, errors.Wrap(err, "writing decompressed file")
	}
	success.Fprintf(opts.Out, "Restored %s (%v bytes)\n", outputFileName, len(content))
	return content, nil
}

// readFile reads a whole file, showing a byte progress bar unless quiet.
func readFile(path string, opts Options) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening input")
	}
	defer f.Close()

	var r io.Reader = f
	if !opts.Quiet {
		stat, err := f.Stat()
		if err != nil {
			return nil, errors.Wrap(err, "opening input")
		}
		bar := pb.New64(stat.Size()).Set(pb.Bytes, true).SetWriter(opts.Out)
		bar.Start()
		defer bar.Finish()
		r = bar.NewProxyReader(f)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return content, nil
}

func deleteFiles(files []string) error {
	for _, file := range files {
		if err := os.Remove(file); err != nil {
			return errors.Wrap(err, "deleting input")
		}
	}
	return nil
}
