package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/FitrahHaque/huffman-engine/engine"
)

var Commands = [...]string{"compress", "decompress", "benchmark", "help"}

func main() {
	if err := run(os.Args[0], os.Args[1:], os.Stdout, os.Stderr); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(application string, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errors.New("please provide commands, see --help")
	}
	command, rest, err := selectCommand(args)
	if err != nil {
		return err
	}
	if command == "help" {
		usage(application, stderr)
		return nil
	}

	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage of %s --%s [OPTIONS] <file(s)>\n", application, command)
		fmt.Fprintf(stderr, "Flag:\n")
		fs.PrintDefaults()
	}
	outputFileExtension := fs.String("outfileext", engine.DefaultExtension, "File extension used for the result")
	deleteAfter := fs.Bool("delete", false, "Delete file(s) after processing")
	quiet := fs.Bool("quiet", false, "Hide progress bars")
	if err := fs.Parse(rest); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	files, err := inputFiles(fs.Args())
	if err != nil {
		return err
	}
	opts := engine.Options{
		Extension: *outputFileExtension,
		Delete:    *deleteAfter,
		Quiet:     *quiet,
		Out:       stdout,
	}

	switch command {
	case "compress":
		return engine.CompressFiles(files, opts)
	case "decompress":
		return engine.DecompressFiles(files, opts)
	case "benchmark":
		opts.Delete = false
		_, err := engine.Benchmark(files, opts)
		return err
	}
	return errors.Errorf("unknown command %q", command)
}

// selectCommand finds the single command flag among args and returns it with
// the remaining arguments.  Compression is the default.
func selectCommand(args []string) (string, []string, error) {
	commandFlags := make([]string, 0, len(Commands))
	for _, c := range Commands {
		commandFlags = append(commandFlags, "--"+c, "-"+c)
	}
	selected := findIntersection(commandFlags, args)
	seen := make([]bool, len(Commands))
	for _, s := range selected {
		for i, c := range Commands {
			if strings.TrimLeft(s, "-") == c {
				seen[i] = true
			}
		}
	}
	if countTrue(seen) > 1 {
		return "", nil, errors.New("specify a single command")
	}

	command := "compress"
	for i, c := range Commands {
		if seen[i] {
			command = c
		}
	}
	var rest []string
	for _, arg := range args {
		if !slices.Contains(selected, arg) {
			rest = append(rest, arg)
		}
	}
	return command, rest, nil
}

func inputFiles(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, errors.New("no file provided")
	}
	var files []string
	for _, arg := range args {
		names := strings.Split(arg, ",")
		trimSpace(names)
		for _, f := range names {
			if f == "" {
				continue
			}
			if _, err := os.Stat(f); os.IsNotExist(err) {
				return nil, errors.Errorf("could not open the provided file %s", f)
			}
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return nil, errors.New("no file provided")
	}
	return files, nil
}

func usage(application string, w io.Writer) {
	fmt.Fprintf(w, "Usage of %s:\n", application)
	fmt.Fprintf(w, "\t%s [--compress|--decompress|--benchmark] [OPTIONS] <file[,file...]>\n", application)
	fmt.Fprintf(w, "Valid commands include:\n\t%s\n", strings.Join(Commands[:], ", "))
	fmt.Fprintf(w, "Options:\n\t--outfileext, --delete, --quiet\n")
}

func countTrue(commands []bool) int {
	count := 0
	for _, c := range commands {
		if c {
			count++
		}
	}
	return count
}

func findIntersection(commandList, argList []string) []string {
	set := make(map[string]struct{}, len(commandList))
	for _, c := range commandList {
		set[c] = struct{}{}
	}
	var out []string
	for _, arg := range argList {
		if _, ok := set[arg]; ok {
			out = append(out, arg)
		}
	}
	return out
}

func trimSpace(s []string) {
	for i := range s {
		s[i] = strings.TrimSpace(s[i])
	}
}
