// Command xml2ndjson streams an XML document to newline-delimited JSON,
// extracting every occurrence of a named target element.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/arturoeanton/xml2ndjson/ndjson"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(0)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "convert":
		cliConvert(args)
	default:
		fmt.Printf("unknown command %q\n", command)
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("xml2ndjson - stream XML records to newline-delimited JSON")
	fmt.Println("\nUsage:")
	fmt.Println("  xml2ndjson convert --target=<element> [--in=<file>] [--out=<file>] [--batch-size=N] [--progress] [--verbose]")
	fmt.Println("\nWhen --in is omitted, the document is read from stdin.")
	fmt.Println("When --out is omitted, NDJSON is written to stdout.")
}

func cliConvert(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	target := fs.String("target", "", "qualified name of the element to extract (required)")
	inPath := fs.String("in", "", "input XML file (defaults to stdin)")
	outPath := fs.String("out", "", "output NDJSON file (defaults to stdout)")
	batchSize := fs.Int("batch-size", ndjson.DefaultBatchSize, "records buffered per sink flush")
	progress := fs.Bool("progress", false, "render a progress bar while converting")
	verbose := fs.Bool("verbose", false, "emit structured diagnostics to stderr")
	fs.Parse(args)

	if *target == "" {
		die(fmt.Errorf("--target is required"))
	}

	logger := zerolog.Nop()
	if *verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	}

	opts := []ndjson.Option{
		ndjson.WithBatchSize(*batchSize),
		ndjson.WithLogger(logger),
	}

	var bar *progressbar.ProgressBar
	if *progress {
		bar = progressbar.Default(-1, "records")
		opts = append(opts, ndjson.WithFlushCallback(func(flushed, total int) {
			bar.Add(flushed)
		}))
	}

	inputPath := *inPath
	if inputPath == "" {
		tmp, err := spoolStdin()
		if err != nil {
			die(err)
		}
		defer os.Remove(tmp)
		inputPath = tmp
	}

	started := time.Now()
	var count int
	var err error
	if *outPath == "" {
		var out string
		out, err = ndjson.ParseFileToString(inputPath, *target, opts...)
		if err == nil {
			fmt.Print(out)
			count = countLines(out)
		}
	} else {
		count, err = ndjson.ParseFileToFile(inputPath, *target, *outPath, opts...)
	}
	if err != nil {
		die(err)
	}
	if bar != nil {
		bar.Finish()
	}

	elapsed := time.Since(started)
	fmt.Fprintf(os.Stderr, "wrote %s records in %s\n", humanize.Comma(int64(count)), elapsed.Round(time.Millisecond))
}

func spoolStdin() (string, error) {
	f, err := os.CreateTemp("", "xml2ndjson-stdin-*.xml")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := f.ReadFrom(os.Stdin); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func countLines(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}

func die(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
