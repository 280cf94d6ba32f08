// lambda-parse reads a lambda term from a file (or stdin) and prints it back
// in canonical form, followed by its full structure.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ohait/forego/ctx/log"
	"github.com/ohait/parse-lambda-go/lambda"
	"github.com/urfave/cli/v2"
)

const divider = "--------------------------------"

type parseFlags struct {
	StripWhitespace bool
	MaxDepth        int
	Trace           bool
}

func (flags *parseFlags) AsCliFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "strip-whitespace",
			Usage:       "Remove all whitespace before parsing, instead of skipping it between tokens.",
			Destination: &flags.StripWhitespace,
		},
		&cli.IntFlag{
			Name:        "max-depth",
			Value:       lambda.DefaultMaxDepth,
			Usage:       "Maximum nesting of terms.",
			Destination: &flags.MaxDepth,
		},
		&cli.BoolFlag{
			Name:        "trace",
			Usage:       "Log every step of the parser.",
			Destination: &flags.Trace,
		},
	}
}

func newApp(stdin io.Reader, stdout io.Writer) *cli.App {
	var flags parseFlags
	return &cli.App{
		Name:      "lambda-parse",
		Usage:     "Parse a lambda term and print its canonical form and structure.",
		ArgsUsage: "[file]",
		Flags:     flags.AsCliFlags(),
		Reader:    stdin,
		Writer:    stdout,
		Action: func(c *cli.Context) error {
			if c.NArg() > 1 {
				return fmt.Errorf("expected at most one file, got %d arguments", c.NArg())
			}
			var in []byte
			var err error
			if fname := c.Args().First(); fname != "" {
				in, err = os.ReadFile(fname)
				if err != nil {
					return fmt.Errorf("could not read the file %q: %w", fname, err)
				}
			} else {
				in, err = io.ReadAll(c.App.Reader)
				if err != nil {
					return fmt.Errorf("could not read stdin: %w", err)
				}
			}

			p := &lambda.Parser{
				MaxDepth: flags.MaxDepth,
			}
			if flags.StripWhitespace {
				p.Whitespace = lambda.StripWhitespace
			}
			if flags.Trace {
				p.Log = func(f string, args ...any) {
					log.Debugf(nil, f, args...)
				}
			}
			term, err := p.Parse(string(in))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.App.Writer, "%s\n%s\n%s", term, divider, lambda.Dump(term))
			return err
		},
	}
}

func main() {
	err := newApp(os.Stdin, os.Stdout).Run(os.Args)
	if err != nil {
		log.Errorf(nil, "%v", err)
		os.Exit(1)
	}
}
