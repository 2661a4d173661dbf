// Command goflate is a thin CLI front end over this module's deflate and
// gzip packages: it reads a file path and writes an output file, the way
// the original program's main() read a fixed string and wrote a .gz file,
// generalized to real file arguments.
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gocompress/deflate"
	"github.com/gocompress/deflate/gzip"
)

// VERSION gets set during build.
var VERSION = "0.0.0"

type CompressCmd struct {
	Input  string `arg:"" help:"File to compress." type:"existingfile"`
	Output string `short:"o" help:"Output file path." required:""`
}

func (c *CompressCmd) Run() error {
	return compressFile(c.Input, c.Output, func(w io.Writer) io.WriteCloser {
		return deflate.NewWriter(w)
	})
}

type DecompressCmd struct {
	Input  string `arg:"" help:"File to decompress." type:"existingfile"`
	Output string `short:"o" help:"Output file path." required:""`
}

func (c *DecompressCmd) Run() error {
	return decompressFile(c.Input, c.Output, func(r io.Reader) (io.Reader, error) {
		return deflate.NewReader(r), nil
	})
}

type GzipCmd struct {
	Input  string `arg:"" help:"File to compress." type:"existingfile"`
	Output string `short:"o" help:"Output file path." required:""`
}

func (c *GzipCmd) Run() error {
	return compressFile(c.Input, c.Output, func(w io.Writer) io.WriteCloser {
		return gzip.NewWriter(w)
	})
}

type GunzipCmd struct {
	Input  string `arg:"" help:"File to decompress." type:"existingfile"`
	Output string `short:"o" help:"Output file path." required:""`
}

func (c *GunzipCmd) Run() error {
	return decompressFile(c.Input, c.Output, func(r io.Reader) (io.Reader, error) {
		return gzip.NewReader(r)
	})
}

var cli struct {
	Debug      bool             `help:"Enable debug logging." short:"d"`
	Version    kong.VersionFlag `help:"Show version and exit." short:"v"`
	Compress   CompressCmd      `cmd:"" help:"Compress a file to raw DEFLATE."`
	Decompress DecompressCmd    `cmd:"" help:"Decompress a raw DEFLATE file."`
	Gzip       GzipCmd          `cmd:"" help:"Compress a file to a gzip member."`
	Gunzip     GunzipCmd        `cmd:"" help:"Decompress a gzip member."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("goflate"),
		kong.Description("A DEFLATE and gzip codec."),
		kong.UsageOnError(),
		kong.Vars{"version": VERSION},
	)

	if cli.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := ctx.Run(); err != nil {
		logrus.WithError(err).Error("goflate: operation failed")
		os.Exit(1)
	}
}

func compressFile(input, output string, newWriter func(io.Writer) io.WriteCloser) error {
	in, err := os.Open(input)
	if err != nil {
		return errors.Wrapf(err, "opening %s", input)
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		return errors.Wrapf(err, "creating %s", output)
	}
	defer out.Close()

	zw := newWriter(out)
	if _, err := io.Copy(zw, in); err != nil {
		return errors.Wrapf(err, "compressing %s", input)
	}
	if err := zw.Close(); err != nil {
		return errors.Wrapf(err, "finalizing %s", output)
	}

	logrus.WithFields(logrus.Fields{"input": input, "output": output}).Info("goflate: compressed")
	return nil
}

func decompressFile(input, output string, newReader func(io.Reader) (io.Reader, error)) error {
	in, err := os.Open(input)
	if err != nil {
		return errors.Wrapf(err, "opening %s", input)
	}
	defer in.Close()

	zr, err := newReader(in)
	if err != nil {
		return errors.Wrapf(err, "reading header of %s", input)
	}

	out, err := os.Create(output)
	if err != nil {
		return errors.Wrapf(err, "creating %s", output)
	}
	defer out.Close()

	if _, err := io.Copy(out, zr); err != nil {
		return errors.Wrapf(err, "decompressing %s", input)
	}

	logrus.WithFields(logrus.Fields{"input": input, "output": output}).Info("goflate: decompressed")
	return nil
}
