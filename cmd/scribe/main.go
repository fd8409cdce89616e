// Command scribe renders YAML document descriptions to HTML, DOCX, and
// PDF files.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/tsawler/scribe"
	"github.com/tsawler/scribe/yamldoc"
)

const version = "0.1.0"

// CLI defines the command-line interface for scribe.
var CLI struct {
	Render  RenderCmd  `cmd:"" help:"Render a YAML document description"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// RenderCmd renders one document to the requested output files.
type RenderCmd struct {
	Input string `arg:"" help:"Path to the YAML document description" type:"existingfile"`

	HTML string `help:"Write HTML output to this file" type:"path"`
	DOCX string `help:"Write DOCX output to this file" type:"path"`
	PDF  string `help:"Write PDF output to this file" type:"path"`

	Stylesheet  string `help:"Stylesheet URL for HTML output"`
	PageNumbers bool   `help:"Add page numbers to PDF output"`
}

func (c *RenderCmd) Run() error {
	if c.HTML == "" && c.DOCX == "" && c.PDF == "" {
		return fmt.Errorf("nothing to do: pass at least one of --html, --docx, --pdf")
	}

	doc, err := yamldoc.LoadFile(c.Input)
	if err != nil {
		return err
	}

	publisher := scribe.New(*doc)
	if c.Stylesheet != "" {
		publisher = publisher.Stylesheet(c.Stylesheet)
	}
	if c.PageNumbers {
		publisher = publisher.PageNumbers()
	}

	outputs := []struct {
		path   string
		render func(*os.File) ([]scribe.Warning, error)
	}{
		{c.HTML, func(f *os.File) ([]scribe.Warning, error) { return publisher.HTML(f) }},
		{c.DOCX, func(f *os.File) ([]scribe.Warning, error) { return publisher.DOCX(f) }},
		{c.PDF, func(f *os.File) ([]scribe.Warning, error) { return publisher.PDF(f) }},
	}
	var warned bool
	for _, out := range outputs {
		if out.path == "" {
			continue
		}
		f, err := os.Create(out.path)
		if err != nil {
			return err
		}
		warnings, err := out.render(f)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return fmt.Errorf("rendering %s: %w", out.path, err)
		}
		if len(warnings) > 0 && !warned {
			warned = true
			fmt.Fprintln(os.Stderr, "warning:", scribe.FormatWarnings(warnings))
		}
	}
	return nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println("scribe", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("scribe"),
		kong.Description("Render structured documents to HTML, DOCX, and PDF"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
