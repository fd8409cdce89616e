package scribe

import "github.com/tsawler/scribe/htmldoc"

// PublishOptions holds configuration for the output backends.
type PublishOptions struct {
	// HTML
	stylesheet string

	// PDF
	pageNumbers bool
}

// defaultOptions returns the default publishing options.
func defaultOptions() PublishOptions {
	return PublishOptions{
		stylesheet:  htmldoc.DefaultStylesheet,
		pageNumbers: false,
	}
}

// clone creates a copy of PublishOptions.
func (o PublishOptions) clone() PublishOptions {
	return PublishOptions{
		stylesheet:  o.stylesheet,
		pageNumbers: o.pageNumbers,
	}
}
