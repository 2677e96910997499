package cli

import (
	"github.com/viant/frames"
)

// Options defines command line options.
type Options struct {
	frames.EngineOptions
	Config  string `short:"c" long:"config" description:"engine config url (yaml or json)"`
	Verbose bool   `short:"v" long:"verbose" description:"enable debug logging"`
	NoColor bool   `long:"no-color" description:"disable colored log output"`
}
