// Package config holds the settings of the memfill-check driver. Values are
// taken from the defaults, then an optional YAML file, then command line
// flags.
package config

import (
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/c2h5oh/datasize"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/gopheros/memfill/mem"
	"github.com/gopheros/memfill/mem/verify"
)

// Config configures a verification run.
type Config struct {
	// BufferSize is the size of the buffer each filler is checked on.
	BufferSize datasize.ByteSize `yaml:"buffer_size"`

	// WordWidth is the store width in bytes used by the generic word
	// fillers. It defaults to the native word width.
	WordWidth int `yaml:"word_width"`

	// All also runs combinations a filler is not designed to handle.
	All bool `yaml:"all"`

	// Sweep additionally checks the unaligned fillers at every offset
	// within a word and for every small size.
	Sweep bool `yaml:"sweep"`

	// Strict makes the driver exit non-zero when an expected check fails.
	Strict bool `yaml:"strict"`

	LogLevel string `yaml:"log_level"`

	// MetricsFile, if set, receives the verifier metrics in the Prometheus
	// text format.
	MetricsFile string `yaml:"metrics_file"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		BufferSize: datasize.ByteSize(verify.DefaultBufferSize),
		WordWidth:  int(mem.NativeWordWidth),
		LogLevel:   "info",
	}
}

// Width returns the configured word width.
func (c Config) Width() mem.WordWidth {
	return mem.WordWidth(c.WordWidth)
}

// Validate checks the configuration for values the verifier cannot use.
func (c Config) Validate() error {
	if c.WordWidth <= 0 || c.WordWidth > 0xff || !c.Width().Valid() {
		return errors.Wrapf(mem.ErrUnsupportedWordWidth, "word width %d", c.WordWidth)
	}
	if mem.Size(c.BufferSize.Bytes()) < verify.MinBufferSize {
		return errors.Errorf("buffer size %s is smaller than %d bytes", c.BufferSize.String(), verify.MinBufferSize)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("unknown log level %q", c.LogLevel)
	}

	return nil
}

// LoadFile overlays the YAML file at path onto c.
func LoadFile(path string, c *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening config file")
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return errors.Wrapf(err, "parsing config file %s", path)
	}

	return nil
}

// byteSizeValue adapts a datasize.ByteSize to a kingpin flag.
type byteSizeValue struct {
	size *datasize.ByteSize
}

func (v byteSizeValue) Set(s string) error {
	return v.size.UnmarshalText([]byte(s))
}

func (v byteSizeValue) String() string {
	return v.size.String()
}

// registerFlags binds c to app. No flag has a kingpin default so values
// that are not given on the command line keep what c already holds.
func (c *Config) registerFlags(app *kingpin.Application) {
	app.Flag("buffer.size", "Size of the buffer each filler is checked on, e.g. 4KB.").SetValue(byteSizeValue{&c.BufferSize})
	app.Flag("word.width", "Store width in bytes used by the generic word fillers (1, 2, 4 or 8).").IntVar(&c.WordWidth)
	app.Flag("all", "Also run combinations a filler is not designed to handle.").BoolVar(&c.All)
	app.Flag("sweep", "Check unaligned fillers at every offset within a word and for every small size.").BoolVar(&c.Sweep)
	app.Flag("strict", "Exit with a non-zero status when an expected check fails.").BoolVar(&c.Strict)
	app.Flag("log.level", "Only log messages with the given severity or above. One of: [debug, info, warn, error]").StringVar(&c.LogLevel)
	app.Flag("metrics.file", "Write verifier metrics to this file in the Prometheus text format.").StringVar(&c.MetricsFile)
}

func newApp(name string, c *Config, configFile *string) *kingpin.Application {
	app := kingpin.New(name, "Checks every fill implementation against a reference memset.")
	app.Flag("config.file", "YAML file to load settings from. Command line flags take precedence.").StringVar(configFile)
	c.registerFlags(app)
	return app
}

// Parse builds a Config from args. When --config.file is given the file is
// loaded on top of the defaults and the flags are applied again so that they
// take precedence.
func Parse(name string, args []string) (Config, error) {
	var (
		cfg  = Default()
		path string
	)
	if _, err := newApp(name, &cfg, &path).Parse(args); err != nil {
		return cfg, errors.Wrap(err, "parsing flags")
	}

	if path != "" {
		cfg = Default()
		if err := LoadFile(path, &cfg); err != nil {
			return cfg, err
		}
		if _, err := newApp(name, &cfg, &path).Parse(args); err != nil {
			return cfg, errors.Wrap(err, "parsing flags")
		}
	}

	return cfg, cfg.Validate()
}
