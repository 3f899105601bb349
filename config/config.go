// Package config holds tokenvision configuration. Every flag can also be set
// through a TOKENVISION_* environment variable, and a .env file in the
// working directory is loaded into the environment first.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/neurlang/tokenvision/raster"
	"github.com/neurlang/tokenvision/sink"
)

const (
	// ClassifyCommand is the image classification subcommand.
	ClassifyCommand = "classify"

	// VisualizeCommand is the source visualization subcommand.
	VisualizeCommand = "visualize"

	envPrefix = "TOKENVISION_"
)

// Classify configures the classify subcommand.
type Classify struct {
	Model     string
	Labels    string
	Path      string
	Top       int
	InputSize int
	Workers   int
}

// Visualize configures the visualize subcommand.
type Visualize struct {
	Dir     string
	Out     string
	Size    int
	Layout  string
	Range   string
	Ext     string
	Workers int
	Cache   int
	S3      sink.ObjectConfig
}

// Config is the parsed command line.
type Config struct {
	LogLevel  string
	Classify  Classify
	Visualize Visualize

	app *kingpin.Application
}

// LoadEnv loads the given dotenv files, or .env, into the environment.
// Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "loading %s", f)
		}
	}
	return nil
}

func env(name string) string {
	return envPrefix + name
}

// New builds the command line model.
func New() *Config {
	c := &Config{
		app: kingpin.New("tokenvision", "Classify images and visualize source files as token images."),
	}
	app := c.app
	app.Flag("log", "Log level: debug, info, warn, error, fatal, panic").
		Default("info").Envar(env("LOG")).StringVar(&c.LogLevel)

	cl := app.Command(ClassifyCommand, "Classify an image or every image of a directory.")
	cl.Flag("model", "Model file (lzw compressed json).").
		Required().Envar(env("MODEL")).StringVar(&c.Classify.Model)
	cl.Flag("labels", "Label file, one class name per line.").
		Required().Envar(env("LABELS")).StringVar(&c.Classify.Labels)
	cl.Flag("top", "Number of predictions to print.").
		Default("5").Envar(env("TOP")).IntVar(&c.Classify.Top)
	cl.Flag("input-size", "Input side the model must declare.").
		Default("224").Envar(env("INPUT_SIZE")).IntVar(&c.Classify.InputSize)
	cl.Flag("workers", "Evaluation goroutines, 0 for one per logical core.").
		Default("0").Envar(env("CLASSIFY_WORKERS")).IntVar(&c.Classify.Workers)
	cl.Arg("path", "Image file or directory of images.").Required().StringVar(&c.Classify.Path)

	vis := app.Command(VisualizeCommand, "Render every source file of a directory as an image.")
	vis.Flag("out", "Output directory.").
		Default("images").Envar(env("OUT")).StringVar(&c.Visualize.Out)
	vis.Flag("size", "Side of the persisted images.").
		Default("224").Envar(env("SIZE")).IntVar(&c.Visualize.Size)
	vis.Flag("layout", "Cell to token mapping: legacy (y*x+x) or rowmajor.").
		Default("legacy").Envar(env("LAYOUT")).EnumVar(&c.Visualize.Layout, "legacy", "rowmajor")
	vis.Flag("range", "Normalization range: derived from each file or fixed to the grammar.").
		Default("derived").Envar(env("RANGE")).EnumVar(&c.Visualize.Range, "derived", "fixed")
	vis.Flag("ext", "Only visualize files with this extension, e.g. .go").
		Envar(env("EXT")).StringVar(&c.Visualize.Ext)
	vis.Flag("workers", "Files processed at once, 1 is sequential.").
		Default("1").Envar(env("WORKERS")).IntVar(&c.Visualize.Workers)
	vis.Flag("cache", "Rendered images kept for identical sources, 0 disables.").
		Default("128").Envar(env("CACHE")).IntVar(&c.Visualize.Cache)
	vis.Flag("s3-endpoint", "Upload to this S3 compatible endpoint instead of --out.").
		Envar(env("S3_ENDPOINT")).StringVar(&c.Visualize.S3.Endpoint)
	vis.Flag("s3-region", "S3 region.").
		Envar(env("S3_REGION")).StringVar(&c.Visualize.S3.Region)
	vis.Flag("s3-access-key", "S3 access key.").
		Envar(env("S3_ACCESS_KEY")).StringVar(&c.Visualize.S3.AccessKey)
	vis.Flag("s3-secret-key", "S3 secret key.").
		Envar(env("S3_SECRET_KEY")).StringVar(&c.Visualize.S3.SecretKey)
	vis.Flag("s3-bucket", "S3 bucket.").
		Default("tokenvision").Envar(env("S3_BUCKET")).StringVar(&c.Visualize.S3.Bucket)
	vis.Flag("s3-prefix", "Key prefix inside the bucket.").
		Envar(env("S3_PREFIX")).StringVar(&c.Visualize.S3.Prefix)
	vis.Flag("s3-ssl", "Use TLS for S3.").
		Envar(env("S3_SSL")).BoolVar(&c.Visualize.S3.UseSSL)
	vis.Arg("dir", "Directory of source files.").Required().StringVar(&c.Visualize.Dir)

	return c
}

// App is the underlying kingpin application, used for usage output.
func (c *Config) App() *kingpin.Application {
	return c.app
}

// Parse parses args and returns the selected subcommand.
func (c *Config) Parse(args []string) (string, error) {
	cmd, err := c.app.Parse(args)
	if err != nil {
		return "", errors.Wrap(err, "could not parse command line flags")
	}
	return cmd, nil
}

// Level returns the configured log level.
func (c *Config) Level() (logrus.Level, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel, errors.Wrapf(err, "parsing log level %q", c.LogLevel)
	}
	return level, nil
}

// EncodeOptions turns the layout and range settings into encoder options.
func (v Visualize) EncodeOptions() (raster.Options, error) {
	layout, err := raster.ParseLayout(v.Layout)
	if err != nil {
		return raster.Options{}, err
	}
	opts := raster.Options{Layout: layout}
	switch v.Range {
	case "", "derived":
	case "fixed":
		r := raster.FixedRange()
		opts.Range = &r
	default:
		return raster.Options{}, errors.Errorf("unknown range mode %q", v.Range)
	}
	return opts, nil
}

// UseObjectStore reports whether images go to S3 instead of a directory.
func (v Visualize) UseObjectStore() bool {
	return v.S3.Endpoint != ""
}
