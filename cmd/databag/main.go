// Command databag reads YAML or JSON files into a databag.Store and queries
// them from the shell.
//
//	databag get [flags] <file> <key>...
//	databag has [flags] <file> <key>
//	databag normalize [flags] <file>
//	databag flatten [flags] <file>
//	databag merge [flags] <file> <file>...
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/shcv/databag"
)

// errNoMatch makes the process exit with status 2 without printing.
var errNoMatch = errors.New("no match")

func main() {
	err := mainImpl(os.Args[1:], os.Stdout)
	if errors.Is(err, errNoMatch) {
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "databag: %v\n", err)
		os.Exit(1)
	}
}

func mainImpl(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		return errors.New("usage: databag <get|has|normalize|flatten|merge> [args...]")
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "get":
		return cmdGet(rest, stdout)
	case "has":
		return cmdHas(rest, stdout)
	case "normalize":
		return cmdNormalize(rest, stdout)
	case "flatten":
		return cmdFlatten(rest, stdout)
	case "merge":
		return cmdMerge(rest, stdout)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// commonFlags are accepted by every subcommand.
type commonFlags struct {
	format   string
	logLevel string
	defaults string
}

func newFlagSet(name string) (*flag.FlagSet, *commonFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	c := &commonFlags{}
	fs.StringVar(&c.format, "format", "json", "Output format (json, yaml, dump)")
	fs.StringVar(&c.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	fs.StringVar(&c.defaults, "defaults", "", "YAML or JSON file with default values")
	return fs, c
}

// newStore builds a store wired to the logger and, when given, the defaults
// file.
func (c *commonFlags) newStore() (*databag.Store, error) {
	logger, err := newLogger(c.logLevel)
	if err != nil {
		return nil, err
	}
	opts := []databag.Option{databag.WithLogger(logger)}
	if c.defaults != "" {
		defaults, err := loadTree(c.defaults)
		if err != nil {
			return nil, err
		}
		logger.Debug("defaults loaded", "path", c.defaults, "keys", len(defaults))
		opts = append(opts, databag.WithDefaults(func() map[string]any { return defaults }))
	}
	return databag.New(opts...), nil
}

func newLogger(level string) (*slog.Logger, error) {
	var ll slog.Level
	if err := ll.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid -log-level %q: %w", level, err)
	}
	return slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      ll,
		TimeFormat: time.TimeOnly,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})), nil
}

type optionalValue struct {
	value string
	set   bool
}

func (o *optionalValue) String() string { return o.value }

func (o *optionalValue) Set(s string) error {
	o.value, o.set = s, true
	return nil
}

func cmdGet(args []string, stdout io.Writer) error {
	fs, c := newFlagSet("get")
	raw := fs.Bool("raw", false, "Read from the raw data instead of the normalized data")
	var def optionalValue
	fs.Var(&def, "default", "Value printed for keys that cannot be found")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return errors.New("usage: databag get [flags] <file> <key>...")
	}

	s, err := c.newStore()
	if err != nil {
		return err
	}
	input, err := loadTree(fs.Arg(0))
	if err != nil {
		return err
	}
	s.SetData(input)

	keys := fs.Args()[1:]
	if def.set {
		var key databag.Key = databag.Path(keys[0])
		if len(keys) > 1 {
			paths := make(databag.Paths, len(keys))
			for _, k := range keys {
				paths[k] = k
			}
			key = paths
		}
		if *raw {
			return writeOutput(stdout, c.format, s.GetRawDataOr(key, def.value))
		}
		return writeOutput(stdout, c.format, s.GetDataOr(key, def.value))
	}

	// Without a default every key must resolve.
	get := s.GetData
	if *raw {
		get = s.GetRawData
	}
	values := make(map[string]any, len(keys))
	for _, k := range keys {
		v, err := get(databag.Path(k))
		if err != nil {
			return err
		}
		values[k] = v
	}
	if len(keys) == 1 {
		return writeOutput(stdout, c.format, values[keys[0]])
	}
	return writeOutput(stdout, c.format, values)
}

func cmdHas(args []string, stdout io.Writer) error {
	fs, c := newFlagSet("has")
	raw := fs.Bool("raw", false, "Look in the raw data instead of the normalized data")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errors.New("usage: databag has [flags] <file> <key>")
	}

	s, err := c.newStore()
	if err != nil {
		return err
	}
	input, err := loadTree(fs.Arg(0))
	if err != nil {
		return err
	}
	s.SetData(input)

	found := s.HasData(fs.Arg(1))
	if *raw {
		found = s.HasRawData(fs.Arg(1))
	}
	fmt.Fprintln(stdout, found)
	if !found {
		return errNoMatch
	}
	return nil
}

func cmdNormalize(args []string, stdout io.Writer) error {
	fs, c := newFlagSet("normalize")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: databag normalize [flags] <file>")
	}

	s, err := c.newStore()
	if err != nil {
		return err
	}
	input, err := loadTree(fs.Arg(0))
	if err != nil {
		return err
	}
	return writeOutput(stdout, c.format, s.SetData(input).Data())
}

func cmdFlatten(args []string, stdout io.Writer) error {
	fs, c := newFlagSet("flatten")
	normalize := fs.Bool("normalize", false, "Normalize keys and apply defaults before flattening")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: databag flatten [flags] <file>")
	}

	s, err := c.newStore()
	if err != nil {
		return err
	}
	input, err := loadTree(fs.Arg(0))
	if err != nil {
		return err
	}
	var opts []databag.ProcessOption
	if !*normalize {
		opts = append(opts, databag.SkipKeyNormalization(), databag.SkipDefaults())
	}
	return writeFlat(stdout, c.format, databag.Flatten(s.SetData(input, opts...).Data()))
}

func cmdMerge(args []string, stdout io.Writer) error {
	fs, c := newFlagSet("merge")
	deep := fs.Bool("deep", false, "Merge nested mappings recursively")
	raw := fs.Bool("raw", false, "Print the merged raw data instead of the normalized data")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return errors.New("usage: databag merge [flags] <file> <file>...")
	}

	s, err := c.newStore()
	if err != nil {
		return err
	}
	var opts []databag.ProcessOption
	if *deep {
		opts = append(opts, databag.DeepMerge())
	}
	for i, path := range fs.Args() {
		input, err := loadTree(path)
		if err != nil {
			return err
		}
		if i == 0 {
			s.SetData(input)
		} else {
			s.MergeData(input, opts...)
		}
	}

	if *raw {
		return writeOutput(stdout, c.format, s.RawData())
	}
	return writeOutput(stdout, c.format, s.Data())
}
