package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	ts "github.com/reoring/tableschema"
	"github.com/reoring/tableschema/descriptor"
	"github.com/reoring/tableschema/i18n"
	"github.com/reoring/tableschema/provider"
)

const logLevelEnv = "TABLESCHEMA_LOG_LEVEL"

// app holds the global flags and the logger shared by every sub-command.
type app struct {
	schemaPath string
	logLevel   string
	lang       string

	// data source flags
	delimiter string
	noHeader  bool

	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}
	root := &cobra.Command{
		Use:   "tableschema",
		Short: "Cast and validate tabular data with a Table Schema",
		Long: `tableschema reads CSV or JSON row files and casts every cell to its
logical value using a Table Schema descriptor (JSON or YAML).

Examples:
  tableschema cast --schema schema.json data.csv
  tableschema validate --schema schema.yaml data.json
  tableschema describe --schema schema.json --format yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&a.schemaPath, "schema", "s", "", "schema descriptor path (.json, .yaml, .yml)")
	pf.StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error); "+logLevelEnv+" applies when unset")
	pf.StringVar(&a.lang, "lang", "en", "issue message language (en, ja)")

	root.AddCommand(newCastCmd(a), newValidateCmd(a), newDescribeCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	level := a.logLevel
	if env := os.Getenv(logLevelEnv); env != "" && !cmd.Flags().Changed("log-level") {
		level = env
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q", level)
	}
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		Level(lvl).With().Timestamp().Logger()
	i18n.SetLanguage(a.lang)
	return nil
}

// dataFlags registers the flags of commands that read a data file.
func (a *app) dataFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&a.delimiter, "delimiter", ",", "CSV field delimiter")
	cmd.Flags().BoolVar(&a.noHeader, "no-header", false, "the CSV file has no header row")
}

func (a *app) loadSchema() (*ts.Schema, error) {
	if a.schemaPath == "" {
		return nil, fmt.Errorf("--schema is required")
	}
	s, err := descriptor.Load(a.schemaPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.schemaPath, err)
	}
	a.log.Debug().Str("path", a.schemaPath).Int("fields", len(s.Fields)).Msg("descriptor loaded")
	return s, nil
}

// errProvider is implemented by providers that report read errors after
// iteration.
type errProvider interface {
	ts.Provider
	Err() error
}

// openData picks the provider from the file extension: .json files hold rows
// as JSON, anything else is CSV.
func (a *app) openData(path string) (errProvider, error) {
	var (
		p   errProvider
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		p, err = provider.JSONFile(path)
	} else {
		var opts []provider.CSVOption
		if r := []rune(a.delimiter); len(r) == 1 {
			opts = append(opts, provider.WithDelimiter(r[0]))
		} else {
			return nil, fmt.Errorf("delimiter must be a single character, got %q", a.delimiter)
		}
		if a.noHeader {
			opts = append(opts, provider.WithoutHeader())
		}
		p, err = provider.CSVFile(path, opts...)
	}
	if err != nil {
		return nil, err
	}
	a.log.Debug().Str("path", path).Int("columns", len(p.Header())).Msg("provider opened")
	return p, nil
}

func writeIssues(w io.Writer, iss ts.Issues) {
	for _, it := range iss {
		fmt.Fprintf(w, "%s\t%s\t%s\n", it.Path, it.Code, it.Message)
	}
}
