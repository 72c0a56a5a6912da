// Package main provides the bed12 command-line tool.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/bed12/internal/convert"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// usageError marks errors caused by bad command-line usage.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func run(args []string, stdout, stderr io.Writer) int {
	v := viper.New()
	root := newRootCmd(v, afero.NewOsFs(), stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		var ue *usageError
		if errors.As(err, &ue) {
			fmt.Fprintf(stderr, "Error: %v\n\n", ue.err)
			fmt.Fprint(stderr, root.UsageString())
			return ExitUsage
		}
		reportError(stderr, err)
		return ExitError
	}
	return ExitSuccess
}

func newRootCmd(v *viper.Viper, fs afero.Fs, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bed12 --input <file>",
		Short: "Convert a GTF file or a custom file to BED12 format",
		Long: `Convert a GTF file or a custom file to BED12 format.

GTF input (.gtf) is clustered by one attribute (--name_col). Custom input
(.csv or .xlsx) needs either a "locus" column (chrom:start-end) or "chrom",
"exon_starts" and "exon_ends" columns; "name" and "strand" are optional.
Inputs and outputs ending in .gz are (de)compressed transparently.`,
		Example: `  bed12 -i gencode.gtf -n transcript_id -o gencode.bed
  bed12 -i loci.csv --plus-minus --sort
  bed12 -i loci.xlsx -o loci.bed.gz --db conversions.duckdb`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(v, fs, stderr)
		},
	}

	flags := cmd.Flags()
	flags.StringP("input", "i", "", "Name of the input file (.gtf, .csv or .xlsx, optionally .gz)")
	flags.StringP("output", "o", convert.DefaultOutput, "Name of the output file")
	flags.StringP("name_col", "n", convert.DefaultNameCol, "Column containing the gene names/ids to be clustered")
	flags.StringP("delim", "d", convert.DefaultDelim, `Delimiter for CSV files ("\t" or "tab" for tabs)`)
	flags.BoolP("plus-minus", "m", false, "Emit both a + and a - strand entry for transcripts lacking strand information")
	flags.BoolP("sort", "s", false, "Sort the output by name")
	flags.String("feature", "", "Only use GTF rows with this feature type (e.g. exon)")
	flags.String("db", "", "Also store the transcripts in this DuckDB database")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().String("config", "", "Config file (default ~/.bed12.yaml)")

	for key, flag := range map[string]string{
		"input":      "input",
		"output":     "output",
		"name_col":   "name_col",
		"delim":      "delim",
		"plus_minus": "plus-minus",
		"sort":       "sort",
		"feature":    "feature",
		"db":         "db",
	} {
		// Lookup never fails for flags defined above.
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}
	_ = v.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))
	_ = v.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	cmd.AddCommand(newConfigCmd(v))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// initConfig layers ~/.bed12.yaml and BED12_* environment variables under
// the command-line flags.
func initConfig(v *viper.Viper) error {
	v.SetEnvPrefix("BED12")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	path := v.GetString("config")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil // No home directory: flags and env only
		}
		path = filepath.Join(home, ".bed12.yaml")
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func runConvert(v *viper.Viper, fs afero.Fs, stderr io.Writer) error {
	opts := convert.DefaultOptions()
	if err := v.Unmarshal(&opts); err != nil {
		return fmt.Errorf("decode options: %w", err)
	}
	if opts.Input == "" {
		return &usageError{err: errors.New("--input is required")}
	}

	logger := newLogger(stderr, v.GetBool("verbose"))
	defer logger.Sync()

	c := convert.New(fs)
	c.SetLogger(logger)

	_, err := c.Run(opts)
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bed12 version %s (%s) built %s\n", version, commit, date)
		},
	}
}
