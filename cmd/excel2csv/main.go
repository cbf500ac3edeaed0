// Package main provides the CLI entry point for excel2csv.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ukaji3/excel2csv-go/internal/config"
	"github.com/ukaji3/excel2csv-go/pkg/excel2csv"
	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/models"
	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/output"
)

type cli struct {
	log *logrus.Logger

	outputPath     string
	sheetID        int
	sheetName      string
	listSheets     bool
	pretty         bool
	sheetsDir      string
	delimiter      string
	crlf           bool
	keepEmpty      bool
	dateFormat     string
	encoding       string
	charset        string
	sheetDelimiter string
	printArea      bool
	cellRange      string
	configPath     string
	logLevel       string
}

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if err := newRootCmd(log).Execute(); err != nil {
		log.WithError(err).Error("excel2csv failed")
		os.Exit(1)
	}
}

func newRootCmd(log *logrus.Logger) *cobra.Command {
	c := &cli{log: log}

	rootCmd := &cobra.Command{
		Use:   "excel2csv [input.xlsx|input.xls]",
		Short: "Convert Excel workbooks to CSV",
		Long: `excel2csv streams the sheets of an xlsx (or legacy xls) workbook
into CSV, rendering dates and times the way the cell formats describe them.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.run,
	}

	f := rootCmd.Flags()
	f.StringVarP(&c.outputPath, "output", "o", "", "Output file path (default: stdout)")
	f.IntVarP(&c.sheetID, "sheet", "n", 0, "Sheet id to convert, 0 for all sheets")
	f.StringVarP(&c.sheetName, "sheetname", "w", "", "Sheet name to convert")
	f.BoolVarP(&c.listSheets, "worksheets", "W", false, "List sheets as JSON and exit")
	f.BoolVar(&c.pretty, "pretty", false, "Pretty-print the sheet listing")
	f.StringVar(&c.sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	f.StringVarP(&c.delimiter, "delimiter", "d", ",", `Field delimiter: a character, "tab", or a hex byte such as "x09"`)
	f.BoolVar(&c.crlf, "crlf", true, "Terminate lines with CRLF")
	f.BoolVar(&c.keepEmpty, "keep-empty", false, "Keep rows whose cells are all empty")
	f.StringVarP(&c.dateFormat, "dateformat", "f", "", "Override date rendering with a strftime format (ex. %Y/%m/%d)")
	f.StringVar(&c.encoding, "encoding", "utf-8", "Output character encoding")
	f.StringVar(&c.charset, "charset", "utf-8", "Byte string charset of legacy xls files")
	f.StringVar(&c.sheetDelimiter, "sheet-delimiter", "", "Line written between sheets when converting all sheets")
	f.BoolVar(&c.printArea, "print-area", false, "Limit each sheet to its print area")
	f.StringVar(&c.cellRange, "range", "", "Limit each sheet to a fixed range such as A1:D20")
	f.StringVar(&c.configPath, "config", "", "TOML configuration file")
	f.StringVar(&c.logLevel, "log-level", "warning", "Log level: debug, info, warning, error")

	rootCmd.MarkFlagsMutuallyExclusive("sheet", "sheetname")
	rootCmd.MarkFlagsMutuallyExclusive("output", "sheets-dir")

	return rootCmd
}

func (c *cli) run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	level, err := logrus.ParseLevel(c.logLevel)
	if err != nil {
		return err
	}
	c.log.SetLevel(level)

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.applyFlags(cmd, cfg)

	opts := cfg.Options()
	opts.Selection = excel2csv.Selection{ID: c.sheetID, Name: c.sheetName}
	opts.Range = c.cellRange
	opts.Logger = c.log

	if c.listSheets {
		return c.writeListing(cmd, inputPath, opts)
	}

	csvOpts, err := cfg.CSVOptions()
	if err != nil {
		return err
	}

	if c.sheetsDir != "" {
		return c.writeSheetFiles(inputPath, opts, csvOpts)
	}
	return c.writeCSV(cmd, inputPath, opts, csvOpts)
}

// applyFlags overrides file settings with the flags given on the command line.
func (c *cli) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("delimiter") {
		cfg.CSV.Delimiter = c.delimiter
	}
	if changed("crlf") {
		cfg.CSV.CRLF = c.crlf
	}
	if changed("encoding") {
		cfg.CSV.Encoding = c.encoding
	}
	if changed("sheet-delimiter") {
		cfg.CSV.SheetDelimiter = c.sheetDelimiter
	}
	if changed("keep-empty") {
		cfg.Convert.SkipEmptyRows = !c.keepEmpty
	}
	if changed("dateformat") {
		cfg.Convert.DateFormat = c.dateFormat
	}
	if changed("print-area") {
		cfg.Convert.PrintArea = c.printArea
	}
	if changed("charset") {
		cfg.Legacy.Charset = c.charset
	}
}

func (c *cli) writeListing(cmd *cobra.Command, inputPath string, opts excel2csv.Options) error {
	sheets, err := excel2csv.ListSheets(inputPath, opts)
	if err != nil {
		return err
	}
	data, err := output.SheetsToJSON(sheets, c.pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	data = append(data, '\n')

	if c.outputPath != "" {
		if err := os.WriteFile(c.outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func (c *cli) writeCSV(cmd *cobra.Command, inputPath string, opts excel2csv.Options, csvOpts output.CSVOptions) error {
	var out io.Writer = cmd.OutOrStdout()
	if c.outputPath != "" {
		file, err := os.Create(c.outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer file.Close()
		out = file
	}

	cw, err := output.NewCSVWriter(out, csvOpts)
	if err != nil {
		return err
	}

	results, err := excel2csv.Convert(inputPath, cw, opts)
	if err != nil {
		return err
	}
	if err := cw.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	c.logResults(results)
	return nil
}

func (c *cli) writeSheetFiles(inputPath string, opts excel2csv.Options, csvOpts output.CSVOptions) error {
	if err := os.MkdirAll(c.sheetsDir, 0755); err != nil {
		return err
	}

	names := newFileNamer()
	results, err := excel2csv.ConvertEach(inputPath, opts, func(sheet models.SheetDescriptor) (output.RowWriter, func() error, error) {
		base := names.next(sheet)
		if base != sheetFileName(sheet.Name) {
			c.log.WithFields(logrus.Fields{"sheet": sheet.Name, "file": base}).Warn("sheet file name already taken")
		}
		filename := filepath.Join(c.sheetsDir, base)
		file, err := os.Create(filename)
		if err != nil {
			return nil, nil, err
		}
		cw, err := output.NewCSVWriter(file, csvOpts)
		if err != nil {
			file.Close()
			return nil, nil, err
		}
		done := func() error {
			if err := cw.Close(); err != nil {
				file.Close()
				return err
			}
			return file.Close()
		}
		return cw, done, nil
	})
	if err != nil {
		return err
	}
	c.logResults(results)
	return nil
}

func (c *cli) logResults(results []excel2csv.SheetResult) {
	for _, r := range results {
		c.log.WithFields(logrus.Fields{"sheet": r.Sheet.Name, "rows": r.Rows}).Info("converted")
	}
}

var fileNameReplacer = strings.NewReplacer("/", "_", `\`, "_", ":", "_", "*", "_", "?", "_", `"`, "_", "<", "_", ">", "_", "|", "_")

func sheetFileName(name string) string {
	return fileNameReplacer.Replace(name) + ".csv"
}

// fileNamer hands out per-sheet file names that stay distinct on
// case-insensitive file systems.
type fileNamer struct {
	used map[string]bool
}

func newFileNamer() *fileNamer {
	return &fileNamer{used: make(map[string]bool)}
}

func (n *fileNamer) next(sheet models.SheetDescriptor) string {
	stem := fileNameReplacer.Replace(sheet.Name)
	name := stem + ".csv"
	for i := 0; n.used[strings.ToLower(name)]; i++ {
		if i == 0 {
			name = fmt.Sprintf("%s_%d.csv", stem, sheet.ID)
		} else {
			name = fmt.Sprintf("%s_%d_%d.csv", stem, sheet.ID, i)
		}
	}
	n.used[strings.ToLower(name)] = true
	return name
}
