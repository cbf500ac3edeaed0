// Package config loads converter defaults from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/ukaji3/excel2csv-go/pkg/excel2csv"
	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/output"
)

// Config is the file-level configuration.
type Config struct {
	CSV     CSVConfig     `toml:"csv"`
	Convert ConvertConfig `toml:"convert"`
	Legacy  LegacyConfig  `toml:"legacy"`
}

// CSVConfig controls the output dialect.
type CSVConfig struct {
	// Delimiter accepts a single character, "tab", or a hex byte such as "x09".
	Delimiter      string `toml:"delimiter"`
	CRLF           bool   `toml:"crlf"`
	Encoding       string `toml:"encoding"`
	SheetDelimiter string `toml:"sheet_delimiter"`
}

// ConvertConfig controls cell and row rendering.
type ConvertConfig struct {
	SkipEmptyRows bool   `toml:"skip_empty_rows"`
	DateFormat    string `toml:"date_format"`
	PrintArea     bool   `toml:"print_area"`
}

// LegacyConfig applies to xls input only.
type LegacyConfig struct {
	Charset string `toml:"charset"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		CSV: CSVConfig{
			Delimiter: ",",
			CRLF:      true,
			Encoding:  "utf-8",
		},
		Convert: ConvertConfig{
			SkipEmptyRows: true,
		},
		Legacy: LegacyConfig{
			Charset: "utf-8",
		},
	}
}

// Load reads a TOML file over the defaults. An empty path returns the
// defaults unchanged; a named file that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Options converts the file settings into conversion options.
func (c *Config) Options() excel2csv.Options {
	skip := c.Convert.SkipEmptyRows
	opts := excel2csv.DefaultOptions()
	opts.SkipEmptyRows = &skip
	opts.DateFormat = c.Convert.DateFormat
	opts.UsePrintArea = c.Convert.PrintArea
	opts.SheetDelimiter = c.CSV.SheetDelimiter
	opts.Charset = c.Legacy.Charset
	return opts
}

// CSVOptions converts the file settings into writer options.
func (c *Config) CSVOptions() (output.CSVOptions, error) {
	delim, err := output.ParseDelimiter(c.CSV.Delimiter)
	if err != nil {
		return output.CSVOptions{}, err
	}
	return output.CSVOptions{
		Delimiter: delim,
		UseCRLF:   c.CSV.CRLF,
		Encoding:  c.CSV.Encoding,
	}, nil
}
