package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/xschemadev/urlfetch/config"
	"github.com/xschemadev/urlfetch/filter"
)

type flagValues struct {
	configPath string

	input    string
	verbose  bool
	execute  string
	include  string
	exclude  string
	cwd      string
	appendTo string
	zero     bool
	unique   bool
	quote    bool
	logFile  string
}

func bindFlags(cmd *cobra.Command, v *flagValues) {
	f := cmd.Flags()
	f.SortFlags = false

	f.StringVarP(&v.input, "input", "i", "", "file to parse (required)")
	f.BoolVarP(&v.verbose, "verbose", "v", false, "print additional status")
	f.StringVarP(&v.execute, "execute", "x", "", "command to execute for each URL; the URL is appended to it")
	f.StringVar(&v.include, "include", "", "comma-separated query parameters to keep, all others are removed")
	f.StringVar(&v.exclude, "exclude", "", "comma-separated query parameters to remove")
	f.StringVar(&v.cwd, "cwd", "", "working directory for execution")
	f.StringVarP(&v.appendTo, "appendTo", "a", "", "append each found URL to this file")
	f.BoolVarP(&v.zero, "zero", "z", false, "empty the input file after execute/appendTo has run")
	f.BoolVarP(&v.unique, "unique", "u", false, "drop repeated URLs, keeping the first occurrence")
	f.BoolVar(&v.quote, "quote", false, "shell-quote the URL appended to the command")
	f.StringVarP(&v.configPath, "config", "c", "", "JSONC or YAML file with defaults for these flags; relative paths in it are resolved against its directory")
	f.StringVar(&v.logFile, "log-file", "", "write diagnostics to this file (rotated)")
}

// buildConfig starts from the config file, if any, and lets every flag
// given on the command line override it.
func buildConfig(f *pflag.FlagSet, v *flagValues) (config.Config, error) {
	var cfg config.Config
	if v.configPath != "" {
		loaded, err := config.Load(v.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if f.Changed("input") {
		cfg.Input = v.input
	}
	if f.Changed("verbose") {
		cfg.Verbose = v.verbose
	}
	if f.Changed("execute") {
		cfg.Execute = v.execute
	}
	if f.Changed("include") {
		cfg.Include = filter.ParseNames(v.include)
	}
	if f.Changed("exclude") {
		cfg.Exclude = filter.ParseNames(v.exclude)
	}
	if f.Changed("cwd") {
		cfg.Cwd = v.cwd
	}
	if f.Changed("appendTo") {
		cfg.AppendTo = v.appendTo
	}
	if f.Changed("zero") {
		cfg.Zero = v.zero
	}
	if f.Changed("unique") {
		cfg.Unique = v.unique
	}
	if f.Changed("quote") {
		cfg.Quote = v.quote
	}
	if f.Changed("log-file") {
		cfg.LogFile = v.logFile
	}
	return cfg, nil
}
