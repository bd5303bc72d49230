package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// cliOptions are the command-line overrides. Empty values leave the config
// file (or its defaults) in charge.
type cliOptions struct {
	ConfigDir string
	GameLog   string
	LogLevel  string
	Theme     string
	NoSound   bool
	Version   bool
}

func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions

	fs := pflag.NewFlagSet(AppName, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.ConfigDir, "config-dir", "c", defaultConfigDir(), "directory containing "+configFileHint)
	fs.StringVarP(&opts.GameLog, "game-log", "g", "", "path to the game's Game.log (overrides tail.gameLog)")
	fs.StringVarP(&opts.LogLevel, "log-level", "l", "", "debug, info, warn or error (overrides logLevel)")
	fs.StringVar(&opts.Theme, "theme", "", "status file colour theme: dark or light (overrides monitor.theme)")
	fs.BoolVar(&opts.NoSound, "no-sound", false, "disable the dungeon alert")
	fs.BoolVarP(&opts.Version, "version", "v", false, "print the version and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags]\n\n", AppName)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

// apply writes the overrides into viper once the config file is loaded.
func (o cliOptions) apply() {
	if o.GameLog != "" {
		viper.Set("tail.gameLog", o.GameLog)
	}
	if o.LogLevel != "" {
		viper.Set("logLevel", o.LogLevel)
	}
	if o.Theme != "" {
		viper.Set("monitor.theme", o.Theme)
	}
	if o.NoSound {
		viper.Set("alert.enabled", false)
	}
}

func defaultConfigDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
