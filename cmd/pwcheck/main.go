package main

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"code.cloudfoundry.org/lager"
	"github.com/jessevdk/go-flags"

	"github.com/bryanwahyu/passwise/internal/bootstrap"
	"github.com/bryanwahyu/passwise/internal/config"
)

type Opts struct {
	Config   string `short:"c" long:"config" description:"path to config.yaml" default:"config.yaml" env:"CONFIG_PATH" value-name:"PATH"`
	LogLevel string `long:"log-level" description:"log level for backend messages" default:"error" choice:"debug" choice:"info" choice:"error"`

	Analyze      AnalyzeCommand      `command:"analyze" description:"analyze a password read from stdin or --password"`
	Generate     GenerateCommand     `command:"generate" description:"generate a strong password"`
	ImportBreach ImportBreachCommand `command:"import-breach" description:"load a leaked-password corpus into the redis or sql backend"`
}

var opts Opts

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

// loadConfig falls back to defaults when the file does not exist.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(opts.Config)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Parse(nil)
	}
	return cfg, err
}

func buildApp(ctx context.Context) (*bootstrap.App, lager.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := bootstrap.NewLogger("pwcheck", opts.LogLevel)
	app, err := bootstrap.Build(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return app, logger, nil
}
