// Package utils holds the command line scaffolding shared by the tools.
package utils

import (
	"os"
	"path/filepath"

	"github.com/anyswap/xrpl-codec/codec"
	"github.com/anyswap/xrpl-codec/params"
	"github.com/urfave/cli/v2"
)

var (
	clientIdentifier string
	gitCommit        string
	gitDate          string
)

// NewApp creates an app with sane defaults.
func NewApp(identifier, gitcommit, gitdate, usage string) *cli.App {
	clientIdentifier = identifier
	gitCommit = gitcommit
	gitDate = gitdate
	app := cli.NewApp()
	app.Name = filepath.Base(os.Args[0])
	app.Version = params.VersionWithCommit(gitCommit, gitDate)
	app.Usage = usage
	return app
}

// LoadConfig loads `--config` when given and returns an empty config
// otherwise.
func LoadConfig(ctx *cli.Context) (*params.CodecConfig, error) {
	configFile := GetConfigFilePath(ctx)
	if configFile == "" {
		return params.GetConfig(), nil
	}
	return params.LoadConfig(configFile)
}

// NewCodec builds the codec described by `--config`, or the default codec.
func NewCodec(ctx *cli.Context) (*codec.Codec, error) {
	if GetConfigFilePath(ctx) == "" {
		return codec.Default(), nil
	}
	config, err := LoadConfig(ctx)
	if err != nil {
		return nil, err
	}
	return config.BuildCodec()
}
