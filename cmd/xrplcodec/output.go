package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/anyswap/xrpl-codec/cmd/utils"
	"github.com/anyswap/xrpl-codec/codec"
	"github.com/anyswap/xrpl-codec/common"
	"github.com/anyswap/xrpl-codec/terminal"
	"github.com/urfave/cli/v2"
)

func argument(ctx *cli.Context, name string) (string, error) {
	if ctx.NArg() != 1 {
		return "", fmt.Errorf("expect exactly one <%v> argument (literal, @file or -)", name)
	}
	return common.ReadArg(ctx.Args().First(), stdin(ctx))
}

// stdin is the reader of the top level app. Commands with subcommands run
// in their own app whose Reader is always os.Stdin.
func stdin(ctx *cli.Context) io.Reader {
	lineage := ctx.Lineage()
	for i := len(lineage) - 1; i >= 0; i-- {
		if app := lineage[i].App; app != nil && app.Reader != nil {
			return app.Reader
		}
	}
	return os.Stdin
}

func jsonArgument(ctx *cli.Context) (map[string]interface{}, error) {
	s, err := argument(ctx, "json")
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	bag := make(map[string]interface{})
	if err := dec.Decode(&bag); err != nil {
		return nil, fmt.Errorf("invalid json object: %w", err)
	}
	return bag, nil
}

func hexArgument(ctx *cli.Context) ([]byte, error) {
	s, err := argument(ctx, "hex")
	if err != nil {
		return nil, err
	}
	return common.DecodeHex(s)
}

func printHex(ctx *cli.Context, b []byte) error {
	_, err := fmt.Fprintln(ctx.App.Writer, common.ToHex(b))
	return err
}

func printJSON(ctx *cli.Context, c *codec.Codec, v interface{}) error {
	p := terminal.NewPrinter(ctx.App.Writer, ctx.Bool(utils.ColorFormatFlag.Name))
	if c != nil {
		p.Less = canonicalLess(c)
	}
	return p.Print(v)
}

// canonicalLess orders known fields the way they are serialized and puts
// other keys after them by name.
func canonicalLess(c *codec.Codec) func(a, b string) bool {
	defs := c.Definitions()
	return func(a, b string) bool {
		fa, okA := defs.FieldByName(a)
		fb, okB := defs.FieldByName(b)
		switch {
		case okA && okB && fa.IsSerialized && fb.IsSerialized:
			return fa.Ordinal() < fb.Ordinal()
		case okA && fa.IsSerialized:
			return true
		case okB && fb.IsSerialized:
			return false
		}
		return a < b
	}
}
