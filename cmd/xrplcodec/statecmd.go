package main

import (
	"errors"
	"fmt"

	"github.com/anyswap/xrpl-codec/cmd/utils"
	"github.com/anyswap/xrpl-codec/ledgerstore"
	"github.com/urfave/cli/v2"
)

var (
	limitFlag = &cli.IntFlag{
		Name:  "limit",
		Usage: "maximum number of entries to list (0 means all)",
	}

	stateCommand = &cli.Command{
		Name:  "state",
		Usage: "keep decoded ledger state entries in a local store",
		Flags: []cli.Flag{utils.DataDirFlag},
		Subcommands: []*cli.Command{
			{
				Action:    importState,
				Name:      "import",
				Usage:     "import a ledger state blob",
				ArgsUsage: "<hex|@file|->",
			},
			{
				Action:    getState,
				Name:      "get",
				Usage:     "print the entry stored under an index",
				ArgsUsage: "<index>",
			},
			{
				Action:    listState,
				Name:      "list",
				Usage:     "print stored entries in index order",
				ArgsUsage: " ",
				Flags:     []cli.Flag{limitFlag},
			},
			{
				Action:    listImports,
				Name:      "imports",
				Usage:     "print the import history",
				ArgsUsage: " ",
			},
		},
	}
)

var errStopIterate = errors.New("stop iterate")

func openStore(ctx *cli.Context, readonly bool) (*ledgerstore.Store, error) {
	config, err := utils.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}
	c, err := config.BuildCodec()
	if err != nil {
		return nil, err
	}
	var cache, handles int
	dataDir := ctx.String(utils.DataDirFlag.Name)
	if store := config.Store; store != nil {
		if dataDir == "" {
			dataDir = store.DataDir
		}
		cache, handles = store.Cache, store.Handles
		readonly = readonly || store.ReadOnly
	}
	if dataDir == "" {
		return nil, fmt.Errorf("missing ledger store directory, use --%v or [Store] DataDir", utils.DataDirFlag.Name)
	}
	return ledgerstore.Open(dataDir, cache, handles, readonly, c)
}

func importState(ctx *cli.Context) error {
	blob, err := hexArgument(ctx)
	if err != nil {
		return err
	}
	store, err := openStore(ctx, false)
	if err != nil {
		return err
	}
	defer store.Close()
	record, err := store.ImportLedgerData(blob)
	if err != nil {
		return err
	}
	return printJSON(ctx, nil, map[string]interface{}{
		"id":      record.ID,
		"entries": record.Entries,
		"bytes":   record.Bytes,
	})
}

func getState(ctx *cli.Context) error {
	index, err := argument(ctx, "index")
	if err != nil {
		return err
	}
	store, err := openStore(ctx, true)
	if err != nil {
		return err
	}
	defer store.Close()
	entry, err := store.Get(index)
	if ledgerstore.IsNotFoundErr(err) {
		return fmt.Errorf("entry %v not found", index)
	}
	if err != nil {
		return err
	}
	return printJSON(ctx, nil, entry)
}

func listState(ctx *cli.Context) error {
	store, err := openStore(ctx, true)
	if err != nil {
		return err
	}
	defer store.Close()
	limit := ctx.Int(limitFlag.Name)
	entries := make([]interface{}, 0)
	err = store.Iterate(func(entry map[string]interface{}) error {
		entries = append(entries, entry)
		if limit > 0 && len(entries) >= limit {
			return errStopIterate
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopIterate) {
		return err
	}
	return printJSON(ctx, nil, entries)
}

func listImports(ctx *cli.Context) error {
	store, err := openStore(ctx, true)
	if err != nil {
		return err
	}
	defer store.Close()
	records, err := store.Imports()
	if err != nil {
		return err
	}
	list := make([]interface{}, len(records))
	for i, record := range records {
		list[i] = map[string]interface{}{
			"id":      record.ID,
			"entries": record.Entries,
			"bytes":   record.Bytes,
			"time":    record.Time.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}
	return printJSON(ctx, nil, list)
}
