package main

import (
	"github.com/anyswap/xrpl-codec/cmd/utils"
	"github.com/anyswap/xrpl-codec/codec"
	"github.com/anyswap/xrpl-codec/log"
	"github.com/urfave/cli/v2"
)

var (
	decodeLedgerDataCommand = &cli.Command{
		Action:    decodeLedgerData,
		Name:      "decode-ledger-data",
		Usage:     "decode a ledger state blob into its entries",
		ArgsUsage: "<hex|@file|->",
	}
	decodeLedgerHeaderCommand = &cli.Command{
		Action:    decodeLedgerHeader,
		Name:      "decode-ledger-header",
		Usage:     "decode a ledger header and compute its hash",
		ArgsUsage: "<hex|@file|->",
	}
)

func decodeLedgerData(ctx *cli.Context) error {
	c, err := utils.NewCodec(ctx)
	if err != nil {
		return err
	}
	b, err := hexArgument(ctx)
	if err != nil {
		return err
	}
	entries, err := c.DecodeLedgerData(b)
	if err != nil {
		return err
	}
	log.Info("decoded ledger data", "entries", len(entries), "bytes", len(b))
	return printJSON(ctx, c, entries)
}

func decodeLedgerHeader(ctx *cli.Context) error {
	b, err := hexArgument(ctx)
	if err != nil {
		return err
	}
	header, err := codec.DecodeLedgerHeader(b)
	if err != nil {
		return err
	}
	hash, err := header.Hash()
	if err != nil {
		return err
	}
	return printJSON(ctx, nil, map[string]interface{}{
		"ledger_index":          header.LedgerIndex,
		"total_coins":           header.TotalCoins,
		"parent_hash":           header.ParentHash,
		"transaction_hash":      header.TransactionHash,
		"account_hash":          header.AccountHash,
		"parent_close_time":     header.ParentCloseTime,
		"close_time":            header.CloseTime,
		"close_time_resolution": uint32(header.CloseTimeResolution),
		"close_flags":           uint32(header.CloseFlags),
		"hash":                  hash,
	})
}
