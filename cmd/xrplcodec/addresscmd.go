package main

import (
	"fmt"

	"github.com/anyswap/xrpl-codec/addresscodec"
	"github.com/anyswap/xrpl-codec/common"
	"github.com/urfave/cli/v2"
)

var addressCommand = &cli.Command{
	Name:  "address",
	Usage: "convert between public keys, account ids and addresses",
	Subcommands: []*cli.Command{
		{
			Action:    pubkeyToAddress,
			Name:      "from-pubkey",
			Usage:     "convert public key to address",
			ArgsUsage: "<pubkey>",
		},
		{
			Action:    accountIDToAddress,
			Name:      "from-account-id",
			Usage:     "convert 40 hex digit account id to address",
			ArgsUsage: "<accountid>",
		},
		{
			Action:    addressToAccountID,
			Name:      "to-account-id",
			Usage:     "convert address to account id",
			ArgsUsage: "<address>",
		},
	},
}

func pubkeyToAddress(ctx *cli.Context) error {
	pubkey, err := hexArgument(ctx)
	if err != nil {
		return err
	}
	if len(pubkey) != 33 {
		return fmt.Errorf("public key must be 33 bytes, got %d", len(pubkey))
	}
	_, err = fmt.Fprintf(ctx.App.Writer, "address: %v\n", addresscodec.AddressFromPublicKey(pubkey))
	return err
}

func accountIDToAddress(ctx *cli.Context) error {
	id, err := hexArgument(ctx)
	if err != nil {
		return err
	}
	address, err := addresscodec.EncodeAccountID(id)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(ctx.App.Writer, "address: %v\n", address)
	return err
}

func addressToAccountID(ctx *cli.Context) error {
	address, err := argument(ctx, "address")
	if err != nil {
		return err
	}
	id, err := addresscodec.DecodeAccountID(address)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(ctx.App.Writer, "account id: %v\n", common.ToHex(id))
	return err
}
