package main

import (
	"fmt"

	"github.com/anyswap/xrpl-codec/cmd/utils"
	"github.com/anyswap/xrpl-codec/codec"
	"github.com/urfave/cli/v2"
)

var (
	signerFlag = &cli.StringFlag{
		Name:     "signer",
		Usage:    "signer account address",
		Required: true,
	}
	channelFlag = &cli.StringFlag{
		Name:     "channel",
		Usage:    "payment channel id (64 hex digits)",
		Required: true,
	}
	amountFlag = &cli.StringFlag{
		Name:     "amount",
		Usage:    "claim amount in drops",
		Required: true,
	}

	encodeCommand = &cli.Command{
		Action:    encode,
		Name:      "encode",
		Usage:     "encode a JSON object to canonical binary",
		ArgsUsage: "<json|@file|->",
	}
	decodeCommand = &cli.Command{
		Action:    decode,
		Name:      "decode",
		Usage:     "decode canonical binary to a JSON object",
		ArgsUsage: "<hex|@file|->",
	}
	encodeForSigningCommand = &cli.Command{
		Action:    encodeForSigning,
		Name:      "encode-for-signing",
		Usage:     "encode the signing fields of a transaction behind the signing prefix",
		ArgsUsage: "<json|@file|->",
	}
	encodeForMultisigningCommand = &cli.Command{
		Action:    encodeForMultisigning,
		Name:      "encode-for-multisigning",
		Usage:     "encode a transaction for one signer of a multi-signed transaction",
		ArgsUsage: "<json|@file|->",
		Flags:     []cli.Flag{signerFlag},
	}
	encodeForSigningClaimCommand = &cli.Command{
		Action:    encodeForSigningClaim,
		Name:      "encode-for-signing-claim",
		Usage:     "encode a payment channel claim for signing",
		ArgsUsage: " ",
		Flags:     []cli.Flag{channelFlag, amountFlag},
	}
	txidCommand = &cli.Command{
		Action:    txid,
		Name:      "txid",
		Usage:     "compute the transaction id of a signed transaction",
		ArgsUsage: "<json|@file|->",
	}
)

func encode(ctx *cli.Context) error {
	c, err := utils.NewCodec(ctx)
	if err != nil {
		return err
	}
	bag, err := jsonArgument(ctx)
	if err != nil {
		return err
	}
	b, err := c.Encode(bag)
	if err != nil {
		return err
	}
	return printHex(ctx, b)
}

func decode(ctx *cli.Context) error {
	c, err := utils.NewCodec(ctx)
	if err != nil {
		return err
	}
	b, err := hexArgument(ctx)
	if err != nil {
		return err
	}
	bag, err := c.Decode(b)
	if err != nil {
		return err
	}
	return printJSON(ctx, c, bag)
}

func encodeForSigning(ctx *cli.Context) error {
	c, err := utils.NewCodec(ctx)
	if err != nil {
		return err
	}
	bag, err := jsonArgument(ctx)
	if err != nil {
		return err
	}
	b, err := c.EncodeForSigning(bag)
	if err != nil {
		return err
	}
	return printHex(ctx, b)
}

func encodeForMultisigning(ctx *cli.Context) error {
	c, err := utils.NewCodec(ctx)
	if err != nil {
		return err
	}
	bag, err := jsonArgument(ctx)
	if err != nil {
		return err
	}
	b, err := c.EncodeForMultisigning(bag, ctx.String(signerFlag.Name))
	if err != nil {
		return err
	}
	return printHex(ctx, b)
}

func encodeForSigningClaim(ctx *cli.Context) error {
	if ctx.NArg() != 0 {
		return fmt.Errorf("unexpected argument %q", ctx.Args().First())
	}
	c, err := utils.NewCodec(ctx)
	if err != nil {
		return err
	}
	b, err := c.EncodeForSigningClaim(codec.PaymentChannelClaim{
		Channel: ctx.String(channelFlag.Name),
		Amount:  ctx.String(amountFlag.Name),
	})
	if err != nil {
		return err
	}
	return printHex(ctx, b)
}

func txid(ctx *cli.Context) error {
	c, err := utils.NewCodec(ctx)
	if err != nil {
		return err
	}
	bag, err := jsonArgument(ctx)
	if err != nil {
		return err
	}
	id, err := c.TransactionID(bag)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer, id)
	return err
}
