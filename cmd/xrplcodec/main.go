// Command xrplcodec encodes and decodes canonical ledger binary data.
package main

import (
	"os"
	"sort"

	"github.com/anyswap/xrpl-codec/cmd/utils"
	"github.com/anyswap/xrpl-codec/log"
	"github.com/urfave/cli/v2"
)

var (
	clientIdentifier = "xrplcodec"
	// Git SHA1 commit hash of the release (set via linker flags)
	gitCommit = ""
	gitDate   = ""
)

func newApp() *cli.App {
	app := utils.NewApp(clientIdentifier, gitCommit, gitDate, "the xrplcodec command line interface")
	app.HideVersion = true // we have a command to print the version
	app.Before = utils.SetLogger
	app.Flags = utils.CommonFlags
	app.Commands = []*cli.Command{
		encodeCommand,
		decodeCommand,
		encodeForSigningCommand,
		encodeForMultisigningCommand,
		encodeForSigningClaimCommand,
		txidCommand,
		decodeLedgerDataCommand,
		decodeLedgerHeaderCommand,
		addressCommand,
		stateCommand,
		utils.VersionCommand,
	}
	sort.Sort(cli.CommandsByName(app.Commands))
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
