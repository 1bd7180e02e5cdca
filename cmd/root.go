// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tranvictor/circles-groups/config"
	"github.com/tranvictor/circles-groups/logger"
	"github.com/tranvictor/circles-groups/ui"
)

var (
	appUI ui.UI = ui.NewTerminalUI()
	appLog      = zerolog.Nop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cg",
	Short: "Create and administer Circles groups from the command line",
	Long: fmt.Sprintf(`cg is a command line wallet for Circles v2 groups on Gnosis Chain.

It helps group operators with their daily tasks:

	1. It deploys standard groups and base groups, pins their profile and
	finds the new group address once the Circles index has caught up.

	2. It manages membership: add and remove members, trust members in
	batches, set membership conditions and read the member list merged
	from trust relations and membership records.

	3. It reads group details, token balances and trust statistics, and
	transfers group tokens.

Run "cg setup" first to import or generate a wallet. Settings are stored in
%s. The following env vars override the config file:
	1. Node rpc: %s
	2. Circles index: %s
	3. Profile service: %s
	4. Keystore passphrase for non interactive use: CIRCLES_KEYSTORE_PASSPHRASE`,
		config.DefaultPath(),
		config.RPCURLVar,
		config.IndexerURLVar,
		config.ProfileServiceURLVar,
	),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		appLog = logger.Init(config.Verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().StringVarP(&config.Network, "network", "k", "", "network to use, defaults to the config file or \"gnosis\"")
	rootCmd.PersistentFlags().StringVar(&config.ConfigPath, "config", "", "path to the config file (default ~/.circles-groups/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&config.Verbose, "verbose", "v", false, "print diagnostic logs to stderr")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(appUI, err)
		os.Exit(1)
	}
}
