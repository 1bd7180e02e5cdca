package cmd

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/tranvictor/circles-groups/accounts"
	cmdutil "github.com/tranvictor/circles-groups/cmd/util"
	"github.com/tranvictor/circles-groups/config"
	"github.com/tranvictor/circles-groups/networks"
	"github.com/tranvictor/circles-groups/ui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Import or generate the wallet cg signs with",
	Long: `Setup encrypts a private key into a keystore under ~/.circles-groups/keystores
and records the wallet and the network in the config file. The private key is
read without echo and never written to disk unencrypted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := cmdutil.LoadSettings(appLog)
		if err != nil {
			return err
		}
		updated, err := runSetup(appUI, s, accounts.NewStore(cmdutil.KeystoreDir()), config.Network)
		if err != nil {
			return err
		}
		path := config.ResolvePath()
		if err := config.Save(path, updated); err != nil {
			return err
		}
		appUI.Success("Wallet %s is ready.", updated.Wallet.Address)
		appUI.KeyValue([][2]string{
			{"Network", updated.Network.Name},
			{"Keystore", updated.Wallet.Keystore},
			{"Config", path},
		})
		appUI.Info("Fund the wallet with a little xDAI to pay for gas.")
		return nil
	},
}

const (
	setupImport   = "Import an existing private key"
	setupGenerate = "Generate a new wallet"
)

func runSetup(u ui.UI, s config.Settings, store *accounts.Store, networkName string) (config.Settings, error) {
	if s.HasWallet() {
		u.Warn("A wallet is already configured: %s", s.Wallet.Address)
		if !u.Confirm("Replace it?", false) {
			return s, errAborted
		}
	}

	if networkName == "" {
		networkName = s.Network.Name
	}
	if networkName == "" {
		networkName = config.DefaultNetwork
	}
	n, err := networks.GetNetwork(networkName)
	if err != nil {
		return s, err
	}

	choice := u.Choose("How do you want to set up the wallet?", []string{setupImport, setupGenerate})
	if choice < 0 {
		return s, errAborted
	}
	var hexKey string
	if choice == 0 {
		hexKey = u.AskSecret("Private key (hex): ")
		if _, err := accounts.PrivateKeyFromHex(hexKey); err != nil {
			return s, err
		}
	}

	passphrase := u.AskSecret("New keystore passphrase: ")
	if passphrase == "" {
		return s, fmt.Errorf("passphrase must not be empty")
	}
	if u.AskSecret("Repeat the passphrase: ") != passphrase {
		return s, fmt.Errorf("passphrases do not match")
	}

	var ad accounts.AccDesc
	if choice == 0 {
		ad, err = store.Import(hexKey, passphrase)
	} else {
		ad, err = store.Generate(passphrase)
	}
	if err != nil {
		return s, err
	}

	rpcURL, err := cmdutil.PromptOptional(u, "Custom RPC url (leave empty for the network default):", "", func(v string) error {
		parsed, err := url.Parse(v)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%q is not a valid url", v)
		}
		return nil
	})
	if err != nil {
		return s, err
	}

	s.Network.Name = n.GetName()
	s.Network.ChainID = n.GetChainID()
	if rpcURL != "" {
		s.Network.RPCURL = rpcURL
	}
	s.Wallet = config.WalletSettings{Address: ad.Address, Keystore: ad.Keypath}
	return s, nil
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
