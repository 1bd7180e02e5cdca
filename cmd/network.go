package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	cmdutil "github.com/tranvictor/circles-groups/cmd/util"
	"github.com/tranvictor/circles-groups/networks"
	"github.com/tranvictor/circles-groups/ui"
)

var (
	NetworkFile  string
	NetworkForce bool
)

var addNetworkCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a Circles deployment to the supported networks",
	Long: `--file takes a path to a network json file OR the json itself:
	{
		"name": "chiado",
		"alternative_names": ["gnosis-testnet"],
		"chain_id": 10200,
		"native_token_symbol": "xDAI",
		"node_variable_name": "CHIADO_NODE",
		"default_nodes": {"chiado": "https://rpc.chiadochain.net"},
		"indexer_url": "https://...",
		"profile_service_url": "https://.../profiles/",
		"hub_address": "0x...",
		"name_registry_address": "0x...",
		"base_group_factory_address": "0x...",
		"base_mint_policy_address": "0x..."
	}`,
	RunE: func(cmd *cobra.Command, args []string) error {
		content := strings.TrimSpace(NetworkFile)
		if content == "" {
			return fmt.Errorf("--file is required")
		}
		raw := []byte(content)
		if !strings.HasPrefix(content, "{") {
			var err error
			raw, err = os.ReadFile(content)
			if err != nil {
				return fmt.Errorf("couldn't read %s: %w", content, err)
			}
		}
		n, err := networks.NewNetworkFromJSON(raw)
		if err != nil {
			return err
		}

		for _, name := range append([]string{n.GetName()}, n.GetAlternativeNames()...) {
			if _, err := networks.GetNetwork(name); err == nil && !NetworkForce {
				return fmt.Errorf("network with name %s already exists, use --force to replace it", name)
			}
		}
		if err := networks.AddNetwork(cmdutil.NetworksDir(), n); err != nil {
			return err
		}
		appUI.Success("Network %s with chain ID %d saved to %s.", n.GetName(), n.GetChainID(), cmdutil.NetworksDir())
		return nil
	},
}

var listNetworkCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all supported networks",
	Run: func(cmd *cobra.Command, args []string) {
		if err := networks.LoadCustomNetworks(cmdutil.NetworksDir()); err != nil {
			appUI.Warn("%s", err)
		}
		renderNetworks(appUI, networks.GetSupportedNetworks())
		appUI.Info("To remove a custom network, delete its json file in %s.", cmdutil.NetworksDir())
	},
}

func renderNetworks(u ui.UI, ns []networks.Network) {
	for _, n := range ns {
		u.Section(fmt.Sprintf("%s (chain %d)", n.GetName(), n.GetChainID()))
		nodes := n.GetDefaultNodes()
		names := make([]string, 0, len(nodes))
		for k := range nodes {
			names = append(names, k)
		}
		sort.Strings(names)
		rows := [][2]string{
			{"Node env var", n.GetNodeVariableName()},
			{"Indexer", n.GetIndexerURL()},
			{"Profiles", n.GetProfileServiceURL()},
			{"Hub", n.GetHubAddress().Hex()},
		}
		for _, k := range names {
			rows = append(rows, [2]string{"Node " + k, nodes[k]})
		}
		u.KeyValue(rows)
	}
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Manage the networks cg supports",
	Long:  ``,
}

func init() {
	addNetworkCmd.Flags().StringVarP(&NetworkFile, "file", "f", "", "path to the network json file, or the json itself")
	addNetworkCmd.Flags().BoolVar(&NetworkForce, "force", false, "replace an existing network with the same name")

	networkCmd.AddCommand(listNetworkCmd)
	networkCmd.AddCommand(addNetworkCmd)
	rootCmd.AddCommand(networkCmd)
}
