package cmd

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/circles-groups/circles"
	cmdutil "github.com/tranvictor/circles-groups/cmd/util"
	"github.com/tranvictor/circles-groups/common"
	"github.com/tranvictor/circles-groups/config"
	"github.com/tranvictor/circles-groups/groupbook"
	"github.com/tranvictor/circles-groups/profiles"
	"github.com/tranvictor/circles-groups/ui"
)

var (
	baseGroupService       string
	baseGroupFeeCollection string
	baseGroupConditions    string
	baseGroupImageURL      string
	baseGroupPreviewURL    string
)

var deployBaseGroupCmd = &cobra.Command{
	Use:   "deploy-base-group",
	Short: "Deploy a base group contract through the BaseGroupFactory",
	Long: `Pins the group profile, deploys a base group owned by the wallet and reads
the new group address from the factory event in the receipt. Missing flags
are prompted for. Service and fee collection default to the wallet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd, true)
		if err != nil {
			return err
		}
		defer sess.Close()

		profile, err := promptBaseGroupProfile(appUI)
		if err != nil {
			return err
		}
		setup, err := promptBaseGroupSetup(appUI, sess.WalletAddress())
		if err != nil {
			return err
		}
		return deployBaseGroup(cmd.Context(), appUI, sess, profile, setup)
	},
}

type baseGroupSetup struct {
	Service       string
	FeeCollection string
	Conditions    []string
}

func validateOptionalURL(v string) error {
	parsed, err := url.Parse(v)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https" && parsed.Scheme != "ipfs") {
		return fmt.Errorf("%q is not an http(s) or ipfs url", v)
	}
	return nil
}

func promptBaseGroupProfile(u ui.UI) (profiles.Profile, error) {
	u.Section("Group profile")
	name, err := cmdutil.PromptInput(u, fmt.Sprintf("Group name (max %d characters):", circles.MaxNameLength), config.Name, circles.ValidateName)
	if err != nil {
		return profiles.Profile{}, err
	}
	symbol := config.Symbol
	if symbol == "" {
		if derived := circles.DeriveSymbol(name); circles.ValidateSymbol(derived) == nil {
			u.Info("Suggested symbol: %s", derived)
		}
	}
	symbol, err = cmdutil.PromptInput(u, fmt.Sprintf("Symbol (%d-%d characters, A-Z and 0-9):", circles.MinSymbolLength, circles.MaxSymbolLength), strings.ToUpper(symbol), circles.ValidateSymbol)
	if err != nil {
		return profiles.Profile{}, err
	}
	description, err := cmdutil.PromptInput(u, fmt.Sprintf("Description (max %d characters):", circles.MaxDescriptionSize), config.Description, circles.ValidateDescription)
	if err != nil {
		return profiles.Profile{}, err
	}
	image, err := cmdutil.PromptOptional(u, "Image url (optional):", baseGroupImageURL, validateOptionalURL)
	if err != nil {
		return profiles.Profile{}, err
	}
	preview, err := cmdutil.PromptOptional(u, "Preview image url (optional):", baseGroupPreviewURL, validateOptionalURL)
	if err != nil {
		return profiles.Profile{}, err
	}
	return profiles.Profile{
		Name:            name,
		Symbol:          symbol,
		Description:     description,
		ImageURL:        image,
		PreviewImageURL: preview,
	}, nil
}

func promptBaseGroupSetup(u ui.UI, wallet string) (baseGroupSetup, error) {
	u.Section("Group setup")
	service := baseGroupService
	if service == "" {
		service = wallet
	}
	feeCollection := baseGroupFeeCollection
	if feeCollection == "" {
		feeCollection = wallet
	}
	var (
		setup baseGroupSetup
		err   error
	)
	if setup.Service, err = cmdutil.PromptAddress(u, "Service address:", service); err != nil {
		return baseGroupSetup{}, err
	}
	if setup.FeeCollection, err = cmdutil.PromptAddress(u, "Fee collection address:", feeCollection); err != nil {
		return baseGroupSetup{}, err
	}
	if setup.Conditions, err = cmdutil.PromptOptionalAddresses(u, "Membership condition addresses (optional, comma separated):", baseGroupConditions); err != nil {
		return baseGroupSetup{}, err
	}
	return setup, nil
}

func deployBaseGroup(ctx context.Context, u ui.UI, sess *cmdutil.Session, p profiles.Profile, setup baseGroupSetup) error {
	owner := sess.WalletAddress()
	u.Section("Review")
	u.KeyValue([][2]string{
		{"Name", p.Name},
		{"Symbol", p.Symbol},
		{"Description", p.Description},
		{"Owner", owner},
		{"Service", setup.Service},
		{"Fee collection", setup.FeeCollection},
		{"Conditions", fmt.Sprintf("%d", len(setup.Conditions))},
	})
	if err := confirmOrAbort(u, "Deploy this base group?"); err != nil {
		return err
	}

	var (
		cid    string
		digest [32]byte
	)
	err := withSpinner(u, "Pinning the group profile", func() error {
		var err error
		cid, digest, err = sess.Profiles.PinDigest(ctx, p)
		return err
	})
	if err != nil {
		return err
	}
	u.Success("Profile pinned: %s", cid)

	var deployment circles.BaseGroupDeployment
	err = withSpinner(u, "Deploying the base group", func() error {
		var err error
		deployment, err = sess.Circles.CreateBaseGroup(ctx, circles.BaseGroupParams{
			Owner:          common.HexToAddress(owner),
			Service:        common.HexToAddress(setup.Service),
			FeeCollection:  common.HexToAddress(setup.FeeCollection),
			Conditions:     common.HexToAddresses(setup.Conditions),
			Name:           p.Name,
			Symbol:         p.Symbol,
			MetadataDigest: digest,
		})
		return err
	})
	if err != nil {
		if deployment.Receipt != nil {
			printReceipt(u, deployment.Receipt)
		}
		return err
	}

	group := strings.ToLower(deployment.Group.Hex())
	u.Success("Base group deployed at %s", group)
	if !deployment.Confident {
		u.Warn("The factory event was missing, the address was guessed from the transaction logs. Verify it with `cg group-info -g %s`.", group)
	}
	printReceipt(u, deployment.Receipt)

	if err := sess.Book.Put(groupbook.Entry{
		Address: group,
		Name:    p.Name,
		Symbol:  p.Symbol,
		Kind:    groupbook.KindBase,
		Owner:   owner,
		TxHash:  deployment.TxHash.Hex(),
	}); err != nil {
		u.Warn("Couldn't record the group locally: %s", err)
	}
	return nil
}

func init() {
	deployBaseGroupCmd.Flags().StringVarP(&config.Name, "name", "n", "", "group name")
	deployBaseGroupCmd.Flags().StringVarP(&config.Symbol, "symbol", "s", "", "token symbol")
	deployBaseGroupCmd.Flags().StringVarP(&config.Description, "description", "d", "", "group description")
	deployBaseGroupCmd.Flags().StringVar(&baseGroupImageURL, "image", "", "image url")
	deployBaseGroupCmd.Flags().StringVar(&baseGroupPreviewURL, "preview-image", "", "preview image url")
	deployBaseGroupCmd.Flags().StringVar(&baseGroupService, "service", "", "service address (default: the wallet)")
	deployBaseGroupCmd.Flags().StringVar(&baseGroupFeeCollection, "fee-collection", "", "fee collection address (default: the wallet)")
	deployBaseGroupCmd.Flags().StringVar(&baseGroupConditions, "conditions", "", "comma separated membership condition addresses")
	deployBaseGroupCmd.Flags().BoolVarP(&config.AssumeYes, "yes", "y", false, "skip confirmation")
	rootCmd.AddCommand(deployBaseGroupCmd)
}
