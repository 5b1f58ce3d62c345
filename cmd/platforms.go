package cmd

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/michaelpento.lv/dexroute/dex"
	"github.com/michaelpento.lv/dexroute/types"
)

func newPlatformsCmd() *cobra.Command {
	var chainID uint64

	platformsCmd := &cobra.Command{
		Use:   "platforms",
		Short: "List supported platforms and their deployments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Platform", "Chain", "Fee (bps)", "Factory", "Router"})
			table.SetBorder(false)
			table.SetAutoWrapText(false)

			for _, platform := range dex.Platforms() {
				for _, chain := range types.ChainIDs() {
					if chainID != 0 && uint64(chain) != chainID {
						continue
					}
					cfg, ok := platform.Config(chain)
					if !ok {
						continue
					}
					table.Append([]string{
						platform.String(),
						chain.String(),
						strconv.FormatUint(uint64(cfg.DefaultSwapFee), 10),
						cfg.Factory.Hex(),
						cfg.Router.Hex(),
					})
				}
			}
			table.Render()
			return nil
		},
	}

	platformsCmd.Flags().Uint64Var(&chainID, "chain", 0, "only list deployments on this chain id")
	return platformsCmd
}
