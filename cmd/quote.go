package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/michaelpento.lv/dexroute/aggregator"
	"github.com/michaelpento.lv/dexroute/dex"
	"github.com/michaelpento.lv/dexroute/dex/uniswap"
	"github.com/michaelpento.lv/dexroute/pairsource"
	"github.com/michaelpento.lv/dexroute/types"
	"github.com/michaelpento.lv/dexroute/utils"
	"github.com/michaelpento.lv/dexroute/utils/math"
	"github.com/michaelpento.lv/dexroute/utils/metrics"
)

type quoteOptions struct {
	root *rootOptions

	snapshot      string
	in            string
	out           string
	amount        string
	exactOut      bool
	maxHops       int
	maxResults    int
	slippageBps   uint32
	recipient     string
	ttl           time.Duration
	feeOnTransfer bool
}

func newQuoteCmd(root *rootOptions) *cobra.Command {
	opts := &quoteOptions{root: root}

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Find the best trades between two currencies",
		Example: `  dexroute quote --snapshot pairs.yaml --in USDC --out ETH --amount 2500
  dexroute quote --snapshot pairs.yaml --in DAI --out USDC --amount 100 --exact-out --recipient 0x...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd)
		},
	}

	flags := quoteCmd.Flags()
	flags.StringVar(&opts.snapshot, "snapshot", "", "YAML pair snapshot")
	flags.StringVar(&opts.in, "in", "", "input currency symbol or address")
	flags.StringVar(&opts.out, "out", "", "output currency symbol or address")
	flags.StringVar(&opts.amount, "amount", "", "amount in whole units, e.g. 1.5")
	flags.BoolVar(&opts.exactOut, "exact-out", false, "treat --amount as the exact output")
	flags.IntVar(&opts.maxHops, "max-hops", 0, "maximum pairs per route (config default when unset)")
	flags.IntVar(&opts.maxResults, "max-results", 0, "maximum trades to print, 0 for all (config default when unset)")
	flags.Uint32Var(&opts.slippageBps, "slippage-bps", 0, "maximum slippage in basis points (config default when unset)")
	flags.StringVar(&opts.recipient, "recipient", "", "print router calldata for the best trade, paying this address")
	flags.DurationVar(&opts.ttl, "ttl", 20*time.Minute, "deadline of the router call relative to now")
	flags.BoolVar(&opts.feeOnTransfer, "fee-on-transfer", false, "use the fee-on-transfer router methods")

	for _, name := range []string{"snapshot", "in", "out", "amount"} {
		_ = quoteCmd.MarkFlagRequired(name)
	}

	return quoteCmd
}

func (o *quoteOptions) run(cmd *cobra.Command) error {
	cfg, err := o.root.loadConfig()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("max-hops") {
		cfg.Routing.MaxHops = o.maxHops
	}
	if flags.Changed("max-results") {
		cfg.Routing.MaxResults = o.maxResults
	}
	var slippage *math.Percent
	if flags.Changed("slippage-bps") {
		slippage = math.NewPercentFromBasisPoints(o.slippageBps)
	}

	logOpts, err := cfg.LoggerOptions()
	if err != nil {
		return err
	}
	log, err := utils.InitLogger(logOpts)
	if err != nil {
		return err
	}

	snap, err := pairsource.Load(o.snapshot)
	if err != nil {
		return err
	}
	if snap.ChainID != cfg.Chain() {
		return fmt.Errorf("snapshot is for %s but the config selects %s: %w", snap.ChainID, cfg.Chain(), types.ErrChainID)
	}

	currencyIn, err := snap.Currency(o.in)
	if err != nil {
		return err
	}
	currencyOut, err := snap.Currency(o.out)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	var m *metrics.RoutingMetrics
	if cfg.Metrics.Enabled {
		m = metrics.NewRoutingMetrics(cfg.Metrics.Namespace, reg)
	}

	agg, err := aggregator.New(cfg, log, m)
	if err != nil {
		return err
	}

	log.Debug("Quoting",
		zap.String("in", currencyIn.Symbol()),
		zap.String("out", currencyOut.Symbol()),
		zap.String("amount", o.amount),
		zap.Bool("exact_out", o.exactOut),
		zap.Int("pairs", len(snap.Pairs)))

	var trades []*uniswap.Trade
	if o.exactOut {
		amountOut, err := types.ParseCurrencyAmount(currencyOut, o.amount)
		if err != nil {
			return err
		}
		trades, err = agg.BestTradesExactOut(cmd.Context(), snap.Pairs, currencyIn, amountOut, slippage)
		if err != nil {
			return err
		}
	} else {
		amountIn, err := types.ParseCurrencyAmount(currencyIn, o.amount)
		if err != nil {
			return err
		}
		trades, err = agg.BestTradesExactIn(cmd.Context(), snap.Pairs, amountIn, currencyOut, slippage)
		if err != nil {
			return err
		}
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Textfile != "" {
		if err := prometheus.WriteToTextfile(cfg.Metrics.Textfile, reg); err != nil {
			log.Warn("Failed to write metrics textfile", zap.String("path", cfg.Metrics.Textfile), zap.Error(err))
		}
	}

	w := cmd.OutOrStdout()
	if len(trades) == 0 {
		fmt.Fprintf(w, "no route from %s to %s\n", currencyIn.Symbol(), currencyOut.Symbol())
		return nil
	}
	renderTrades(w, trades)

	if o.recipient == "" {
		return nil
	}
	return o.renderCall(w, trades[0])
}

func formatAmount(amount *types.CurrencyAmount) string {
	return amount.ToSignificant(6, math.RoundDown) + " " + amount.Currency().Symbol()
}

func renderTrades(w io.Writer, trades []*uniswap.Trade) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Platform", "Route", "Input", "Output", "Price", "Impact", "Bound"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for i, trade := range trades {
		bound := "min " + formatAmount(trade.MinimumAmountOut())
		if trade.TradeType() == dex.ExactOutput {
			bound = "max " + formatAmount(trade.MaximumAmountIn())
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			trade.Platform().String(),
			trade.Route().String(),
			formatAmount(trade.InputAmount()),
			formatAmount(trade.OutputAmount()),
			trade.ExecutionPrice().ToSignificant(6, math.RoundHalfUp),
			trade.PriceImpact().ToFixed(2, math.RoundHalfUp) + "%",
			bound,
		})
	}
	table.Render()
}

func (o *quoteOptions) renderCall(w io.Writer, trade *uniswap.Trade) error {
	if !common.IsHexAddress(o.recipient) {
		return fmt.Errorf("invalid recipient %q: %w", o.recipient, types.ErrAddress)
	}
	msg, err := trade.SwapTransaction(dex.SwapOptions{
		Recipient:     common.HexToAddress(o.recipient),
		TTL:           o.ttl,
		FeeOnTransfer: o.feeOnTransfer,
	})
	if err != nil {
		return err
	}

	call, err := uniswap.DecodeSwapCall(msg.Data)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\nmethod: %s\n", call.Method)
	fmt.Fprintf(w, "to:     %s\n", msg.To.Hex())
	fmt.Fprintf(w, "value:  %s\n", msg.Value)
	fmt.Fprintf(w, "data:   %s\n", hexutil.Encode(msg.Data))
	return nil
}
