// Package aggregator quotes trades across every enabled platform.
//
// A route executes through a single router, so pairs are partitioned by
// platform and each partition is searched on its own. The results are then
// ranked together.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/michaelpento.lv/dexroute/config"
	"github.com/michaelpento.lv/dexroute/dex"
	"github.com/michaelpento.lv/dexroute/dex/uniswap"
	"github.com/michaelpento.lv/dexroute/types"
	"github.com/michaelpento.lv/dexroute/utils/math"
	"github.com/michaelpento.lv/dexroute/utils/metrics"
)

var ErrRateLimited = errors.New("quote rate limit exceeded")

type Aggregator struct {
	cfg       *config.Config
	platforms []dex.Platform
	slippage  *math.Percent
	logger    *zap.Logger
	metrics   *metrics.RoutingMetrics
	limiter   *rate.Limiter
	cache     *lru.Cache
}

// New creates an aggregator from cfg. m may be nil.
func New(cfg *config.Config, logger *zap.Logger, m *metrics.RoutingMetrics) (*Aggregator, error) {
	if err := cfg.ValidateConfig(); err != nil {
		return nil, err
	}
	platforms, err := cfg.EnabledPlatforms()
	if err != nil {
		return nil, err
	}

	a := &Aggregator{
		cfg:       cfg,
		platforms: platforms,
		slippage:  math.NewPercentFromBasisPoints(cfg.Routing.DefaultSlippageBps),
		logger:    logger,
		metrics:   m,
		limiter:   rate.NewLimiter(rate.Limit(cfg.Aggregator.RateLimit.RequestsPerSecond), cfg.Aggregator.RateLimit.BurstSize),
	}

	if cfg.Aggregator.CacheSize > 0 {
		a.cache, err = lru.New(cfg.Aggregator.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create quote cache: %w", err)
		}
	}

	return a, nil
}

// Platforms returns the enabled platforms in search order.
func (a *Aggregator) Platforms() []dex.Platform {
	return slices.Clone(a.platforms)
}

// BestTradesExactIn returns the best trades spending amountIn for
// currencyOut across all enabled platforms, best first. A nil slippage
// uses the configured default, a negative one fails with
// dex.ErrSlippageTolerance.
func (a *Aggregator) BestTradesExactIn(ctx context.Context, pairs []*uniswap.Pair, amountIn *types.CurrencyAmount, currencyOut types.Currency, slippage *math.Percent) ([]*uniswap.Trade, error) {
	slippage, err := a.resolveSlippage(slippage)
	if err != nil {
		return nil, err
	}
	req := &request{
		tradeType: dex.ExactInput,
		amount:    amountIn,
		other:     currencyOut,
		slippage:  slippage,
		hops:      a.hopOptions(),
		pairs:     pairs,
	}
	return a.quote(ctx, req, func(platformPairs []*uniswap.Pair) ([]*uniswap.Trade, error) {
		return uniswap.ComputeTradesExactIn(uniswap.ComputeTradesExactInParams{
			Pairs:            platformPairs,
			CurrencyAmountIn: amountIn,
			CurrencyOut:      currencyOut,
			MaxHops:          &req.hops,
			MaximumSlippage:  req.slippage,
		})
	})
}

// BestTradesExactOut returns the cheapest trades buying amountOut with
// currencyIn across all enabled platforms, best first.
func (a *Aggregator) BestTradesExactOut(ctx context.Context, pairs []*uniswap.Pair, currencyIn types.Currency, amountOut *types.CurrencyAmount, slippage *math.Percent) ([]*uniswap.Trade, error) {
	slippage, err := a.resolveSlippage(slippage)
	if err != nil {
		return nil, err
	}
	req := &request{
		tradeType: dex.ExactOutput,
		amount:    amountOut,
		other:     currencyIn,
		slippage:  slippage,
		hops:      a.hopOptions(),
		pairs:     pairs,
	}
	return a.quote(ctx, req, func(platformPairs []*uniswap.Pair) ([]*uniswap.Trade, error) {
		return uniswap.ComputeTradesExactOut(uniswap.ComputeTradesExactOutParams{
			Pairs:             platformPairs,
			CurrencyIn:        currencyIn,
			CurrencyAmountOut: amountOut,
			MaxHops:           &req.hops,
			MaximumSlippage:   req.slippage,
		})
	})
}

func (a *Aggregator) resolveSlippage(slippage *math.Percent) (*math.Percent, error) {
	if slippage == nil {
		return a.slippage, nil
	}
	return dex.ValidateSlippage(slippage)
}

func (a *Aggregator) hopOptions() uniswap.HopOptions {
	return uniswap.HopOptions{MaxHops: a.cfg.Routing.MaxHops, MaxNumResults: a.cfg.Routing.MaxResults}
}

type searchFunc func(pairs []*uniswap.Pair) ([]*uniswap.Trade, error)

type searchResult struct {
	trades []*uniswap.Trade
	err    error
}

func (a *Aggregator) quote(ctx context.Context, req *request, search searchFunc) ([]*uniswap.Trade, error) {
	label := req.tradeType.String()
	a.record(func(m *metrics.RoutingMetrics) { m.Searches.WithLabelValues(label).Inc() })

	trades, err := a.doQuote(ctx, req, search)
	if err != nil {
		a.record(func(m *metrics.RoutingMetrics) { m.QuoteErrors.WithLabelValues(label).Inc() })
		a.logger.Warn("Quote failed",
			zap.String("trade_type", label),
			zap.String("amount", req.amount.String()),
			zap.Error(err))
		return nil, err
	}

	a.record(func(m *metrics.RoutingMetrics) { m.TradesFound.WithLabelValues(label).Add(float64(len(trades))) })
	return trades, nil
}

func (a *Aggregator) doQuote(ctx context.Context, req *request, search searchFunc) ([]*uniswap.Trade, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Aggregator.QuoteTimeout)
	defer cancel()

	if err := a.wait(ctx); err != nil {
		return nil, err
	}

	label := req.tradeType.String()
	key := req.fingerprint()
	if a.cache != nil {
		if cached, ok := a.cache.Get(key); ok {
			a.record(func(m *metrics.RoutingMetrics) { m.CacheHits.WithLabelValues(label).Inc() })
			a.logger.Debug("Quote served from cache", zap.Uint64("key", key))
			return slices.Clone(cached.([]*uniswap.Trade)), nil
		}
		a.record(func(m *metrics.RoutingMetrics) { m.CacheMisses.WithLabelValues(label).Inc() })
	}

	start := time.Now()
	trades, err := a.searchPlatforms(ctx, req, search)
	a.record(func(m *metrics.RoutingMetrics) {
		m.SearchLatency.WithLabelValues(label).Observe(time.Since(start).Seconds())
	})
	if err != nil {
		return nil, err
	}

	a.logger.Debug("Quote computed",
		zap.String("trade_type", label),
		zap.Int("pairs", len(req.pairs)),
		zap.Int("trades", len(trades)),
		zap.Duration("elapsed", time.Since(start)))

	if a.cache != nil {
		a.cache.Add(key, slices.Clone(trades))
	}
	return trades, nil
}

func (a *Aggregator) wait(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, a.cfg.Aggregator.RateLimit.WaitTimeout)
	defer cancel()

	if err := a.limiter.Wait(waitCtx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return nil
}

// searchPlatforms runs one search per platform concurrently and merges the
// results. The context bounds how long the caller waits.
func (a *Aggregator) searchPlatforms(ctx context.Context, req *request, search searchFunc) ([]*uniswap.Trade, error) {
	if len(req.pairs) == 0 {
		return nil, uniswap.ErrPairs
	}
	partitions := a.partition(req.pairs, req.amount.Currency().ChainID())

	results := make([]searchResult, len(partitions))
	var wg sync.WaitGroup
	for i, pairs := range partitions {
		if len(pairs) == 0 {
			continue
		}
		wg.Add(1)
		go func(i int, pairs []*uniswap.Pair) {
			defer wg.Done()
			trades, err := search(pairs)
			results[i] = searchResult{trades: trades, err: err}
		}(i, pairs)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("quote aborted: %w", ctx.Err())
	case <-done:
	}

	var trades []*uniswap.Trade
	for i, result := range results {
		if result.err != nil {
			return nil, fmt.Errorf("%s: %w", a.platforms[i], result.err)
		}
		trades = append(trades, result.trades...)
	}

	dex.SortTrades(trades)
	if trades == nil {
		trades = []*uniswap.Trade{}
	}
	if limit := a.cfg.Routing.MaxResults; limit > 0 && len(trades) > limit {
		trades = trades[:limit]
	}
	return trades, nil
}

// partition groups pairs by enabled platform, in platform order. Pairs of
// disabled platforms or other chains are dropped.
func (a *Aggregator) partition(pairs []*uniswap.Pair, chainID types.ChainID) [][]*uniswap.Pair {
	partitions := make([][]*uniswap.Pair, len(a.platforms))
	dropped := 0
	for _, pair := range pairs {
		i := slices.Index(a.platforms, pair.Platform())
		if i < 0 || pair.ChainID() != chainID {
			dropped++
			continue
		}
		partitions[i] = append(partitions[i], pair)
	}
	if dropped > 0 {
		a.logger.Debug("Ignoring pairs outside enabled platforms", zap.Int("dropped", dropped))
	}
	return partitions
}

func (a *Aggregator) record(f func(m *metrics.RoutingMetrics)) {
	if a.metrics != nil {
		f(a.metrics)
	}
}
