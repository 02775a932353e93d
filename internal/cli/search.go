package cli

import (
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/distinct/internal/config"
	"github.com/jmylchreest/distinct/internal/generator"
	"github.com/jmylchreest/distinct/internal/seed"
)

// search is a resolved strategy with its generation options.
type search struct {
	descriptor generator.Descriptor
	opts       generator.Options
}

// newSearch resolves the configured strategy. Randomised strategies get a random
// source seeded from the configured mode, or fallback when none is set;
// inputPath feeds the content and filepath modes.
func newSearch(cfg *config.Config, logger hclog.Logger, inputPath string, fallback seed.Mode) (*search, error) {
	strategy, err := generator.ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	d, _ := generator.Lookup(strategy)

	opts := generator.Options{
		Skip:       cfg.Skip,
		NumSamples: cfg.NumSamples,
		Workers:    cfg.Workers,
		Logger:     logger.Named(string(strategy)),
		Progress: func(selected, total int) {
			logger.Trace("colour selected", "selected", selected, "total", total)
		},
	}

	if d.Randomised {
		seedCfg := cfg.SeedConfig(fallback)
		rng, value, err := seed.NewRand(inputPath, seedCfg)
		if err != nil {
			return nil, err
		}
		opts.Rand = rng
		logger.Info("seeded random source", "mode", seedCfg.Mode, "seed", value)
	}

	return &search{descriptor: d, opts: opts}, nil
}
