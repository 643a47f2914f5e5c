package log

// Option rewrites a logger configuration. Options are applied in order by
// [Make], [Logger.Wrap], and [Config], so a later option overrides an
// earlier one. A nil Option is skipped.
type Option func(config) config

func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	return cfg
}
