package memo

// Option mutates Config when constructing a Memo or a Store.
type Option func(Config) Config

// WithDriver selects the result table driver.
func WithDriver(driver Driver) Option {
	return func(cfg Config) Config {
		cfg.Driver = driver
		return cfg
	}
}

// WithInitialCapacity pre-sizes the memory driver's table.
func WithInitialCapacity(n int) Option {
	return func(cfg Config) Config {
		cfg.InitialCapacity = n
		return cfg
	}
}

// WithStore uses store directly instead of building one from the driver.
func WithStore(store Store) Option {
	return func(cfg Config) Config {
		cfg.Store = store
		return cfg
	}
}

// WithObserver attaches an observer to receive operation events.
func WithObserver(o Observer) Option {
	return func(cfg Config) Config {
		cfg.Observer = o
		return cfg
	}
}

// WithKeyFunc replaces the default argument key encoding.
func WithKeyFunc(fn KeyFunc) Option {
	return func(cfg Config) Config {
		cfg.KeyFunc = fn
		return cfg
	}
}

// WithMaxKeyDepth bounds nesting accepted by the default key encoding.
func WithMaxKeyDepth(depth int) Option {
	return func(cfg Config) Config {
		cfg.MaxKeyDepth = depth
		return cfg
	}
}

// WithWarmConcurrency bounds how many computations Warm runs at once.
func WithWarmConcurrency(n int) Option {
	return func(cfg Config) Config {
		cfg.WarmConcurrency = n
		return cfg
	}
}

func buildConfig(opts []Option) Config {
	var cfg Config
	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}
	return cfg.withDefaults()
}
