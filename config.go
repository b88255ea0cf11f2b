package memo

const (
	defaultMaxKeyDepth     = 32
	defaultWarmConcurrency = 4
)

// StoreConfig controls how a Store is constructed.
type StoreConfig struct {
	Driver Driver

	// InitialCapacity pre-sizes the memory driver's table.
	InitialCapacity int
}

func (c StoreConfig) withDefaults() StoreConfig {
	if c.Driver == "" {
		c.Driver = DriverMemory
	}
	if c.InitialCapacity < 0 {
		c.InitialCapacity = 0
	}
	return c
}

// Config controls how a Memo is constructed.
type Config struct {
	StoreConfig

	// Store overrides StoreConfig when set.
	Store Store

	// Observer receives an event after every memo operation.
	Observer Observer

	// KeyFunc builds the cache key from call arguments. Defaults to Key,
	// bounded by MaxKeyDepth.
	KeyFunc KeyFunc

	// MaxKeyDepth bounds nesting in the default key encoding.
	MaxKeyDepth int

	// WarmConcurrency bounds parallel computations started by Warm.
	WarmConcurrency int
}

func (c Config) withDefaults() Config {
	c.StoreConfig = c.StoreConfig.withDefaults()
	if c.MaxKeyDepth <= 0 {
		c.MaxKeyDepth = defaultMaxKeyDepth
	}
	if c.KeyFunc == nil {
		c.KeyFunc = keyFuncWithDepth(c.MaxKeyDepth)
	}
	if c.WarmConcurrency <= 0 {
		c.WarmConcurrency = defaultWarmConcurrency
	}
	return c
}
