package skiplist

// config collects construction knobs gathered from Options.
type config struct {
	height int // fixed construction height; 0 means auto-computed
	coin   Coin
}

// Option customizes a list at construction time.
type Option func(*config)

// WithHeight fixes the construction height of the list. Heights below 1
// silently clamp to 1. The height cap still adapts as the element count
// crosses powers of two; a fixed construction height seeds the structure,
// it does not freeze it.
func WithHeight(height int) Option {
	return func(c *config) {
		if height < 1 {
			height = 1
		}
		c.height = height
	}
}

// WithCoin sets the randomness source consumed by height draws and
// probabilistic tower growth. A seeded coin makes the list fully
// deterministic. Nil coins are ignored.
func WithCoin(coin Coin) Option {
	return func(c *config) {
		if coin != nil {
			c.coin = coin
		}
	}
}
