package compress

import (
	"errors"

	"github.com/ropesnake/romcodec/cache"
	"github.com/ropesnake/romcodec/internal/options"
)

type codecConfig struct {
	registry *cache.Registry
}

// CodecOption configures CreateCodec.
type CodecOption = options.Option[*codecConfig]

// WithRegistry makes CreateCodec return a CachedCodec backed by reg.
func WithRegistry(reg *cache.Registry) CodecOption {
	return options.New(func(cfg *codecConfig) error {
		if reg == nil {
			return errors.New("compress: registry must not be nil")
		}
		cfg.registry = reg

		return nil
	})
}
