package cache

import (
	"errors"
	"log/slog"

	"github.com/ropesnake/romcodec/format"
	"github.com/ropesnake/romcodec/internal/envelope"
	"github.com/ropesnake/romcodec/internal/options"
)

// RegistryOption configures a Registry.
type RegistryOption = options.Option[*Registry]

// WithLogger sets the logger used for load and save diagnostics.
// The default is slog.Default().
func WithLogger(logger *slog.Logger) RegistryOption {
	return options.New(func(r *Registry) error {
		if logger == nil {
			return errors.New("cache: logger must not be nil")
		}
		r.logger = logger

		return nil
	})
}

// WithSnapshotCompression sets the storage compression applied to whole
// snapshot files. Load and Save must use the same setting.
//
// The default is format.CompressionNone, which reads and writes plain snapshots.
func WithSnapshotCompression(compressionType format.CompressionType) RegistryOption {
	return options.New(func(r *Registry) error {
		codec, err := envelope.CreateCodec(compressionType)
		if err != nil {
			return err
		}
		r.compression = compressionType
		r.envelope = codec

		return nil
	})
}
