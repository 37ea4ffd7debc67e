package embedq

import (
	"log/slog"

	"github.com/hupe1980/embedq/blobstore"
)

type options struct {
	logger *Logger
	store  blobstore.BlobStore
}

// Option configures pipeline behavior.
type Option func(*options)

// WithLogger configures structured logging for the pipeline stages.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithStore configures a blob store for resolving the input matrix.
// Config.Input is then interpreted as a blob name within the store
// instead of a local file path. Use this to pull matrices straight from
// S3 or MinIO.
func WithStore(store blobstore.BlobStore) Option {
	return func(o *options) {
		o.store = store
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger: NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
