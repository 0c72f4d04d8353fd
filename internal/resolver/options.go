package resolver

type options struct {
	cache        Store[string]
	processed    Store[inference]
	synchronized bool
}

// Option configures a resolver.
type Option func(*options)

// WithCache injects the store used as the resolution cache.
func WithCache(cache Store[string]) Option {
	return func(o *options) {
		o.cache = cache
	}
}

// WithSynchronized makes the default cache and processed set safe for use
// from multiple goroutines. Stores injected with WithCache are used as-is.
func WithSynchronized() Option {
	return func(o *options) {
		o.synchronized = true
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		if o.synchronized {
			o.cache = NewSyncStore[string]()
		} else {
			o.cache = NewStore[string]()
		}
	}
	if o.processed == nil {
		if o.synchronized {
			o.processed = NewSyncStore[inference]()
		} else {
			o.processed = NewStore[inference]()
		}
	}
	return o
}
