package app

import (
	"io"
	"log/slog"

	"github.com/specialistvlad/compflat/internal/comp"
	"github.com/specialistvlad/compflat/internal/hcl"
	"github.com/specialistvlad/compflat/internal/inmemorystore"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW         io.Writer
	logger       *slog.Logger
	config       *Config
	codec        *hcl.Codec
	internalizer *comp.Internalizer
	flattener    *comp.Flattener
}

// Option customizes the collaborators of an App.
type Option func(*options)

type options struct {
	fetcher  comp.Fetcher
	flatOpts []comp.Option
}

// WithFetcher replaces the afs-backed fetcher used to retrieve external
// documents.
func WithFetcher(f comp.Fetcher) Option {
	return func(o *options) { o.fetcher = f }
}

// WithFlattenerOptions passes options through to the flattener.
func WithFlattenerOptions(opts ...comp.Option) Option {
	return func(o *options) { o.flatOpts = append(o.flatOpts, opts...) }
}

// NewApp is the constructor for the main application. Results go to outW,
// logs to logW through the app's own isolated logger.
func NewApp(outW, logW io.Writer, config *Config, opts ...Option) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.fetcher == nil {
		o.fetcher = comp.NewAFSFetcher()
	}
	// A run fetches each external document once, however many definitions
	// point at it.
	fetcher := comp.NewCachingFetcher(o.fetcher, inmemorystore.New())

	codec := hcl.NewCodec()
	return &App{
		outW:         outW,
		logger:       logger,
		config:       config,
		codec:        codec,
		internalizer: comp.NewInternalizer(fetcher, codec),
		flattener:    comp.NewFlattener(o.flatOpts...),
	}
}
