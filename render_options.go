package helptext

import "go.uber.org/zap"

// DefaultWidth is the wrap width used when none is configured.
const DefaultWidth = 72

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	width  int
	logger *zap.Logger
}

func newRenderConfig(opts []RenderOption) renderConfig {
	cfg := renderConfig{width: DefaultWidth}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	return cfg
}

// WithWidth sets the wrap width in columns. A width of zero or less
// disables wrapping.
func WithWidth(width int) RenderOption {
	return func(cfg *renderConfig) {
		cfg.width = width
	}
}

// WithLogger sets the logger receiving debug traces of the rendering.
func WithLogger(logger *zap.Logger) RenderOption {
	return func(cfg *renderConfig) {
		cfg.logger = logger
	}
}
