package catalog

import (
	"fmt"

	"github.com/zbmott/snafoo-challenge/internal/config"
	"github.com/zbmott/snafoo-challenge/internal/domain"
)

// New resolves the configured snack source identifier to a concrete client.
// Resolution happens once at startup; an absent or unknown identifier is a
// fatal ConfigurationError, never a per-request failure.
func New(cfg *config.Config) (domain.SnackSource, error) {
	switch cfg.SnackSource {
	case config.SourceAPI:
		if cfg.SnackAPIKey == "" {
			return nil, &ConfigurationError{Message: "SNACK_API_KEY is required when SNACK_SOURCE is \"api\""}
		}
		return NewAPISource(cfg.SnackAPIBase, cfg.SnackAPIKey), nil
	case config.SourceStatic:
		return NewStaticSource(), nil
	case "":
		return nil, &ConfigurationError{Message: "SNACK_SOURCE must be declared and name a known snack source"}
	default:
		return nil, &ConfigurationError{Message: fmt.Sprintf("unknown snack source %q", cfg.SnackSource)}
	}
}
