package cli

import (
	"alcyxob/plan-admin/internal/catalog"
	"alcyxob/plan-admin/internal/config"
	"alcyxob/plan-admin/internal/session"
	"fmt"
)

// backend is what a command needs to reach the catalog service.
type backend struct {
	cfg     config.Config
	session session.Session
	client  *catalog.Client
}

// newBackend loads configuration and the session token.
func newBackend(opts *options) (*backend, error) {
	cfg, err := config.LoadConfig(opts.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	sess, err := session.FromToken(cfg.Client.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", catalog.ErrAuth, err)
	}
	return &backend{
		cfg:     cfg,
		session: sess,
		client:  catalog.NewClient(cfg.Client.BaseURL, catalog.WithTimeout(cfg.Client.Timeout)),
	}, nil
}
