package studio

import (
	"github.com/sirupsen/logrus"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/api"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/config"
)

type Runner interface {
	Start(openBrowser bool) error
}

// New builds the dashboard server against the configured backend.
func New(cfg *config.Config, log *logrus.Logger, port int) (Runner, error) {
	client, err := api.NewFromConfig(cfg, log)
	if err != nil {
		return nil, err
	}
	log.WithField("backend", client.BaseURL()).Info("studio backend configured")
	return NewServer(cfg, client, log, port), nil
}
