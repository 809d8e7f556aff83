package crontasks

import (
	"context"

	"github.com/MKhiriev/go-server-config/internal/logger"
)

// Heartbeat logs a single line through the logger attached to ctx.
// Useful to confirm that the cron subsystem is firing.
func Heartbeat(ctx context.Context) error {
	logger.FromContext(ctx).Info().Msg("cron heartbeat")
	return nil
}

// Registry returns the handlers available to schedule files by name.
func Registry() map[string]Handler {
	return map[string]Handler{
		"heartbeat": Heartbeat,
	}
}
