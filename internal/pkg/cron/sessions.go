package cron

import (
	"context"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/auth"
)

// SessionPurgeInterval is how often stale refresh tokens are deleted.
const SessionPurgeInterval = 6 * time.Hour

// SessionPurgeTask deletes expired and revoked refresh tokens.
func SessionPurgeTask(authService auth.AuthService) Task {
	return Task{
		Name:     "purge-sessions",
		Interval: SessionPurgeInterval,
		Timeout:  time.Minute,
		Run: func(ctx context.Context) error {
			_, err := authService.PurgeSessions(ctx)
			return err
		},
	}
}
