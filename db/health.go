package db

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const defaultPingTimeout = 2 * time.Second

// Ping checks that the database answers within timeout. A zero timeout
// uses the default.
func Ping(ctx context.Context, timeout time.Duration) error {
	if DB == nil {
		return errors.New("database not connected")
	}

	if timeout == 0 {
		timeout = defaultPingTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	sqlDB, err := DB.DB()

	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}
