package httpadapter

import (
	"context"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

// ReadinessGroup is ready when every member is; the first error wins.
type ReadinessGroup []sharedobs.ReadinessChecker

func (g ReadinessGroup) CheckReadiness(ctx context.Context) error {
	for _, c := range g {
		if c == nil {
			continue
		}
		if err := c.CheckReadiness(ctx); err != nil {
			return err
		}
	}
	return nil
}

// AlwaysReady reports ready unconditionally. Reference tables are validated
// before the server starts, so an API-only process is ready once listening.
type AlwaysReady struct{}

func (AlwaysReady) CheckReadiness(context.Context) error { return nil }
