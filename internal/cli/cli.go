package cli

import (
	"context"
	"fmt"

	"github.com/retroflect/retroflect/internal/app"
)

// CLI represents the CLI application context
type CLI struct {
	App *app.App
	ctx context.Context
}

// NewCLI initializes the CLI with the full application container: config,
// identity, local store and, when configured, relay replication.
func NewCLI(ctx context.Context, opts ...app.Option) (*CLI, error) {
	application, err := app.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return &CLI{App: application, ctx: ctx}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	return c.App.Close()
}
