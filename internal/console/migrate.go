package console

import (
	"context"
	"fmt"
	"io"
)

// Migrator applies pending schema migrations.
type Migrator interface {
	Migrate(ctx context.Context) error
}

// MigrateCommand applies schema migrations to the configured database.
type MigrateCommand struct {
	db  Migrator
	out io.Writer
}

// NewMigrateCommand creates a MigrateCommand.
func NewMigrateCommand(db Migrator, out io.Writer) *MigrateCommand {
	return &MigrateCommand{db: db, out: out}
}

func (c *MigrateCommand) Name() string        { return "migrate" }
func (c *MigrateCommand) Description() string { return "Applies pending database migrations" }

func (c *MigrateCommand) Run(ctx context.Context, _ []string) error {
	if err := c.db.Migrate(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Migrations applied")
	return nil
}
