package cli

import (
	"github.com/roach88/itemstore/internal/record"
	"github.com/roach88/itemstore/internal/seed"
)

// openStore builds the command's store from the configured seed file and
// id strategy.
func (o *RootOptions) openStore() (*record.Store, error) {
	var initial []record.Record
	if o.Config.Seed != "" {
		recs, err := seed.Load(o.Config.Seed)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, ErrCodeSeed, "failed to load seed", err)
		}
		initial = recs
	}

	st, err := record.New(
		record.WithIDGenerator(o.Config.IDGenerator()),
		record.WithSeed(initial...),
	)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, ErrCodeSeed, "invalid seed", err)
	}

	o.logger().Debug("store ready",
		"seed", o.Config.Seed,
		"records", len(initial),
		"id_strategy", o.Config.IDStrategy,
	)
	return st, nil
}
