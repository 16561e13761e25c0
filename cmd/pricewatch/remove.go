package main

import (
	"fmt"

	"github.com/fwojciec/pricewatch"
)

// Run executes the remove command.
func (c *RemoveCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm removal\n")
		return pricewatch.Errorf(pricewatch.EINVALID, "use --force to confirm removal")
	}

	if err := deps.Watches.DeleteWatch(deps.Ctx, c.ID); err != nil {
		if pricewatch.ErrorCode(err) == pricewatch.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: watch %q not found. Use 'pricewatch list' to see watches.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pricewatch.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Removed watch %s\n", c.ID)
	return nil
}
