package main

import (
	"fmt"

	"github.com/fwojciec/pricewatch"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	watches, err := deps.Watches.FindWatches(deps.Ctx, pricewatch.WatchFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricewatch.ErrorMessage(err))
		return err
	}

	if len(watches) == 0 {
		fmt.Fprintln(deps.Stdout, "No watches found. Use 'pricewatch add' to create one.")
		return nil
	}

	for _, w := range watches {
		last := "-"
		if w.LastPrice != nil {
			last = fmt.Sprintf("%.2f", *w.LastPrice)
		}
		fmt.Fprintf(deps.Stdout, "%s  %s=%s  %s  %s  %s\n",
			w.ID, w.Locator.Kind, w.Locator.Value, w.Currency, last, w.URL)
	}

	return nil
}
