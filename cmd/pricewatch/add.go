package main

import (
	"fmt"

	"github.com/fwojciec/pricewatch"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	locator, err := locatorFrom(c.ID, c.Class)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricewatch.ErrorMessage(err))
		return err
	}

	currency, err := pricewatch.ParseCurrency(c.Currency)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricewatch.ErrorMessage(err))
		return err
	}

	watch := &pricewatch.Watch{
		URL:      c.URL,
		Locator:  locator,
		Title:    c.Title,
		Currency: currency,
	}
	if err := deps.Watches.CreateWatch(deps.Ctx, watch); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricewatch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added watch %s for %s\n", watch.ID, watch.URL)
	return nil
}
