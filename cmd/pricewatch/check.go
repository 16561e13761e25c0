package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/pricewatch"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
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

	outcome, err := deps.Crawler.Crawl(deps.Ctx, pricewatch.Request{
		URL:      c.URL,
		Locator:  locator,
		Title:    c.Title,
		Currency: currency,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricewatch.ErrorMessage(err))
		return err
	}

	out, err := json.Marshal(outcome)
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}
