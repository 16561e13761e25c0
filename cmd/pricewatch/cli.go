package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/pricewatch"
	"github.com/fwojciec/pricewatch/check"
	"github.com/fwojciec/pricewatch/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	DB      *sqlite.DB
	Watches pricewatch.WatchService
	Checks  pricewatch.CheckService
	Crawler pricewatch.Crawler
	Hashes  *check.HashingFetcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Check  CheckCmd  `cmd:"" help:"Crawl a page once and print the price outcome"`
	Add    AddCmd    `cmd:"" help:"Add a watch for a product price"`
	List   ListCmd   `cmd:"" help:"List all watches"`
	Remove RemoveCmd `cmd:"" help:"Remove a watch and its check history"`
	Run    RunCmd    `cmd:"" help:"Run scheduled checks for all watches"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	URL      string `arg:"" help:"Product page URL"`
	ID       string `help:"Locate the price element by id attribute"`
	Class    string `help:"Locate the price element by class name"`
	Title    string `short:"t" help:"Product title used to disambiguate multiple matches"`
	Currency string `short:"c" default:"usd" help:"Page currency (usd, yen)"`
	Render   bool   `short:"r" help:"Render the page with headless Chrome"`
	Verbose  bool   `short:"v" help:"Log pipeline stages to stderr"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	URL      string `arg:"" help:"Product page URL"`
	ID       string `help:"Locate the price element by id attribute"`
	Class    string `help:"Locate the price element by class name"`
	Title    string `short:"t" help:"Product title used to disambiguate multiple matches"`
	Currency string `short:"c" default:"usd" help:"Page currency (usd, yen)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// RemoveCmd is the "remove" subcommand.
type RemoveCmd struct {
	ID    string `arg:"" help:"Watch ID"`
	Force bool   `help:"Confirm removal"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Schedule    string  `default:"*/30 * * * *" env:"PRICEWATCH_SCHEDULE" help:"Cron schedule for checks"`
	Concurrency int     `default:"4" env:"PRICEWATCH_CONCURRENCY" help:"Watches checked in parallel"`
	RPS         float64 `default:"1" env:"PRICEWATCH_RPS" help:"Max requests per second per domain"`
	Render      bool    `short:"r" help:"Render pages with headless Chrome"`
	Once        bool    `help:"Check every watch once and exit"`
}

// locatorFrom builds a Locator from the --id/--class flag pair. Exactly one
// of the two must be set.
func locatorFrom(id, class string) (pricewatch.Locator, error) {
	switch {
	case id != "" && class != "":
		return pricewatch.Locator{}, pricewatch.Errorf(pricewatch.EINVALID, "use either --id or --class, not both")
	case id != "":
		return pricewatch.Locator{Kind: pricewatch.LocatorID, Value: id}, nil
	case class != "":
		return pricewatch.Locator{Kind: pricewatch.LocatorClass, Value: class}, nil
	}
	return pricewatch.Locator{}, pricewatch.Errorf(pricewatch.EINVALID, "either --id or --class is required")
}
