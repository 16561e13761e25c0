package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fwojciec/pricewatch/check"
	"github.com/fwojciec/pricewatch/crawl"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	checker := check.NewChecker(deps.Crawler, deps.Watches, deps.Checks,
		check.WithConcurrency(c.Concurrency),
		check.WithDomainLimiter(crawl.NewDomainLimiter(c.RPS)),
		check.WithContentHashes(deps.Hashes),
		check.WithLogger(deps.Logger),
	)

	if c.Once {
		return checker.RunOnce(deps.Ctx)
	}

	if err := checker.Start(c.Schedule); err != nil {
		fmt.Fprintf(deps.Stderr, "error: invalid --schedule %q\n", c.Schedule)
		return err
	}
	defer checker.Stop()

	fmt.Fprintf(deps.Stdout, "Checking watches on schedule %q. Press Ctrl+C to stop.\n", c.Schedule)

	ctx, stop := signal.NotifyContext(deps.Ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	return nil
}
