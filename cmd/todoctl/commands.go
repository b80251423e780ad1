// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/taibuivan/todo/internal/platform/constants"
)

const commandTimeout = 5 * time.Minute

// blacklistAdmin is the maintenance surface of the authenticator.
type blacklistAdmin interface {
	Sweep(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// openFunc opens the blacklist and returns a function releasing it.
type openFunc func(ctx context.Context) (blacklistAdmin, func() error, error)

func newApp(out io.Writer, open openFunc) *cli.App {
	return &cli.App{
		Name:    "todoctl",
		Usage:   "Maintenance commands for the todo API",
		Version: constants.AppVersion,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print results as JSON",
			},
		},
		Commands: []*cli.Command{
			blacklistCommand(open),
		},
	}
}

func blacklistCommand(open openFunc) *cli.Command {
	return &cli.Command{
		Name:  "blacklist",
		Usage: "Token blacklist maintenance",
		Subcommands: []*cli.Command{
			{
				Name:  "sweep",
				Usage: "Remove expired entries and print how many were removed",
				Action: withBlacklist(open, func(c *cli.Context, admin blacklistAdmin) error {
					removed, err := admin.Sweep(c.Context)
					if err != nil {
						return fmt.Errorf("sweep failed: %w", err)
					}
					return report(c, "removed", removed)
				}),
			},
			{
				Name:  "count",
				Usage: "Print the number of stored entries",
				Action: withBlacklist(open, func(c *cli.Context, admin blacklistAdmin) error {
					count, err := admin.Count(c.Context)
					if err != nil {
						return fmt.Errorf("count failed: %w", err)
					}
					return report(c, "count", count)
				}),
			},
		},
	}
}

// withBlacklist opens the backend for the duration of one action.
func withBlacklist(open openFunc, action func(*cli.Context, blacklistAdmin) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		ctx, cancel := context.WithTimeout(c.Context, commandTimeout)
		defer cancel()
		c.Context = ctx

		admin, closeFn, err := open(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = closeFn() }()

		return action(c, admin)
	}
}

func report(c *cli.Context, key string, value int64) error {
	if c.Bool("json") {
		return json.NewEncoder(c.App.Writer).Encode(map[string]int64{key: value})
	}
	_, err := fmt.Fprintf(c.App.Writer, "%s: %d\n", key, value)
	return err
}
