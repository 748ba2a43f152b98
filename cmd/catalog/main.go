package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"ai-book/backend/internal/app"
	"ai-book/backend/internal/config"
	"ai-book/backend/internal/query"
	"ai-book/backend/internal/seed"
	"ai-book/backend/internal/storage/postgres"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "catalog",
		Usage: "Search and maintain the book catalog from the command line",
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Run a natural-language search against the configured storage",
				ArgsUsage: "<text>",
				Action:    searchCommand,
			},
			{
				Name:      "compile",
				Usage:     "Compile criteria JSON into a filter expression without calling the LLM",
				ArgsUsage: "<text>",
				Action:    compileCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "criteria",
						Aliases: []string{"c"},
						Usage:   "Criteria object as the model would return it",
						Value:   "{}",
					},
					&cli.StringFlag{
						Name:  "dialect",
						Usage: "Also render the SQL WHERE clause (postgres, sqlite)",
					},
				},
			},
			{
				Name:   "seed",
				Usage:  "Import books from a JSON file into the configured storage",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to a JSON array of books",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent inserts",
						Value: seed.DefaultWorkers,
					},
				},
			},
			{
				Name:   "migrate",
				Usage:  "Apply PostgreSQL schema migrations",
				Action: migrateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "database-url",
						Usage:   "PostgreSQL connection string",
						EnvVars: []string{"DATABASE_URL"},
					},
				},
			},
		},
	}
}

func searchCommand(c *cli.Context) error {
	text := c.Args().First()
	if text == "" {
		return errors.New("search text is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a, err := app.New(c.Context, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(c.Context, cfg.SearchTimeout)
	defer cancel()

	res, err := a.Search.Search(ctx, text)
	if err != nil {
		return err
	}
	return printJSON(c, res)
}

func compileCommand(c *cli.Context) error {
	var criteria query.Criteria
	if err := json.Unmarshal([]byte(c.String("criteria")), &criteria); err != nil {
		return fmt.Errorf("invalid criteria: %w", err)
	}
	expr := query.Compile(criteria, c.Args().First())
	fmt.Fprintln(c.App.Writer, expr.String())

	var dialect query.Dialect
	switch c.String("dialect") {
	case "":
		return nil
	case "postgres":
		dialect = query.Postgres
	case "sqlite":
		dialect = query.SQLite
	default:
		return fmt.Errorf("unknown dialect %q: must be postgres or sqlite", c.String("dialect"))
	}
	where, args := expr.SQL(dialect, 1)
	fmt.Fprintln(c.App.Writer, where)
	fmt.Fprintln(c.App.Writer, args...)
	return nil
}

func seedCommand(c *cli.Context) error {
	books, err := seed.LoadBooks(c.String("file"))
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.SeedFile = ""
	repo, err := app.OpenBooks(c.Context, cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	n, err := seed.Import(c.Context, repo, books, c.Int("workers"))
	fmt.Fprintf(c.App.Writer, "imported %d/%d books\n", n, len(books))
	return err
}

func migrateCommand(c *cli.Context) error {
	dsn := c.String("database-url")
	if dsn == "" {
		return errors.New("database-url (or DATABASE_URL) is required")
	}
	if err := postgres.Migrate(dsn); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "migrations applied")
	return nil
}

func printJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
