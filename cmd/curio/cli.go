package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/curio-cms/curio/internal/config"
	"github.com/curio-cms/curio/internal/errors"
	"github.com/curio-cms/curio/internal/ops"
	"github.com/curio-cms/curio/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "curio",
		Usage:   "Curated content feeds, local-first",
		Version: Version,
		Commands: []*cli.Command{
			postCmd(db),
			pageCmd(db),
			orderCmd(db, cfg),
			feedCmd(db, cfg),
			serveCmd(db, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// postCmd groups post subcommands.
func postCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "post",
		Usage: "Manage posts",
		Subcommands: []*cli.Command{
			postAddCmd(db),
			postListCmd(db),
			postGetCmd(db),
			postDeleteCmd(db),
		},
	}
}

// postAddCmd creates the post add command.
func postAddCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Create a post (reads content from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Post title (required)"},
			&cli.StringFlag{Name: "author", Aliases: []string{"a"}, Usage: "Author handle"},
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Value: "publish", Usage: "publish|draft"},
			&cli.StringFlag{Name: "excerpt", Usage: "Short summary"},
			&cli.StringFlag{Name: "tags", Usage: "Comma-separated tags"},
			&cli.StringFlag{Name: "categories", Usage: "Comma-separated categories"},
		},
		Action: func(c *cli.Context) error {
			input := ops.CreatePostInput{
				Title:      c.String("title"),
				Author:     c.String("author"),
				Status:     c.String("status"),
				Categories: parseList(c.String("categories")),
				Tags:       parseList(c.String("tags")),
			}

			if excerpt := c.String("excerpt"); excerpt != "" {
				input.Excerpt = &excerpt
			}

			if stdinHasData() {
				content, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				input.Content = content
			}

			output, err := ops.CreatePost(c.Context, db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// postListCmd creates the post list command.
func postListCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List posts",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Aliases: []string{"q"}, Usage: "Substring match on title and content"},
			&cli.StringFlag{Name: "author", Aliases: []string{"a"}, Usage: "Filter by author"},
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "Filter by status"},
			&cli.StringFlag{Name: "tags", Usage: "Comma-separated tag filters"},
			&cli.StringFlag{Name: "categories", Usage: "Comma-separated category filters"},
			&cli.StringFlag{Name: "order-by", Value: "date", Usage: "date|title"},
			&cli.StringFlag{Name: "order", Value: "desc", Usage: "asc|desc"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 20, Usage: "Max results"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Usage: "Results to skip"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.ListPosts(c.Context, db, ops.ListPostsInput{
				Search:     c.String("search"),
				Author:     c.String("author"),
				Status:     c.String("status"),
				Tags:       parseList(c.String("tags")),
				Categories: parseList(c.String("categories")),
				OrderBy:    c.String("order-by"),
				Order:      c.String("order"),
				Limit:      c.Int("limit"),
				Offset:     c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// postGetCmd creates the post get command.
func postGetCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Fetch a post by ID",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id, err := parseIDArg(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.GetPost(c.Context, db, ops.GetPostInput{ID: id})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// postDeleteCmd creates the post delete command.
func postDeleteCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a post by ID",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id, err := parseIDArg(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.DeletePost(c.Context, db, ops.DeletePostInput{ID: id})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// pageCmd groups page subcommands.
func pageCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "page",
		Usage: "Manage pages",
		Subcommands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import a page document (.json, .yaml, or .yml)",
				ArgsUsage: "<path>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return outputError(errors.NewInvalidRequest("path argument is required"))
					}
					output, err := ops.ImportPage(c.Context, db, ops.ImportPageInput{Path: c.Args().First()})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "export",
				Usage:     "Export a page to <dir>/<slug>.json",
				ArgsUsage: "<ref>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Value: ".", Usage: "Destination directory"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return outputError(errors.NewInvalidRequest("page reference argument is required"))
					}
					output, err := ops.ExportPage(c.Context, db, ops.ExportPageInput{
						Ref: c.Args().First(),
						Dir: c.String("dir"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "list",
				Usage: "List pages",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 20, Usage: "Max results"},
					&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Usage: "Results to skip"},
				},
				Action: func(c *cli.Context) error {
					output, err := ops.ListPages(c.Context, db, ops.ListPagesInput{
						Limit:  c.Int("limit"),
						Offset: c.Int("offset"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "get",
				Usage:     "Fetch a page with its block tree",
				ArgsUsage: "<ref>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return outputError(errors.NewInvalidRequest("page reference argument is required"))
					}
					output, err := ops.GetPage(c.Context, db, ops.GetPageInput{Ref: c.Args().First()})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// orderCmd groups curated-order subcommands.
func orderCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "order",
		Usage: "Manage curated feed orders",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Show the saved curated order of a page's query block",
				ArgsUsage: "<page>",
				Flags:     []cli.Flag{queryFlag()},
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return outputError(errors.NewInvalidRequest("page reference argument is required"))
					}
					output, err := ops.GetOrder(c.Context, db, ops.GetOrderInput{
						PageRef: c.Args().First(),
						QueryID: c.String("query"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "set",
				Usage:     "Save a curated order (e.g. curio order set home 14,3,8)",
				ArgsUsage: "<page> <ids>",
				Flags:     []cli.Flag{queryFlag()},
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return outputError(errors.NewInvalidRequest("page reference and ID list arguments are required"))
					}
					ids, err := parseIDs(c.Args().Get(1))
					if err != nil {
						return outputError(err)
					}
					output, err := ops.SaveOrder(c.Context, db, ops.NewResolver(db, cfg), ops.SaveOrderInput{
						PageRef: c.Args().First(),
						QueryID: c.String("query"),
						IDs:     ids,
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "clear",
				Usage:     "Remove the curated order from a page's query block",
				ArgsUsage: "<page>",
				Flags:     []cli.Flag{queryFlag()},
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return outputError(errors.NewInvalidRequest("page reference argument is required"))
					}
					output, err := ops.ClearOrder(c.Context, db, ops.NewResolver(db, cfg), ops.ClearOrderInput{
						PageRef: c.Args().First(),
						QueryID: c.String("query"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			editCmd(db, cfg),
		},
	}
}

// feedCmd creates the feed command.
func feedCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "feed",
		Usage:     "Resolve a page's curated feed",
		ArgsUsage: "<page>",
		Flags:     []cli.Flag{queryFlag()},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("page reference argument is required"))
			}
			output, err := ops.ResolveFeed(c.Context, db, ops.NewResolver(db, cfg), ops.ResolveFeedInput{
				PageRef: c.Args().First(),
				QueryID: c.String("query"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8595, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(db, cfg, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// Helper functions

// queryFlag selects the query block within a page.
func queryFlag() cli.Flag {
	return &cli.StringFlag{Name: "query", Aliases: []string{"Q"}, Usage: "Query block identity (defaults to the page's first query block)"}
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if cErr, ok := err.(*errors.Error); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", cErr.Code, cErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// parseList splits a comma-separated string into a slice.
func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// parseIDs parses a comma-separated post ID list.
func parseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid post ID %q", part))
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, errors.NewInvalidRequest("at least one post ID is required")
	}
	return ids, nil
}

// parseIDArg parses the first positional argument as a post ID.
func parseIDArg(c *cli.Context) (int64, error) {
	if c.NArg() < 1 {
		return 0, errors.NewInvalidRequest("id argument is required")
	}
	return ops.ParsePostID(c.Args().First())
}
