package main

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/urfave/cli/v2"

	"github.com/curio-cms/curio/internal/config"
	"github.com/curio-cms/curio/internal/editor"
	"github.com/curio-cms/curio/internal/errors"
	"github.com/curio-cms/curio/internal/ops"
)

var editCommands = []string{"list", "move", "top", "bottom", "save", "quit", "help"}

// editCmd creates the interactive order editor.
func editCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Reorder a feed interactively",
		ArgsUsage: "<page>",
		Flags:     []cli.Flag{queryFlag()},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("page reference argument is required"))
			}
			if err := runEditor(c.Context, db, cfg, c.Args().First(), c.String("query")); err != nil {
				return outputError(err)
			}
			return nil
		},
	}
}

// editSession holds one interactive editing run: the reorder surface
// over the loaded candidates plus the save controller that persists the
// result.
type editSession struct {
	surface *editor.Surface
	saver   *editor.SaveController
	dirty   bool
}

// runEditor drives the line-based reorder loop.
func runEditor(ctx context.Context, db *sql.DB, cfg *config.Config, pageRef, queryID string) error {
	candidates, err := ops.ListCandidates(ctx, db, ops.ListCandidatesInput{
		PageRef: pageRef,
		QueryID: queryID,
		Cap:     cfg.CandidateMaxItems,
	})
	if err != nil {
		return err
	}
	if len(candidates.Candidates) == 0 {
		fmt.Println("No candidate posts for this query block.")
		return nil
	}

	resolver := ops.NewResolver(db, cfg)
	session := &editSession{}
	session.surface = editor.NewSurface(candidates.Candidates, nil, func([]int64) {
		session.dirty = true
	})
	session.saver = editor.NewSaveController(func(ctx context.Context, ids []int64) error {
		_, err := ops.SaveOrder(ctx, db, resolver, ops.SaveOrderInput{
			PageRef: pageRef,
			QueryID: queryID,
			IDs:     ids,
		})
		return err
	}, func() {
		session.dirty = false
	})

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) (out []string) {
		for _, cmd := range editCommands {
			if strings.HasPrefix(cmd, strings.ToLower(prefix)) {
				out = append(out, cmd)
			}
		}
		return
	})

	fmt.Printf("Editing feed order for %s (%d candidates). Type \"help\" for commands.\n", pageRef, len(candidates.Candidates))
	printItems(session.surface)

	for {
		input, err := line.Prompt("order> ")
		if err != nil {
			// Ctrl-C or EOF ends the session without saving.
			fmt.Println()
			return nil
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		fields := strings.Fields(input)
		switch fields[0] {
		case "list", "l":
			printItems(session.surface)

		case "move", "m":
			if len(fields) != 3 {
				fmt.Println("usage: move <from> <to>")
				continue
			}
			if err := moveItem(session.surface, fields[1], fields[2]); err != nil {
				fmt.Println(err)
				continue
			}
			printItems(session.surface)

		case "top", "t":
			if len(fields) != 2 {
				fmt.Println("usage: top <position>")
				continue
			}
			if err := moveItem(session.surface, fields[1], "1"); err != nil {
				fmt.Println(err)
				continue
			}
			printItems(session.surface)

		case "bottom", "b":
			if len(fields) != 2 {
				fmt.Println("usage: bottom <position>")
				continue
			}
			last := strconv.Itoa(len(session.surface.Items()))
			if err := moveItem(session.surface, fields[1], last); err != nil {
				fmt.Println(err)
				continue
			}
			printItems(session.surface)

		case "save", "s":
			if err := session.saver.Save(context.Background(), session.surface.OrderedIDs()); err != nil {
				fmt.Printf("save failed: %v\n", err)
				continue
			}
			fmt.Println("Order saved.")

		case "quit", "q", "exit":
			if session.dirty {
				confirm, err := line.Prompt("Unsaved changes. Quit anyway? [y/N] ")
				if err != nil || !strings.HasPrefix(strings.ToLower(strings.TrimSpace(confirm)), "y") {
					continue
				}
			}
			return nil

		case "help", "h", "?":
			fmt.Println(`Commands:
  list               show the current order
  move <from> <to>   move the item at position <from> to position <to>
  top <position>     move an item to the front
  bottom <position>  move an item to the back
  save               persist the current order
  quit               leave the editor`)

		default:
			fmt.Printf("unknown command %q (try \"help\")\n", fields[0])
		}
	}
}

// moveItem relocates one list entry using 1-based positions.
func moveItem(s *editor.Surface, fromArg, toArg string) error {
	n := len(s.Items())
	from, err := parsePosition(fromArg, n)
	if err != nil {
		return err
	}
	to, err := parsePosition(toArg, n)
	if err != nil {
		return err
	}

	s.DragStart(from)
	s.Drop(to)
	return nil
}

// parsePosition converts a 1-based position argument to a slice index.
func parsePosition(arg string, n int) (int, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil || pos < 1 || pos > n {
		return 0, fmt.Errorf("position must be between 1 and %d", n)
	}
	return pos - 1, nil
}

// printItems lists the surface's current order with 1-based positions.
func printItems(s *editor.Surface) {
	for i, item := range s.Items() {
		fmt.Printf("  %2d. [%d] %s\n", i+1, item.ID, item.Title)
	}
}
