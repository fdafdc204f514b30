// Command segpool-inspect is a small demo CLI that drives a single
// in-process Pool through a scripted sequence of operations and prints
// its segment list, colored by state. It exists to exercise the
// library end to end from a terminal.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/segpool/segpool"
)

func main() {
	app := &cli.App{
		Name:  "segpool-inspect",
		Usage: "open a pool and run a scripted sequence of allocate/free/inspect operations",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "size", Value: 1 << 20, Usage: "pool size in bytes"},
			&cli.StringFlag{Name: "policy", Value: "firstfit", Usage: "firstfit or bestfit"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	policy := segpool.FirstFit
	if strings.EqualFold(c.String("policy"), "bestfit") {
		policy = segpool.BestFit
	}

	lib, err := segpool.NewLibrary()
	if err != nil {
		return fmt.Errorf("new library: %w", err)
	}

	pool, id, err := lib.OpenPool(c.Uint64("size"), policy)
	if err != nil {
		return fmt.Errorf("open pool: %w", err)
	}

	defer func() {
		if err := lib.ClosePool(id); err != nil {
			log.Printf("close pool: %v", err)
			return
		}

		if err := lib.Shutdown(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("opened pool: size=%s policy=%s", humanize.Bytes(c.Uint64("size")), policy)

	handles := map[string]segpool.Handle{}

	for _, op := range c.Args().Slice() {
		name, arg, _ := strings.Cut(op, ":")

		switch name {
		case "alloc":
			size, err := strconv.ParseUint(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("alloc: %w", err)
			}

			h, err := pool.Allocate(size)
			if err != nil {
				return fmt.Errorf("alloc %d: %w", size, err)
			}

			handles[arg] = h
			log.Printf("allocated %d bytes", size)
		case "free":
			h, ok := handles[arg]
			if !ok {
				return fmt.Errorf("free: no tracked allocation named %q", arg)
			}

			if err := pool.Free(h); err != nil {
				return fmt.Errorf("free %s: %w", arg, err)
			}

			log.Printf("freed %s", arg)
		case "inspect":
			printSegments(pool)
		default:
			return fmt.Errorf("unknown op %q", name)
		}
	}

	return nil
}

func printSegments(pool *segpool.Pool) {
	allocated := color.New(color.FgYellow)
	free := color.New(color.FgGreen)

	for _, seg := range pool.Inspect() {
		line := allocated
		if seg.State == segpool.Free {
			line = free
		}

		line.Printf("  %10d..%-10d %10s  %s\n", seg.Offset, seg.Offset+seg.Size, humanize.Bytes(seg.Size), seg.State)
	}
}
