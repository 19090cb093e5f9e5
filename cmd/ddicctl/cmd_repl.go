package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/chzyer/readline"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"ddic"
	"ddic/internal/ddic/catalog"
	"ddic/internal/ddic/discovery"
	"ddic/internal/ddic/pool"
	"ddic/internal/ddic/trackers"
)

func newReplCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive line-edited session driving Construct against the demo catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl()
		},
	}
	return cmd
}

func runRepl() error {
	opts := ddic.Options{}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Require exact type match on queries?").
				Value(&opts.ExactTypeMatch),
			huh.NewConfirm().
				Title("Require pool results usable as a receiver?").
				Value(&opts.OnlyReceivers),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("repl: %w", err)
	}

	cat := buildDemoCatalog()
	p := pool.New()
	tr := trackers.New()
	opts.Trackers = tr

	rl, err := readline.New("ddic> ")
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	defer rl.Close()

	fmt.Println("commands: construct <type> | producers <type> | pick | quit")
	for {
		line, err := rl.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("repl: %w", err)
		}

		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return nil
		case "construct":
			if len(fields) != 2 {
				fmt.Println("usage: construct <type>")
				continue
			}
			runConstructOnce(cat, p, opts, fields[1])
		case "producers":
			if len(fields) != 2 {
				fmt.Println("usage: producers <type>")
				continue
			}
			runProducers(cat, tr, fields[1])
		case "pick":
			runPick(cat, p, opts)
		default:
			fmt.Printf("unknown command: %s\n", fields[0])
		}
	}
}

func runConstructOnce(cat *catalog.Catalog, p *pool.SequenceCollection, opts ddic.Options, name string) {
	target, err := cat.Resolve(name)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	result, err := ddic.Construct(context.Background(), cat, p, target, opts)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("pool now holds %d sequence(s) for %s\n", len(result), target)
}

func runProducers(cat *catalog.Catalog, tr *trackers.Trackers, name string) {
	target, err := cat.Resolve(name)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	ops := discovery.Producers(cat, target, nil, tr)
	for _, op := range ops {
		fmt.Println(op.Signature())
	}
	fmt.Printf("%d producer(s) found\n", len(ops))
}

func runPick(cat *catalog.Catalog, p *pool.SequenceCollection, opts ddic.Options) {
	names := make([]string, 0, len(cat.Names()))
	for name := range cat.Names() {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		fmt.Println("catalog has no registered type names")
		return
	}
	idx, err := fuzzyfinder.Find(names, func(i int) string { return names[i] })
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	runConstructOnce(cat, p, opts, names[idx])
}
