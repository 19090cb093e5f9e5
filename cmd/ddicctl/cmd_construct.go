package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ddic"
	"ddic/internal/ddic/catalogyaml"
	"ddic/internal/ddic/pool"
	"ddic/internal/ddic/trackers"
)

func newConstructCommand() *cobra.Command {
	var exact bool
	var onlyReceivers bool
	var configPath string
	var attempts int

	cmd := &cobra.Command{
		Use:   "construct <type>",
		Short: "Run Construct against the demo catalog for a named type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := buildDemoCatalog()
			target, err := cat.Resolve(args[0])
			if err != nil {
				return fmt.Errorf("construct: %w", err)
			}

			opts := ddic.Options{ExactTypeMatch: exact, OnlyReceivers: onlyReceivers}
			if configPath != "" {
				raw, err := os.ReadFile(configPath)
				if err != nil {
					return fmt.Errorf("construct: %w", err)
				}
				doc, err := catalogyaml.Parse(raw)
				if err != nil {
					return fmt.Errorf("construct: %w", err)
				}
				specified, err := catalogyaml.Apply(cat, doc)
				if err != nil {
					return fmt.Errorf("construct: %w", err)
				}
				opts.SpecifiedClasses = specified
				opts.ExactTypeMatch = doc.Options.ExactTypeMatch
				opts.OnlyReceivers = doc.Options.OnlyReceivers
				opts.StatementTimeout = doc.Options.StatementTimeout()
			}

			p := pool.New()
			tr := trackers.New()
			opts.Trackers = tr

			for i := 0; i < attempts; i++ {
				result, err := ddic.Construct(context.Background(), cat, p, target, opts)
				if err != nil {
					return fmt.Errorf("construct: %w", err)
				}
				fmt.Printf("attempt %d: pool holds %d sequence(s) for %s\n", i+1, len(result), target)
				if len(result) > 0 {
					break
				}
			}

			fmt.Printf("final pool size: %d\n", p.Size())
			fmt.Printf("unspecified types touched: %d\n", len(tr.Unspecified()))
			fmt.Printf("uninstantiable types: %d\n", len(tr.Uninstantiable()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&exact, "exact", false, "require an exact type match on the final pool query")
	cmd.Flags().BoolVar(&onlyReceivers, "receivers", false, "require the final pool query's results to be usable as a method receiver")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a catalogyaml run configuration")
	cmd.Flags().IntVar(&attempts, "attempts", 3, "number of Construct calls to retry before giving up")

	return cmd
}
