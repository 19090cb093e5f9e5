package main

import (
	"fmt"
	"sort"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
)

func newCatalogCommand() *cobra.Command {
	var pick bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the demo catalog's registered type names",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := buildDemoCatalog()
			names := make([]string, 0, len(cat.Names()))
			for name := range cat.Names() {
				names = append(names, name)
			}
			sort.Strings(names)

			if pick {
				idx, err := fuzzyfinder.Find(names, func(i int) string { return names[i] })
				if err != nil {
					return fmt.Errorf("catalog: %w", err)
				}
				fmt.Println(names[idx])
				return nil
			}

			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&pick, "pick", false, "interactively fuzzy-pick a single type name")
	return cmd
}
