package main

import (
	"fmt"

	"github.com/fishinghit/fishhit/internal/guide"
	"github.com/spf13/cobra"
)

func guideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guide",
		Short: "Browse the fish species guide",
	}

	cmd.AddCommand(guideListCmd())
	cmd.AddCommand(guideShowCmd())
	cmd.AddCommand(guideFavCmd())
	cmd.AddCommand(guideUnfavCmd())

	return cmd
}

func guideListCmd() *cobra.Command {
	var query string
	var favsOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List species, optionally filtered by a search query",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := guide.Load()
			if err != nil {
				return err
			}

			var favs map[string]bool
			if favsOnly {
				p, err := getPrefs()
				if err != nil {
					return err
				}
				defer p.Close()
				favs = make(map[string]bool)
				for _, name := range guide.LoadFavorites(p) {
					favs[name] = true
				}
			}

			for _, f := range cat.Search(query) {
				if favsOnly && !favs[f.Name] {
					continue
				}
				fmt.Printf("%-28s %s\n", f.Name, f.Habitat)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&query, "search", "", "case-insensitive name filter")
	cmd.Flags().BoolVar(&favsOnly, "favorites", false, "show only favorite species")
	return cmd
}

func guideShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show one species in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := guide.Load()
			if err != nil {
				return err
			}

			f, ok := cat.Get(args[0])
			if !ok {
				matches := cat.Search(args[0])
				if len(matches) != 1 {
					return fmt.Errorf("unknown species %q", args[0])
				}
				f = matches[0]
			}

			fmt.Println(f.Name)
			fmt.Printf("Habitat: %s\n", f.Habitat)
			fmt.Printf("Bait:    %s\n", f.Bait)
			fmt.Printf("Season:  %s\n", f.Season)
			fmt.Printf("\n%s\n", f.Description)

			p, err := getPrefs()
			if err != nil {
				return err
			}
			defer p.Close()
			if guide.IsFavorite(p, f.Name) {
				fmt.Println("\n(favorite)")
			}
			return nil
		},
	}
}

func guideFavCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fav [name]",
		Short: "Mark a species as a favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := guide.Load()
			if err != nil {
				return err
			}
			f, ok := cat.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown species %q", args[0])
			}

			p, err := getPrefs()
			if err != nil {
				return err
			}
			defer p.Close()
			return guide.AddFavorite(p, f.Name)
		},
	}
}

func guideUnfavCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unfav [name]",
		Short: "Drop a species from the favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := getPrefs()
			if err != nil {
				return err
			}
			defer p.Close()
			return guide.RemoveFavorite(p, args[0])
		},
	}
}
