package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fishinghit/fishhit/internal/domain"
	"github.com/spf13/cobra"
)

func spotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spot",
		Short: "Manage saved fishing spots",
	}

	cmd.AddCommand(spotAddCmd())
	cmd.AddCommand(spotListCmd())
	cmd.AddCommand(spotClearCmd())

	return cmd
}

func spotAddCmd() *cobra.Command {
	var fishType, coord, gear, icon, depth string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a fishing spot",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			c, err := parseCoordinate(coord)
			if err != nil {
				return err
			}

			saved, err := s.AddSpot(domain.FishingSpot{
				Latitude:  c.Latitude,
				Longitude: c.Longitude,
				FishType:  fishType,
				Depth:     domain.ParseMeasure(depth),
				Gear:      gear,
				Icon:      icon,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Saved spot %s at %.5f, %.5f\n", saved.ID[:8], saved.Latitude, saved.Longitude)
			return nil
		},
	}

	cmd.Flags().StringVar(&fishType, "fish", "", "fish found at the spot, e.g. \"Pike (Freshwater)\"")
	cmd.Flags().StringVar(&coord, "at", "", "coordinate as lat,lon")
	cmd.Flags().StringVar(&depth, "depth", "", "water depth in meters")
	cmd.Flags().StringVar(&gear, "gear", "", "gear that worked at the spot")
	cmd.Flags().StringVar(&icon, "icon", "", "map marker icon name")
	cmd.MarkFlagRequired("at")
	return cmd
}

func spotListCmd() *cobra.Command {
	var fishType, water string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved spots",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			spots, err := s.ListSpots(domain.SpotFilter{
				FishType: fishType,
				Water:    domain.WaterType(water),
			})
			if err != nil {
				return err
			}

			if len(spots) == 0 {
				fmt.Println("No spots saved.")
				return nil
			}

			for _, sp := range spots {
				line := fmt.Sprintf("%s  %-28s %.5f, %.5f", sp.ID[:8], truncate(sp.FishType, 28), sp.Latitude, sp.Longitude)
				if sp.Depth > 0 {
					line += fmt.Sprintf("  %.1f m", sp.Depth)
				}
				if sp.Gear != "" {
					line += "  " + sp.Gear
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fishType, "fish", "", "filter by fish type substring")
	cmd.Flags().StringVar(&water, "water", "", "filter by water: All, Freshwater or Saltwater")
	return cmd
}

func spotClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved spot",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()
			return s.DeleteAllSpots()
		},
	}
}

func routeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Manage recorded fishing routes",
	}

	cmd.AddCommand(routeAddCmd())
	cmd.AddCommand(routeListCmd())

	return cmd
}

func routeAddCmd() *cobra.Command {
	var name string
	var points []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a route as an ordered list of coordinates",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			coords := make([]domain.Coordinate, 0, len(points))
			for _, p := range points {
				c, err := parseCoordinate(p)
				if err != nil {
					return err
				}
				coords = append(coords, c)
			}

			saved, err := s.AddRoute(domain.FishingRoute{Name: name, Spots: coords})
			if err != nil {
				return err
			}

			fmt.Printf("Recorded route %s: %s (%d points)\n", saved.ID[:8], saved.Name, len(coords))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "route name")
	cmd.Flags().StringArrayVar(&points, "point", nil, "waypoint as lat,lon (repeatable, in order)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("point")
	return cmd
}

func routeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			routes, err := s.ListRoutes()
			if err != nil {
				return err
			}

			if len(routes) == 0 {
				fmt.Println("No routes recorded.")
				return nil
			}

			for _, r := range routes {
				fmt.Printf("%s  %-20s %d points\n", r.ID[:8], truncate(r.Name, 20), len(r.Spots))
			}
			return nil
		},
	}
}

func parseCoordinate(s string) (domain.Coordinate, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return domain.Coordinate{}, fmt.Errorf("bad coordinate %q, want lat,lon", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("bad latitude in %q", s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("bad longitude in %q", s)
	}
	return domain.Coordinate{Latitude: lat, Longitude: lon}, nil
}
