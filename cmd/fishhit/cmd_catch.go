package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fishinghit/fishhit/internal/domain"
	"github.com/fishinghit/fishhit/internal/media"
	"github.com/fishinghit/fishhit/internal/store"
	"github.com/spf13/cobra"
)

func catchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catch",
		Short: "Manage the diary of logged catches",
	}

	cmd.AddCommand(catchAddCmd())
	cmd.AddCommand(catchListCmd())
	cmd.AddCommand(catchShowCmd())
	cmd.AddCommand(catchNoteCmd())
	cmd.AddCommand(catchDeleteCmd())
	cmd.AddCommand(catchTopCmd())
	cmd.AddCommand(catchCleanupCmd())

	return cmd
}

func catchAddCmd() *cobra.Command {
	var fishType, weight, length, note, date, photo, audio, video string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a new catch",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			rec := domain.CatchRecord{
				FishType: fishType,
				Weight:   domain.ParseMeasure(weight),
				Length:   domain.ParseMeasure(length),
				Note:     note,
			}

			if date != "" {
				d, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("bad date %q, want YYYY-MM-DD", date)
				}
				rec.Date = &d
			} else {
				now := time.Now()
				rec.Date = &now
			}

			if photo != "" {
				data, err := os.ReadFile(photo)
				if err != nil {
					return fmt.Errorf("read photo: %w", err)
				}
				rec.Photo = data
			}
			if audio != "" {
				ref, err := media.CopyIntoLibrary(config.MediaDir, audio, media.KindAudio)
				if err != nil {
					return err
				}
				rec.AudioRef = ref
			}
			if video != "" {
				ref, err := media.CopyIntoLibrary(config.MediaDir, video, media.KindVideo)
				if err != nil {
					return err
				}
				rec.VideoRef = ref
			}

			saved, err := s.AddCatch(rec)
			if err != nil {
				return err
			}

			fmt.Printf("Logged catch %s: %s, %.1f kg, %.1f cm\n", saved.ID[:8], saved.FishType, saved.Weight, saved.Length)
			return nil
		},
	}

	cmd.Flags().StringVar(&fishType, "fish", "", "fish type")
	cmd.Flags().StringVar(&weight, "weight", "", "weight in kg (unparsable input stores 0)")
	cmd.Flags().StringVar(&length, "length", "", "length in cm (unparsable input stores 0)")
	cmd.Flags().StringVar(&note, "note", "", "free-form note")
	cmd.Flags().StringVar(&date, "date", "", "catch date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&photo, "photo", "", "path to a photo file")
	cmd.Flags().StringVar(&audio, "audio", "", "path to an audio note, copied into the media library")
	cmd.Flags().StringVar(&video, "video", "", "path to a video clip, copied into the media library")
	cmd.MarkFlagRequired("fish")
	return cmd
}

func catchListCmd() *cobra.Command {
	var fishType, year string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catches, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			catches, err := s.ListCatches(domain.CatchFilter{FishType: fishType, Year: year})
			if err != nil {
				return err
			}

			if len(catches) == 0 {
				fmt.Println("No catches yet. Use 'fishhit catch add' to log one.")
				return nil
			}

			for _, c := range catches {
				date := "no date"
				if c.Date != nil {
					date = c.Date.Format("Jan 2, 2006")
				}
				fmt.Printf("%s  %-16s %6.1f kg  %s\n", c.ID[:8], truncate(c.FishType, 16), c.Weight, date)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fishType, "fish", "", "filter by fish type substring")
	cmd.Flags().StringVar(&year, "year", "", "filter by catch year (e.g. 2024)")
	return cmd
}

func catchShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show catch details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			c, err := findCatch(s, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Fish:   %s\n", c.FishType)
			fmt.Printf("Weight: %.1f kg\n", c.Weight)
			fmt.Printf("Length: %.1f cm\n", c.Length)
			if c.Date != nil {
				fmt.Printf("Date:   %s\n", c.Date.Format("Jan 2, 2006"))
			}
			if len(c.Photo) > 0 {
				fmt.Printf("Photo:  %d bytes\n", len(c.Photo))
			}
			if c.AudioRef != "" {
				fmt.Printf("Audio:  %s\n", c.AudioRef)
			}
			if c.VideoRef != "" {
				fmt.Printf("Video:  %s\n", c.VideoRef)
			}
			if c.Note != "" {
				fmt.Printf("Note:\n%s\n", c.Note)
			}
			return nil
		},
	}
}

func catchNoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "note [id] [text]",
		Short: "Replace the note of a catch",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			c, err := findCatch(s, args[0])
			if err != nil {
				return err
			}
			return s.UpdateCatchNote(c.ID, args[1])
		},
	}
}

func catchDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a catch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			c, err := findCatch(s, args[0])
			if err != nil {
				return err
			}
			return s.DeleteCatch(c.ID)
		},
	}
}

func catchTopCmd() *cobra.Command {
	var year string
	var n int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Most caught fish types",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			top, err := s.TopFishTypes(domain.CatchFilter{Year: year}, n)
			if err != nil {
				return err
			}

			for _, t := range top {
				fmt.Printf("%s: %d catches\n", t.FishType, t.Count)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&year, "year", "", "restrict to one year")
	cmd.Flags().IntVarP(&n, "limit", "n", 5, "number of fish types to show")
	return cmd
}

func catchCleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove catches with broken photo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := s.CleanupInvalidCatches()
			if err != nil {
				return err
			}
			fmt.Printf("Removed %d broken entries\n", n)
			return nil
		},
	}
}

// findCatch resolves an id prefix against the diary
func findCatch(s *store.Store, prefix string) (*domain.CatchRecord, error) {
	catches, err := s.ListCatches(domain.CatchFilter{})
	if err != nil {
		return nil, err
	}
	for i := range catches {
		if len(catches[i].ID) >= len(prefix) && catches[i].ID[:len(prefix)] == prefix {
			return &catches[i], nil
		}
	}
	return nil, fmt.Errorf("catch not found: %s", prefix)
}
