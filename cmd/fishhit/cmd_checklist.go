package main

import (
	"fmt"
	"strings"

	"github.com/fishinghit/fishhit/internal/store"
	"github.com/spf13/cobra"
)

func checklistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "checklist",
		Aliases: []string{"gear"},
		Short:   "Manage gear checklists",
	}

	cmd.AddCommand(checklistCreateCmd())
	cmd.AddCommand(checklistRenameCmd())
	cmd.AddCommand(checklistDeleteCmd())
	cmd.AddCommand(checklistListCmd())
	cmd.AddCommand(checklistShowCmd())
	cmd.AddCommand(checklistAddItemCmd())
	cmd.AddCommand(checklistToggleCmd())
	cmd.AddCommand(checklistRemoveItemCmd())

	return cmd
}

func checklistCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create [name]",
		Short: "Create an empty checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			cl, err := s.CreateChecklist(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Created checklist %s: %s\n", cl.ID[:8], cl.Name)
			return nil
		},
	}
}

func checklistRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename [id] [name]",
		Short: "Rename a checklist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := resolveChecklistID(s, args[0])
			if err != nil {
				return err
			}
			return s.RenameChecklist(id, args[1])
		},
	}
}

func checklistDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a checklist and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := resolveChecklistID(s, args[0])
			if err != nil {
				return err
			}
			return s.DeleteChecklist(id)
		},
	}
}

func checklistListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List checklists",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			lists, err := s.ListChecklists()
			if err != nil {
				return err
			}

			if len(lists) == 0 {
				fmt.Println("No checklists yet. Use 'fishhit checklist create' to add one.")
				return nil
			}

			for _, cl := range lists {
				done := 0
				for _, it := range cl.Items {
					if it.Checked {
						done++
					}
				}
				fmt.Printf("%s  %-24s %d/%d packed\n", cl.ID[:8], truncate(cl.Name, 24), done, len(cl.Items))
			}
			return nil
		},
	}
}

func checklistShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a checklist with its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := resolveChecklistID(s, args[0])
			if err != nil {
				return err
			}
			cl, err := s.GetChecklist(id)
			if err != nil {
				return err
			}

			fmt.Println(cl.Name)
			for _, it := range cl.Items {
				mark := " "
				if it.Checked {
					mark = "x"
				}
				fmt.Printf("[%s] %s  %s\n", mark, it.ID[:8], it.Name)
			}
			return nil
		},
	}
}

func checklistAddItemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-item [checklist-id] [name]",
		Short: "Append an item to a checklist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := resolveChecklistID(s, args[0])
			if err != nil {
				return err
			}
			it, err := s.AddChecklistItem(id, args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Added item %s: %s\n", it.ID[:8], it.Name)
			return nil
		},
	}
}

func checklistToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [item-id]",
		Short: "Flip the packed state of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := resolveItemID(s, args[0])
			if err != nil {
				return err
			}
			checked, err := s.ToggleChecklistItem(id)
			if err != nil {
				return err
			}
			if checked {
				fmt.Println("Packed")
			} else {
				fmt.Println("Unpacked")
			}
			return nil
		},
	}
}

func checklistRemoveItemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-item [item-id]",
		Short: "Remove an item from its checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := resolveItemID(s, args[0])
			if err != nil {
				return err
			}
			return s.RemoveChecklistItem(id)
		},
	}
}

func resolveChecklistID(s *store.Store, prefix string) (string, error) {
	lists, err := s.ListChecklists()
	if err != nil {
		return "", err
	}
	for _, cl := range lists {
		if strings.HasPrefix(cl.ID, prefix) {
			return cl.ID, nil
		}
	}
	return "", fmt.Errorf("checklist not found: %s", prefix)
}

func resolveItemID(s *store.Store, prefix string) (string, error) {
	lists, err := s.ListChecklists()
	if err != nil {
		return "", err
	}
	for _, cl := range lists {
		for _, it := range cl.Items {
			if strings.HasPrefix(it.ID, prefix) {
				return it.ID, nil
			}
		}
	}
	return "", fmt.Errorf("item not found: %s", prefix)
}
