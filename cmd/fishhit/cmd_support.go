package main

import (
	"fmt"

	"github.com/fishinghit/fishhit/internal/webpage"
	"github.com/spf13/cobra"
)

const supportEmail = "support@fishinghit.com"

type faqEntry struct {
	question string
	answer   string
}

var faqEntries = []faqEntry{
	{
		question: "How do I log a catch?",
		answer:   "Run 'fishhit catch add --fish <type>' with any of --weight, --length, --photo, --note. The entry lands in your diary immediately.",
	},
	{
		question: "Where is my data stored?",
		answer:   "Everything lives in a local database on this device. Nothing you log is uploaded anywhere.",
	},
	{
		question: "Can I use the app without an account?",
		answer:   "Yes. 'fishhit session guest' gives you the full diary, spots, checklists and guide without signing in.",
	},
	{
		question: "How do favorites work?",
		answer:   "'fishhit guide fav <name>' stars a species. 'fishhit guide list --favorites' shows only starred ones.",
	},
	{
		question: "I deleted a catch by accident. Can I get it back?",
		answer:   "No, deletion is permanent. There is no sync or backup, so removed entries are gone.",
	},
}

func supportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "support",
		Short: "Help, policies and contact information",
	}

	cmd.AddCommand(supportFAQCmd())
	cmd.AddCommand(supportContactCmd())
	cmd.AddCommand(supportPageCmd("policy", "Show the privacy policy", func() string { return config.PolicyURL }))
	cmd.AddCommand(supportPageCmd("terms", "Show the terms of use", func() string { return config.TermsURL }))

	return cmd
}

func supportFAQCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "faq",
		Short: "Frequently asked questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, e := range faqEntries {
				if i > 0 {
					fmt.Println()
				}
				fmt.Printf("Q: %s\nA: %s\n", e.question, e.answer)
			}
			return nil
		},
	}
}

func supportContactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contact",
		Short: "How to reach us",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Questions or feedback? Email us at %s\n", supportEmail)
			return nil
		},
	}
}

// supportPageCmd fetches a hosted document and prints its readable text
func supportPageCmd(use, short string, urlOf func() string) *cobra.Command {
	var linkOnly bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			url := urlOf()
			if url == "" {
				return fmt.Errorf("no %s URL configured", use)
			}
			if linkOnly {
				fmt.Println(url)
				return nil
			}

			text, err := webpage.Fetch(cmd.Context(), url)
			if err != nil {
				return fmt.Errorf("fetch %s page: %w", use, err)
			}
			fmt.Println(text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&linkOnly, "link", false, "print the URL instead of fetching it")
	return cmd
}
