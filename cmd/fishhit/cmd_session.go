package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fishinghit/fishhit/internal/bus"
	"github.com/fishinghit/fishhit/internal/prefs"
	"github.com/fishinghit/fishhit/internal/session"
	"github.com/spf13/cobra"
)

func sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Sign in, register, or continue as guest",
	}

	cmd.AddCommand(loginCmd())
	cmd.AddCommand(registerCmd())
	cmd.AddCommand(guestCmd())
	cmd.AddCommand(logoutCmd())
	cmd.AddCommand(statusCmd())
	cmd.AddCommand(startCmd())

	return cmd
}

func newManager() (*session.Manager, *prefs.Prefs, error) {
	authURL, err := config.RequireAuthURL()
	if err != nil {
		return nil, nil, err
	}
	p, err := getPrefs()
	if err != nil {
		return nil, nil, err
	}
	return session.NewManager(session.NewClient(authURL), p, log), p, nil
}

// friendlyAuthError maps the session error taxonomy to the inline
// messages the login form shows
func friendlyAuthError(err error) error {
	switch {
	case errors.Is(err, session.ErrInvalidCredentials):
		return fmt.Errorf("invalid email or password")
	case errors.Is(err, session.ErrUserExists):
		return fmt.Errorf("an account with this email already exists")
	default:
		return fmt.Errorf("something went wrong, please try again later")
	}
}

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, p, err := newManager()
			if err != nil {
				return err
			}
			defer p.Close()

			if err := m.Login(context.Background(), email, password); err != nil {
				return friendlyAuthError(err)
			}
			m.Wait()

			snap := m.Snapshot()
			if !snap.Authenticated {
				return fmt.Errorf("sign-in did not complete, please try again later")
			}
			fmt.Printf("Signed in as %s\n", snap.Identifier)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func registerCmd() *cobra.Command {
	var email, phone, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, p, err := newManager()
			if err != nil {
				return err
			}
			defer p.Close()

			if err := m.Register(context.Background(), email, phone, password); err != nil {
				return friendlyAuthError(err)
			}
			m.Wait()

			snap := m.Snapshot()
			if !snap.Authenticated {
				return fmt.Errorf("registration did not complete, please try again later")
			}
			fmt.Printf("Registered and signed in as %s\n", snap.Identifier)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func guestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guest",
		Short: "Continue without an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := getPrefs()
			if err != nil {
				return err
			}
			defer p.Close()

			m := session.NewManager(nil, p, log)
			m.VisitAsGuest()
			fmt.Println("Continuing as guest")
			return nil
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := getPrefs()
			if err != nil {
				return err
			}
			defer p.Close()

			m := session.NewManager(nil, p, log)
			m.Logout()
			fmt.Println("Signed out")
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored session details",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := getPrefs()
			if err != nil {
				return err
			}
			defer p.Close()

			email, ok := p.Get(prefs.KeyEmail)
			if !ok {
				fmt.Println("Not signed in")
				return nil
			}
			fmt.Printf("Stored account: %s\n", email)
			if clientID, ok := p.Get(prefs.KeyClientID); ok {
				fmt.Printf("Client id:      %s\n", clientID)
			}
			return nil
		},
	}
}

func startCmd() *cobra.Command {
	var pushToken, deepLink string
	var attribution []string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the launch flow: wait for launch signals, then sign in with stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, p, err := newManager()
			if err != nil {
				return err
			}
			defer p.Close()

			m.SetStartupTimeout(time.Duration(config.StartupTimeoutMS) * time.Millisecond)

			b := bus.New()
			ctx := context.Background()
			m.Begin(ctx, b)

			if pushToken != "" {
				b.Publish(bus.TopicPushToken, bus.Payload{bus.KeyPushToken: pushToken})
			}
			if deepLink != "" {
				b.Publish(bus.TopicDeepLink, bus.Payload{bus.KeyDeepLink: deepLink})
			}
			if len(attribution) > 0 {
				payload := bus.Payload{}
				for _, kv := range attribution {
					k, v, ok := strings.Cut(kv, "=")
					if !ok {
						return fmt.Errorf("bad attribution pair %q, want key=value", kv)
					}
					payload[k] = v
				}
				b.Publish(bus.TopicAttribution, payload)
			}

			select {
			case <-m.Resolved():
			case <-time.After(30 * time.Second):
				return fmt.Errorf("launch flow did not resolve")
			}
			m.Wait()

			snap := m.Snapshot()
			fmt.Printf("Session: %s\n", snap.State)
			if snap.Authenticated {
				fmt.Printf("Signed in as %s\n", snap.Identifier)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pushToken, "push-token", "", "simulate push-token arrival")
	cmd.Flags().StringVar(&deepLink, "deeplink", "", "simulate deep-link delivery")
	cmd.Flags().StringArrayVar(&attribution, "attribution", nil, "simulate attribution data (key=value, repeatable)")
	return cmd
}
