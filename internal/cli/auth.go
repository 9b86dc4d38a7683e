package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"daily-energy/internal/models"
)

func (a *app) loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a phone verification code",
	}

	sendCode := &cobra.Command{
		Use:   "send-code <phone>",
		Short: "Send a verification code to a phone number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.services.Auth.SendCode(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !resp.Success {
				return fmt.Errorf("code not sent: %s", resp.Message)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Code sent to %s", args[0])
			if resp.ExpiresIn > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " (valid for %ds)", resp.ExpiresIn)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	var loginType string
	verify := &cobra.Command{
		Use:   "verify <phone> <code>",
		Short: "Finish signing in with the received code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.services.Auth.Login(cmd.Context(), args[0], args[1], loginType)
			if err != nil {
				return err
			}
			name := args[0]
			if resp.UserInfo != nil && resp.UserInfo.Nickname != "" {
				name = resp.UserInfo.Nickname
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", name)
			if resp.IsFirstLogin {
				fmt.Fprintln(cmd.OutOrStdout(), "First login: set up your profile to get a daily target.")
			}
			return nil
		},
	}
	verify.Flags().StringVar(&loginType, "type", models.LoginTypePhone, "Login type")

	cmd.AddCommand(sendCode, verify)
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.services.Auth.Logout(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Server logout failed: %v\n", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if !a.services.Auth.IsLoggedIn(ctx) {
				fmt.Fprintln(out, "Not logged in")
				return nil
			}

			name := "unknown"
			if info, ok := a.services.Auth.CurrentUserInfo(ctx); ok {
				name = info.Nickname
				if name == "" {
					name = info.Phone
				}
			}
			fmt.Fprintf(out, "Logged in as %s\n", name)
			fmt.Fprintf(out, "VIP: %t\n", a.services.Auth.IsVIP(ctx))
			if exp, ok := a.services.Auth.TokenExpiry(ctx); ok {
				fmt.Fprintf(out, "Token expires: %s\n", exp.Local().Format(time.RFC1123))
			}
			fmt.Fprintf(out, "Device: %s\n", a.session.DeviceID(ctx))
			return nil
		},
	}
}
