package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/consultmatch/consultmatch/internal/identity"
	"github.com/consultmatch/consultmatch/internal/logger"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in against the identity provider and show the profile",
	Run: func(_ *cobra.Command, _ []string) {
		login()
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func login() {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	client := identity.New(zlog)
	if config.Identity != nil && config.Identity.URL != "" {
		client.APIURL = config.Identity.URL
	}

	email := ""
	if config.Identity != nil {
		email = config.Identity.Email
	}
	if email == "" {
		input := promptui.Prompt{Label: "Email"}
		if email, err = input.Run(); err != nil {
			return
		}
	}

	password := promptui.Prompt{Label: "Password", Mask: '*'}
	secret, err := password.Run()
	if err != nil {
		return
	}

	session, err := client.SignIn(ctx, email, secret)
	if err != nil {
		zlog.Fatal("sign in failed", zap.Error(err))
	}

	profile, err := client.GetProfile(ctx, session.UserID)
	if err != nil {
		zlog.Fatal("fetching profile", zap.Error(err))
	}

	fmt.Printf("Signed in as %s (%s)\n", profile.DisplayName, profile.Role)

	info, err := identity.InspectToken(session.AccessToken)
	if err != nil {
		zlog.Warn("could not inspect access token", zap.Error(err))
		return
	}

	if info.Expired(time.Now()) {
		zlog.Warn("access token is already expired")
		return
	}
	if !info.ExpiresAt.IsZero() {
		fmt.Printf("Token valid until %s\n", info.ExpiresAt.Format(time.RFC3339))
	}
}
