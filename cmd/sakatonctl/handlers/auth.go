package handlers

import (
	"fmt"

	"github.com/concave-dev/sakaton/cmd/sakatonctl/client"
	"github.com/concave-dev/sakaton/cmd/sakatonctl/config"
	"github.com/concave-dev/sakaton/cmd/sakatonctl/display"
	"github.com/concave-dev/sakaton/cmd/sakatonctl/utils"
	"github.com/concave-dev/sakaton/internal/logging"
	"github.com/spf13/cobra"
)

// HandleLogin exchanges Telegram init data for a session token and stores it.
func HandleLogin(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()
	ctx := commandContext(cmd)

	if config.Login.InitData == "" {
		return fmt.Errorf("--init-data is required")
	}

	logging.Info("Authenticating against %s", config.Global.APIAddr)
	apiClient := client.CreateAPIClient()

	token, err := apiClient.Authenticate(ctx, config.Login.InitData)
	if err != nil {
		return describeError("authenticate", err)
	}

	store, err := client.OpenTokenStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SetToken(ctx, token); err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}
	logging.Success("Stored session token %s", logging.FormatToken(token))

	user, err := apiClient.GetUser(ctx, token)
	if err != nil {
		return describeError("fetch user profile", err)
	}
	display.DisplayLogin(user)
	return nil
}

// HandleLogout removes the stored session token.
func HandleLogout(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	store, err := client.OpenTokenStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ClearToken(commandContext(cmd)); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	display.DisplayLogout()
	return nil
}
