package handlers

import (
	"errors"

	"github.com/concave-dev/sakaton/cmd/sakatonctl/client"
	"github.com/concave-dev/sakaton/cmd/sakatonctl/config"
	"github.com/concave-dev/sakaton/cmd/sakatonctl/display"
	"github.com/concave-dev/sakaton/cmd/sakatonctl/utils"
	"github.com/concave-dev/sakaton/internal/logging"
	"github.com/concave-dev/sakaton/internal/validate"
	"github.com/spf13/cobra"
)

// HandleMe shows the logged-in user's profile and balance.
func HandleMe(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()
	ctx := commandContext(cmd)

	token, err := loadToken(ctx)
	if err != nil {
		return describeError("load session", err)
	}

	apiClient := client.CreateAPIClient()
	user, err := apiClient.GetUser(ctx, token)
	if err != nil {
		return describeError("fetch user profile", err)
	}
	points, err := apiClient.GetPoints(ctx, token)
	if err != nil {
		return describeError("fetch points", err)
	}

	display.DisplayAccount(user, points)
	return nil
}

// HandleRanking shows the leaderboard. The user's own rank is reported for
// --user-id or, when omitted and logged in, for the session's user.
func HandleRanking(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()
	ctx := commandContext(cmd)
	apiClient := client.CreateAPIClient()

	userID := config.Ranking.UserID
	if userID != "" {
		if err := validate.IdentifierFormat("user id", userID); err != nil {
			return err
		}
	} else {
		token, err := loadToken(ctx)
		switch {
		case errors.Is(err, ErrNotLoggedIn):
			logging.Debug("Not logged in, showing the leaderboard without an own rank")
		case err != nil:
			return describeError("load session", err)
		default:
			user, err := apiClient.GetUser(ctx, token)
			if err != nil {
				return describeError("fetch user profile", err)
			}
			userID = string(user.ID)
		}
	}

	fetchAndDisplayRanking := func() error {
		ranking, err := apiClient.GetRanking(ctx, userID)
		if err != nil {
			return describeError("fetch ranking", err)
		}
		display.DisplayRanking(ranking, config.Ranking.Limit)
		return nil
	}

	return utils.RunWithWatch(fetchAndDisplayRanking, config.Ranking.Watch)
}
