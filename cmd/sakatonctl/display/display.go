// Package display provides output formatting for sakatonctl.
//
// Every command renders either a table (text/tabwriter) or indented JSON,
// selected by the global --output flag. Point balances are grouped with
// go-humanize so large numbers stay readable.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/concave-dev/sakaton/cmd/sakatonctl/config"
	"github.com/concave-dev/sakaton/cmd/sakatonctl/utils"
	"github.com/concave-dev/sakaton/internal/backend"
	"github.com/concave-dev/sakaton/internal/clicker"
	"github.com/concave-dev/sakaton/internal/logging"
	"github.com/dustin/go-humanize"
)

// Out is where command output is written.
var Out io.Writer = os.Stdout

func isJSON() bool {
	return config.Global.Output == "json"
}

func printJSON(v any) {
	encoder := json.NewEncoder(Out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		logging.Error("Failed to encode JSON: %v", err)
		fmt.Fprintln(Out, "Error encoding JSON output")
	}
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(Out, 0, 0, 2, ' ', 0)
}

// FormatPoints renders a balance with thousands separators.
func FormatPoints(points int64) string {
	return humanize.Comma(points)
}

// AccountView is the JSON shape of `sakatonctl me`.
type AccountView struct {
	User   backend.User `json:"user"`
	Points int64        `json:"points"`
}

// DisplayLogin confirms a successful login.
func DisplayLogin(user *backend.User) {
	if isJSON() {
		printJSON(user)
		return
	}
	fmt.Fprintf(Out, "Logged in as %s (id %s)\n", displayName(user.FirstName, user.ID), user.ID)
}

// DisplayLogout confirms the stored session was cleared.
func DisplayLogout() {
	if isJSON() {
		printJSON(map[string]any{"success": true})
		return
	}
	fmt.Fprintln(Out, "Logged out")
}

// DisplayAccount shows the profile and balance of the logged-in user.
func DisplayAccount(user *backend.User, points int64) {
	if isJSON() {
		printJSON(AccountView{User: *user, Points: points})
		return
	}

	w := newTable()
	defer w.Flush()
	fmt.Fprintf(w, "Name:\t%s\n", displayName(user.FirstName, user.ID))
	fmt.Fprintf(w, "ID:\t%s\n", user.ID)
	fmt.Fprintf(w, "Points:\t%s\n", FormatPoints(points))
	fmt.Fprintf(w, "Referrals:\t%d\n", user.ReferallCount)
}

// DisplayTasks lists tasks with their current action.
func DisplayTasks(tasks []backend.Task) {
	if isJSON() {
		type taskView struct {
			backend.Task
			Status backend.TaskStatus `json:"status"`
		}
		views := make([]taskView, 0, len(tasks))
		for _, t := range tasks {
			views = append(views, taskView{Task: t, Status: t.Status()})
		}
		printJSON(views)
		return
	}

	if len(tasks) == 0 {
		fmt.Fprintln(Out, "No tasks available")
		return
	}

	w := newTable()
	defer w.Flush()
	if config.Global.Verbose {
		fmt.Fprintln(w, "ID\tNAME\tREWARD\tSTATUS\tLINK")
	} else {
		fmt.Fprintln(w, "ID\tNAME\tREWARD\tSTATUS")
	}
	for _, t := range tasks {
		if config.Global.Verbose {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Name, FormatPoints(t.Points), t.Status(), t.Link)
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Name, FormatPoints(t.Points), t.Status())
		}
	}
}

// DisplayTaskAction confirms a started or claimed task.
func DisplayTaskAction(action, taskID string) {
	if isJSON() {
		printJSON(map[string]any{"success": true, "action": action, "task_id": taskID})
		return
	}
	fmt.Fprintf(Out, "Task %s %s\n", taskID, action)
}

// DisplayRanking shows the first limit leaderboard entries and, when known,
// the requesting user's own rank.
func DisplayRanking(r *backend.Ranking, limit int) {
	top := r.Top(limit)

	if isJSON() {
		printJSON(backend.Ranking{Ranking: top, UserRank: r.UserRank, UserPoints: r.UserPoints})
		return
	}

	if len(top) == 0 {
		fmt.Fprintln(Out, "Leaderboard is empty")
	} else {
		w := newTable()
		fmt.Fprintln(w, "RANK\tNAME\tPOINTS")
		for i, e := range top {
			fmt.Fprintf(w, "%s\t%s\t%s\n", humanize.Ordinal(i+1), displayName(e.DisplayName, e.ID), FormatPoints(e.Points))
		}
		w.Flush()
	}

	if r.UserRank != nil {
		points := int64(0)
		if r.UserPoints != nil {
			points = *r.UserPoints
		}
		fmt.Fprintf(Out, "\nYour rank: %s with %s points\n", humanize.Ordinal(*r.UserRank), FormatPoints(points))
	}
}

// TapSummary describes a finished tap session.
type TapSummary struct {
	Taps     int
	Admitted int
	Rejected int
	Elapsed  time.Duration
	Final    clicker.Snapshot
}

// DisplayTapSummary reports the outcome of a tap session.
func DisplayTapSummary(s TapSummary) {
	if isJSON() {
		printJSON(map[string]any{
			"taps":              s.Taps,
			"admitted":          s.Admitted,
			"rejected":          s.Rejected,
			"elapsed":           s.Elapsed.String(),
			"points":            s.Final.Points,
			"pending":           s.Final.Pending,
			"batches_submitted": s.Final.BatchesSubmitted,
			"batches_failed":    s.Final.BatchesFailed,
			"clicks_submitted":  s.Final.ClicksSubmitted,
			"last_error":        s.Final.LastError,
		})
		return
	}

	w := newTable()
	fmt.Fprintf(w, "Taps:\t%d (%d admitted, %d rejected)\n", s.Taps, s.Admitted, s.Rejected)
	fmt.Fprintf(w, "Duration:\t%s (%.1f admitted/s)\n", utils.FormatDuration(s.Elapsed), utils.Rate(s.Admitted, s.Elapsed))
	fmt.Fprintf(w, "Batches:\t%d submitted, %d failed\n", s.Final.BatchesSubmitted, s.Final.BatchesFailed)
	fmt.Fprintf(w, "Clicks submitted:\t%d\n", s.Final.ClicksSubmitted)
	fmt.Fprintf(w, "Points:\t%s\n", FormatPoints(s.Final.Points))
	w.Flush()

	if s.Final.Pending > 0 {
		fmt.Fprintf(Out, "\n%d pending clicks were not submitted (below the batch threshold)\n", s.Final.Pending)
	}
	if s.Final.LastError != "" && config.Global.Verbose {
		fmt.Fprintf(Out, "Last error: %s\n", s.Final.LastError)
	}
}

func displayName(name string, id backend.ID) string {
	if name != "" {
		return name
	}
	return "user " + string(id)
}
