package commands

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func TestCommandTree(t *testing.T) {
	root := &cobra.Command{Use: "sakatonctl"}
	saved := RootCmd
	RootCmd = root
	t.Cleanup(func() { RootCmd = saved })

	SetupCommands()

	for _, path := range [][]string{
		{"login"}, {"logout"}, {"me"}, {"ranking"}, {"leaderboard"},
		{"task", "ls"}, {"task", "start"}, {"task", "claim"}, {"tap"},
	} {
		cmd, _, err := root.Find(path)
		if err != nil || cmd == root {
			t.Errorf("command %v not registered", path)
		}
	}
}

func TestTaskArgs(t *testing.T) {
	if err := exactlyOneTaskID(&cobra.Command{}, []string{"join_channel"}); err != nil {
		t.Errorf("one task id: %v", err)
	}
	if err := exactlyOneTaskID(&cobra.Command{}, nil); err == nil {
		t.Error("missing task id should be rejected")
	}
}

func TestTapFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "tap"}
	var auto int
	var interval, retry time.Duration
	SetupTapFlags(cmd, &auto, &interval, &retry, 150*time.Millisecond)

	if err := cmd.ParseFlags([]string{"--auto=40", "--retry-interval=2s"}); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	if auto != 40 || interval != 150*time.Millisecond || retry != 2*time.Second {
		t.Errorf("auto=%d interval=%v retry=%v", auto, interval, retry)
	}
}
