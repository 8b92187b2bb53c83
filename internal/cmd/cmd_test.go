package cmd

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestRootCommandWiring(t *testing.T) {
	if rootCmd.Use != "teamtask" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "teamtask")
	}

	// Compare by Name(), not Use which includes args.
	expected := []string{"setup", "reset", "register", "login", "logout", "whoami", "admin", "tasks", "run"}
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range expected {
		if !names[want] {
			t.Errorf("missing subcommand %q", want)
		}
	}
}

func TestAdminSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range adminCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"pending", "approve", "reject"} {
		if !names[want] {
			t.Errorf("admin missing subcommand %q", want)
		}
	}
}

func TestTasksSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range tasksCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"list", "create", "advance", "stats"} {
		if !names[want] {
			t.Errorf("tasks missing subcommand %q", want)
		}
	}
}

func TestCreateRequiredFlags(t *testing.T) {
	for _, name := range []string{"title", "assign", "due"} {
		flag := tasksCreateCmd.Flags().Lookup(name)
		if flag == nil {
			t.Errorf("tasks create missing flag %q", name)
			continue
		}
		if req := flag.Annotations[cobra.BashCompOneRequiredFlag]; len(req) == 0 {
			t.Errorf("flag %q is not marked required", name)
		}
	}
}
