package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubcommandsRegistered(t *testing.T) {
	expected := []string{"analyze", "update", "restore", "cleanup", "watch"}

	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, registered[name], "missing subcommand %s", name)
	}
}

func TestUpdateFlags(t *testing.T) {
	flags := []string{"dry-run", "no-backup", "no-datetime-original", "no-date-created", "yes"}
	for _, name := range flags {
		flag := updateCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "missing flag %s", name)
		assert.Equal(t, "false", flag.DefValue)
	}
}

func TestCommandsRequireFolderArg(t *testing.T) {
	for _, c := range []string{"analyze", "update", "restore", "cleanup", "watch"} {
		cmd, _, err := rootCmd.Find([]string{c})
		require.NoError(t, err)
		assert.Error(t, cmd.Args(cmd, []string{}), "%s should require a folder", c)
		assert.NoError(t, cmd.Args(cmd, []string{"folder"}))
	}
}
