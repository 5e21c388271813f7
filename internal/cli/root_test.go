package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagekeep/pagekeep/internal/store"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "pagekeep", cmd.Use)
	assert.Contains(t, cmd.Long, "revision")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{
		"create", "show", "edit", "rename", "delete", "list", "search",
		"history", "recent", "revs", "perms", "overwrite", "watch",
	}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("db"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("guild"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("actor"))
}

func TestInvalidFormatRejected(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "xml", "list"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(&store.PageNotFoundError{Title: "x"}))
	assert.Equal(t, ExitFailure, GetExitCode(&store.PageExistsError{Title: "x"}))
	assert.Equal(t, ExitFailure, GetExitCode(&store.ValidationError{Message: "x"}))
	assert.Equal(t, ExitCommandError, GetExitCode(errors.New("boom")))
	assert.Equal(t, ExitCommandError,
		GetExitCode(WrapExitError(ExitCommandError, "flags", errors.New("bad"))))
}

func TestParseMask(t *testing.T) {
	mask, err := parseMask("7")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), uint64(mask))

	mask, err = parseMask("view,delete")
	require.NoError(t, err)
	assert.Equal(t, uint64(1|8), uint64(mask))

	_, err = parseMask("view,sudo")
	require.Error(t, err)
}
