package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagekeep/pagekeep/internal/store"
)

// runCommand executes the CLI against the given database with shared
// flags filled in, returning captured stdout.
func runCommand(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	full := append([]string{"--db", dbPath, "--guild", "guild-1", "--actor", "author-1"}, args...)
	cmd.SetArgs(full)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func testDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "wiki.db")
}

func TestCreateAndShow(t *testing.T) {
	db := testDB(t)

	out, err := runCommand(t, db, "create", "Coolsville", "the coolest town")
	require.NoError(t, err)
	assert.Contains(t, out, `created "Coolsville"`)

	out, err = runCommand(t, db, "show", "coolsville")
	require.NoError(t, err)
	assert.Contains(t, out, "Coolsville")
	assert.Contains(t, out, "the coolest town")
}

func TestCreate_DuplicateFails(t *testing.T) {
	db := testDB(t)

	_, err := runCommand(t, db, "create", "Coolsville", "a")
	require.NoError(t, err)

	_, err = runCommand(t, db, "create", "COOLSVILLE", "b")
	require.Error(t, err)
	assert.True(t, store.IsExists(err), "expected PageExistsError, got %v", err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestEditAndHistory(t *testing.T) {
	db := testDB(t)

	_, err := runCommand(t, db, "create", "Coolsville", "first draft")
	require.NoError(t, err)
	_, err = runCommand(t, db, "edit", "Coolsville", "second draft")
	require.NoError(t, err)

	out, err := runCommand(t, db, "history", "Coolsville")
	require.NoError(t, err)
	assert.Contains(t, out, "first draft")
	assert.Contains(t, out, "second draft")
}

func TestRenameCommand(t *testing.T) {
	db := testDB(t)

	_, err := runCommand(t, db, "create", "Coolsville", "content")
	require.NoError(t, err)

	out, err := runCommand(t, db, "rename", "Coolsville", "Radville")
	require.NoError(t, err)
	assert.Contains(t, out, "renamed")

	_, err = runCommand(t, db, "show", "Coolsville")
	require.Error(t, err)
	assert.True(t, store.IsNotFound(err))
}

func TestListJSON(t *testing.T) {
	db := testDB(t)

	_, err := runCommand(t, db, "create", "Coolsville", "content")
	require.NoError(t, err)

	out, err := runCommand(t, db, "--format", "json", "list")
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "Coolsville"`)
	assert.Contains(t, out, `"content": "content"`)
}

func TestPermsWorkflow(t *testing.T) {
	db := testDB(t)

	_, err := runCommand(t, db, "create", "Coolsville", "content")
	require.NoError(t, err)

	// Unconfigured guild resolves to the default.
	out, err := runCommand(t, db, "perms", "for", "Coolsville", "--roles", "role-1")
	require.NoError(t, err)
	assert.Contains(t, out, "view,rename,edit")

	_, err = runCommand(t, db, "perms", "set", "role-1", "view,edit")
	require.NoError(t, err)
	_, err = runCommand(t, db, "overwrite", "set", "Coolsville", "role-1", "--allow", "delete", "--deny", "edit")
	require.NoError(t, err)

	out, err = runCommand(t, db, "perms", "for", "Coolsville", "--roles", "role-1")
	require.NoError(t, err)
	assert.Contains(t, out, "view,edit,delete")
}

func TestWatchWorkflow(t *testing.T) {
	db := testDB(t)

	_, err := runCommand(t, db, "create", "Coolsville", "content")
	require.NoError(t, err)

	_, err = runCommand(t, db, "watch", "add", "Coolsville")
	require.NoError(t, err)

	out, err := runCommand(t, db, "watch", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Coolsville")

	_, err = runCommand(t, db, "watch", "remove", "Coolsville")
	require.NoError(t, err)

	out, err = runCommand(t, db, "watch", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Coolsville")
}

func TestMissingDatabaseFlag(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--guild", "guild-1", "list"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
