package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestSeedAddQuestionsAndList(t *testing.T) {
	t.Setenv("TUTOR_DATABASE_DRIVER", "sqlite")
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "tutor.db")

	require.Contains(t, runCLI(t, "migrate", "--db", dbPath), "database migrated")
	require.Contains(t, runCLI(t, "seed", "--db", dbPath), "created 2 lesson(s)")
	require.Contains(t, runCLI(t, "seed", "--db", dbPath), "created 0 lesson(s)")

	listing := runCLI(t, "lessons", "--db", dbPath, "--grade", "4")
	require.Contains(t, listing, "Introduction to Shakespeare")
	require.Contains(t, listing, "The Best Christmas Present in the World")

	file := filepath.Join(dir, "qa.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"Who wrote Hamlet?": "Shakespeare.", "How many sonnets?": "154."}`), 0o600))

	out := runCLI(t, "add-questions", "--db", dbPath, "--lesson", "Introduction to Shakespeare", "--file", file)
	require.Contains(t, out, `added 2 question(s) to "Introduction to Shakespeare"`)

	out = runCLI(t, "add-questions", "--db", dbPath, "--lesson", "Unknown Lesson", "--file", file)
	require.Contains(t, out, "added 0 question(s)")
}

func TestAddQuestionsRejectsNonObjectFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "qa.json")
	require.NoError(t, os.WriteFile(file, []byte(`["not", "an", "object"]`), 0o600))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"add-questions", "--db", filepath.Join(dir, "tutor.db"), "--lesson", "x", "--file", file})
	require.Error(t, cmd.Execute())
}

func TestAddQuestionsRequiresFlags(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"add-questions"})
	require.Error(t, cmd.Execute())
}

func TestSeedClearsCachedCatalogue(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	t.Setenv("TUTOR_DATABASE_DRIVER", "sqlite")
	t.Setenv("TUTOR_REDIS_URL", "redis://"+mr.Addr())
	dbPath := filepath.Join(t.TempDir(), "tutor.db")

	mr.HSet("lessons:v1", "all", "[]")
	require.True(t, mr.Exists("lessons:v1"))

	require.Contains(t, runCLI(t, "seed", "--db", dbPath), "created 2 lesson(s)")
	require.False(t, mr.Exists("lessons:v1"))

	listing := runCLI(t, "lessons", "--db", dbPath)
	require.Contains(t, listing, "Introduction to Shakespeare")
	require.True(t, mr.Exists("lessons:v1"))
}
