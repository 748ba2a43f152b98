package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	err := app.Run(append([]string{"catalog"}, args...))
	return out.String(), err
}

func TestCompileCommand(t *testing.T) {
	out, err := run(t, "compile", "--criteria", `{"quality":"high","genre":"mystery"}`, "good mystery books")
	require.NoError(t, err)
	assert.Equal(t, "AND=[rating>=4 reviews>=1000] OR=[genre~\"mystery\"]\n", out)
}

func TestCompileCommand_SQL(t *testing.T) {
	out, err := run(t, "compile", "--dialect", "postgres", "--criteria", `{"priceRange":"budget","author":"Bernstein"}`, "cheap books by Bernstein")
	require.NoError(t, err)
	assert.Contains(t, out, `(price <= $1) AND (author ILIKE $2 ESCAPE '\')`)
	assert.Contains(t, out, "%Bernstein%")
}

func TestCompileCommand_Errors(t *testing.T) {
	_, err := run(t, "compile", "--criteria", `[1]`, "x")
	assert.Error(t, err)

	_, err = run(t, "compile", "--dialect", "mysql", "x")
	assert.Error(t, err)
}

func TestSeedCommand_RequiresFile(t *testing.T) {
	_, err := run(t, "seed")
	assert.Error(t, err)
}

func TestSearchCommand_RequiresText(t *testing.T) {
	_, err := run(t, "search")
	assert.Error(t, err)
}
