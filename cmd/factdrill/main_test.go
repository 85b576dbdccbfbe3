package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sky-flux/factdrill"
)

// run executes the CLI against a sqlite store in dir and returns what it
// printed.
func run(t *testing.T, dir, stdin string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--backend", "sqlite", "--data-dir", dir}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, dir, stdin string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, stdin, args...)
	require.NoError(t, err, out)
	return out
}

func TestDrillWithoutLearner(t *testing.T) {
	dir := t.TempDir()
	out := mustRun(t, dir, "0\n0\n0\n", "drill", "--numbers", "3", "--count", "3", "--single-attempt", "--seed", "7")

	assert.Contains(t, out, "Drill of 3 problems on [3]")
	assert.Equal(t, 3, strings.Count(out, "Wrong, the answer is"))
	assert.Contains(t, out, "0/3 correct (0.0%)")
	assert.Contains(t, out, "Practice next:")
}

func TestDrillStopsAtEndOfInput(t *testing.T) {
	out := mustRun(t, t.TempDir(), "0\n", "drill", "--count", "5", "--single-attempt")
	assert.Contains(t, out, "0/1 correct")
}

func TestDrillRetriesUntilCorrect(t *testing.T) {
	// With the only operand 1 and answers 1..10 typed in turn, every retry
	// loop eventually sees the right product.
	out := mustRun(t, t.TempDir(), "0\n1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n", "drill", "--numbers", "1", "--count", "1")

	assert.Contains(t, out, "Wrong, try again:")
	assert.Contains(t, out, "0/1 correct", "only the first answer counts")
}

func TestDrillRejectsInvalidFlags(t *testing.T) {
	_, err := run(t, t.TempDir(), "", "drill", "--numbers", "11")
	require.ErrorIs(t, err, factdrill.ErrOperandOutOfRange)

	_, err = run(t, t.TempDir(), "", "drill", "--count", "0")
	require.ErrorIs(t, err, factdrill.ErrInvalidConfig)
}

func TestLearnerFlow(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "", "users", "add", "Ann")
	assert.Contains(t, out, "Added Ann")
	assert.Contains(t, out, "Now practicing as Ann.")

	out = mustRun(t, dir, "", "users", "add", "Bob")
	assert.NotContains(t, out, "Now practicing", "second learner is not selected")

	out = mustRun(t, dir, "", "users")
	assert.Contains(t, out, "Ann")
	assert.Contains(t, out, "Bob")

	out = mustRun(t, dir, "", "users", "current")
	assert.Contains(t, out, "Ann")

	out = mustRun(t, dir, "", "settings", "set", "--numbers", "4,2", "--count", "2", "--single-attempt")
	assert.Contains(t, out, "[4 2]")

	out = mustRun(t, dir, "", "settings", "--json")
	assert.Contains(t, out, `"problem_count": 2`)
	assert.Contains(t, out, `"single_attempt": true`)

	mustRun(t, dir, "0\n0\n", "drill")

	out = mustRun(t, dir, "", "stats")
	assert.Contains(t, out, "1 session(s), 0/2 correct (0.0%)")
	assert.Contains(t, out, "Streak: 1 day(s)")
	assert.Contains(t, out, "FACT")

	out = mustRun(t, dir, "", "stats", "dates")
	assert.Contains(t, out, "DATE")

	// Bob has no statistics of his own.
	out = mustRun(t, dir, "", "--user", "bob", "stats")
	assert.Contains(t, out, "No practice on")

	mustRun(t, dir, "", "stats", "clear")
	out = mustRun(t, dir, "", "stats")
	assert.Contains(t, out, "No practice on")

	out = mustRun(t, dir, "", "settings", "reset")
	assert.Contains(t, out, "[1 2 3 4 5 6 7 8 9 10]")

	out = mustRun(t, dir, "", "users", "delete", "ann")
	assert.Contains(t, out, "Deleted Ann.")

	_, err := run(t, dir, "", "stats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no learner selected")
}

func TestStatsClearArgs(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "", "users", "add", "Ann")

	_, err := run(t, dir, "", "stats", "clear", "--all", "2026-01-02")
	require.Error(t, err)

	_, err = run(t, dir, "", "stats", "not-a-date")
	require.Error(t, err)

	out := mustRun(t, dir, "", "stats", "clear", "--all")
	assert.Contains(t, out, "Cleared all statistics of Ann.")
}

func TestSessionFlagsApply(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want func(*factdrill.SessionConfig)
	}{
		{"none", nil, func(*factdrill.SessionConfig) {}},
		{"count", []string{"--count", "20"}, func(c *factdrill.SessionConfig) { c.ProblemCount = 20 }},
		{"minutes implies timed", []string{"--minutes", "2"}, func(c *factdrill.SessionConfig) {
			c.DurationMinutes = 2
			c.Mode = factdrill.TimeBoxed
		}},
		{"timed", []string{"--timed"}, func(c *factdrill.SessionConfig) { c.Mode = factdrill.TimeBoxed }},
		{"reveal", []string{"--reveal", "--reveal-delay", "5"}, func(c *factdrill.SessionConfig) {
			c.RevealAnswer = true
			c.RevealDelaySeconds = 5
		}},
		{"numbers", []string{"-n", "7,8"}, func(c *factdrill.SessionConfig) { c.Operands = []int{7, 8} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f sessionFlags
			fl := pflag.NewFlagSet(tt.name, pflag.ContinueOnError)
			f.register(fl)
			require.NoError(t, fl.Parse(tt.args))

			want := factdrill.DefaultSessionConfig()
			tt.want(&want)
			assert.Equal(t, want, f.apply(fl, factdrill.DefaultSessionConfig()))
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "ERROR", parseLevel("ERROR").String())
	assert.Equal(t, "WARN", parseLevel("nonsense").String())
}
