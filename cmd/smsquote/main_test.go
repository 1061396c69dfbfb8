package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type output struct {
	Text         string `yaml:"text"`
	Segmentation struct {
		CharacterSet    string `yaml:"characterSet"`
		Length          int    `yaml:"length"`
		Segments        int    `yaml:"segments"`
		PerSegmentLimit int    `yaml:"perSegmentLimit"`
	} `yaml:"segmentation"`
	Quote struct {
		Segments  int     `yaml:"segments"`
		UnitPrice float64 `yaml:"unitPrice"`
		Cost      float64 `yaml:"cost"`
	} `yaml:"quote"`
	WithinLimit bool `yaml:"withinLimit"`
	Sendable    bool `yaml:"sendable"`
}

func runCLI(t *testing.T, stdin string, args ...string) (int, output, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)

	var out output
	if code != 2 {
		require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &out), stdout.String())
	}
	return code, out, stderr.String()
}

func TestRun_Substitutes(t *testing.T) {
	code, out, _ := runCLI(t, "", "-v", "name=Anna", "-p", "0.5", "Hej {{name}}")

	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out.Text, "Hej Anna\n\n"))
	assert.Equal(t, "wide", out.Segmentation.CharacterSet)
	assert.Equal(t, 1, out.Segmentation.Segments)
	assert.InDelta(t, 0.5, out.Quote.Cost, 1e-9)
	assert.True(t, out.Sendable)
}

func TestRun_ReadsStdin(t *testing.T) {
	code, out, _ := runCLI(t, "  Reply STOP to opt out\n")

	assert.Equal(t, 0, code)
	assert.Equal(t, "Reply STOP to opt out", out.Text)
	assert.Equal(t, "standard", out.Segmentation.CharacterSet)
}

func TestRun_TooLong(t *testing.T) {
	code, out, _ := runCLI(t, "", "-m", "1", strings.Repeat("a", 200)+" STOP")

	assert.Equal(t, 1, code)
	assert.Equal(t, 2, out.Segmentation.Segments)
	assert.Equal(t, 153, out.Segmentation.PerSegmentLimit)
	assert.False(t, out.Sendable)
}

func TestRun_EmptyMessage(t *testing.T) {
	code, out, _ := runCLI(t, "   ")

	assert.Equal(t, 1, code)
	assert.False(t, out.Sendable)
}

func TestRun_OptOutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "optout.yaml")
	require.NoError(t, os.WriteFile(path, []byte("text: Reply END to unsubscribe.\nmarkers: [END]\n"), 0o600))

	code, out, _ := runCLI(t, "", "-f", path, "Hi")

	assert.Equal(t, 0, code)
	assert.Equal(t, "Hi\n\nReply END to unsubscribe.", out.Text)
	assert.Equal(t, "standard", out.Segmentation.CharacterSet)
}

func TestRun_List(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--list", "Hej {{name}}, {{time}} {{name}}"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Equal(t, "variables:\n    - name\n    - time\n", stdout.String())
}

func TestRun_BadFlag(t *testing.T) {
	code, _, stderr := runCLI(t, "", "--nope")

	assert.Equal(t, 2, code)
	assert.NotEmpty(t, stderr)
}
