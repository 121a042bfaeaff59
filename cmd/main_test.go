package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vxst/dedup/internal"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := NewApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"dedup"}, args...))
	return out.String(), err
}

// sampleInput has repeated 64-byte blocks and a short tail.
func sampleInput() []byte {
	a := bytes.Repeat([]byte("abcdefgh"), 8)
	b := bytes.Repeat([]byte("01234567"), 8)
	var data []byte
	for i := 0; i < 20; i++ {
		data = append(data, a...)
		data = append(data, byte(i))
		data = append(data, b[1:]...)
		data = append(data, b...)
	}
	return append(data, "tail"...)
}

func TestEncodeDecodeFiles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.bin")
	container := filepath.Join(dir, "input.dedup")
	restored := filepath.Join(dir, "restored.bin")

	data := sampleInput()
	require.NoError(t, os.WriteFile(input, data, 0644))

	_, err := runApp(t, "--block-size", "64", "--dict-size", "16", "-e", input, container)
	require.NoError(t, err)

	encoded, err := os.ReadFile(container)
	require.NoError(t, err)
	assert.Equal(t, []byte("DEDUP"), encoded[:5])
	assert.Less(t, len(encoded), len(data))

	_, err = runApp(t, "--block-size", "64", "--dict-size", "16", "-d", container, restored)
	require.NoError(t, err)

	got, err := os.ReadFile(restored)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestDecodeInvalidContainer(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "plain.txt")
	output := filepath.Join(dir, "out.bin")
	require.NoError(t, os.WriteFile(input, []byte("not a container"), 0644))

	_, err := runApp(t, "-d", input, output)
	assert.Error(t, err)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "failed decode must not leave output behind")
}

func TestUsageErrors(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in")
	require.NoError(t, os.WriteFile(input, []byte("data"), 0644))

	testCases := []struct {
		name string
		args []string
	}{
		{"No Arguments", nil},
		{"No Mode", []string{input, filepath.Join(dir, "out")}},
		{"Both Modes", []string{"-e", "-d", input, filepath.Join(dir, "out")}},
		{"Missing Output", []string{"-e", input}},
		{"Extra Argument", []string{"-e", input, filepath.Join(dir, "out"), "more"}},
		{"Inspect Without Path", []string{"inspect"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runApp(t, tc.args...)
			assert.ErrorIs(t, err, internal.ErrUsage)
		})
	}
}

func TestInspectCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.bin")
	container := filepath.Join(dir, "input.dedup")
	require.NoError(t, os.WriteFile(input, sampleInput(), 0644))

	_, err := runApp(t, "--block-size", "64", "--dict-size", "16", "-e", input, container)
	require.NoError(t, err)

	out, err := runApp(t, "--block-size", "64", "--dict-size", "16", "inspect", container)
	require.NoError(t, err)
	assert.Contains(t, out, "dictionary entries: 2 (2 referenced)")
	assert.Contains(t, out, "references:         40")
	assert.Contains(t, out, "raw blocks:         20")
	assert.Contains(t, out, "tail:               4 bytes")
}

func TestVerifyCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.bin")
	require.NoError(t, os.WriteFile(input, sampleInput(), 0644))

	out, err := runApp(t, "--block-size", "64", "verify", "--tmpdir", dir, input)
	require.NoError(t, err)
	assert.Contains(t, out, "OK "+input)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "intermediate container is removed")
}

func TestInvalidCodecFlags(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in")
	require.NoError(t, os.WriteFile(input, []byte("data"), 0644))

	_, err := runApp(t, "--block-size", "8", "-e", input, filepath.Join(dir, "out"))
	assert.Error(t, err)
}

func TestCalcFPCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.bin")
	require.NoError(t, os.WriteFile(input, sampleInput(), 0644))

	out, err := runApp(t, "--block-size", "64", "calcfp", input)
	require.NoError(t, err)
	assert.Contains(t, out, "block 1: off=0 fp=")
	assert.Contains(t, out, "tail: off=3840 len=4")
	assert.Contains(t, out, "60 blocks of 64 bytes, 22 distinct, 38 duplicate")

	out, err = runApp(t, "--block-size", "64", "calcfp", "-q", input)
	require.NoError(t, err)
	assert.NotContains(t, out, "block 1:")
}
