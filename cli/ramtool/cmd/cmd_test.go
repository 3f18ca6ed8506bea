package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ramkit/ramkit/internal/errors"
	testfile "github.com/ramkit/ramkit/internal/testutils/file"
	"github.com/ramkit/ramkit/pkg/memory"
)

const testLayout = `
name: header
fields:
  - {name: magic, type: string, offset: 0, length: 4}
  - {name: version, type: u16, offset: 4}
  - {name: total, type: u64, offset: 8}
`

func runRamtool(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	app := New()
	out := &bytes.Buffer{}
	app.baseCmd.SetOut(out)
	app.baseCmd.SetErr(io.Discard)
	app.baseCmd.SetArgs(append([]string{"--" + keyHome, home}, args...))
	err := app.Execute(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	return testfile.CreateTempFileWithContent(t, dir, name, data)
}

func headerImage(magic string, version byte, total []byte) []byte {
	img := make([]byte, 16)
	copy(img, magic)
	img[5] = version
	copy(img[8:], total)
	return img
}

func TestSlice_SinkKinds(t *testing.T) {
	home := t.TempDir()
	file := writeFile(t, home, "abba.bin", []byte("ABBA-DOMINO-78"))

	for _, sink := range []string{"stream", "channel", "buffer"} {
		t.Run(sink, func(t *testing.T) {
			out, err := runRamtool(t, home, "slice", file, "--offset", "5", "--length", "6", "--sink", sink)
			require.NoError(t, err)
			require.Equal(t, "DOMINO", out)

			out, err = runRamtool(t, home, "slice", file, "--offset", "5", "--length", "6", "--sink", sink, "--hex")
			require.NoError(t, err)
			require.Equal(t, "0x444f4d494e4f\n", out)
		})
	}
}

func TestSlice_RestOfImage(t *testing.T) {
	home := t.TempDir()
	file := writeFile(t, home, "abba.bin", []byte("ABBA-DOMINO-78"))
	out, err := runRamtool(t, home, "slice", file, "--offset", "12")
	require.NoError(t, err)
	require.Equal(t, "78", out)
}

func TestSlice_Errors(t *testing.T) {
	home := t.TempDir()
	file := writeFile(t, home, "abba.bin", []byte("ABBA-DOMINO-78"))

	_, err := runRamtool(t, home, "slice", file, "--offset", "10", "--length", "5")
	require.ErrorIs(t, err, memory.ErrOutOfRange)
	_, err = runRamtool(t, home, "slice", file, "--sink", "pipe")
	require.ErrorContains(t, err, `unknown sink "pipe"`)
	_, err = runRamtool(t, home, "slice", filepath.Join(home, "missing.bin"))
	require.ErrorContains(t, err, "failed to read image")
}

func TestSlice_EnvAndConfigFile(t *testing.T) {
	home := t.TempDir()
	file := writeFile(t, home, "abba.bin", []byte("ABBA-DOMINO-78"))

	t.Setenv("RAM_OFFSET", "5")
	t.Setenv("RAM_LENGTH", "4")
	out, err := runRamtool(t, home, "slice", file)
	require.NoError(t, err)
	require.Equal(t, "DOMI", out)

	// flags win over the environment
	out, err = runRamtool(t, home, "slice", file, "--length", "6")
	require.NoError(t, err)
	require.Equal(t, "DOMINO", out)

	cfgHome := t.TempDir()
	writeFile(t, cfgHome, defaultConfigFile, []byte("offset: 0\nlength: 4\n"))
	os.Unsetenv("RAM_OFFSET")
	os.Unsetenv("RAM_LENGTH")
	out, err = runRamtool(t, cfgHome, "slice", file)
	require.NoError(t, err)
	require.Equal(t, "ABBA", out)
}

func TestInspect(t *testing.T) {
	home := t.TempDir()
	layoutFile := writeFile(t, home, "header.yaml", []byte(testLayout))
	a := writeFile(t, home, "a.bin", headerImage("AAAA", 1, []byte{0, 0, 0, 0, 0, 0, 0, 7}))
	b := writeFile(t, home, "b.bin", headerImage("BBBB", 2, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}))

	out, err := runRamtool(t, home, "inspect", a, b, "--layout", layoutFile)
	require.NoError(t, err)
	require.Less(t, strings.Index(out, "a.bin"), strings.Index(out, "b.bin"))
	require.Contains(t, out, `"BBBB"`)
	require.Contains(t, out, "18446744073709551615")

	out, err = runRamtool(t, home, "inspect", b, "--layout", layoutFile, "--format", "json")
	require.NoError(t, err)
	var rec struct {
		Source string
		Fields []struct {
			Name  string
			Value any
		}
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	require.Equal(t, b, rec.Source)
	require.EqualValues(t, 2, rec.Fields[1].Value)

	short := writeFile(t, home, "short.bin", []byte("AB"))
	_, err = runRamtool(t, home, "inspect", a, short, "--layout", layoutFile)
	require.ErrorIs(t, err, errors.ErrOutOfRange)
	require.ErrorContains(t, err, "short.bin")

	_, err = runRamtool(t, home, "inspect", a)
	require.ErrorContains(t, err, `required flag(s) "layout" not set`)
}

func TestPatchThenInspect(t *testing.T) {
	home := t.TempDir()
	layoutFile := writeFile(t, home, "header.yaml", []byte(testLayout))
	file := writeFile(t, home, "img.bin", make([]byte, 16))

	out, err := runRamtool(t, home, "patch", file, "--layout", layoutFile, "--set", "magic=RAMK", "--set", "version=0x0102", "--set", "total=17777777777777788899")
	require.NoError(t, err)
	require.Contains(t, out, "patched 3 field(s)")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, []byte("RAMK\x01\x02"), data[:6])

	out, err = runRamtool(t, home, "inspect", file, "--layout", layoutFile, "--format", "yaml")
	require.NoError(t, err)
	require.Contains(t, out, "17777777777777788899")

	// a failing value leaves the file untouched
	_, err = runRamtool(t, home, "patch", file, "--layout", layoutFile, "--set", "magic=XXXX", "--set", "version=70000")
	require.ErrorIs(t, err, errors.ErrParse)
	after, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, data, after)
}

func TestSum(t *testing.T) {
	home := t.TempDir()
	words := bytes.Repeat([]byte{0xff}, 16)
	file := writeFile(t, home, "words.bin", append(words, 0, 0, 0, 0, 0, 0, 0, 1))

	out, err := runRamtool(t, home, "sum", file, "--count", "2")
	require.NoError(t, err)
	require.Equal(t, "36893488147419103230 (0x1fffffffffffffffe)\n", out)

	out, err = runRamtool(t, home, "sum", file, "--offset", "16")
	require.NoError(t, err)
	require.Equal(t, "1 (0x1)\n", out)

	_, err = runRamtool(t, home, "sum", file, "--count", "4")
	require.ErrorIs(t, err, errors.ErrOutOfRange)
}

func TestStore(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	file := writeFile(t, t.TempDir(), "abba.bin", []byte("ABBA-DOMINO-78"))

	out, err := runRamtool(t, home, "store", "list")
	require.NoError(t, err)
	require.Equal(t, "no images stored\n", out)

	out, err = runRamtool(t, home, "store", "put", "abba", file, "--description", "test image")
	require.NoError(t, err)
	require.Contains(t, out, "stored abba, 14 bytes")
	require.FileExists(t, filepath.Join(home, defaultImageStoreFile))

	out, err = runRamtool(t, home, "store", "list")
	require.NoError(t, err)
	require.Contains(t, out, "NAME")
	require.Contains(t, out, "test image")

	out, err = runRamtool(t, home, "store", "list", "--json")
	require.NoError(t, err)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	require.Equal(t, "abba", entries[0]["name"])
	require.Len(t, entries[0]["sha256"], 66)

	target := filepath.Join(t.TempDir(), "out.bin")
	_, err = runRamtool(t, home, "store", "get", "abba", target)
	require.NoError(t, err)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, "ABBA-DOMINO-78", string(data))

	_, err = runRamtool(t, home, "store", "delete", "abba")
	require.NoError(t, err)
	_, err = runRamtool(t, home, "store", "get", "abba", target)
	require.ErrorIs(t, err, errors.ErrNotFound)
	out, err = runRamtool(t, home, "store", "list")
	require.NoError(t, err)
	require.Equal(t, "no images stored\n", out)
}

func TestVersion(t *testing.T) {
	out, err := runRamtool(t, t.TempDir(), "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "ramtool dev"), out)
}

func TestLoggerFlags(t *testing.T) {
	home := t.TempDir()
	_, err := runRamtool(t, home, "version", "--log-format", "xml")
	require.ErrorContains(t, err, `unsupported log format "xml"`)

	_, err = runRamtool(t, home, "version", "--logger-config", filepath.Join(home, "missing.yaml"))
	require.ErrorContains(t, err, "opening logger configuration file")

	logCfg := writeFile(t, home, "log.yaml", []byte("defaultLevel: WARNING\nconsoleFormat: false\n"))
	_, err = runRamtool(t, home, "version", "--logger-config", logCfg, "--log-level", "debug")
	require.NoError(t, err)
}
