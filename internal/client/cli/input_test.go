package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	assert.ErrorIs(t, err, io.EOF)
}

func TestGetMultiline_DoubleEnter(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(rdr("a\nb\n\n\n"), "Enter text", &out)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", got)
}

func TestGetMultiline_EOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(rdr("only line"), "Enter text", &out)
	require.NoError(t, err)
	assert.Equal(t, "only line", got)
}

func stubTerminal(t *testing.T, tty bool, pw []byte, err error) {
	t.Helper()
	origTTY, origRead := isTerminal, readPassword
	isTerminal = func(int) bool { return tty }
	readPassword = func(int) ([]byte, error) { return pw, err }
	t.Cleanup(func() {
		isTerminal, readPassword = origTTY, origRead
	})
}

func TestGetPassword_Terminal(t *testing.T) {
	stubTerminal(t, true, []byte("s3cretpass"), nil)
	var out bytes.Buffer

	pw, err := GetPassword(rdr("ignored\n"), "Enter password", &out)
	require.NoError(t, err)
	assert.Equal(t, "s3cretpass", string(pw))
	assert.Equal(t, "Enter password: \n", out.String())
}

func TestGetPassword_Error(t *testing.T) {
	stubTerminal(t, true, nil, errors.New("boom"))
	var out bytes.Buffer

	_, err := GetPassword(rdr(""), "Enter password", &out)
	require.Error(t, err)
}

func TestGetPassword_PipedInput(t *testing.T) {
	stubTerminal(t, false, nil, errors.New("must not be called"))
	var out bytes.Buffer

	pw, err := GetPassword(rdr("piped-pass\n"), "Enter password", &out)
	require.NoError(t, err)
	assert.Equal(t, "piped-pass", string(pw))
}

func TestGetPassword_PipedKeepsSpaces(t *testing.T) {
	stubTerminal(t, false, nil, errors.New("must not be called"))
	var out bytes.Buffer
	r := rdr("  pass word  \r\n  tail ")

	pw, err := GetPassword(r, "Enter password", &out)
	require.NoError(t, err)
	assert.Equal(t, "  pass word  ", string(pw))

	pw, err = GetPassword(r, "Enter password", &out)
	require.NoError(t, err)
	assert.Equal(t, "  tail ", string(pw))

	_, err = GetPassword(r, "Enter password", &out)
	assert.ErrorIs(t, err, io.EOF)
}

func TestGetDefault(t *testing.T) {
	var out bytes.Buffer
	got, err := GetDefault(rdr("\n"), "Location", "Berlin", &out)
	require.NoError(t, err)
	assert.Equal(t, "Berlin", got)
	assert.Contains(t, out.String(), "Location [Berlin]")

	got, err = GetDefault(rdr("Riga\n"), "Location", "Berlin", &out)
	require.NoError(t, err)
	assert.Equal(t, "Riga", got)
}

func TestGetList(t *testing.T) {
	var out bytes.Buffer
	got, err := GetList(rdr("Go, , Kafka ,SQL\n"), "Skills", nil, &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Kafka", "SQL"}, got)

	got, err = GetList(rdr("\n"), "Skills", []string{"Rust"}, &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rust"}, got)
}

func TestGetChoice(t *testing.T) {
	opts := []string{"resume", "manual"}
	var out bytes.Buffer

	got, err := GetChoice(rdr("2\n"), "Source", opts, &out)
	require.NoError(t, err)
	assert.Equal(t, "manual", got)

	out.Reset()
	got, err = GetChoice(rdr("pdf\nRESUME\n"), "Source", opts, &out)
	require.NoError(t, err)
	assert.Equal(t, "resume", got)
	assert.Contains(t, out.String(), "Please choose one of: resume, manual")

	_, err = GetChoice(rdr("nope\n"), "Source", opts, &out)
	assert.ErrorIs(t, err, io.EOF)
}
