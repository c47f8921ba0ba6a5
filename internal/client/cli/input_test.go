package cli

import (
	"bufio"
	"bytes"
	"errors"
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
	got, err := GetSimpleText(rdr("  hello world \n"), "Name?", &out)
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
	require.Error(t, err)
}

func TestGetDefaultText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetDefaultText(rdr("\n"), "Title", "Alien", &out)
	require.NoError(t, err)
	assert.Equal(t, "Alien", got)
	assert.Contains(t, out.String(), "Title [Alien]")

	got, err = GetDefaultText(rdr("Aliens\n"), "Title", "Alien", &out)
	require.NoError(t, err)
	assert.Equal(t, "Aliens", got)
}

func TestGetList(t *testing.T) {
	var out bytes.Buffer
	got, err := GetList(rdr("Drama, , Crime ,\n"), "Genres", nil, &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"Drama", "Crime"}, got)

	got, err = GetList(rdr("\n"), "Genres", []string{"Horror", "Sci-Fi"}, &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"Horror", "Sci-Fi"}, got)
}

func TestGetFloat(t *testing.T) {
	var out bytes.Buffer
	got, err := GetFloat(rdr("7.5\n"), "Rating", 0, &out)
	require.NoError(t, err)
	assert.Equal(t, 7.5, got)

	got, err = GetFloat(rdr("\n"), "Rating", 8.1, &out)
	require.NoError(t, err)
	assert.Equal(t, 8.1, got)

	_, err = GetFloat(rdr("high\n"), "Rating", 0, &out)
	require.ErrorContains(t, err, "not a number")
}

func stubTerminal(t *testing.T, tty bool, pw func(int) ([]byte, error)) {
	t.Helper()
	oldTTY, oldRead := isTerminal, readPassword
	isTerminal = func(int) bool { return tty }
	if pw != nil {
		readPassword = pw
	}
	t.Cleanup(func() { isTerminal, readPassword = oldTTY, oldRead })
}

func TestGetPassword_Terminal(t *testing.T) {
	stubTerminal(t, true, func(int) ([]byte, error) { return []byte("s3cret"), nil })

	var out bytes.Buffer
	got, err := GetPassword(rdr(""), &out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
	assert.Equal(t, "Enter password: \n", out.String())
}

func TestGetPassword_Error(t *testing.T) {
	stubTerminal(t, true, func(int) ([]byte, error) { return nil, errors.New("boom") })

	var out bytes.Buffer
	_, err := GetPassword(rdr(""), &out)
	require.Error(t, err)
}

func TestGetPassword_PipedInput(t *testing.T) {
	stubTerminal(t, false, func(int) ([]byte, error) {
		t.Fatal("terminal must not be read")
		return nil, nil
	})

	var out bytes.Buffer
	got, err := GetPassword(rdr(" with spaces \r\nnext\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, " with spaces ", got)
}
