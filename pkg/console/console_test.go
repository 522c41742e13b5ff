// Copyright (C) 2026  arvhal

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package console_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvhal/lc3go/pkg/console"
)

func pipeConsole(t *testing.T) (*console.Terminal, *os.File, *bytes.Buffer) {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	t.Cleanup(func() {
		r.Close()
		w.Close()
	})

	var out bytes.Buffer

	return console.New(r, &out), w, &out
}

// Raw mode is skipped on non-terminal input, so piped stdin works without
// termios access.
func TestRawModeSkippedOffTerminal(t *testing.T) {
	term, _, _ := pipeConsole(t)

	assert.NoError(t, term.EnterRaw())
	assert.NoError(t, term.Restore())
	assert.NoError(t, term.Restore())
}

func TestPoll(t *testing.T) {
	term, w, _ := pipeConsole(t)

	assert.False(t, term.Poll())

	_, err := w.Write([]byte{'a'})
	require.NoError(t, err)

	assert.True(t, term.Poll())

	key, err := term.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte('a'), key)

	assert.False(t, term.Poll())
}

func TestReadByteSequential(t *testing.T) {
	term, w, _ := pipeConsole(t)

	_, err := w.Write([]byte("hi"))
	require.NoError(t, err)

	for _, want := range []byte("hi") {
		key, err := term.ReadByte()
		require.NoError(t, err)
		assert.Equal(t, want, key)
	}
}

func TestWriteBuffersUntilFlush(t *testing.T) {
	term, _, out := pipeConsole(t)

	require.NoError(t, term.WriteByte('H'))
	require.NoError(t, term.WriteByte('i'))

	assert.Empty(t, out.String())

	require.NoError(t, term.Flush())
	assert.Equal(t, "Hi", out.String())
}
