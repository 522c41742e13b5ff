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

// Package console implements the machine's character device on a host
// terminal: unbuffered keyboard input with raw mode handling, and buffered
// display output.
package console

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Terminal is a machine.Console backed by a pair of host files, normally
// stdin and stdout.
type Terminal struct {
	in  *os.File
	out *bufio.Writer

	raw   bool
	saved unix.Termios
}

func New(in *os.File, out io.Writer) *Terminal {
	return &Terminal{
		in:  in,
		out: bufio.NewWriter(out),
	}
}

// EnterRaw turns off canonical input and echo so keystrokes reach the
// machine one character at a time. It is a no-op when the input is not a
// terminal, which keeps piped input working. Callers must pair it with
// Restore on every exit path.
func (t *Terminal) EnterRaw() error {
	if !term.IsTerminal(int(t.in.Fd())) {
		return nil
	}

	if err := termios.Tcgetattr(t.in.Fd(), &t.saved); err != nil {
		return err
	}

	rawstate := t.saved
	rawstate.Lflag &^= unix.ICANON | unix.ECHO

	if err := termios.Tcsetattr(
		t.in.Fd(), termios.TCSANOW, &rawstate,
	); err != nil {
		return err
	}

	t.raw = true

	return nil
}

// Restore reinstates the terminal attributes saved by EnterRaw. It is safe
// to call more than once and when raw mode was never entered.
func (t *Terminal) Restore() error {
	if !t.raw {
		return nil
	}

	t.raw = false

	return termios.Tcsetattr(t.in.Fd(), termios.TCSANOW, &t.saved)
}

// Poll reports whether a read of the input would return immediately. It
// never blocks: select(2) is issued with a zero timeout.
func (t *Terminal) Poll() bool {
	fd := int(t.in.Fd())

	var fds unix.FdSet
	fds.Set(fd)

	timeout := unix.Timeval{}

	n, err := unix.Select(fd+1, &fds, nil, nil, &timeout)

	return err == nil && n > 0
}

// ReadByte blocks until one character arrives.
func (t *Terminal) ReadByte() (byte, error) {
	scratch := make([]byte, 1)

	for {
		n, err := t.in.Read(scratch)

		if n > 0 {
			return scratch[0], nil
		}

		if err != nil {
			return 0, err
		}
	}
}

func (t *Terminal) WriteByte(c byte) error {
	return t.out.WriteByte(c)
}

func (t *Terminal) Flush() error {
	return t.out.Flush()
}
