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

// lc3go loads one or more LC-3 program images and runs them.
//
// Exit status: 0 after a graceful HALT, 1 on an image load failure or a
// machine fault, 2 when no images are given, 130 when interrupted.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/arvhal/lc3go/pkg/console"
	"github.com/arvhal/lc3go/pkg/machine"
)

const usage = "lc3go [image-file1] ..."

type CLI struct {
	Trace  bool     `help:"Log every instruction as it executes."`
	Images []string `arg:"" optional:"" name:"image-file" help:"Program images to load, in order." type:"path"`
}

func main() {
	var cli CLI

	kong.Parse(&cli,
		kong.Name("lc3go"),
		kong.Description("An LC-3 virtual machine."),
	)

	os.Exit(run(&cli))
}

func run(cli *CLI) int {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	if cli.Trace {
		log.SetLevel(logrus.DebugLevel)
	}

	if len(cli.Images) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	var mc machine.Machine
	mc.State.Reset()

	for _, path := range cli.Images {
		if err := mc.LoadImageFile(path); err != nil {
			log.WithError(err).Errorf("failed to load image: %s", path)
			return 1
		}
	}

	term := console.New(os.Stdin, os.Stdout)

	if err := term.EnterRaw(); err != nil {
		log.WithError(err).Error("failed to configure terminal")
		return 1
	}

	defer term.Restore()

	mc.Console = term

	// The machine may be blocked reading the keyboard when the interrupt
	// arrives, so the watcher restores the terminal and exits directly
	// rather than asking the loop to wind down.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)

	go func() {
		<-interrupts
		term.Restore()
		fmt.Println()
		os.Exit(130)
	}()

	err := execute(&mc, log)
	term.Restore()

	if err != nil {
		log.WithError(err).Error("machine fault")
		return 1
	}

	return 0
}

// execute runs the machine to completion, tracing each instruction first
// when debug logging is enabled. The trace reads memory directly so that
// logging never triggers the keyboard status side effect.
func execute(mc *machine.Machine, log *logrus.Logger) error {
	if !log.IsLevelEnabled(logrus.DebugLevel) {
		return mc.Run()
	}

	for {
		pc := mc.State.Program
		instruction := mc.State.Memory[pc]

		log.WithFields(logrus.Fields{
			"pc":    fmt.Sprintf("%#04x", pc),
			"instr": fmt.Sprintf("%#04x", instruction),
			"op":    machine.OpcodeName(instruction),
			"reg":   fmt.Sprintf("%04x", mc.State.Registers),
		}).Debug("step")

		if err := mc.Step(); err != nil {
			if errors.Is(err, machine.ErrHalted) {
				return nil
			}

			return err
		}
	}
}
