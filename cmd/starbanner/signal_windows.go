// Windows signal handling for stopping watch mode.
//
// This file is compiled only on Windows, where SIGTERM does not exist; the
// Go runtime maps CTRL_BREAK_EVENT and console close to os.Interrupt.

//go:build windows

package main

import (
	"os"
	"os/signal"
)

// ///////////////////////////////////////////////
// Signal Handling
// ///////////////////////////////////////////////

// signalChannel returns a buffered channel that receives os.Interrupt
// (Ctrl+C).
func signalChannel() <-chan os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	return ch
}
