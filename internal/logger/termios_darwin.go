//go:build darwin

package logger

import "syscall"

// TIOCGETA on macOS.
const ioctlGetTermios = syscall.TIOCGETA
