//go:build linux

package logger

// TCGETS on Linux.
const ioctlGetTermios = 0x5401
