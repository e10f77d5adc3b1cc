//go:build windows

package main

import (
	"github.com/vitormarinhofaria/proc-memory/process"
	"github.com/vitormarinhofaria/proc-memory/process_windows"
)

func openProcessByName(name string) (process.Process, error) {
	return process_windows.OpenProcessByName(name)
}
