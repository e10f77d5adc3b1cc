//go:build linux

package main

import (
	"github.com/vitormarinhofaria/proc-memory/process"
	"github.com/vitormarinhofaria/proc-memory/process_linux"
)

func openProcessByName(name string) (process.Process, error) {
	return process_linux.OpenProcessByName(name)
}
