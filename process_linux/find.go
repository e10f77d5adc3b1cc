//go:build linux

package process_linux

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vitormarinhofaria/proc-memory/process"
)

// ListProcesses returns every process visible under /proc, excluding the
// calling process itself. Enumeration order is directory order; callers must
// not rely on it.
func ListProcesses() ([]process.ProcessInfo, error) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil, fmt.Errorf("read /proc: %w", err)
	}

	selfPID := os.Getpid()
	var out []process.ProcessInfo

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil || pid <= 0 {
			continue // not a PID dir
		}
		if pid == selfPID {
			continue // skip ourselves
		}

		info, err := readProcessInfo(process.PID(pid))
		if err != nil {
			continue // process may have exited mid-scan
		}
		out = append(out, *info)
	}

	return out, nil
}

// FindProcessByName returns every process whose comm or exe basename equals
// name. The match is exact and case-sensitive, like pidof.
func FindProcessByName(name string) ([]process.ProcessInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("empty process name")
	}

	all, err := ListProcesses()
	if err != nil {
		return nil, err
	}

	var out []process.ProcessInfo
	for _, info := range all {
		if info.Name == name || (info.Exe != "" && filepath.Base(info.Exe) == name) {
			out = append(out, info)
		}
	}
	return out, nil
}

// FindProcessByPID returns information about a single process.
func FindProcessByPID(pid process.PID) (*process.ProcessInfo, error) {
	if _, err := os.Stat(filepath.Join("/proc", strconv.Itoa(int(pid)))); err != nil {
		return nil, fmt.Errorf("%w: pid %d", process.ErrProcessNotFound, pid)
	}
	return readProcessInfo(pid)
}

// OpenProcessByName opens the first process matching name for memory reads.
// Among multiple matches the lowest PID wins, for determinism. Both "no
// process with that name" and "matched but could not open" come back as
// process.ErrProcessNotFound.
func OpenProcessByName(name string) (process.Process, error) {
	matches, err := FindProcessByName(name)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %q", process.ErrProcessNotFound, name)
	}

	best := matches[0]
	for _, m := range matches[1:] {
		if m.PID < best.PID {
			best = m
		}
	}

	p, err := NewWithPID(best.PID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", process.ErrProcessNotFound, name, err)
	}
	return p, nil
}

func readProcessInfo(pid process.PID) (*process.ProcessInfo, error) {
	procPath := filepath.Join("/proc", strconv.Itoa(int(pid)))

	comm, err := os.ReadFile(filepath.Join(procPath, "comm"))
	if err != nil {
		return nil, fmt.Errorf("read comm for pid %d: %w", pid, err)
	}

	// Resolving exe may fail for zombies or without permission; the name
	// alone is still useful.
	exe, _ := os.Readlink(filepath.Join(procPath, "exe"))

	return &process.ProcessInfo{
		PID:  pid,
		Name: string(bytes.TrimRight(comm, "\n\r \t")),
		Exe:  exe,
	}, nil
}
