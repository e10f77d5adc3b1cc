//go:build windows

package process_windows

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/vitormarinhofaria/proc-memory/process"
)

// ListProcesses returns every process visible in a toolhelp snapshot,
// excluding the calling process itself. Enumeration order is snapshot order;
// callers must not rely on it.
func ListProcesses() ([]process.ProcessInfo, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("CreateToolhelp32Snapshot: %w", err)
	}
	defer windows.CloseHandle(snapshot)

	selfPID := windows.GetCurrentProcessId()
	var out []process.ProcessInfo

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))
	if err := windows.Process32First(snapshot, &entry); err != nil {
		return nil, fmt.Errorf("Process32First: %w", err)
	}
	for {
		if entry.ProcessID != selfPID {
			out = append(out, process.ProcessInfo{
				PID:  process.PID(entry.ProcessID),
				Name: windows.UTF16ToString(entry.ExeFile[:]),
			})
		}

		if err := windows.Process32Next(snapshot, &entry); err != nil {
			if errors.Is(err, windows.ERROR_NO_MORE_FILES) {
				break
			}
			return nil, fmt.Errorf("Process32Next: %w", err)
		}
	}

	return out, nil
}

// FindProcessByName returns every process whose executable file name equals
// name. The match is exact and case-sensitive.
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
		if info.Name == name {
			out = append(out, info)
		}
	}
	return out, nil
}

// FindProcessByPID returns information about a single process.
func FindProcessByPID(pid process.PID) (*process.ProcessInfo, error) {
	all, err := ListProcesses()
	if err != nil {
		return nil, err
	}
	for _, info := range all {
		if info.PID == pid {
			return &info, nil
		}
	}
	return nil, fmt.Errorf("%w: pid %d", process.ErrProcessNotFound, pid)
}

// OpenProcessByName opens the first process matching name for memory reads.
// Among multiple matches the lowest PID wins, for determinism. Both "no
// process with that name" and "matched but could not open" (typically an
// access denial) come back as process.ErrProcessNotFound.
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
