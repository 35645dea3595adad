//go:build !windows

// Package stderr captures output that native audio libraries (ALSA) write
// directly to file descriptor 2, so it cannot corrupt the TUI. Captured
// lines are forwarded to the logger.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"
	"syscall"

	"go.uber.org/zap"
)

var (
	mu         sync.Mutex
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	started    bool
	forwarded  sync.WaitGroup
)

// Start redirects fd 2 into a pipe and logs every non-empty line at warn
// level. It must run before the audio output is initialized. On failure
// the program continues with the original stderr.
func Start(log *zap.Logger) error {
	mu.Lock()
	defer mu.Unlock()
	if started {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	origStderr = orig
	pipeRead = r
	pipeWrite = w
	started = true

	log = log.Named("stderr")
	forwarded.Add(1)
	go func() {
		defer forwarded.Done()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				log.Warn(line)
			}
		}
	}()

	return nil
}

// WriteOriginal writes directly to the original stderr, bypassing capture.
// Used for fatal errors that must stay visible.
func WriteOriginal(msg string) {
	mu.Lock()
	fd := origStderr
	mu.Unlock()
	if fd < 0 {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = syscall.Write(fd, []byte(msg))
}

// Stop restores the original stderr and flushes pending lines.
func Stop() {
	mu.Lock()
	if !started {
		mu.Unlock()
		return
	}
	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)
	origStderr = -1
	pipeWrite.Close()
	started = false
	mu.Unlock()

	forwarded.Wait()
	pipeRead.Close()
}
