// Package gitignore answers "would git ignore this path?" through a single
// long-lived `git check-ignore` subprocess, so directory walks do not pay
// process startup once per file. The protocol is strictly line oriented:
// every path written produces exactly one response line.
package gitignore

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// closeTimeout bounds the graceful join on shutdown before the subprocess
// is killed.
const closeTimeout = 5 * time.Second

// Filter classifies paths against the gitignore rules visible from its
// root directory. It is not safe for concurrent use; the write/read pairing
// must stay in lockstep.
type Filter struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	out    *bufio.Reader
	stderr *bytes.Buffer
	closed bool
}

// New starts a `git check-ignore` subprocess rooted at dir. A failure to
// start is an environment error: the caller is expected to abort the whole
// run rather than silently skip ignore filtering.
func New(dir string) (*Filter, error) {
	cmd := exec.Command("git", "check-ignore", "--verbose", "--non-matching", "--stdin")
	cmd.Dir = dir
	// GIT_FLUSH keeps git from buffering responses behind our reads.
	cmd.Env = append(os.Environ(), "GIT_FLUSH=1")

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("unable to run git check-ignore: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("unable to run git check-ignore: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("unable to run git check-ignore: %w", err)
	}

	return &Filter{
		cmd:    cmd,
		stdin:  stdin,
		out:    bufio.NewReader(stdout),
		stderr: &stderr,
	}, nil
}

// Ignored reports whether path is ignored by git. Responses have the form
// "ignorefile:lineno:pattern\tpath"; the first three fields are empty when
// the path is not ignored.
func (f *Filter) Ignored(path string) (bool, error) {
	if _, err := fmt.Fprintf(f.stdin, "%s\n", path); err != nil {
		return false, f.exitError(err)
	}
	response, err := f.out.ReadString('\n')
	if err != nil {
		return false, f.exitError(err)
	}
	return !strings.HasPrefix(response, "::\t"), nil
}

// exitError turns a broken pipe or EOF into a diagnosis of the subprocess
// exit, surfacing its captured stderr.
func (f *Filter) exitError(cause error) error {
	_ = f.stdin.Close()
	f.closed = true
	waitErr := f.cmd.Wait()
	detail := strings.TrimSpace(f.stderr.String())
	if waitErr != nil {
		if detail != "" {
			return fmt.Errorf("git check-ignore failed: %v: %s", waitErr, detail)
		}
		return fmt.Errorf("git check-ignore failed: %v", waitErr)
	}
	if detail != "" {
		return fmt.Errorf("git check-ignore exited unexpectedly: %s", detail)
	}
	return fmt.Errorf("git check-ignore exited unexpectedly: %v", cause)
}

// Close shuts the subprocess down: stdin is closed so git sees EOF, then a
// bounded graceful join, then a hard kill so the process is never leaked.
func (f *Filter) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	_ = f.stdin.Close()

	done := make(chan error, 1)
	go func() { done <- f.cmd.Wait() }()

	select {
	case err := <-done:
		return err
	case <-time.After(closeTimeout):
		_ = f.cmd.Process.Kill()
		return <-done
	}
}
