package gitcli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/osvaldoandrade/treesync/internal/progress"
)

const (
	progressChunkSize = 128
	progressTickRate  = 100 * time.Millisecond
)

var percentPattern = regexp.MustCompile(`(\d+)%`)

// runMonitored executes one long-running git subcommand while feeding its
// stderr stream into the reporter. git overwrites a single display line with
// carriage returns, so the stream is read in raw chunks, never line by line.
//
// A non-zero exit or a fatal/error marker anywhere in the captured stream is
// a failure; git sometimes exits zero after printing an error line.
func (t *Tool) runMonitored(ctx context.Context, dir string, args []string, rep progress.Reporter, label string) error {
	cmd := exec.CommandContext(ctx, t.bin, args...)
	cmd.Dir = dir
	cmd.Stdout = io.Discard
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("open stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start git %s: %w", args[0], err)
	}

	rep.Message(label)

	chunks := make(chan string, 64)
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		defer close(chunks)
		buf := make([]byte, progressChunkSize)
		for {
			n, readErr := stderr.Read(buf)
			if n > 0 {
				chunks <- string(buf[:n])
			}
			if readErr != nil {
				return
			}
		}
	}()

	// Wait closes the pipe; it must not run before the reader has drained it.
	exited := make(chan error, 1)
	go func() {
		<-readerDone
		exited <- cmd.Wait()
	}()

	ticker := time.NewTicker(progressTickRate)
	defer ticker.Stop()

	var captured []string
	pending := chunks
	for {
		select {
		case chunk, ok := <-pending:
			if !ok {
				pending = nil
				continue
			}
			captured = append(captured, chunk)
			stage := strings.TrimSpace(strings.SplitN(chunk, ":", 2)[0])
			if matches := percentPattern.FindAllStringSubmatch(chunk, -1); len(matches) > 0 {
				if percent, convErr := strconv.Atoi(matches[len(matches)-1][1]); convErr == nil {
					rep.Position(percent)
					if stage != "" {
						rep.Message(label + " " + stage)
					}
				}
			}
		case <-ticker.C:
			rep.Tick()
		case exitErr := <-exited:
			for chunk := range chunks {
				captured = append(captured, chunk)
			}
			tail, found := errorTail(captured)
			if exitErr == nil && !found {
				rep.Position(100)
				rep.Message(label + " complete")
				return nil
			}
			rep.Message(label + " ERROR")
			if found {
				return errors.New(tail)
			}
			return fmt.Errorf("git %s: %v: failed to capture git error message", args[0], exitErr)
		}
	}
}

// errorTail locates the first line carrying a fatal/error marker and returns
// everything from there on, preserving multi-line explanations that only
// become visible once the stream closes.
func errorTail(captured []string) (string, bool) {
	lines := splitStream(strings.Join(captured, ""))
	for i, line := range lines {
		if strings.Contains(line, "fatal") || strings.Contains(line, "error") {
			return strings.Join(lines[i:], "\n"), true
		}
	}
	return "", false
}

func splitStream(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
}
