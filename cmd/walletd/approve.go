package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"forgeauth/internal/wallet/keyring"
)

// terminalApprover asks on out and reads y/N answers from in, one prompt at
// a time. Only input read after a prompt is shown can answer it.
type terminalApprover struct {
	mu    sync.Mutex
	out   io.Writer
	lines chan inputLine
}

type inputLine struct {
	text string
	read time.Time
}

func newTerminalApprover(in io.Reader, out io.Writer) *terminalApprover {
	a := &terminalApprover{out: out, lines: make(chan inputLine)}
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			a.lines <- inputLine{text: sc.Text(), read: time.Now()}
		}
		close(a.lines)
	}()
	return a
}

func (a *terminalApprover) Approve(ctx context.Context, p keyring.Prompt) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Answers typed for an earlier, withdrawn prompt are stale.
	shown := time.Now()

	switch p.Kind {
	case keyring.PromptConnect:
		fmt.Fprint(a.out, "\nA site wants to connect to your wallet. Approve? [y/N] ")
	case keyring.PromptSign:
		fmt.Fprintf(a.out, "\nA site asks you to sign:\n\n%s\n\nApprove? [y/N] ", printable(p.Message))
	}

	for {
		select {
		case line, ok := <-a.lines:
			if !ok {
				return fmt.Errorf("%w: no terminal input", keyring.ErrRejected)
			}
			if line.read.Before(shown) {
				continue
			}
			switch strings.ToLower(strings.TrimSpace(line.text)) {
			case "y", "yes":
				return nil
			}
			return keyring.ErrRejected
		case <-ctx.Done():
			fmt.Fprintln(a.out, "\n(request withdrawn)")
			return ctx.Err()
		}
	}
}

// printable renders msg for the terminal, replacing control characters
// other than newlines.
func printable(msg []byte) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r >= 0x20 && r != 0x7f {
			return r
		}
		return '?'
	}, string(msg))
}
