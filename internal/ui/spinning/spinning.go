// Package spinning shows a spinning symbol with a message while a long search or rendering
// is running, and handles interruptions (Ctrl+C) gracefully.
package spinning

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"k8s.io/klog/v2"
)

var (
	ThemeAscii = []rune("|/-\\")
	ThemeMoon  = []rune("🌑🌒🌓🌔🌕🌖🌗🌘")
	ThemeClock = []rune("🕐🕑🕒🕓🕔🕕🕖🕗🕘🕙🕚🕛")

	// Theme defaults to ThemeClock, but it can be set to anything else before calling New.
	Theme = ThemeClock

	// Period between updates of the symbol.
	Period = 250 * time.Millisecond
)

// Spinning displays a spinning symbol until Done is called.
type Spinning struct {
	w       io.Writer
	message string
	wg      sync.WaitGroup
	cancel  func()
}

// SafeInterrupt will capture SigInt (Ctrl+C) and SigTerm and call the provided onInterrupt.
// If the program haven't exited after gracePeriod, it will call Reset to reset the terminal
// and exit.
func SafeInterrupt(onInterrupt func(), gracePeriod time.Duration) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigChan
		fmt.Println()
		klog.Errorf("Got interrupted (signal %q), shutting down... (%s)", s, gracePeriod)
		if onInterrupt != nil {
			go onInterrupt()
		}
		time.Sleep(gracePeriod)
		Reset()
		klog.Fatalf("Graceful shutting down %s period expired, exiting.", gracePeriod)
	}()
}

// Reset terminal: make cursor visible, restore default terminal colors.
func Reset() {
	fmt.Print("\033[?25h\033[39;49;0m\n")
}

// New starts a spinning display, followed by message, on the standard output.
// It runs on a separate goroutine, until Spinning.Done is called or ctx is cancelled.
func New(ctx context.Context, message string) *Spinning {
	return NewWithWriter(ctx, os.Stdout, message)
}

// NewWithWriter is like New, but writes to w.
func NewWithWriter(ctx context.Context, w io.Writer, message string) *Spinning {
	s := &Spinning{w: w, message: message}
	theme := Theme
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(Period)
		defer ticker.Stop()
		// Hide the cursor while spinning.
		_, _ = fmt.Fprint(s.w, "\033[?25l")
		defer func() { _, _ = fmt.Fprint(s.w, "\033[?25h") }()
		start := time.Now()
		for idx := 0; ; idx = (idx + 1) % len(theme) {
			_, _ = fmt.Fprintf(s.w, "\r%c %s (%s)\033[0K", theme[idx], s.message, time.Since(start).Round(time.Second))
			select {
			case <-ctx.Done():
				_, _ = fmt.Fprint(s.w, "\r\033[0K")
				return
			case <-ticker.C:
			}
		}
	}()
	return s
}

// Done stops the spinning display and clears its line. It is safe to call more than once.
func (s *Spinning) Done() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.wg.Wait()
}
