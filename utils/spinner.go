package utils

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const spinnerFrames = `⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏`

// Spinner initializes the progress indicator.
type Spinner struct {
	mu         sync.Mutex
	once       sync.Once
	delay      time.Duration
	writer     io.Writer
	message    string
	lastOutput string
	StopMsg    string
	hideCursor bool
	started    bool
	stopChan   chan struct{}
	stopped    chan struct{}
}

// NewSpinner instantiates a new progress indicator writing to stderr.
func NewSpinner(msg string, d time.Duration, hideCursor bool) *Spinner {
	return &Spinner{
		delay:      d,
		writer:     os.Stderr,
		message:    msg,
		hideCursor: hideCursor,
		stopChan:   make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

// SetWriter changes the output of the progress indicator. It must be called before Start.
func (s *Spinner) SetWriter(w io.Writer) {
	s.writer = w
}

// Start starts the progress indicator.
func (s *Spinner) Start() {
	s.started = true
	if s.hideCursor && runtime.GOOS != "windows" {
		// hides the cursor
		fmt.Fprint(s.writer, "\033[?25l")
	}

	go func() {
		defer close(s.stopped)

		ticker := time.NewTicker(s.delay)
		defer ticker.Stop()

		for {
			for _, r := range spinnerFrames {
				s.mu.Lock()
				output := fmt.Sprintf("\r%s%s %c%s", s.message, SuccessColor, r, DefaultColor)
				fmt.Fprint(s.writer, output)
				s.lastOutput = output
				s.mu.Unlock()

				select {
				case <-s.stopChan:
					return
				case <-ticker.C:
				}
			}
		}
	}()
}

// Stop stops the progress indicator and prints the StopMsg, if any.
// It waits for the animation to finish, so nothing is written afterwards.
// Calling Stop more than once has no effect.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.stopChan)
		if s.started {
			<-s.stopped
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		s.clear()
		s.RestoreCursor()
		if len(s.StopMsg) > 0 {
			fmt.Fprint(s.writer, s.StopMsg)
		}
	})
}

// RestoreCursor restores back the cursor visibility.
func (s *Spinner) RestoreCursor() {
	if s.hideCursor && runtime.GOOS != "windows" {
		// makes the cursor visible
		fmt.Fprint(s.writer, "\033[?25h")
	}
}

// clear deletes the last line. Caller must hold the locker.
func (s *Spinner) clear() {
	n := utf8.RuneCountInString(s.lastOutput)
	if runtime.GOOS == "windows" {
		clearString := "\r" + strings.Repeat(" ", n) + "\r"
		fmt.Fprint(s.writer, clearString)
		s.lastOutput = ""
		return
	}
	fmt.Fprint(s.writer, "\r\033[K") // clear line
	s.lastOutput = ""
}
