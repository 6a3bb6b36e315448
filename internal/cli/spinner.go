package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerInterval is how often the spinner advances one frame.
const spinnerInterval = 80 * time.Millisecond

// spinnerShowElapsed is how long a render runs before the spinner
// starts appending the elapsed time to the status line.
const spinnerShowElapsed = 2 * time.Second

// spinnerFrames cycle while a render or export is in flight.
var spinnerFrames = []string{"◜", "◠", "◝", "◞", "◡", "◟"}

// Spinner shows an animated status line on stderr while a render or
// export is in flight. It stops on demand or when its context is
// cancelled, and routes its final state through the shared icon styles.
type Spinner struct {
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
	out    io.Writer
	start  time.Time
	quit   chan struct{}
	parked chan struct{}
	once   sync.Once

	mu      sync.Mutex
	message string
	width   int
}

// newSpinner creates a spinner with the given status message.
func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner that winds down when ctx is cancelled.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		parent:  ctx,
		ctx:     spinnerCtx,
		cancel:  cancel,
		out:     os.Stderr,
		start:   time.Now(),
		quit:    make(chan struct{}),
		parked:  make(chan struct{}),
		message: message,
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	go func() {
		defer close(s.parked)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.quit:
				return
			case <-ticker.C:
				s.render(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// SetMessage swaps the status line, e.g. when the pipeline moves from
// building the canvas to encoding the next output format.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Stop halts the animation and clears the status line. Safe to call
// more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		close(s.quit)
	})
	<-s.parked
	s.clearLine()
}

// StopWithSuccess stops the spinner and prints a success line with the
// elapsed time since the spinner was created.
func (s *Spinner) StopWithSuccess(message string) {
	elapsed := time.Since(s.start).Round(time.Millisecond)
	s.Stop()
	printSuccess("%s %s", message, StyleDim.Render(fmt.Sprintf("(%s)", elapsed)))
}

// StopWithError stops the spinner and prints an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner wound down because its context
// was cancelled rather than by an explicit Stop.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}

func (s *Spinner) render(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.message)
	if since := time.Since(s.start); since >= spinnerShowElapsed {
		line += " " + StyleDim.Render(fmt.Sprintf("%.0fs", since.Seconds()))
	}
	if w := len(s.message) + 8; w > s.width {
		s.width = w
	}
	fmt.Fprintf(s.out, "\r%s", line)
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
}
