package cli

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/careercoach/internal/client/client"
)

// syncWriter serialises writes from the REPL and the realtime goroutine.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	_, _ = fmt.Fprintln(a.out, args...)
}

// userMessage is what the user sees for err: the backend's own message when
// there is one, followed by per-field validation messages.
func userMessage(err error) string {
	var ce *client.Error
	if errors.As(err, &ce) {
		if fs := ce.FieldSummary(); fs != "" {
			return ce.Message + "\n" + fs
		}
		return ce.Message
	}
	return err.Error()
}
