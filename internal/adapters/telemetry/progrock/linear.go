package progrock

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/muesli/termenv"
	"github.com/vito/progrock"
)

// LinearWriter is a progrock.Writer that renders vertex completions as
// chronological, line-buffered output. It is the non-interactive sibling of
// a TUI tape: suitable for CI logs and plain terminals.
type LinearWriter struct {
	out    io.Writer
	output *termenv.Output

	mu      sync.Mutex
	names   map[string]string // vertex id -> name
	done    map[string]bool
	buffers map[string]*bytes.Buffer
}

// NewLinearWriter creates a LinearWriter printing to out.
func NewLinearWriter(out io.Writer) *LinearWriter {
	return &LinearWriter{
		out:     out,
		output:  termenv.NewOutput(out, termenv.WithProfile(colorProfile())),
		names:   make(map[string]string),
		done:    make(map[string]bool),
		buffers: make(map[string]*bytes.Buffer),
	}
}

func colorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// WriteStatus implements progrock.Writer. Vertex output is buffered and
// printed line by line with the vertex name as prefix; a completion line is
// printed once per vertex.
func (w *LinearWriter) WriteStatus(status *progrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, v := range status.Vertexes {
		w.names[v.Id] = v.Name
	}

	for _, l := range status.Logs {
		w.bufferLogLocked(l.Vertex, l.Data)
	}

	for _, v := range status.Vertexes {
		if v.Completed == nil || w.done[v.Id] {
			continue
		}
		w.done[v.Id] = true
		w.flushBufferLocked(v.Id)
		w.printCompletionLocked(v)
	}

	return nil
}

// Close flushes any buffered partial lines.
func (w *LinearWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for id := range w.buffers {
		w.flushBufferLocked(id)
	}
	return nil
}

func (w *LinearWriter) bufferLogLocked(id string, data []byte) {
	buf, ok := w.buffers[id]
	if !ok {
		buf = new(bytes.Buffer)
		w.buffers[id] = buf
	}
	buf.Write(data)

	for {
		line, err := buf.ReadBytes('\n')
		if err != nil {
			// Incomplete line, put it back.
			if len(line) > 0 {
				rest := new(bytes.Buffer)
				rest.Write(line)
				w.buffers[id] = rest
			}
			return
		}
		w.printLineLocked(id, line)
	}
}

func (w *LinearWriter) flushBufferLocked(id string) {
	buf, ok := w.buffers[id]
	if !ok || buf.Len() == 0 {
		return
	}
	w.printLineLocked(id, buf.Bytes())
	buf.Reset()
}

func (w *LinearWriter) printLineLocked(id string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}
	prefix := w.output.String(fmt.Sprintf("[%s]", w.names[id])).Faint().String()
	_, _ = fmt.Fprintf(w.out, "%s %s\n", prefix, line)
}

func (w *LinearWriter) printCompletionLocked(v *progrock.Vertex) {
	prefix := fmt.Sprintf("[%s]", v.Name)

	switch {
	case v.Error != nil:
		symbol := w.output.String("✗").Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(w.out, "%s %s %s\n", prefix, symbol, *v.Error)
	case v.Cached:
		symbol := w.output.String("●").Foreground(termenv.ANSIYellow).String()
		_, _ = fmt.Fprintf(w.out, "%s %s cached\n", prefix, symbol)
	default:
		symbol := w.output.String("✓").Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(w.out, "%s %s ok\n", prefix, symbol)
	}
}
