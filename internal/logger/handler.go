package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

const (
	reset  = "\033[0m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	purple = "\033[35m"
	cyan   = "\033[36m"
	gray   = "\033[37m"
	white  = "\033[97m"
)

// PrettyHandler writes one human-readable line per record. Colours are
// optional so the same format can go to a log file.
type PrettyHandler struct {
	level   slog.Leveler
	w       io.Writer
	mu      *sync.Mutex
	attrs   []slog.Attr
	group   string
	colored bool
}

func NewPrettyHandler(w io.Writer, level slog.Leveler, colored bool) *PrettyHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &PrettyHandler{
		level:   level,
		w:       w,
		mu:      &sync.Mutex{},
		colored: colored,
	}
}

// Setup installs a PrettyHandler as the default slog logger.
func Setup(w io.Writer, level slog.Leveler, colored bool) *slog.Logger {
	log := slog.New(NewPrettyHandler(w, level, colored))
	slog.SetDefault(log)
	return log
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	fmt.Fprintf(h.w, "%s ", h.paint(gray, r.Time.Format("15:04:05.000")))
	fmt.Fprintf(h.w, "%s ", h.paint(levelColor(r.Level), fmt.Sprintf("%-5s", r.Level.String())))
	fmt.Fprint(h.w, h.paint(white, r.Message))

	for _, a := range h.attrs {
		h.printAttr("", a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.printAttr(h.group, a)
		return true
	})

	_, err := fmt.Fprintln(h.w)
	return err
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return red
	case level >= slog.LevelWarn:
		return yellow
	case level >= slog.LevelInfo:
		return green
	default:
		return purple
	}
}

func (h *PrettyHandler) paint(color string, text string) string {
	if !h.colored {
		return text
	}
	return color + text + reset
}

func (h *PrettyHandler) printAttr(group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if group != "" {
		key = group + "." + key
	}

	var val any
	switch a.Value.Kind() {
	case slog.KindTime:
		val = a.Value.Time().Format(time.RFC3339)
	case slog.KindDuration:
		val = a.Value.Duration().String()
	default:
		val = a.Value.Any()
	}

	fmt.Fprintf(h.w, " %s=%v", h.paint(cyan, key), val)
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	if h.group != "" {
		clone.group = h.group + "." + name
	} else {
		clone.group = name
	}
	return &clone
}
