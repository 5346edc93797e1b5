package internal

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/AJYORK88/ConnectSphere-Online/domain"
)

//go:embed inspect.html
var templatesFS embed.FS

// StatsProvider supplies the dashboard counters.
type StatsProvider func() map[string]any

type historyRow struct {
	ID        domain.MessageID
	Timestamp string
	Text      string
	Reactions string
}

type pageData struct {
	Stats   map[string]any
	History []historyRow
}

// StartDebugServer serves a read-only HTML inspect page with live chat
// stats and the current history ring. Best-effort tooling; its failure
// never affects the chat server.
func StartDebugServer(log *slog.Logger, port int, endpoint string,
	history *domain.History, stats StatsProvider) {
	mux := http.NewServeMux()
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))

	mux.HandleFunc(endpoint, func(w http.ResponseWriter, _ *http.Request) {
		data := pageData{Stats: map[string]any{}}
		if stats != nil {
			data.Stats = stats()
		}
		for _, m := range history.Snapshot() {
			data.History = append(data.History, historyRow{
				ID:        m.ID,
				Timestamp: m.CreatedAt.Format(time.TimeOnly),
				Text:      m.Text,
				Reactions: strings.Join(m.Reactions, " "),
			})
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.Execute(w, data); err != nil {
			log.Debug("inspect page render failed", "error", err)
		}
	})

	go func() {
		addr := fmt.Sprintf("0.0.0.0:%d", port)
		log.Info("debug server listening", "addr", addr, "endpoint", endpoint)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Warn("debug server stopped", "error", err)
		}
	}()
}
