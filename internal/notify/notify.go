// Package notify publishes export completion events to NATS so other tooling
// can react to finished exports.
package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/noteport/internal/logfields"
)

// ExportEvent is the message published after every export run.
type ExportEvent struct {
	Root       string    `json:"root"`
	OutputDir  string    `json:"output_dir"`
	Depth      string    `json:"depth"`
	Expected   int       `json:"expected"`
	Copied     int       `json:"copied"`
	HTML       bool      `json:"html"`
	DurationMS int64     `json:"duration_ms"`
	FinishedAt time.Time `json:"finished_at"`
}

// Publisher sends export events to a NATS subject.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// NewPublisher connects to the given NATS URL.
func NewPublisher(url, subject string) (*Publisher, error) {
	if url == "" {
		return nil, fmt.Errorf("notify: NATS URL is required")
	}
	if subject == "" {
		subject = "noteport.exports"
	}
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	slog.Info("NATS publisher initialized", logfields.URL(url), logfields.Subject(subject))
	return &Publisher{conn: conn, subject: subject}, nil
}

// Publish sends one export event. Failures are returned, not fatal; callers
// log and continue.
func (p *Publisher) Publish(ev ExportEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal export event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish export event: %w", err)
	}
	return p.conn.Flush()
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
