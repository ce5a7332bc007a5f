package models

import (
	"fmt"
	"strings"
	"time"
)

// DisplayMode selects one of the three presentations.
type DisplayMode string

const (
	ModePrediction DisplayMode = "prediction"
	ModeGraphs     DisplayMode = "graphs"
	ModeAnalysis   DisplayMode = "analysis"
)

// DisplayModes lists every mode in selector order.
var DisplayModes = []DisplayMode{ModePrediction, ModeGraphs, ModeAnalysis}

// ParseDisplayMode accepts the mode value case-insensitively.
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch m := DisplayMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModePrediction, ModeGraphs, ModeAnalysis:
		return m, nil
	default:
		return "", fmt.Errorf("unknown display mode %q", s)
	}
}

func (m DisplayMode) Label() string {
	switch m {
	case ModePrediction:
		return "Prediction Price"
	case ModeGraphs:
		return "Graphs"
	case ModeAnalysis:
		return "Analysis"
	default:
		return string(m)
	}
}

// SessionState is the controller state of one session.
type SessionState string

const (
	StateIdle       SessionState = "idle"
	StateSubmitted  SessionState = "submitted"
	StateDisplaying SessionState = "displaying"
)

// FetchKind tells how a per-symbol fetch ended.
type FetchKind string

const (
	FetchOK    FetchKind = "ok"
	FetchEmpty FetchKind = "empty"
	FetchError FetchKind = "error"
)

// FetchOutcome is either a fetched series or a skip reason for one requested symbol.
type FetchOutcome struct {
	Symbol string       `json:"symbol"`
	Kind   FetchKind    `json:"kind"`
	Series *PriceSeries `json:"series,omitempty"`
	Reason string       `json:"reason,omitempty"`
}

func (o FetchOutcome) OK() bool { return o.Kind == FetchOK && o.Series != nil }

// NoticeLevel is the severity of a user-visible message.
type NoticeLevel string

const (
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

type Notice struct {
	Level NoticeLevel `json:"level"`
	Text  string      `json:"text"`
}

func Warning(format string, a ...interface{}) Notice {
	return Notice{Level: NoticeWarning, Text: fmt.Sprintf(format, a...)}
}

func ErrorNotice(format string, a ...interface{}) Notice {
	return Notice{Level: NoticeError, Text: fmt.Sprintf(format, a...)}
}

// Session is the state one browser (or API client) carries between requests.
type Session struct {
	ID        string         `json:"id"`
	State     SessionState   `json:"state"`
	Symbols   []string       `json:"symbols"`
	Range     DateRange      `json:"range"`
	Mode      DisplayMode    `json:"mode"`
	Outcomes  []FetchOutcome `json:"outcomes"`
	Notices   []Notice       `json:"notices,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewSession returns an Idle session with the default mode.
func NewSession(id string) *Session {
	return &Session{ID: id, State: StateIdle, Mode: ModePrediction}
}

// Fetched returns the successfully fetched series in fetch order.
func (s *Session) Fetched() []PriceSeries {
	out := make([]PriceSeries, 0, len(s.Outcomes))
	for _, o := range s.Outcomes {
		if o.OK() {
			out = append(out, *o.Series)
		}
	}
	return out
}

// Lookup returns the fetched series for symbol.
func (s *Session) Lookup(symbol string) (PriceSeries, bool) {
	for _, o := range s.Outcomes {
		if o.Symbol == symbol && o.OK() {
			return *o.Series, true
		}
	}
	return PriceSeries{}, false
}

// HasData reports whether a submit has completed.
func (s *Session) HasData() bool { return s.State == StateDisplaying }

// TakeNotices returns pending notices and clears them.
func (s *Session) TakeNotices() []Notice {
	n := s.Notices
	s.Notices = nil
	return n
}

// InteractionEvent records one user action for downstream consumers.
type InteractionEvent struct {
	Type      string      `json:"type"`
	SessionID string      `json:"session_id"`
	Symbols   []string    `json:"symbols,omitempty"`
	Mode      DisplayMode `json:"mode,omitempty"`
	Fetched   int         `json:"fetched"`
	Skipped   int         `json:"skipped"`
	At        time.Time   `json:"at"`
}

const (
	EventSubmit         = "submit"
	EventSubmitRejected = "submit_rejected"
	EventModeSwitch     = "mode_switch"
)
