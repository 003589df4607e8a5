package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventModelBuilt     EventType = "model_built"
	EventBuildFailed    EventType = "build_failed"
	EventModelSubmitted EventType = "model_submitted"
	EventSubmitFailed   EventType = "submit_failed"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// BuildEvent reports the outcome of assembling one model definition.
type BuildEvent struct {
	EventBase
	Family      string `json:"family,omitempty"`
	Model       string `json:"model"`
	Transitions int    `json:"transitions"`
	Err         error  `json:"-"`
}

// SubmitEvent reports the outcome of handing one model to a sink.
type SubmitEvent struct {
	EventBase
	Family   string        `json:"family,omitempty"`
	Model    string        `json:"model"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for observability. Nil hooks are skipped.
type LifecycleHooks struct {
	OnModelBuilt func(context.Context, *BuildEvent)
	OnBuildError func(context.Context, *BuildEvent)
	OnSubmit     func(context.Context, *SubmitEvent)
	OnSubmitFail func(context.Context, *SubmitEvent)
}
