// Package demo drives the Shield UI through scripted scenarios and
// captures the rendered frames. It answers from the mock service's canned
// data, so recordings are reproducible and need no backend.
package demo

import "time"

// StepType represents the type of action in a demo step.
type StepType int

const (
	// StepWait lets the program run for a duration, then captures a frame.
	StepWait StepType = iota
	// StepKey sends a single key press.
	StepKey
	// StepTypeText types a string character by character.
	StepTypeText
	// StepSettle runs until the outstanding request has settled.
	StepSettle
	// StepCapture captures the current frame.
	StepCapture
	// StepAnnotate adds a caption to the next captured frame.
	StepAnnotate
)

// Step represents a single action in a demo scenario.
type Step struct {
	Type        StepType
	Description string

	Key        string        // StepKey
	Text       string        // StepTypeText
	Duration   time.Duration // StepWait
	Annotation string        // StepAnnotate
}

// Scenario defines a complete demo scenario.
type Scenario struct {
	Name        string
	Description string
	Width       int // Terminal width (default 120)
	Height      int // Terminal height (default 40)
	Setup       *ScenarioSetup
	Steps       []Step
}

// ScenarioSetup defines how the stand-in service behaves.
type ScenarioSetup struct {
	Theme string

	// Latency is added to every request so the busy state is visible.
	Latency time.Duration

	FailChat         bool
	FailPredict      bool
	FailPredictAfter int
}

// DefaultSetup returns a minimal setup for demos.
func DefaultSetup() *ScenarioSetup {
	return &ScenarioSetup{
		Theme:   "shield",
		Latency: 800 * time.Millisecond,
	}
}

// Validate checks that the scenario is valid and fills defaults.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return &ValidationError{Field: "Name", Message: "scenario name is required"}
	}
	if s.Width <= 0 {
		s.Width = 120
	}
	if s.Height <= 0 {
		s.Height = 40
	}
	if s.Setup == nil {
		s.Setup = DefaultSetup()
	}
	return nil
}

// ValidationError represents a scenario validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + ": " + e.Message
}

// Step builder functions for fluent scenario construction

// Wait creates a wait step.
func Wait(d time.Duration) Step {
	return Step{Type: StepWait, Duration: d}
}

// Key creates a key press step.
func Key(key string) Step {
	return Step{Type: StepKey, Key: key}
}

// KeyWithDesc creates a key press step with a description.
func KeyWithDesc(key, description string) Step {
	return Step{Type: StepKey, Key: key, Description: description}
}

// Type creates a text typing step.
func Type(text string) Step {
	return Step{Type: StepTypeText, Text: text}
}

// Settle waits for the in-flight request to finish.
func Settle() Step {
	return Step{Type: StepSettle}
}

// Annotate creates an annotation step.
func Annotate(text string) Step {
	return Step{Type: StepAnnotate, Annotation: text}
}

// Capture creates a frame capture step.
func Capture() Step {
	return Step{Type: StepCapture}
}
