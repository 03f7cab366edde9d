// Package scenarios contains built-in demo scenarios for Shield.
package scenarios

import (
	"time"

	"github.com/shieldai/shield/internal/demo"
	"github.com/shieldai/shield/internal/keys"
)

// Basic asks the assistant two questions and copies the last answer.
var Basic = &demo.Scenario{
	Name:        "basic",
	Description: "Ask the assistant about deductibles and claims",
	Width:       120,
	Height:      40,
	Setup:       demo.DefaultSetup(),
	Steps: []demo.Step{
		demo.Wait(1 * time.Second),

		demo.Annotate("Ask a question"),
		demo.Type("What is a deductible?"),
		demo.Capture(),
		demo.Key(keys.Enter),
		demo.Wait(500 * time.Millisecond),
		demo.Settle(),
		demo.Wait(1500 * time.Millisecond),

		demo.Annotate("Follow up"),
		demo.Type("How do I file a claim?"),
		demo.Key(keys.Enter),
		demo.Wait(500 * time.Millisecond),
		demo.Settle(),
		demo.Wait(1500 * time.Millisecond),

		demo.Annotate("Copy the answer"),
		demo.Key(keys.CtrlY),
		demo.Wait(1 * time.Second),
	},
}

// Premium fills the calculator, gets a premium, then shows that a failed
// retry keeps the previous result.
var Premium = &demo.Scenario{
	Name:        "premium",
	Description: "Estimate a premium, then recover from a failed retry",
	Width:       120,
	Height:      40,
	Setup: &demo.ScenarioSetup{
		Theme:            "shield",
		Latency:          800 * time.Millisecond,
		FailPredictAfter: 1,
	},
	Steps: []demo.Step{
		demo.Wait(500 * time.Millisecond),

		demo.Annotate("Open the calculator"),
		demo.Key(keys.CtrlT),
		demo.Wait(1 * time.Second),

		demo.Annotate("Calculate"),
		demo.Key(keys.Enter),
		demo.Wait(500 * time.Millisecond),
		demo.Settle(),
		demo.Wait(1500 * time.Millisecond),

		demo.Annotate("A failed retry keeps the last premium"),
		demo.Key(keys.Enter),
		demo.Settle(),
		demo.Wait(1500 * time.Millisecond),
		demo.Key(keys.Enter),
		demo.Wait(1 * time.Second),

		demo.Annotate("Switching tabs keeps both conversations"),
		demo.Key(keys.CtrlT),
		demo.Wait(1 * time.Second),
	},
}

// All returns all available scenarios.
func All() []*demo.Scenario {
	return []*demo.Scenario{
		Basic,
		Premium,
	}
}

// Get returns a copy of the named scenario, or nil if not found.
func Get(name string) *demo.Scenario {
	for _, s := range All() {
		if s.Name == name {
			c := *s
			return &c
		}
	}
	return nil
}
