package onboarding

import (
	"errors"
	"fmt"
)

var (
	ErrSkipNotAllowed = errors.New("only the travel step can be skipped")
	ErrNoNextStep     = errors.New("already on the last step")
	ErrUnknownStep    = errors.New("unknown onboarding step")
)

type Step string

const (
	StepTravel       Step = "travel"
	StepEquipment    Step = "equipment"
	StepDocuments    Step = "documents"
	StepConsentForms Step = "consent_forms"
	StepConfirm      Step = "confirm"
)

var stepLabels = map[Step]string{
	StepTravel:       "Travel",
	StepEquipment:    "Equipment",
	StepDocuments:    "Documents",
	StepConsentForms: "U18 Forms",
	StepConfirm:      "Confirm",
}

func (s Step) Label() string {
	return stepLabels[s]
}

// ValidationError is a user-facing message for the step that failed.
type ValidationError struct {
	Step    Step
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Flow is the step sequence chosen once for a prospect. Step numbers are
// 1-based positions in that sequence.
type Flow struct {
	minor bool
	steps []Step
}

func NewFlow(minor bool) Flow {
	if minor {
		return Flow{minor: true, steps: []Step{StepTravel, StepEquipment, StepDocuments, StepConsentForms, StepConfirm}}
	}
	return Flow{steps: []Step{StepTravel, StepEquipment, StepDocuments, StepConfirm}}
}

func (f Flow) Minor() bool {
	return f.minor
}

func (f Flow) Steps() []Step {
	return append([]Step(nil), f.steps...)
}

func (f Flow) Total() int {
	return len(f.steps)
}

// Clamp moves n into [1, Total]. Stored step counters are free-form.
func (f Flow) Clamp(n int) int {
	if n < 1 {
		return 1
	}
	if n > len(f.steps) {
		return len(f.steps)
	}
	return n
}

func (f Flow) StepAt(n int) (Step, error) {
	if n < 1 || n > len(f.steps) {
		return "", fmt.Errorf("%w: %d", ErrUnknownStep, n)
	}
	return f.steps[n-1], nil
}

// Continue validates the current step and returns the next step number. On
// error the caller keeps current.
func (f Flow) Continue(current int, d Draft) (int, error) {
	current = f.Clamp(current)
	if current == len(f.steps) {
		return current, ErrNoNextStep
	}
	if err := f.Validate(f.steps[current-1], d); err != nil {
		return current, err
	}
	return current + 1, nil
}

// Skip advances past the travel step without validation.
func (f Flow) Skip(current int) (int, error) {
	current = f.Clamp(current)
	if f.steps[current-1] != StepTravel {
		return current, ErrSkipNotAllowed
	}
	return current + 1, nil
}

func (f Flow) Back(current int) int {
	return f.Clamp(current - 1)
}

func (f Flow) Validate(step Step, d Draft) error {
	fail := func(msg string) error { return &ValidationError{Step: step, Message: msg} }

	switch step {
	case StepEquipment:
		if !ValidSize(d.EquipmentSize) {
			return fail("Please select your equipment size")
		}
		if d.SchengenLast180Days == nil {
			return fail("Please answer the Schengen question")
		}
	case StepDocuments:
		if d.PassportPath == "" {
			return fail("Please upload your passport")
		}
		if f.minor && d.Parent1PassportPath == "" {
			return fail("Please upload Parent 1 passport")
		}
	case StepConsentForms:
		if f.minor {
			if d.VollmachtPath == "" {
				return fail("Please upload the signed Vollmacht")
			}
			if d.WellpassPath == "" {
				return fail("Please upload the signed Wellpass Consent")
			}
		}
	}
	return nil
}

// ValidateAll checks every step in order and returns the first failure.
func (f Flow) ValidateAll(d Draft) error {
	for _, step := range f.steps {
		if err := f.Validate(step, d); err != nil {
			return err
		}
	}
	return nil
}
