package onboarding

import (
	"errors"
	"testing"
)

func yes() *bool {
	v := true
	return &v
}

func TestNewFlow_SelectsStepsOnce(t *testing.T) {
	adult := NewFlow(false)
	if adult.Total() != 4 {
		t.Fatalf("expected 4 adult steps, got %d", adult.Total())
	}
	if step, _ := adult.StepAt(4); step != StepConfirm {
		t.Fatalf("expected confirm as step 4, got %s", step)
	}

	minor := NewFlow(true)
	if minor.Total() != 5 {
		t.Fatalf("expected 5 minor steps, got %d", minor.Total())
	}
	if step, _ := minor.StepAt(4); step != StepConsentForms {
		t.Fatalf("expected consent forms as step 4, got %s", step)
	}
	if _, err := minor.StepAt(6); !errors.Is(err, ErrUnknownStep) {
		t.Fatalf("expected unknown step error, got %v", err)
	}
}

func TestContinue_EquipmentRequiresSizeAndSchengen(t *testing.T) {
	flow := NewFlow(false)
	tests := []struct {
		name    string
		draft   Draft
		wantMsg string
	}{
		{name: "missing size", draft: Draft{SchengenLast180Days: yes()}, wantMsg: "Please select your equipment size"},
		{name: "missing schengen", draft: Draft{EquipmentSize: "M"}, wantMsg: "Please answer the Schengen question"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next, err := flow.Continue(2, tc.draft)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Message != tc.wantMsg || verr.Step != StepEquipment {
				t.Fatalf("unexpected validation error %+v", verr)
			}
			if next != 2 {
				t.Fatalf("expected step to stay at 2, got %d", next)
			}
		})
	}

	next, err := flow.Continue(2, Draft{EquipmentSize: "XL", SchengenLast180Days: yes()})
	if err != nil || next != 3 {
		t.Fatalf("expected advance to 3, got %d err=%v", next, err)
	}
}

func TestContinue_DocumentsAndConsentForMinors(t *testing.T) {
	flow := NewFlow(true)
	draft := Draft{PassportPath: "p/passport_1.pdf"}

	_, err := flow.Continue(3, draft)
	if err == nil || err.Error() != "Please upload Parent 1 passport" {
		t.Fatalf("expected parent passport error, got %v", err)
	}

	draft.Parent1PassportPath = "p/parent1_passport_1.pdf"
	if next, err := flow.Continue(3, draft); err != nil || next != 4 {
		t.Fatalf("expected advance to consent forms, got %d err=%v", next, err)
	}

	if _, err := flow.Continue(4, draft); err == nil || err.Error() != "Please upload the signed Vollmacht" {
		t.Fatalf("expected vollmacht error, got %v", err)
	}
	draft.VollmachtPath = "p/vollmacht_1.pdf"
	if _, err := flow.Continue(4, draft); err == nil || err.Error() != "Please upload the signed Wellpass Consent" {
		t.Fatalf("expected wellpass error, got %v", err)
	}
}

func TestContinue_AdultDoesNotNeedParentPassport(t *testing.T) {
	flow := NewFlow(false)
	if next, err := flow.Continue(3, Draft{PassportPath: "p/passport_1.pdf"}); err != nil || next != 4 {
		t.Fatalf("expected advance, got %d err=%v", next, err)
	}
	if _, err := flow.Continue(4, Draft{}); !errors.Is(err, ErrNoNextStep) {
		t.Fatalf("expected no next step on confirm, got %v", err)
	}
}

func TestSkipAndBack(t *testing.T) {
	flow := NewFlow(false)

	if next, err := flow.Skip(1); err != nil || next != 2 {
		t.Fatalf("expected skip from travel to 2, got %d err=%v", next, err)
	}
	if next, err := flow.Skip(2); !errors.Is(err, ErrSkipNotAllowed) || next != 2 {
		t.Fatalf("expected skip to be refused on equipment, got %d err=%v", next, err)
	}
	if got := flow.Back(1); got != 1 {
		t.Fatalf("expected back to floor at 1, got %d", got)
	}
	if got := flow.Back(3); got != 2 {
		t.Fatalf("expected back to 2, got %d", got)
	}
}

func TestValidateAll_ReturnsFirstFailure(t *testing.T) {
	flow := NewFlow(true)
	err := flow.ValidateAll(Draft{EquipmentSize: "S", SchengenLast180Days: yes()})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Step != StepDocuments {
		t.Fatalf("expected documents failure, got %v", err)
	}
}
