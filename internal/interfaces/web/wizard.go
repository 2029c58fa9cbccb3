package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/riskibarqy/itp-onboarding/internal/domain/consent"
	"github.com/riskibarqy/itp-onboarding/internal/domain/document"
	"github.com/riskibarqy/itp-onboarding/internal/domain/onboarding"
	"github.com/riskibarqy/itp-onboarding/internal/usecase"
)

const (
	actionSave     = "save"
	actionContinue = "continue"
	actionSkip     = "skip"
	actionBack     = "back"
	actionSubmit   = "submit"
)

type stepIndicator struct {
	Number int
	Label  string
	Done   bool
	Active bool
}

type slotView struct {
	Type        document.Type
	Label       string
	Uploaded    bool
	Error       string
	TemplateURL string
	Template    string
}

type summaryRow struct {
	Label   string
	Value   string
	Missing bool
}

type summaryDoc struct {
	label string
	typ   document.Type
}

type wizardView struct {
	chrome
	Draft         onboarding.Draft
	Current       onboarding.Step
	StepNumber    int
	Steps         []stepIndicator
	Slots         []slotView
	Summary       []summaryRow
	ArrivalPoints []onboarding.Option
	Sizes         []string
	Minor         bool
	CanSkip       bool
	CanBack       bool
	Last          bool
	Error         string
	MaxUploadMB   int64
}

func (p *Pages) Onboarding(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Pages.Onboarding")
	defer span.End()

	state, err := p.wizard.Load(ctx, r.PathValue("prospectID"))
	if err != nil {
		p.fail(w, r, "load onboarding wizard failed", err)
		return
	}
	p.renderWizard(w, r, http.StatusOK, state, "", nil)
}

// SubmitOnboarding applies one wizard action. Document files for the current
// step are attached first; any upload failure re-renders the step without
// running the action.
func (p *Pages) SubmitOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Pages.SubmitOnboarding")
	defer span.End()

	prospectID := r.PathValue("prospectID")
	if err := r.ParseForm(); err != nil {
		p.render(w, r, http.StatusBadRequest, pageError, errorView{
			chrome:  chrome{Title: "Invalid form"},
			Message: "The form could not be read. Please reload the page and try again.",
		})
		return
	}

	state, err := p.wizard.Load(ctx, prospectID)
	if err != nil {
		p.fail(w, r, "load onboarding wizard failed", err)
		return
	}
	if state.Completed {
		p.redirectToWizard(w, r, state.Prospect.ID)
		return
	}

	draft := applyForm(state.Draft, state.Current(), r.PostForm)

	slotErrors := make(map[document.Type]string)
	for _, slot := range usecase.DocumentSlots(state.Current(), state.Flow.Minor()) {
		input, closeFile, err := uploadFromForm(r, slot)
		if err != nil {
			slotErrors[slot] = usecase.PublicMessage(err)
			continue
		}
		if closeFile == nil {
			continue
		}

		next, err := p.wizard.AttachDocument(ctx, state.Prospect.ID, draft, input)
		_ = closeFile()
		p.metrics.ObserveUpload(string(slot), err)
		if err != nil {
			if errors.Is(err, usecase.ErrNotFound) || next.Prospect.ID == "" {
				p.fail(w, r, "attach document failed", err)
				return
			}
			p.logFailure(ctx, "attach document failed", err, "prospect_id", state.Prospect.ID, "document_type", slot)
			slotErrors[slot] = usecase.PublicMessage(err)
		}
		state, draft = next, next.Draft
	}
	if len(slotErrors) > 0 {
		state.Draft = draft
		p.renderWizard(w, r, http.StatusUnprocessableEntity, state, "", slotErrors)
		return
	}

	action := strings.TrimSpace(r.PostForm.Get("action"))
	next, err := p.runAction(r, action, state.Prospect.ID, draft)
	p.metrics.ObserveWizardTransition(actionLabel(action), err)
	switch action {
	case actionContinue, actionSkip, actionSubmit:
		p.metrics.ObserveSave("web", action == actionSubmit, err)
	}
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) || next.Prospect.ID == "" {
			p.fail(w, r, "onboarding action failed", err)
			return
		}
		p.logFailure(ctx, "onboarding action failed", err, "prospect_id", state.Prospect.ID, "action", action)
		if next.Draft.ProspectID == "" {
			next.Draft = draft
		}
		p.renderWizard(w, r, statusFor(err), next, usecase.PublicMessage(err), nil)
		return
	}

	p.redirectToWizard(w, r, state.Prospect.ID)
}

func (p *Pages) runAction(r *http.Request, action, prospectID string, draft onboarding.Draft) (usecase.WizardState, error) {
	ctx := r.Context()
	switch action {
	case actionSave:
		return p.wizard.Update(ctx, prospectID, draft)
	case actionContinue:
		return p.wizard.Continue(ctx, prospectID, draft)
	case actionSkip:
		return p.wizard.Skip(ctx, prospectID, draft)
	case actionBack:
		return p.wizard.Back(ctx, prospectID, draft)
	case actionSubmit:
		return p.wizard.Submit(ctx, prospectID, draft)
	}

	state, err := p.wizard.Update(ctx, prospectID, draft)
	if err != nil {
		return state, err
	}
	return state, fmt.Errorf("%w: unknown action %q", usecase.ErrInvalidInput, action)
}

func (p *Pages) redirectToWizard(w http.ResponseWriter, r *http.Request, prospectID string) {
	http.Redirect(w, r, "/"+url.PathEscape(prospectID)+"/onboarding", http.StatusSeeOther)
}

func (p *Pages) renderWizard(w http.ResponseWriter, r *http.Request, status int, state usecase.WizardState, message string, slotErrors map[document.Type]string) {
	if state.Completed {
		p.render(w, r, status, pageCompleted, p.chromeFor(r, state.Prospect, "Onboarding Complete", "onboarding"))
		return
	}

	current := state.Current()
	number := state.Step()
	view := wizardView{
		chrome:        p.chromeFor(r, state.Prospect, "Onboarding", "onboarding"),
		Draft:         state.Draft,
		Current:       current,
		StepNumber:    number,
		ArrivalPoints: onboarding.ArrivalPoints,
		Sizes:         onboarding.EquipmentSizes,
		Minor:         state.Flow.Minor(),
		CanSkip:       current == onboarding.StepTravel,
		CanBack:       number > 1,
		Last:          state.Last(),
		Error:         message,
		MaxUploadMB:   p.opts.UploadMaxBytes >> 20,
	}
	for i, step := range state.Flow.Steps() {
		view.Steps = append(view.Steps, stepIndicator{
			Number: i + 1,
			Label:  step.Label(),
			Done:   i+1 < number,
			Active: i+1 == number,
		})
	}
	for _, slot := range usecase.DocumentSlots(current, view.Minor) {
		sv := slotView{
			Type:     slot,
			Label:    slot.Label(),
			Uploaded: state.Draft.Document(slot) != "",
			Error:    slotErrors[slot],
		}
		if kind, ok := consentKindFor(slot); ok {
			sv.TemplateURL = "/api/onboarding/templates/" + string(kind) + "?prospectId=" + url.QueryEscape(state.Prospect.ID)
			sv.Template = templateTitles[kind]
		}
		view.Slots = append(view.Slots, sv)
	}
	if current == onboarding.StepConfirm {
		view.Summary = summarize(state.Draft, view.Minor)
	}

	p.render(w, r, status, pageOnboarding, view)
}

var templateTitles = map[consent.Kind]string{
	consent.KindVollmacht: "Vollmacht (Power of Attorney)",
	consent.KindWellpass:  "Wellpass Gym Consent",
}

func consentKindFor(slot document.Type) (consent.Kind, bool) {
	switch slot {
	case document.TypeVollmacht:
		return consent.KindVollmacht, true
	case document.TypeWellpassConsent:
		return consent.KindWellpass, true
	}
	return "", false
}

// applyForm copies the posted fields of the current step onto the draft.
// Fields that were not posted keep their draft values.
func applyForm(draft onboarding.Draft, step onboarding.Step, form url.Values) onboarding.Draft {
	text := func(key string, dst *string) {
		if values, ok := form[key]; ok && len(values) > 0 {
			*dst = strings.TrimSpace(values[0])
		}
	}

	switch step {
	case onboarding.StepTravel:
		text("arrival_date", &draft.ArrivalDate)
		text("arrival_time", &draft.ArrivalTime)
		text("flight_number", &draft.FlightNumber)
		text("whatsapp_number", &draft.WhatsAppNumber)
		if point := strings.TrimSpace(form.Get("arrival_airport")); point != "" && knownArrivalPoint(point) {
			draft.ArrivalAirport = point
		}
		if v, ok := yesNo(form, "needs_pickup"); ok {
			draft.NeedsPickup = v
		}
	case onboarding.StepEquipment:
		text("equipment_size", &draft.EquipmentSize)
		if v, ok := yesNo(form, "schengen_last_180_days"); ok {
			draft.SchengenLast180Days = &v
		}
		text("schengen_entry_date", &draft.SchengenEntryDate)
		text("schengen_days_spent", &draft.SchengenDaysSpent)
	}
	return draft
}

func yesNo(form url.Values, key string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(form.Get(key))) {
	case "yes", "true":
		return true, true
	case "no", "false":
		return false, true
	}
	return false, false
}

func knownArrivalPoint(value string) bool {
	for _, point := range onboarding.ArrivalPoints {
		if point.Value == value {
			return true
		}
	}
	return false
}

// uploadFromForm opens the file posted for slot. The returned close func is
// nil when no file was chosen.
func uploadFromForm(r *http.Request, slot document.Type) (usecase.UploadInput, func() error, error) {
	if r.MultipartForm == nil {
		return usecase.UploadInput{}, nil, nil
	}
	files := r.MultipartForm.File[string(slot)]
	if len(files) == 0 || files[0].Filename == "" {
		return usecase.UploadInput{}, nil, nil
	}

	header := files[0]
	file, err := header.Open()
	if err != nil {
		return usecase.UploadInput{}, nil, fmt.Errorf("%w: read file: %v", usecase.ErrInvalidInput, err)
	}
	return usecase.UploadInput{
		DocumentType: string(slot),
		FileName:     header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Size:         header.Size,
		Body:         file,
	}, file.Close, nil
}

func summarize(d onboarding.Draft, minor bool) []summaryRow {
	orDefault := func(value, fallback string) string {
		if strings.TrimSpace(value) == "" {
			return fallback
		}
		return value
	}
	yes := func(v bool) string {
		if v {
			return "Yes"
		}
		return "No"
	}

	arrival := "Not set"
	if d.ArrivalDate != "" {
		arrival = d.ArrivalDate + " at " + orDefault(d.ArrivalTime, "TBD")
	}
	schengen := "Not answered"
	if d.SchengenLast180Days != nil {
		schengen = yes(*d.SchengenLast180Days)
	}

	rows := []summaryRow{
		{Label: "Arrival", Value: arrival},
		{Label: "Flight", Value: orDefault(d.FlightNumber, "Not provided")},
		{Label: "Arrival Point", Value: orDefault(onboarding.ArrivalPointLabel(d.ArrivalAirport), "Not set")},
		{Label: "Pick-up", Value: yes(d.NeedsPickup)},
		{Label: "WhatsApp", Value: orDefault(d.WhatsAppNumber, "Not provided")},
		{Label: "Equipment Size", Value: orDefault(d.EquipmentSize, "Not set")},
		{Label: "Schengen 180d", Value: schengen},
	}
	if d.SchengenLast180Days != nil && *d.SchengenLast180Days {
		rows = append(rows,
			summaryRow{Label: "Last Entry", Value: orDefault(d.SchengenEntryDate, "Not provided")},
			summaryRow{Label: "Days Spent", Value: orDefault(d.SchengenDaysSpent, "Not provided")},
		)
	}

	docs := []summaryDoc{{"Passport", document.TypePassport}}
	if minor {
		docs = append(docs,
			summaryDoc{"Parent 1 Passport", document.TypeParent1Passport},
			summaryDoc{"Parent 2 Passport", document.TypeParent2Passport},
			summaryDoc{"Vollmacht", document.TypeVollmacht},
			summaryDoc{"Wellpass Consent", document.TypeWellpassConsent},
		)
	}
	for _, doc := range docs {
		uploaded := d.Document(doc.typ) != ""
		value := "Missing"
		if uploaded {
			value = "Uploaded"
		}
		rows = append(rows, summaryRow{Label: doc.label, Value: value, Missing: !uploaded})
	}
	return rows
}

func statusFor(err error) int {
	var validationErr *onboarding.ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr),
		errors.Is(err, onboarding.ErrSkipNotAllowed),
		errors.Is(err, onboarding.ErrNoNextStep),
		errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func actionLabel(action string) string {
	switch action {
	case actionSave, actionContinue, actionSkip, actionBack, actionSubmit:
		return action
	}
	return "unknown"
}
