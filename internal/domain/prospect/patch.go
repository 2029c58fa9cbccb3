package prospect

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrUnknownField      = errors.New("unknown onboarding field")
	ErrInvalidFieldValue = errors.New("invalid onboarding field value")
)

// Field names a whitelisted onboarding column.
type Field string

const (
	FieldArrivalDate             Field = "arrival_date"
	FieldArrivalTime             Field = "arrival_time"
	FieldFlightNumber            Field = "flight_number"
	FieldArrivalAirport          Field = "arrival_airport"
	FieldNeedsPickup             Field = "needs_pickup"
	FieldWhatsAppNumber          Field = "whatsapp_number"
	FieldEquipmentSize           Field = "equipment_size"
	FieldSchengenLast180Days     Field = "schengen_last_180_days"
	FieldSchengenEntryDate       Field = "schengen_entry_date"
	FieldSchengenDaysSpent       Field = "schengen_days_spent"
	FieldIsUnder18               Field = "is_under_18"
	FieldPassportFilePath        Field = "passport_file_path"
	FieldParent1PassportFilePath Field = "parent1_passport_file_path"
	FieldParent2PassportFilePath Field = "parent2_passport_file_path"
	FieldVollmachtFilePath       Field = "vollmacht_file_path"
	FieldWellpassConsentFilePath Field = "wellpass_consent_file_path"
)

type Kind int

const (
	KindText Kind = iota
	KindDate
	KindClock
	KindBool
	KindInt
)

// Fields lists the whitelist in column order.
var Fields = []Field{
	FieldArrivalDate,
	FieldArrivalTime,
	FieldFlightNumber,
	FieldArrivalAirport,
	FieldNeedsPickup,
	FieldWhatsAppNumber,
	FieldEquipmentSize,
	FieldSchengenLast180Days,
	FieldSchengenEntryDate,
	FieldSchengenDaysSpent,
	FieldIsUnder18,
	FieldPassportFilePath,
	FieldParent1PassportFilePath,
	FieldParent2PassportFilePath,
	FieldVollmachtFilePath,
	FieldWellpassConsentFilePath,
}

var fieldKinds = map[Field]Kind{
	FieldArrivalDate:             KindDate,
	FieldArrivalTime:             KindClock,
	FieldFlightNumber:            KindText,
	FieldArrivalAirport:          KindText,
	FieldNeedsPickup:             KindBool,
	FieldWhatsAppNumber:          KindText,
	FieldEquipmentSize:           KindText,
	FieldSchengenLast180Days:     KindBool,
	FieldSchengenEntryDate:       KindDate,
	FieldSchengenDaysSpent:       KindInt,
	FieldIsUnder18:               KindBool,
	FieldPassportFilePath:        KindText,
	FieldParent1PassportFilePath: KindText,
	FieldParent2PassportFilePath: KindText,
	FieldVollmachtFilePath:       KindText,
	FieldWellpassConsentFilePath: KindText,
}

func KindOf(field Field) (Kind, bool) {
	kind, ok := fieldKinds[field]
	return kind, ok
}

// Entry is one patch value. A nil Value writes NULL.
type Entry struct {
	Field Field
	Value any
}

// Patch is a set of whitelisted field updates. Values are normalised on Set:
// text is string, date is time.Time, clock is "HH:MM", bool is bool, int is int.
type Patch struct {
	values map[Field]any
}

func NewPatch() Patch {
	return Patch{values: make(map[Field]any)}
}

func (p *Patch) Set(field Field, value any) error {
	kind, ok := fieldKinds[field]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	normalized, err := normalize(kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidFieldValue, field, err)
	}
	if p.values == nil {
		p.values = make(map[Field]any)
	}
	p.values[field] = normalized
	return nil
}

func (p *Patch) SetNull(field Field) error {
	return p.Set(field, nil)
}

func (p Patch) Get(field Field) (any, bool) {
	value, ok := p.values[field]
	return value, ok
}

func (p Patch) Has(field Field) bool {
	_, ok := p.values[field]
	return ok
}

func (p Patch) Len() int {
	return len(p.values)
}

// Entries returns the present fields in whitelist order.
func (p Patch) Entries() []Entry {
	out := make([]Entry, 0, len(p.values))
	for _, field := range Fields {
		if value, ok := p.values[field]; ok {
			out = append(out, Entry{Field: field, Value: value})
		}
	}
	return out
}

func normalize(kind Kind, value any) (any, error) {
	if value == nil {
		return nil, nil
	}

	switch kind {
	case KindText:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", value)
		}
		return s, nil
	case KindDate:
		switch v := value.(type) {
		case time.Time:
			return CivilDate(v), nil
		case string:
			t, err := ParseDate(v)
			if err != nil {
				return nil, fmt.Errorf("expected YYYY-MM-DD date")
			}
			return t, nil
		}
		return nil, fmt.Errorf("expected date, got %T", value)
	case KindClock:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("expected HH:MM time, got %T", value)
		}
		clock, err := NormalizeClock(s)
		if err != nil {
			return nil, err
		}
		return clock, nil
	case KindBool:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("expected boolean, got %T", value)
		}
		return b, nil
	case KindInt:
		return toInt(value)
	}
	return nil, fmt.Errorf("unsupported kind %d", kind)
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, fmt.Errorf("expected whole number, got %v", v)
		}
		return int(v), nil
	case interface{ Int64() (int64, error) }:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("expected whole number: %v", err)
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("expected number, got %T", value)
}

// NormalizeClock accepts HH:MM or HH:MM:SS and returns HH:MM.
func NormalizeClock(value string) (string, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", fmt.Errorf("expected HH:MM time, got %q", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", value)
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

func applyEntry(p *Prospect, entry Entry) {
	switch entry.Field {
	case FieldArrivalDate:
		p.ArrivalDate = datePtr(entry.Value)
	case FieldArrivalTime:
		p.ArrivalTime = text(entry.Value)
	case FieldFlightNumber:
		p.FlightNumber = text(entry.Value)
	case FieldArrivalAirport:
		p.ArrivalAirport = text(entry.Value)
	case FieldNeedsPickup:
		p.NeedsPickup = boolPtr(entry.Value)
	case FieldWhatsAppNumber:
		p.WhatsAppNumber = text(entry.Value)
	case FieldEquipmentSize:
		p.EquipmentSize = text(entry.Value)
	case FieldSchengenLast180Days:
		p.SchengenLast180Days = boolPtr(entry.Value)
	case FieldSchengenEntryDate:
		p.SchengenEntryDate = datePtr(entry.Value)
	case FieldSchengenDaysSpent:
		p.SchengenDaysSpent = intPtr(entry.Value)
	case FieldIsUnder18:
		p.IsUnder18 = boolPtr(entry.Value)
	case FieldPassportFilePath:
		p.PassportFilePath = text(entry.Value)
	case FieldParent1PassportFilePath:
		p.Parent1PassportFilePath = text(entry.Value)
	case FieldParent2PassportFilePath:
		p.Parent2PassportFilePath = text(entry.Value)
	case FieldVollmachtFilePath:
		p.VollmachtFilePath = text(entry.Value)
	case FieldWellpassConsentFilePath:
		p.WellpassConsentFilePath = text(entry.Value)
	}
}

func text(v any) string {
	s, _ := v.(string)
	return s
}

func datePtr(v any) *time.Time {
	t, ok := v.(time.Time)
	if !ok {
		return nil
	}
	return &t
}

func boolPtr(v any) *bool {
	b, ok := v.(bool)
	if !ok {
		return nil
	}
	return &b
}

func intPtr(v any) *int {
	n, ok := v.(int)
	if !ok {
		return nil
	}
	return &n
}
