package planform

import (
	"alcyxob/plan-admin/internal/domain"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Fields is the editable text of a draft, keyed by wire field name.
type Fields map[string]string

// Clone returns an independent copy.
func (f Fields) Clone() Fields { return maps.Clone(f) }

// Codec converts between a plan record and its draft fields.
type Codec[P domain.PlanRecord] interface {
	// Names lists the editable fields in display order.
	Names() []string
	// Defaults is the draft of a fresh Create form.
	Defaults() Fields
	Encode(plan P) Fields
	// Decode overlays the draft onto base and validates the result. Parse
	// and rule failures are reported together as a *domain.ValidationError.
	Decode(base P, fields Fields) (P, error)
}

// fieldParser collects parse failures per field.
type fieldParser struct {
	fields Fields
	errs   domain.ValidationError
}

func (p *fieldParser) text(name string) string {
	return strings.TrimSpace(p.fields[name])
}

func (p *fieldParser) float(name string) float64 {
	raw := p.text(name)
	if raw == "" {
		p.errs.Add(name, "is required")
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		p.errs.Add(name, "must be a number")
		return 0
	}
	return v
}

// integer treats an empty value as zero when optional is set.
func (p *fieldParser) integer(name string, optional bool) int {
	raw := p.text(name)
	if raw == "" {
		if !optional {
			p.errs.Add(name, "is required")
		}
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.errs.Add(name, "must be a whole number")
	}
	return v
}

func (p *fieldParser) boolean(name string) bool {
	raw := p.text(name)
	if raw == "" {
		p.errs.Add(name, "is required")
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.errs.Add(name, "must be true or false")
	}
	return v
}

func (p *fieldParser) timeOfDay(name string) domain.TimeOfDay {
	raw := p.text(name)
	if raw == "" {
		p.errs.Add(name, "is required")
		return ""
	}
	t, err := domain.ParseTimeOfDay(raw)
	if err != nil {
		p.errs.Add(name, "must be a time of day in HH:MM form")
		return domain.TimeOfDay(raw)
	}
	return t
}

// finish merges rule violations of the parsed record into the parse errors.
// Fields that failed to parse keep their parse message.
func (p *fieldParser) finish(plan domain.PlanRecord) error {
	if err := domain.Validate(plan); err != nil {
		rules, ok := err.(*domain.ValidationError)
		if !ok {
			return err
		}
		for _, name := range slices.Sorted(maps.Keys(rules.Fields)) {
			p.errs.Add(name, rules.Fields[name])
		}
	}
	if len(p.errs.Fields) > 0 {
		return &domain.ValidationError{Fields: p.errs.Fields}
	}
	return nil
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// AcademyCodec edits academy plans.
type AcademyCodec struct{}

func (AcademyCodec) Names() []string {
	return []string{"name", "amount", "plan_limit", "sport", "active"}
}

// Defaults leaves sport empty so it must be chosen.
func (AcademyCodec) Defaults() Fields {
	return Fields{"name": "", "amount": "", "plan_limit": "", "sport": "", "active": "true"}
}

func (AcademyCodec) Encode(p domain.AcademyPlan) Fields {
	return Fields{
		"name":       p.Name,
		"amount":     formatFloat(p.Amount),
		"plan_limit": strconv.Itoa(p.PlanLimit),
		"sport":      string(p.Sport),
		"active":     strconv.FormatBool(p.Active),
	}
}

func (AcademyCodec) Decode(base domain.AcademyPlan, fields Fields) (domain.AcademyPlan, error) {
	p := fieldParser{fields: fields}
	plan := base
	plan.Name = p.text("name")
	plan.Amount = p.float("amount")
	plan.PlanLimit = p.integer("plan_limit", false)
	plan.Sport = domain.Sport(p.text("sport"))
	plan.Active = p.boolean("active")
	return plan, p.finish(plan)
}

// TurfCodec edits turf plans.
type TurfCodec struct{}

func (TurfCodec) Names() []string {
	return []string{"name", "amount", "time_hr", "time_min", "category", "sport", "from", "to", "active"}
}

func (TurfCodec) Defaults() Fields {
	return Fields{
		"name":     "",
		"amount":   "",
		"time_hr":  "",
		"time_min": "",
		"category": string(domain.CategoryTurf),
		"sport":    string(domain.SportCricket),
		"from":     "09:00",
		"to":       "18:59",
		"active":   "true",
	}
}

func (TurfCodec) Encode(p domain.TurfPlan) Fields {
	return Fields{
		"name":     p.Name,
		"amount":   formatFloat(p.Amount),
		"time_hr":  strconv.Itoa(p.TimeHr),
		"time_min": strconv.Itoa(p.TimeMin),
		"category": string(p.Category),
		"sport":    string(p.Sport),
		"from":     string(p.From),
		"to":       string(p.To),
		"active":   strconv.FormatBool(p.Active),
	}
}

// Decode treats empty hour or minute fields as zero; a zero total is then
// rejected by the duration rule.
func (TurfCodec) Decode(base domain.TurfPlan, fields Fields) (domain.TurfPlan, error) {
	p := fieldParser{fields: fields}
	plan := base
	plan.Name = p.text("name")
	plan.Amount = p.float("amount")
	plan.TimeHr = p.integer("time_hr", true)
	plan.TimeMin = p.integer("time_min", true)
	plan.Category = domain.Category(p.text("category"))
	plan.Sport = domain.Sport(p.text("sport"))
	plan.From = p.timeOfDay("from")
	plan.To = p.timeOfDay("to")
	plan.Active = p.boolean("active")
	return plan, p.finish(plan)
}
