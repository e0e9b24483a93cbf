package domain

import (
	"errors"
	"math"
	"testing"
)

func validTurfPlan() TurfPlan {
	return TurfPlan{
		Name:     "Evening slot",
		Amount:   1200,
		TimeHr:   1,
		TimeMin:  30,
		Category: CategoryTurf,
		Sport:    SportCricket,
		From:     "09:00",
		To:       "18:59",
		Active:   true,
	}
}

func TestValidateAcademyPlan(t *testing.T) {
	valid := AcademyPlan{Name: "Gold", Amount: 1500, PlanLimit: 30, Sport: SportCricket, Active: true}

	tests := []struct {
		name      string
		mutate    func(p *AcademyPlan)
		wantField string
	}{
		{"valid", func(p *AcademyPlan) {}, ""},
		{"free plan allowed", func(p *AcademyPlan) { p.Amount = 0 }, ""},
		{"blank name", func(p *AcademyPlan) { p.Name = "   " }, "name"},
		{"negative amount", func(p *AcademyPlan) { p.Amount = -1 }, "amount"},
		{"infinite amount", func(p *AcademyPlan) { p.Amount = math.Inf(1) }, "amount"},
		{"nan amount", func(p *AcademyPlan) { p.Amount = math.NaN() }, "amount"},
		{"zero limit", func(p *AcademyPlan) { p.PlanLimit = 0 }, "plan_limit"},
		{"unknown sport", func(p *AcademyPlan) { p.Sport = "Tennis" }, "sport"},
		{"empty sport", func(p *AcademyPlan) { p.Sport = "" }, "sport"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := ValidateAcademyPlan(p)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateAcademyPlan() error = %v, want nil", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("ValidateAcademyPlan() error = %v, want *ValidationError", err)
			}
			if _, ok := ve.Fields[tt.wantField]; !ok {
				t.Errorf("fields = %v, want entry for %q", ve.Fields, tt.wantField)
			}
			if !errors.Is(err, ErrValidation) {
				t.Error("expected errors.Is(err, ErrValidation)")
			}
		})
	}
}

func TestValidateTurfPlan(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *TurfPlan)
		wantField string
	}{
		{"valid", func(p *TurfPlan) {}, ""},
		{"hours only", func(p *TurfPlan) { p.TimeMin = 0 }, ""},
		{"minutes only", func(p *TurfPlan) { p.TimeHr = 0 }, ""},
		{"zero duration", func(p *TurfPlan) { p.TimeHr, p.TimeMin = 0, 0 }, "time_min"},
		{"sixty minutes", func(p *TurfPlan) { p.TimeMin = 60 }, "time_min"},
		{"negative hours", func(p *TurfPlan) { p.TimeHr = -1 }, "time_hr"},
		{"reversed window", func(p *TurfPlan) { p.From, p.To = "19:00", "09:00" }, "to"},
		{"empty window", func(p *TurfPlan) { p.From, p.To = "10:00", "10:00" }, "to"},
		{"bad from", func(p *TurfPlan) { p.From = "25:00" }, "from"},
		{"unpadded from", func(p *TurfPlan) { p.From = "9:00" }, "from"},
		{"infinite amount", func(p *TurfPlan) { p.Amount = math.Inf(1) }, "amount"},
		{"bad category", func(p *TurfPlan) { p.Category = "GROUND-C" }, "category"},
		{"blank name", func(p *TurfPlan) { p.Name = "" }, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validTurfPlan()
			tt.mutate(&p)
			err := ValidateTurfPlan(p)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateTurfPlan() error = %v, want nil", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("ValidateTurfPlan() error = %v, want *ValidationError", err)
			}
			if _, ok := ve.Fields[tt.wantField]; !ok {
				t.Errorf("fields = %v, want entry for %q", ve.Fields, tt.wantField)
			}
		})
	}
}

func TestValidateDispatch(t *testing.T) {
	if err := Validate(validTurfPlan()); err != nil {
		t.Errorf("Validate(TurfPlan) error = %v", err)
	}
	if err := Validate(&AcademyPlan{Name: "x", PlanLimit: 1, Sport: SportFootball}); err != nil {
		t.Errorf("Validate(*AcademyPlan) error = %v", err)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"09:00", "09:00", false},
		{"9:00", "09:00", false},
		{"18:59", "18:59", false},
		{"24:00", "", true},
		{"noon", "", true},
	}
	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimeOfDay(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeOfDay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidationErrorMessage(t *testing.T) {
	ve := NewValidationError("name", "is required")
	ve.Add("amount", "must be at least 0")
	ve.Add("name", "ignored")
	want := "validation failed: amount: must be at least 0; name: is required"
	if ve.Error() != want {
		t.Errorf("Error() = %q, want %q", ve.Error(), want)
	}
}
