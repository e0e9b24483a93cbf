package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Catalog names one of the two independent plan collections.
type Catalog string

const (
	CatalogAcademy Catalog = "academy"
	CatalogTurf    Catalog = "turf"
)

// ParseCatalog accepts the catalog names used on the command line and in routes.
func ParseCatalog(s string) (Catalog, error) {
	switch Catalog(s) {
	case CatalogAcademy, CatalogTurf:
		return Catalog(s), nil
	}
	return "", fmt.Errorf("unknown catalog %q (want academy or turf)", s)
}

// Sport offered by a plan.
type Sport string

const (
	SportCricket  Sport = "Cricket"
	SportFootball Sport = "Football"
)

// Category of the ground a turf plan books.
type Category string

const (
	CategoryTurf    Category = "TURF"
	CategoryGroundA Category = "GROUND-A"
	CategoryGroundB Category = "GROUND-B"
)

// PlanRecord is implemented by the record shapes of both catalogs.
type PlanRecord interface {
	PlanID() primitive.ObjectID
	PlanName() string
	IsActive() bool
	Catalog() Catalog
}

// AcademyPlan is a purchasable academy membership.
type AcademyPlan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OwnerID   primitive.ObjectID `bson:"ownerId" json:"ownerId"` // Manager who owns the plan, set at creation
	Name      string             `bson:"name" json:"name" validate:"nonblank"`
	Amount    float64            `bson:"amount" json:"amount" validate:"finite,gte=0"`
	PlanLimit int                `bson:"plan_limit" json:"plan_limit" validate:"gt=0"` // Duration in days
	Sport     Sport              `bson:"sport" json:"sport" validate:"oneof=Cricket Football"`
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (p AcademyPlan) PlanID() primitive.ObjectID { return p.ID }
func (p AcademyPlan) PlanName() string           { return p.Name }
func (p AcademyPlan) IsActive() bool             { return p.Active }
func (p AcademyPlan) Catalog() Catalog           { return CatalogAcademy }

// TurfPlan is a bookable time window on a turf or ground.
type TurfPlan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OwnerID   primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Name      string             `bson:"name" json:"name" validate:"nonblank"`
	Amount    float64            `bson:"amount" json:"amount" validate:"finite,gte=0"` // Per session
	TimeHr    int                `bson:"time_hr" json:"time_hr" validate:"gte=0"`
	TimeMin   int                `bson:"time_min" json:"time_min" validate:"gte=0,lt=60"`
	Category  Category           `bson:"category" json:"category" validate:"oneof=TURF GROUND-A GROUND-B"`
	Sport     Sport              `bson:"sport" json:"sport" validate:"oneof=Cricket Football"`
	From      TimeOfDay          `bson:"from" json:"from" validate:"hhmm"`
	To        TimeOfDay          `bson:"to" json:"to" validate:"hhmm"`
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (p TurfPlan) PlanID() primitive.ObjectID { return p.ID }
func (p TurfPlan) PlanName() string           { return p.Name }
func (p TurfPlan) IsActive() bool             { return p.Active }
func (p TurfPlan) Catalog() Catalog           { return CatalogTurf }

// Duration is the session length booked by the plan.
func (p TurfPlan) Duration() time.Duration {
	return time.Duration(p.TimeHr)*time.Hour + time.Duration(p.TimeMin)*time.Minute
}
