package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// BloodType is one of the eight ABO/Rh combinations.
type BloodType string

const (
	BloodTypeAPos  BloodType = "A+"
	BloodTypeANeg  BloodType = "A-"
	BloodTypeBPos  BloodType = "B+"
	BloodTypeBNeg  BloodType = "B-"
	BloodTypeABPos BloodType = "AB+"
	BloodTypeABNeg BloodType = "AB-"
	BloodTypeOPos  BloodType = "O+"
	BloodTypeONeg  BloodType = "O-"
)

var ErrUnknownBloodType = errors.New("unknown blood type")

// AllBloodTypes returns the blood types in the order the backend declares them.
func AllBloodTypes() []BloodType {
	return []BloodType{
		BloodTypeAPos, BloodTypeANeg,
		BloodTypeBPos, BloodTypeBNeg,
		BloodTypeABPos, BloodTypeABNeg,
		BloodTypeOPos, BloodTypeONeg,
	}
}

func (b BloodType) Valid() bool {
	for _, t := range AllBloodTypes() {
		if b == t {
			return true
		}
	}
	return false
}

func ParseBloodType(s string) (BloodType, error) {
	b := BloodType(strings.ToUpper(strings.TrimSpace(s)))
	if !b.Valid() {
		return "", ErrUnknownBloodType
	}
	return b, nil
}

const dateLayout = "2006-01-02"

// Date is a calendar date encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// BloodUnit is one stored unit batch of a blood type. Detail rows returned
// by /blood-units/type/{t}/ may omit BloodType.
type BloodUnit struct {
	ID             int64     `json:"id"`
	BloodType      BloodType `json:"blood_type,omitempty"`
	Quantity       int       `json:"quantity"`
	ExpirationDate Date      `json:"expiration_date"`
}

// DaysToExpire is the number of calendar days from now until the unit's
// expiration date, negative once expired. It is computed on every read.
// Days are counted in UTC, the zone expiration dates are kept in.
func (u BloodUnit) DaysToExpire(now time.Time) int {
	if u.ExpirationDate.IsZero() {
		return 0
	}
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	ey, em, ed := u.ExpirationDate.Date()
	exp := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return int(exp.Sub(today).Hours() / 24)
}

// BloodTypeSummary is one aggregated inventory row as computed by the backend.
type BloodTypeSummary struct {
	BloodType     BloodType `json:"blood_type"`
	TotalQuantity int       `json:"total_quantity"`
	LowStockAlert bool      `json:"low_stock_alert"`
}

// BloodUnitInput is the create/update payload of a blood unit.
type BloodUnitInput struct {
	BloodType      BloodType `json:"blood_type" validate:"required,bloodtype"`
	Quantity       int       `json:"quantity" validate:"min=0"`
	ExpirationDate *Date     `json:"expiration_date" validate:"required"`
}
