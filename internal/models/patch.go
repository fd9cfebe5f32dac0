package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// DateLayout is the only accepted calendar date format.
const DateLayout = "2006-01-02"

// Nullable distinguishes an absent JSON field from an explicit null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	n.Value = &value
	return nil
}

// Date is a calendar day encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

func ParseDate(value string) (Date, error) {
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: parsed}, nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

// OrderPatch enumerates every order field a bulk update may touch.
type OrderPatch struct {
	CourierID    Nullable[string] `json:"courierId"`
	DeliveryDate Nullable[Date]   `json:"deliveryDate"`
}

func (patch OrderPatch) IsEmpty() bool {
	return !patch.CourierID.Set && !patch.DeliveryDate.Set
}

// CustomerPatch enumerates every customer field a bulk update may touch.
type CustomerPatch struct {
	PlanActive *bool `json:"planActive"`
}

func (patch CustomerPatch) IsEmpty() bool {
	return patch.PlanActive == nil
}
