package model

import "encoding/json"

// Estimate is a computed value that may be unavailable.
// It separates "computed to be zero" from "could not compute".
type Estimate struct {
	Value     float64
	Available bool
	Reason    string // Why the value is unavailable, empty when Available
}

// Known wraps an available value.
func Known(v float64) Estimate {
	return Estimate{Value: v, Available: true}
}

// Unavailable records why a value could not be computed.
func Unavailable(err error) Estimate {
	e := Estimate{}
	if err != nil {
		e.Reason = err.Error()
	}
	return e
}

// MarshalJSON encodes the value, or null when unavailable.
func (e Estimate) MarshalJSON() ([]byte, error) {
	if !e.Available {
		return []byte("null"), nil
	}
	return json.Marshal(e.Value)
}

// UnmarshalJSON accepts a number or null.
func (e *Estimate) UnmarshalJSON(data []byte) error {
	var v *float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		*e = Estimate{}
		return nil
	}
	*e = Known(*v)
	return nil
}
