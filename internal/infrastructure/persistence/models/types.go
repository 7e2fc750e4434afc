package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Int64Slice stores a slice of whole-token quantities as a jsonb column.
type Int64Slice []int64

func (s Int64Slice) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *Int64Slice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into Int64Slice", value)
	}

	return json.Unmarshal(bytes, s)
}

// DecimalSlice stores a slice of decimal rates as a jsonb column. Values
// round-trip through their string form to avoid float precision loss.
type DecimalSlice []decimal.Decimal

func (s DecimalSlice) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}

	strs := make([]string, len(s))
	for i, d := range s {
		strs[i] = d.String()
	}
	return json.Marshal(strs)
}

func (s *DecimalSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into DecimalSlice", value)
	}

	var strs []string
	if err := json.Unmarshal(bytes, &strs); err != nil {
		return err
	}

	out := make(DecimalSlice, len(strs))
	for i, str := range strs {
		d, err := decimal.NewFromString(str)
		if err != nil {
			return fmt.Errorf("invalid decimal %q at index %d: %w", str, i, err)
		}
		out[i] = d
	}
	*s = out
	return nil
}
