package model

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// OptionList is the ordered list of answer options of a question,
// stored as a JSON array through datatypes.JSONSlice.
type OptionList []string

func (o OptionList) slice() datatypes.JSONSlice[string] {
	if o == nil {
		return datatypes.JSONSlice[string]{}
	}
	return datatypes.NewJSONSlice([]string(o))
}

func (o OptionList) Value() (driver.Value, error) {
	return o.slice().Value()
}

func (o *OptionList) Scan(src interface{}) error {
	if src == nil {
		*o = nil
		return nil
	}
	var items datatypes.JSONSlice[string]
	if err := items.Scan(src); err != nil {
		return fmt.Errorf("option list: %w", err)
	}
	*o = OptionList(items)
	return nil
}

func (OptionList) GormDataType() string {
	return datatypes.JSONSlice[string]{}.GormDataType()
}

func (OptionList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return datatypes.JSONSlice[string]{}.GormDBDataType(db, field)
}

func (o OptionList) GormValue(ctx context.Context, db *gorm.DB) clause.Expr {
	return o.slice().GormValue(ctx, db)
}

// ValidateCorrectIndex checks 0 <= idx < len(o).
func (o OptionList) ValidateCorrectIndex(idx int) error {
	if len(o) == 0 {
		return errors.New("options must not be empty")
	}
	if idx < 0 || idx >= len(o) {
		return fmt.Errorf("correct_index %d out of range [0, %d)", idx, len(o))
	}
	return nil
}
