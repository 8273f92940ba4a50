package profile

import (
	"github.com/montanaflynn/stats"

	"sheetdesk/domain/table"
)

// DataType is the inferred statistical type of a column
type DataType string

const (
	TypeNumeric     DataType = "numeric"
	TypeBoolean     DataType = "boolean"
	TypeCategorical DataType = "categorical"
	TypeText        DataType = "text"
	TypeEmpty       DataType = "empty"
)

// ProfileConfig defines the inference thresholds
type ProfileConfig struct {
	NumericThreshold float64 `json:"numeric_threshold"` // fraction of non-null values that must be numeric
	BooleanThreshold float64 `json:"boolean_threshold"` // fraction of non-null values that must be boolean
	MaxCategories    int     `json:"max_categories"`    // cardinality cap for categorical detection
	CategoricalRatio float64 `json:"categorical_ratio"` // unique/valid ratio below which a column is categorical
}

// DefaultProfileConfig returns sensible defaults
func DefaultProfileConfig() ProfileConfig {
	return ProfileConfig{
		NumericThreshold: 0.8,
		BooleanThreshold: 0.9,
		MaxCategories:    20,
		CategoricalRatio: 0.1,
	}
}

// ColumnProfile summarizes a single column of a normalized table
type ColumnProfile struct {
	Name         string   `json:"name"`
	DataType     DataType `json:"data_type"`
	MissingCount int      `json:"missing_count"`
	MissingRate  float64  `json:"missing_rate"`
	UniqueCount  int      `json:"unique_count"`

	// Numeric summary, present only for numeric columns
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Mean   *float64 `json:"mean,omitempty"`
	StdDev *float64 `json:"std_dev,omitempty"`
}

// ProfileTable computes per-column profiles over every row of the table
func ProfileTable(t table.Table, config ProfileConfig) []ColumnProfile {
	profiles := make([]ColumnProfile, 0, len(t.Headers))
	for _, header := range t.Headers {
		profiles = append(profiles, profileColumn(t, header, config))
	}
	return profiles
}

func profileColumn(t table.Table, header string, config ProfileConfig) ColumnProfile {
	p := ColumnProfile{Name: header, DataType: TypeText}

	var numbers []float64
	boolCount := 0
	unique := make(map[string]bool)
	valid := 0

	for _, row := range t.Rows {
		cell := row[header]
		if cell.IsNull() {
			p.MissingCount++
			continue
		}
		valid++
		unique[cell.String()] = true
		if n, ok := cell.Number(); ok {
			numbers = append(numbers, n)
		}
		if cell.Kind == table.KindBool {
			boolCount++
		}
	}

	p.UniqueCount = len(unique)
	if len(t.Rows) > 0 {
		p.MissingRate = float64(p.MissingCount) / float64(len(t.Rows))
	}

	if valid == 0 {
		p.DataType = TypeEmpty
		return p
	}

	numericRatio := float64(len(numbers)) / float64(valid)
	booleanRatio := float64(boolCount) / float64(valid)
	uniqueRatio := float64(p.UniqueCount) / float64(valid)

	switch {
	case booleanRatio >= config.BooleanThreshold:
		p.DataType = TypeBoolean
	case numericRatio >= config.NumericThreshold:
		p.DataType = TypeNumeric
		attachNumericSummary(&p, numbers)
		// Low cardinality integers are usually coded categories
		if uniqueRatio < config.CategoricalRatio && p.UniqueCount <= config.MaxCategories {
			p.DataType = TypeCategorical
		}
	case uniqueRatio < config.CategoricalRatio && p.UniqueCount <= config.MaxCategories:
		p.DataType = TypeCategorical
	}

	return p
}

func attachNumericSummary(p *ColumnProfile, numbers []float64) {
	if len(numbers) == 0 {
		return
	}
	if min, err := stats.Min(numbers); err == nil {
		p.Min = &min
	}
	if max, err := stats.Max(numbers); err == nil {
		p.Max = &max
	}
	if mean, err := stats.Mean(numbers); err == nil {
		p.Mean = &mean
	}
	if sd, err := stats.StandardDeviation(numbers); err == nil {
		p.StdDev = &sd
	}
}
