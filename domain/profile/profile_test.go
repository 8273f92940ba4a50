package profile

import (
	"testing"

	"sheetdesk/domain/table"
)

func text(s string) table.Scalar { return table.NewTextScalar(s) }
func num(f float64) table.Scalar { return table.NewNumberScalar(f) }

// TestProfileNumericColumn tests type inference and the numeric summary
func TestProfileNumericColumn(t *testing.T) {
	tbl := table.Table{
		Headers: []string{"score"},
		Rows: []table.Row{
			{"score": num(1)},
			{"score": num(2)},
			{"score": num(3)},
			{"score": num(4)},
		},
	}

	profiles := ProfileTable(tbl, DefaultProfileConfig())
	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}

	p := profiles[0]
	if p.DataType != TypeNumeric {
		t.Errorf("expected numeric, got %s", p.DataType)
	}
	if p.Min == nil || *p.Min != 1 {
		t.Errorf("expected min 1, got %v", p.Min)
	}
	if p.Max == nil || *p.Max != 4 {
		t.Errorf("expected max 4, got %v", p.Max)
	}
	if p.Mean == nil || *p.Mean != 2.5 {
		t.Errorf("expected mean 2.5, got %v", p.Mean)
	}
	if p.StdDev == nil {
		t.Error("expected a standard deviation")
	}
}

// TestProfileMissingRate tests missing counting over null cells
func TestProfileMissingRate(t *testing.T) {
	tbl := table.Table{
		Headers: []string{"v"},
		Rows: []table.Row{
			{"v": num(1)},
			{"v": table.NewNullScalar()},
			{"v": table.NewNullScalar()},
			{"v": num(2)},
		},
	}

	p := ProfileTable(tbl, DefaultProfileConfig())[0]
	if p.MissingCount != 2 {
		t.Errorf("expected 2 missing, got %d", p.MissingCount)
	}
	if p.MissingRate != 0.5 {
		t.Errorf("expected missing rate 0.5, got %f", p.MissingRate)
	}
}

// TestProfileBooleanColumn tests boolean detection
func TestProfileBooleanColumn(t *testing.T) {
	tbl := table.Table{Headers: []string{"active"}}
	for i := 0; i < 10; i++ {
		tbl.Rows = append(tbl.Rows, table.Row{"active": table.NewBoolScalar(i%2 == 0)})
	}

	p := ProfileTable(tbl, DefaultProfileConfig())[0]
	if p.DataType != TypeBoolean {
		t.Errorf("expected boolean, got %s", p.DataType)
	}
}

// TestProfileCategoricalColumn tests low-cardinality detection
func TestProfileCategoricalColumn(t *testing.T) {
	tbl := table.Table{Headers: []string{"dept"}}
	depts := []string{"Math", "Bio"}
	for i := 0; i < 100; i++ {
		tbl.Rows = append(tbl.Rows, table.Row{"dept": text(depts[i%2])})
	}

	p := ProfileTable(tbl, DefaultProfileConfig())[0]
	if p.DataType != TypeCategorical {
		t.Errorf("expected categorical, got %s", p.DataType)
	}
	if p.UniqueCount != 2 {
		t.Errorf("expected 2 unique values, got %d", p.UniqueCount)
	}
}

// TestProfileEmptyColumn tests the all-null column
func TestProfileEmptyColumn(t *testing.T) {
	tbl := table.Table{
		Headers: []string{"v"},
		Rows:    []table.Row{{"v": table.NewNullScalar()}},
	}

	p := ProfileTable(tbl, DefaultProfileConfig())[0]
	if p.DataType != TypeEmpty {
		t.Errorf("expected empty, got %s", p.DataType)
	}
	if p.MissingRate != 1 {
		t.Errorf("expected missing rate 1, got %f", p.MissingRate)
	}
}

// TestProfileTextColumn tests the high-cardinality text default
func TestProfileTextColumn(t *testing.T) {
	tbl := table.Table{
		Headers: []string{"name"},
		Rows: []table.Row{
			{"name": text("Ana")},
			{"name": text("Bo")},
			{"name": text("Cy")},
		},
	}

	p := ProfileTable(tbl, DefaultProfileConfig())[0]
	if p.DataType != TypeText {
		t.Errorf("expected text, got %s", p.DataType)
	}
	if p.Min != nil {
		t.Error("text column should carry no numeric summary")
	}
}
