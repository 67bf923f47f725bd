package sheet

import (
	"strings"
	"testing"
)

const sampleCSV = `id,title,category,price,original_price,description,images,tags,link_shopee,link_whatsapp,badge,is_active
PROD-001,Gear Assembly,CAD Library,99000,149000,Spur gear set,"https://cdn.example.com/a.jpg,https://cdn.example.com/b.jpg","SolidWorks,ISO",https://shopee.com/p/1,,Best Seller,TRUE
PROD-002,Hex Bolt,Mechanical Parts,15000,,M8 bolt,,Fastener,,,,FALSE
,,,,,,,,,,,
PROD-003,Bracket,,25000,,Mounting bracket,,,,,,'
`

func TestParse(t *testing.T) {
	rows, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// The fully empty row is skipped.
	if len(rows) != 3 {
		t.Fatalf("Parse() returned %d rows, want 3", len(rows))
	}

	first := rows[0]
	if first.ID != "PROD-001" || first.Title != "Gear Assembly" {
		t.Errorf("first row = %+v, want PROD-001/Gear Assembly", first)
	}
	if first.Images != "https://cdn.example.com/a.jpg,https://cdn.example.com/b.jpg" {
		t.Errorf("Images = %q, want raw comma-separated value", first.Images)
	}
	if first.IsActive != "TRUE" {
		t.Errorf("IsActive = %q, want %q", first.IsActive, "TRUE")
	}

	if rows[1].IsActive != "FALSE" {
		t.Errorf("second row IsActive = %q, want %q", rows[1].IsActive, "FALSE")
	}
	// Missing optional columns surface as empty strings, not errors.
	if rows[2].Category != "" || rows[2].Badge != "" {
		t.Errorf("third row = %+v, want empty optional fields", rows[2])
	}
}

func TestParse_HeaderNotFirstRow(t *testing.T) {
	csv := "MechVault catalog export,,\n" +
		"generated 2024-01-15,,\n" +
		"id,title,price\n" +
		"PROD-001,Gear,99000\n"

	rows, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Parse() returned %d rows, want 1", len(rows))
	}
	if rows[0].ID != "PROD-001" || rows[0].Price != "99000" {
		t.Errorf("row = %+v, want PROD-001 at 99000", rows[0])
	}
}

func TestParse_HeaderCaseInsensitive(t *testing.T) {
	csv := "ID,Title,Is_Active\nPROD-001,Gear,true\n"

	rows, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "PROD-001" || rows[0].IsActive != "true" {
		t.Errorf("rows = %+v, want one row with ID and IsActive set", rows)
	}
}

func TestParse_NoHeader(t *testing.T) {
	_, err := Parse(strings.NewReader("a,b,c\n1,2,3\n"))
	if err == nil {
		t.Fatal("Parse() error = nil, want missing-header error")
	}
}

func TestParse_ShortRows(t *testing.T) {
	// Rows shorter than the header are padded with empty values, not rejected.
	csv := "id,title,category,badge\nPROD-001,Gear\n"

	rows, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Parse() returned %d rows, want 1", len(rows))
	}
	if rows[0].Category != "" || rows[0].Badge != "" {
		t.Errorf("short row = %+v, want empty trailing fields", rows[0])
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain value",
			input: "Gear Assembly",
			want:  "Gear Assembly",
		},
		{
			name:  "surrounding whitespace",
			input: "  Gear  ",
			want:  "Gear",
		},
		{
			name:  "utf8 bom",
			input: "\uFEFFid",
			want:  "id",
		},
		{
			name:  "excel formula wrapper",
			input: `="PROD-001"`,
			want:  "PROD-001",
		},
		{
			name:  "leading equals",
			input: "=99000",
			want:  "99000",
		},
		{
			name:  "surrounding quotes",
			input: `"quoted"`,
			want:  "quoted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
