package core

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func exportRecords() []StudentRecord {
	return []StudentRecord{
		{
			NISN: "0061234567", FullName: "Budi, S.", ClassName: "XII MIPA 1", Gender: GenderMale,
			BirthPlace: "Medan", BirthDate: "17 August 2006", ParentName: `Siti "Ibu"`,
			Address: "Jl. A\nRT 02", Religion: "Islam",
		},
		{NISN: "007", FullName: "Ani", Gender: GenderFemale},
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	recs := exportRecords()

	var buf bytes.Buffer
	if err := WriteCSV(&buf, recs); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	table, err := ReadTable(context.Background(), "roster.csv", &buf, 0)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	batch := ClassifyBatch(table.Rows)
	if batch.Layout != LayoutStandard {
		t.Fatalf("Layout = %q", batch.Layout)
	}
	if diff := cmp.Diff(recs, batch.Records); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	recs := exportRecords()

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, recs); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	table, err := ReadTable(context.Background(), "roster.xlsx", &buf, 0)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if diff := cmp.Diff(recs, Classify(table.Rows)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteTemplateCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTemplateCSV(&buf); err != nil {
		t.Fatalf("WriteTemplateCSV: %v", err)
	}

	want := strings.Join(Columns(), ",") + "\n"
	if buf.String() != want {
		t.Errorf("template = %q, want %q", buf.String(), want)
	}

	table, err := ReadTable(context.Background(), "template.csv", &buf, 0)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if got := Classify(table.Rows); len(got) != 0 {
		t.Errorf("template produced %d records", len(got))
	}
}
