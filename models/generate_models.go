package models

import (
	"fmt"
	"io"
	"sort"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

/*
Query helper generation and column mismatch report.

`portfolio-admin generate` migrates the schema and writes gorm/gen query helpers
for every model into ./generated (override with --out).

`portfolio-admin report` compares the live tables with the Go models and prints
every column that exists in the database but has no model field:

	=== COLUMN MISMATCH REPORT ===
	--- Table: projects ---
	Found 1 columns not accounted for in model:
	  - legacy_notes
	=== SUMMARY ===
	Total mismatched columns across all tables: 1
*/

// All returns every persisted model, in dependency order.
func All() []interface{} {
	return []interface{}{
		&Type{},
		&Technology{},
		&Project{},
		&ProjectTechnology{},
	}
}

func GenerateModels(db *gorm.DB, outPath string) error {
	if outPath == "" {
		outPath = "./generated"
	}

	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})

	g.UseDB(db)
	g.ApplyBasic(All()...)
	g.Execute()

	return nil
}

// ColumnMismatchReport maps table name to the columns the database has but
// the corresponding model does not declare. Tables without mismatches are omitted.
func ColumnMismatchReport(db *gorm.DB) (map[string][]string, error) {
	report := make(map[string][]string)

	for _, model := range All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("error parsing model %T: %w", model, err)
		}

		if !db.Migrator().HasTable(stmt.Schema.Table) {
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("error querying columns for table %s: %w", stmt.Schema.Table, err)
		}

		var dbColumns []string
		for _, columnType := range columnTypes {
			dbColumns = append(dbColumns, columnType.Name())
		}

		if mismatches := findColumnMismatches(dbColumns, stmt.Schema); len(mismatches) > 0 {
			report[stmt.Schema.Table] = mismatches
		}
	}

	return report, nil
}

// WriteColumnMismatchReport renders ColumnMismatchReport in the human readable format above.
func WriteColumnMismatchReport(db *gorm.DB, w io.Writer) error {
	report, err := ColumnMismatchReport(db)
	if err != nil {
		return err
	}

	tables := make([]string, 0, len(report))
	for table := range report {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")
	total := 0
	for _, table := range tables {
		fmt.Fprintf(w, "--- Table: %s ---\n", table)
		fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(report[table]))
		for _, column := range report[table] {
			fmt.Fprintf(w, "  - %s\n", column)
		}
		total += len(report[table])
	}
	if total == 0 {
		fmt.Fprintln(w, "All columns are accounted for in the models.")
	}

	fmt.Fprintln(w, "=== SUMMARY ===")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", total)
	return nil
}

// findColumnMismatches finds columns that exist in the database but not in the model
func findColumnMismatches(dbColumns []string, s *schema.Schema) []string {
	var mismatches []string
	for _, col := range dbColumns {
		if _, ok := s.FieldsByDBName[col]; !ok {
			mismatches = append(mismatches, col)
		}
	}
	sort.Strings(mismatches)
	return mismatches
}
