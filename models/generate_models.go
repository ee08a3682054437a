package models

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"sync"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Migrate creates or updates every table in All, echoing the DDL it runs.
func Migrate(db *gorm.DB) error {
	err := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		Logger:                 ddlLogger(),
	}).AutoMigrate(All()...)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// GenerateModels migrates the schema, writes the column report to w and
// emits typed query helpers into outPath.
func GenerateModels(db *gorm.DB, outPath string, w io.Writer) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}
	if err := Migrate(db); err != nil {
		return err
	}

	report, err := BuildColumnReport(db)
	if err != nil {
		return err
	}
	if _, err := report.WriteTo(w); err != nil {
		return err
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

// TableColumns is one table's entry in a ColumnReport.
type TableColumns struct {
	Table string
	// Missing is true when the table does not exist yet.
	Missing bool
	// Unmapped lists columns no model field maps to, sorted.
	Unmapped []string
}

// ColumnReport lists, per model table, the database columns that no Go field
// maps to. These are usually hand-added columns or renamed fields that never
// got a migration.
type ColumnReport struct {
	Tables []TableColumns
}

// Total is the number of unmapped columns across all tables.
func (r ColumnReport) Total() int {
	n := 0
	for _, t := range r.Tables {
		n += len(t.Unmapped)
	}
	return n
}

// WriteTo renders the report as plain text:
//
//	projects: 1 unmapped
//	  - gif_link
//	users: ok
//	total unmapped columns: 1
func (r ColumnReport) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	for _, t := range r.Tables {
		switch {
		case t.Missing:
			fmt.Fprintf(cw, "%s: not created yet\n", t.Table)
		case len(t.Unmapped) == 0:
			fmt.Fprintf(cw, "%s: ok\n", t.Table)
		default:
			fmt.Fprintf(cw, "%s: %d unmapped\n", t.Table, len(t.Unmapped))
			for _, col := range t.Unmapped {
				fmt.Fprintf(cw, "  - %s\n", col)
			}
		}
	}
	fmt.Fprintf(cw, "total unmapped columns: %d\n", r.Total())
	return cw.n, cw.err
}

// BuildColumnReport compares every model in All with the live schema.
func BuildColumnReport(db *gorm.DB) (ColumnReport, error) {
	var report ColumnReport
	cache := &sync.Map{}

	for _, model := range All() {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return ColumnReport{}, fmt.Errorf("parse schema for %T: %w", model, err)
		}

		columns, err := tableColumns(db, s.Table)
		if err != nil {
			return ColumnReport{}, err
		}
		report.Tables = append(report.Tables, TableColumns{
			Table:    s.Table,
			Missing:  len(columns) == 0,
			Unmapped: unmappedColumns(columns, s.DBNames),
		})
	}
	return report, nil
}

func tableColumns(db *gorm.DB, table string) ([]string, error) {
	var columns []string
	err := db.Raw(`SELECT column_name FROM information_schema.columns
		WHERE table_schema = CURRENT_SCHEMA() AND table_name = ?
		ORDER BY ordinal_position`, table).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("list columns of %s: %w", table, err)
	}
	return columns, nil
}

// unmappedColumns returns the columns absent from fields, sorted.
func unmappedColumns(columns, fields []string) []string {
	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		known[f] = struct{}{}
	}

	var out []string
	for _, col := range columns {
		if _, ok := known[col]; !ok {
			out = append(out, col)
		}
	}
	sort.Strings(out)
	return out
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}

func ddlLogger() logger.Interface {
	return logger.New(log.New(os.Stdout, "", log.LstdFlags), logger.Config{
		LogLevel: logger.Info,
		Colorful: true,
	})
}
