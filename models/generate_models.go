package models

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"gorm.io/gen"
	"gorm.io/gorm"
)

/*
Developer tooling.

GENERATE_MODELS=true migrates the schema, prints the column mismatch report and
writes typed query helpers for every model into ./generated.

GENERATE_COLUMN_REPORT=true only prints the report: for each table, the
database columns that no model field maps to. Drift shows up here when a
column was added by hand or by the identity provider.
*/

// All lists every persisted model in migration order.
func All() []any {
	return []any{&User{}, &BlogPost{}, &Comment{}}
}

// Migrate creates or alters the tables, indexes and foreign keys.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// GenerateModels migrates and then emits gorm/gen query code into outPath.
func GenerateModels(db *gorm.DB, outPath string) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	migrateDB := db.Session(&gorm.Session{SkipDefaultTransaction: true, PrepareStmt: false})
	log.Info().Msg("Migrating models...")
	if err := Migrate(migrateDB); err != nil {
		return err
	}

	if _, err := GenerateColumnMismatchReport(db); err != nil {
		return err
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface | gen.WithoutContext,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(All()...)
	g.Execute()

	log.Info().Str("outPath", outPath).Msg("Model generation complete")
	return nil
}

// GenerateColumnMismatchReport logs, per table, the columns present in the
// database but not mapped by the model, and returns them keyed by table.
func GenerateColumnMismatchReport(db *gorm.DB) (map[string][]string, error) {
	report := make(map[string][]string)
	total := 0

	for _, model := range All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		if !db.Migrator().HasTable(model) {
			log.Info().Str("table", table).Msg("Table does not exist yet")
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("columns of %s: %w", table, err)
		}

		mapped := make(map[string]bool, len(stmt.Schema.DBNames))
		for _, name := range stmt.Schema.DBNames {
			mapped[name] = true
		}

		var unmapped []string
		for _, ct := range columnTypes {
			if !mapped[ct.Name()] {
				unmapped = append(unmapped, ct.Name())
			}
		}
		sort.Strings(unmapped)

		if len(unmapped) > 0 {
			report[table] = unmapped
			total += len(unmapped)
			log.Warn().Str("table", table).Strs("columns", unmapped).Msg("Columns not accounted for in model")
		} else {
			log.Info().Str("table", table).Msg("All columns are accounted for in the model")
		}
	}

	log.Info().Int("total", total).Msg("Column mismatch report complete")
	return report, nil
}
