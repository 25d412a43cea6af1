package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/protheus/connector/internal/domain/connector"
)

func TestGormMappingRepository_FindBySource(t *testing.T) {
	t.Run("finds existing mapping and parses extra", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormMappingRepository(gormDB)

		rows := sqlmock.NewRows([]string{"id", "entity_type", "source_id", "protheus_code", "protheus_store", "extra", "created_at", "updated_at"}).
			AddRow(1, "customer", "EXT-9", "000123", "01", `{"CGC":"12345678000199"}`, time.Now(), time.Now())

		mock.ExpectQuery(`SELECT \* FROM "external_mappings" WHERE entity_type = \$1 AND source_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs("customer", "EXT-9", 1).
			WillReturnRows(rows)

		mapping, err := repo.FindBySource(context.Background(), connector.EntityCustomer, "EXT-9")

		require.NoError(t, err)
		assert.Equal(t, "000123", mapping.ProtheusCode)
		assert.Equal(t, "01", mapping.ProtheusStore)
		assert.Equal(t, "12345678000199", mapping.Extra["CGC"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrMappingNotFound on miss", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormMappingRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "external_mappings"`).
			WillReturnError(gorm.ErrRecordNotFound)

		mapping, err := repo.FindBySource(context.Background(), connector.EntityOrder, "missing")

		assert.ErrorIs(t, err, connector.ErrMappingNotFound)
		assert.Nil(t, mapping)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormMappingRepository_Save(t *testing.T) {
	t.Run("creates when no row exists", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormMappingRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "external_mappings" WHERE entity_type = \$1 AND source_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs("order", "PX-77", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		mock.ExpectQuery(`INSERT INTO "external_mappings"`).
			WithArgs("order", "PX-77", "000042", "", `{"Mensagem":"Incluido"}`, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		mapping := connector.NewExternalMapping(connector.EntityOrder, "PX-77")
		mapping.ApplyCodes("000042", "")
		mapping.MergeExtra(map[string]any{"Mensagem": "Incluido"})

		err := repo.Save(context.Background(), mapping)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("updates the existing row in place", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormMappingRepository(gormDB)

		existing := sqlmock.NewRows([]string{"id", "entity_type", "source_id", "protheus_code", "protheus_store", "extra", "created_at", "updated_at"}).
			AddRow(5, "customer", "EXT-9", "000123", "01", `{}`, time.Now(), time.Now())

		mock.ExpectQuery(`SELECT \* FROM "external_mappings" WHERE entity_type = \$1 AND source_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs("customer", "EXT-9", 1).
			WillReturnRows(existing)

		mock.ExpectExec(`UPDATE "external_mappings" SET`).
			WithArgs(`{"CGC":"999"}`, "000123", "01", sqlmock.AnyArg(), 5).
			WillReturnResult(sqlmock.NewResult(0, 1))

		mapping := connector.NewExternalMapping(connector.EntityCustomer, "EXT-9")
		mapping.ApplyCodes("000123", "01")
		mapping.SetCGC("999")

		err := repo.Save(context.Background(), mapping)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
