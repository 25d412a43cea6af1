package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protheus/connector/internal/domain/connector"
)

func TestGormSyncRunRepository_Append(t *testing.T) {
	t.Run("inserts a run and backfills the ID", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormSyncRunRepository(gormDB)

		mock.ExpectQuery(`INSERT INTO "sync_runs"`).
			WithArgs("SA1", "pull", "success", `{"reset":false}`, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

		run := &connector.SyncRun{
			TableName: "SA1",
			Mode:      connector.SyncModePull,
			Status:    connector.SyncStatusSuccess,
			Details:   map[string]any{"reset": false},
		}

		err := repo.Append(context.Background(), run)

		require.NoError(t, err)
		assert.Equal(t, int64(42), run.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRawPayloadRepository_Store(t *testing.T) {
	t.Run("inserts the raw payload", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormRawPayloadRepository(gormDB)

		mock.ExpectQuery(`INSERT INTO "raw_payloads"`).
			WithArgs("SC5", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

		raw := &connector.RawPayload{
			TableName: "SC5",
			Payload:   map[string]any{"response": []any{}},
		}

		err := repo.Store(context.Background(), raw)

		require.NoError(t, err)
		assert.Equal(t, int64(7), raw.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
