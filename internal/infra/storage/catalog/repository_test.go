package catalog

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Репозиторий каталога читает фиксированные списки колонок; схема из
// миграции обязана их содержать, иначе каждый GetRoomByID падает на
// чистой базе. Юнит-тесты use case'ов это не ловят - репозиторий там
// подменяется фейком.
func TestInitMigrationCoversCatalogColumns(t *testing.T) {
	ddl, err := os.ReadFile("../../../../migrations/001_init.sql")
	require.NoError(t, err)

	tests := []struct {
		table   string
		columns []string
	}{
		{"rooms", []string{"id", "title", "room_type", "capacity", "description"}},
		{"tariffs", []string{"id", "title", "room_type", "price_per_hour"}},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			stmt := createTableStatement(t, string(ddl), tt.table)
			for _, column := range tt.columns {
				assert.Contains(t, stmt, column, "таблица %s без колонки %s", tt.table, column)
			}
		})
	}
}

// createTableStatement вырезает из миграции тело CREATE TABLE нужной таблицы
func createTableStatement(t *testing.T, ddl, table string) string {
	t.Helper()

	marker := "CREATE TABLE IF NOT EXISTS " + table + " ("
	start := strings.Index(ddl, marker)
	require.GreaterOrEqual(t, start, 0, "в миграции нет таблицы %s", table)

	rest := ddl[start:]
	end := strings.Index(rest, ";")
	require.GreaterOrEqual(t, end, 0)

	return rest[:end]
}
