package database

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type rankIndex struct {
	table string
	name  string
	group string
}

// rankIndexes keep (group, rank) unique among live rows of every ordered table.
var rankIndexes = []rankIndex{
	{"todos", "idx_todos_user_rank_live", "user_id"},
	{"sub_todos", "idx_sub_todos_todo_rank_live", "todo_id"},
	{"categories", "idx_categories_user_rank_live", "user_id"},
}

// AddIndexes creates the rank indexes. Postgres and sqlite get partial unique
// indexes. mysql (8.0.13+) gets a unique index whose third key part is NULL for
// deleted rows; NULLs never conflict, so only live rows are constrained.
func AddIndexes(db *gorm.DB) error {
	dialect := db.Dialector.Name()

	for _, idx := range rankIndexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			log.Debug().Str("index", idx.name).Msg("Index already exists, skipping")
			continue
		}

		stmt := rankIndexSQL(dialect, idx)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info().Str("index", idx.name).Str("table", idx.table).Msg("Created index")
	}

	return nil
}

func rankIndexSQL(dialect string, idx rankIndex) string {
	var b strings.Builder
	switch dialect {
	case "mysql":
		fmt.Fprintf(&b, "CREATE UNIQUE INDEX `%s` ON `%s` (`%s`, `rank`, (IF(`deleted_at` IS NULL, 1, NULL)))", idx.name, idx.table, idx.group)
	default:
		fmt.Fprintf(&b, `CREATE UNIQUE INDEX "%s" ON "%s" ("%s", "rank") WHERE "deleted_at" IS NULL`, idx.name, idx.table, idx.group)
	}
	return b.String()
}
