package database

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderByRank sorts by the leading columns and then by rank. Rank tokens must
// compare byte-wise, so postgres uses the "C" collation and mysql a binary cast.
func OrderByRank(desc bool, leading ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(RankOrder(db.Dialector.Name(), desc, leading...))
	}
}

// RankOrder builds the ORDER BY clause used by OrderByRank.
func RankOrder(dialect string, desc bool, leading ...string) clause.OrderBy {
	var sql strings.Builder
	vars := make([]interface{}, 0, len(leading)+1)

	for _, name := range leading {
		sql.WriteString("?, ")
		vars = append(vars, clause.Column{Table: clause.CurrentTable, Name: name})
	}

	switch dialect {
	case "postgres":
		sql.WriteString(`? COLLATE "C"`)
	case "mysql":
		sql.WriteString("CAST(? AS BINARY)")
	default:
		sql.WriteString("?")
	}
	vars = append(vars, clause.Column{Table: clause.CurrentTable, Name: "rank"})

	if desc {
		sql.WriteString(" DESC")
	}

	return clause.OrderBy{Expression: clause.Expr{SQL: sql.String(), Vars: vars}}
}

// OnDate restricts column to dates within [start, end].
func OnDate(column string, start, end interface{}) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		col := clause.Column{Table: clause.CurrentTable, Name: column}
		return db.Where("? >= ? AND ? <= ?", col, start, col, end)
	}
}
