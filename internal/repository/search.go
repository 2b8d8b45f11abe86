package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"modernc.org/sqlite"
)

// NameMatch is one search hit: the record's id and name plus the number of
// its shows that start after the reference time.
type NameMatch struct {
	ID               uint64
	Name             string
	NumUpcomingShows int
}

// likeEscape is the ESCAPE character used in name patterns.  Backslash is
// avoided because MySQL and SQLite disagree on how to spell it in a literal.
const likeEscape = "!"

// sqliteFold is the SQLite function applying Unicode case folding.  The
// built-in LOWER only folds ASCII letters.
const sqliteFold = "casefold"

func init() {
	if err := sqlite.RegisterDeterministicScalarFunction(sqliteFold, 1, casefold); err != nil {
		panic(err)
	}
}

func casefold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return cases.Fold().String(v), nil
	case []byte:
		return cases.Fold().String(string(v)), nil
	default:
		return nil, fmt.Errorf("%s: unsupported argument %T", sqliteFold, v)
	}
}

// foldExpr wraps expr in the case-folding function of db's driver.  MySQL's
// LOWER is Unicode-aware under utf8mb4.
func foldExpr(db *sql.DB, expr string) string {
	if _, ok := db.Driver().(*sqlite.Driver); ok {
		return sqliteFold + "(" + expr + ")"
	}
	return "LOWER(" + expr + ")"
}

// containsPattern builds a LIKE pattern matching any string that contains
// term, with LIKE wildcards in term taken literally.  Folding happens in SQL
// on both sides of the comparison.
func containsPattern(term string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return "%" + r.Replace(term) + "%"
}

// searchByName runs the shared case-insensitive substring query against
// table (venues or artists); fk names the shows column pointing at it.
// Both identifiers come from this package, never from user input.
func searchByName(ctx context.Context, db *sql.DB, table, fk, term string, now time.Time) ([]NameMatch, error) {
	q := `SELECT t.id, t.name,
	             (SELECT COUNT(*) FROM shows s WHERE s.` + fk + ` = t.id AND s.start_time > ?)
	      FROM ` + table + ` t
	      WHERE ` + foldExpr(db, "t.name") + ` LIKE ` + foldExpr(db, "?") + ` ESCAPE '` + likeEscape + `'
	      ORDER BY t.id`
	rows, err := db.QueryContext(ctx, q, now.UTC(), containsPattern(term))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []NameMatch{}
	for rows.Next() {
		var m NameMatch
		if err := rows.Scan(&m.ID, &m.Name, &m.NumUpcomingShows); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
