package sqlxrepos

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/kalashala/kalashala/core"
	"github.com/kalashala/kalashala/storage/database"
)

// store is shared by all repositories.
type store struct {
	db     *sqlx.DB
	logger core.Logger
}

// trap translates err and logs it unless it is an expected not found or conflict.
func (s store) trap(err error, op string, notFound error) error {
	err = database.TranslateError(err, op, notFound)
	if err != nil && !core.IsNotFound(err) && !core.IsConflict(err) {
		s.logger.Error(op+" failed", err)
	}
	return err
}

// orderBy builds an ORDER BY clause from orderings, keeping allowed fields only and prefixing them with table.
func orderBy(orderings []core.DBOrdering, table string, allowed ...string) string {
	var clauses []string
	for _, ord := range orderings {
		for _, field := range allowed {
			if ord.Field == field {
				clauses = append(clauses, table+"."+ord.String())
				break
			}
		}
	}
	if len(clauses) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(clauses, ", ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern is an ILIKE pattern matching s anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
