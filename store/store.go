package store

import (
	"database/sql"
	"sync"

	"modernc.org/sqlite"

	"github.com/deepeshsaheb-tal/bookcritic/util"
)

func init() {
	// sortconcat collects genre names per book in sorted order.
	sqlite.MustRegisterFunction("sortconcat", &sqlite.FunctionImpl{
		NArgs:         1,
		Deterministic: true,
		MakeAggregate: func(ctx sqlite.FunctionContext) (sqlite.AggregateFunction, error) {
			return util.NewSortedConcatenate(","), nil
		},
	})
}

type Store struct {
	db *sql.DB

	UserCache sync.Map // map[int32]*model.User
	BookCache sync.Map // map[int32]*model.Book

	systemSettingCache sync.Map // map[string]*model.SystemSetting
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) DBStats() sql.DBStats {
	return s.db.Stats()
}

func (s *Store) Ping() error {
	return s.db.Ping()
}
