// Package gateway reads and writes Directus tables through gorm.
//
// Rows are plain maps keyed by column name. Table and column names are
// checked against a conservative identifier pattern and always quoted by the
// dialect.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"regexp"

	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/directus/directus-sdk-go/pkg/directus"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidIdentifier is returned for table or column names that are
	// not plain identifiers.
	ErrInvalidIdentifier = errors.New("invalid identifier")
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Row is a record keyed by column name.
type Row = map[string]any

// CheckIdentifier validates a table or column name.
func CheckIdentifier(name string) error {
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return nil
}

// Gateway manages records and schema of a database.
type Gateway struct {
	db     *gorm.DB
	status StatusConfig
	logger hclog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithStatus sets the status column configuration.
func WithStatus(cfg StatusConfig) Option {
	return func(g *Gateway) {
		g.status = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(log hclog.Logger) Option {
	return func(g *Gateway) {
		if log != nil {
			g.logger = log
		}
	}
}

// New creates a gateway over db.
func New(db *gorm.DB, opts ...Option) *Gateway {
	g := &Gateway{
		db:     db,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.status.SetDefaults()
	g.logger = g.logger.Named("gateway")
	return g
}

// DB returns the underlying connection.
func (g *Gateway) DB() *gorm.DB {
	return g.db
}

// Status returns the status column configuration.
func (g *Gateway) Status() StatusConfig {
	return g.status
}

// Transaction runs fn with a gateway bound to a single transaction.
func (g *Gateway) Transaction(ctx context.Context, fn func(tx *Gateway) error) error {
	return g.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(&Gateway{db: db, status: g.status, logger: g.logger})
	})
}

func (g *Gateway) conn(ctx context.Context) *gorm.DB {
	return g.db.WithContext(ctx)
}

// Select returns the rows of table matching q.
func (g *Gateway) Select(ctx context.Context, table string, q directus.Query) ([]Row, error) {
	tx, err := g.query(ctx, table, q)
	if err != nil {
		return nil, err
	}

	if len(q.Columns) > 0 {
		cols := make([]clause.Column, 0, len(q.Columns))
		for _, c := range q.Columns {
			if err := CheckIdentifier(c); err != nil {
				return nil, err
			}
			cols = append(cols, clause.Column{Name: c})
		}
		tx = tx.Clauses(clause.Select{Columns: cols})
	}

	sort := q.Sort
	if sort == "" {
		sort = directus.PrimaryKey
	}
	if err := CheckIdentifier(sort); err != nil {
		return nil, err
	}
	tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: sort}, Desc: q.Descending()})

	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}

	var rows []Row
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error selecting from %s: %w", table, err)
	}
	for _, row := range rows {
		normalize(row)
	}
	return rows, nil
}

// Count returns how many rows of table match q, ignoring limit and offset.
func (g *Gateway) Count(ctx context.Context, table string, q directus.Query) (int64, error) {
	tx, err := g.query(ctx, table, q)
	if err != nil {
		return 0, err
	}

	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("error counting %s: %w", table, err)
	}
	return n, nil
}

// query builds the filtered statement shared by Select and Count.
func (g *Gateway) query(ctx context.Context, table string, q directus.Query) (*gorm.DB, error) {
	if err := CheckIdentifier(table); err != nil {
		return nil, err
	}
	tx := g.conn(ctx).Table(table)

	conds, err := q.Conditions()
	if err != nil {
		return nil, err
	}
	if q.ID != nil {
		conds = append(conds, directus.Condition{Column: directus.PrimaryKey, Operator: directus.OpEqual, Value: q.ID})
	}
	if q.Status != nil {
		if ok, err := g.HasColumn(ctx, table, g.status.ColumnName); err != nil {
			return nil, err
		} else if ok {
			conds = append(conds, directus.Condition{
				Column:   g.status.ColumnName,
				Operator: directus.OpIn,
				Value:    q.Status,
			})
		}
	}

	for _, c := range conds {
		if err := CheckIdentifier(c.Column); err != nil {
			return nil, err
		}
		col := clause.Column{Name: c.Column}
		switch c.Operator {
		case directus.OpIn:
			tx = tx.Where(clause.IN{Column: col, Values: directus.IDs(c.Value)})
		default:
			tx = tx.Where(clause.Eq{Column: col, Value: c.Value})
		}
	}
	return tx, nil
}

// Find returns the record of table with the given id.
func (g *Gateway) Find(ctx context.Context, table string, id any) (Row, error) {
	rows, err := g.Select(ctx, table, directus.Query{ID: id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s %v", ErrNotFound, table, id)
	}
	return rows[0], nil
}

// StatusCounts counts the rows of table per status name. It returns nil
// when the table has no status column.
func (g *Gateway) StatusCounts(ctx context.Context, table string) (map[string]int64, error) {
	if err := CheckIdentifier(table); err != nil {
		return nil, err
	}
	ok, err := g.HasColumn(ctx, table, g.status.ColumnName)
	if err != nil || !ok {
		return nil, err
	}

	var groups []struct {
		Status *int
		Total  int64
	}
	err = g.conn(ctx).Table(table).
		Select("? AS status, COUNT(*) AS total", clause.Column{Name: g.status.ColumnName}).
		Group(g.status.ColumnName).
		Scan(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("error counting statuses of %s: %w", table, err)
	}

	counts := make(map[string]int64, len(g.status.Mapping))
	for _, name := range g.status.Names() {
		counts[name] = 0
	}
	for _, grp := range groups {
		if grp.Status == nil {
			continue
		}
		if name, ok := g.status.Name(*grp.Status); ok {
			counts[name] += grp.Total
		}
	}
	return counts, nil
}

// ManageRecordUpdate inserts data into table, or updates the record whose
// id is present in data. Only the given columns are written. The stored
// record is returned.
func (g *Gateway) ManageRecordUpdate(ctx context.Context, table string, data Row) (Row, error) {
	if err := CheckIdentifier(table); err != nil {
		return nil, err
	}
	for col := range data {
		if err := CheckIdentifier(col); err != nil {
			return nil, err
		}
	}

	var record Row
	err := g.Transaction(ctx, func(tx *Gateway) error {
		id, err := tx.upsert(table, data)
		if err != nil {
			return err
		}
		record, err = tx.Find(ctx, table, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (g *Gateway) upsert(table string, data Row) (any, error) {
	fields := maps.Clone(data)
	id, hasID := fields[directus.PrimaryKey]
	if id == nil {
		delete(fields, directus.PrimaryKey)
		hasID = false
	}

	if hasID {
		var n int64
		err := g.db.Table(table).Where(clause.Eq{Column: clause.Column{Name: directus.PrimaryKey}, Value: id}).Count(&n).Error
		if err != nil {
			return nil, fmt.Errorf("error looking up %s %v: %w", table, id, err)
		}
		if n > 0 {
			delete(fields, directus.PrimaryKey)
			if len(fields) > 0 {
				err := g.db.Table(table).
					Where(clause.Eq{Column: clause.Column{Name: directus.PrimaryKey}, Value: id}).
					Updates(fields).Error
				if err != nil {
					return nil, fmt.Errorf("error updating %s %v: %w", table, id, err)
				}
			}
			g.logger.Debug("updated record", "table", table, "id", id)
			return id, nil
		}
	}

	if err := g.db.Table(table).Create(fields).Error; err != nil {
		return nil, fmt.Errorf("error inserting into %s: %w", table, err)
	}
	if hasID {
		g.logger.Debug("inserted record", "table", table, "id", id)
		return id, nil
	}

	newID, err := g.lastInsertID()
	if err != nil {
		return nil, fmt.Errorf("error reading id of new %s record: %w", table, err)
	}
	g.logger.Debug("inserted record", "table", table, "id", newID)
	return newID, nil
}

// lastInsertID must run on the connection of the insert.
func (g *Gateway) lastInsertID() (int64, error) {
	query := "SELECT lastval()"
	if g.db.Dialector.Name() == "sqlite" {
		query = "SELECT last_insert_rowid()"
	}

	var id int64
	err := g.db.Raw(query).Scan(&id).Error
	return id, err
}

// Delete removes the records of table with the given ids.
func (g *Gateway) Delete(ctx context.Context, table string, ids []any) (int64, error) {
	if err := CheckIdentifier(table); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	res := g.conn(ctx).Exec("DELETE FROM ? WHERE ? IN ?",
		clause.Table{Name: table},
		clause.Column{Name: directus.PrimaryKey},
		ids,
	)
	if res.Error != nil {
		return 0, fmt.Errorf("error deleting from %s: %w", table, res.Error)
	}

	g.logger.Debug("deleted records", "table", table, "count", res.RowsAffected)
	return res.RowsAffected, nil
}

// normalize converts driver byte slices to strings.
func normalize(row Row) {
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
		}
	}
}
