package gateway

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/directus/directus-sdk-go/pkg/directus"
)

// ErrUnsupportedType is returned when a column data type is not known.
var ErrUnsupportedType = errors.New("unsupported column data type")

// systemTablePrefix prefixes the tables owned by Directus itself.
const systemTablePrefix = "directus_"

// ColumnDef describes a column to add.
type ColumnDef struct {
	Name     string
	DataType string
	Length   int
	Nullable bool
	Default  *string
}

// Tables lists the tables of the database, sorted. System tables are
// included only when withSystem is set.
func (g *Gateway) Tables(ctx context.Context, withSystem bool) ([]string, error) {
	all, err := g.conn(ctx).Migrator().GetTables()
	if err != nil {
		return nil, fmt.Errorf("error listing tables: %w", err)
	}

	tables := make([]string, 0, len(all))
	for _, t := range all {
		if strings.HasPrefix(t, "sqlite_") {
			continue
		}
		if !withSystem && strings.HasPrefix(t, systemTablePrefix) {
			continue
		}
		tables = append(tables, t)
	}
	slices.Sort(tables)
	return tables, nil
}

// HasTable reports whether table exists.
func (g *Gateway) HasTable(ctx context.Context, table string) bool {
	return g.conn(ctx).Migrator().HasTable(table)
}

// HasColumn reports whether table has column.
func (g *Gateway) HasColumn(ctx context.Context, table, column string) (bool, error) {
	cols, err := g.columnTypes(ctx, table)
	if err != nil {
		return false, err
	}
	return slices.ContainsFunc(cols, func(c gorm.ColumnType) bool {
		return c.Name() == column
	}), nil
}

func (g *Gateway) columnTypes(ctx context.Context, table string) ([]gorm.ColumnType, error) {
	if err := CheckIdentifier(table); err != nil {
		return nil, err
	}
	if !g.HasTable(ctx, table) {
		return nil, fmt.Errorf("%w: table %s", ErrNotFound, table)
	}
	cols, err := g.conn(ctx).Migrator().ColumnTypes(table)
	if err != nil {
		return nil, fmt.Errorf("error reading columns of %s: %w", table, err)
	}
	return cols, nil
}

// TableInfo describes table: its name, primary key, status column and
// columns.
func (g *Gateway) TableInfo(ctx context.Context, table string) (Row, error) {
	cols, err := g.Columns(ctx, table)
	if err != nil {
		return nil, err
	}

	info := Row{
		"id":             table,
		"table_name":     table,
		"primary_column": nil,
		"status_column":  nil,
		"columns":        cols,
	}
	for _, c := range cols {
		if c["primary_key"] == true {
			info["primary_column"] = c["column_name"]
		}
		if c["column_name"] == g.status.ColumnName {
			info["status_column"] = g.status.ColumnName
		}
	}
	return info, nil
}

// Columns describes every column of table in table order.
func (g *Gateway) Columns(ctx context.Context, table string) ([]Row, error) {
	cols, err := g.columnTypes(ctx, table)
	if err != nil {
		return nil, err
	}

	out := make([]Row, 0, len(cols))
	for i, c := range cols {
		out = append(out, describeColumn(table, i, c))
	}
	return out, nil
}

// Column describes a single column of table.
func (g *Gateway) Column(ctx context.Context, table, column string) (Row, error) {
	cols, err := g.columnTypes(ctx, table)
	if err != nil {
		return nil, err
	}
	for i, c := range cols {
		if c.Name() == column {
			return describeColumn(table, i, c), nil
		}
	}
	return nil, fmt.Errorf("%w: column %s.%s", ErrNotFound, table, column)
}

func describeColumn(table string, i int, c gorm.ColumnType) Row {
	row := Row{
		"id":          c.Name(),
		"table_name":  table,
		"column_name": c.Name(),
		"data_type":   strings.ToLower(c.DatabaseTypeName()),
		"sort":        i + 1,
	}
	if ct, ok := c.ColumnType(); ok {
		row["column_type"] = ct
	}
	if pk, ok := c.PrimaryKey(); ok {
		row["primary_key"] = pk
	} else {
		row["primary_key"] = c.Name() == directus.PrimaryKey
	}
	if nullable, ok := c.Nullable(); ok {
		row["is_nullable"] = nullable
	}
	if def, ok := c.DefaultValue(); ok {
		row["default_value"] = def
	}
	if length, ok := c.Length(); ok && length > 0 {
		row["length"] = length
	}
	return row
}

// AddColumn adds a column to table.
func (g *Gateway) AddColumn(ctx context.Context, table string, col ColumnDef) error {
	if err := CheckIdentifier(table); err != nil {
		return err
	}
	if err := CheckIdentifier(col.Name); err != nil {
		return err
	}
	sqlType, err := g.sqlType(col)
	if err != nil {
		return err
	}
	// Existing rows need a value for a NOT NULL column.
	if !col.Nullable && col.Default == nil {
		return fmt.Errorf("%w: column %s is not nullable and has no default value", directus.ErrValidation, col.Name)
	}

	ddl := "ALTER TABLE ? ADD COLUMN ? " + sqlType
	if !col.Nullable {
		ddl += " NOT NULL"
	}
	args := []any{clause.Table{Name: table}, clause.Column{Name: col.Name}}
	if col.Default != nil {
		ddl += " DEFAULT " + quoteLiteral(*col.Default)
	}

	if err := g.conn(ctx).Exec(ddl, args...).Error; err != nil {
		return fmt.Errorf("error adding column %s.%s: %w", table, col.Name, err)
	}
	g.logger.Info("added column", "table", table, "column", col.Name, "type", sqlType)
	return nil
}

// DropColumn removes column from table.
func (g *Gateway) DropColumn(ctx context.Context, table, column string) error {
	if err := CheckIdentifier(table); err != nil {
		return err
	}
	if err := CheckIdentifier(column); err != nil {
		return err
	}
	ok, err := g.HasColumn(ctx, table, column)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: column %s.%s", ErrNotFound, table, column)
	}

	err = g.conn(ctx).Exec("ALTER TABLE ? DROP COLUMN ?", clause.Table{Name: table}, clause.Column{Name: column}).Error
	if err != nil {
		return fmt.Errorf("error dropping column %s.%s: %w", table, column, err)
	}
	g.logger.Info("dropped column", "table", table, "column", column)
	return nil
}

// CreateTable creates table with an auto-increment id and the status
// column. It is a no-op when the table exists.
func (g *Gateway) CreateTable(ctx context.Context, table string) error {
	if err := CheckIdentifier(table); err != nil {
		return err
	}
	if g.HasTable(ctx, table) {
		return nil
	}

	idType := "bigserial PRIMARY KEY"
	if g.db.Dialector.Name() == "sqlite" {
		idType = "integer PRIMARY KEY AUTOINCREMENT"
	}
	ddl := fmt.Sprintf("CREATE TABLE ? (? %s, ? integer NOT NULL DEFAULT %d)", idType, g.status.Active())

	err := g.conn(ctx).Exec(ddl,
		clause.Table{Name: table},
		clause.Column{Name: directus.PrimaryKey},
		clause.Column{Name: g.status.ColumnName},
	).Error
	if err != nil {
		return fmt.Errorf("error creating table %s: %w", table, err)
	}
	g.logger.Info("created table", "table", table)
	return nil
}

// DropTable drops table.
func (g *Gateway) DropTable(ctx context.Context, table string) error {
	if err := CheckIdentifier(table); err != nil {
		return err
	}
	if !g.HasTable(ctx, table) {
		return fmt.Errorf("%w: table %s", ErrNotFound, table)
	}
	if err := g.conn(ctx).Exec("DROP TABLE ?", clause.Table{Name: table}).Error; err != nil {
		return fmt.Errorf("error dropping table %s: %w", table, err)
	}
	g.logger.Info("dropped table", "table", table)
	return nil
}

// sqlType maps a Directus data type to the column type of the dialect.
func (g *Gateway) sqlType(col ColumnDef) (string, error) {
	postgres := g.db.Dialector.Name() == "postgres"

	switch strings.ToUpper(col.DataType) {
	case "INT", "INTEGER", "TINYINT", "SMALLINT", "MEDIUMINT":
		return "integer", nil
	case "BIGINT":
		return "bigint", nil
	case "VARCHAR", "CHAR":
		length := col.Length
		if length <= 0 {
			length = 255
		}
		return fmt.Sprintf("varchar(%d)", length), nil
	case "TEXT", "TINYTEXT", "MEDIUMTEXT", "LONGTEXT":
		return "text", nil
	case "DATETIME", "TIMESTAMP":
		return "timestamp", nil
	case "DATE":
		return "date", nil
	case "TIME":
		return "time", nil
	case "DECIMAL", "NUMERIC":
		return "numeric", nil
	case "FLOAT", "DOUBLE", "REAL":
		if postgres {
			return "double precision", nil
		}
		return "real", nil
	case "BOOL", "BOOLEAN":
		return "boolean", nil
	case "BLOB", "BINARY", "VARBINARY":
		if postgres {
			return "bytea", nil
		}
		return "blob", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, col.DataType)
	}
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
