package local

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/mitchellh/mapstructure"

	"github.com/directus/directus-sdk-go/pkg/directus"
	"github.com/directus/directus-sdk-go/pkg/gateway"
	"github.com/directus/directus-sdk-go/pkg/response"
)

// GetTables lists the user tables. System tables are included when params
// has include_system set.
func (c *Client) GetTables(ctx context.Context, params directus.Params) (response.Response, error) {
	var opts struct {
		IncludeSystem bool `mapstructure:"include_system"`
	}
	if err := decodeWeak(params, &opts); err != nil {
		return nil, err
	}

	tables, err := c.gw.Tables(ctx, opts.IncludeSystem)
	if err != nil {
		return nil, err
	}
	rows := make([]any, 0, len(tables))
	for _, t := range tables {
		rows = append(rows, map[string]any{"name": t})
	}
	return response.Classify(map[string]any{
		response.RowsKey: rows,
		"total":          len(rows),
	})
}

func (c *Client) GetTable(ctx context.Context, table string) (response.Response, error) {
	if !c.gw.HasTable(ctx, table) {
		return nil, fmt.Errorf("%w: table %s", gateway.ErrNotFound, table)
	}
	info, err := c.gw.TableInfo(ctx, table)
	if err != nil {
		return nil, err
	}
	return response.NewEntry(info, nil), nil
}

func (c *Client) GetColumns(ctx context.Context, table string, _ directus.Params) (response.Response, error) {
	if !c.gw.HasTable(ctx, table) {
		return nil, fmt.Errorf("%w: table %s", gateway.ErrNotFound, table)
	}
	cols, err := c.gw.Columns(ctx, table)
	if err != nil {
		return nil, err
	}
	return response.Classify(map[string]any{
		response.RowsKey: rowsAsAny(cols),
		"total":          len(cols),
	})
}

func (c *Client) GetColumn(ctx context.Context, table, column string) (response.Response, error) {
	if !c.gw.HasTable(ctx, table) {
		return nil, fmt.Errorf("%w: table %s", gateway.ErrNotFound, table)
	}
	col, err := c.gw.Column(ctx, table, column)
	if err != nil {
		return nil, err
	}
	return response.NewEntry(col, nil), nil
}

// adminPrivilege is granted to the acting group on every new table.
var adminPrivilege = map[string]any{
	"allow_view":   2,
	"allow_add":    1,
	"allow_edit":   2,
	"allow_delete": 2,
	"allow_alter":  1,
	"nav_listed":   1,
}

// CreateTable creates a table with an id and a status column and grants the
// acting group full access. It returns the privilege.
func (c *Client) CreateTable(ctx context.Context, name string, _ map[string]any) (response.Response, error) {
	table, err := directus.CleanTableName(name)
	if err != nil {
		return nil, err
	}
	if err := c.gw.CreateTable(ctx, table); err != nil {
		return nil, err
	}

	privilege := maps.Clone(adminPrivilege)
	privilege["group_id"] = c.groupID
	privilege["table_name"] = table
	record, err := c.gw.ManageRecordUpdate(ctx, directus.PrivilegesCollection, privilege)
	if err != nil {
		return nil, err
	}
	return entryResponse(directus.PrivilegesCollection, record)
}

// DeleteTable reports failures in the response rather than as an error.
func (c *Client) DeleteTable(ctx context.Context, name string) (response.Response, error) {
	err := c.gw.DropTable(ctx, name)
	if err != nil {
		c.logger.Warn("error dropping table", "table", name, "error", err)
	}
	return resultResponse(err, "unable_to_remove_table_"+name), nil
}

// columnSpec is the decoded form of CreateColumn data.
type columnSpec struct {
	Table    string  `mapstructure:"table_name"`
	Name     string  `mapstructure:"column_name"`
	DataType string  `mapstructure:"data_type"`
	Length   int     `mapstructure:"length"`
	Nullable *bool   `mapstructure:"nullable"`
	Default  *string `mapstructure:"default_value"`
}

// CreateColumn adds a column and returns its description. Columns are
// nullable unless data sets nullable to false.
func (c *Client) CreateColumn(ctx context.Context, data map[string]any) (response.Response, error) {
	data, err := directus.ParseColumnData(data)
	if err != nil {
		return nil, err
	}
	var spec columnSpec
	if err := decodeWeak(data, &spec); err != nil {
		return nil, err
	}

	def := gateway.ColumnDef{
		Name:     spec.Name,
		DataType: spec.DataType,
		Length:   spec.Length,
		Nullable: spec.Nullable == nil || *spec.Nullable,
		Default:  spec.Default,
	}
	if err := c.gw.AddColumn(ctx, spec.Table, def); err != nil {
		return nil, err
	}
	return c.GetColumn(ctx, spec.Table, spec.Name)
}

// DeleteColumn reports failures in the response rather than as an error.
func (c *Client) DeleteColumn(ctx context.Context, column, table string) (response.Response, error) {
	err := c.gw.DropColumn(ctx, table, column)
	if err != nil {
		c.logger.Warn("error dropping column", "table", table, "column", column, "error", err)
	}
	return resultResponse(err, "unable_to_remove_column_"+column), nil
}

// CreateColumnUIOptions stores each option of the column interface as a
// name/value row of directus_ui and returns the stored options.
func (c *Client) CreateColumnUIOptions(ctx context.Context, data map[string]any) (response.Response, error) {
	if err := directus.RequireAttributes(data, "table", "column", "ui", "options"); err != nil {
		return nil, err
	}
	options, ok := data["options"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: options must be an object, got %T", directus.ErrValidation, data["options"])
	}
	key := map[string]any{
		"table_name":  fmt.Sprint(data["table"]),
		"column_name": fmt.Sprint(data["column"]),
		"ui_name":     fmt.Sprint(data["ui"]),
	}

	err := c.gw.Transaction(ctx, func(tx *gateway.Gateway) error {
		for _, name := range slices.Sorted(maps.Keys(options)) {
			filter := maps.Clone(key)
			filter["name"] = name
			existing, err := tx.Select(ctx, directus.UICollection, directus.Query{Filter: filter, Limit: 1})
			if err != nil {
				return err
			}

			row := maps.Clone(filter)
			row["value"] = fmt.Sprint(options[name])
			if len(existing) > 0 {
				row[directus.PrimaryKey] = existing[0][directus.PrimaryKey]
			}
			if _, err := tx.ManageRecordUpdate(ctx, directus.UICollection, row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	rows, err := c.gw.Select(ctx, directus.UICollection, directus.Query{Filter: key})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return resultResponse(errors.New("no options stored"), "unable_to_find_column_ui_options"), nil
	}

	stored := make(map[string]any, len(rows))
	for _, row := range rows {
		name, _ := row["name"].(string)
		stored[name] = row["value"]
	}
	return entryResponse(directus.UICollection, stored)
}

func decodeWeak(input, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("%w: %v", directus.ErrValidation, err)
	}
	return nil
}
