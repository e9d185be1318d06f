package gateway

import (
	"slices"
	"strconv"
)

// DefaultStatusColumn is the column holding a record status.
const DefaultStatusColumn = "active"

// StatusConfig describes the status column shared by Directus tables.
type StatusConfig struct {
	ColumnName   string `hcl:"column_name,optional" yaml:"column_name"`
	DeletedValue *int   `hcl:"deleted_value,optional" yaml:"deleted_value"`
	ActiveValue  *int   `hcl:"active_value,optional" yaml:"active_value"`
	DraftValue   *int   `hcl:"draft_value,optional" yaml:"draft_value"`

	// Mapping names each status value.
	Mapping map[string]string `hcl:"mapping,optional" yaml:"mapping"`
}

func intPtr(v int) *int { return &v }

// SetDefaults fills unset fields: column "active" with 0 = Delete,
// 1 = Active and 2 = Draft.
func (c *StatusConfig) SetDefaults() {
	if c.ColumnName == "" {
		c.ColumnName = DefaultStatusColumn
	}
	if c.DeletedValue == nil {
		c.DeletedValue = intPtr(0)
	}
	if c.ActiveValue == nil {
		c.ActiveValue = intPtr(1)
	}
	if c.DraftValue == nil {
		c.DraftValue = intPtr(2)
	}
	if len(c.Mapping) == 0 {
		c.Mapping = map[string]string{
			strconv.Itoa(*c.DeletedValue): "Delete",
			strconv.Itoa(*c.ActiveValue):  "Active",
			strconv.Itoa(*c.DraftValue):   "Draft",
		}
	}
}

// Active returns the value of an active record.
func (c *StatusConfig) Active() int {
	if c.ActiveValue == nil {
		return 1
	}
	return *c.ActiveValue
}

// Name returns the mapped name of a status value.
func (c *StatusConfig) Name(value int) (string, bool) {
	name, ok := c.Mapping[strconv.Itoa(value)]
	return name, ok
}

// Names returns every mapped status name, sorted.
func (c *StatusConfig) Names() []string {
	names := make([]string, 0, len(c.Mapping))
	for _, name := range c.Mapping {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
