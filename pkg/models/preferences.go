package models

// Preference is a row of directus_preferences.
type Preference struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	User           uint   `gorm:"column:user;index" json:"user"`
	Table          string `gorm:"column:table_name;type:varchar(64);index" json:"table_name"`
	Title          string `gorm:"type:varchar(255)" json:"title"`
	ColumnsVisible string `gorm:"type:varchar(300)" json:"columns_visible,omitempty"`
	Sort           string `gorm:"type:varchar(64);default:'id'" json:"sort"`
	SortOrder      string `gorm:"type:varchar(5);default:'ASC'" json:"sort_order"`
	Status         string `gorm:"type:varchar(64);default:'1,2'" json:"status"`
	SearchString   string `gorm:"type:text" json:"search_string,omitempty"`
	ListViewOpts   JSON   `gorm:"column:list_view_options;type:text" json:"list_view_options,omitempty"`
}

// TableName specifies the table name for GORM.
func (Preference) TableName() string {
	return "directus_preferences"
}

// Bookmark is a row of directus_bookmarks.
type Bookmark struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	User      uint   `gorm:"column:user;index" json:"user"`
	Title     string `gorm:"type:varchar(255)" json:"title"`
	URL       string `gorm:"column:url;type:varchar(255)" json:"url"`
	IconClass string `gorm:"type:varchar(255)" json:"icon_class,omitempty"`
	Section   string `gorm:"type:varchar(255)" json:"section"`
}

// TableName specifies the table name for GORM.
func (Bookmark) TableName() string {
	return "directus_bookmarks"
}

// UIOption is a row of directus_ui: one name/value option of a column
// interface.
type UIOption struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Table  string `gorm:"column:table_name;type:varchar(64);index:idx_ui_option,unique" json:"table_name"`
	Column string `gorm:"column:column_name;type:varchar(64);index:idx_ui_option,unique" json:"column_name"`
	UI     string `gorm:"column:ui_name;type:varchar(200);index:idx_ui_option,unique" json:"ui_name"`
	Name   string `gorm:"type:varchar(200);index:idx_ui_option,unique" json:"name"`
	Value  string `gorm:"type:text" json:"value"`
}

// TableName specifies the table name for GORM.
func (UIOption) TableName() string {
	return "directus_ui"
}
