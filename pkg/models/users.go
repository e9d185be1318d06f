package models

import "time"

// Group is a row of directus_groups.
type Group struct {
	ID                    uint   `gorm:"primaryKey" json:"id"`
	Name                  string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Description           string `gorm:"type:varchar(500)" json:"description,omitempty"`
	RestrictToIPWhitelist string `gorm:"column:restrict_to_ip_whitelist;type:text" json:"restrict_to_ip_whitelist,omitempty"`
	NavOverride           string `gorm:"type:text" json:"nav_override,omitempty"`
	NavBlacklist          string `gorm:"type:text" json:"nav_blacklist,omitempty"`
	ShowActivity          int    `gorm:"default:1" json:"show_activity"`
	ShowMessages          int    `gorm:"default:1" json:"show_messages"`
	ShowUsers             int    `gorm:"default:1" json:"show_users"`
	ShowFiles             int    `gorm:"default:1" json:"show_files"`
}

// TableName specifies the table name for GORM.
func (Group) TableName() string {
	return "directus_groups"
}

// User is a row of directus_users.
type User struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Active          int        `gorm:"column:active;default:1;index" json:"active"`
	FirstName       string     `gorm:"type:varchar(50)" json:"first_name,omitempty"`
	LastName        string     `gorm:"type:varchar(50)" json:"last_name,omitempty"`
	Email           string     `gorm:"type:varchar(128);index" json:"email"`
	Password        string     `gorm:"type:varchar(255)" json:"-"`
	Token           string     `gorm:"type:varchar(128)" json:"-"`
	AccessToken     string     `gorm:"type:varchar(255)" json:"-"`
	ResetToken      string     `gorm:"type:varchar(32)" json:"-"`
	ResetExpiration *time.Time `json:"reset_expiration,omitempty"`
	Position        string     `gorm:"type:varchar(500)" json:"position,omitempty"`
	EmailMessages   int        `gorm:"default:1" json:"email_messages"`
	LastLogin       *time.Time `json:"last_login,omitempty"`
	LastAccess      *time.Time `json:"last_access,omitempty"`
	LastPage        string     `gorm:"type:varchar(255)" json:"last_page,omitempty"`
	IP              string     `gorm:"column:ip;type:varchar(50)" json:"ip,omitempty"`
	Group           *uint      `gorm:"column:group;index" json:"group,omitempty"`
	Avatar          string     `gorm:"type:text" json:"avatar,omitempty"`
	AvatarFileID    *uint      `json:"avatar_file_id,omitempty"`
	Location        string     `gorm:"type:varchar(255)" json:"location,omitempty"`
	Phone           string     `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Language        string     `gorm:"type:varchar(8);default:'en'" json:"language"`
	Timezone        string     `gorm:"type:varchar(32);default:'UTC'" json:"timezone"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "directus_users"
}

// Privilege is a row of directus_privileges.
type Privilege struct {
	ID                  uint   `gorm:"primaryKey" json:"id"`
	Table               string `gorm:"column:table_name;type:varchar(255);not null;index" json:"table_name"`
	GroupID             uint   `gorm:"column:group_id;not null;index" json:"group_id"`
	AllowView           int    `gorm:"default:0" json:"allow_view"`
	AllowAdd            int    `gorm:"default:0" json:"allow_add"`
	AllowEdit           int    `gorm:"default:0" json:"allow_edit"`
	AllowDelete         int    `gorm:"default:0" json:"allow_delete"`
	AllowAlter          int    `gorm:"default:0" json:"allow_alter"`
	ReadFieldBlacklist  string `gorm:"type:varchar(1000)" json:"read_field_blacklist"`
	WriteFieldBlacklist string `gorm:"type:varchar(1000)" json:"write_field_blacklist"`
	NavListed           int    `gorm:"default:0" json:"nav_listed"`
	StatusID            *int   `gorm:"column:status_id" json:"status_id"`
}

// TableName specifies the table name for GORM.
func (Privilege) TableName() string {
	return "directus_privileges"
}
