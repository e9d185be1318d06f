package models

import "time"

// File is a row of directus_files.
type File struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Active         int        `gorm:"column:active;default:1;index" json:"active"`
	Name           string     `gorm:"type:varchar(255)" json:"name"`
	URL            string     `gorm:"column:url;type:varchar(2000)" json:"url,omitempty"`
	Title          string     `gorm:"type:varchar(255)" json:"title,omitempty"`
	Location       string     `gorm:"type:varchar(200)" json:"location,omitempty"`
	Caption        string     `gorm:"type:text" json:"caption,omitempty"`
	Type           string     `gorm:"type:varchar(255)" json:"type,omitempty"`
	Charset        string     `gorm:"type:varchar(50)" json:"charset,omitempty"`
	Tags           string     `gorm:"type:varchar(255)" json:"tags,omitempty"`
	Width          int        `json:"width,omitempty"`
	Height         int        `json:"height,omitempty"`
	Size           int64      `json:"size"`
	EmbedID        string     `gorm:"column:embed_id;type:varchar(200)" json:"embed_id,omitempty"`
	User           uint       `gorm:"column:user;not null" json:"user"`
	DateUploaded   *time.Time `json:"date_uploaded,omitempty"`
	StorageAdapter string     `gorm:"type:varchar(50)" json:"storage_adapter,omitempty"`
}

// TableName specifies the table name for GORM.
func (File) TableName() string {
	return "directus_files"
}

// Setting is a row of directus_settings.
type Setting struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Collection string `gorm:"type:varchar(250);index:idx_settings_collection_name,unique" json:"collection"`
	Name       string `gorm:"type:varchar(250);index:idx_settings_collection_name,unique" json:"name"`
	Value      string `gorm:"type:varchar(250)" json:"value"`
}

// TableName specifies the table name for GORM.
func (Setting) TableName() string {
	return "directus_settings"
}
