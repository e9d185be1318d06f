package local

import (
	"errors"
	"fmt"

	"github.com/directus/directus-sdk-go/pkg/database"
	"github.com/directus/directus-sdk-go/pkg/gateway"
	"github.com/directus/directus-sdk-go/pkg/storage"
)

// DefaultUserID is the acting user when none is configured.
const DefaultUserID = 1

// Config contains configuration for the local client.
//
// Example configuration (HCL):
//
//	local {
//	  user_id  = 1
//	  group_id = 1
//
//	  database {
//	    driver = "sqlite"
//	    path   = "directus.db"
//	  }
//
//	  filesystem {
//	    adapter  = "local"
//	    root     = "/var/www/storage/uploads"
//	    root_url = "/storage/uploads"
//	  }
//	}
type Config struct {
	// UserID is the user recorded as author of messages, files and
	// preferences. Default: 1.
	UserID int `hcl:"user_id,optional" yaml:"user_id"`

	// GroupID is the group granted access to new tables. Default: 1.
	GroupID int `hcl:"group_id,optional" yaml:"group_id"`

	// PasswordCost is the bcrypt cost used for user passwords.
	PasswordCost int `hcl:"password_cost,optional" yaml:"password_cost"`

	Database   database.Config       `hcl:"database,block" yaml:"database"`
	Filesystem *storage.Config       `hcl:"filesystem,block" yaml:"filesystem"`
	Status     *gateway.StatusConfig `hcl:"status,block" yaml:"status"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.UserID == 0 {
		c.UserID = DefaultUserID
	}
	if c.GroupID == 0 {
		c.GroupID = 1
	}
	c.Database.SetDefaults()
	if c.Filesystem == nil {
		c.Filesystem = &storage.Config{}
	}
	c.Filesystem.SetDefaults()
	if c.Status == nil {
		c.Status = &gateway.StatusConfig{}
	}
	c.Status.SetDefaults()
}

// Validate checks the configuration. SetDefaults must have been called.
func (c *Config) Validate() error {
	if c.UserID <= 0 || c.GroupID <= 0 {
		return errors.New("user_id and group_id must be positive")
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if c.Filesystem != nil {
		if err := c.Filesystem.Validate(); err != nil {
			return fmt.Errorf("filesystem: %w", err)
		}
	}
	return nil
}
