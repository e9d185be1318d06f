// Package models describes the Directus system tables.
//
// The local client works on rows as plain maps; these models exist so the
// schema can be created on an empty database and so the few multi-table
// operations (messages, privileges, UI options) have typed rows to work with.
package models

// ModelsToAutoMigrate returns every system table model in creation order.
func ModelsToAutoMigrate() []interface{} {
	return []interface{}{
		&Group{}, // Must be first - users and privileges reference it
		&User{},
		&Privilege{},
		&File{},
		&Setting{},
		&Message{},
		&MessageRecipient{},
		&Preference{},
		&Bookmark{},
		&UIOption{},
		&Activity{},
	}
}
