package directus

// System collections.
const (
	ActivityCollection          = "directus_activity"
	BookmarksCollection         = "directus_bookmarks"
	FilesCollection             = "directus_files"
	GroupsCollection            = "directus_groups"
	MessagesCollection          = "directus_messages"
	MessageRecipientsCollection = "directus_messages_recipients"
	PreferencesCollection       = "directus_preferences"
	PrivilegesCollection        = "directus_privileges"
	SettingsCollection          = "directus_settings"
	UICollection                = "directus_ui"
	UsersCollection             = "directus_users"
)

// AdminGroupID is the group created with every Directus install.
const AdminGroupID = 1
