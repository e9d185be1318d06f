package local

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"gorm.io/gorm/clause"

	"github.com/directus/directus-sdk-go/pkg/directus"
	"github.com/directus/directus-sdk-go/pkg/gateway"
	"github.com/directus/directus-sdk-go/pkg/models"
	"github.com/directus/directus-sdk-go/pkg/response"
)

// GetMessages lists the messages received by userID, newest first. The
// read flag of each message is that of the user; the metadata carries the
// read and unread counts.
func (c *Client) GetMessages(ctx context.Context, userID any) (response.Response, error) {
	var received []models.MessageRecipient
	err := c.gw.DB().WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: "recipient"}, Value: userID}).
		Find(&received).Error
	if err != nil {
		return nil, fmt.Errorf("error listing messages of user %v: %w", userID, err)
	}

	read := make(map[string]int, len(received))
	ids := make([]any, 0, len(received))
	for _, r := range received {
		key := strconv.FormatUint(uint64(r.MessageID), 10)
		if _, seen := read[key]; !seen {
			ids = append(ids, r.MessageID)
		}
		read[key] = r.Read
	}

	var rows []gateway.Row
	if len(ids) > 0 {
		rows, err = c.gw.Select(ctx, directus.MessagesCollection, directus.Query{
			Filter:    map[string]any{directus.PrimaryKey: map[string]any{directus.OpIn: ids}},
			SortOrder: "desc",
		})
		if err != nil {
			return nil, err
		}
	}

	unread := 0
	for _, row := range rows {
		flag := read[fmt.Sprint(row[directus.PrimaryKey])]
		row["read"] = flag
		if flag == 0 {
			unread++
		}
	}

	return response.Classify(map[string]any{
		response.RowsKey: rowsAsAny(rows),
		"total":          len(rows),
		"read":           len(rows) - unread,
		"unread":         unread,
	})
}

// GetMessage returns a message with its recipients in "0_<user>" token form.
func (c *Client) GetMessage(ctx context.Context, id any) (response.Response, error) {
	record, err := c.gw.Find(ctx, directus.MessagesCollection, id)
	if err != nil {
		return nil, err
	}

	var recipients []models.MessageRecipient
	err = c.gw.DB().WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: "message_id"}, Value: record[directus.PrimaryKey]}).
		Order("id").
		Find(&recipients).Error
	if err != nil {
		return nil, fmt.Errorf("error reading recipients of message %v: %w", id, err)
	}

	var to directus.Recipients
	for _, r := range recipients {
		to.Users = append(to.Users, strconv.FormatUint(uint64(r.Recipient), 10))
	}
	record["recipients"] = to.Format()
	return entryResponse(directus.MessagesCollection, record)
}

// CreateMessage stores a message for every addressed user, the members of
// every addressed group and the sender, and records the activity. The
// acting user is the sender whatever from holds.
func (c *Client) CreateMessage(ctx context.Context, data map[string]any) (response.Response, error) {
	if err := directus.ValidateMessage(data); err != nil {
		return nil, err
	}
	to, err := directus.ParseRecipients(data)
	if err != nil {
		return nil, err
	}
	from := uint(c.userID)

	fields := maps.Clone(data)
	delete(fields, "to")
	delete(fields, "toGroup")
	fields["from"] = from
	now := c.now().UTC()
	fields["datetime"] = now

	var messageID uint
	err = c.gw.Transaction(ctx, func(tx *gateway.Gateway) error {
		recipients, err := c.resolveRecipients(ctx, tx, to)
		if err != nil {
			return err
		}
		if !slices.ContainsFunc(recipients, func(r models.MessageRecipient) bool { return r.Recipient == from }) {
			recipients = append(recipients, models.MessageRecipient{Recipient: from, Read: 1})
		}

		record, err := tx.ManageRecordUpdate(ctx, directus.MessagesCollection, fields)
		if err != nil {
			return err
		}
		if messageID, err = toID(record[directus.PrimaryKey]); err != nil {
			return err
		}

		for i := range recipients {
			recipients[i].MessageID = messageID
		}
		if err := tx.DB().WithContext(ctx).Create(&recipients).Error; err != nil {
			return fmt.Errorf("error storing message recipients: %w", err)
		}

		snapshot, err := models.NewJSON(fields)
		if err != nil {
			return err
		}
		subject, _ := fields["subject"].(string)
		activity := models.Activity{
			Type:       models.ActivityTypeMessage,
			Action:     models.ActivityActionAdd,
			Identifier: subject,
			Table:      directus.MessagesCollection,
			RowID:      messageID,
			User:       uint(c.userID),
			Data:       snapshot,
			Datetime:   &now,
		}
		if err := tx.DB().WithContext(ctx).Create(&activity).Error; err != nil {
			return fmt.Errorf("error recording message activity: %w", err)
		}

		c.logger.Debug("sent message", "id", messageID, "recipients", len(recipients))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.GetMessage(ctx, messageID)
}

// SendMessage is an alias of CreateMessage.
func (c *Client) SendMessage(ctx context.Context, data map[string]any) (response.Response, error) {
	return c.CreateMessage(ctx, data)
}

// resolveRecipients expands to into one unread recipient per user. Group
// recipients are the active members of the group; a user reached both
// directly and through a group is listed once.
func (c *Client) resolveRecipients(ctx context.Context, tx *gateway.Gateway, to directus.Recipients) ([]models.MessageRecipient, error) {
	var out []models.MessageRecipient
	seen := map[uint]bool{}

	for _, token := range to.Users {
		id, err := toID(token)
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, models.MessageRecipient{Recipient: id})
		}
	}

	if len(to.Groups) == 0 {
		return out, nil
	}
	groups := make([]any, 0, len(to.Groups))
	for _, token := range to.Groups {
		id, err := toID(token)
		if err != nil {
			return nil, err
		}
		groups = append(groups, id)
	}

	status := tx.Status()
	var members []models.User
	err := tx.DB().WithContext(ctx).
		Where(clause.IN{Column: clause.Column{Name: "group"}, Values: groups}).
		Where(clause.Eq{Column: clause.Column{Name: "active"}, Value: status.Active()}).
		Order("id").
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("error listing group members: %w", err)
	}

	for _, u := range members {
		if seen[u.ID] {
			continue
		}
		seen[u.ID] = true
		out = append(out, models.MessageRecipient{Recipient: u.ID, Group: u.Group})
	}
	return out, nil
}

// toID converts a record id of any numeric or string form.
func toID(v any) (uint, error) {
	switch t := v.(type) {
	case uint:
		return t, nil
	case int:
		if t >= 0 {
			return uint(t), nil
		}
	case int64:
		if t >= 0 {
			return uint(t), nil
		}
	case uint64:
		return uint(t), nil
	case float64:
		if t >= 0 && t == float64(uint(t)) {
			return uint(t), nil
		}
	case string:
		if id, err := strconv.ParseUint(t, 10, 0); err == nil {
			return uint(id), nil
		}
	}
	return 0, fmt.Errorf("%w: invalid id %v", directus.ErrValidation, v)
}

func (c *Client) GetBookmarks(ctx context.Context) (response.Response, error) {
	return c.GetEntries(ctx, directus.BookmarksCollection, nil)
}

func (c *Client) GetUserBookmarks(ctx context.Context, userID any) (response.Response, error) {
	return c.GetEntries(ctx, directus.BookmarksCollection, directus.Params{
		"filter": map[string]any{"user": userID},
	})
}

// CreateBookmark saves the table view described by data as preferences and
// bookmarks them in the search section.
func (c *Client) CreateBookmark(ctx context.Context, data map[string]any) (response.Response, error) {
	resp, err := c.CreatePreferences(ctx, directus.Pick(data, directus.PreferenceFields...))
	if err != nil {
		return nil, err
	}
	prefs, ok := response.AsEntry(resp)
	if !ok {
		return nil, fmt.Errorf("unexpected preferences response %s", resp.Kind())
	}

	bookmark := directus.SearchBookmark(prefs.StringField("title"), prefs.StringField("table_name"))
	bookmark["user"] = prefs.Value("user")

	record, err := c.gw.ManageRecordUpdate(ctx, directus.BookmarksCollection, bookmark)
	if err != nil {
		return nil, err
	}
	return response.NewEntry(record, nil), nil
}

func (c *Client) DeleteBookmark(ctx context.Context, id any) (int, error) {
	return c.DeleteEntry(ctx, directus.BookmarksCollection, id)
}

// Columns left out of the default visible columns.
var hiddenPreferenceColumns = []string{directus.PrimaryKey, "sort"}

// maxVisibleColumns bounds the default visible columns.
const maxVisibleColumns = 3

// GetPreferences returns the preferences of userID for table, creating the
// defaults on first access.
func (c *Client) GetPreferences(ctx context.Context, table string, userID any) (response.Response, error) {
	rows, err := c.gw.Select(ctx, directus.PreferencesCollection, directus.Query{
		Filter: map[string]any{"table_name": table, "user": userID},
		Limit:  1,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		return entryResponse(directus.PreferencesCollection, rows[0])
	}

	if !c.gw.HasTable(ctx, table) {
		return nil, fmt.Errorf("%w: table %s", gateway.ErrNotFound, table)
	}
	cols, err := c.gw.Columns(ctx, table)
	if err != nil {
		return nil, err
	}

	status := c.gw.Status()
	hidden := append(slices.Clone(hiddenPreferenceColumns), status.ColumnName)
	var visible []string
	for _, col := range cols {
		name, _ := col["column_name"].(string)
		if slices.Contains(hidden, name) {
			continue
		}
		if visible = append(visible, name); len(visible) == maxVisibleColumns {
			break
		}
	}

	record, err := c.gw.ManageRecordUpdate(ctx, directus.PreferencesCollection, map[string]any{
		"user":            userID,
		"table_name":      table,
		"columns_visible": strings.Join(visible, ","),
		"sort":            directus.PrimaryKey,
		"sort_order":      "ASC",
		"status":          fmt.Sprintf("%d,%d", status.Active(), *status.DraftValue),
	})
	if err != nil {
		return nil, err
	}
	c.logger.Debug("created default preferences", "table", table, "user", userID)
	return entryResponse(directus.PreferencesCollection, record)
}

// CreatePreferences requires title and table_name. The preferences always
// belong to the acting user.
func (c *Client) CreatePreferences(ctx context.Context, data map[string]any) (response.Response, error) {
	if err := directus.RequireAttributes(data, "title", "table_name"); err != nil {
		return nil, err
	}
	fields := maps.Clone(data)
	fields["user"] = c.userID

	record, err := c.gw.ManageRecordUpdate(ctx, directus.PreferencesCollection, fields)
	if err != nil {
		return nil, err
	}
	return entryResponse(directus.PreferencesCollection, record)
}
