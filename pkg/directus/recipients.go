package directus

import (
	"fmt"
	"strings"
)

// Recipient types used in message "to" tokens.
const (
	RecipientUser  = "0"
	RecipientGroup = "1"
)

// Recipients is the parsed audience of a message.
type Recipients struct {
	Users  []string
	Groups []string
}

// ParseRecipients reads the "to" and "toGroup" attributes of a message.
//
// "to" holds comma-separated "<type>_<id>" tokens where type 0 is a user and
// 1 a group; a bare id is a user. "toGroup" holds bare group ids.
func ParseRecipients(data map[string]any) (Recipients, error) {
	var r Recipients

	for _, token := range splitTokens(data["to"]) {
		kind, id, ok := strings.Cut(token, "_")
		if !ok {
			r.Users = append(r.Users, token)
			continue
		}
		switch kind {
		case RecipientUser:
			r.Users = append(r.Users, id)
		case RecipientGroup:
			r.Groups = append(r.Groups, id)
		default:
			return r, fmt.Errorf("%w: invalid recipient %q", ErrValidation, token)
		}
	}

	for _, token := range splitTokens(data["toGroup"]) {
		if _, id, ok := strings.Cut(token, "_"); ok {
			token = id
		}
		r.Groups = append(r.Groups, token)
	}

	return r, nil
}

// Format renders r back into the "to" token form.
func (r Recipients) Format() string {
	tokens := make([]string, 0, len(r.Users)+len(r.Groups))
	for _, id := range r.Users {
		tokens = append(tokens, RecipientUser+"_"+id)
	}
	for _, id := range r.Groups {
		tokens = append(tokens, RecipientGroup+"_"+id)
	}
	return strings.Join(tokens, ",")
}

func splitTokens(v any) []string {
	var out []string
	for _, id := range IDs(v) {
		out = append(out, fmt.Sprint(id))
	}
	return out
}
