package fieldproc

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/directus/directus-sdk-go/pkg/file"
)

// Collections with built-in rules.
const (
	UsersCollection = "directus_users"
	FilesCollection = "directus_files"
)

// DefaultPasswordCost is the bcrypt cost applied when none is configured.
const DefaultPasswordCost = 12

// Fields the server maintains on users; they are never sent.
var userManagedFields = []string{
	"id",
	"token",
	"access_token",
	"reset_token",
	"reset_expiration",
	"last_login",
	"last_access",
	"last_page",
	"ip",
}

// Fields the server maintains on files; they are never sent.
var fileManagedFields = []string{
	"id",
	"user",
	"date_uploaded",
	"storage_adapter",
}

func (p *Processor) processUsers(data map[string]any) (map[string]any, error) {
	for _, key := range userManagedFields {
		delete(data, key)
	}

	if raw, ok := data["password"]; ok && raw != nil {
		plain, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("password must be a string, got %T", raw)
		}
		hash, err := HashPassword(plain, p.passwordCost)
		if err != nil {
			return nil, err
		}
		data["password"] = hash
	}

	if err := p.inlineAvatar(data); err != nil {
		return nil, err
	}

	return data, nil
}

// inlineAvatar replaces an avatar that refers to a file on disk with its
// upload attributes. Other avatar values, such as URLs, are left alone.
func (p *Processor) inlineAvatar(data map[string]any) error {
	var f *file.File
	switch v := data["avatar"].(type) {
	case *file.File:
		f = v
	case string:
		if v == "" || !p.files.Exists(v) {
			return nil
		}
		f = file.New(v)
	default:
		return nil
	}

	payload, err := f.Payload(p.files)
	if err != nil {
		return fmt.Errorf("error reading avatar: %w", err)
	}
	data["avatar"] = payload
	return nil
}

func processFiles(data map[string]any) (map[string]any, error) {
	for _, key := range fileManagedFields {
		delete(data, key)
	}
	return data, nil
}

// HashPassword returns the bcrypt hash of plain.
func HashPassword(plain string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultPasswordCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether hash was produced from plain.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
