package logging

import (
	"net/url"
	"regexp"
	"strings"
)

// MaskChar is the character used for masking.
const MaskChar = "*"

// SensitiveFields contains field names whose values are never logged.
var SensitiveFields = map[string]bool{
	"password": true,
	"secret":   true,
	"token":    true,
	"dsn":      true,
}

// kvPassword matches password=... in key/value connection strings.
var kvPassword = regexp.MustCompile(`(?i)(password\s*=\s*)('[^']*'|\S+)`)

// IsSensitiveField checks if a field name indicates sensitive data.
func IsSensitiveField(fieldName string) bool {
	lower := strings.ToLower(fieldName)
	for keyword := range SensitiveFields {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// MaskValue masks a sensitive value completely.
func MaskValue(value string) string {
	if value == "" {
		return ""
	}
	return strings.Repeat(MaskChar, min(len(value), 8))
}

// MaskDSN hides the password of a database connection string. Both URL
// form (postgres://user:pw@host/db) and key/value form (password=pw) are
// handled. Strings without a password are returned unchanged.
func MaskDSN(dsn string) string {
	if strings.Contains(dsn, "://") {
		u, err := url.Parse(dsn)
		if err == nil && u.User != nil {
			if _, ok := u.User.Password(); ok {
				u.User = url.UserPassword(u.User.Username(), "xxxxx")
				return strings.Replace(u.String(), "xxxxx", strings.Repeat(MaskChar, 3), 1)
			}
			return dsn
		}
	}
	return kvPassword.ReplaceAllString(dsn, "${1}"+strings.Repeat(MaskChar, 3))
}

// MaskArgs masks sensitive values in a slice of logging arguments.
// Arguments are expected in key-value pairs: key1, value1, key2, value2, ...
func MaskArgs(args []any) []any {
	if len(args) < 2 {
		return args
	}

	result := make([]any, len(args))
	copy(result, args)

	for i := 0; i < len(result)-1; i += 2 {
		key, ok := result[i].(string)
		if !ok || !IsSensitiveField(key) {
			continue
		}
		strVal, ok := result[i+1].(string)
		switch {
		case ok && strings.Contains(strings.ToLower(key), "dsn"):
			result[i+1] = MaskDSN(strVal)
		case ok:
			result[i+1] = MaskValue(strVal)
		default:
			result[i+1] = strings.Repeat(MaskChar, 8)
		}
	}

	return result
}
