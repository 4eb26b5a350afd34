package domain

import "strings"

// Render substitutes every {name} placeholder whose key is present in fields.
// Placeholders without a corresponding field are left verbatim: an unreplaced
// placeholder in a posted message is a visible signal of a configuration gap,
// which beats silently dropping it.
func Render(content string, fields map[string]string) string {
	rendered := content
	for name, value := range fields {
		rendered = strings.ReplaceAll(rendered, "{"+name+"}", value)
	}
	return rendered
}

// ValidateRoleID checks that a role id is a plausible Discord snowflake,
// i.e. composed entirely of decimal digits.
func ValidateRoleID(roleID string) error {
	if roleID == "" {
		return NewValidationError("role_id", "must not be empty")
	}
	for _, r := range roleID {
		if r < '0' || r > '9' {
			return NewValidationError("role_id", "role ID must be numeric, got %q", roleID)
		}
	}
	return nil
}

// RoleMention produces Discord role mention markup. The role id is validated
// first; a mention is never built from an unvalidated value.
func RoleMention(roleID string) (string, error) {
	if err := ValidateRoleID(roleID); err != nil {
		return "", err
	}
	return "<@&" + roleID + ">", nil
}
