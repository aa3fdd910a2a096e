package auth

import "strings"

const bearerPrefix = "Bearer "

// ExtractToken returns the credential carried by an Authorization header
// value. "Bearer <t>" (scheme matched case-insensitively) yields <t>; any
// other non-empty value is used whole.
func ExtractToken(header string) string {
	header = strings.TrimLeft(header, " \t")
	if len(header) >= len(bearerPrefix) && strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(header[len(bearerPrefix):])
	}
	return strings.TrimSpace(header)
}
