package utils

import "strings"

// ValidateEmail accepts any string containing '@'. Primary emails carry no
// stronger validation than this.
func ValidateEmail(email string) bool {
	return strings.Contains(email, "@")
}
