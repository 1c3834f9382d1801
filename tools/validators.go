package tools

import "regexp"

var emailFormat = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) bool {
	return emailFormat.MatchString(email)
}

// CheckPassword devolve o nome do campo com problema ("" se ok).
func CheckPassword(password string) string {
	if len(password) < 6 {
		return "password"
	}
	return ""
}
