package validator

import (
	"net/mail"
	"regexp"
	"strings"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func ValidateRegister(email, password, firstName, lastName, username string) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, errs)

	if password == "" {
		errs.Add("password", "Password is required")
	} else if len(password) < 6 {
		errs.Add("password", "Password must be at least 6 characters")
	}

	if strings.TrimSpace(firstName) == "" {
		errs.Add("first_name", "First name is required")
	}
	if strings.TrimSpace(lastName) == "" {
		errs.Add("last_name", "Last name is required")
	}

	validateUsername(username, errs)

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, errs)

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

// ValidateProfileUpdate only checks the fields that are present; nil means
// "leave unchanged" and is always fine.
func ValidateProfileUpdate(firstName, lastName, username *string) ValidationErrors {
	errs := make(ValidationErrors)

	if firstName != nil && strings.TrimSpace(*firstName) == "" {
		errs.Add("first_name", "First name cannot be empty")
	}
	if lastName != nil && strings.TrimSpace(*lastName) == "" {
		errs.Add("last_name", "Last name cannot be empty")
	}
	if username != nil {
		validateUsername(*username, errs)
	}

	return errs
}

func ValidateCustomField(title, value string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(title) == "" {
		errs.Add("title", "Title is required")
	} else if len(title) > 255 {
		errs.Add("title", "Title is too long")
	}

	if strings.TrimSpace(value) == "" {
		errs.Add("value", "Value is required")
	} else if len(value) > 255 {
		errs.Add("value", "Value is too long")
	}

	return errs
}

func ValidateBadge(title, theme string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(title) == "" {
		errs.Add("title", "Title is required")
	} else if len(title) > 255 {
		errs.Add("title", "Title is too long")
	}

	if len(theme) > 50 {
		errs.Add("theme", "Theme is too long")
	}

	return errs
}

func ValidatePost(content string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(content) == "" {
		errs.Add("content", "Content is required")
	} else if len(content) > 5000 {
		errs.Add("content", "Content is too long")
	}

	return errs
}

func validateEmail(email string, errs ValidationErrors) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}
}

func validateUsername(username string, errs ValidationErrors) {
	username = strings.TrimSpace(username)
	if username == "" {
		errs.Add("username", "Username is required")
	} else if len(username) > 50 {
		errs.Add("username", "Username is too long")
	} else if !usernameRegex.MatchString(username) {
		errs.Add("username", "Username can only contain letters, numbers and _")
	}
}
