package validator

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
var slugRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

func ValidateLogin(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateInitAdmin(email, username, password string) ValidationErrors {
	errs := make(ValidationErrors)

	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}

	username = strings.TrimSpace(username)
	if username == "" {
		errs.Add("username", "Username is required")
	} else if len(username) < 3 {
		errs.Add("username", "Username must be at least 3 characters")
	} else if len(username) > 100 {
		errs.Add("username", "Username is too long")
	} else if !usernameRegex.MatchString(username) {
		errs.Add("username", "Username can only contain letters, numbers, _ and -")
	}

	validatePassword(password, errs)

	return errs
}

func ValidateCategory(name, slug, contentType string) ValidationErrors {
	errs := make(ValidationErrors)

	name = strings.TrimSpace(name)
	if name == "" {
		errs.Add("name", "Category name is required")
	} else if len(name) > 100 {
		errs.Add("name", "Category name is too long")
	}

	validateSlug(slug, errs)

	if contentType != "article" && contentType != "publication" && contentType != "boutique" {
		errs.Add("content_type", "Content type must be article, publication, or boutique")
	}

	return errs
}

func ValidateArticle(title, slug, status string) ValidationErrors {
	errs := make(ValidationErrors)

	title = strings.TrimSpace(title)
	if title == "" {
		errs.Add("title", "Title is required")
	} else if len(title) > 255 {
		errs.Add("title", "Title is too long")
	}

	validateSlug(slug, errs)
	validateStatus(status, errs)

	return errs
}

func ValidateBoutiqueItem(name, slug, status string, price float64) ValidationErrors {
	errs := make(ValidationErrors)

	name = strings.TrimSpace(name)
	if name == "" {
		errs.Add("name", "Product name is required")
	} else if len(name) > 255 {
		errs.Add("name", "Product name is too long")
	}

	if price < 0 {
		errs.Add("price", "Price cannot be negative")
	}

	validateSlug(slug, errs)
	validateStatus(status, errs)

	return errs
}

func validateSlug(slug string, errs ValidationErrors) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return
	}
	if len(slug) > 280 {
		errs.Add("slug", "Slug is too long")
	} else if !slugRegex.MatchString(slug) {
		errs.Add("slug", "Slug can only contain lowercase letters, numbers and dashes")
	}
}

func validateStatus(status string, errs ValidationErrors) {
	if status != "" && status != "draft" && status != "published" {
		errs.Add("status", "Status must be draft or published")
	}
}

func validatePassword(password string, errs ValidationErrors) {
	if len(password) < 8 {
		errs.Add("password", "Password must be at least 8 characters")
		return
	}

	var hasUpper, hasLower, hasDigit bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		}
	}

	missing := []string{}
	if !hasUpper {
		missing = append(missing, "one uppercase letter")
	}
	if !hasLower {
		missing = append(missing, "one lowercase letter")
	}
	if !hasDigit {
		missing = append(missing, "one number")
	}

	if len(missing) > 0 {
		errs.Add("password", fmt.Sprintf("Password must contain at least %s", strings.Join(missing, ", ")))
	}
}
