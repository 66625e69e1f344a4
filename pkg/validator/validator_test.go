package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLogin(t *testing.T) {
	t.Parallel()

	assert.False(t, ValidateLogin("julien@example.org", "secret").HasErrors())

	errs := ValidateLogin("", "")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")

	errs = ValidateLogin("not-an-email", "secret")
	assert.Contains(t, errs, "email")
}

func TestValidateInitAdmin(t *testing.T) {
	t.Parallel()

	assert.False(t, ValidateInitAdmin("julien@example.org", "julien", "Passw0rdOk").HasErrors())

	errs := ValidateInitAdmin("julien@example.org", "ju", "Passw0rdOk")
	assert.Contains(t, errs, "username")

	errs = ValidateInitAdmin("julien@example.org", "julien", "alllowercase")
	assert.Contains(t, errs, "password")
}

func TestValidateCategory(t *testing.T) {
	t.Parallel()

	assert.False(t, ValidateCategory("Ateliers", "", "article").HasErrors())
	assert.False(t, ValidateCategory("Ateliers", "ateliers-2024", "boutique").HasErrors())

	errs := ValidateCategory("", "Bad Slug!", "video")
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "slug")
	assert.Contains(t, errs, "content_type")
}

func TestValidateArticle(t *testing.T) {
	t.Parallel()

	assert.False(t, ValidateArticle("Un titre", "", "").HasErrors())
	assert.False(t, ValidateArticle("Un titre", "un-titre", "published").HasErrors())

	errs := ValidateArticle("", "", "archived")
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "status")
}

func TestValidateBoutiqueItem(t *testing.T) {
	t.Parallel()

	assert.False(t, ValidateBoutiqueItem("Savon artisanal", "", "draft", 12.5).HasErrors())

	errs := ValidateBoutiqueItem("", "", "", -1)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "price")
}
