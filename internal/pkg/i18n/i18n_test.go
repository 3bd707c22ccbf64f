package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickFallback(t *testing.T) {
	assert.Equal(t, "en", Pick("en"))
	assert.Equal(t, "ckb", Pick("ckb"))
	assert.Equal(t, "en", Pick("xx"))
	assert.Equal(t, "en", Pick(""))
}

func TestTranslateFallback(t *testing.T) {
	assert.Equal(t, T("en", "login_success"), T("xx", "login_success"))
	assert.Equal(t, "بە سەرکەوتووی چوویتە ژوورەوە", T("ckb", "login_success"))
	// unknown keys come back verbatim
	assert.Equal(t, "nope", T("en", "nope"))
}
