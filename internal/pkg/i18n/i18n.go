// Package i18n provides the bilingual message table used by the handlers.
// The full site dictionary lives with the frontend; only the strings the
// backend emits are kept here.
package i18n

const (
	Default = "en"
	Kurdish = "ckb"
)

var messages = map[string]map[string]string{
	"en": {
		"login_required":      "Please log in to access this page",
		"invalid_credentials": "Invalid username or password",
		"login_success":       "Successfully logged in",
		"logout_success":      "Successfully logged out",
		"success_added":       "Successfully added",
		"success_updated":     "Successfully updated",
		"success_deleted":     "Successfully deleted",
		"error_occurred":      "An error occurred",
		"no_permission":       "You do not have permission for this action",
	},
	"ckb": {
		"login_required":      "تکایە بچۆ ژوورەوە بۆ دەستپێگەیشتن بەم لاپەڕەیە",
		"invalid_credentials": "ناوی بەکارهێنەر یان تێپەڕەوشە هەڵەیە",
		"login_success":       "بە سەرکەوتووی چوویتە ژوورەوە",
		"logout_success":      "بە سەرکەوتووی دەرچوویت",
		"success_added":       "بە سەرکەوتووی زیادکرا",
		"success_updated":     "بە سەرکەوتووی نوێکرایەوە",
		"success_deleted":     "بە سەرکەوتووی سڕایەوە",
		"error_occurred":      "هەڵەیەک ڕوویدا",
		"no_permission":       "دەسەڵاتت نییە بۆ ئەم کردارە",
	},
}

// Pick normalizes a requested language code, falling back to the default for
// anything unrecognized.
func Pick(lang string) string {
	if _, ok := messages[lang]; !ok {
		return Default
	}
	return lang
}

// T looks up a message key in the requested language, falling back to the
// default language for unknown codes and to the key itself for unknown keys.
func T(lang, key string) string {
	table := messages[Pick(lang)]
	if msg, ok := table[key]; ok {
		return msg
	}
	return key
}
