package handlers

import (
	"encoding/base64"
	"net/http"
)

// flashCookie carries a one-shot message across a single redirect.
const flashCookie = "flash"

// Flash messages shown to the user. The login failure message is the same
// for an unknown email and a wrong password on purpose.
const (
	msgBadCredentials   = "Incorrect Email/Password combination."
	msgEmptyFields      = "Some fields are empty."
	msgPasswordMismatch = "Password doesn't match."
	msgEmailTaken       = "Email address already exists"
	msgUsernameTaken    = "Username already exists."
	msgInternal         = "Something went wrong. Please try again."
)

// SetFlash stores msg in the flash cookie. The value is base64-encoded since
// cookie values cannot carry spaces or punctuation verbatim.
func SetFlash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(msg)),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
}

// PopFlash returns the pending flash message, if any, and clears it so it is
// shown exactly once.
func PopFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})

	msg, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(msg)
}
