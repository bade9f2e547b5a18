package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashCookieName = "xmlgen_flash"

// Flash is a one-shot message surviving a redirect, the way the original
// listing page reports navigation errors.
type Flash struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

func setFlash(w http.ResponseWriter, message, category string) {
	payload, err := json.Marshal(Flash{Message: message, Category: category})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
	})
}

// popFlash returns the pending flash, if any, and clears the cookie.
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	payload, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var flash Flash
	if err := json.Unmarshal(payload, &flash); err != nil {
		return nil
	}
	return &flash
}
