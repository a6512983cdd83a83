// Package responders is the single place responses get encoded: handler
// success bodies, coded error bodies, and middleware rejections all go
// through the same writer so the wire shape cannot drift between them.
package responders

import (
	"encoding/json"
	"net/http"
)

// JSON writes payload as application/json with the given status. HTML
// escaping is off: checkout redirect URLs carry query separators that must
// reach the storefront unmangled.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}
