// Package preferences serves the theme preference endpoint.
package preferences

import (
	"encoding/json"
	"net/http"

	"github.com/kilianp07/predtrack/api/respond"
	corepref "github.com/kilianp07/predtrack/core/preferences"
)

type themeBody struct {
	Theme corepref.Theme `json:"theme"`
}

// NewThemeHandler serves GET and PUT /api/preferences/theme. PUT requests
// must include an Authorization header with "Bearer <token>" when token is
// non-empty.
func NewThemeHandler(svc *corepref.Service, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			th, err := svc.Theme(r.Context())
			if err != nil {
				respond.Error(w, err)
				return
			}
			respond.JSON(w, http.StatusOK, themeBody{Theme: th})
		case http.MethodPut:
			if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			var body themeBody
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				respond.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			th, err := corepref.ParseTheme(string(body.Theme))
			if err != nil {
				respond.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			if err := svc.SetTheme(r.Context(), th); err != nil {
				respond.Error(w, err)
				return
			}
			respond.JSON(w, http.StatusOK, themeBody{Theme: th})
		default:
			w.Header().Set("Allow", "GET, PUT")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}
