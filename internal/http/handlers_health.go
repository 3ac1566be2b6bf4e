package httpx

import "net/http"

type healthResponse struct {
	Status         string `json:"status"`
	MountedWidgets int    `json:"mounted_widgets"`
}

// healthHandler reports readiness along with how many account menus are
// currently mounted, which makes leaked widgets visible.
func healthHandler(windows *Windows) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			return
		}
		resp := healthResponse{Status: "ok"}
		if windows != nil {
			resp.MountedWidgets = windows.Mounted()
		}
		WriteJSON(w, http.StatusOK, resp)
	})
}
