package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestReadOnlyMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name    string
		enabled bool
		method  string
		path    string
		want    int
	}{
		{name: "disabled passes writes", enabled: false, method: http.MethodPost, path: "/api/expenses", want: http.StatusOK},
		{name: "enabled passes reads", enabled: true, method: http.MethodGet, path: "/api/expenses/2024/5", want: http.StatusOK},
		{name: "enabled blocks writes", enabled: true, method: http.MethodPost, path: "/api/expenses", want: http.StatusForbidden},
		{name: "enabled blocks deletes", enabled: true, method: http.MethodDelete, path: "/api/segments/1", want: http.StatusForbidden},
		{name: "enabled allows login", enabled: true, method: http.MethodPost, path: "/api/login", want: http.StatusOK},
		{name: "enabled allows verify", enabled: true, method: http.MethodPost, path: "/api/verify-token", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := ReadOnlyMiddleware(tt.enabled)(ok)
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
