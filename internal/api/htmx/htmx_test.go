package htmx

import (
	"net/http/httptest"
	"testing"
)

func TestIsPartial(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    bool
	}{
		{name: "plain request", want: false},
		{name: "htmx request", headers: map[string]string{"HX-Request": "true"}, want: true},
		{name: "boosted", headers: map[string]string{"HX-Boosted": "TRUE"}, want: true},
		{name: "explicit false", headers: map[string]string{"HX-Request": "false"}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/leagues", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			if got := IsPartial(req); got != tc.want {
				t.Fatalf("IsPartial = %v, want %v", got, tc.want)
			}
		})
	}
}
