package domain

import "testing"

func TestResolveRoute(t *testing.T) {
	for _, path := range []string{"/", "/service-selection", "/documents", "/step-confirmation", "/feedback", "/admin-login", "/admin-dashboard", "/admin-customers"} {
		if _, ok := ResolveRoute(path); !ok {
			t.Errorf("ResolveRoute(%q) not found", path)
		}
	}
	for _, path := range []string{"/nope", "", "/documents/", "/admin"} {
		if _, ok := ResolveRoute(path); ok {
			t.Errorf("ResolveRoute(%q) should be not found", path)
		}
	}
	if r, _ := ResolveRoute(RouteAdminDashboard); !r.Admin {
		t.Error("admin dashboard should be marked admin")
	}
}

func TestTransferTypes(t *testing.T) {
	enabled := map[string]bool{}
	for _, tt := range TransferTypes() {
		enabled[tt.Key] = tt.Enabled
	}
	if !enabled["motorbike"] || !enabled["car"] {
		t.Fatal("motorbike and car must be enabled")
	}
	for _, key := range []string{"dual_purpose", "lorry", "three_wheeler"} {
		if v, ok := enabled[key]; !ok || v {
			t.Errorf("%s should be listed and disabled", key)
		}
	}
}
