package domain

// Client routes.
const (
	RouteCustomerInfo     = "/"
	RouteServiceSelection = "/service-selection"
	RouteDocuments        = "/documents"
	RouteStepConfirmation = "/step-confirmation"
	RouteFeedback         = "/feedback"
	RouteAdminLogin       = "/admin-login"
	RouteAdminDashboard   = "/admin-dashboard"
	RouteAdminCustomers   = "/admin-customers"
)

// Route is one page of the kiosk client.
type Route struct {
	Path  string `json:"path"`
	Page  string `json:"page"`
	Admin bool   `json:"admin"`
}

var routes = []Route{
	{Path: RouteCustomerInfo, Page: "customer-info"},
	{Path: RouteServiceSelection, Page: "service-selection"},
	{Path: RouteDocuments, Page: "documents"},
	{Path: RouteStepConfirmation, Page: "step-confirmation"},
	{Path: RouteFeedback, Page: "feedback"},
	{Path: RouteAdminLogin, Page: "admin-login"},
	{Path: RouteAdminDashboard, Page: "admin-dashboard", Admin: true},
	{Path: RouteAdminCustomers, Page: "admin-customers", Admin: true},
}

// ResolveRoute matches path exactly. Unknown paths are not found.
func ResolveRoute(path string) (Route, bool) {
	for _, r := range routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}
