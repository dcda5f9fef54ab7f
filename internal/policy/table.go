package policy

import "net/http"

// ProfileRedactions are the fields hidden when a user views someone else's
// profile: only the first name, abbreviated last name and public startup
// links survive.
var ProfileRedactions = []string{
	"email",
	"phone_number",
	"entrepreneur",
	"contributor",
	"last_name",
}

// DefaultRoutes is the platform route table. It mirrors the routes mounted
// in internal/app/router.go; the gate refuses to start when they drift (the
// table is validated at startup).
func DefaultRoutes() []Route {
	routes := []Route{
		// Public surface.
		{Method: http.MethodGet, Pattern: "/", Auth: Public},
		{Method: http.MethodGet, Pattern: "/healthz", Auth: Public},
		{Method: http.MethodGet, Pattern: "/metrics", Auth: Public},
		{Method: http.MethodGet, Pattern: "/api-docs", Auth: Public},
		{Method: http.MethodPost, Pattern: "/users/register", Auth: Public},
		{Method: http.MethodPost, Pattern: "/users/login", Auth: Public},
		{Method: http.MethodGet, Pattern: "/startups/catalog", Auth: Public},
		// The webhook authenticates itself with the gateway signature.
		{Method: http.MethodPost, Pattern: "/payments/webhook", Auth: Public},

		// Bearer-exempt reads: reachable with the app credential alone.
		{Method: http.MethodGet, Pattern: "/contributions/startup/{id}", Auth: BasicOnly},
		{Method: http.MethodGet, Pattern: "/contributions/summary", Auth: BasicOnly},

		// Session management.
		{Method: http.MethodPost, Pattern: "/users/logout", Auth: BasicAndBearer},

		// User resource: ownership-bound, plus the redacted profile view.
		{Method: http.MethodGet, Pattern: "/users/{id}", Auth: BasicAndBearer, OwnershipParam: "id", Collection: true},
		{Method: http.MethodPut, Pattern: "/users/{id}", Auth: BasicAndBearer, OwnershipParam: "id", Collection: true},
		{Method: http.MethodDelete, Pattern: "/users/{id}", Auth: BasicAndBearer, OwnershipParam: "id", Collection: true},
		{Method: http.MethodGet, Pattern: "/users/{id}/profile", Auth: BasicAndBearer, OwnershipParam: "id", RedactForeign: ProfileRedactions},

		// Enriched startup detail for authenticated callers.
		{Method: http.MethodGet, Pattern: "/startups/{id}/details", Auth: BasicAndBearer},

		// Payments.
		{Method: http.MethodPost, Pattern: "/payments", Auth: BasicAndBearer},
		{Method: http.MethodGet, Pattern: "/payments/{transaction_id}", Auth: BasicAndBearer},

		// Queue introspection for operators.
		{Method: http.MethodGet, Pattern: "/jobs/health", Auth: BasicAndBearer},
	}

	for _, name := range []string{"phones", "entrepreneurs", "contributors", "categories", "regions", "startups", "contributions"} {
		routes = append(routes, collectionRoutes(name)...)
	}
	return routes
}

// collectionRoutes builds the plain CRUD descriptors shared by every
// collection resource.
func collectionRoutes(name string) []Route {
	base := "/" + name
	item := base + "/{id}"
	return []Route{
		{Method: http.MethodGet, Pattern: base, Auth: BasicAndBearer, Collection: true},
		{Method: http.MethodPost, Pattern: base, Auth: BasicAndBearer, Collection: true},
		{Method: http.MethodGet, Pattern: item, Auth: BasicAndBearer, Collection: true},
		{Method: http.MethodPut, Pattern: item, Auth: BasicAndBearer, Collection: true},
		{Method: http.MethodDelete, Pattern: item, Auth: BasicAndBearer, Collection: true},
	}
}
