package app

import (
	"net/http"

	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

type endpointDoc struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Auth   string `json:"auth"`
	Desc   string `json:"description"`
}

var apiDocs = []endpointDoc{
	{"POST", "/users/register", "none", "Create an account"},
	{"POST", "/users/login", "none", "Exchange credentials for a bearer token"},
	{"POST", "/users/logout", "basic+bearer", "Revoke the current token"},
	{"GET", "/users/{id}", "basic+bearer", "Fetch an account (owner or admin)"},
	{"PUT", "/users/{id}", "basic+bearer", "Update an account (owner or admin)"},
	{"DELETE", "/users/{id}", "basic+bearer", "Delete an account (owner or admin)"},
	{"GET", "/users/{id}/profile", "basic+bearer", "Profile view; foreign callers see a redacted subset"},
	{"GET", "/startups/catalog", "none", "Public listing of active startups"},
	{"GET", "/startups/{id}/details", "basic+bearer", "Startup with category and region names"},
	{"GET", "/contributions/startup/{id}", "basic", "Pledges for one startup (bank integration)"},
	{"GET", "/contributions/summary", "basic", "Per-startup funding totals (bank integration)"},
	{"POST", "/payments", "basic+bearer", "Open a provider receipt for a contribution"},
	{"GET", "/payments/{transaction_id}", "basic+bearer", "Payment status, refreshed from the provider"},
	{"POST", "/payments/webhook", "provider key", "Provider receipt lifecycle callbacks"},
	{"*", "/phones, /entrepreneurs, /contributors, /categories, /regions, /startups, /contributions", "basic+bearer", "CRUD; mutations of existing records require admin"},
}

func handleAPIDocs(w http.ResponseWriter, r *http.Request) {
	shared.RespondJSON(w, http.StatusOK, map[string]any{
		"name":      "dreamteam API",
		"endpoints": apiDocs,
	})
}
