package cli

import (
	"context"
	"fmt"
)

// dashboardStats are the application-wide figures shown on the dashboard.
// The backend exposes no statistics endpoint, so the dashboard shows the
// same static placeholder values as the web UI.
var dashboardStats = []struct {
	label  string
	value  string
	change string
}{
	{label: "Total Users", value: "1,234", change: "+12%"},
	{label: "Items Created", value: "856", change: "+8%"},
	{label: "API Requests", value: "45.2K", change: "+23%"},
	{label: "Growth Rate", value: "14.6%", change: "+2.4%"},
}

// Dashboard prints a welcome line and the mock statistics grid.
func (a *App) Dashboard(ctx context.Context) error {
	if u := a.session.User(); u != nil {
		name := u.Email
		if u.FullName != nil && *u.FullName != "" {
			name = *u.FullName
		}
		fmt.Printf("Welcome back, %s!\n\n", name)
	}

	for _, stat := range dashboardStats {
		fmt.Printf("%-15s %8s   %s from last month\n", stat.label, stat.value, stat.change)
	}
	return nil
}
