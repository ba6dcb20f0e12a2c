package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/itemdesk/internal/models"
)

// Profile prints the current user.
func (a *App) Profile(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Printf("Email:     %s\n", u.Email)
	if u.FullName != nil && *u.FullName != "" {
		fmt.Printf("Full name: %s\n", *u.FullName)
	}
	fmt.Printf("Active:    %t\n", u.IsActive)
	fmt.Printf("Member since: %s\n", u.CreatedAt.Format("2006-01-02"))
	return nil
}

// EditProfile prompts for a new email and full name; fields left empty keep
// their current value. The cached user is refreshed from the backend's
// response.
func (a *App) EditProfile(ctx context.Context) error {
	email, err := getOptionalText(a.reader, "New email (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	fullName, err := getOptionalText(a.reader, "New full name (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	if email == nil && fullName == nil {
		fmt.Println("Nothing to change.")
		return nil
	}

	user, err := a.session.UpdateProfile(ctx, models.UserUpdate{Email: email, FullName: fullName})
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Printf("Profile updated for %s.\n", user.Email)
	return nil
}
