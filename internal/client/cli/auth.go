package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// getSimpleText, getOptionalText and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getOptionalText = GetOptionalText
var getPassword = GetPassword

// Register prompts for an email, password and optional full name and
// creates a new account. Registration deliberately does not log the user
// in; a hint to run 'login' is printed instead.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	fullName, err := getOptionalText(a.reader, "Enter full name (optional)", os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.session.Register(ctx, email, password, fullName)
	if err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	fmt.Printf("Account created for %s. Use 'login' to sign in.\n", user.Email)
	return nil
}

// Login prompts for credentials and authenticates against the backend. On
// success the session holds the token and user until logout or expiry.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, email, password); err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	log.Printf("Login successful")
	return nil
}

// Logout clears the in-memory session and the persisted token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		log.Printf("Logout error: %s", err.Error())
		return err
	}
	fmt.Println("Logged out.")
	return nil
}
