package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email and password and creates an account. On
// success the returned token becomes the current session.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	s, err := a.api.Register(ctx, name, email, password)
	if err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintln(a.out, s.Message)
	return a.startSession(s)
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	s, err := a.api.Login(ctx, email, password)
	if err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintln(a.out, s.Message)
	return a.startSession(s)
}

// Dashboard shows the current user. A rejected token ends the local session.
func (a *App) Dashboard(ctx context.Context) error {
	d, err := a.api.Dashboard(ctx, a.token)
	if err != nil {
		a.report(err)
		if errors.Is(err, client.ErrUnauthorized) {
			a.endSession()
		}
		return err
	}

	a.user = d.User.Email
	fmt.Fprintln(a.out, d.Message)
	fmt.Fprintf(a.out, "  id:    %s\n  name:  %s\n  email: %s\n", d.User.ID, d.User.Name, d.User.Email)
	return nil
}

// Logout invalidates the token on the server and forgets it locally. The
// local session is kept only when the server could not be reached.
func (a *App) Logout(ctx context.Context) error {
	msg, err := a.api.Logout(ctx, a.token)
	if err != nil {
		a.report(err)
		if !errors.Is(err, client.ErrUnavailable) {
			a.endSession()
		}
		return err
	}

	fmt.Fprintln(a.out, msg)
	a.endSession()
	return nil
}

func (a *App) startSession(s *client.Session) error {
	a.token = s.Token
	a.user = s.User.Email
	if err := a.session.Save(s.Token); err != nil {
		fmt.Fprintf(a.out, "warning: session not saved: %v\n", err)
		return err
	}
	return nil
}

func (a *App) endSession() {
	a.token = ""
	a.user = ""
	if err := a.session.Clear(); err != nil {
		fmt.Fprintf(a.out, "warning: session file not removed: %v\n", err)
	}
}

// report prints err in a user-friendly form.
func (a *App) report(err error) {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if apiErr.Message != "" {
		fmt.Fprintln(a.out, apiErr.Message)
	}
	fields := make([]string, 0, len(apiErr.Fields))
	for f := range apiErr.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		for _, m := range apiErr.Fields[f] {
			fmt.Fprintf(a.out, "  %s: %s\n", f, m)
		}
	}
}
