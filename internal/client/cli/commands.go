package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	confirm       = Confirm
)

func (a *App) doLogin(ctx context.Context) int {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fail(a.errOut, err.Error())
		return 1
	}
	password, err := getPassword(a.out)
	if err != nil {
		fail(a.errOut, err.Error())
		return 1
	}

	user, err := a.client.Login(ctx, email, password)
	if err != nil {
		fail(a.errOut, err.Error())
		return 1
	}
	ok(a.out, "signed in as "+user.Name)
	return 0
}

func (a *App) doSignup(ctx context.Context) int {
	name, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		fail(a.errOut, err.Error())
		return 1
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fail(a.errOut, err.Error())
		return 1
	}
	password, err := getPassword(a.out)
	if err != nil {
		fail(a.errOut, err.Error())
		return 1
	}

	user, err := a.client.Signup(ctx, name, email, password)
	if err != nil {
		fail(a.errOut, err.Error())
		return 1
	}
	ok(a.out, "account created for "+user.Email)
	return 0
}

func (a *App) doLogout(ctx context.Context) int {
	if err := a.client.Logout(ctx); err != nil {
		fail(a.errOut, err.Error())
		return 1
	}
	ok(a.out, "signed out")
	return 0
}

func (a *App) doWhoAmI(ctx context.Context) int {
	user, err := a.client.CurrentUser(ctx)
	if err != nil || user == nil {
		fail(a.errOut, "not signed in")
		return 1
	}
	fmt.Fprintf(a.out, "%s <%s>\n", user.Name, user.Email)
	return 0
}

func (a *App) doList(ctx context.Context) int {
	items, err := a.client.Items(ctx)
	if err != nil {
		fail(a.errOut, err.Error())
		return 1
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "no items")
		return 0
	}
	for _, item := range items {
		fmt.Fprintf(a.out, "%s  %s  %s  %s\n",
			item.ID, item.CreatedAt.Format("2006-01-02"), item.Name, item.Description)
	}
	return 0
}
