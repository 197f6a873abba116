package handler

import (
	"fmt"
	"io"

	"github.com/dtroode/eventhub-auth/internal/model"
	"github.com/dtroode/eventhub-auth/internal/selector"
)

func renderProfile(out io.Writer, st model.AppState) error {
	p := selector.Profile(st)
	if p == nil {
		_, err := fmt.Fprintln(out, "Aucun profil chargé")
		return err
	}

	_, err := fmt.Fprintf(out, "Profil %s\n  username: %s\n  email: %s\n", p.ID, p.Username, p.Email)
	return err
}

func renderState(out io.Writer, st model.AppState) error {
	user := "-"
	if u := selector.CurrentUser(st); u != nil {
		user = fmt.Sprintf("%s <%s>", u.Username, u.Email)
	}

	_, err := fmt.Fprintf(out,
		"auth:\n  user: %s\n  authenticated: %t\n  pending: %t\n  error: %s\n  known users: %d\n",
		user,
		selector.IsAuthenticated(st),
		selector.AuthPending(st),
		orDash(selector.AuthError(st)),
		len(st.Auth.KnownUsers),
	)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out,
		"profile:\n  username: %s\n  email: %s\n  pending: %t\n  editing: %t\n  error: %s\n",
		orDash(selector.ProfileUsername(st)),
		orDash(selector.ProfileEmail(st)),
		selector.ProfilePending(st),
		selector.IsEditing(st),
		orDash(selector.ProfileError(st)),
	)
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
