// Package handler implements the terminal commands on top of the
// application's dispatch and read surfaces.
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dtroode/eventhub-auth/internal/api/cli/command"
	"github.com/dtroode/eventhub-auth/internal/logger"
	"github.com/dtroode/eventhub-auth/internal/model"
	"github.com/dtroode/eventhub-auth/internal/selector"
)

var (
	// ErrUsage is returned when a command gets the wrong arguments.
	ErrUsage = errors.New("usage")
	// ErrNotEditing is returned by draft commands outside edit mode.
	ErrNotEditing = errors.New("not in edit mode, run 'edit' first")
	// ErrEmptyDraft is returned when there is nothing to save or apply.
	ErrEmptyDraft = errors.New("no pending changes, use 'set' first")
)

// Application is the dispatch and read surface the commands drive.
type Application interface {
	Register(ctx context.Context, username, email, password string)
	Login(ctx context.Context, email, password string)
	Logout()
	UpdateProfile(ctx context.Context, patch model.ProfilePatch)
	UpdateProfileLocally(patch model.ProfilePatch)
	StartEditing()
	CancelEditing()
	ClearAuthError()
	ClearProfileError()
	State() model.AppState
}

// PasswordReader asks the user for a password without echoing it.
type PasswordReader interface {
	ReadPassword(prompt string) (string, error)
}

// Handler holds the commands and the profile draft being edited.
type Handler struct {
	app       Application
	passwords PasswordReader
	logger    *logger.Logger

	mu    sync.Mutex
	draft model.ProfilePatch
}

// New creates a new Handler.
func New(app Application, passwords PasswordReader, logger *logger.Logger) *Handler {
	return &Handler{
		app:       app,
		passwords: passwords,
		logger:    logger,
	}
}

// Register handles "register <username> <email> [password]".
func (h *Handler) Register(ctx context.Context, out io.Writer, req command.Request) error {
	if len(req.Args) < 2 || len(req.Args) > 3 {
		return fmt.Errorf("%w: register <username> <email> [password]", ErrUsage)
	}

	password, err := h.password(req.Args, 2)
	if err != nil {
		return err
	}

	h.app.Register(ctx, req.Args[0], req.Args[1], password)

	return h.renderAuth(out, "Inscription réussie")
}

// Login handles "login <email> [password]".
func (h *Handler) Login(ctx context.Context, out io.Writer, req command.Request) error {
	if len(req.Args) < 1 || len(req.Args) > 2 {
		return fmt.Errorf("%w: login <email> [password]", ErrUsage)
	}

	password, err := h.password(req.Args, 1)
	if err != nil {
		return err
	}

	h.app.Login(ctx, req.Args[0], password)

	return h.renderAuth(out, "Connexion réussie")
}

// Logout handles "logout".
func (h *Handler) Logout(_ context.Context, out io.Writer, _ command.Request) error {
	h.app.Logout()
	h.resetDraft()

	_, err := fmt.Fprintln(out, "Déconnecté")
	return err
}

// Profile handles "profile".
func (h *Handler) Profile(_ context.Context, out io.Writer, _ command.Request) error {
	return renderProfile(out, h.app.State())
}

// Edit handles "edit".
func (h *Handler) Edit(_ context.Context, out io.Writer, _ command.Request) error {
	if selector.Profile(h.app.State()) == nil {
		_, err := fmt.Fprintln(out, model.ErrNoProfile.Message)
		return err
	}

	h.app.StartEditing()
	h.resetDraft()

	_, err := fmt.Fprintln(out, "Mode édition")
	return err
}

// Cancel handles "cancel". The draft is dropped and rebuilt from the
// profile on the next edit.
func (h *Handler) Cancel(_ context.Context, out io.Writer, _ command.Request) error {
	h.app.CancelEditing()
	h.resetDraft()

	return renderProfile(out, h.app.State())
}

// Set handles "set <username|email> <value>".
func (h *Handler) Set(_ context.Context, out io.Writer, req command.Request) error {
	if len(req.Args) < 2 {
		return fmt.Errorf("%w: set <username|email> <value>", ErrUsage)
	}

	if !selector.IsEditing(h.app.State()) {
		return ErrNotEditing
	}

	value := strings.Join(req.Args[1:], " ")

	h.mu.Lock()
	switch req.Args[0] {
	case "username":
		h.draft.Username = &value
	case "email":
		h.draft.Email = &value
	default:
		h.mu.Unlock()
		return fmt.Errorf("%w: unknown field %q", ErrUsage, req.Args[0])
	}
	h.mu.Unlock()

	_, err := fmt.Fprintf(out, "%s = %s\n", req.Args[0], value)
	return err
}

// Save handles "save": the draft goes through the profile update workflow.
// The draft is kept when the update fails so it can be corrected.
func (h *Handler) Save(ctx context.Context, out io.Writer, _ command.Request) error {
	patch, err := h.takeDraft()
	if err != nil {
		return err
	}

	h.app.UpdateProfile(ctx, patch)

	st := h.app.State()
	if msg := selector.ProfileError(st); msg != "" {
		h.mu.Lock()
		if h.draft.Empty() {
			h.draft = patch
		}
		h.mu.Unlock()

		_, err := fmt.Fprintf(out, "Erreur: %s\n", msg)
		return err
	}

	if _, err := fmt.Fprintln(out, "Profil mis à jour"); err != nil {
		return err
	}
	return renderProfile(out, st)
}

// Apply handles "apply": the draft is merged into the profile at once,
// without validation.
func (h *Handler) Apply(_ context.Context, out io.Writer, _ command.Request) error {
	patch, err := h.takeDraft()
	if err != nil {
		return err
	}

	h.app.UpdateProfileLocally(patch)

	return renderProfile(out, h.app.State())
}

// Clear handles "clear [auth|profile]".
func (h *Handler) Clear(_ context.Context, out io.Writer, req command.Request) error {
	target := ""
	if len(req.Args) > 0 {
		target = req.Args[0]
	}

	switch target {
	case "":
		h.app.ClearAuthError()
		h.app.ClearProfileError()
	case "auth":
		h.app.ClearAuthError()
	case "profile":
		h.app.ClearProfileError()
	default:
		return fmt.Errorf("%w: clear [auth|profile]", ErrUsage)
	}

	_, err := fmt.Fprintln(out, "Erreurs effacées")
	return err
}

// State handles "state".
func (h *Handler) State(_ context.Context, out io.Writer, _ command.Request) error {
	return renderState(out, h.app.State())
}

// Help handles "help".
func (h *Handler) Help(_ context.Context, out io.Writer, _ command.Request) error {
	_, err := io.WriteString(out, helpText)
	return err
}

const helpText = `Commandes:
  register <username> <email> [password]   créer un compte
  login <email> [password]                 se connecter
  logout                                   se déconnecter
  profile                                  afficher le profil
  edit                                     passer en mode édition
  set <username|email> <value>             modifier un champ du brouillon
  save                                     enregistrer le brouillon
  apply                                    appliquer le brouillon localement
  cancel                                   quitter le mode édition
  clear [auth|profile]                     effacer les erreurs
  state                                    afficher l'état complet
  help                                     afficher cette aide
  exit | quit                              quitter
`

func (h *Handler) password(args []string, idx int) (string, error) {
	if len(args) > idx {
		return args[idx], nil
	}

	pw, err := h.passwords.ReadPassword("Mot de passe: ")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return pw, nil
}

func (h *Handler) takeDraft() (model.ProfilePatch, error) {
	if !selector.IsEditing(h.app.State()) {
		return model.ProfilePatch{}, ErrNotEditing
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.draft.Empty() {
		return model.ProfilePatch{}, ErrEmptyDraft
	}

	patch := h.draft
	h.draft = model.ProfilePatch{}
	return patch, nil
}

func (h *Handler) resetDraft() {
	h.mu.Lock()
	h.draft = model.ProfilePatch{}
	h.mu.Unlock()
}

func (h *Handler) renderAuth(out io.Writer, success string) error {
	st := h.app.State()

	if msg := selector.AuthError(st); msg != "" {
		_, err := fmt.Fprintf(out, "Erreur: %s\n", msg)
		return err
	}

	_, err := fmt.Fprintf(out, "%s, bienvenue %s\n", success, selector.Username(st))
	return err
}
