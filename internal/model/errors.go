package model

import (
	"errors"
	"strings"
)

// ErrorCode classifies workflow failures.
type ErrorCode string

const (
	CodeMissingFields      ErrorCode = "MissingFields"
	CodeInvalidEmail       ErrorCode = "InvalidEmail"
	CodeWeakPassword       ErrorCode = "WeakPassword"
	CodeDuplicateEmail     ErrorCode = "DuplicateEmail"
	CodeInvalidCredentials ErrorCode = "InvalidCredentials"
	CodeUsernameTooShort   ErrorCode = "UsernameTooShort"
	CodeNoProfile          ErrorCode = "NoProfile"
	CodeCanceled           ErrorCode = "Canceled"
)

// WorkflowError is a failure a workflow turns into a user-visible message.
// Two workflow errors match with errors.Is when their codes are equal.
type WorkflowError struct {
	Code    ErrorCode
	Message string
}

func (e *WorkflowError) Error() string {
	return e.Message
}

func (e *WorkflowError) Is(target error) bool {
	t, ok := target.(*WorkflowError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinel workflow errors. ErrInvalidCredentials deliberately does not say
// whether the account exists.
var (
	ErrMissingFields      = &WorkflowError{Code: CodeMissingFields, Message: "Tous les champs sont obligatoires"}
	ErrMissingCredentials = &WorkflowError{Code: CodeMissingFields, Message: "Tous les champs sont requis"}
	ErrInvalidEmail       = &WorkflowError{Code: CodeInvalidEmail, Message: "Email invalide"}
	ErrWeakPassword       = &WorkflowError{Code: CodeWeakPassword, Message: "Mot de passe trop faible"}
	ErrDuplicateEmail     = &WorkflowError{Code: CodeDuplicateEmail, Message: "Cet email est déjà utilisé"}
	ErrInvalidCredentials = &WorkflowError{Code: CodeInvalidCredentials, Message: "Email ou mot de passe incorrect"}
	ErrUsernameTooShort   = &WorkflowError{Code: CodeUsernameTooShort, Message: "Le nom d'utilisateur doit contenir au moins 3 caractères"}
	ErrNoProfile          = &WorkflowError{Code: CodeNoProfile, Message: "Aucun profil à mettre à jour"}
	ErrCanceled           = &WorkflowError{Code: CodeCanceled, Message: "Opération annulée"}
)

// NewWeakPasswordError lists every violated password rule.
func NewWeakPasswordError(violations []string) *WorkflowError {
	return &WorkflowError{
		Code:    CodeWeakPassword,
		Message: strings.Join(violations, ", "),
	}
}

// UnknownErrorMessage is shown for failures that are not workflow errors.
const UnknownErrorMessage = "Erreur inconnue"

// ErrorMessage returns the user-visible text for err.
func ErrorMessage(err error) string {
	var we *WorkflowError
	if errors.As(err, &we) {
		return we.Message
	}
	return UnknownErrorMessage
}

// Seeding errors.
var (
	ErrDuplicateID = errors.New("duplicate user id")
	ErrEmptyID     = errors.New("empty user id")
)
