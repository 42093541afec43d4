package session

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Form field names accepted by SetField.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// AuthForm is the state of the auth screen: exactly one of LoginState or SignupState.
type AuthForm interface {
	Mode() string
	authForm()
}

// LoginState holds the login form fields.
type LoginState struct {
	Email    string
	Password string
}

// SignupState holds the signup form fields.
type SignupState struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

func (LoginState) Mode() string  { return "login" }
func (SignupState) Mode() string { return "signup" }

func (LoginState) authForm()  {}
func (SignupState) authForm() {}

// Validate checks that every field is filled in.
func (s LoginState) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Email, validation.Required),
		validation.Field(&s.Password, validation.Required),
	)
}

// Validate checks that every field is filled in.
func (s SignupState) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Username, validation.Required),
		validation.Field(&s.Email, validation.Required),
		validation.Field(&s.Password, validation.Required),
		validation.Field(&s.ConfirmPassword, validation.Required),
	)
}

// Action is an input to Reduce.
type Action interface {
	action()
}

// SetField sets one field of the active form. Unknown fields are ignored.
type SetField struct {
	Field string
	Value string
}

// ToggleMode switches between an empty login form and an empty signup form.
type ToggleMode struct{}

// Reset clears the active form and keeps its mode.
type Reset struct{}

func (SetField) action()   {}
func (ToggleMode) action() {}
func (Reset) action()      {}

// Reduce returns the form that results from applying action to state.
// A nil state is treated as an empty login form.
func Reduce(state AuthForm, action Action) AuthForm {
	if state == nil {
		state = LoginState{}
	}

	switch a := action.(type) {
	case ToggleMode:
		if _, ok := state.(LoginState); ok {
			return SignupState{}
		}
		return LoginState{}

	case Reset:
		if _, ok := state.(SignupState); ok {
			return SignupState{}
		}
		return LoginState{}

	case SetField:
		switch s := state.(type) {
		case LoginState:
			switch a.Field {
			case FieldEmail:
				s.Email = a.Value
			case FieldPassword:
				s.Password = a.Value
			}
			return s
		case SignupState:
			switch a.Field {
			case FieldUsername:
				s.Username = a.Value
			case FieldEmail:
				s.Email = a.Value
			case FieldPassword:
				s.Password = a.Value
			case FieldConfirmPassword:
				s.ConfirmPassword = a.Value
			}
			return s
		}
	}

	return state
}
