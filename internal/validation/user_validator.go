package validation

import (
	"task-management/internal/config"
	"task-management/internal/domain"
)

// UserValidator validates account registration, update and login input.
type UserValidator struct {
	validator *Validator
}

// NewUserValidator creates a new UserValidator with default limits
func NewUserValidator() *UserValidator {
	return &UserValidator{validator: NewValidator()}
}

// NewUserValidatorWithConfig creates a new UserValidator with configured limits
func NewUserValidatorWithConfig(cfg *config.Config) *UserValidator {
	return &UserValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateRegistration checks a registration request against all credential rules
func (uv *UserValidator) ValidateRegistration(reg domain.UserRegistration) error {
	limits := uv.validator.limits()
	ve := NewValidationError()

	if !uv.validator.IsNonEmptyString(reg.Username) {
		ve.AddRequiredError("username")
	} else if !uv.validator.IsValidStringLength(reg.Username, limits.UsernameMinLength, limits.UsernameMaxLength) {
		ve.AddInvalidLengthError("username", reg.Username, limits.UsernameMinLength, limits.UsernameMaxLength)
	}

	if !uv.validator.IsNonEmptyString(reg.Email) {
		ve.AddRequiredError("email")
	} else {
		if len(reg.Email) > limits.EmailMaxLength {
			ve.AddInvalidLengthError("email", reg.Email, 0, limits.EmailMaxLength)
		}
		if !uv.validator.IsValidEmail(reg.Email) {
			ve.AddInvalidFormatError("email", reg.Email, "a valid email address")
		}
	}

	if !uv.validator.IsNonEmptyString(reg.Password) {
		ve.AddRequiredError("password")
	} else if len(reg.Password) < limits.PasswordMinLength {
		ve.AddInvalidLengthError("password", nil, limits.PasswordMinLength, 0)
	}

	if len(reg.FirstName) > limits.NameMaxLength {
		ve.AddInvalidLengthError("firstName", reg.FirstName, 0, limits.NameMaxLength)
	}
	if len(reg.LastName) > limits.NameMaxLength {
		ve.AddInvalidLengthError("lastName", reg.LastName, 0, limits.NameMaxLength)
	}

	return ve.ErrOrNil()
}

// ValidateUpdate checks a partial user update. Nil fields are skipped.
func (uv *UserValidator) ValidateUpdate(update domain.UserUpdate) error {
	limits := uv.validator.limits()
	ve := NewValidationError()

	if update.Email != nil {
		if len(*update.Email) > limits.EmailMaxLength {
			ve.AddInvalidLengthError("email", *update.Email, 0, limits.EmailMaxLength)
		}
		if !uv.validator.IsValidEmail(*update.Email) {
			ve.AddInvalidFormatError("email", *update.Email, "a valid email address")
		}
	}
	if update.FirstName != nil && len(*update.FirstName) > limits.NameMaxLength {
		ve.AddInvalidLengthError("firstName", *update.FirstName, 0, limits.NameMaxLength)
	}
	if update.LastName != nil && len(*update.LastName) > limits.NameMaxLength {
		ve.AddInvalidLengthError("lastName", *update.LastName, 0, limits.NameMaxLength)
	}

	return ve.ErrOrNil()
}

// ValidateLogin checks that both credential fields are present
func (uv *UserValidator) ValidateLogin(username, password string) error {
	ve := NewValidationError()

	if !uv.validator.IsNonEmptyString(username) {
		ve.AddRequiredError("username")
	}
	if password == "" {
		ve.AddRequiredError("password")
	}

	return ve.ErrOrNil()
}

// ValidatePasswordChange checks the new password meets the credential rules
func (uv *UserValidator) ValidatePasswordChange(currentPassword, newPassword string) error {
	limits := uv.validator.limits()
	ve := NewValidationError()

	if currentPassword == "" {
		ve.AddRequiredError("currentPassword")
	}
	if newPassword == "" {
		ve.AddRequiredError("newPassword")
	} else if len(newPassword) < limits.PasswordMinLength {
		ve.AddInvalidLengthError("newPassword", nil, limits.PasswordMinLength, 0)
	}

	return ve.ErrOrNil()
}
