package users

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
)

// Validate checks the self-service registration payload
func (r RegisterInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Login, validation.Required, validation.Length(1, MaxLoginLength), is.Alphanumeric),
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Password, validation.Required, is.Alphanumeric),
		validation.Field(&r.Gender, validation.In(GenderUnspecified, GenderMale, GenderFemale)),
		validation.Field(&r.Birthday, validation.By(notInFuture)),
	)
}

// Validate checks the admin creation payload
func (r CreateInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Login, validation.Required, validation.Length(1, MaxLoginLength), is.Alphanumeric),
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Password, validation.Required, is.Alphanumeric),
		validation.Field(&r.Gender, validation.In(GenderUnspecified, GenderMale, GenderFemale)),
		validation.Field(&r.Birthday, validation.By(notInFuture)),
	)
}

// Validate checks a profile patch. Only present fields are validated, a
// nil field carries no constraint because it changes nothing.
func (r ProfilePatch) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.By(nameIfPresent)),
		validation.Field(&r.Gender, validation.By(genderIfPresent)),
		validation.Field(&r.Birthday, validation.By(notInFuture)),
	)
}

func validateLogin(login string) error {
	return validation.Validate(login,
		validation.Required,
		validation.Length(1, MaxLoginLength),
		is.Alphanumeric,
	)
}

func validatePassword(password string) error {
	return validation.Validate(password,
		validation.Required,
		is.Alphanumeric,
	)
}

func notInFuture(value interface{}) error {
	var t time.Time
	switch v := value.(type) {
	case nil:
		return nil
	case *time.Time:
		if v == nil {
			return nil
		}
		t = *v
	case time.Time:
		t = v
	default:
		return goerrors.New("must be a date", goerrors.CategoryValidation)
	}

	if t.After(time.Now()) {
		return goerrors.New("must not be in the future", goerrors.CategoryValidation)
	}

	return nil
}

func nameIfPresent(value interface{}) error {
	name, ok := value.(*string)
	if !ok || name == nil {
		return nil
	}

	return validation.Validate(*name, validation.Required)
}

func genderIfPresent(value interface{}) error {
	gender, ok := value.(*Gender)
	if !ok || gender == nil {
		return nil
	}

	if *gender < GenderUnspecified || *gender > GenderFemale {
		return goerrors.New("must be a valid gender", goerrors.CategoryValidation)
	}

	return nil
}
