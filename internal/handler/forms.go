package handler

import (
	"net/mail"
	"strconv"
	"strings"
	"unicode"

	"go-dealership/internal/model"
)

// Server-side form validation. The templates carry matching client-side
// constraints, but nothing trusts them.

const passwordMinLength = 12

func validEmail(email string) bool {
	_, err := mail.ParseAddress(strings.TrimSpace(email))
	return err == nil
}

// validatePassword enforces the strength rule: length, upper, lower,
// digit, symbol.
func validatePassword(password string) bool {
	if len(password) < passwordMinLength {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

type registrationForm struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func (f registrationForm) validate() []string {
	var errs []string
	if strings.TrimSpace(f.FirstName) == "" {
		errs = append(errs, "Please provide a first name.")
	}
	if len(strings.TrimSpace(f.LastName)) < 2 {
		errs = append(errs, "Please provide a last name.")
	}
	if !validEmail(f.Email) {
		errs = append(errs, "A valid email is required.")
	}
	if !validatePassword(f.Password) {
		errs = append(errs, "Password does not meet requirements.")
	}
	return errs
}

type profileForm struct {
	FirstName string
	LastName  string
	Email     string
}

func (f profileForm) validate() []string {
	var errs []string
	if len(strings.TrimSpace(f.FirstName)) < 2 {
		errs = append(errs, "First name must be at least 2 characters long.")
	}
	if len(strings.TrimSpace(f.LastName)) < 2 {
		errs = append(errs, "Last name must be at least 2 characters long.")
	}
	if !validEmail(f.Email) {
		errs = append(errs, "A valid email address is required.")
	}
	return errs
}

// vehicleForm keeps the raw submitted strings so invalid submissions can
// re-render sticky, alongside the parsed vehicle when everything is valid.
type vehicleForm struct {
	ID               string
	Make             string
	Model            string
	Year             string
	Description      string
	Image            string
	Price            string
	Miles            string
	Color            string
	ClassificationID string
}

func vehicleFormFromRequest(values func(string) string) vehicleForm {
	return vehicleForm{
		ID:               strings.TrimSpace(values("inv_id")),
		Make:             strings.TrimSpace(values("inv_make")),
		Model:            strings.TrimSpace(values("inv_model")),
		Year:             strings.TrimSpace(values("inv_year")),
		Description:      strings.TrimSpace(values("inv_description")),
		Image:            strings.TrimSpace(values("inv_image")),
		Price:            strings.TrimSpace(values("inv_price")),
		Miles:            strings.TrimSpace(values("inv_miles")),
		Color:            strings.TrimSpace(values("inv_color")),
		ClassificationID: strings.TrimSpace(values("classification_id")),
	}
}

func vehicleFormFor(v model.Vehicle) vehicleForm {
	return vehicleForm{
		ID:               strconv.FormatInt(v.ID, 10),
		Make:             v.Make,
		Model:            v.Model,
		Year:             strconv.Itoa(v.Year),
		Description:      v.Description,
		Image:            v.Image,
		Price:            strconv.FormatFloat(v.Price, 'f', 2, 64),
		Miles:            strconv.FormatInt(v.Miles, 10),
		Color:            v.Color,
		ClassificationID: strconv.FormatInt(v.ClassificationID, 10),
	}
}

// parse validates the form and builds the vehicle. The returned errors are
// user-facing; the vehicle is only meaningful when they are empty.
func (f vehicleForm) parse() (model.Vehicle, []string) {
	var (
		v    model.Vehicle
		errs []string
	)

	if len(f.Make) < 3 {
		errs = append(errs, "Make must be at least 3 characters long.")
	}
	if len(f.Model) < 3 {
		errs = append(errs, "Model must be at least 3 characters long.")
	}
	if f.Description == "" {
		errs = append(errs, "A description is required.")
	}
	if f.Color == "" {
		errs = append(errs, "A color is required.")
	}

	year, err := strconv.Atoi(f.Year)
	if err != nil || year < 1900 || year > 2100 {
		errs = append(errs, "Year must be a four-digit year.")
	}

	price, err := strconv.ParseFloat(f.Price, 64)
	if err != nil || price < 0 {
		errs = append(errs, "Price must be a non-negative number.")
	}

	miles, err := strconv.ParseInt(f.Miles, 10, 64)
	if err != nil || miles < 0 {
		errs = append(errs, "Miles must be a non-negative whole number.")
	}

	classificationID, err := strconv.ParseInt(f.ClassificationID, 10, 64)
	if err != nil || classificationID <= 0 {
		errs = append(errs, "Please choose a classification.")
	}

	if f.Image != "" && !strings.HasPrefix(f.Image, "/images/") {
		errs = append(errs, "Image path must start with /images/.")
	}

	if len(errs) > 0 {
		return model.Vehicle{}, errs
	}

	v = model.Vehicle{
		Make:             f.Make,
		Model:            f.Model,
		Year:             year,
		Description:      f.Description,
		Image:            f.Image,
		Price:            price,
		Miles:            miles,
		Color:            f.Color,
		ClassificationID: classificationID,
	}

	if f.ID != "" {
		id, err := strconv.ParseInt(f.ID, 10, 64)
		if err != nil || id <= 0 {
			return model.Vehicle{}, []string{"Invalid vehicle id."}
		}
		v.ID = id
	}

	return v, nil
}
