package form

import (
	"regexp"
	"strconv"
	"strings"
)

// FieldSpec describes one editable field of a resource.
//
// Accept filters keystrokes: a value failing Accept never enters the
// draft (the original screens drop the input instead of erroring).
// Validate runs at submit time and returns a field-scoped message, or
// "" when the value is fine.
type FieldSpec struct {
	Name     string
	Required bool
	Default  string
	Accept   func(string) bool
	Validate func(string) string
}

var (
	digitsRE     = regexp.MustCompile(`^[0-9]*$`)
	alnumSpaceRE = regexp.MustCompile(`^[a-zA-Z0-9 ]*$`)
	phoneRE      = regexp.MustCompile(`^[0-9]{10}$`)
	correoRE     = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// AcceptDigits admits only digit characters up to max of them.
func AcceptDigits(max int) func(string) bool {
	return func(v string) bool { return len(v) <= max && digitsRE.MatchString(v) }
}

// AcceptAlnumSpace admits letters, digits and spaces up to max runes.
func AcceptAlnumSpace(max int) func(string) bool {
	return func(v string) bool { return len(v) <= max && alnumSpaceRE.MatchString(v) }
}

// AcceptMaxLen caps length without restricting the alphabet.
func AcceptMaxLen(max int) func(string) bool {
	return func(v string) bool { return len(v) <= max }
}

// ValidateTelefono requires exactly 10 digits when a value is present.
func ValidateTelefono(v string) string {
	if v == "" {
		return ""
	}
	if !phoneRE.MatchString(v) {
		return "el teléfono debe tener exactamente 10 dígitos"
	}
	return ""
}

func ValidateCorreo(v string) string {
	if v == "" {
		return ""
	}
	if !correoRE.MatchString(v) {
		return "correo inválido"
	}
	return ""
}

// ValidateLatitud accepts decimal degrees in [-90, 90].
func ValidateLatitud(v string) string {
	return validateCoord(v, 90, "latitud fuera de rango")
}

// ValidateLongitud accepts decimal degrees in [-180, 180].
func ValidateLongitud(v string) string {
	return validateCoord(v, 180, "longitud fuera de rango")
}

func validateCoord(v string, bound float64, msg string) string {
	if v == "" {
		return ""
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f < -bound || f > bound {
		return msg
	}
	return ""
}

// ValidatePrecio accepts non-negative decimals.
func ValidatePrecio(v string) string {
	if v == "" {
		return ""
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f < 0 {
		return "el precio debe ser un decimal no negativo"
	}
	return ""
}
