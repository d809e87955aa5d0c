package models

// FormType discriminates which sacrament a registration pertains to.
type FormType string

const (
	FormBaptism           FormType = "batismo"
	FormCatechism         FormType = "catecismo"
	FormConfirmationYouth FormType = "crismaJovem"
	FormConfirmationAdult FormType = "crismaAdulto"
)

// FormTypes lists the supported registration types in display order.
var FormTypes = []FormType{FormBaptism, FormCatechism, FormConfirmationYouth, FormConfirmationAdult}

// Valid reports whether f is a known form type.
func (f FormType) Valid() bool {
	for _, known := range FormTypes {
		if f == known {
			return true
		}
	}
	return false
}

// IsConfirmation is true for both youth and adult confirmation forms.
func (f FormType) IsConfirmation() bool {
	return f == FormConfirmationYouth || f == FormConfirmationAdult
}

// Role defines what an authenticated account may do.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// YesNo answers as stored by the forms.
const (
	Yes = "sim"
	No  = "nao"
)
