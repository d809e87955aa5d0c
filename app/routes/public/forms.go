package public

import (
	"aparecida-web/app/catalog"
	"aparecida-web/app/forms"
	"aparecida-web/app/models"
)

// registrationForm is the view model of a sacrament form.
type registrationForm struct {
	Type   models.FormType
	Title  string
	Values models.RegistrationInput
	Errors forms.Errors

	Schooling     []catalog.Option
	YesNo         []catalog.Option
	MaritalStatus []catalog.Option
	Slots         []catalog.Option
	Locations     []catalog.Option
}

// newRegistrationForm returns nil for unknown form types.
func newRegistrationForm(ft models.FormType, in models.RegistrationInput, errs forms.Errors) *registrationForm {
	if !ft.Valid() {
		return nil
	}
	if errs == nil {
		errs = forms.Errors{}
	}
	in.FormType = ft
	return &registrationForm{
		Type:          ft,
		Title:         catalog.FormTypes.Label(string(ft)),
		Values:        in,
		Errors:        errs,
		Schooling:     catalog.Schooling.Options(),
		YesNo:         catalog.YesNo.Options(),
		MaritalStatus: catalog.MaritalStatus.Options(),
		Slots:         catalog.SlotsFor(ft).Options(),
		Locations:     catalog.BaptismLocations.Options(),
	}
}

type dizimistaForm struct {
	Values models.DizimistaInput
	Errors forms.Errors
	Sex    []catalog.Option
	States []catalog.Option
}

func newDizimistaForm(in models.DizimistaInput, errs forms.Errors) *dizimistaForm {
	if errs == nil {
		errs = forms.Errors{}
	}
	return &dizimistaForm{
		Values: in,
		Errors: errs,
		Sex:    catalog.Sex.Options(),
		States: catalog.DizimistaMaritalStatus.Options(),
	}
}
