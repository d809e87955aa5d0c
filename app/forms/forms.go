// Package forms validates public form submissions before they are stored.
// The rules live in the validate tags of the input models; this package
// registers the parish-specific tags and turns failures into Portuguese
// field messages.
package forms

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"aparecida-web/app/catalog"
	"aparecida-web/app/dates"
	"aparecida-web/app/models"

	"github.com/go-playground/validator/v10"
)

// Errors maps a field name to its message.
type Errors map[string]string

// Error implements error with a stable, sorted message.
func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e[k]
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

func (e Errors) add(field, msg string) {
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

func (e Errors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

const (
	msgRequired    = "Este campo é obrigatório"
	msgName        = "O nome é obrigatório"
	msgPhone       = "O telefone é obrigatório"
	msgPhoneFormat = "Informe um telefone com DDD"
	msgBirthdate   = "A data de nascimento é obrigatória"
	msgAddress     = "O endereço é obrigatório"
	msgBaptismDate = "A data de batismo é obrigatória"
	msgMeetingDate = "A data da reunião é obrigatória"
	msgDate        = "Data inválida"
	msgEmail       = "E-mail inválido"
	msgOption      = "Opção inválida"
	msgRadio       = "Campo obrigatório"
	msgFormType    = "Tipo de inscrição inválido"
	msgURL         = "Informe um endereço começando com http:// ou https://"
)

// requiredMessages overrides msgRequired for specific fields.
var requiredMessages = map[string]string{
	"name":           msgName,
	"fullName":       msgName,
	"phone":          msgPhone,
	"birthdate":      msgBirthdate,
	"address":        msgAddress,
	"baptismDate":    msgBaptismDate,
	"meetingDate":    msgMeetingDate,
	"isBaptized":     msgRadio,
	"specialNeeds":   msgRadio,
	"firstEucharist": msgRadio,
	"maritalStatus":  msgRadio,
}

// tagMessages maps a failed validate tag to its message.
var tagMessages = map[string]string{
	"phone":     msgPhoneFormat,
	"email":     msgEmail,
	"date":      msgDate,
	"option":    msgOption,
	"slot":      msgOption,
	"schooling": msgOption,
	"oneof":     msgFormType,
	"http_url":  msgURL,
}

// optionTables are the catalog tables reachable through option=<name>.
var optionTables = map[string]*catalog.Table{
	"yesNo":           catalog.YesNo,
	"maritalStatus":   catalog.MaritalStatus,
	"catechismSlot":   catalog.CatechismSlots,
	"baptismLocation": catalog.BaptismLocations,
	"sex":             catalog.Sex,
	"dizimistaState":  catalog.DizimistaMaritalStatus,
}

var nonDigits = regexp.MustCompile(`\D`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	for tag, fn := range map[string]validator.Func{
		"phone":     validPhone,
		"date":      validDate,
		"option":    validOption,
		"slot":      validSlot,
		"schooling": validSchooling,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return v
}

// Digits strips everything but digits from s.
func Digits(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

func validPhone(fl validator.FieldLevel) bool {
	n := len(Digits(fl.Field().String()))
	return n >= 10 && n <= 11
}

func validDate(fl validator.FieldLevel) bool {
	_, ok := dates.Normalize(fl.Field().String())
	return ok
}

func validOption(fl validator.FieldLevel) bool {
	table, ok := optionTables[fl.Param()]
	return ok && table.Has(fl.Field().String())
}

func formTypeOf(fl validator.FieldLevel) models.FormType {
	field, _, _, ok := fl.GetStructFieldOKAdvanced2(fl.Parent(), "FormType")
	if !ok {
		return ""
	}
	return models.FormType(field.String())
}

// validSlot checks availableTime against the slots offered to the form type.
func validSlot(fl validator.FieldLevel) bool {
	return catalog.SlotsFor(formTypeOf(fl)).Has(fl.Field().String())
}

// validSchooling requires a schooling code on confirmation forms. Catechism
// takes the school grade as free text.
func validSchooling(fl validator.FieldLevel) bool {
	if !formTypeOf(fl).IsConfirmation() {
		return true
	}
	return catalog.Schooling.Has(fl.Field().String())
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_unless":
		if msg, ok := requiredMessages[fe.Field()]; ok {
			return msg
		}
		return msgRequired
	}
	if msg, ok := tagMessages[fe.Tag()]; ok {
		return msg
	}
	return msgRequired
}

// toErrors converts a validator failure into Errors keyed by json name.
func toErrors(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	e := Errors{}
	for _, fe := range verrs {
		e.add(fe.Field(), message(fe))
	}
	return e.orNil()
}

// Normalize trims every free-text field of the input in place.
func Normalize(in *models.RegistrationInput) {
	for _, f := range []*string{
		&in.Name, &in.Phone, &in.Email, &in.Birthdate, &in.Birthplace, &in.Address,
		&in.FatherName, &in.MotherName, &in.Community, &in.Schooling, &in.IsBaptized,
		&in.SpecialNeeds, &in.SpecialNeedsDetails, &in.AvailableDay, &in.TermName,
		&in.GroupParticipation, &in.FirstEucharist, &in.MaritalStatus, &in.AvailableTime,
		&in.JesusAnswer, &in.GodfatherName, &in.GodmotherName, &in.AvailableLocate,
		&in.BaptismDate, &in.MeetingDate, &in.Observations,
	} {
		*f = strings.TrimSpace(*f)
	}
}

// ValidateRegistration applies the rules of the form matching in.FormType.
// An unknown form type is reported alone.
func ValidateRegistration(in models.RegistrationInput) error {
	Normalize(&in)
	if err := validate.StructPartial(in, "FormType"); err != nil {
		return Errors{"formType": msgFormType}
	}
	return toErrors(validate.Struct(in))
}

// NormalizeDizimista trims every field of the input in place.
func NormalizeDizimista(in *models.DizimistaInput) {
	for _, f := range []*string{
		&in.FullName, &in.Birthdate, &in.AvailableSex, &in.AvailableState,
		&in.Phone, &in.Address, &in.Community,
	} {
		*f = strings.TrimSpace(*f)
	}
}

// ValidateDizimista applies the tithe form rules.
func ValidateDizimista(in models.DizimistaInput) error {
	NormalizeDizimista(&in)
	return toErrors(validate.Struct(in))
}

// NormalizeSettings trims the editable site settings in place.
func NormalizeSettings(s *models.SiteSettings) {
	for _, f := range []*string{
		&s.ChurchName, &s.Address, &s.Phone, &s.Email, &s.PixKey,
		&s.FacebookURL, &s.InstagramURL, &s.YoutubeURL, &s.HeroTitle, &s.HeroSubtitle,
	} {
		*f = strings.TrimSpace(*f)
	}
}

// ValidateSettings checks the admin settings form.
func ValidateSettings(s models.SiteSettings) error {
	NormalizeSettings(&s)
	return toErrors(validate.Struct(s))
}
