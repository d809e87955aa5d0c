package forms

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aparecida-web/app/models"
)

func validBaptism() models.RegistrationInput {
	return models.RegistrationInput{
		FormType:        models.FormBaptism,
		Name:            "João da Silva",
		Phone:           "(11) 98765-4321",
		Birthdate:       "2024-01-10",
		Birthplace:      "São Paulo",
		FatherName:      "José",
		MotherName:      "Maria",
		GodfatherName:   "Pedro",
		GodmotherName:   "Ana",
		AvailableLocate: "matriz",
		BaptismDate:     "2024-06-01",
		MeetingDate:     "2024-05-20",
	}
}

func validConfirmation(ft models.FormType) models.RegistrationInput {
	return models.RegistrationInput{
		FormType:       ft,
		Name:           "Carla",
		Phone:          "1198765432",
		Birthdate:      "2008-02-03",
		Birthplace:     "Santos",
		Address:        "Rua A, 1",
		FatherName:     "Paulo",
		MotherName:     "Rita",
		Community:      "Matriz",
		Schooling:      "medio_incompleto",
		IsBaptized:     "sim",
		FirstEucharist: "sim",
		MaritalStatus:  "solteiro",
		SpecialNeeds:   "nao",
		AvailableTime:  "sab_9h30",
	}
}

func fieldErrors(t *testing.T, err error) Errors {
	t.Helper()
	require.Error(t, err)
	var fe Errors
	require.True(t, errors.As(err, &fe))
	return fe
}

func TestValidateRegistration_ValidForms(t *testing.T) {
	require.NoError(t, ValidateRegistration(validBaptism()))
	require.NoError(t, ValidateRegistration(validConfirmation(models.FormConfirmationYouth)))

	adult := validConfirmation(models.FormConfirmationAdult)
	adult.AvailableTime = "sexta_19h30"
	require.NoError(t, ValidateRegistration(adult))

	require.NoError(t, ValidateRegistration(models.RegistrationInput{
		FormType:     models.FormCatechism,
		Name:         "Lucas",
		Phone:        "11 3333-4444",
		Birthdate:    "2015-09-09",
		FatherName:   "A",
		MotherName:   "B",
		Address:      "Rua B",
		Community:    "São Sebastião",
		Schooling:    "3º ano",
		IsBaptized:   "sim",
		SpecialNeeds: "nao",
		AvailableDay: "cap_8h00",
	}))
}

func TestValidateRegistration_RequiredFields(t *testing.T) {
	in := validBaptism()
	in.Name = " "
	in.GodmotherName = ""
	in.MeetingDate = ""

	fe := fieldErrors(t, ValidateRegistration(in))
	assert.Equal(t, msgName, fe["name"])
	assert.Equal(t, msgRequired, fe["godmotherName"])
	assert.Equal(t, msgMeetingDate, fe["meetingDate"])
	assert.Len(t, fe, 3)
}

func TestValidateRegistration_Patterns(t *testing.T) {
	in := validConfirmation(models.FormConfirmationYouth)
	in.Phone = "123"
	in.Email = "not-an-email"
	in.Birthdate = "abc"
	in.MaritalStatus = "viuvo"
	in.AvailableTime = "sexta_19h30"

	fe := fieldErrors(t, ValidateRegistration(in))
	assert.Equal(t, msgPhoneFormat, fe["phone"])
	assert.Equal(t, msgEmail, fe["email"])
	assert.Equal(t, msgDate, fe["birthdate"])
	assert.Equal(t, msgOption, fe["maritalStatus"])
	assert.Equal(t, msgOption, fe["availableTime"], "adult slot is not offered to youth")
}

func TestValidateRegistration_RulesFollowFormType(t *testing.T) {
	adult := validConfirmation(models.FormConfirmationAdult)
	adult.AvailableTime = "sexta_19h30"
	adult.MaritalStatus = ""
	adult.FirstEucharist = ""
	adult.Schooling = "3º ano"
	fe := fieldErrors(t, ValidateRegistration(adult))
	assert.Equal(t, Errors{
		"maritalStatus":  msgRadio,
		"firstEucharist": msgRadio,
		"schooling":      msgOption,
	}, fe)

	catechism := models.RegistrationInput{
		FormType:   models.FormCatechism,
		Name:       "Lucas",
		Phone:      "1133334444",
		Birthdate:  "09/09/2015",
		FatherName: "A",
		MotherName: "B",
	}
	fe = fieldErrors(t, ValidateRegistration(catechism))
	assert.Equal(t, msgAddress, fe["address"])
	assert.Equal(t, msgRequired, fe["community"])
	assert.Equal(t, msgRequired, fe["schooling"])
	assert.Equal(t, msgRadio, fe["isBaptized"])
	assert.Equal(t, msgRadio, fe["specialNeeds"])
	assert.NotContains(t, fe, "birthplace")
	assert.NotContains(t, fe, "maritalStatus")

	baptism := validBaptism()
	baptism.AvailableLocate = "catedral"
	baptism.BaptismDate = "31/02/2024"
	fe = fieldErrors(t, ValidateRegistration(baptism))
	assert.Equal(t, Errors{"availableLocate": msgOption, "baptismDate": msgDate}, fe)
}

func TestValidateRegistration_UnknownFormType(t *testing.T) {
	fe := fieldErrors(t, ValidateRegistration(models.RegistrationInput{FormType: "casamento"}))
	assert.Equal(t, Errors{"formType": msgFormType}, fe)
}

func TestValidateDizimista(t *testing.T) {
	in := models.DizimistaInput{
		FullName:       "Antônio",
		Birthdate:      "1970-04-04",
		AvailableSex:   "masculino",
		AvailableState: "casado",
		Phone:          "(11) 91234-5678",
		Address:        "Rua C",
		Community:      "Matriz",
	}
	require.NoError(t, ValidateDizimista(in))

	in.FullName = ""
	in.AvailableState = "noivo"
	fe := fieldErrors(t, ValidateDizimista(in))
	assert.Equal(t, msgName, fe["fullName"])
	assert.Equal(t, msgOption, fe["availableState"])
}

func TestNormalize(t *testing.T) {
	in := models.RegistrationInput{Name: "  Ana  ", Phone: " 11 "}
	Normalize(&in)
	assert.Equal(t, "Ana", in.Name)
	assert.Equal(t, "11", in.Phone)
}

func TestErrorsMessageIsSorted(t *testing.T) {
	e := Errors{"phone": "b", "name": "a"}
	assert.Equal(t, "invalid form: name: a; phone: b", e.Error())
}

func TestValidateSettings(t *testing.T) {
	s := models.DefaultSiteSettings()
	s.InstagramURL = "  https://instagram.com/paroquia "
	NormalizeSettings(&s)
	assert.Equal(t, "https://instagram.com/paroquia", s.InstagramURL)
	require.NoError(t, ValidateSettings(s))

	s.ChurchName = ""
	s.Email = "secretaria"
	s.FacebookURL = "facebook.com/paroquia"
	s.YoutubeURL = "ftp://youtube.com/paroquia"
	fe := fieldErrors(t, ValidateSettings(s))
	assert.Equal(t, msgRequired, fe["churchName"])
	assert.Equal(t, msgEmail, fe["email"])
	assert.Equal(t, msgURL, fe["facebookUrl"])
	assert.Equal(t, msgURL, fe["youtubeUrl"])
	assert.NotContains(t, fe, "instagramUrl")
}
