package registrations

import (
	"aparecida-web/app/catalog"
	"aparecida-web/app/dates"
	"aparecida-web/app/models"
	"aparecida-web/app/pdf"
)

// Detail is the admin detail panel of one registration.
type Detail struct {
	ID     string
	Title  string
	Fields []pdf.Field
	Term   string
}

// DetailFields lists the fields shown for reg. Which fields appear depends
// on the form type.
func DetailFields(reg *models.Registration) []pdf.Field {
	ft := reg.FormType
	baptism := ft == models.FormBaptism
	catechism := ft == models.FormCatechism
	confirmation := ft.IsConfirmation()

	var fields []pdf.Field
	add := func(label, value string) {
		fields = append(fields, pdf.Field{Label: label, Value: value})
	}

	add("Nome", catalog.Text(reg.Name))
	if catechism || baptism {
		add("Telefone do Responsável", catalog.Text(reg.Phone))
	} else {
		add("Telefone", catalog.Text(reg.Phone))
	}
	add("Data de Nascimento", dates.FormatOr(reg.Birthdate, dates.NotInformed))
	if !baptism {
		add("Endereço", catalog.Text(reg.Address))
	}
	add("Nome do Pai", catalog.Text(reg.FatherName))
	add("Nome da Mãe", catalog.Text(reg.MotherName))
	if !baptism {
		add("Comunidade", catalog.Text(reg.Community))
	}
	if confirmation {
		add("Escolaridade", catalog.Schooling.Label(reg.Schooling))
		add("Participa de algum grupo?", catalog.Text(reg.GroupParticipation))
	}
	if catechism {
		add("Série Escolar", catalog.Text(reg.Schooling))
	}
	if !baptism {
		add("É Batizado?", catalog.YesNo.StrictLabel(reg.IsBaptized))
	}
	if confirmation {
		add("Fez a Primeira Eucaristia?", catalog.YesNo.StrictLabel(reg.FirstEucharist))
	}
	if !baptism {
		add("Possui alguma necessidade especial?", catalog.YesNo.StrictLabel(reg.SpecialNeeds))
		if reg.SpecialNeeds == models.Yes {
			add("Qual?", catalog.Text(reg.SpecialNeedsDetails))
		}
	}
	if confirmation {
		add("Estado Civil", catalog.MaritalStatus.Label(reg.MaritalStatus))
		add("Horário", catalog.SlotsFor(ft).Label(reg.AvailableTime))
	}
	if catechism {
		add("Horário", catalog.CatechismSlots.Label(reg.AvailableDay))
	}
	if baptism {
		add("Nome da Madrinha", catalog.Text(reg.GodmotherName))
		add("Nome do Padrinho", catalog.Text(reg.GodfatherName))
		add("Local do Batismo", catalog.BaptismLocations.Label(reg.AvailableLocate))
		add("Data do Batismo", dates.FormatOr(reg.BaptismDate, dates.NotInformed))
		add("Data da Reunião", dates.FormatOr(reg.MeetingDate, dates.NotInformed))
		add("Observações", catalog.Text(reg.Observations))
	}
	if confirmation {
		add("Quem é Jesus para você?", catalog.Text(reg.JesusAnswer))
	}
	return fields
}

// NewDetail builds the detail panel, including the commitment term for the
// form types that carry one.
func NewDetail(reg *models.Registration) *Detail {
	d := &Detail{
		ID:     reg.ID,
		Title:  catalog.FormTypes.Label(string(reg.FormType)) + " - " + dates.FormatOr(reg.CreatedAt, dates.NotInformed),
		Fields: DetailFields(reg),
	}
	if sheet, err := pdf.ForRegistration(reg); err == nil {
		d.Term = sheet.Term
	}
	return d
}
