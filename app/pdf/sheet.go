// Package pdf renders registration and donor records as printable A4 sheets.
//
// Exporters first build a Sheet, a plain description of the page content,
// and Render lays it out with fpdf. The same record always yields the same
// bytes.
package pdf

import (
	"errors"
	"strings"

	"aparecida-web/app/catalog"
	"aparecida-web/app/dates"
	"aparecida-web/app/models"
)

const (
	ParishName = "Paróquia Nossa Senhora Aparecida"
	FooterText = "Documento gerado automaticamente pela Paróquia Nossa Senhora Aparecida."
	TermTitle  = "Termo de Compromisso"

	blankName = "______"
)

// ErrUnsupportedForm is returned for registrations whose form type has no
// printable sheet.
var ErrUnsupportedForm = errors.New("tipo de formulário não suportado para geração de PDF")

// Field is one labeled line of a sheet.
type Field struct {
	Label string
	Value string
}

// Sheet is the content of one exported document.
type Sheet struct {
	Kind       string
	Subtitle   string
	Section    string
	Fields     []Field
	Term       string
	Registered string
	CreatedAt  dates.Millis
}

// Value returns the value of the first field labeled label.
func (s Sheet) Value(label string) (string, bool) {
	for _, f := range s.Fields {
		if f.Label == label {
			return f.Value, true
		}
	}
	return "", false
}

type builder struct {
	fields []Field
}

func (b *builder) add(label, value string) {
	b.fields = append(b.fields, Field{Label: label, Value: value})
}

func (b *builder) text(label, value string) {
	b.add(label, catalog.Text(value))
}

func (b *builder) date(label, value string) {
	b.add(label, dates.FormatOr(value, catalog.NotInformed))
}

func orBlank(name string) string {
	if strings.TrimSpace(name) == "" {
		return blankName
	}
	return name
}

func registeredOn(at dates.Millis) string {
	return dates.FormatOr(at, catalog.NotInformed)
}

// ForRegistration picks the exporter for r.FormType.
func ForRegistration(r *models.Registration) (Sheet, error) {
	switch r.FormType {
	case models.FormBaptism:
		return Baptism(r), nil
	case models.FormCatechism:
		return Catechism(r), nil
	case models.FormConfirmationYouth:
		return ConfirmationYouth(r), nil
	case models.FormConfirmationAdult:
		return ConfirmationAdult(r), nil
	}
	return Sheet{}, ErrUnsupportedForm
}

func Baptism(r *models.Registration) Sheet {
	b := &builder{}
	b.text("Nome completo", r.Name)
	b.date("Data de Nascimento", r.Birthdate)
	b.text("Telefone do responsável", r.Phone)
	b.text("Nome do Pai", r.FatherName)
	b.text("Nome da Mãe", r.MotherName)
	b.text("Nome do Padrinho", r.GodfatherName)
	b.text("Nome da Madrinha", r.GodmotherName)
	b.add("Local do Batismo", catalog.BaptismLocations.Label(r.AvailableLocate))
	b.date("Data de Batismo", r.BaptismDate)
	b.date("Data da Reunião", r.MeetingDate)
	b.text("Observações", r.Observations)

	return Sheet{
		Kind:       string(models.FormBaptism),
		Subtitle:   "Ficha de Inscrição - Batismo",
		Section:    "Dados da Criança",
		Fields:     b.fields,
		Registered: registeredOn(r.CreatedAt),
		CreatedAt:  r.CreatedAt,
	}
}

func Catechism(r *models.Registration) Sheet {
	b := &builder{}
	b.text("Nome completo", r.Name)
	b.date("Data de nascimento", r.Birthdate)
	b.text("Telefone do responsável", r.Phone)
	b.text("Nome do Pai", r.FatherName)
	b.text("Nome da Mãe", r.MotherName)
	b.text("Endereço", r.Address)
	b.text("Comunidade", r.Community)
	b.text("Série Escolar", r.Schooling)
	b.add("Possui necessidade especial", catalog.YesNo.Label(r.SpecialNeeds))
	if r.SpecialNeeds == models.Yes {
		b.text("Qual?", r.SpecialNeedsDetails)
	}
	b.add("Horário Disponível", catalog.CatechismSlots.Label(r.AvailableDay))

	signer := r.TermName
	if strings.TrimSpace(signer) == "" {
		signer = r.MotherName
	}

	return Sheet{
		Kind:     string(models.FormCatechism),
		Subtitle: "Ficha de Inscrição - Catequese",
		Section:  "Dados da Criança",
		Fields:   b.fields,
		Term: "Eu, " + orBlank(signer) + ", a observar e motivar a participação do meu filho(a) " +
			"nos ENCONTROS DE FORMAÇÕES DA CATEQUESE, NECESSÁRIOS PARA O MESMO(A) RECEBER O " +
			"SACRAMENTO DA PRIMEIRA EUCARISTIA, e estou consciente que faltando a esses " +
			"COMPROMISSOS, NÃO poderá receber o SACRAMENTO.",
		Registered: registeredOn(r.CreatedAt),
		CreatedAt:  r.CreatedAt,
	}
}

// ConfirmationYouth and ConfirmationAdult share a layout and differ in the
// subtitle and the slot codes they expect.
func ConfirmationYouth(r *models.Registration) Sheet {
	return confirmation(r, "Ficha de Inscrição - Crisma Jovem")
}

func ConfirmationAdult(r *models.Registration) Sheet {
	return confirmation(r, "Ficha de Inscrição - Crisma Adulto")
}

func confirmation(r *models.Registration, subtitle string) Sheet {
	b := &builder{}
	b.text("Nome completo", r.Name)
	b.text("Telefone", r.Phone)
	b.date("Data de Nascimento", r.Birthdate)
	b.text("Naturalidade", r.Birthplace)
	b.text("Endereço", r.Address)
	b.text("Nome do Pai", r.FatherName)
	b.text("Nome da Mãe", r.MotherName)
	b.text("Comunidade", r.Community)
	b.add("Escolaridade", catalog.Schooling.Label(r.Schooling))
	b.add("Participa de algum grupo?", catalog.YesNo.Label(r.GroupParticipation))
	b.add("É Batizado?", catalog.YesNo.Label(r.IsBaptized))
	b.add("Fez a Primeira Eucaristia?", catalog.YesNo.Label(r.FirstEucharist))
	b.add("Necessidade especial", catalog.YesNo.Label(r.SpecialNeeds))
	if r.SpecialNeeds == models.Yes {
		b.text("Qual?", r.SpecialNeedsDetails)
	}
	b.add("Estado Civil", catalog.MaritalStatus.Label(r.MaritalStatus))
	b.add("Horário disponível", catalog.SlotsFor(r.FormType).Label(r.AvailableTime))
	b.text("Quem é Jesus para você?", r.JesusAnswer)

	return Sheet{
		Kind:     string(r.FormType),
		Subtitle: subtitle,
		Section:  "Dados Pessoais",
		Fields:   b.fields,
		Term: "Eu, " + orBlank(r.Name) + ", comprometo-me a participar dos ENCONTROS DE " +
			"FORMAÇÕES NECESSÁRIOS PARA RECEBER O SACRAMENTO DA CRISMA E PARTICIPAR DA MISSA " +
			"DOMINICAL e estou consciente que faltando a esses COMPROMISSOS, NÃO poderei ser crismado(a)!",
		Registered: registeredOn(r.CreatedAt),
		CreatedAt:  r.CreatedAt,
	}
}

func Dizimista(d *models.Dizimista) Sheet {
	b := &builder{}
	b.text("Nome completo", d.FullName)
	b.date("Data de Nascimento", d.Birthdate)
	b.add("Sexo", catalog.Sex.Label(d.AvailableSex))
	b.add("Estado Civil", catalog.DizimistaMaritalStatus.Label(d.AvailableState))
	b.text("Telefone", d.Phone)
	b.text("Endereço", d.Address)
	b.text("Comunidade", d.Community)

	return Sheet{
		Kind:       "dizimista",
		Subtitle:   "Ficha de Dizimista",
		Section:    "Dados do Dizimista",
		Fields:     b.fields,
		Registered: registeredOn(d.CreatedAt),
		CreatedAt:  d.CreatedAt,
	}
}

// Filename builds the download name, e.g. Cadastro_Maria_Silva_2024-05-20.pdf.
// Characters that are unsafe in a file name are replaced.
func Filename(prefix, name, day string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', ':', '*', '?', '<', '>', '|', '\n', '\r', '\t':
			return -1
		case ' ':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		name = "sem_nome"
	}
	return prefix + "_" + name + "_" + day + ".pdf"
}
