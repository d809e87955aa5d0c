// Package catalog holds the code → label tables used by forms, the admin
// detail view and the PDF exports.
package catalog

import (
	"strings"

	"aparecida-web/app/models"
)

// NotInformed is shown when a coded field is empty.
const NotInformed = "Não informado"

// Option is one selectable code with its label.
type Option struct {
	Value string
	Label string
}

// Table is an ordered code → label mapping.
type Table struct {
	options []Option
	index   map[string]string
}

func newTable(opts ...Option) *Table {
	t := &Table{options: opts, index: make(map[string]string, len(opts))}
	for _, o := range opts {
		t.index[o.Value] = o.Label
	}
	return t
}

// Label returns the label for code. Unknown codes come back verbatim and
// empty codes read NotInformed.
func (t *Table) Label(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return NotInformed
	}
	if label, ok := t.index[code]; ok {
		return label
	}
	return code
}

// StrictLabel returns NotInformed for unknown codes as well.
func (t *Table) StrictLabel(code string) string {
	if label, ok := t.index[strings.TrimSpace(code)]; ok {
		return label
	}
	return NotInformed
}

// Has reports whether code is in the table.
func (t *Table) Has(code string) bool {
	_, ok := t.index[code]
	return ok
}

// Options returns the table in display order.
func (t *Table) Options() []Option {
	out := make([]Option, len(t.options))
	copy(out, t.options)
	return out
}

var (
	Schooling = newTable(
		Option{"fundamental_incompleto", "Ensino Fundamental Incompleto"},
		Option{"fundamental_completo", "Ensino Fundamental Completo"},
		Option{"medio_incompleto", "Ensino Médio Incompleto"},
		Option{"medio_completo", "Ensino Médio Completo"},
		Option{"superior_incompleto", "Ensino Superior Incompleto"},
		Option{"superior_completo", "Ensino Superior Completo"},
		Option{"pos_graduacao", "Pós-graduação"},
		Option{"mestrado", "Mestrado"},
		Option{"doutorado", "Doutorado"},
	)

	MaritalStatus = newTable(
		Option{"casado", "Casado(a)"},
		Option{"moraJunto", "Mora junto"},
		Option{"solteiro", "Solteiro(a)"},
	)

	YouthSlots = newTable(
		Option{"sab_9h30", "Sábado, 9h30 - 11h00"},
		Option{"sab_11h30", "Sábado, 11h30 - 13h00"},
		Option{"sab_15h00", "Sábado, 15h00 - 16h30"},
	)

	AdultSlots = newTable(
		Option{"sexta_19h30", "Sexta-feira, 19h30 - 21h00"},
	)

	// ConfirmationSlots accepts both youth and adult codes.
	ConfirmationSlots = newTable(append(YouthSlots.Options(), AdultSlots.Options()...)...)

	CatechismSlots = newTable(
		Option{"matriz_7h30", "Matriz de Aparecida, 7h30 - 9h00"},
		Option{"matriz_11h30", "Matriz de Aparecida, 9h30 - 11h00"},
		Option{"matriz_13h00", "Matriz de Aparecida, 13h00 - 15h00"},
		Option{"cap_8h00", "Capela São Sebastião, 8h00 - 10h00"},
		Option{"cap_16h00", "Capela São Pedro e São Paulo, 16h00 - 18h00"},
	)

	BaptismLocations = newTable(
		Option{"matriz", "Matriz de Aparecida"},
		Option{"capSaoPedro", "Capela São Pedro e São Paulo"},
		Option{"capSaoSebastiao", "Capela São Sebastião"},
	)

	YesNo = newTable(
		Option{models.Yes, "Sim"},
		Option{models.No, "Não"},
	)

	Sex = newTable(
		Option{"masculino", "Masculino"},
		Option{"feminino", "Feminino"},
		Option{"naoinformar", "Prefere não informar"},
	)

	DizimistaMaritalStatus = newTable(
		Option{"solteiro", "Solteiro(a)"},
		Option{"casado", "Casado(a)"},
		Option{"divorciado", "Divorciado(a)"},
		Option{"uniaoestavel", "União Estável"},
	)

	FormTypes = newTable(
		Option{string(models.FormBaptism), "Batismo"},
		Option{string(models.FormCatechism), "Catecismo"},
		Option{string(models.FormConfirmationYouth), "Crisma Jovem"},
		Option{string(models.FormConfirmationAdult), "Crisma Adulto"},
	)
)

// SlotsFor returns the slot table a confirmation form type offers.
func SlotsFor(ft models.FormType) *Table {
	switch ft {
	case models.FormConfirmationYouth:
		return YouthSlots
	case models.FormConfirmationAdult:
		return AdultSlots
	case models.FormCatechism:
		return CatechismSlots
	}
	return ConfirmationSlots
}

// Text returns s, or NotInformed when blank.
func Text(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotInformed
	}
	return s
}
