package public

// ScheduleEntry is one line of a schedule table.
type ScheduleEntry struct {
	Day   string
	Times []string
}

// Chapel is a community chapel and its regular mass.
type Chapel struct {
	Name     string
	Schedule string
}

// Celebration is a recurring non-mass celebration.
type Celebration struct {
	Name     string
	Schedule []string
}

// BankAccount is the tithe transfer destination.
type BankAccount struct {
	Bank    string
	Agency  string
	Account string
}

// FormCard describes a registration form on the registrations page.
type FormCard struct {
	Type        string
	Title       string
	Description string
}

// MissionItem is one pillar of the parish mission.
type MissionItem struct {
	Title string
	Text  string
}

var MassSchedule = []ScheduleEntry{
	{Day: "Domingo", Times: []string{"6h30", "9h30", "17h30"}},
	{Day: "Segunda-feira", Times: []string{"Não há celebrações"}},
	{Day: "Terça-feira", Times: []string{"19h00"}},
	{Day: "Quarta-feira", Times: []string{"19h00"}},
	{Day: "Quinta-feira", Times: []string{"19h00"}},
	{Day: "Sexta-feira", Times: []string{"19h00"}},
	{Day: "Sábado", Times: []string{"18h00"}},
}

var SpecialCelebrations = []Celebration{
	{Name: "Adoração ao Santíssimo", Schedule: []string{"Quintas-feiras, 15h00 às 18h00", "Quintas-feiras, 20h00 às 21h00"}},
	{Name: "Confissões", Schedule: []string{"Quartas e sextas-feiras, 15h00 às 18h00", "Quintas-feiras, 20h00 às 21h00"}},
}

var Chapels = []Chapel{
	{Name: "Capela São Pedro e São Paulo", Schedule: "Sábado às 18h30"},
	{Name: "Capela Santa Maria Mãe de Deus", Schedule: "2º e 4º sábado às 18h30"},
	{Name: "Capela São Sebastião", Schedule: "Domingo às 16h00"},
	{Name: "Capela Nossa Senhora de Guadalupe", Schedule: "1º e 3º sábado às 19h00"},
}

var ChapelCelebrations = []Celebration{
	{Name: "Adoração - Capela São Pedro e São Paulo", Schedule: []string{"Terça-feira às 19h30"}},
	{Name: "Cenáculo Mariano - Capela São Sebastião", Schedule: []string{"Terça-feira às 19h30"}},
}

var TitheAccount = BankAccount{Bank: "Banco do Brasil", Agency: "1234-5", Account: "12345-6"}

var OfficeHours = []string{"Segunda a Sexta: 14h30 às 20h00", "Sábado: 8h00 às 12h00"}

var Mission = []MissionItem{
	{Title: "Evangelização", Text: "Anunciar a Boa Nova de Jesus Cristo, formando discípulos missionários à luz dos ensinamentos da Igreja Católica e sob a proteção de Nossa Senhora Aparecida."},
	{Title: "Comunhão", Text: "Promover a unidade entre os fiéis, construindo uma comunidade acolhedora, onde todos possam se sentir parte da família de Deus e crescer juntos na fé."},
	{Title: "Caridade", Text: "Servir aos mais necessitados com amor e dedicação, seguindo o exemplo de Jesus Cristo e manifestando concretamente o amor de Deus através de ações sociais."},
}

var FormCards = []FormCard{
	{Type: "batismo", Title: "Batismo", Description: "Sacramento de iniciação cristã, pelo qual nos tornamos filhos de Deus."},
	{Type: "catecismo", Title: "Catecismo", Description: "Preparação para a Primeira Eucaristia, destinada a crianças a partir de 9 anos."},
	{Type: "crismaJovem", Title: "Crisma Jovem", Description: "Sacramento que confirma o Batismo e fortalece os dons do Espírito Santo. Turmas aos sábados."},
	{Type: "crismaAdulto", Title: "Crisma Adulto", Description: "Preparação para a Crisma de adultos, com encontros às sextas-feiras à noite."},
}
