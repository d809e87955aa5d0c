package models

import "aparecida-web/app/dates"

// Registration is a sacrament registration submitted through a public form.
// Which fields are meaningful depends on FormType.
type Registration struct {
	ID        string       `json:"id"`
	FormType  FormType     `json:"formType"`
	Name      string       `json:"name"`
	Phone     string       `json:"phone"`
	Email     string       `json:"email,omitempty"`
	CreatedAt dates.Millis `json:"createdAt"`
	UpdatedAt dates.Millis `json:"updatedAt,omitempty"`

	Birthdate  string `json:"birthdate,omitempty"`
	Birthplace string `json:"birthplace,omitempty"`
	Address    string `json:"address,omitempty"`
	FatherName string `json:"fatherName,omitempty"`
	MotherName string `json:"motherName,omitempty"`
	Community  string `json:"community,omitempty"`

	// Catechism and confirmation
	Schooling           string `json:"schooling,omitempty"`
	IsBaptized          string `json:"isBaptized,omitempty"`
	SpecialNeeds        string `json:"specialNeeds,omitempty"`
	SpecialNeedsDetails string `json:"specialNeedsDetails,omitempty"`
	AvailableDay        string `json:"availableDay,omitempty"`
	TermName            string `json:"termName,omitempty"`

	// Confirmation
	GroupParticipation string `json:"groupParticipation,omitempty"`
	FirstEucharist     string `json:"firstEucharist,omitempty"`
	MaritalStatus      string `json:"maritalStatus,omitempty"`
	AvailableTime      string `json:"availableTime,omitempty"`
	JesusAnswer        string `json:"jesusAnswer,omitempty"`

	// Baptism
	GodfatherName   string `json:"godfatherName,omitempty"`
	GodmotherName   string `json:"godmotherName,omitempty"`
	AvailableLocate string `json:"availableLocate,omitempty"`
	BaptismDate     string `json:"baptismDate,omitempty"`
	MeetingDate     string `json:"meetingDate,omitempty"`
	Observations    string `json:"observations,omitempty"`
}

// RegistrationInput is the body accepted from public forms and admin edits.
// Server-owned fields (id, timestamps) are not part of it. The validate tags
// hold the per-form rules; fields a form type does not use are optional.
type RegistrationInput struct {
	FormType FormType `json:"formType" form:"formType" validate:"oneof=batismo catecismo crismaJovem crismaAdulto"`
	Name     string   `json:"name" form:"name" validate:"required"`
	Phone    string   `json:"phone" form:"phone" validate:"required,phone"`
	Email    string   `json:"email" form:"email" validate:"omitempty,email"`

	Birthdate  string `json:"birthdate" form:"birthdate" validate:"required,date"`
	Birthplace string `json:"birthplace" form:"birthplace" validate:"required_unless=FormType catecismo"`
	Address    string `json:"address" form:"address" validate:"required_unless=FormType batismo"`
	FatherName string `json:"fatherName" form:"fatherName" validate:"required"`
	MotherName string `json:"motherName" form:"motherName" validate:"required"`
	Community  string `json:"community" form:"community" validate:"required_unless=FormType batismo"`

	Schooling           string `json:"schooling" form:"schooling" validate:"required_if=FormType catecismo,omitempty,schooling"`
	IsBaptized          string `json:"isBaptized" form:"isBaptized" validate:"required_unless=FormType batismo,omitempty,option=yesNo"`
	SpecialNeeds        string `json:"specialNeeds" form:"specialNeeds" validate:"required_unless=FormType batismo,omitempty,option=yesNo"`
	SpecialNeedsDetails string `json:"specialNeedsDetails" form:"specialNeedsDetails"`
	AvailableDay        string `json:"availableDay" form:"availableDay" validate:"omitempty,option=catechismSlot"`
	TermName            string `json:"termName" form:"termName"`

	GroupParticipation string `json:"groupParticipation" form:"groupParticipation"`
	FirstEucharist     string `json:"firstEucharist" form:"firstEucharist" validate:"required_if=FormType crismaJovem,required_if=FormType crismaAdulto,omitempty,option=yesNo"`
	MaritalStatus      string `json:"maritalStatus" form:"maritalStatus" validate:"required_if=FormType crismaJovem,required_if=FormType crismaAdulto,omitempty,option=maritalStatus"`
	AvailableTime      string `json:"availableTime" form:"availableTime" validate:"omitempty,slot"`
	JesusAnswer        string `json:"jesusAnswer" form:"jesusAnswer"`

	GodfatherName   string `json:"godfatherName" form:"godfatherName" validate:"required_if=FormType batismo"`
	GodmotherName   string `json:"godmotherName" form:"godmotherName" validate:"required_if=FormType batismo"`
	AvailableLocate string `json:"availableLocate" form:"availableLocate" validate:"omitempty,option=baptismLocation"`
	BaptismDate     string `json:"baptismDate" form:"baptismDate" validate:"required_if=FormType batismo,omitempty,date"`
	MeetingDate     string `json:"meetingDate" form:"meetingDate" validate:"required_if=FormType batismo,omitempty,date"`
	Observations    string `json:"observations" form:"observations"`
}

// ToRegistration copies the input into a new Registration. The catechism
// commitment is signed by the mother unless another name was given.
func (in RegistrationInput) ToRegistration() *Registration {
	r := &Registration{}
	in.ApplyTo(r)
	return r
}

// ApplyTo overwrites the editable fields of r with the input.
func (in RegistrationInput) ApplyTo(r *Registration) {
	r.FormType = in.FormType
	r.Name = in.Name
	r.Phone = in.Phone
	r.Email = in.Email
	r.Birthdate = in.Birthdate
	r.Birthplace = in.Birthplace
	r.Address = in.Address
	r.FatherName = in.FatherName
	r.MotherName = in.MotherName
	r.Community = in.Community
	r.Schooling = in.Schooling
	r.IsBaptized = in.IsBaptized
	r.SpecialNeeds = in.SpecialNeeds
	r.SpecialNeedsDetails = in.SpecialNeedsDetails
	r.AvailableDay = in.AvailableDay
	r.TermName = in.TermName
	r.GroupParticipation = in.GroupParticipation
	r.FirstEucharist = in.FirstEucharist
	r.MaritalStatus = in.MaritalStatus
	r.AvailableTime = in.AvailableTime
	r.JesusAnswer = in.JesusAnswer
	r.GodfatherName = in.GodfatherName
	r.GodmotherName = in.GodmotherName
	r.AvailableLocate = in.AvailableLocate
	r.BaptismDate = in.BaptismDate
	r.MeetingDate = in.MeetingDate
	r.Observations = in.Observations
	if r.FormType == FormCatechism && r.TermName == "" {
		r.TermName = r.MotherName
	}
}
