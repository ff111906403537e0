package transform

import (
	"github.com/gartstein/crewstart/internal/crew/models"
	"github.com/google/uuid"
)

// FormState is the stringly-typed representation of the starter form: every
// field holds exactly what the user sees, including currency-formatted
// monetary values. Numeric values are re-extracted with CleanNumber at save
// time.
type FormState struct {
	FirstName string
	LastName  string
	Birth     string
	IDCard    string
	Patent    string

	Address string
	Phone   string
	Mobile  string

	Position   string
	Department string
	StartDate  string
	EndDate    string

	Rate          string
	PerWeek       string
	DayWorked     string
	HolidayWorked string
	TravelDay     string
	DailyRate     string
	Allowance     string
	PerDiem       string
	Accommodation string

	Payment     string
	BankAccount string
	BankName    string
	AcctCode    string
	ICE         string
	IFNumber    string

	TravelDate   string
	Note         string
	ProjectTitle string
}

// Hydrate reconstructs the form from a stored record for edit mode. The
// three monetary fields come back currency-formatted; everything else is the
// stored string verbatim.
func Hydrate(m *models.CrewMember) FormState {
	return FormState{
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Birth:     m.DateOfBirth,
		IDCard:    m.IDCardNumber,
		Patent:    m.PatentNumber,

		Address: m.Address,
		Phone:   m.Phone,
		Mobile:  m.Mobile,

		Position:   m.Position,
		Department: m.Department,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,

		Rate:          formatIfSet(m.Rate),
		PerWeek:       string(m.PerWeek),
		DayWorked:     formatIfSet(m.DayWorked),
		HolidayWorked: m.HolidayWorked,
		TravelDay:     m.TravelDay,
		DailyRate:     formatIfSet(m.DailyRate),
		Allowance:     m.LivingAllowance,
		PerDiem:       m.PerDiem,
		Accommodation: m.Accommodation,

		Payment:     m.PaymentMethod,
		BankAccount: m.BankAccountNumber,
		BankName:    m.BankName,
		AcctCode:    m.AccountCode,
		ICE:         m.ICE,
		IFNumber:    m.IFNumber,

		TravelDate:   m.TravelDate,
		Note:         m.Notes,
		ProjectTitle: m.ProjectTitle,
	}
}

func formatIfSet(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatCurrency(*v)
}

// Payload normalizes the form into the typed persistence record. Monetary
// fields run through CleanNumber (nil when unparseable), digit-only fields
// are re-sanitized, the rest is carried verbatim.
func (f *FormState) Payload(companyID uuid.UUID, jobID *uuid.UUID) *models.CrewMember {
	return &models.CrewMember{
		CompanyID:    companyID,
		JobID:        jobID,
		ProjectTitle: f.ProjectTitle,

		FirstName:    f.FirstName,
		LastName:     f.LastName,
		DateOfBirth:  f.Birth,
		IDCardNumber: f.IDCard,
		PatentNumber: f.Patent,

		Address: f.Address,
		Phone:   f.Phone,
		Mobile:  f.Mobile,

		Position:   f.Position,
		Department: f.Department,
		StartDate:  f.StartDate,
		EndDate:    f.EndDate,

		Rate:            CleanNumber(f.Rate),
		DailyRate:       CleanNumber(f.DailyRate),
		DayWorked:       CleanNumber(f.DayWorked),
		PerWeek:         models.PerWeek(f.PerWeek),
		HolidayWorked:   f.HolidayWorked,
		TravelDay:       f.TravelDay,
		LivingAllowance: f.Allowance,
		PerDiem:         f.PerDiem,
		Accommodation:   f.Accommodation,

		PaymentMethod:     f.Payment,
		BankAccountNumber: DigitsOnly(f.BankAccount, MaxBankAccountDigits),
		BankName:          f.BankName,
		AccountCode:       f.AcctCode,
		ICE:               f.ICE,
		IFNumber:          DigitsOnly(f.IFNumber, MaxTaxIDDigits),

		TravelDate: f.TravelDate,
		Notes:      f.Note,
	}
}

// ApplyRateBlur runs when the rate field loses focus: the rate is
// re-formatted for display and the two derived read-only fields are filled
// in. Unparseable input leaves all three fields untouched.
func (f *FormState) ApplyRateBlur() {
	n := CleanNumber(f.Rate)
	if n == nil {
		return
	}
	daily, seventh := DeriveFromRate(*n)
	f.Rate = FormatCurrency(*n)
	f.DailyRate = FormatCurrency(daily)
	f.DayWorked = FormatCurrency(seventh)
}

// SetBankAccount applies the per-keystroke bank account constraint: digits
// only, at most MaxBankAccountDigits, excess dropped silently.
func (f *FormState) SetBankAccount(v string) {
	f.BankAccount = DigitsOnly(v, MaxBankAccountDigits)
}

// SetTaxID applies the per-keystroke IF number constraint: digits only, at
// most MaxTaxIDDigits.
func (f *FormState) SetTaxID(v string) {
	f.IFNumber = DigitsOnly(v, MaxTaxIDDigits)
}
