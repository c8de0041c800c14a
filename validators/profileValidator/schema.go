package profileValidator

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	mobileRegex = regexp.MustCompile(`^\d{10}$`)
	pinRegex    = regexp.MustCompile(`^\d{6}$`)
	yearRegex   = regexp.MustCompile(`^\d{4}$`)
	ifscRegex   = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	digitsRegex = regexp.MustCompile(`^\d+$`)
	otpRegex    = regexp.MustCompile(`^\d{6}$`)
)

// Payload shapes mirror the JSON the profile builder submits, one struct per
// section. Validators normalize in place and report problems as a
// field-path -> message map; an empty map means the payload is valid.

type Address struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2"`
	State    string `json:"state"`
	District string `json:"district"`
	Block    string `json:"block"`
	Village  string `json:"village"`
	Pin      string `json:"pin"`
}

type CurrentAddress struct {
	SameAsPermanent bool   `json:"sameAsPermanent"`
	Line1           string `json:"line1"`
	Line2           string `json:"line2"`
	State           string `json:"state"`
	District        string `json:"district"`
	Block           string `json:"block"`
	Village         string `json:"village"`
	Pin             string `json:"pin"`
}

type Disability struct {
	HasDisability bool   `json:"hasDisability"`
	Type          string `json:"type"`
}

type PersonalData struct {
	Name             string         `json:"name"`
	Dob              string         `json:"dob"`
	Gender           string         `json:"gender"`
	FatherName       string         `json:"fatherName"`
	Category         string         `json:"category"`
	PermanentAddress Address        `json:"permanentAddress"`
	CurrentAddress   CurrentAddress `json:"currentAddress"`
	Disability       Disability     `json:"disability"`
}

type ContactData struct {
	PrimaryMobile   string `json:"primaryMobile"`
	AlternateMobile string `json:"alternateMobile"`
	Email           string `json:"email"`
	EmailVerified   bool   `json:"emailVerified"`
}

type EducationData struct {
	Level      string `json:"level"`
	Subject    string `json:"subject"`
	Board      string `json:"board"`
	Institute  string `json:"institute"`
	Year       string `json:"year"`
	MarksType  string `json:"marksType"`
	MarksValue string `json:"marksValue"`

	CertificateUrl      string `json:"certificateUrl"`
	CertificateFileName string `json:"certificateFileName"`
	CertificateFileSize int    `json:"certificateFileSize"`
}

type BankData struct {
	IsAadhaarSeeded bool   `json:"isAadhaarSeeded"`
	AccountNumber   string `json:"accountNumber"`
	IFSC            string `json:"ifsc"`
	BankName        string `json:"bankName"`
	Branch          string `json:"branch"`
}

type LanguageData struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

type SkillsData struct {
	Skills    []string       `json:"skills"`
	Languages []LanguageData `json:"languages"`
}

// ProfileDraft is the caller's current in-memory view of all five sections.
type ProfileDraft struct {
	PersonalData PersonalData    `json:"personalData"`
	ContactData  ContactData     `json:"contactData"`
	Educations   []EducationData `json:"educations"`
	BankData     BankData        `json:"bankData"`
	SkillsData   SkillsData      `json:"skillsData"`
}

type EmailVerificationData struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

var validCategories = map[string]bool{"general": true, "obc": true, "sc": true, "st": true}

var validLevels = map[string]bool{
	"10th": true, "12th": true, "diploma": true, "graduation": true, "postgraduation": true,
}

var validMarksTypes = map[string]bool{"percentage": true, "cgpa": true, "grade": true}

var validProficiencies = map[string]bool{
	"basic": true, "intermediate": true, "advanced": true, "native": true,
}

func IsValidIFSC(ifsc string) bool {
	return len(ifsc) == 11 && ifscRegex.MatchString(ifsc)
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func IsValidOTP(otp string) bool {
	return otpRegex.MatchString(otp)
}

// ValidatePersonal checks the personal section and trims its text fields.
func ValidatePersonal(d *PersonalData) map[string]string {
	errors := make(map[string]string)

	d.Name = strings.TrimSpace(d.Name)
	d.FatherName = strings.TrimSpace(d.FatherName)
	d.Category = strings.ToLower(strings.TrimSpace(d.Category))

	if d.Name == "" {
		errors["name"] = "Name is required"
	}
	if strings.TrimSpace(d.Dob) == "" {
		errors["dob"] = "Date of birth is required"
	}
	if strings.TrimSpace(d.Gender) == "" {
		errors["gender"] = "Gender is required"
	}
	if d.FatherName == "" {
		errors["fatherName"] = "Father's/Guardian's name is required"
	}
	if !validCategories[d.Category] {
		errors["category"] = "Category is required"
	}

	p := &d.PermanentAddress
	if strings.TrimSpace(p.Line1) == "" {
		errors["permanentAddress.line1"] = "Address line 1 is required"
	}
	if strings.TrimSpace(p.State) == "" {
		errors["permanentAddress.state"] = "State is required"
	}
	if strings.TrimSpace(p.District) == "" {
		errors["permanentAddress.district"] = "District is required"
	}
	if strings.TrimSpace(p.Block) == "" {
		errors["permanentAddress.block"] = "Block is required"
	}
	if strings.TrimSpace(p.Village) == "" {
		errors["permanentAddress.village"] = "Village/City is required"
	}
	if !pinRegex.MatchString(p.Pin) {
		errors["permanentAddress.pin"] = "PIN code must be 6 digits"
	}

	// Current address is free-form; when sameAsPermanent the persistence layer
	// copies the permanent fields over, so nothing to check here.

	if d.Disability.HasDisability && strings.TrimSpace(d.Disability.Type) == "" {
		errors["disability.type"] = "Disability type is required"
	}

	return errors
}

// ValidateContact checks the contact section and normalizes the email to
// trimmed lowercase.
func ValidateContact(d *ContactData) map[string]string {
	errors := make(map[string]string)

	d.PrimaryMobile = strings.TrimSpace(d.PrimaryMobile)
	d.AlternateMobile = strings.TrimSpace(d.AlternateMobile)
	d.Email = NormalizeEmail(d.Email)

	if d.PrimaryMobile == "" {
		errors["primaryMobile"] = "Primary mobile is required"
	} else if !mobileRegex.MatchString(d.PrimaryMobile) {
		errors["primaryMobile"] = "Primary mobile must be 10 digits"
	}
	if d.AlternateMobile != "" && !mobileRegex.MatchString(d.AlternateMobile) {
		errors["alternateMobile"] = "Alternate mobile must be 10 digits"
	}
	if d.Email == "" {
		errors["email"] = "Email is required"
	} else if !emailRegex.MatchString(d.Email) {
		errors["email"] = "Invalid email format"
	}

	return errors
}

// ValidateEducation checks a single education row. The year of passing is the
// one data-dependent rule: it must fall in [1950, currentYear+1].
func ValidateEducation(d *EducationData) map[string]string {
	errors := make(map[string]string)

	d.Level = strings.ToLower(strings.TrimSpace(d.Level))
	d.Board = strings.TrimSpace(d.Board)
	d.Institute = strings.TrimSpace(d.Institute)
	d.Year = strings.TrimSpace(d.Year)
	d.MarksType = strings.ToLower(strings.TrimSpace(d.MarksType))
	d.MarksValue = strings.TrimSpace(d.MarksValue)

	if !validLevels[d.Level] {
		errors["level"] = "Course level is required"
	}
	if d.Board == "" {
		errors["board"] = "Board/University is required"
	}
	if d.Institute == "" {
		errors["institute"] = "Institute name is required"
	}
	if d.Year == "" {
		errors["year"] = "Year of passing is required"
	} else if !yearRegex.MatchString(d.Year) {
		errors["year"] = "Year must be 4 digits"
	} else {
		year, _ := strconv.Atoi(d.Year)
		if year < 1950 || year > time.Now().Year()+1 {
			errors["year"] = "Invalid year"
		}
	}
	if !validMarksTypes[d.MarksType] {
		errors["marksType"] = "Marks type is required"
	}
	if d.MarksValue == "" {
		errors["marksValue"] = "Marks value is required"
	}

	return errors
}

// ValidateEducationList checks every row; errors are keyed by row index, e.g.
// "educations.1.year".
func ValidateEducationList(list []EducationData) map[string]string {
	errors := make(map[string]string)

	if len(list) == 0 {
		errors["educations"] = "At least one education qualification is required"
		return errors
	}

	for i := range list {
		for field, msg := range ValidateEducation(&list[i]) {
			errors["educations."+strconv.Itoa(i)+"."+field] = msg
		}
	}

	return errors
}

// ValidateBank checks the bank section. The IFSC code is uppercased before
// the format check so user input casing never matters.
func ValidateBank(d *BankData) map[string]string {
	errors := make(map[string]string)

	d.AccountNumber = strings.TrimSpace(d.AccountNumber)
	d.IFSC = strings.ToUpper(strings.TrimSpace(d.IFSC))
	d.BankName = strings.TrimSpace(d.BankName)
	d.Branch = strings.TrimSpace(d.Branch)

	switch {
	case d.AccountNumber == "":
		errors["accountNumber"] = "Account number is required"
	case !digitsRegex.MatchString(d.AccountNumber):
		errors["accountNumber"] = "Account number must contain only numbers"
	case len(d.AccountNumber) < 9:
		errors["accountNumber"] = "Account number must be at least 9 digits"
	case len(d.AccountNumber) > 18:
		errors["accountNumber"] = "Account number cannot exceed 18 digits"
	}

	if d.IFSC == "" {
		errors["ifsc"] = "IFSC code is required"
	} else if len(d.IFSC) != 11 {
		errors["ifsc"] = "IFSC code must be 11 characters"
	} else if !ifscRegex.MatchString(d.IFSC) {
		errors["ifsc"] = "Invalid IFSC code format"
	}

	if d.BankName == "" {
		errors["bankName"] = "Bank name is required"
	}
	if d.Branch == "" {
		errors["branch"] = "Branch name is required"
	}

	return errors
}

// ValidateSkills checks the skills-and-languages section.
func ValidateSkills(d *SkillsData) map[string]string {
	errors := make(map[string]string)

	cleaned := d.Skills[:0]
	for _, s := range d.Skills {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	d.Skills = cleaned

	if len(d.Skills) == 0 {
		errors["skills"] = "At least one skill is required"
	}
	if len(d.Languages) == 0 {
		errors["languages"] = "At least one language is required"
	}
	for i := range d.Languages {
		l := &d.Languages[i]
		l.Name = strings.TrimSpace(l.Name)
		l.Proficiency = strings.ToLower(strings.TrimSpace(l.Proficiency))
		if l.Name == "" {
			errors["languages."+strconv.Itoa(i)+".name"] = "Language name is required"
		}
		if !validProficiencies[l.Proficiency] {
			errors["languages."+strconv.Itoa(i)+".proficiency"] = "Proficiency level is required"
		}
	}

	return errors
}

// ValidateEmailVerification checks an email OTP submission.
func ValidateEmailVerification(d *EmailVerificationData) map[string]string {
	errors := make(map[string]string)

	d.Email = NormalizeEmail(d.Email)
	d.Otp = strings.TrimSpace(d.Otp)

	if !emailRegex.MatchString(d.Email) {
		errors["email"] = "Invalid email format"
	}
	if !otpRegex.MatchString(d.Otp) {
		errors["otp"] = "OTP must be 6 digits"
	}

	return errors
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
