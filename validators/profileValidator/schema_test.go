package profileValidator

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validPersonal() PersonalData {
	return PersonalData{
		Name:       "Rahul Kumar Singh",
		Dob:        "2002-05-14",
		Gender:     "male",
		FatherName: "Suresh Singh",
		Category:   "general",
		PermanentAddress: Address{
			Line1:    "12 MG Road",
			State:    "Bihar",
			District: "Patna",
			Block:    "Phulwari",
			Village:  "Patna",
			Pin:      "800001",
		},
	}
}

func validContact() ContactData {
	return ContactData{
		PrimaryMobile: "9876543210",
		Email:         "rahul@example.com",
		EmailVerified: true,
	}
}

func validEducation() EducationData {
	return EducationData{
		Level:      "12th",
		Board:      "CBSE",
		Institute:  "DAV Public School",
		Year:       "2020",
		MarksType:  "percentage",
		MarksValue: "86",
	}
}

func validBank() BankData {
	return BankData{
		AccountNumber: "123456789012",
		IFSC:          "SBIN0001234",
		BankName:      "State Bank of India",
		Branch:        "Patna Main",
	}
}

func validSkills() SkillsData {
	return SkillsData{
		Skills: []string{"Go", "SQL"},
		Languages: []LanguageData{
			{Name: "Hindi", Proficiency: "native"},
			{Name: "English", Proficiency: "intermediate"},
		},
	}
}

func TestValidatePersonalValid(t *testing.T) {
	data := validPersonal()
	require.Empty(t, ValidatePersonal(&data))
}

func TestValidatePersonalMissingFields(t *testing.T) {
	data := PersonalData{}
	errors := ValidatePersonal(&data)

	require.Equal(t, "Name is required", errors["name"])
	require.Equal(t, "Father's/Guardian's name is required", errors["fatherName"])
	require.Equal(t, "Category is required", errors["category"])
	require.Equal(t, "PIN code must be 6 digits", errors["permanentAddress.pin"])
}

func TestValidatePersonalPinFormat(t *testing.T) {
	for _, pin := range []string{"80001", "8000011", "80000a", ""} {
		data := validPersonal()
		data.PermanentAddress.Pin = pin
		errors := ValidatePersonal(&data)
		require.Equal(t, "PIN code must be 6 digits", errors["permanentAddress.pin"], "pin %q", pin)
	}
}

func TestValidatePersonalCategoryNormalized(t *testing.T) {
	data := validPersonal()
	data.Category = "  OBC "
	require.Empty(t, ValidatePersonal(&data))
	require.Equal(t, "obc", data.Category)
}

func TestValidatePersonalDisabilityType(t *testing.T) {
	data := validPersonal()
	data.Disability = Disability{HasDisability: true}
	errors := ValidatePersonal(&data)
	require.Equal(t, "Disability type is required", errors["disability.type"])

	data.Disability.Type = "visual"
	require.Empty(t, ValidatePersonal(&data))
}

func TestValidateContactValid(t *testing.T) {
	data := validContact()
	require.Empty(t, ValidateContact(&data))
}

func TestValidateContactMobileRules(t *testing.T) {
	data := validContact()
	data.PrimaryMobile = "98765"
	errors := ValidateContact(&data)
	require.Equal(t, "Primary mobile must be 10 digits", errors["primaryMobile"])

	data = validContact()
	data.AlternateMobile = "12345"
	errors = ValidateContact(&data)
	require.Equal(t, "Alternate mobile must be 10 digits", errors["alternateMobile"])

	// Alternate mobile is optional when empty.
	data = validContact()
	data.AlternateMobile = ""
	require.Empty(t, ValidateContact(&data))

	data = validContact()
	data.AlternateMobile = "9123456780"
	require.Empty(t, ValidateContact(&data))
}

func TestValidateContactEmailNormalized(t *testing.T) {
	data := validContact()
	data.Email = "  Rahul@Example.COM "
	require.Empty(t, ValidateContact(&data))
	require.Equal(t, "rahul@example.com", data.Email)
}

func TestValidateContactEmailFormat(t *testing.T) {
	data := validContact()
	data.Email = "not-an-email"
	errors := ValidateContact(&data)
	require.Equal(t, "Invalid email format", errors["email"])

	data.Email = ""
	errors = ValidateContact(&data)
	require.Equal(t, "Email is required", errors["email"])
}

func TestValidateEducationYearBounds(t *testing.T) {
	nextYear := strconv.Itoa(time.Now().Year() + 1)
	afterNext := strconv.Itoa(time.Now().Year() + 2)

	cases := map[string]string{
		"1949":    "Invalid year",
		"1950":    "",
		nextYear:  "",
		afterNext: "Invalid year",
		"20":      "Year must be 4 digits",
		"":        "Year of passing is required",
	}
	for year, want := range cases {
		data := validEducation()
		data.Year = year
		errors := ValidateEducation(&data)
		if want == "" {
			require.NotContains(t, errors, "year", "year %q", year)
		} else {
			require.Equal(t, want, errors["year"], "year %q", year)
		}
	}
}

func TestValidateEducationListKeysByIndex(t *testing.T) {
	bad := validEducation()
	bad.Year = "20"
	errors := ValidateEducationList([]EducationData{validEducation(), bad})

	require.Len(t, errors, 1)
	require.Equal(t, "Year must be 4 digits", errors["educations.1.year"])
}

func TestValidateEducationListEmpty(t *testing.T) {
	errors := ValidateEducationList(nil)
	require.Equal(t, "At least one education qualification is required", errors["educations"])
}

func TestValidateBankIFSCMatrix(t *testing.T) {
	cases := map[string]string{
		"SBIN0001234": "",
		"sbin0001234": "", // uppercased before the check
		"SBIN1001234": "Invalid IFSC code format",
		"SBI00001234": "Invalid IFSC code format",
		"SBIN000123":  "IFSC code must be 11 characters",
		"SBIN00012345": "IFSC code must be 11 characters",
		"":            "IFSC code is required",
	}
	for ifsc, want := range cases {
		data := validBank()
		data.IFSC = ifsc
		errors := ValidateBank(&data)
		if want == "" {
			require.NotContains(t, errors, "ifsc", "ifsc %q", ifsc)
		} else {
			require.Equal(t, want, errors["ifsc"], "ifsc %q", ifsc)
		}
	}
}

func TestValidateBankAccountNumber(t *testing.T) {
	cases := map[string]string{
		"123456789":           "",
		"123456789012345678":  "",
		"12345678":            "Account number must be at least 9 digits",
		"1234567890123456789": "Account number cannot exceed 18 digits",
		"12345678901a":        "Account number must contain only numbers",
		"":                    "Account number is required",
	}
	for acct, want := range cases {
		data := validBank()
		data.AccountNumber = acct
		errors := ValidateBank(&data)
		if want == "" {
			require.NotContains(t, errors, "accountNumber", "account %q", acct)
		} else {
			require.Equal(t, want, errors["accountNumber"], "account %q", acct)
		}
	}
}

func TestValidateSkillsDropsBlankEntries(t *testing.T) {
	data := validSkills()
	data.Skills = []string{" Go ", "", "  "}
	require.Empty(t, ValidateSkills(&data))
	require.Equal(t, []string{"Go"}, data.Skills)
}

func TestValidateSkillsRequirements(t *testing.T) {
	data := SkillsData{}
	errors := ValidateSkills(&data)
	require.Equal(t, "At least one skill is required", errors["skills"])
	require.Equal(t, "At least one language is required", errors["languages"])

	data = validSkills()
	data.Languages[1].Proficiency = "fluent"
	errors = ValidateSkills(&data)
	require.Equal(t, "Proficiency level is required", errors["languages.1.proficiency"])
}

func TestValidateEmailVerification(t *testing.T) {
	data := EmailVerificationData{Email: "Rahul@Example.com ", Otp: "123456"}
	require.Empty(t, ValidateEmailVerification(&data))
	require.Equal(t, "rahul@example.com", data.Email)

	data = EmailVerificationData{Email: "bad", Otp: "12a456"}
	errors := ValidateEmailVerification(&data)
	require.Equal(t, "Invalid email format", errors["email"])
	require.Equal(t, "OTP must be 6 digits", errors["otp"])
}
