package profileValidator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validDraft() *ProfileDraft {
	return &ProfileDraft{
		PersonalData: validPersonal(),
		ContactData:  validContact(),
		Educations:   []EducationData{validEducation()},
		BankData:     validBank(),
		SkillsData:   validSkills(),
	}
}

func TestValidateSectionKnownNames(t *testing.T) {
	draft := validDraft()
	for _, s := range Sections {
		errors, ok := ValidateSection(s, draft)
		require.True(t, ok, "section %s", s)
		require.Empty(t, errors, "section %s", s)
	}
}

func TestValidateSectionUnknownName(t *testing.T) {
	_, ok := ValidateSection(Section("hobbies"), validDraft())
	require.False(t, ok)
}

// The completion rules for personal are deliberately narrower than the save
// rules: a draft with no addresses still counts as complete once father's
// name and category are present.
func TestPersonalCompletionSubset(t *testing.T) {
	draft := &ProfileDraft{
		PersonalData: PersonalData{FatherName: "Suresh Singh", Category: "general"},
	}

	errors, ok := ValidateSection(SectionPersonal, draft)
	require.True(t, ok)
	require.Empty(t, errors, "bare father's name and category satisfy the step check")

	require.NotEmpty(t, ValidatePersonal(&draft.PersonalData), "save schema still rejects the bare draft")

	status := Status(draft)
	require.True(t, status.SectionStatus[0].Completed)
}

func TestContactCompletionRequiresVerifiedEmail(t *testing.T) {
	draft := validDraft()
	draft.ContactData.EmailVerified = false

	errors, ok := ValidateSection(SectionContact, draft)
	require.True(t, ok)
	require.Equal(t, "Email must be verified", errors["emailVerified"])

	require.Empty(t, ValidateContact(&draft.ContactData), "save schema does not require verification")

	status := Status(draft)
	require.False(t, status.SectionStatus[1].Completed)
	require.Contains(t, status.SectionStatus[1].Errors, "Email must be verified")
}

func TestEducationBankSkillsUseFullSchemaForCompletion(t *testing.T) {
	draft := validDraft()
	draft.BankData.IFSC = "BAD"

	status := Status(draft)
	for _, s := range status.SectionStatus {
		if s.Name == "bank" {
			require.False(t, s.Completed)
			return
		}
	}
	t.Fatal("bank section missing from status")
}

func TestValidateCompletePrefixesSectionNames(t *testing.T) {
	draft := validDraft()
	draft.BankData.IFSC = ""
	draft.PersonalData.Name = ""

	errors := ValidateComplete(draft)
	require.Equal(t, "IFSC code is required", errors["bank.ifsc"])
	require.Equal(t, "Name is required", errors["personal.name"])

	require.Empty(t, ValidateComplete(validDraft()))
}
