package profileValidator

// Section is the closed set of profile sections. Keeping the dispatch in a
// fixed table means a new section cannot be added without also declaring its
// save-time and completion rules.
type Section string

const (
	SectionPersonal  Section = "personal"
	SectionContact   Section = "contact"
	SectionEducation Section = "education"
	SectionBank      Section = "bank"
	SectionSkills    Section = "skills"
)

// Sections lists the five sections in display order.
var Sections = []Section{
	SectionPersonal,
	SectionContact,
	SectionEducation,
	SectionBank,
	SectionSkills,
}

type sectionRule struct {
	// validate applies the full save-time schema.
	validate func(d *ProfileDraft) map[string]string
	// complete applies the narrower required-subset schema used for the
	// completion percentage. For personal and contact this is deliberately
	// looser than validate: a profile counts as usable before every optional
	// field is filled.
	complete func(d *ProfileDraft) map[string]string
}

var sectionRules = map[Section]sectionRule{
	SectionPersonal: {
		validate: func(d *ProfileDraft) map[string]string { return ValidatePersonal(&d.PersonalData) },
		complete: func(d *ProfileDraft) map[string]string { return completePersonal(&d.PersonalData) },
	},
	SectionContact: {
		validate: func(d *ProfileDraft) map[string]string { return ValidateContact(&d.ContactData) },
		complete: func(d *ProfileDraft) map[string]string { return completeContact(&d.ContactData) },
	},
	SectionEducation: {
		validate: func(d *ProfileDraft) map[string]string { return ValidateEducationList(d.Educations) },
		complete: func(d *ProfileDraft) map[string]string { return ValidateEducationList(d.Educations) },
	},
	SectionBank: {
		validate: func(d *ProfileDraft) map[string]string { return ValidateBank(&d.BankData) },
		complete: func(d *ProfileDraft) map[string]string { return ValidateBank(&d.BankData) },
	},
	SectionSkills: {
		validate: func(d *ProfileDraft) map[string]string { return ValidateSkills(&d.SkillsData) },
		complete: func(d *ProfileDraft) map[string]string { return ValidateSkills(&d.SkillsData) },
	},
}

// completePersonal gates the personal section on father's name and category
// only. Addresses count toward display, not completion.
func completePersonal(d *PersonalData) map[string]string {
	errors := make(map[string]string)
	if d.FatherName == "" {
		errors["fatherName"] = "Father's/Guardian's name is required"
	}
	if !validCategories[d.Category] {
		errors["category"] = "Category is required"
	}
	return errors
}

// completeContact gates the contact section on a verified email address.
func completeContact(d *ContactData) map[string]string {
	errors := make(map[string]string)
	if d.Email == "" || !emailRegex.MatchString(d.Email) {
		errors["email"] = "A valid email is required"
	}
	if !d.EmailVerified {
		errors["emailVerified"] = "Email must be verified"
	}
	return errors
}

// ValidateSection applies the required-subset schema for the named section,
// the same rules the completion aggregator uses. The stricter save-time
// schemas run inside the save handlers; this is the check the profile builder
// calls as the user moves between steps. The second return is false when the
// name is not one of the five sections.
func ValidateSection(s Section, d *ProfileDraft) (map[string]string, bool) {
	rule, ok := sectionRules[s]
	if !ok {
		return nil, false
	}
	return rule.complete(d), true
}

// ValidateComplete applies the full schema of every section; used by the
// finalize step. Errors are prefixed with the owning section name.
func ValidateComplete(d *ProfileDraft) map[string]string {
	errors := make(map[string]string)
	for _, s := range Sections {
		for field, msg := range sectionRules[s].validate(d) {
			errors[string(s)+"."+field] = msg
		}
	}
	return errors
}
