package profileController

import (
	"strconv"

	"gorm.io/gorm"

	"ipb/models"
	"ipb/validators/profileValidator"
)

// BuildDraft assembles the stored profile and its child rows into the
// five-section draft shape. Returns gorm.ErrRecordNotFound when the user has
// never saved a section.
func BuildDraft(db *gorm.DB, userID uint) (*profileValidator.ProfileDraft, *models.Profile, error) {
	var profile models.Profile
	err := db.Where("user_id = ?", userID).
		Preload("Educations").
		Preload("Skills").
		Preload("Languages").
		First(&profile).Error
	if err != nil {
		return nil, nil, err
	}

	draft := &profileValidator.ProfileDraft{
		PersonalData: profileValidator.PersonalData{
			Name:       profile.Name,
			Gender:     profile.Gender,
			FatherName: profile.FatherName,
			Category:   profile.Category,
			PermanentAddress: profileValidator.Address{
				Line1:    profile.PermanentAddressLine1,
				Line2:    profile.PermanentAddressLine2,
				State:    profile.PermanentState,
				District: profile.PermanentDistrict,
				Block:    profile.PermanentBlock,
				Village:  profile.PermanentVillage,
				Pin:      profile.PermanentPin,
			},
			CurrentAddress: profileValidator.CurrentAddress{
				SameAsPermanent: profile.CurrentAddressSameAsPermanent,
				Line1:           profile.CurrentAddressLine1,
				Line2:           profile.CurrentAddressLine2,
				State:           profile.CurrentState,
				District:        profile.CurrentDistrict,
				Block:           profile.CurrentBlock,
				Village:         profile.CurrentVillage,
				Pin:             profile.CurrentPin,
			},
			Disability: profileValidator.Disability{
				HasDisability: profile.HasDisability,
				Type:          profile.DisabilityType,
			},
		},
		ContactData: profileValidator.ContactData{
			PrimaryMobile:   profile.PrimaryMobile,
			AlternateMobile: profile.AlternateMobile,
			Email:           profile.Email,
			EmailVerified:   profile.IsEmailVerified,
		},
	}
	if profile.Dob != nil {
		draft.PersonalData.Dob = profile.Dob.Format("2006-01-02")
	}

	for _, e := range profile.Educations {
		draft.Educations = append(draft.Educations, profileValidator.EducationData{
			Level:               e.Level,
			Subject:             e.Subject,
			Board:               e.Board,
			Institute:           e.Institute,
			Year:                strconv.Itoa(e.YearOfPassing),
			MarksType:           e.MarksType,
			MarksValue:          e.MarksValue,
			CertificateUrl:      e.CertificateUrl,
			CertificateFileName: e.CertificateFileName,
			CertificateFileSize: e.CertificateFileSize,
		})
	}

	for _, s := range profile.Skills {
		draft.SkillsData.Skills = append(draft.SkillsData.Skills, s.Skill)
	}
	for _, l := range profile.Languages {
		draft.SkillsData.Languages = append(draft.SkillsData.Languages, profileValidator.LanguageData{
			Name:        l.Name,
			Proficiency: l.Proficiency,
		})
	}

	var bank models.BankDetails
	if err := db.Where("profile_id = ?", profile.ID).First(&bank).Error; err == nil {
		draft.BankData = profileValidator.BankData{
			IsAadhaarSeeded: bank.IsAadhaarSeeded,
			AccountNumber:   bank.AccountNumber,
			IFSC:            bank.IFSC,
			BankName:        bank.BankName,
			Branch:          bank.Branch,
		}
	}

	return draft, &profile, nil
}
