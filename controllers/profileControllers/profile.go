package profileController

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ipb/database"
	"ipb/middleware"
	"ipb/models"
	"ipb/validators/profileValidator"
)

func requireUser(c *fiber.Ctx) (uint, bool) {
	userId, ok := c.Locals("userId").(uint)
	return userId, ok
}

// ensureProfile returns the user's profile row, creating an empty one on the
// first section save.
func ensureProfile(db *gorm.DB, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	profile = models.Profile{UserID: userID}
	if err := db.Create(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// parseDateString accepts yyyy-mm-dd, dd/mm/yyyy and a few close variants.
// Unparseable input stores no date rather than failing the save.
func parseDateString(value string) *time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}

	layouts := []string{
		"2006-01-02",
		"2006/01/02",
		"02/01/2006",
		"02-01-2006",
		time.RFC3339,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return &t
		}
	}
	return nil
}

func SavePersonal(c *fiber.Ctx) error {
	userId, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "You need to sign in to update your profile.", nil)
	}

	reqData := new(profileValidator.PersonalData)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if errors := profileValidator.ValidatePersonal(reqData); len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	db := database.Database.Db
	profile, err := ensureProfile(db, userId)
	if err != nil {
		log.Printf("Save personal data error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save personal information", nil)
	}

	permanent := reqData.PermanentAddress
	current := reqData.CurrentAddress
	if current.SameAsPermanent {
		// Mirror the permanent address instead of leaving current fields null
		current.Line1 = permanent.Line1
		current.Line2 = permanent.Line2
		current.State = permanent.State
		current.District = permanent.District
		current.Block = permanent.Block
		current.Village = permanent.Village
		current.Pin = permanent.Pin
	}

	profile.Name = reqData.Name
	profile.Dob = parseDateString(reqData.Dob)
	profile.Gender = reqData.Gender
	profile.FatherName = reqData.FatherName
	profile.Category = reqData.Category
	profile.HasDisability = reqData.Disability.HasDisability
	profile.DisabilityType = reqData.Disability.Type
	profile.PermanentAddressLine1 = permanent.Line1
	profile.PermanentAddressLine2 = permanent.Line2
	profile.PermanentState = permanent.State
	profile.PermanentDistrict = permanent.District
	profile.PermanentBlock = permanent.Block
	profile.PermanentVillage = permanent.Village
	profile.PermanentPin = permanent.Pin
	profile.CurrentAddressSameAsPermanent = current.SameAsPermanent
	profile.CurrentAddressLine1 = current.Line1
	profile.CurrentAddressLine2 = current.Line2
	profile.CurrentState = current.State
	profile.CurrentDistrict = current.District
	profile.CurrentBlock = current.Block
	profile.CurrentVillage = current.Village
	profile.CurrentPin = current.Pin

	if err := db.Save(profile).Error; err != nil {
		log.Printf("Save personal data error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save personal information", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Personal information saved successfully", reqData)
}

func SaveContact(c *fiber.Ctx) error {
	userId, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "You need to sign in to update your contact details.", nil)
	}

	reqData := new(profileValidator.ContactData)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if errors := profileValidator.ValidateContact(reqData); len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	db := database.Database.Db
	profile, err := ensureProfile(db, userId)
	if err != nil {
		log.Printf("Save contact data error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save contact information", nil)
	}

	// The verified stamp survives only when it belongs to the exact email
	// being stored; claiming a different email resets verification.
	var verifiedAt *time.Time
	if reqData.EmailVerified {
		if profile.Email == reqData.Email && profile.EmailVerifiedAt != nil {
			verifiedAt = profile.EmailVerifiedAt
		} else {
			now := time.Now()
			verifiedAt = &now
		}
	}

	profile.PrimaryMobile = reqData.PrimaryMobile
	profile.AlternateMobile = reqData.AlternateMobile
	profile.Email = reqData.Email
	profile.IsEmailVerified = reqData.EmailVerified
	profile.EmailVerifiedAt = verifiedAt

	if err := db.Save(profile).Error; err != nil {
		log.Printf("Save contact data error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save contact information", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Contact information saved successfully", reqData)
}

func SaveEducation(c *fiber.Ctx) error {
	userId, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "You need to sign in to update your education information.", nil)
	}

	reqData := new(struct {
		Educations []profileValidator.EducationData `json:"educations"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if errors := profileValidator.ValidateEducationList(reqData.Educations); len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	db := database.Database.Db
	profile, err := ensureProfile(db, userId)
	if err != nil {
		log.Printf("Save education data error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save education information", nil)
	}

	rows := make([]models.Education, 0, len(reqData.Educations))
	for _, e := range reqData.Educations {
		year := 0
		fmt.Sscanf(e.Year, "%d", &year)
		rows = append(rows, models.Education{
			ProfileID:           profile.ID,
			Level:               e.Level,
			Subject:             e.Subject,
			Board:               e.Board,
			Institute:           e.Institute,
			YearOfPassing:       year,
			MarksType:           e.MarksType,
			MarksValue:          e.MarksValue,
			CertificateUrl:      e.CertificateUrl,
			CertificateFileName: e.CertificateFileName,
			CertificateFileSize: e.CertificateFileSize,
		})
	}

	// Wholesale replace inside one transaction: a failure mid-insert must
	// leave the previous list intact, never a mix.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("profile_id = ?", profile.ID).Delete(&models.Education{}).Error; err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Save education data error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save education information", nil)
	}

	message := fmt.Sprintf("%d education qualification(s) saved successfully", len(reqData.Educations))
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, reqData.Educations)
}

func SaveBank(c *fiber.Ctx) error {
	userId, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "You need to sign in to update your bank information.", nil)
	}

	reqData := new(profileValidator.BankData)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if errors := profileValidator.ValidateBank(reqData); len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	db := database.Database.Db
	profile, err := ensureProfile(db, userId)
	if err != nil {
		log.Printf("Save bank data error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save bank information", nil)
	}

	// 1:1 row, so upsert on the profile key instead of replacing
	record := models.BankDetails{
		ProfileID:       profile.ID,
		IsAadhaarSeeded: reqData.IsAadhaarSeeded,
		AccountNumber:   reqData.AccountNumber,
		IFSC:            reqData.IFSC,
		BankName:        reqData.BankName,
		Branch:          reqData.Branch,
	}
	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "profile_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"is_aadhaar_seeded", "account_number", "ifsc", "bank_name", "branch", "updated_at",
		}),
	}).Create(&record).Error
	if err != nil {
		log.Printf("Save bank data error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save bank information", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bank information saved successfully", reqData)
}

func SaveSkills(c *fiber.Ctx) error {
	userId, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "You need to sign in to update your skills.", nil)
	}

	reqData := new(profileValidator.SkillsData)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if errors := profileValidator.ValidateSkills(reqData); len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	db := database.Database.Db
	profile, err := ensureProfile(db, userId)
	if err != nil {
		log.Printf("Save skills data error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save skills information", nil)
	}

	skillRows := make([]models.Skill, 0, len(reqData.Skills))
	for _, s := range reqData.Skills {
		skillRows = append(skillRows, models.Skill{ProfileID: profile.ID, Skill: s})
	}
	languageRows := make([]models.Language, 0, len(reqData.Languages))
	for _, l := range reqData.Languages {
		languageRows = append(languageRows, models.Language{
			ProfileID:   profile.ID,
			Name:        l.Name,
			Proficiency: l.Proficiency,
		})
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("profile_id = ?", profile.ID).Delete(&models.Skill{}).Error; err != nil {
			return err
		}
		if len(skillRows) > 0 {
			if err := tx.Create(&skillRows).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("profile_id = ?", profile.ID).Delete(&models.Language{}).Error; err != nil {
			return err
		}
		if len(languageRows) > 0 {
			if err := tx.Create(&languageRows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Save skills data error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save skills information", nil)
	}

	message := fmt.Sprintf("Skills and languages saved successfully (%d skills, %d languages)", len(reqData.Skills), len(reqData.Languages))
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, reqData)
}

// SaveCompleteProfile validates the assembled draft and flips the completion
// flag. It does not re-persist child data; every section is expected to have
// been saved individually already.
func SaveCompleteProfile(c *fiber.Ctx) error {
	userId, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "You need to sign in before submitting your profile.", nil)
	}

	reqData := new(profileValidator.ProfileDraft)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if errors := profileValidator.ValidateComplete(reqData); len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	db := database.Database.Db
	profile, err := ensureProfile(db, userId)
	if err != nil {
		log.Printf("Save complete profile error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save complete profile", nil)
	}

	now := time.Now()
	profile.IsComplete = true
	profile.CompletedAt = &now
	if err := db.Save(profile).Error; err != nil {
		log.Printf("Save complete profile error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save complete profile", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile completed successfully! You can now apply for internships.", fiber.Map{
		"profileId":      profile.ID,
		"completionDate": now.Format(time.RFC3339),
		"summary": fiber.Map{
			"sectionsCompleted":    len(profileValidator.Sections),
			"totalSections":        len(profileValidator.Sections),
			"completionPercentage": 100,
		},
	})
}

// GetProfile returns the stored profile assembled into the draft shape the
// profile builder consumes.
func GetProfile(c *fiber.Ctx) error {
	userId, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "You need to sign in to view your profile.", nil)
	}

	draft, profile, err := BuildDraft(database.Database.Db, userId)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile not started yet.", fiber.Map{
				"draft":      profileValidator.ProfileDraft{},
				"isComplete": false,
			})
		}
		log.Printf("Get profile error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load profile", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile loaded.", fiber.Map{
		"draft":       draft,
		"isComplete":  profile.IsComplete,
		"completedAt": profile.CompletedAt,
	})
}

// ProfileStatus computes the completion percentage for the submitted draft.
// Pure with respect to the store: the UI calls this on every change.
func ProfileStatus(c *fiber.Ctx) error {
	reqData := new(profileValidator.ProfileDraft)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	status := profileValidator.Status(reqData)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile status computed.", status)
}

// ValidateSection validates one named section of the submitted draft. The
// section set is closed; anything else is a validation error, not a crash.
func ValidateSection(c *fiber.Ctx) error {
	reqData := new(struct {
		Section string                        `json:"section"`
		Draft   profileValidator.ProfileDraft `json:"draft"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	errors, ok := profileValidator.ValidateSection(profileValidator.Section(reqData.Section), &reqData.Draft)
	if !ok {
		return middleware.ValidationErrorResponse(c, map[string]string{"section": "Invalid section name"})
	}
	if len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, fmt.Sprintf("%s section is valid", reqData.Section), nil)
}
