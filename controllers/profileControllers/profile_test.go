package profileController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ipb/config"
	"ipb/database"
	"ipb/models"
	"ipb/utils"
)

const testUserID uint = 1

// setupTest wires an isolated in-memory database into the package globals
// and returns a fiber app with the profile routes mounted behind a stub
// auth middleware.
func setupTest(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	config.AppConfig = &config.Config{
		Env:                   "test",
		JWTKey:                "test-secret",
		SaltRound:             4,
		EkycOtpExpiryMinutes:  5,
		EmailOtpExpiryMinutes: 10,
		RedirectDelaySeconds:  3,
	}

	require.NoError(t, db.Create(&models.User{
		Name:     "Rahul Kumar Singh",
		Email:    "rahul@example.com",
		Mobile:   "9876543210",
		Password: "not-used",
	}).Error)

	app := fiber.New()
	withUser := func(c *fiber.Ctx) error {
		c.Locals("userId", testUserID)
		return c.Next()
	}

	app.Get("/profile", withUser, GetProfile)
	app.Post("/profile/personal", withUser, SavePersonal)
	app.Post("/profile/contact", withUser, SaveContact)
	app.Post("/profile/education", withUser, SaveEducation)
	app.Post("/profile/bank", withUser, SaveBank)
	app.Post("/profile/skills", withUser, SaveSkills)
	app.Post("/profile/complete", withUser, SaveCompleteProfile)
	app.Post("/profile/status", ProfileStatus)
	app.Post("/profile/validate", ValidateSection)
	app.Post("/profile/email/send-otp", withUser, SendEmailOTP)
	app.Post("/profile/email/verify-otp", withUser, VerifyEmailOTP)

	return app
}

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed
}

func personalPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":       "Rahul Kumar Singh",
		"dob":        "2002-05-14",
		"gender":     "male",
		"fatherName": "Suresh Singh",
		"category":   "general",
		"permanentAddress": map[string]interface{}{
			"line1":    "12 MG Road",
			"state":    "Bihar",
			"district": "Patna",
			"block":    "Phulwari",
			"village":  "Patna",
			"pin":      "800001",
		},
		"currentAddress": map[string]interface{}{
			"sameAsPermanent": true,
		},
		"disability": map[string]interface{}{"hasDisability": false},
	}
}

func educationPayload() map[string]interface{} {
	return map[string]interface{}{
		"educations": []map[string]interface{}{
			{
				"level":      "12th",
				"board":      "CBSE",
				"institute":  "DAV Public School",
				"year":       "2020",
				"marksType":  "percentage",
				"marksValue": "86",
			},
		},
	}
}

func TestSavePersonalRoundtrip(t *testing.T) {
	app := setupTest(t)

	code, resp := doJSON(t, app, http.MethodPost, "/profile/personal", personalPayload())
	require.Equal(t, http.StatusOK, code)
	require.True(t, resp.Status)

	var profile models.Profile
	require.NoError(t, database.Database.Db.Where("user_id = ?", testUserID).First(&profile).Error)
	require.Equal(t, "Suresh Singh", profile.FatherName)
	require.Equal(t, "general", profile.Category)
	require.NotNil(t, profile.Dob)

	// sameAsPermanent mirrors the permanent address into the current fields
	require.True(t, profile.CurrentAddressSameAsPermanent)
	require.Equal(t, "12 MG Road", profile.CurrentAddressLine1)
	require.Equal(t, "800001", profile.CurrentPin)
}

func TestSavePersonalValidationFailure(t *testing.T) {
	app := setupTest(t)

	payload := personalPayload()
	payload["fatherName"] = ""
	code, resp := doJSON(t, app, http.MethodPost, "/profile/personal", payload)

	require.Equal(t, http.StatusUnprocessableEntity, code)
	require.False(t, resp.Status)
	require.Equal(t, "Validation failed!", resp.Message)

	var fieldErrors map[string]string
	require.NoError(t, json.Unmarshal(resp.Data, &fieldErrors))
	require.Equal(t, "Father's/Guardian's name is required", fieldErrors["fatherName"])

	var count int64
	database.Database.Db.Model(&models.Profile{}).Where("user_id = ?", testUserID).Count(&count)
	require.Zero(t, count, "rejected save must not create a profile row")
}

func TestSaveEducationReplacesList(t *testing.T) {
	app := setupTest(t)

	code, _ := doJSON(t, app, http.MethodPost, "/profile/education", educationPayload())
	require.Equal(t, http.StatusOK, code)

	replacement := map[string]interface{}{
		"educations": []map[string]interface{}{
			{"level": "graduation", "board": "AKU", "institute": "Patna College", "year": "2024", "marksType": "cgpa", "marksValue": "8.2"},
			{"level": "12th", "board": "CBSE", "institute": "DAV Public School", "year": "2020", "marksType": "percentage", "marksValue": "86"},
		},
	}
	code, _ = doJSON(t, app, http.MethodPost, "/profile/education", replacement)
	require.Equal(t, http.StatusOK, code)

	var rows []models.Education
	require.NoError(t, database.Database.Db.Find(&rows).Error)
	require.Len(t, rows, 2, "old rows must be gone after replacement")
}

// A replacement list that trips the unique index mid-insert must roll back
// completely, leaving the previously saved skills untouched.
func TestSaveSkillsAllOrNothing(t *testing.T) {
	app := setupTest(t)

	first := map[string]interface{}{
		"skills":    []string{"Go", "SQL"},
		"languages": []map[string]interface{}{{"name": "Hindi", "proficiency": "native"}},
	}
	code, _ := doJSON(t, app, http.MethodPost, "/profile/skills", first)
	require.Equal(t, http.StatusOK, code)

	second := map[string]interface{}{
		"skills":    []string{"Python", "Python"},
		"languages": []map[string]interface{}{{"name": "Hindi", "proficiency": "native"}},
	}
	code, resp := doJSON(t, app, http.MethodPost, "/profile/skills", second)
	require.Equal(t, http.StatusInternalServerError, code)
	require.False(t, resp.Status)

	var skills []models.Skill
	require.NoError(t, database.Database.Db.Find(&skills).Error)
	require.Len(t, skills, 2)
	names := []string{skills[0].Skill, skills[1].Skill}
	require.ElementsMatch(t, []string{"Go", "SQL"}, names)
}

func TestSaveBankUpsertsSingleRow(t *testing.T) {
	app := setupTest(t)

	bank := map[string]interface{}{
		"accountNumber": "123456789012",
		"ifsc":          "sbin0001234",
		"bankName":      "State Bank of India",
		"branch":        "Patna Main",
	}
	code, _ := doJSON(t, app, http.MethodPost, "/profile/bank", bank)
	require.Equal(t, http.StatusOK, code)

	bank["branch"] = "Danapur"
	code, _ = doJSON(t, app, http.MethodPost, "/profile/bank", bank)
	require.Equal(t, http.StatusOK, code)

	var rows []models.BankDetails
	require.NoError(t, database.Database.Db.Find(&rows).Error)
	require.Len(t, rows, 1)
	require.Equal(t, "Danapur", rows[0].Branch)
	require.Equal(t, "SBIN0001234", rows[0].IFSC, "IFSC stored uppercased")
}

func TestEmailOTPVerifyFlow(t *testing.T) {
	app := setupTest(t)

	code, resp := doJSON(t, app, http.MethodPost, "/profile/email/send-otp", map[string]interface{}{
		"email": "Rahul@Example.com",
	})
	require.Equal(t, http.StatusOK, code)

	var sendData struct {
		MockOTP string `json:"mockOTP"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &sendData))
	require.Len(t, sendData.MockOTP, 6, "non-production responses echo the OTP")

	// Requesting an OTP claims the email but leaves it unverified
	var profile models.Profile
	require.NoError(t, database.Database.Db.Where("user_id = ?", testUserID).First(&profile).Error)
	require.Equal(t, "rahul@example.com", profile.Email)
	require.False(t, profile.IsEmailVerified)

	code, resp = doJSON(t, app, http.MethodPost, "/profile/email/verify-otp", map[string]interface{}{
		"email": "rahul@example.com",
		"otp":   sendData.MockOTP,
	})
	require.Equal(t, http.StatusOK, code)
	require.True(t, resp.Status)

	require.NoError(t, database.Database.Db.Where("user_id = ?", testUserID).First(&profile).Error)
	require.True(t, profile.IsEmailVerified)
	require.NotNil(t, profile.EmailVerifiedAt)

	// The OTP row is consumed; replaying the same code must fail
	code, resp = doJSON(t, app, http.MethodPost, "/profile/email/verify-otp", map[string]interface{}{
		"email": "rahul@example.com",
		"otp":   sendData.MockOTP,
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "OTP expired or not requested. Please resend OTP.", resp.Message)
}

func TestEmailOTPWrongCode(t *testing.T) {
	app := setupTest(t)

	code, resp := doJSON(t, app, http.MethodPost, "/profile/email/send-otp", map[string]interface{}{
		"email": "rahul@example.com",
	})
	require.Equal(t, http.StatusOK, code)

	var sendData struct {
		MockOTP string `json:"mockOTP"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &sendData))

	wrong := "000000"
	if sendData.MockOTP == wrong {
		wrong = "000001"
	}
	code, resp = doJSON(t, app, http.MethodPost, "/profile/email/verify-otp", map[string]interface{}{
		"email": "rahul@example.com",
		"otp":   wrong,
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "Invalid OTP. Please try again.", resp.Message)
}

func TestEmailOTPExpired(t *testing.T) {
	app := setupTest(t)

	code, resp := doJSON(t, app, http.MethodPost, "/profile/email/send-otp", map[string]interface{}{
		"email": "rahul@example.com",
	})
	require.Equal(t, http.StatusOK, code)

	var sendData struct {
		MockOTP string `json:"mockOTP"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &sendData))

	past := time.Now().Add(-time.Minute)
	require.NoError(t, database.Database.Db.Model(&models.EmailOTP{}).
		Where("user_id = ?", testUserID).
		Update("expires_at", past).Error)

	code, resp = doJSON(t, app, http.MethodPost, "/profile/email/verify-otp", map[string]interface{}{
		"email": "rahul@example.com",
		"otp":   sendData.MockOTP,
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "OTP expired. Please request a new OTP.", resp.Message)

	var count int64
	database.Database.Db.Model(&models.EmailOTP{}).Count(&count)
	require.Zero(t, count, "expired row is purged on detection")
}

func TestEmailOTPConsumedOnce(t *testing.T) {
	setupTest(t)
	db := database.Database.Db

	record := models.EmailOTP{
		UserID:    testUserID,
		Email:     "rahul@example.com",
		OtpHash:   utils.HashOTP("123456"),
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	require.NoError(t, db.Create(&record).Error)

	consumed, err := consumeEmailOTP(db, record.ID)
	require.NoError(t, err)
	require.True(t, consumed)

	consumed, err = consumeEmailOTP(db, record.ID)
	require.NoError(t, err)
	require.False(t, consumed, "a spent code is gone for every later caller")
}

func TestSaveContactPreservesVerifiedStampForSameEmail(t *testing.T) {
	app := setupTest(t)

	_, resp := doJSON(t, app, http.MethodPost, "/profile/email/send-otp", map[string]interface{}{
		"email": "rahul@example.com",
	})
	var sendData struct {
		MockOTP string `json:"mockOTP"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &sendData))
	code, _ := doJSON(t, app, http.MethodPost, "/profile/email/verify-otp", map[string]interface{}{
		"email": "rahul@example.com",
		"otp":   sendData.MockOTP,
	})
	require.Equal(t, http.StatusOK, code)

	var profile models.Profile
	require.NoError(t, database.Database.Db.Where("user_id = ?", testUserID).First(&profile).Error)
	verifiedAt := *profile.EmailVerifiedAt

	code, _ = doJSON(t, app, http.MethodPost, "/profile/contact", map[string]interface{}{
		"primaryMobile": "9876543210",
		"email":         "rahul@example.com",
		"emailVerified": true,
	})
	require.Equal(t, http.StatusOK, code)

	require.NoError(t, database.Database.Db.Where("user_id = ?", testUserID).First(&profile).Error)
	require.True(t, profile.IsEmailVerified)
	require.WithinDuration(t, verifiedAt, *profile.EmailVerifiedAt, time.Second)
}

func TestGetProfileBeforeFirstSave(t *testing.T) {
	app := setupTest(t)

	code, resp := doJSON(t, app, http.MethodGet, "/profile", nil)
	require.Equal(t, http.StatusOK, code)
	require.True(t, resp.Status)
	require.Equal(t, "Profile not started yet.", resp.Message)
}

func TestGetProfileAssemblesDraft(t *testing.T) {
	app := setupTest(t)

	code, _ := doJSON(t, app, http.MethodPost, "/profile/personal", personalPayload())
	require.Equal(t, http.StatusOK, code)
	code, _ = doJSON(t, app, http.MethodPost, "/profile/education", educationPayload())
	require.Equal(t, http.StatusOK, code)

	code, resp := doJSON(t, app, http.MethodGet, "/profile", nil)
	require.Equal(t, http.StatusOK, code)

	var data struct {
		Draft struct {
			PersonalData struct {
				FatherName string `json:"fatherName"`
				Dob        string `json:"dob"`
			} `json:"personalData"`
			Educations []struct {
				Year string `json:"year"`
			} `json:"educations"`
		} `json:"draft"`
		IsComplete bool `json:"isComplete"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Equal(t, "Suresh Singh", data.Draft.PersonalData.FatherName)
	require.Equal(t, "2002-05-14", data.Draft.PersonalData.Dob)
	require.Len(t, data.Draft.Educations, 1)
	require.Equal(t, "2020", data.Draft.Educations[0].Year)
	require.False(t, data.IsComplete)
}

func TestProfileStatusEndpoint(t *testing.T) {
	app := setupTest(t)

	code, resp := doJSON(t, app, http.MethodPost, "/profile/status", map[string]interface{}{
		"personalData": map[string]interface{}{
			"fatherName": "Suresh Singh",
			"category":   "general",
		},
	})
	require.Equal(t, http.StatusOK, code)

	var status struct {
		CompletionPercentage int `json:"completionPercentage"`
		CompletedSections    int `json:"completedSections"`
		TotalSections        int `json:"totalSections"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &status))
	require.Equal(t, 20, status.CompletionPercentage)
	require.Equal(t, 1, status.CompletedSections)
	require.Equal(t, 5, status.TotalSections)
}

func TestValidateSectionUnknown(t *testing.T) {
	app := setupTest(t)

	code, resp := doJSON(t, app, http.MethodPost, "/profile/validate", map[string]interface{}{
		"section": "hobbies",
		"draft":   map[string]interface{}{},
	})
	require.Equal(t, http.StatusUnprocessableEntity, code)

	var fieldErrors map[string]string
	require.NoError(t, json.Unmarshal(resp.Data, &fieldErrors))
	require.Equal(t, "Invalid section name", fieldErrors["section"])
}

func TestValidateSectionUsesStepRules(t *testing.T) {
	app := setupTest(t)

	// The step check accepts a personal section carrying only the two
	// required fields, even though the save endpoint would reject it.
	code, resp := doJSON(t, app, http.MethodPost, "/profile/validate", map[string]interface{}{
		"section": "personal",
		"draft": map[string]interface{}{
			"personalData": map[string]interface{}{
				"fatherName": "Suresh Singh",
				"category":   "general",
			},
		},
	})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "personal section is valid", resp.Message)

	code, _ = doJSON(t, app, http.MethodPost, "/profile/personal", map[string]interface{}{
		"fatherName": "Suresh Singh",
		"category":   "general",
	})
	require.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestSaveCompleteProfileFlipsFlag(t *testing.T) {
	app := setupTest(t)

	code, _ := doJSON(t, app, http.MethodPost, "/profile/personal", personalPayload())
	require.Equal(t, http.StatusOK, code)

	draft := map[string]interface{}{
		"personalData": personalPayload(),
		"contactData": map[string]interface{}{
			"primaryMobile": "9876543210",
			"email":         "rahul@example.com",
			"emailVerified": true,
		},
		"educations": educationPayload()["educations"],
		"bankData": map[string]interface{}{
			"accountNumber": "123456789012",
			"ifsc":          "SBIN0001234",
			"bankName":      "State Bank of India",
			"branch":        "Patna Main",
		},
		"skillsData": map[string]interface{}{
			"skills":    []string{"Go"},
			"languages": []map[string]interface{}{{"name": "Hindi", "proficiency": "native"}},
		},
	}
	code, resp := doJSON(t, app, http.MethodPost, "/profile/complete", draft)
	require.Equal(t, http.StatusOK, code)
	require.True(t, resp.Status)

	var profile models.Profile
	require.NoError(t, database.Database.Db.Where("user_id = ?", testUserID).First(&profile).Error)
	require.True(t, profile.IsComplete)
	require.NotNil(t, profile.CompletedAt)
}

func TestSaveCompleteProfileRejectsIncompleteDraft(t *testing.T) {
	app := setupTest(t)

	code, resp := doJSON(t, app, http.MethodPost, "/profile/complete", map[string]interface{}{})
	require.Equal(t, http.StatusUnprocessableEntity, code)

	var fieldErrors map[string]string
	require.NoError(t, json.Unmarshal(resp.Data, &fieldErrors))
	require.Contains(t, fieldErrors, "personal.name")
	require.Contains(t, fieldErrors, "bank.ifsc")
	require.Contains(t, fieldErrors, "skills.skills")
}
