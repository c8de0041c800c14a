package dashboardController

import (
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"

	profileController "ipb/controllers/profileControllers"
	"ipb/database"
	"ipb/middleware"
	"ipb/models"
	"ipb/validators/profileValidator"
)

func requireUser(c *fiber.Ctx) (uint, bool) {
	userId, ok := c.Locals("userId").(uint)
	return userId, ok
}

// Stats returns the headline counters for the dashboard landing card:
// open internships, the student's application tallies and the live
// profile completion percentage.
func Stats(c *fiber.Ctx) error {
	userId, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "You need to sign in to view your dashboard.", nil)
	}

	db := database.Database.Db

	var openInternships int64
	db.Model(&models.Internship{}).Where("is_open = ? AND is_deleted = ?", true, false).Count(&openInternships)

	var totalApplications int64
	db.Model(&models.Application{}).Where("user_id = ? AND is_deleted = ?", userId, false).Count(&totalApplications)

	var shortlisted int64
	db.Model(&models.Application{}).
		Where("user_id = ? AND is_deleted = ? AND status = ?", userId, false, models.ApplicationShortlisted).
		Count(&shortlisted)

	var selected int64
	db.Model(&models.Application{}).
		Where("user_id = ? AND is_deleted = ? AND status = ?", userId, false, models.ApplicationSelected).
		Count(&selected)

	profileCompletion := 0
	draft, _, err := profileController.BuildDraft(db, userId)
	if err == nil {
		profileCompletion = profileValidator.Status(draft).CompletionPercentage
	} else if err != gorm.ErrRecordNotFound {
		log.Printf("Dashboard stats error: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard statistics fetched successfully", fiber.Map{
		"openInternships":   openInternships,
		"totalApplications": totalApplications,
		"shortlisted":       shortlisted,
		"selected":          selected,
		"profileCompletion": profileCompletion,
	})
}

// Applications lists the student's applications newest first, with the
// internship joined in.
func Applications(c *fiber.Ctx) error {
	userId, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "You need to sign in to view your applications.", nil)
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	var applications []models.Application
	err := db.Preload("Internship").
		Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("applied_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&applications).Error
	if err != nil {
		log.Printf("Applications list error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch applications.", nil)
	}

	var total int64
	db.Model(&models.Application{}).Where("user_id = ? AND is_deleted = ?", userId, false).Count(&total)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Applications fetched successfully", fiber.Map{
		"list":  applications,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

type recommendation struct {
	Internship models.Internship `json:"internship"`
	MatchScore int               `json:"matchScore"`
}

// Recommendations ranks open internships by overlap between the student's
// saved skills and the internship's skill list. An internship with no skill
// tags scores zero and sinks to the bottom.
func Recommendations(c *fiber.Ctx) error {
	userId, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "You need to sign in to view recommendations.", nil)
	}

	limit, _ := strconv.Atoi(c.Query("limit", "5"))
	if limit < 1 || limit > 20 {
		limit = 5
	}

	db := database.Database.Db

	studentSkills := make(map[string]bool)
	var profile models.Profile
	if err := db.Preload("Skills").Where("user_id = ?", userId).First(&profile).Error; err == nil {
		for _, s := range profile.Skills {
			studentSkills[strings.ToLower(strings.TrimSpace(s.Skill))] = true
		}
	}

	var internships []models.Internship
	if err := db.Where("is_open = ? AND is_deleted = ?", true, false).Find(&internships).Error; err != nil {
		log.Printf("Recommendations error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch recommendations.", nil)
	}

	recommendations := make([]recommendation, 0, len(internships))
	for _, internship := range internships {
		recommendations = append(recommendations, recommendation{
			Internship: internship,
			MatchScore: matchScore(studentSkills, internship.Skills),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].MatchScore > recommendations[j].MatchScore
	})
	if len(recommendations) > limit {
		recommendations = recommendations[:limit]
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Recommendations fetched successfully", fiber.Map{
		"list": recommendations,
	})
}

// matchScore is the percentage of the internship's skill tags the student
// already has.
func matchScore(studentSkills map[string]bool, required string) int {
	tags := strings.Split(required, ",")
	wanted := 0
	matched := 0
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		wanted++
		if studentSkills[tag] {
			matched++
		}
	}
	if wanted == 0 {
		return 0
	}
	return matched * 100 / wanted
}

// Events returns the student's upcoming calendar entries, soonest first.
func Events(c *fiber.Ctx) error {
	userId, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "You need to sign in to view your events.", nil)
	}

	var events []models.CalendarEvent
	err := database.Database.Db.
		Where("user_id = ? AND date >= ?", userId, now.BeginningOfDay()).
		Order("date ASC").
		Limit(20).
		Find(&events).Error
	if err != nil {
		log.Printf("Events list error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch events.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Events fetched successfully", fiber.Map{
		"list": events,
	})
}

type monthlyProgress struct {
	Month       string `json:"month"`
	Applied     int64  `json:"applied"`
	Shortlisted int64  `json:"shortlisted"`
	Selected    int64  `json:"selected"`
}

// Progress aggregates the last six months of application activity into
// per-month counters for the progress chart.
func Progress(c *fiber.Ctx) error {
	userId, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "You need to sign in to view your progress.", nil)
	}

	db := database.Database.Db

	months := make([]monthlyProgress, 0, 6)
	for i := 5; i >= 0; i-- {
		monthStart := now.BeginningOfMonth().AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0)

		entry := monthlyProgress{Month: monthStart.Format("Jan 2006")}
		base := db.Model(&models.Application{}).
			Where("user_id = ? AND is_deleted = ? AND applied_date >= ? AND applied_date < ?", userId, false, monthStart, monthEnd)
		base.Session(&gorm.Session{}).Count(&entry.Applied)
		base.Session(&gorm.Session{}).Where("status = ?", models.ApplicationShortlisted).Count(&entry.Shortlisted)
		base.Session(&gorm.Session{}).Where("status = ?", models.ApplicationSelected).Count(&entry.Selected)

		months = append(months, entry)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully", fiber.Map{
		"months": months,
	})
}

type activityItem struct {
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// Activity builds a recent-activity feed from application status changes.
func Activity(c *fiber.Ctx) error {
	userId, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "You need to sign in to view your activity.", nil)
	}

	var applications []models.Application
	err := database.Database.Db.Preload("Internship").
		Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("updated_at DESC").
		Limit(10).
		Find(&applications).Error
	if err != nil {
		log.Printf("Activity feed error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch activity.", nil)
	}

	feed := make([]activityItem, 0, len(applications))
	for _, application := range applications {
		item := activityItem{
			Type:      "application",
			Title:     application.Internship.Title,
			Timestamp: application.UpdatedAt,
		}
		switch application.Status {
		case models.ApplicationShortlisted:
			item.Description = "You were shortlisted for " + application.Internship.Title + " at " + application.Internship.Company
		case models.ApplicationSelected:
			item.Description = "Congratulations! You were selected for " + application.Internship.Title + " at " + application.Internship.Company
		case models.ApplicationRejected:
			item.Description = "Your application for " + application.Internship.Title + " was not taken forward"
		default:
			item.Description = "You applied to " + application.Internship.Title + " at " + application.Internship.Company
		}
		feed = append(feed, item)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Recent activity fetched successfully", fiber.Map{
		"list": feed,
	})
}
