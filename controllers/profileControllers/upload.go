package profileController

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"ipb/middleware"
)

const maxUploadSize = 2 * 1024 * 1024

var allowedUploadTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
}

// UploadCertificate validates a certificate upload and returns a placeholder
// URL. Actual object storage is an external collaborator; only the
// validation contract lives here.
func UploadCertificate(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No file provided", nil)
	}

	if file.Size > maxUploadSize {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File size must be less than 2MB", nil)
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedUploadTypes[contentType] {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File must be PDF, JPG, JPEG, or PNG", nil)
	}

	mockFileUrl := fmt.Sprintf("https://storage.example.com/uploads/%d_%s",
		time.Now().UnixMilli(), url.PathEscape(file.Filename))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "File uploaded successfully", fiber.Map{
		"fileName": file.Filename,
		"fileUrl":  mockFileUrl,
		"fileSize": file.Size,
	})
}
