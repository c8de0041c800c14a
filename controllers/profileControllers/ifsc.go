package profileController

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"ipb/middleware"
	"ipb/utils"
	"ipb/validators/profileValidator"
)

// ValidateIFSC checks the routing-code format and then tries to enrich it
// with bank name and branch from the external directory. Lookup failure is
// not an error: format validation alone is accepted and the caller proceeds
// without the enrichment.
func ValidateIFSC(c *fiber.Ctx) error {
	reqData := new(struct {
		IfscCode string `json:"ifscCode"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	ifsc := strings.ToUpper(strings.TrimSpace(reqData.IfscCode))
	if !profileValidator.IsValidIFSC(ifsc) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid IFSC code format", nil)
	}

	details, err := utils.LookupIFSC(ifsc)
	if err != nil {
		log.Printf("IFSC lookup failed, falling back to format validation only: %v", err)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "IFSC code format looks valid", fiber.Map{
			"ifscCode": ifsc,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "IFSC code is valid", fiber.Map{
		"ifscCode":    ifsc,
		"bankDetails": details,
	})
}
