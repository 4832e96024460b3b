package resources

import (
	"fmt"
	"strings"

	"freightdesk-backend/internal/audit"
	"freightdesk-backend/internal/auth"
	"freightdesk-backend/internal/database"
	"freightdesk-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ResourceListResponse mirrors the six dropdown lists, each in the
// user-maintained order.
type ResourceListResponse struct {
	Consignors         []string `json:"consignors"`
	Consignees         []string `json:"consignees"`
	ConsignorLocations []string `json:"consignor_locations"`
	ConsigneeLocations []string `json:"consignee_locations"`
	TruckNumbers       []string `json:"truck_numbers"`
	NatureOfGoods      []string `json:"nature_of_goods"`
}

type AddResourceRequest struct {
	Value string `json:"value"`
}

func getUserInfo(c *fiber.Ctx) (uint, string, error) {
	userIDVal := c.Locals(auth.CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusForbidden, "Could not read user info")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "User not found")
	}

	return userID, user.Name, nil
}

func parseType(c *fiber.Ctx) (models.ResourceType, error) {
	t := models.ResourceType(c.Params("type"))
	if !models.ValidResourceType(t) {
		return "", fiber.NewError(fiber.StatusBadRequest, "Unknown resource type")
	}
	return t, nil
}

// GET /api/resources
func ListResourcesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var entries []models.ResourceEntry
		if err := database.DB.
			Order("type ASC, position ASC").
			Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list resources")
		}

		resp := ResourceListResponse{
			Consignors:         []string{},
			Consignees:         []string{},
			ConsignorLocations: []string{},
			ConsigneeLocations: []string{},
			TruckNumbers:       []string{},
			NatureOfGoods:      []string{},
		}
		for _, e := range entries {
			switch e.Type {
			case models.ResourceConsignors:
				resp.Consignors = append(resp.Consignors, e.Value)
			case models.ResourceConsignees:
				resp.Consignees = append(resp.Consignees, e.Value)
			case models.ResourceConsignorLocations:
				resp.ConsignorLocations = append(resp.ConsignorLocations, e.Value)
			case models.ResourceConsigneeLocations:
				resp.ConsigneeLocations = append(resp.ConsigneeLocations, e.Value)
			case models.ResourceTruckNumbers:
				resp.TruckNumbers = append(resp.TruckNumbers, e.Value)
			case models.ResourceNatureOfGoods:
				resp.NatureOfGoods = append(resp.NatureOfGoods, e.Value)
			}
		}

		return c.JSON(resp)
	}
}

// POST /api/resources/:type
func AddResourceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rtype, err := parseType(c)
		if err != nil {
			return err
		}

		var body AddResourceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		value := strings.TrimSpace(body.Value)
		if value == "" {
			return fiber.NewError(fiber.StatusBadRequest, "value is required")
		}

		// duplicate check is case-sensitive exact match
		var count int64
		database.DB.Model(&models.ResourceEntry{}).
			Where("type = ? AND value = ?", rtype, value).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Value already exists in this list")
		}

		var maxPos int
		database.DB.Model(&models.ResourceEntry{}).
			Where("type = ?", rtype).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPos)

		entry := models.ResourceEntry{
			Type:     rtype,
			Value:    value,
			Position: maxPos + 1,
		}
		if err := database.DB.Create(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not add value")
		}

		if userID, userName, err := getUserInfo(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "resource",
				EntityID:    entry.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Resource added: %s / %s", rtype, value),
				Before:      nil,
				After:       entry,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"type":  entry.Type,
			"value": entry.Value,
		})
	}
}

// DELETE /api/resources/:type?value=...
// Shipments referencing the value are left untouched.
func RemoveResourceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rtype, err := parseType(c)
		if err != nil {
			return err
		}

		value := c.Query("value")
		if value == "" {
			return fiber.NewError(fiber.StatusBadRequest, "value query parameter is required")
		}

		var entry models.ResourceEntry
		if err := database.DB.
			Where("type = ? AND value = ?", rtype, value).
			First(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Value not found in this list")
		}

		if err := database.DB.Delete(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not remove value")
		}

		if userID, userName, err := getUserInfo(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "resource",
				EntityID:    entry.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Resource removed: %s / %s", rtype, value),
				Before:      entry,
				After:       nil,
			})
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
