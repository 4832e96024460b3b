package shipments

import (
	"fmt"
	"strconv"
	"time"

	"freightdesk-backend/internal/audit"
	"freightdesk-backend/internal/auth"
	"freightdesk-backend/internal/cache"
	"freightdesk-backend/internal/dashboard"
	"freightdesk-backend/internal/database"
	"freightdesk-backend/internal/models"
	"freightdesk-backend/internal/sheetsync"

	"github.com/gofiber/fiber/v2"
)

// CreateShipmentRequest: new consignment entry from the form.
type CreateShipmentRequest struct {
	Date              string  `json:"date"` // "2024-05-15"
	ConsignmentNumber string  `json:"consignment_number"`
	TruckNumber       string  `json:"truck_number"`
	Consignor         string  `json:"consignor"`
	ConsignorLocation string  `json:"consignor_location"`
	Consignee         string  `json:"consignee"`
	ConsigneeLocation string  `json:"consignee_location"`
	Weight            float64 `json:"weight"`
	RateType          string  `json:"rate_type"` // "calculated" (default) or "fixed"
	Rate              float64 `json:"rate"`      // per 1000 kg, ignored in fixed mode
	DeliveryCharge    float64 `json:"delivery_charge"`
	Freight           float64 `json:"freight"` // only read in fixed mode
	NumberOfArticles  string  `json:"number_of_articles"`
	NatureOfGoods     string  `json:"nature_of_goods"`
	Notes             string  `json:"notes"`
}

// UpdateShipmentRequest: partial update, nil fields are left untouched.
type UpdateShipmentRequest struct {
	Date              *string  `json:"date"`
	ConsignmentNumber *string  `json:"consignment_number"`
	TruckNumber       *string  `json:"truck_number"`
	Consignor         *string  `json:"consignor"`
	ConsignorLocation *string  `json:"consignor_location"`
	Consignee         *string  `json:"consignee"`
	ConsigneeLocation *string  `json:"consignee_location"`
	Weight            *float64 `json:"weight"`
	RateType          *string  `json:"rate_type"`
	Rate              *float64 `json:"rate"`
	DeliveryCharge    *float64 `json:"delivery_charge"`
	Freight           *float64 `json:"freight"`
	NumberOfArticles  *string  `json:"number_of_articles"`
	NatureOfGoods     *string  `json:"nature_of_goods"`
	Notes             *string  `json:"notes"`
}

type ShipmentResponse struct {
	ID                uint    `json:"id"`
	Date              string  `json:"date"`
	ConsignmentNumber string  `json:"consignment_number"`
	TruckNumber       string  `json:"truck_number"`
	Consignor         string  `json:"consignor"`
	ConsignorLocation string  `json:"consignor_location"`
	Consignee         string  `json:"consignee"`
	ConsigneeLocation string  `json:"consignee_location"`
	Weight            float64 `json:"weight"`
	Rate              string  `json:"rate"` // numeric text, or "Fix"
	RateType          string  `json:"rate_type"`
	DeliveryCharge    float64 `json:"delivery_charge"`
	Freight           float64 `json:"freight"`
	NumberOfArticles  string  `json:"number_of_articles"`
	NatureOfGoods     string  `json:"nature_of_goods"`
	Notes             string  `json:"notes"`
	CreatedAt         string  `json:"created_at"`
}

func toResponse(s models.Shipment) ShipmentResponse {
	rateType := RateTypeCalculated
	if s.FixedRate() {
		rateType = RateTypeFixed
	}
	return ShipmentResponse{
		ID:                s.ID,
		Date:              s.Date.UTC().Format("2006-01-02"),
		ConsignmentNumber: s.ConsignmentNumber,
		TruckNumber:       s.TruckNumber,
		Consignor:         s.Consignor,
		ConsignorLocation: s.ConsignorLocation,
		Consignee:         s.Consignee,
		ConsigneeLocation: s.ConsigneeLocation,
		Weight:            s.Weight,
		Rate:              s.Rate,
		RateType:          rateType,
		DeliveryCharge:    s.DeliveryCharge,
		Freight:           s.Freight,
		NumberOfArticles:  s.NumberOfArticles,
		NatureOfGoods:     s.NatureOfGoods,
		Notes:             s.Notes,
		CreatedAt:         s.CreatedAt.Format("2006-01-02 15:04:05"),
	}
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

// criteriaFromQuery builds the filter selection from the list query params.
func criteriaFromQuery(c *fiber.Ctx) FilterCriteria {
	fc := FilterCriteria{
		Search:            c.Query("search"),
		Consignor:         c.Query("consignor"),
		Consignee:         c.Query("consignee"),
		ConsignorLocation: c.Query("consignor_location"),
		ConsigneeLocation: c.Query("consignee_location"),
		TruckNumber:       c.Query("truck_number"),
		NatureOfGoods:     c.Query("nature_of_goods"),
	}
	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		fc.From = &from
	}
	if t, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		to := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC)
		fc.To = &to
	}
	return fc
}

// applyRate fills Rate and Freight on a shipment from the form values.
func applyRate(s *models.Shipment, rateType string, rate, freight float64) error {
	switch rateType {
	case RateTypeFixed:
		s.Rate = models.RateFixed
		s.Freight = freight
	case RateTypeCalculated, "":
		s.Rate = strconv.FormatFloat(rate, 'f', -1, 64)
		s.Freight = ComputeFreight(s.Weight, s.Rate, s.DeliveryCharge)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "rate_type must be 'calculated' or 'fixed'")
	}
	return nil
}

// POST /api/shipments
func CreateShipmentHandler(store cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateShipmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.ConsignmentNumber == "" || body.TruckNumber == "" {
			return fiber.NewError(fiber.StatusBadRequest, "consignment_number and truck_number are required")
		}
		if body.Weight < 0 || body.DeliveryCharge < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "weight and delivery_charge must not be negative")
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Date must be in 'YYYY-MM-DD' format")
		}

		shipment := models.Shipment{
			Date:              d,
			ConsignmentNumber: body.ConsignmentNumber,
			TruckNumber:       body.TruckNumber,
			Consignor:         body.Consignor,
			ConsignorLocation: body.ConsignorLocation,
			Consignee:         body.Consignee,
			ConsigneeLocation: body.ConsigneeLocation,
			Weight:            body.Weight,
			DeliveryCharge:    body.DeliveryCharge,
			NumberOfArticles:  body.NumberOfArticles,
			NatureOfGoods:     body.NatureOfGoods,
			Notes:             body.Notes,
		}
		if err := applyRate(&shipment, body.RateType, body.Rate, body.Freight); err != nil {
			return err
		}

		if err := database.DB.Create(&shipment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create shipment")
		}

		if userID, userName, err := getUserInfo(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "shipment",
				EntityID:    shipment.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Shipment added: %s, truck %s, freight %.2f", shipment.ConsignmentNumber, shipment.TruckNumber, shipment.Freight),
				Before:      nil,
				After:       shipment,
			})
		}

		sheetsync.SyncShipment(shipment)
		dashboard.InvalidateMetrics(c.Context(), store)

		return c.Status(fiber.StatusCreated).JSON(toResponse(shipment))
	}
}

// GET /api/shipments
// Supports ?search= plus the facet filters and an optional from/to range.
func ListShipmentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []models.Shipment
		if err := database.DB.
			Order("date DESC, created_at DESC").
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list shipments")
		}

		filtered := Filter(items, criteriaFromQuery(c))

		resp := make([]ShipmentResponse, 0, len(filtered))
		for _, s := range filtered {
			resp = append(resp, toResponse(s))
		}
		return c.JSON(resp)
	}
}

// GET /api/shipments/:id
func GetShipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var shipment models.Shipment
		if err := database.DB.First(&shipment, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Shipment not found")
		}

		return c.JSON(toResponse(shipment))
	}
}

// PUT /api/shipments/:id
func UpdateShipmentHandler(store cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var shipment models.Shipment
		if err := database.DB.First(&shipment, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Shipment not found")
		}
		before := shipment

		var body UpdateShipmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Date != nil {
			d, err := time.Parse("2006-01-02", *body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Date must be in 'YYYY-MM-DD' format")
			}
			shipment.Date = d
		}
		if body.ConsignmentNumber != nil {
			shipment.ConsignmentNumber = *body.ConsignmentNumber
		}
		if body.TruckNumber != nil {
			shipment.TruckNumber = *body.TruckNumber
		}
		if body.Consignor != nil {
			shipment.Consignor = *body.Consignor
		}
		if body.ConsignorLocation != nil {
			shipment.ConsignorLocation = *body.ConsignorLocation
		}
		if body.Consignee != nil {
			shipment.Consignee = *body.Consignee
		}
		if body.ConsigneeLocation != nil {
			shipment.ConsigneeLocation = *body.ConsigneeLocation
		}
		if body.Weight != nil {
			if *body.Weight < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "weight must not be negative")
			}
			shipment.Weight = *body.Weight
		}
		if body.DeliveryCharge != nil {
			if *body.DeliveryCharge < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "delivery_charge must not be negative")
			}
			shipment.DeliveryCharge = *body.DeliveryCharge
		}
		if body.NumberOfArticles != nil {
			shipment.NumberOfArticles = *body.NumberOfArticles
		}
		if body.NatureOfGoods != nil {
			shipment.NatureOfGoods = *body.NatureOfGoods
		}
		if body.Notes != nil {
			shipment.Notes = *body.Notes
		}

		// Rate handling. The effective mode is the requested one, falling
		// back to the stored one. Freight is recomputed only while in
		// calculated mode and only when one of its inputs changed; switching
		// mode alone never recomputes.
		fixed := shipment.FixedRate()
		if body.RateType != nil {
			switch *body.RateType {
			case RateTypeFixed:
				fixed = true
			case RateTypeCalculated:
				fixed = false
			default:
				return fiber.NewError(fiber.StatusBadRequest, "rate_type must be 'calculated' or 'fixed'")
			}
		}

		if fixed {
			shipment.Rate = models.RateFixed
			if body.Freight != nil {
				shipment.Freight = *body.Freight
			}
		} else {
			if body.Rate != nil {
				shipment.Rate = strconv.FormatFloat(*body.Rate, 'f', -1, 64)
			} else if before.FixedRate() {
				// leaving fixed mode without a new rate, rate becomes zero
				shipment.Rate = "0"
			}
			if body.Weight != nil || body.Rate != nil || body.DeliveryCharge != nil {
				shipment.Freight = ComputeFreight(shipment.Weight, shipment.Rate, shipment.DeliveryCharge)
			}
		}

		if err := database.DB.Save(&shipment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update shipment")
		}

		if userID, userName, err := getUserInfo(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "shipment",
				EntityID:    shipment.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Shipment updated: %s", shipment.ConsignmentNumber),
				Before:      before,
				After:       shipment,
			})
		}

		sheetsync.SyncShipment(shipment)
		dashboard.InvalidateMetrics(c.Context(), store)

		return c.JSON(toResponse(shipment))
	}
}

// DELETE /api/shipments/:id
// Hard delete, there is no soft-delete or recycle bin (undo goes through the
// audit log).
func DeleteShipmentHandler(store cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var shipment models.Shipment
		if err := database.DB.First(&shipment, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Shipment not found")
		}

		if err := database.DB.Delete(&shipment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete shipment")
		}

		if userID, userName, err := getUserInfo(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "shipment",
				EntityID:    shipment.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Shipment deleted: %s", shipment.ConsignmentNumber),
				Before:      shipment,
				After:       nil,
			})
		}

		sheetsync.DeleteShipment(shipment.ID)
		dashboard.InvalidateMetrics(c.Context(), store)

		return c.SendStatus(fiber.StatusNoContent)
	}
}
