package shipments

import (
	"fmt"
	"time"

	"freightdesk-backend/internal/database"
	"freightdesk-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Shipments"

var exportHeaders = []string{
	"Date", "Consignment Number", "Truck Number", "Consignee",
	"Consignee Location", "Weight (kg)", "Rate", "Delivery Charge",
	"Freight", "Consignor Location", "No. of Articles", "Nature of Goods",
	"Consignor", "Notes",
}

func exportRow(s models.Shipment) []interface{} {
	return []interface{}{
		s.Date.UTC().Format("2006-01-02"),
		s.ConsignmentNumber,
		s.TruckNumber,
		s.Consignee,
		s.ConsigneeLocation,
		s.Weight,
		s.Rate,
		s.DeliveryCharge,
		s.Freight,
		s.ConsignorLocation,
		s.NumberOfArticles,
		s.NatureOfGoods,
		s.Consignor,
		s.Notes,
	}
}

// GET /api/shipments/export
// Streams the filtered listing as an .xlsx file. Accepts the same query
// parameters as GET /api/shipments.
func ExportShipmentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []models.Shipment
		if err := database.DB.
			Order("date DESC, created_at DESC").
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list shipments")
		}

		filtered := Filter(items, criteriaFromQuery(c))

		f := excelize.NewFile()
		defer f.Close()
		f.SetSheetName("Sheet1", exportSheet)

		for col, h := range exportHeaders {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not build export file")
			}
			if err := f.SetCellValue(exportSheet, cell, h); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not build export file")
			}
		}

		for i, s := range filtered {
			for col, v := range exportRow(s) {
				cell, err := excelize.CoordinatesToCellName(col+1, i+2)
				if err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Could not build export file")
				}
				if err := f.SetCellValue(exportSheet, cell, v); err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Could not build export file")
				}
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not write export file")
		}

		filename := fmt.Sprintf("shipments_%s.xlsx", time.Now().UTC().Format("2006-01-02_15-04-05"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
		return c.Send(buf.Bytes())
	}
}
