package sheetsync

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"freightdesk-backend/internal/database"
	"freightdesk-backend/internal/logger"
	"freightdesk-backend/internal/models"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// The mirror workbook holds one row per shipment, keyed by the ID column, so
// external spreadsheet users always see the current table. Rows are upserted
// on every shipment change and fully rewritten by the scheduled job.

const sheetName = "Shipments"

var sheetHeaders = []string{
	"ID", "Date", "Consignment Number", "Truck Number", "Consignee",
	"Consignee Location", "Weight", "Rate", "Delivery Charge", "Freight",
	"Consignor Location", "Number of Articles", "Nature of Goods",
	"Consignor", "Notes", "Last Updated",
}

type Status struct {
	SheetPath   string `json:"sheet_path"`
	RowCount    int    `json:"row_count"`
	LastRunID   string `json:"last_run_id,omitempty"`
	LastRunAt   string `json:"last_run_at,omitempty"`
	LastRunRows int    `json:"last_run_rows"`
	LastError   string `json:"last_error,omitempty"`
}

type Service struct {
	path string

	mu          sync.Mutex
	lastRunID   string
	lastRunAt   time.Time
	lastRunRows int
	lastError   string
}

func NewService(path string) *Service {
	return &Service{path: path}
}

var defaultService *Service

// Init sets up the package-level service used by the handlers and the
// shipment mutation hooks.
func Init(path string) {
	defaultService = NewService(path)
}

func rowValues(s models.Shipment) []interface{} {
	return []interface{}{
		int(s.ID),
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
		time.Now().UTC().Format(time.RFC3339),
	}
}

// open loads the workbook, creating it with a header row when missing.
func (s *Service) open() (*excelize.File, error) {
	if _, err := os.Stat(s.path); err == nil {
		f, err := excelize.OpenFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("could not open mirror workbook: %w", err)
		}
		return f, nil
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)
	if err := writeRow(f, 1, headerValues()); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func headerValues() []interface{} {
	vals := make([]interface{}, len(sheetHeaders))
	for i, h := range sheetHeaders {
		vals[i] = h
	}
	return vals
}

func writeRow(f *excelize.File, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("could not address cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return fmt.Errorf("could not write cell %s: %w", cell, err)
		}
	}
	return nil
}

// findRow returns the 1-indexed workbook row holding the shipment, or -1.
func findRow(f *excelize.File, id uint) (int, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return -1, fmt.Errorf("could not read mirror workbook: %w", err)
	}
	want := strconv.FormatUint(uint64(id), 10)
	for i := 1; i < len(rows); i++ { // skip header
		if len(rows[i]) > 0 && rows[i][0] == want {
			return i + 1, nil
		}
	}
	return -1, nil
}

// SyncShipment upserts one shipment row.
func (s *Service) SyncShipment(sh models.Shipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	row, err := findRow(f, sh.ID)
	if err != nil {
		return err
	}
	if row < 0 {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return fmt.Errorf("could not read mirror workbook: %w", err)
		}
		row = len(rows) + 1
	}

	if err := writeRow(f, row, rowValues(sh)); err != nil {
		return err
	}
	return s.save(f)
}

// DeleteShipment removes the shipment's row, if present.
func (s *Service) DeleteShipment(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	row, err := findRow(f, id)
	if err != nil {
		return err
	}
	if row < 0 {
		return nil
	}

	if err := f.RemoveRow(sheetName, row); err != nil {
		return fmt.Errorf("could not remove row: %w", err)
	}
	return s.save(f)
}

// SyncAll rewrites the whole workbook from the given collection.
func (s *Service) SyncAll(items []models.Shipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	runID := uuid.NewString()

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", sheetName)

	err := writeRow(f, 1, headerValues())
	for i := 0; err == nil && i < len(items); i++ {
		err = writeRow(f, i+2, rowValues(items[i]))
	}
	if err == nil {
		err = s.save(f)
	}

	s.lastRunID = runID
	s.lastRunAt = time.Now().UTC()
	s.lastRunRows = len(items)
	if err != nil {
		s.lastError = err.Error()
		return err
	}
	s.lastError = ""
	return nil
}

func (s *Service) save(f *excelize.File) error {
	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("could not save mirror workbook: %w", err)
	}
	return nil
}

// ReadAll returns the mirrored rows (header excluded) as shipments. Numeric
// cells that fail to parse come back as zero.
func (s *Service) ReadAll() ([]models.Shipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err != nil {
		return []models.Shipment{}, nil
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("could not open mirror workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("could not read mirror workbook: %w", err)
	}

	out := make([]models.Shipment, 0, len(rows))
	for i := 1; i < len(rows); i++ {
		out = append(out, shipmentFromRow(rows[i]))
	}
	return out, nil
}

func shipmentFromRow(row []string) models.Shipment {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	num := func(i int) float64 {
		v, err := strconv.ParseFloat(cell(i), 64)
		if err != nil {
			return 0
		}
		return v
	}

	id, _ := strconv.ParseUint(cell(0), 10, 64)
	date, err := time.Parse("2006-01-02", cell(1))
	if err != nil {
		date = time.Time{}
	}

	return models.Shipment{
		ID:                uint(id),
		Date:              date,
		ConsignmentNumber: cell(2),
		TruckNumber:       cell(3),
		Consignee:         cell(4),
		ConsigneeLocation: cell(5),
		Weight:            num(6),
		Rate:              cell(7),
		DeliveryCharge:    num(8),
		Freight:           num(9),
		ConsignorLocation: cell(10),
		NumberOfArticles:  cell(11),
		NatureOfGoods:     cell(12),
		Consignor:         cell(13),
		Notes:             cell(14),
	}
}

// Status reports the mirror's current state.
func (s *Service) Status() Status {
	rows, err := s.ReadAll()

	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		SheetPath:   s.path,
		RowCount:    len(rows),
		LastRunID:   s.lastRunID,
		LastRunRows: s.lastRunRows,
		LastError:   s.lastError,
	}
	if err != nil {
		st.LastError = err.Error()
	}
	if !s.lastRunAt.IsZero() {
		st.LastRunAt = s.lastRunAt.Format(time.RFC3339)
	}
	return st
}

// RunFull mirrors the whole shipments table.
func (s *Service) RunFull() error {
	var items []models.Shipment
	if err := database.DB.
		Order("date ASC, created_at ASC").
		Find(&items).Error; err != nil {
		return fmt.Errorf("could not load shipments: %w", err)
	}
	return s.SyncAll(items)
}

// Package-level wrappers over the default service. They are no-ops until
// Init has run, so tests of the HTTP handlers do not need a workbook.

func SyncShipment(sh models.Shipment) {
	if defaultService == nil {
		return
	}
	if err := defaultService.SyncShipment(sh); err != nil {
		logger.Get().Warn("Sheet mirror upsert failed", zap.Uint("shipment_id", sh.ID), zap.Error(err))
	}
}

func DeleteShipment(id uint) {
	if defaultService == nil {
		return
	}
	if err := defaultService.DeleteShipment(id); err != nil {
		logger.Get().Warn("Sheet mirror delete failed", zap.Uint("shipment_id", id), zap.Error(err))
	}
}

func RunFull() error {
	if defaultService == nil {
		return fmt.Errorf("sheet sync is not configured")
	}
	return defaultService.RunFull()
}

func GetStatus() (Status, error) {
	if defaultService == nil {
		return Status{}, fmt.Errorf("sheet sync is not configured")
	}
	return defaultService.Status(), nil
}
