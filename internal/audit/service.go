package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"freightdesk-backend/internal/database"
	"freightdesk-backend/internal/models"
	"freightdesk-backend/internal/sheetsync"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	// jsonb columns need the JSON null literal, not an empty string
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
		Undone:      false,
		IsUndone:    false,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("could not write audit log: %w", err)
	}

	return nil
}

// mirrorUndo reflects a reverted shipment change in the sheet mirror, the
// same way the direct mutation handlers do. Undoing a create removes the
// row; undoing an update or delete re-upserts the restored state.
func mirrorUndo(action models.AuditAction, entityID uint, restored models.Shipment) {
	switch action {
	case models.AuditActionCreate:
		sheetsync.DeleteShipment(entityID)
	case models.AuditActionUpdate, models.AuditActionDelete:
		sheetsync.SyncShipment(restored)
	}
}

// UndoLog reverts the change recorded by one audit log entry. Only shipment
// changes can be undone; resource changes are cheap to redo by hand.
func UndoLog(logID uint, userID uint, userName string) error {
	var entry models.AuditLog
	if err := database.DB.First(&entry, "id = ?", logID).Error; err != nil {
		return fmt.Errorf("log not found: %w", err)
	}

	if entry.IsUndone {
		return fmt.Errorf("this change has already been undone")
	}
	if entry.EntityType != "shipment" {
		return fmt.Errorf("only shipment changes can be undone")
	}

	switch entry.Action {
	case models.AuditActionCreate:
		if err := database.DB.Delete(&models.Shipment{}, "id = ?", entry.EntityID).Error; err != nil {
			return fmt.Errorf("could not delete shipment: %w", err)
		}
		mirrorUndo(entry.Action, entry.EntityID, models.Shipment{})

	case models.AuditActionUpdate:
		var before models.Shipment
		if err := json.Unmarshal([]byte(entry.BeforeData), &before); err != nil {
			return fmt.Errorf("could not decode previous state: %w", err)
		}
		if err := database.DB.Save(&before).Error; err != nil {
			return fmt.Errorf("could not restore shipment: %w", err)
		}
		mirrorUndo(entry.Action, entry.EntityID, before)

	case models.AuditActionDelete:
		var deleted models.Shipment
		if err := json.Unmarshal([]byte(entry.BeforeData), &deleted); err != nil {
			return fmt.Errorf("could not decode deleted state: %w", err)
		}
		// recreate under the original ID so later logs still line up
		if err := database.DB.Create(&deleted).Error; err != nil {
			return fmt.Errorf("could not recreate shipment: %w", err)
		}
		mirrorUndo(entry.Action, entry.EntityID, deleted)

	default:
		return fmt.Errorf("this action cannot be undone")
	}

	now := time.Now()
	entry.IsUndone = true
	entry.UndoneBy = &userID
	entry.UndoneAt = &now

	if err := database.DB.Save(&entry).Error; err != nil {
		return fmt.Errorf("could not update audit log: %w", err)
	}

	undoEntry := models.AuditLog{
		UserID:      userID,
		UserName:    userName,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		Action:      models.AuditActionUndo,
		Description: fmt.Sprintf("Undone: %s", entry.Description),
		BeforeData:  entry.AfterData,
		AfterData:   entry.BeforeData,
		Undone:      true,
		IsUndone:    false,
	}
	if err := database.DB.Create(&undoEntry).Error; err != nil {
		return fmt.Errorf("could not write undo log: %w", err)
	}

	return nil
}
