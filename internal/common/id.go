package common

import (
	"github.com/google/uuid"
)

// NewProjectID generates a unique project ID with the "proj_" prefix
// Format: proj_<uuid>
func NewProjectID() string {
	return "proj_" + uuid.New().String()
}

// NewFolderID generates a unique planner folder ID with the "fold_" prefix
func NewFolderID() string {
	return "fold_" + uuid.New().String()
}

// NewPlanItemID generates a unique plan item ID with the "item_" prefix
func NewPlanItemID() string {
	return "item_" + uuid.New().String()
}
