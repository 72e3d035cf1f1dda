package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// SchemaVersion is stored in tool_info and bumped on incompatible schema changes
const SchemaVersion = 1

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&ToolInfo{},
	&Layout{},
	&MarkerRow{},
}

////////////////////////
// SYSTEM MODELS
////////////////////////

// ToolInfo identifies the schema a database was created with
type ToolInfo struct {
	gorm.Model
	SchemaVersion int    `json:"schemaVersion"`
	Description   string `json:"description" gorm:"size:255"`
}

func (*ToolInfo) TableName() string {
	return "tool_info"
}

////////////////////////
// LAYOUT MODELS
////////////////////////

// Layout is a named, saved set of markers for one plotting surface.
// Saving under an existing name replaces its markers.
type Layout struct {
	ID      uint              `json:"id" gorm:"primarykey;autoIncrement;"`
	UUID    uuid.UUID         `json:"uuid" gorm:"type:varchar(36);uniqueIndex:idx_layout_uuid"`
	Name    string            `json:"name" gorm:"size:128;uniqueIndex:idx_layout_name"`
	SavedAt time.Time         `json:"savedAt"`
	Meta    datatypes.JSONMap `json:"meta"` // surface info such as the axis range at save time

	Markers []MarkerRow `json:"markers" gorm:"foreignKey:LayoutID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (*Layout) TableName() string {
	return "layouts"
}

// MarkerRow is one persisted marker. Seq keeps file order, which pairs span endpoints.
type MarkerRow struct {
	ID       uint `json:"id" gorm:"primarykey;autoIncrement;"`
	LayoutID uint `json:"layoutId" gorm:"index:idx_marker_row_layout_id"`
	Seq      int  `json:"seq"`

	DisplayID int     `json:"displayId"`
	Tag       string  `json:"tag" gorm:"size:256"`
	Position  float64 `json:"position"`
	Type      string  `json:"type" gorm:"size:16"` // standalone or span_endpoint
	Mode      string  `json:"mode" gorm:"size:16"` // interact or fixed
	Color     string  `json:"color" gorm:"size:32"`
}

func (*MarkerRow) TableName() string {
	return "marker_rows"
}
