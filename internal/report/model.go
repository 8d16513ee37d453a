package report

import (
	"time"

	"gorm.io/datatypes"
)

// ReportModel database representation of a sweep report
type ReportModel struct {
	ID         string `gorm:"primaryKey"`
	Host       string
	IP         string `gorm:"index"`
	Ports      datatypes.JSON
	StartedAt  time.Time `gorm:"index"`
	FinishedAt time.Time
	Cancelled  bool
	Probes     []ProbeModel `gorm:"foreignKey:ReportID"`
}

// TableName overrides the default gorm table name
func (ReportModel) TableName() string {
	return "reports"
}

// ProbeModel database representation of a single probe result
type ProbeModel struct {
	ID       uint   `gorm:"primaryKey"`
	ReportID string `gorm:"index"`
	Port     uint16
	State    string
	Banner   string
	RTT      time.Duration
}

// TableName overrides the default gorm table name
func (ProbeModel) TableName() string {
	return "probes"
}
