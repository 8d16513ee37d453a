package report

import "github.com/robgonnella/sweep/internal/sweep"

//go:generate mockgen -destination=../mock/report/mock_report.go -package=mock_report . Repo,Service

// Repo interface representing access to stored sweep reports
type Repo interface {
	Create(report *ReportModel) (*ReportModel, error)
	Get(id string) (*ReportModel, error)
	GetAll() ([]*ReportModel, error)
	Delete(id string) error
}

// Service interface for storing and retrieving sweep reports
type Service interface {
	Save(report *sweep.Report) error
	Get(id string) (*sweep.Report, error)
	List() ([]*sweep.Report, error)
	Delete(id string) error
}
