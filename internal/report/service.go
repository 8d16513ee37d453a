package report

import (
	"encoding/json"

	"github.com/robgonnella/sweep/internal/logger"
	"github.com/robgonnella/sweep/internal/sweep"
	"gorm.io/datatypes"
)

// ReportService implements the Service interface
type ReportService struct {
	repo Repo
	log  logger.Logger
}

// NewReportService returns a new instance of ReportService
func NewReportService(repo Repo) *ReportService {
	return &ReportService{
		repo: repo,
		log:  logger.New(),
	}
}

// Save stores a finalized sweep report
func (s *ReportService) Save(report *sweep.Report) error {
	model, err := reportToModel(report)

	if err != nil {
		return err
	}

	if _, err := s.repo.Create(model); err != nil {
		return err
	}

	s.log.Debug().Str("id", report.ID).Msg("saved sweep report")

	return nil
}

// Get returns a stored sweep report by id
func (s *ReportService) Get(id string) (*sweep.Report, error) {
	model, err := s.repo.Get(id)

	if err != nil {
		return nil, err
	}

	return modelToReport(model)
}

// List returns all stored sweep reports, newest first
func (s *ReportService) List() ([]*sweep.Report, error) {
	models, err := s.repo.GetAll()

	if err != nil {
		return nil, err
	}

	reports := []*sweep.Report{}

	for _, m := range models {
		r, err := modelToReport(m)

		if err != nil {
			return nil, err
		}

		reports = append(reports, r)
	}

	return reports, nil
}

// Delete removes a stored sweep report
func (s *ReportService) Delete(id string) error {
	return s.repo.Delete(id)
}

// helpers
func reportToModel(report *sweep.Report) (*ReportModel, error) {
	portsBytes, err := json.Marshal(report.Ports)

	if err != nil {
		return nil, err
	}

	probes := []ProbeModel{}

	for _, r := range report.Results {
		probes = append(probes, ProbeModel{
			ReportID: report.ID,
			Port:     r.Port,
			State:    string(r.State),
			Banner:   r.Banner,
			RTT:      r.RTT,
		})
	}

	return &ReportModel{
		ID:         report.ID,
		Host:       report.Host,
		IP:         report.IP,
		Ports:      datatypes.JSON(portsBytes),
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Cancelled:  report.Cancelled,
		Probes:     probes,
	}, nil
}

func modelToReport(model *ReportModel) (*sweep.Report, error) {
	ports := []uint16{}

	if len(model.Ports) > 0 {
		if err := json.Unmarshal([]byte(model.Ports), &ports); err != nil {
			return nil, err
		}
	}

	results := []sweep.ProbeResult{}

	for _, p := range model.Probes {
		results = append(results, sweep.ProbeResult{
			Port:   p.Port,
			State:  sweep.State(p.State),
			Banner: p.Banner,
			RTT:    p.RTT,
		})
	}

	return &sweep.Report{
		ID:         model.ID,
		Host:       model.Host,
		IP:         model.IP,
		Ports:      ports,
		Results:    results,
		StartedAt:  model.StartedAt,
		FinishedAt: model.FinishedAt,
		Cancelled:  model.Cancelled,
	}, nil
}
