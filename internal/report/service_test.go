package report_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/robgonnella/sweep/internal/exception"
	mock_report "github.com/robgonnella/sweep/internal/mock/report"
	"github.com/robgonnella/sweep/internal/report"
	"github.com/robgonnella/sweep/internal/sweep"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestReportService(t *testing.T) {
	ctrl := gomock.NewController(t)

	defer ctrl.Finish()

	mockRepo := mock_report.NewMockRepo(ctrl)

	service := report.NewReportService(mockRepo)

	started := time.Now()

	sweepReport := &sweep.Report{
		ID:    "report-id",
		Host:  "localhost",
		IP:    "127.0.0.1",
		Ports: []uint16{22, 9999},
		Results: []sweep.ProbeResult{
			{Port: 22, State: sweep.StateOpen, Banner: "SSH-2.0", RTT: time.Millisecond},
			{Port: 9999, State: sweep.StateClosed},
		},
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
	}

	model := &report.ReportModel{
		ID:         "report-id",
		Host:       "localhost",
		IP:         "127.0.0.1",
		Ports:      datatypes.JSON(`[22,9999]`),
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
		Probes: []report.ProbeModel{
			{ReportID: "report-id", Port: 22, State: "open", Banner: "SSH-2.0", RTT: time.Millisecond},
			{ReportID: "report-id", Port: 9999, State: "closed"},
		},
	}

	t.Run("saves report", func(st *testing.T) {
		mockRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(m *report.ReportModel) (*report.ReportModel, error) {
			assert.Equal(st, model.ID, m.ID)
			assert.JSONEq(st, string(model.Ports), string(m.Ports))
			assert.Equal(st, model.Probes, m.Probes)
			return m, nil
		})

		err := service.Save(sweepReport)

		assert.NoError(st, err)
	})

	t.Run("returns repo error on save", func(st *testing.T) {
		mockRepo.EXPECT().Create(gomock.Any()).Return(nil, errors.New("disk full"))

		err := service.Save(sweepReport)

		assert.Error(st, err)
	})

	t.Run("gets report", func(st *testing.T) {
		mockRepo.EXPECT().Get("report-id").Return(model, nil)

		found, err := service.Get("report-id")

		assert.NoError(st, err)
		assert.Equal(st, sweepReport, found)
	})

	t.Run("returns record not found", func(st *testing.T) {
		mockRepo.EXPECT().Get("missing").Return(nil, exception.ErrRecordNotFound)

		found, err := service.Get("missing")

		assert.Nil(st, found)
		assert.ErrorIs(st, err, exception.ErrRecordNotFound)
	})

	t.Run("lists reports", func(st *testing.T) {
		mockRepo.EXPECT().GetAll().Return([]*report.ReportModel{model}, nil)

		reports, err := service.List()

		assert.NoError(st, err)
		assert.Equal(st, []*sweep.Report{sweepReport}, reports)
	})

	t.Run("deletes report", func(st *testing.T) {
		mockRepo.EXPECT().Delete("report-id").Return(nil)

		err := service.Delete("report-id")

		assert.NoError(st, err)
	})
}
