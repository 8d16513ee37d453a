package report

import (
	"errors"

	"github.com/robgonnella/sweep/internal/exception"
	"gorm.io/gorm"
)

// rows per probe INSERT, keeps bind variables well under sqlite's limit
const probeBatchSize = 100

// SqliteRepo is our repo implementation for sqlite
type SqliteRepo struct {
	db *gorm.DB
}

// NewSqliteRepo returns a new report repo backed by db
func NewSqliteRepo(db *gorm.DB) *SqliteRepo {
	return &SqliteRepo{
		db: db,
	}
}

func orderedProbes(db *gorm.DB) *gorm.DB {
	return db.Order("port asc")
}

// Create stores a report along with its probes
func (r *SqliteRepo) Create(report *ReportModel) (*ReportModel, error) {
	if report.ID == "" {
		return nil, errors.New("report id cannot be empty")
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Probes").Create(report).Error; err != nil {
			return err
		}

		if len(report.Probes) == 0 {
			return nil
		}

		for i := range report.Probes {
			report.Probes[i].ReportID = report.ID
		}

		return tx.CreateInBatches(&report.Probes, probeBatchSize).Error
	})

	if err != nil {
		return nil, err
	}

	return report, nil
}

// Get returns a report and its probes from the db
func (r *SqliteRepo) Get(id string) (*ReportModel, error) {
	if id == "" {
		return nil, errors.New("report id cannot be empty")
	}

	report := ReportModel{}

	result := r.db.Preload("Probes", orderedProbes).First(&report, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, exception.ErrRecordNotFound
		}

		return nil, result.Error
	}

	return &report, nil
}

// GetAll returns all reports in db, newest first
func (r *SqliteRepo) GetAll() ([]*ReportModel, error) {
	reports := []*ReportModel{}

	result := r.db.Preload("Probes", orderedProbes).Order("started_at desc").Find(&reports)

	if result.Error != nil {
		return nil, result.Error
	}

	return reports, nil
}

// Delete removes a report and its probes from the db
func (r *SqliteRepo) Delete(id string) error {
	if id == "" {
		return errors.New("report id cannot be empty")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", id).Delete(&ProbeModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&ReportModel{ID: id})

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return exception.ErrRecordNotFound
		}

		return nil
	})
}
