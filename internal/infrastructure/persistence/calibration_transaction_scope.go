package persistence

import (
	"context"

	appcal "github.com/fabos/server/internal/application/calibration"
	"github.com/fabos/server/internal/domain/calibration"
	"gorm.io/gorm"
)

// GormCalibrationTransactionScope implements the calibration TransactionScope
// using GORM transactions. Activating a calibration deactivates its
// predecessor and inserts the replacement atomically.
type GormCalibrationTransactionScope struct {
	db *gorm.DB
}

// NewGormCalibrationTransactionScope creates a new GormCalibrationTransactionScope
func NewGormCalibrationTransactionScope(db *gorm.DB) *GormCalibrationTransactionScope {
	return &GormCalibrationTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormCalibrationTransactionScope) Execute(ctx context.Context, fn func(repos appcal.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCalibrationRepositories{tx: tx})
	})
}

type gormCalibrationRepositories struct {
	tx *gorm.DB
}

// CalibrationRepo returns the calibration repository scoped to the current transaction
func (r *gormCalibrationRepositories) CalibrationRepo() calibration.Repository {
	return NewGormCalibrationRepository(r.tx)
}

var _ appcal.TransactionScope = (*GormCalibrationTransactionScope)(nil)
var _ appcal.TransactionalRepositories = (*gormCalibrationRepositories)(nil)
