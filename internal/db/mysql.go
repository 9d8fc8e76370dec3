package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQL returns a connected GORM DB instance. TranslateError is enabled so
// unique-constraint violations surface as gorm.ErrDuplicatedKey and can be
// mapped to duplicate-email errors in the service layer.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}
