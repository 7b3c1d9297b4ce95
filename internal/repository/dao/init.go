package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Schedule{},
		&AttendanceRecord{},
		&Mail{},
		&InboxEntry{},
		&Aspiration{},
		&LearningCategory{},
		&LearningMaterial{},
		&FinanceEntry{},
	)
}
