package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Student{},
		&Coordinator{},
		&Mentor{},
		&Contest{},
		&Registration{},
		&Team{},
		&TeamMember{},
		&ChatThread{},
		&Message{},
	)
}
