package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Organisation{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&OrganisationMember{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&InformationCategory{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Publication{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Document{}); err != nil {
		return err
	}

	return db.AutoMigrate(&AuditRecord{})
}
