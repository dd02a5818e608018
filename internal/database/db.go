package database

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"domainpilot/internal/models"
)

var DB *gorm.DB

func InitDB(dbPath string) error {
	var err error
	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return err
	}

	log.Println("Migrating database...")
	err = DB.AutoMigrate(
		&models.Account{},
		&models.RegistrarAccount{},
		&models.Proxy{},
		&models.SSHHost{},
		&models.ProxyHost{},
		&models.Domain{},
	)
	if err != nil {
		return err
	}

	return nil
}
