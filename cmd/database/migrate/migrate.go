package migration

import (
	"fmt"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
	"kitchen-copilot/entities"
)

func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";").Error; err != nil {
			return err
		}
	}

	models := []struct {
		name  string
		model interface{}
	}{
		{"room", &entities.Room{}},
		{"participant", &entities.Participant{}},
		{"ingredient", &entities.Ingredient{}},
		{"room constraint", &entities.RoomConstraint{}},
		{"recipe", &entities.Recipe{}},
		{"vote", &entities.Vote{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("migrating %s table: %w", m.name, err)
		}
	}

	log.Info("Database migration complete")
	return nil
}
