package db

import (
	"fmt"
	"log"

	"Gin_memory_redis_rental_catalog/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type PostgresConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host, c.User, c.Password, c.Name, c.Port,
	)
}

func ConnectDB(cfg PostgresConfig) *gorm.DB {
	// TranslateError: 主键冲突返回 gorm.ErrDuplicatedKey
	conn, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	if err := Migrate(conn); err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return conn
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Item{}, &models.RentalPeriod{}); err != nil {
		return err
	}

	// 按物品读取记录时按 seq 排序
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_item_seq
	  ON %s (item_id, seq);
	`, models.RentalPeriodTable, models.RentalPeriodTable)).Error; err != nil {
		return err
	}

	return nil
}
