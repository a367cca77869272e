package db

import (
	"fmt"
	"log"
	"os"

	"rewear/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
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
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Item{},
		&models.Exchange{},
	); err != nil {
		return err
	}

	// 一件物品最多被一笔 accepted 交换占用（offered 或 requested 任一侧）
	for _, col := range []string{"offered_item_id", "requested_item_id"} {
		stmt := fmt.Sprintf(`
		  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_accepted_%s
		  ON %s (%s)
		  WHERE status = 'accepted';
		`, models.ExchangeTable, col, models.ExchangeTable, col)
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	// 查询某用户相关交换更快
	stmt := fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_parties_createdat_desc
	  ON %s (offerer_id, receiver_id, created_at DESC);
	`, models.ExchangeTable, models.ExchangeTable)
	return db.Exec(stmt).Error
}
