package database

import (
	"fmt"
	"time"

	"github.com/Vithyatharshanaa/ctf-buddy-learn/config"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(cfg *config.DatabaseConfig) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		// 重复键等错误翻译为 gorm.ErrDuplicatedKey，解题去重依赖这一点
		TranslateError: true,
	})
	if err != nil {
		return err
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	// 连接一小时后过期重建，规避 MySQL wait_timeout
	sqlDB.SetConnMaxLifetime(time.Hour)

	return nil
}

// MigrateTables 题目由运营侧带外导入，这里只维护本服务自己写入的表
func MigrateTables() error {
	return DB.AutoMigrate(
		&models.Challenge{},
		&models.UserSolve{},
		&models.SubmissionLog{},
	)
}
