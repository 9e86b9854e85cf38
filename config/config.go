package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config holds the application's configuration values.
type Config struct {
	AppName string `json:"appname"`
	AppEnv  string `json:"appenv"`
	AppPort uint16 `json:"appport"`
	GinMode string `json:"ginmode"`
	DBHost  string `json:"dbhost"`
	DBPort  uint16 `json:"dbport"`
	DBName  string `json:"dbname"`
	DBUser  string `json:"dbuser"`
	DBPass  string `json:"dbpass"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables from a .env file, and returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		// The .env file is optional; real environments provide variables directly.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: could not load .env file: %v", err)
		}

		appPort, _ := strconv.ParseUint(os.Getenv("APPPORT"), 10, 16)
		dbPort, _ := strconv.ParseUint(os.Getenv("DBPORT"), 10, 16)

		config = &Config{
			AppName: os.Getenv("APPNAME"),
			AppEnv:  os.Getenv("APPENV"),
			AppPort: uint16(appPort),
			GinMode: os.Getenv("GINMODE"),
			DBHost:  os.Getenv("DBHOST"),
			DBPort:  uint16(dbPort),
			DBName:  os.Getenv("DBNAME"),
			DBUser:  os.Getenv("DBUSER"),
			DBPass:  os.Getenv("DBPASS"),
		}
	})
	return config
}

// ConnectDB establishes the database connection. In the test environment it
// opens an in-memory SQLite database so tests need no external server;
// otherwise it connects to MySQL using the configuration values.
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func ConnectDB() (*gorm.DB, error) {
	cfg := LoadConfig()

	if os.Getenv("APPENV") == "test" || (cfg != nil && cfg.AppEnv == "test") {
		dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	return db, nil
}
