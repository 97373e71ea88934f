package configs

import (
	"context"
	"encoding/base64"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var JWTSecret string

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
	} else {
		log.Println("✅ .env file berhasil dimuat!")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}
}

// LoadKeys membaca kunci enkripsi + hash dari env dan MENGEMBALIKANNYA,
// tidak disimpan di package-level — pemegang kunci satu-satunya adalah
// cipher service yang menerimanya lewat injection.
// AES_KEY dan HMAC_KEY harus 32 bytes (256 bit), disimpan sebagai base64;
// tidak ada / tidak valid = fatal sejak startup.
func LoadKeys() (aesKey, hmacKey []byte) {
	return mustLoadKey("AES_KEY"), mustLoadKey("HMAC_KEY")
}

func mustLoadKey(name string) []byte {
	raw := GetEnv(name)
	if raw == "" {
		log.Fatalf("❌ %s belum diset! Server tidak bisa jalan tanpa kunci enkripsi.", name)
	}
	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		log.Fatalf("❌ %s bukan base64 yang valid: %v", name, err)
	}
	if len(key) != 32 {
		log.Fatalf("❌ %s harus 32 bytes (256 bit), dapat %d bytes", name, len(key))
	}
	log.Printf("✅ %s berhasil dimuat.", name)
	return key
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[INFO] "+msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[WARN] "+msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[ERROR] "+msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	if err != nil {
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	} else if elapsed > l.SlowThreshold {
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
