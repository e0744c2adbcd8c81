package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mmtecheng/mmrp/internal/mrp/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const TestSchema = "test_mmrp"

// projectRoot returns the project root directory by looking for go.mod
func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// loadEnv loads .env from the project root
func loadEnv() {
	root := projectRoot()
	if root != "" {
		godotenv.Load(filepath.Join(root, ".env"))
	}
}

// SetupTestDB creates a test database connection using a dedicated test schema.
// Each test gets an isolated schema that is cleaned up after the test.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	loadEnv()

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "mmrp")
	password := getEnv("DB_PASSWORD", "mmrp123")
	dbname := getEnv("DB_NAME", "mmrp")

	baseDSN := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	// Create a unique test schema for isolation
	schemaName := fmt.Sprintf("%s_%d", TestSchema, time.Now().UnixNano()%1000000)

	// First: create schema using a temporary connection
	setupDB, err := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to database for schema setup: %v", err)
	}
	setupDB.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schemaName))
	sqlSetup, _ := setupDB.DB()
	sqlSetup.Close()

	// Second: open connection with search_path in DSN so ALL pooled connections use test schema
	testDSN := fmt.Sprintf("%s search_path=%s", baseDSN, schemaName)
	db, err := gorm.Open(postgres.Open(testDSN), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := entity.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	// Cleanup on test completion
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		// Reconnect to drop the schema
		cleanDB, cleanErr := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if cleanErr == nil {
			cleanDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schemaName))
			sqlClean, _ := cleanDB.DB()
			if sqlClean != nil {
				sqlClean.Close()
			}
		}
	})

	return db
}

// SetupRouter creates a gin test router
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// DoRequest executes an HTTP request against the test router
func DoRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a handler.Response-like map
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedPartType creates a part type with its attribute definitions.
// defs maps attribute code -> (datatype, required rule); returns attribute ids by code.
func SeedPartType(t *testing.T, db *gorm.DB, code string, defs []entity.AttributeDefinition) (*entity.PartType, map[string]int) {
	t.Helper()
	pt := &entity.PartType{
		Code:      code,
		SheetName: code,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(pt).Error; err != nil {
		t.Fatalf("Failed to seed part type: %v", err)
	}

	ids := make(map[string]int, len(defs))
	for i := range defs {
		if err := db.Create(&defs[i]).Error; err != nil {
			t.Fatalf("Failed to seed attribute definition: %v", err)
		}
		ids[defs[i].Code] = defs[i].ID
		link := &entity.PartTypeAttribute{
			PartTypeID:  pt.ID,
			AttributeID: defs[i].ID,
			SortOrder:   i,
		}
		if err := db.Create(link).Error; err != nil {
			t.Fatalf("Failed to seed part type attribute link: %v", err)
		}
	}
	return pt, ids
}

// SeedPart creates a part
func SeedPart(t *testing.T, db *gorm.DB, partNumber, description string, partTypeID *int) *entity.Part {
	t.Helper()
	part := &entity.Part{
		PartNumber:  partNumber,
		Description: description,
		Revision:    "A",
		StockUOM:    "ea",
		Status:      entity.PartStatusActive,
		PartTypeID:  partTypeID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := db.Create(part).Error; err != nil {
		t.Fatalf("Failed to seed part: %v", err)
	}
	return part
}

// SeedLot creates an inventory lot for a part
func SeedLot(t *testing.T, db *gorm.DB, partNumber string, quantity float64, received time.Time) *entity.InventoryLot {
	t.Helper()
	lot := &entity.InventoryLot{
		ID:           uuid.New().String(),
		PartNumber:   partNumber,
		Quantity:     quantity,
		DateReceived: &received,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := db.Create(lot).Error; err != nil {
		t.Fatalf("Failed to seed inventory lot: %v", err)
	}
	return lot
}

// SeedTag creates an inventory allocation tag for a part; allocated may be nil
func SeedTag(t *testing.T, db *gorm.DB, partNumber string, allocated *float64) *entity.InventoryTag {
	t.Helper()
	tag := &entity.InventoryTag{
		ID:                uuid.New().String(),
		PartNumber:        partNumber,
		QuantityAllocated: allocated,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("Failed to seed inventory tag: %v", err)
	}
	return tag
}

// SeedBOMLine creates a BOM line
func SeedBOMLine(t *testing.T, db *gorm.DB, assembly, component, sequence string, quantityPer *float64) *entity.BOMLine {
	t.Helper()
	line := &entity.BOMLine{
		ID:          uuid.New().String(),
		Assembly:    assembly,
		Component:   component,
		Sequence:    sequence,
		QuantityPer: quantityPer,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := db.Create(line).Error; err != nil {
		t.Fatalf("Failed to seed bom line: %v", err)
	}
	return line
}

// Float64Ptr returns a pointer to f
func Float64Ptr(f float64) *float64 {
	return &f
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
