// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/techempire/storefront/internal/domain/build"
	"github.com/techempire/storefront/internal/domain/catalog"
	"github.com/techempire/storefront/internal/domain/contact"
	"github.com/techempire/storefront/internal/domain/order"
	"github.com/techempire/storefront/internal/domain/user"
	"gorm.io/gorm"
)

// AdminEmail is the seeded administrator account
const AdminEmail = "admin@techempire.ru"

// Migration handles database migrations
type Migration struct {
	db     *gorm.DB
	logger logrus.FieldLogger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, logger logrus.FieldLogger) *Migration {
	return &Migration{
		db:     db,
		logger: logger.WithField("component", "migration"),
	}
}

// Models lists every persisted model in dependency order
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&user.AuthCode{},
		&catalog.Product{},
		&order.Order{},
		&order.OrderItem{},
		&order.OrderStatusHistory{},
		&contact.Submission{},
		&build.SavedBuild{},
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.logger.Info("running database auto-migrations")

	for _, model := range Models() {
		m.logger.Debugf("migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.logger.Info("database auto-migrations completed")
	return nil
}

var indexes = []string{
	// Product indexes
	"CREATE INDEX IF NOT EXISTS idx_products_category_stock ON products(category, in_stock)",
	"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
	"CREATE INDEX IF NOT EXISTS idx_products_name_lower ON products(LOWER(name))",

	// Order indexes
	"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)",
	"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
	"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
	"CREATE INDEX IF NOT EXISTS idx_order_status_history_order ON order_status_history(order_id, created_at DESC)",

	// Auth code indexes
	"CREATE INDEX IF NOT EXISTS idx_auth_codes_email_active ON auth_codes(email, used, expires_at)",

	// Contact indexes
	"CREATE INDEX IF NOT EXISTS idx_contact_submissions_created_at ON contact_submissions(created_at DESC)",

	// Saved build indexes
	"CREATE INDEX IF NOT EXISTS idx_pc_builds_user ON pc_builds(user_id)",
}

// CreateIndexes creates additional indexes. Failures are logged, not fatal.
func (m *Migration) CreateIndexes() error {
	m.logger.Info("creating additional database indexes")

	failed := 0
	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.logger.WithError(err).WithField("sql", indexSQL).Warn("failed to create index")
			failed++
		}
	}

	m.logger.WithFields(logrus.Fields{
		"created": len(indexes) - failed,
		"failed":  failed,
	}).Info("database indexes processed")
	return nil
}

// SeedInitialData inserts the starter catalog and the administrator
func (m *Migration) SeedInitialData() error {
	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	if err := m.seedProducts(); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	m.logger.Info("initial data seeded")
	return nil
}

func (m *Migration) seedAdminUser() error {
	var existing user.User
	err := m.db.Where("email = ?", AdminEmail).First(&existing).Error
	if err == nil {
		m.logger.WithField("user_id", existing.ID).Debug("admin user already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin := user.User{
		Email: AdminEmail,
		Name:  "Администратор",
		Role:  user.RoleAdmin,
	}
	if err := m.db.Create(&admin).Error; err != nil {
		return err
	}

	m.logger.WithField("email", AdminEmail).Info("created admin user")
	return nil
}

func (m *Migration) seedProducts() error {
	var count int64
	if err := m.db.Model(&catalog.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		m.logger.Debug("products already seeded")
		return nil
	}

	products := SeedProducts()
	if err := m.db.Create(&products).Error; err != nil {
		return err
	}

	m.logger.WithField("count", len(products)).Info("seeded catalog products")
	return nil
}

// SeedProducts is the starter catalog. Prices are in kopecks.
func SeedProducts() []catalog.Product {
	wide := int64(4999000)
	return []catalog.Product{
		{
			Name:     "Игровой монитор 27\" 144 Гц",
			Price:    2599000,
			Image:    "https://images.unsplash.com/photo-1527443224154-c4a3942d3acf?w=400",
			Category: catalog.CategoryMonitors,
			Specs:    "27 дюймов, 144 Гц, 1 мс, IPS, QHD 2560x1440",
			InStock:  true,
		},
		{
			Name:     "Механическая клавиатура RGB",
			Price:    899000,
			Image:    "https://images.unsplash.com/photo-1541140532154-b024d705b90a?w=400",
			Category: catalog.CategoryKeyboards,
			Specs:    "Cherry MX Blue, RGB подсветка, USB",
			InStock:  true,
		},
		{
			Name:     "Игровая мышь Pro",
			Price:    499000,
			Image:    "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=400",
			Category: catalog.CategoryMice,
			Specs:    "16000 DPI, RGB, программируемые кнопки",
			InStock:  true,
		},
		{
			Name:     "NVIDIA GeForce RTX 4070",
			Price:    8999000,
			Image:    "https://images.unsplash.com/photo-1591488320449-011701bb6704?w=400",
			Category: catalog.CategoryGraphics,
			Specs:    "12 ГБ GDDR6X, трассировка лучей, DLSS 3.0",
			InStock:  true,
		},
		{
			Name:     "AMD Ryzen 7 7700X",
			Price:    3299000,
			Image:    "https://images.unsplash.com/photo-1555617981-dac3880eac6e?w=400",
			Category: catalog.CategoryProcessors,
			Specs:    "8 ядер, 16 потоков, 4.5-5.4 ГГц, AM5",
			InStock:  true,
		},
		{
			Name:     "Материнская плата ASUS B650",
			Price:    1899000,
			Image:    "https://images.unsplash.com/photo-1518717758536-85ae29035b6d?w=400",
			Category: catalog.CategoryMotherboards,
			Specs:    "AMD B650, AM5, DDR5, PCIe 5.0",
			InStock:  true,
		},
		{
			Name:     "Корпус Fractal Design",
			Price:    1299000,
			Image:    "https://images.unsplash.com/photo-1587831990711-23ca6441447b?w=400",
			Category: catalog.CategoryCases,
			Specs:    "ATX, закалённое стекло, RGB подсветка",
			InStock:  true,
		},
		{
			Name:     "32 ГБ DDR5-5600 Kit",
			Price:    1699000,
			Image:    "https://images.unsplash.com/photo-1562408590-e32931084e23?w=400",
			Category: catalog.CategoryMemory,
			Specs:    "2x16 ГБ, DDR5-5600, CL36, RGB",
			InStock:  true,
		},
		{
			Name:     "NVMe SSD 1 ТБ PCIe 4.0",
			Price:    899000,
			Image:    "https://images.unsplash.com/photo-1597872200969-2b65d56bd16b?w=400",
			Category: catalog.CategoryStorage,
			Specs:    "1 ТБ, PCIe 4.0, 7000/6000 МБ/с",
			InStock:  true,
		},
		{
			Name:          "Ultrawide монитор 34\"",
			Price:         4599000,
			OriginalPrice: &wide,
			Image:         "https://images.unsplash.com/photo-1527443224154-c4a3942d3acf?w=400",
			Category:      catalog.CategoryMonitors,
			Specs:         "34\", 3440x1440, 100 Гц, IPS, HDR",
			InStock:       true,
		},
	}
}

// DropAllTables drops every table in reverse dependency order
func (m *Migration) DropAllTables() error {
	models := Models()
	for i := len(models) - 1; i >= 0; i-- {
		if err := m.db.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("failed to drop table for %T: %w", models[i], err)
		}
	}
	m.logger.Warn("all tables dropped")
	return nil
}
