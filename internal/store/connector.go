// Package store owns the connection to the product database and the readiness
// signal dependents await before issuing any operation. The connector tries
// Postgres, then SQLite, then degrades to no-op repositories so the API keeps
// answering even with no backend at all.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"molove/internal/models"
	"molove/internal/repositories"
)

// Mode identifies which backend the connector settled on.
type Mode string

const (
	// ModePostgres is the primary backend.
	ModePostgres Mode = "postgres"
	// ModeSQLite is the local-file backend used when Postgres is unreachable.
	ModeSQLite Mode = "sqlite"
	// ModeFallback means no backend is reachable; reads are empty, writes echo.
	ModeFallback Mode = "fallback"
)

// Config holds connection settings for the backends, tried in order.
// Empty values skip the corresponding backend.
type Config struct {
	PostgresDSN string
	SQLitePath  string
}

// Connector constructs the repository set once and exposes a readiness signal
// resolved exactly once when initialization settles, successfully or not.
// Callers must Await before using any repository accessor.
type Connector struct {
	cfg   Config
	ready chan struct{}
	mode  Mode
	err   error

	products repositories.ProductRepository
	orders   repositories.OrderRepository
	promo    repositories.PromoRepository
	lookbook repositories.LookbookRepository
	users    repositories.UserRepository
}

// NewConnector creates an unconnected Connector.
func NewConnector(cfg Config) *Connector {
	return &Connector{
		cfg:   cfg,
		ready: make(chan struct{}),
	}
}

// Connect tries each backend in order and then closes the readiness channel.
// It must be called exactly once, usually in its own goroutine.
func (c *Connector) Connect() {
	defer close(c.ready)

	if c.cfg.PostgresDSN != "" {
		err := c.open(postgres.Open(c.cfg.PostgresDSN))
		if err == nil {
			c.mode = ModePostgres
			log.Println("store: connected to postgres")
			return
		}
		if errors.Is(err, repositories.ErrSchemaMissing) {
			// A present but misconfigured database is a setup error,
			// not an availability problem. Surface it, do not degrade.
			c.err = err
			return
		}
		log.Printf("store: postgres unavailable: %v", err)
	}

	if c.cfg.SQLitePath != "" {
		if err := c.open(sqlite.Open(c.cfg.SQLitePath)); err == nil {
			c.mode = ModeSQLite
			log.Printf("store: using sqlite at %s", c.cfg.SQLitePath)
			return
		} else {
			log.Printf("store: sqlite unavailable: %v", err)
		}
	}

	log.Println("store: no backend reachable, serving degraded fallback")
	c.mode = ModeFallback
	c.products = repositories.NewFallbackProductRepository()
	c.orders = repositories.NewFallbackOrderRepository()
	c.promo = repositories.NewFallbackPromoRepository()
	c.lookbook = repositories.NewFallbackLookbookRepository()
	c.users = repositories.NewFallbackUserRepository()
}

func (c *Connector) open(dialector gorm.Dialector) error {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.ActiveSale{},
		&models.LookbookEntry{},
		&models.User{},
	); err != nil {
		// Migration can fail on restricted accounts; the schema may still
		// be in place. Probe before giving up on this backend.
		if probeErr := db.Raw("SELECT count(*) FROM products").Error; probeErr != nil {
			return repositories.TranslateProbe(probeErr)
		}
		log.Printf("store: migration skipped: %v", err)
	}

	c.products = repositories.NewGORMProductRepository(db)
	c.orders = repositories.NewGORMOrderRepository(db)
	c.promo = repositories.NewGORMPromoRepository(db)
	c.lookbook = repositories.NewGORMLookbookRepository(db)
	c.users = repositories.NewGORMUserRepository(db)
	return nil
}

// Await blocks until initialization settles or ctx expires. The returned
// error is non-nil only for fatal configuration problems (missing schema);
// the degraded fallback mode resolves with a nil error.
func (c *Connector) Await(ctx context.Context) error {
	select {
	case <-c.ready:
		return c.err
	case <-ctx.Done():
		return fmt.Errorf("store readiness: %w", ctx.Err())
	}
}

// Mode reports which backend the connector settled on.
func (c *Connector) Mode() Mode { return c.mode }

// Products returns the product repository. Valid only after Await.
func (c *Connector) Products() repositories.ProductRepository { return c.products }

// Orders returns the order repository. Valid only after Await.
func (c *Connector) Orders() repositories.OrderRepository { return c.orders }

// Promo returns the promo settings repository. Valid only after Await.
func (c *Connector) Promo() repositories.PromoRepository { return c.promo }

// Lookbook returns the lookbook repository. Valid only after Await.
func (c *Connector) Lookbook() repositories.LookbookRepository { return c.lookbook }

// Users returns the admin account repository. Valid only after Await.
func (c *Connector) Users() repositories.UserRepository { return c.users }
