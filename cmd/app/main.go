package main

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/wichananm65/bookstore-backend/internal/book"
	"github.com/wichananm65/bookstore-backend/internal/order"
	"github.com/wichananm65/bookstore-backend/internal/recommend"
	"github.com/wichananm65/bookstore-backend/internal/user"
	"github.com/wichananm65/bookstore-backend/internal/wishlist"
)

func main() {
	_ = godotenv.Load()
	app := fiber.New()
	setupCORS(app)
	app.Use(checkMiddleware)

	db := mustOpenDB()
	defer db.Close()

	ensureSchema(db)

	// collaborator repositories
	bookRepo := book.NewPostgresRepository(db)
	orderRepo := order.NewPostgresRepository(db)
	wishlistRepo := wishlist.NewPostgresRepository(db)

	// recommendation engine + cache; the cache backend is Redis when
	// REDIS_ADDR is set, Postgres otherwise
	engine := recommend.NewEngine(bookRepo, orderRepo, wishlistRepo)
	recService := recommend.NewService(engine, mustBuildCacheRepo(db))
	recHandler := recommend.NewHandler(recService)

	bookHandler := book.NewHandler(book.NewService(bookRepo))
	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService)

	// wishlist/order mutations invalidate the customer's personalized
	// recommendations (the profile vector is derived from both)
	wishlistHandler := wishlist.NewHandler(wishlist.NewService(wishlistRepo), recService)
	orderHandler := order.NewHandler(order.NewService(orderRepo), recService)

	// public routes
	userHandler.RegisterPublicRoutes(app)
	recHandler.RegisterPublicRoutes(app)
	recHandler.RegisterMaintenanceRoutes(app)
	bookHandler.RegisterPublicRoutes(app)

	// everything below requires a JWT
	jwtSecret := os.Getenv("JWT_SECRET")
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(jwtSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	recHandler.RegisterProtectedRoutes(app)
	wishlistHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := app.Listen(":" + port); err != nil {
		panic(err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func checkMiddleware(c *fiber.Ctx) error {
	start := time.Now()
	fmt.Printf("URL = %s, Method = %s, Start Time = %v\n", c.OriginalURL(), c.Method(), start)
	return c.Next()
}

func mustOpenDB() *sql.DB {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

func mustBuildCacheRepo(db *sql.DB) recommend.CacheRepository {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		repo, err := recommend.NewRedisCacheRepository(addr)
		if err != nil {
			panic(fmt.Sprintf("could not connect to redis at %s: %v", addr, err))
		}
		return repo
	}
	return recommend.NewPostgresCacheRepository(db)
}

// ensureSchema creates the tables this service owns when they are
// missing. Lookup tables (categories, authors) are created too so a
// fresh database can be seeded by hand.
func ensureSchema(db *sql.DB) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS users (
        "userId" SERIAL PRIMARY KEY,
        email TEXT UNIQUE NOT NULL,
        password TEXT NOT NULL,
        "firstName" TEXT,
        "lastName" TEXT,
        phone TEXT,
        wishlist integer[],
        "createdAt" TEXT,
        "updatedAt" TEXT
    )`); err != nil {
		panic(err)
	}
	// ensure wishlist column exists in case the table pre-dated it
	if _, err := db.Exec(`ALTER TABLE users ADD COLUMN IF NOT EXISTS wishlist integer[]`); err != nil {
		panic(err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS categories (
        category_id SERIAL PRIMARY KEY,
        category_name TEXT NOT NULL
    )`); err != nil {
		panic(err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS authors (
        author_id SERIAL PRIMARY KEY,
        author_name TEXT NOT NULL
    )`); err != nil {
		panic(err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS books (
        book_id SERIAL PRIMARY KEY,
        title TEXT NOT NULL,
        description TEXT,
        category_id INT REFERENCES categories(category_id),
        author_id INT REFERENCES authors(author_id),
        price INT NOT NULL DEFAULT 0,
        stock INT NOT NULL DEFAULT 0,
        average_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
        view_count INT NOT NULL DEFAULT 0,
        purchase_count INT NOT NULL DEFAULT 0,
        is_active BOOLEAN NOT NULL DEFAULT TRUE,
        cover_img TEXT,
        created_at TEXT,
        updated_at TEXT
    )`); err != nil {
		panic(err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS orders (
        "orderID" SERIAL PRIMARY KEY,
        "userID" INT NOT NULL,
        cart jsonb NOT NULL DEFAULT '{}',
        quantity INT NOT NULL DEFAULT 0,
        "totalPrice" numeric NOT NULL DEFAULT 0,
        "shippingPrice" numeric NOT NULL DEFAULT 0,
        "grandPrice" numeric NOT NULL DEFAULT 0,
        status TEXT,
        "createdAt" TEXT,
        "updatedAt" TEXT
    )`); err != nil {
		panic(err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS recommendation_cache (
        id TEXT PRIMARY KEY,
        subject_key TEXT NOT NULL DEFAULT '',
        rec_type TEXT NOT NULL,
        source_book_id INT NOT NULL DEFAULT 0,
        entries jsonb NOT NULL,
        algorithm TEXT,
        generated_at timestamptz NOT NULL,
        expires_at timestamptz NOT NULL,
        views INT NOT NULL DEFAULT 0,
        clicks INT NOT NULL DEFAULT 0,
        conversions INT NOT NULL DEFAULT 0
    )`); err != nil {
		panic(err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS recommendation_cache_key_idx
        ON recommendation_cache (subject_key, rec_type, source_book_id)`); err != nil {
		panic(err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS recommendation_cache_expiry_idx
        ON recommendation_cache (expires_at)`); err != nil {
		panic(err)
	}
}
