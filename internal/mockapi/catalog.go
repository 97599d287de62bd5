// Package mockapi implements a local stand-in for the storefront API. It
// serves the documented endpoints from a seeded sqlite catalog so the CLI
// and integration tests run without the production backend. It is dev
// tooling, not part of the SDK contract.
package mockapi

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/fitsearch/fitsearch-go/internal/domain"
)

// Catalog is the sqlite-backed product catalog
type Catalog struct {
	db *sql.DB
}

// NewCatalog opens (and seeds, when empty) the catalog database. An empty
// path opens an in-memory catalog.
func NewCatalog(dbPath string) (*Catalog, error) {
	dsn := ":memory:"
	if dbPath != "" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create catalog directory: %w", err)
		}
		dsn = dbPath
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	c := &Catalog{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	if err := c.seedIfEmpty(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			brand TEXT NOT NULL,
			price REAL NOT NULL,
			currency TEXT NOT NULL DEFAULT 'USD',
			description TEXT,
			image_url TEXT,
			categories TEXT,
			tags TEXT,
			rating REAL DEFAULT 0,
			review_count INTEGER DEFAULT 0,
			in_stock INTEGER DEFAULT 1,
			url TEXT,
			trending_rank INTEGER DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_brand ON products(brand)`,
	}

	for _, m := range migrations {
		if _, err := c.db.Exec(m); err != nil {
			return fmt.Errorf("catalog migration failed: %w", err)
		}
	}
	return nil
}

// Search returns products matching the query text (name, brand, tags) with
// the given page window. Every whitespace-separated term must match, so
// "red dress" finds red dresses but not red scarves. An empty query matches
// everything.
func (c *Catalog) Search(query string, page, limit int) (*domain.SearchResult, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	where := "1=1"
	args := []any{}
	for _, term := range strings.Fields(strings.ToLower(query)) {
		where += " AND (name LIKE ? OR brand LIKE ? OR tags LIKE ? OR categories LIKE ?)"
		like := "%" + term + "%"
		args = append(args, like, like, like, like)
	}

	var total int
	countSQL := "SELECT COUNT(*) FROM products WHERE " + where
	if err := c.db.QueryRow(countSQL, args...).Scan(&total); err != nil {
		return nil, err
	}

	listSQL := selectColumns + " WHERE " + where + " ORDER BY rating DESC, id ASC LIMIT ? OFFSET ?"
	rows, err := c.db.Query(listSQL, append(args, limit, (page-1)*limit)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}

	return &domain.SearchResult{
		Products: products,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

// Trending returns the highest-ranked trending products.
func (c *Catalog) Trending(limit int) (*domain.SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := c.db.Query(selectColumns+
		" WHERE trending_rank > 0 ORDER BY trending_rank ASC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}
	return &domain.SearchResult{
		Products: products,
		Total:    len(products),
		Page:     1,
		Limit:    limit,
	}, nil
}

// Brands returns the distinct retailer brands in the catalog,
// alphabetically.
func (c *Catalog) Brands() ([]domain.Brand, error) {
	rows, err := c.db.Query("SELECT DISTINCT brand FROM products ORDER BY brand")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	brands := []domain.Brand{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		brands = append(brands, domain.Brand{ID: brandSlug(name), Name: name})
	}
	return brands, rows.Err()
}

// brandSlug turns "North & Main" into "north-main".
func brandSlug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else if s := b.String(); s != "" && !strings.HasSuffix(s, "-") {
			b.WriteByte('-')
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Get returns a single product, or nil when unknown.
func (c *Catalog) Get(productID string) (*domain.Product, error) {
	rows, err := c.db.Query(selectColumns+" WHERE id = ?", productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	return &products[0], nil
}

// Recommendations returns products sharing a category with the given
// product, best rated first.
func (c *Catalog) Recommendations(productID string, limit int) (*domain.SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}

	product, err := c.Get(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	category := ""
	if len(product.Categories) > 0 {
		category = product.Categories[0]
	}

	rows, err := c.db.Query(selectColumns+
		" WHERE id != ? AND categories LIKE ? ORDER BY rating DESC LIMIT ?",
		productID, "%"+category+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}
	return &domain.SearchResult{
		Products: products,
		Total:    len(products),
		Page:     1,
		Limit:    limit,
	}, nil
}

const selectColumns = `SELECT id, name, brand, price, currency, description,
	image_url, categories, tags, rating, review_count, in_stock, url
	FROM products`

func scanProducts(rows *sql.Rows) ([]domain.Product, error) {
	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		var description, imageURL, categories, tags, pageURL sql.NullString
		var inStock int

		if err := rows.Scan(&p.ID, &p.Name, &p.Brand, &p.Price, &p.Currency,
			&description, &imageURL, &categories, &tags,
			&p.Rating, &p.ReviewCount, &inStock, &pageURL); err != nil {
			return nil, err
		}

		p.Description = description.String
		p.ImageURL = imageURL.String
		p.URL = pageURL.String
		p.InStock = inStock != 0
		if categories.Valid && categories.String != "" {
			json.Unmarshal([]byte(categories.String), &p.Categories)
		}
		if tags.Valid && tags.String != "" {
			json.Unmarshal([]byte(tags.String), &p.Tags)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (c *Catalog) seedIfEmpty() error {
	var count int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	insert := `INSERT INTO products
		(id, name, brand, price, currency, description, image_url, categories,
		 tags, rating, review_count, in_stock, url, trending_rank)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for _, p := range seedProducts() {
		categories, _ := json.Marshal(p.product.Categories)
		tags, _ := json.Marshal(p.product.Tags)
		inStock := 0
		if p.product.InStock {
			inStock = 1
		}
		if _, err := c.db.Exec(insert,
			p.product.ID, p.product.Name, p.product.Brand, p.product.Price,
			p.product.Currency, p.product.Description, p.product.ImageURL,
			string(categories), string(tags), p.product.Rating,
			p.product.ReviewCount, inStock, p.product.URL, p.trendingRank,
		); err != nil {
			return fmt.Errorf("catalog seed failed: %w", err)
		}
	}
	return nil
}

type seedProduct struct {
	product      domain.Product
	trendingRank int
}

func seedProducts() []seedProduct {
	return []seedProduct{
		{domain.Product{ID: "p-1001", Name: "Red Wrap Midi Dress", Brand: "Maison Clare", Price: 89.90, Currency: "USD",
			Description: "Flowing red wrap dress in crepe fabric", ImageURL: "https://img.fitsearch.dev/p-1001.jpg",
			Categories: []string{"dresses"}, Tags: []string{"red", "dress", "midi", "wrap"},
			Rating: 4.6, ReviewCount: 214, InStock: true, URL: "https://shop.example.com/p-1001"}, 1},
		{domain.Product{ID: "p-1002", Name: "Scarlet Evening Gown", Brand: "Velora", Price: 249.00, Currency: "USD",
			Description: "Floor-length scarlet gown with open back", ImageURL: "https://img.fitsearch.dev/p-1002.jpg",
			Categories: []string{"dresses"}, Tags: []string{"red", "dress", "evening", "gown"},
			Rating: 4.8, ReviewCount: 98, InStock: true, URL: "https://shop.example.com/p-1002"}, 0},
		{domain.Product{ID: "p-1003", Name: "Linen Summer Dress", Brand: "Maison Clare", Price: 64.50, Currency: "USD",
			Description: "Breathable white linen dress", ImageURL: "https://img.fitsearch.dev/p-1003.jpg",
			Categories: []string{"dresses"}, Tags: []string{"white", "dress", "linen", "summer"},
			Rating: 4.3, ReviewCount: 152, InStock: true, URL: "https://shop.example.com/p-1003"}, 4},
		{domain.Product{ID: "p-2001", Name: "Court Classic Sneakers", Brand: "Strider", Price: 110.00, Currency: "USD",
			Description: "Leather court sneakers in white", ImageURL: "https://img.fitsearch.dev/p-2001.jpg",
			Categories: []string{"shoes"}, Tags: []string{"sneakers", "white", "leather"},
			Rating: 4.7, ReviewCount: 530, InStock: true, URL: "https://shop.example.com/p-2001"}, 2},
		{domain.Product{ID: "p-2002", Name: "Trail Runner 3", Brand: "Strider", Price: 135.00, Currency: "USD",
			Description: "Grippy trail running shoe", ImageURL: "https://img.fitsearch.dev/p-2002.jpg",
			Categories: []string{"shoes"}, Tags: []string{"sneakers", "running", "trail"},
			Rating: 4.4, ReviewCount: 321, InStock: false, URL: "https://shop.example.com/p-2002"}, 0},
		{domain.Product{ID: "p-3001", Name: "Wool Overcoat", Brand: "North & Main", Price: 320.00, Currency: "USD",
			Description: "Double-breasted grey wool overcoat", ImageURL: "https://img.fitsearch.dev/p-3001.jpg",
			Categories: []string{"outerwear"}, Tags: []string{"coat", "wool", "grey", "winter"},
			Rating: 4.5, ReviewCount: 87, InStock: true, URL: "https://shop.example.com/p-3001"}, 3},
		{domain.Product{ID: "p-3002", Name: "Packable Rain Shell", Brand: "North & Main", Price: 98.00, Currency: "USD",
			Description: "Waterproof shell that packs into its own pocket", ImageURL: "https://img.fitsearch.dev/p-3002.jpg",
			Categories: []string{"outerwear"}, Tags: []string{"jacket", "rain", "packable"},
			Rating: 4.2, ReviewCount: 143, InStock: true, URL: "https://shop.example.com/p-3002"}, 0},
		{domain.Product{ID: "p-4001", Name: "Silk Scarf Poppy Print", Brand: "Velora", Price: 45.00, Currency: "USD",
			Description: "Hand-rolled silk scarf with poppy print", ImageURL: "https://img.fitsearch.dev/p-4001.jpg",
			Categories: []string{"accessories"}, Tags: []string{"scarf", "silk", "red", "print"},
			Rating: 4.9, ReviewCount: 64, InStock: true, URL: "https://shop.example.com/p-4001"}, 5},
	}
}
