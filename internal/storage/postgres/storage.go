package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type catalogRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Catalog() repository.CatalogRepository {
	return &catalogRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            username TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS occasions (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS bouquets (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            image TEXT NOT NULL DEFAULT '',
            price NUMERIC(12, 2) NOT NULL CHECK (price >= 0),
            featured BOOLEAN NOT NULL DEFAULT FALSE,
            occasion_id TEXT REFERENCES occasions(id)
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            product_ids TEXT[] NOT NULL CHECK (cardinality(product_ids) > 0),
            purchased_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, purchased_at)`,
		`CREATE INDEX IF NOT EXISTS idx_bouquets_occasion ON bouquets(occasion_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domainErrors.ErrPersistence, err)
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, email, username, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (email, username, password_hash) VALUES ($1, $2, $3) RETURNING id, created_at`
	u := model.User{Email: email, Username: username, PasswordHash: passwordHash}
	err := r.storage.pool.QueryRow(ctx, query, email, username, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, persistenceError("create user", err)
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, email, username, password_hash, created_at FROM users WHERE email=$1`
	return r.getOne(ctx, "get user by email", query, email)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, email, username, password_hash, created_at FROM users WHERE id=$1`
	return r.getOne(ctx, "get user by id", query, id)
}

func (r *userRepository) getOne(ctx context.Context, op, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, persistenceError(op, err)
	}
	return &u, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	const query = `SELECT id, email, username, password_hash, created_at FROM users ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, persistenceError("list users", err)
	}
	defer rows.Close()

	var result []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, persistenceError("list users", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("list users", err)
	}
	return result, nil
}

// --- OrderRepository implementation ---

// AppendToUser inserts the order keyed by the user in one statement, so concurrent
// submissions for the same user never overwrite each other.
func (r *orderRepository) AppendToUser(ctx context.Context, userID int64, order *model.Order) error {
	const query = `INSERT INTO orders (id, user_id, product_ids)
                   SELECT $1, u.id, $3 FROM users u WHERE u.id = $2
                   RETURNING purchased_at`
	err := r.storage.pool.QueryRow(ctx, query, order.ID, userID, order.ProductIDs).Scan(&order.PurchaseDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrNotFound
		}
		return persistenceError("append order", err)
	}
	order.UserID = userID
	return nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT id, user_id, product_ids, purchased_at
                   FROM orders WHERE user_id=$1 ORDER BY purchased_at, id`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, persistenceError("list orders", err)
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.ProductIDs, &o.PurchaseDate); err != nil {
			return nil, persistenceError("list orders", err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("list orders", err)
	}
	return result, nil
}

// --- CatalogRepository implementation ---

const bouquetColumns = `b.id, b.name, b.description, b.image, b.price::text, b.featured, o.id, o.name`

const bouquetFrom = ` FROM bouquets b LEFT JOIN occasions o ON o.id = b.occasion_id`

func (r *catalogRepository) Occasions(ctx context.Context) ([]model.Occasion, error) {
	const query = `SELECT id, name FROM occasions ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, persistenceError("list occasions", err)
	}
	defer rows.Close()

	var result []model.Occasion
	for rows.Next() {
		var o model.Occasion
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, persistenceError("list occasions", err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("list occasions", err)
	}
	return result, nil
}

func (r *catalogRepository) BouquetsByOccasion(ctx context.Context, occasionID string) ([]model.Bouquet, error) {
	const query = `SELECT ` + bouquetColumns + bouquetFrom + ` WHERE b.occasion_id=$1 ORDER BY b.name`
	return r.queryBouquets(ctx, "list bouquets by occasion", query, occasionID)
}

func (r *catalogRepository) Featured(ctx context.Context) ([]model.Bouquet, error) {
	const query = `SELECT ` + bouquetColumns + bouquetFrom + ` WHERE b.featured ORDER BY b.name`
	return r.queryBouquets(ctx, "list featured bouquets", query)
}

func (r *catalogRepository) FindBouquetsByIDs(ctx context.Context, ids []string) ([]model.Bouquet, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const query = `SELECT ` + bouquetColumns + bouquetFrom + ` WHERE b.id = ANY($1)`
	return r.queryBouquets(ctx, "find bouquets", query, ids)
}

func (r *catalogRepository) Bouquet(ctx context.Context, id string) (*model.Bouquet, error) {
	const query = `SELECT ` + bouquetColumns + bouquetFrom + ` WHERE b.id=$1`
	b, err := scanBouquet(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, persistenceError("get bouquet", err)
	}
	return b, nil
}

func (r *catalogRepository) queryBouquets(ctx context.Context, op, query string, args ...any) ([]model.Bouquet, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, persistenceError(op, err)
	}
	defer rows.Close()

	var result []model.Bouquet
	for rows.Next() {
		b, err := scanBouquet(rows)
		if err != nil {
			return nil, persistenceError(op, err)
		}
		result = append(result, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError(op, err)
	}
	return result, nil
}

func scanBouquet(row pgx.Row) (*model.Bouquet, error) {
	var (
		b            model.Bouquet
		price        string
		occasionID   *string
		occasionName *string
	)
	if err := row.Scan(&b.ID, &b.Name, &b.Description, &b.Image, &price, &b.Featured, &occasionID, &occasionName); err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse price of %s: %w", b.ID, err)
	}
	b.Price = amount
	if occasionID != nil {
		b.Occasion = &model.Occasion{ID: *occasionID}
		if occasionName != nil {
			b.Occasion.Name = *occasionName
		}
	}
	return &b, nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
