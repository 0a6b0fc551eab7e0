package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ooyyss26/product-api/models"
)

// DBTX is the connection surface the repository needs. Both a pgxpool.Pool
// and the transaction-manager resolved handle satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

const (
	createProductSQL = `INSERT INTO products (products_name, price) VALUES ($1, $2) RETURNING idproducts`
	getProductSQL    = `SELECT idproducts, products_name, price FROM products WHERE idproducts = $1`
	listProductsSQL  = `SELECT idproducts, products_name, price FROM products ORDER BY idproducts`
	searchProductSQL = `SELECT idproducts, products_name, price FROM products WHERE products_name ILIKE '%' || $1 || '%' ORDER BY idproducts`
	updateProductSQL = `UPDATE products SET products_name = $2, price = $3 WHERE idproducts = $1`
	deleteProductSQL = `DELETE FROM products WHERE idproducts = $1`
)

type ProductRepository interface {
	Create(ctx context.Context, name string, price float64) (int64, error)
	List(ctx context.Context, search string) ([]models.Product, error)
	Get(ctx context.Context, id int64) (models.Product, error)
	Update(ctx context.Context, id int64, name string, price float64) error
	Delete(ctx context.Context, id int64) error
}

type productRepository struct {
	conn DBTX
}

func NewProductRepository(conn DBTX) ProductRepository {
	return &productRepository{conn: conn}
}

func (r *productRepository) Create(ctx context.Context, name string, price float64) (int64, error) {
	num, err := Float64ToNumeric(price)
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.conn.QueryRow(ctx, createProductSQL, name, num).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *productRepository) List(ctx context.Context, search string) ([]models.Product, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if search != "" {
		rows, err = r.conn.Query(ctx, searchProductSQL, search)
	} else {
		rows, err = r.conn.Query(ctx, listProductsSQL)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepository) Get(ctx context.Context, id int64) (models.Product, error) {
	row := r.conn.QueryRow(ctx, getProductSQL, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}
	return p, nil
}

func (r *productRepository) Update(ctx context.Context, id int64, name string, price float64) error {
	num, err := Float64ToNumeric(price)
	if err != nil {
		return err
	}

	tag, err := r.conn.Exec(ctx, updateProductSQL, id, name, num)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn.Exec(ctx, deleteProductSQL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (models.Product, error) {
	var (
		p   models.Product
		num pgtype.Numeric
	)
	if err := row.Scan(&p.ID, &p.Name, &num); err != nil {
		return models.Product{}, err
	}

	price, err := NumericToFloat64(num)
	if err != nil {
		return models.Product{}, err
	}
	p.Price = price
	return p, nil
}
