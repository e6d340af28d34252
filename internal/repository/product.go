package repository

import (
	"context"

	"github.com/xenking/shop/internal/domain/product"
	"github.com/xenking/shop/internal/storage"
)

const productEntity = "product"

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository over the products table.
type ProductRepository struct {
	store storage.Store[storage.ProductRow]
	in    *instruments
}

// NewProductRepository returns a ProductRepository backed by store.
func NewProductRepository(store storage.Store[storage.ProductRow], opts ...Option) (*ProductRepository, error) {
	in, err := newInstruments(productEntity, opts)
	if err != nil {
		return nil, err
	}
	return &ProductRepository{store: store, in: in}, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) (err error) {
	ctx, done := r.in.start(ctx, "ProductRepository.Create", "create")
	defer func() { err = done(err) }()

	if err := r.store.Insert(ctx, productToRow(p)); err != nil {
		return translate(productEntity, "create", p.ID(), err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *product.Product) (err error) {
	ctx, done := r.in.start(ctx, "ProductRepository.Update", "update")
	defer func() { err = done(err) }()

	if err := r.store.Update(ctx, productToRow(p)); err != nil {
		return translate(productEntity, "update", p.ID(), err)
	}
	return nil
}

func (r *ProductRepository) Find(ctx context.Context, id string) (_ *product.Product, err error) {
	ctx, done := r.in.start(ctx, "ProductRepository.Find", "find")
	defer func() { err = done(err) }()

	row, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, translate(productEntity, "find", id, err)
	}
	p, err := productFromRow(row)
	if err != nil {
		return nil, translate(productEntity, "find", id, err)
	}
	return p, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) (_ []*product.Product, err error) {
	ctx, done := r.in.start(ctx, "ProductRepository.FindAll", "find_all")
	defer func() { err = done(err) }()

	rows, err := r.store.List(ctx)
	if err != nil {
		return nil, translate(productEntity, "find_all", "", err)
	}

	products := make([]*product.Product, 0, len(rows))
	for _, row := range rows {
		p, err := productFromRow(row)
		if err != nil {
			return nil, translate(productEntity, "find_all", row.ID, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func productToRow(p *product.Product) storage.ProductRow {
	return storage.ProductRow{ID: p.ID(), Name: p.Name(), Price: p.Price()}
}

func productFromRow(row storage.ProductRow) (*product.Product, error) {
	return product.New(row.ID, row.Name, row.Price)
}
