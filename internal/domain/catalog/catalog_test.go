package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techempire/storefront/internal/pkg/logger"
)

type fakeRepo struct {
	products  map[uint]*Product
	nextID    uint
	lastQuery ListQuery
}

func newFakeRepo(products ...Product) *fakeRepo {
	r := &fakeRepo{products: map[uint]*Product{}, nextID: 1}
	for i := range products {
		p := products[i]
		_ = r.Create(context.Background(), &p)
	}
	return r
}

func (r *fakeRepo) List(_ context.Context, q ListQuery) ([]Product, error) {
	r.lastQuery = q
	var out []Product
	for id := uint(1); id < r.nextID; id++ {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uint) (*Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) Create(_ context.Context, p *Product) error {
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeRepo) Update(_ context.Context, id uint, updates map[string]interface{}) (*Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	if v, ok := updates["name"]; ok {
		p.Name = v.(string)
	}
	if v, ok := updates["price"]; ok {
		p.Price = v.(int64)
	}
	if v, ok := updates["category"]; ok {
		p.Category = v.(Category)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func newTestService(products ...Product) (*Service, *fakeRepo) {
	repo := newFakeRepo(products...)
	return NewService(repo, logger.Discard()), repo
}

func TestListNormalizesQuery(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.List(context.Background(), ListQuery{Category: "all", Search: "  ryzen "})
	require.NoError(t, err)
	assert.Equal(t, ListQuery{Category: "", Search: "ryzen"}, repo.lastQuery)

	_, err = svc.List(context.Background(), ListQuery{Category: "processors"})
	require.NoError(t, err)
	assert.Equal(t, "processors", repo.lastQuery.Category)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  ProductCreateRequest
	}{
		{"missing name", ProductCreateRequest{Price: 100, Image: "x.jpg", Category: "mice"}},
		{"missing image", ProductCreateRequest{Name: "Мышь", Price: 100, Category: "mice"}},
		{"zero price", ProductCreateRequest{Name: "Мышь", Image: "x.jpg", Category: "mice"}},
		{"unknown category", ProductCreateRequest{Name: "Мышь", Price: 100, Image: "x.jpg", Category: "toasters"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidProduct)
		})
	}
}

func TestCreateDefaultsInStock(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), &ProductCreateRequest{
		Name:     " Игровая мышь Pro ",
		Price:    499000,
		Image:    "https://example.com/mouse.jpg",
		Category: "mice",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), p.ID)
	assert.Equal(t, "Игровая мышь Pro", p.Name)
	assert.True(t, p.InStock)
}

func TestUpdateValidatesMergedProduct(t *testing.T) {
	svc, _ := newTestService(Product{Name: "SSD", Price: 899000, Image: "ssd.jpg", Category: CategoryStorage})
	ctx := context.Background()

	zero := int64(0)
	_, err := svc.Update(ctx, 1, &ProductUpdateRequest{Price: &zero})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	name := "NVMe SSD 2TB"
	updated, err := svc.Update(ctx, 1, &ProductUpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "NVMe SSD 2TB", updated.Name)
	assert.Equal(t, int64(899000), updated.Price)

	_, err = svc.Update(ctx, 42, &ProductUpdateRequest{Name: &name})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(Product{Name: "Корпус", Price: 1299000, Image: "case.jpg", Category: CategoryCases})
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, 1))
	assert.ErrorIs(t, svc.Delete(ctx, 1), ErrProductNotFound)

	_, err := svc.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCategories(t *testing.T) {
	assert.True(t, CategoryGraphics.Valid())
	assert.False(t, Category("all").Valid())
	assert.Equal(t, "Видеокарта", CategoryGraphics.Name())
	assert.Equal(t, "toasters", Category("toasters").Name())
	assert.Len(t, Categories(), 9)
}

func TestDiscountPercentage(t *testing.T) {
	original := int64(10000)
	p := Product{Price: 7500, OriginalPrice: &original}
	assert.Equal(t, 25, p.GetDiscountPercentage())

	p.OriginalPrice = nil
	assert.Equal(t, 0, p.GetDiscountPercentage())
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "25990.00 ₽", FormatPrice(2599000))
	assert.Equal(t, "0.05 ₽", FormatPrice(5))
}

func TestExportXLSX(t *testing.T) {
	products := []Product{
		{ID: 1, Name: "AMD Ryzen 7 7700X", Price: 3299000, Category: CategoryProcessors, Specs: "8 ядер", InStock: true},
		{ID: 2, Name: "Корпус Fractal Design", Price: 1299000, Category: CategoryCases},
	}

	file, err := ExportXLSX(products)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "Название", sheet.Rows[0].Cells[1].Value)
	assert.Equal(t, "AMD Ryzen 7 7700X", sheet.Rows[1].Cells[1].Value)
	assert.Equal(t, "Процессор", sheet.Rows[1].Cells[2].Value)
	assert.Equal(t, "32990.00", sheet.Rows[1].Cells[3].Value)
	assert.Equal(t, "нет", sheet.Rows[2].Cells[5].Value)
}
