package usecase

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CatalogUsecase はカタログ閲覧。状態は持たない。
// 絞り込み・並び替えは毎回ゼロから計算する（カタログは小さい前提）。
type CatalogUsecase struct {
	catalog repo.CatalogGateway
}

// DI
func NewCatalogUsecase(catalog repo.CatalogGateway) *CatalogUsecase {
	return &CatalogUsecase{catalog: catalog}
}

type ListSareesInput struct {
	Search     string
	Fabric     string
	Color      string
	PriceRange string // under-1000 / 1000-2000 / 2000-3000 / above-3000
	Sort       string // name（default）/ price_asc / price_desc / new
}

func (u *CatalogUsecase) ListSarees(ctx context.Context, in ListSareesInput) ([]model.Saree, error) {
	switch in.Sort {
	case "", "name", "price_asc", "price_desc", "new":
	default:
		return nil, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}
	switch in.PriceRange {
	case "", "under-1000", "1000-2000", "2000-3000", "above-3000":
	default:
		return nil, NewHTTPError(http.StatusBadRequest, "invalid price_range")
	}

	sarees, err := u.catalog.ListSarees(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusBadGateway, "could not load catalog")
	}

	return SortSarees(FilterSarees(sarees, in), in.Sort), nil
}

func (u *CatalogUsecase) GetSareeDetail(ctx context.Context, id int64) (model.Saree, error) {
	if id <= 0 {
		return model.Saree{}, NewHTTPError(http.StatusBadRequest, "invalid saree id")
	}

	s, err := u.catalog.FindSaree(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Saree{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Saree{}, NewHTTPError(http.StatusBadGateway, "could not load catalog")
	}
	return s, nil
}

// FilterSarees は純粋な絞り込みパイプライン。
// フリーテキスト（タイトル/生地/色の部分一致・大文字小文字無視）
// → 生地 → 色 → 価格帯の順に全部AND。
func FilterSarees(sarees []model.Saree, in ListSareesInput) []model.Saree {
	search := strings.ToLower(in.Search)
	fabric := strings.ToLower(in.Fabric)
	color := strings.ToLower(in.Color)

	out := make([]model.Saree, 0, len(sarees))
	for _, s := range sarees {
		if search != "" &&
			!strings.Contains(strings.ToLower(s.Title), search) &&
			!strings.Contains(strings.ToLower(s.Fabric), search) &&
			!strings.Contains(strings.ToLower(s.Color), search) {
			continue
		}
		if fabric != "" && !strings.Contains(strings.ToLower(s.Fabric), fabric) {
			continue
		}
		if color != "" && !strings.Contains(strings.ToLower(s.Color), color) {
			continue
		}
		if in.PriceRange != "" && !inPriceRange(s.SellingPrice, in.PriceRange) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func inPriceRange(price decimal.Decimal, r string) bool {
	switch r {
	case "under-1000":
		return price.LessThan(decimal.NewFromInt(1000))
	case "1000-2000":
		return price.GreaterThanOrEqual(decimal.NewFromInt(1000)) &&
			price.LessThanOrEqual(decimal.NewFromInt(2000))
	case "2000-3000":
		return price.GreaterThanOrEqual(decimal.NewFromInt(2000)) &&
			price.LessThanOrEqual(decimal.NewFromInt(3000))
	case "above-3000":
		return price.GreaterThan(decimal.NewFromInt(3000))
	default:
		return true
	}
}

// SortSarees は並び替え。元スライスは触らない。
// "new" はIDの降順（新しいIDほど最近の追加、の近似）。
func SortSarees(sarees []model.Saree, by string) []model.Saree {
	out := make([]model.Saree, len(sarees))
	copy(out, sarees)

	switch by {
	case "price_asc":
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].SellingPrice.LessThan(out[j].SellingPrice)
		})
	case "price_desc":
		sort.SliceStable(out, func(i, j int) bool {
			return out[j].SellingPrice.LessThan(out[i].SellingPrice)
		})
	case "new":
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ID > out[j].ID
		})
	default: // name
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Title < out[j].Title
		})
	}
	return out
}
