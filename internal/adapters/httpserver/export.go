package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/mehedihasanwd/easy-cart-api-v2/internal/domain"
)

// handleExportProducts streams the whole catalog as an XLSX workbook.
func (s *Server) handleExportProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	if _, ok := s.require(w, r, domain.ActionExportCatalog); !ok {
		return
	}

	const batch = 500
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := []any{
		"id", "name", "slug", "original_price", "price", "discount",
		"in_stock", "sales", "status", "category", "brand",
		"average_rating", "total_reviews", "top_category", "created_at",
	}
	_ = f.SetSheetRow(sheet, "A1", &header)

	row := 2
	for page := 1; ; page++ {
		products, total, err := s.products.List(r.Context(), domain.ProductFilter{Page: page, PageSize: batch})
		if err != nil {
			writeErr(w, err)
			return
		}
		for i := range products {
			p := &products[i]
			cell, _ := excelize.CoordinatesToCellName(1, row)
			_ = f.SetSheetRow(sheet, cell, &[]any{
				p.ID.String(), p.Name, p.Slug, p.OriginalPrice, p.Price, p.Discount,
				p.InStock, p.Sales, string(p.Status), string(p.Category), p.Brand,
				p.AverageRating, p.TotalReviews, string(p.TopCategory),
				p.CreatedAt.Format(time.RFC3339),
			})
			row++
		}
		if int64(page*batch) >= total || len(products) == 0 {
			break
		}
	}

	name := fmt.Sprintf("products-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("export write")
	}
}
