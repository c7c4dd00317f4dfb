package transport

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sportify/backend/constant"
	"github.com/sportify/backend/utils/errors"
)

// pathID extracts a numeric path variable; 0 means the segment was missing
// or not a number.
func pathID(r *http.Request, name string) uint64 {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func queryInt(r *http.Request, name string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return fallback
	}
	return v
}

// ListProducts handler
// @Summary List products
// @Description List products with stock availability
// @Tags Product
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} model.ProductListResponse
// @Router /products [get]
func (s *RestHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	res, err := s.ProductApp.ListProducts(r.Context(), queryInt(r, "page", 1), queryInt(r, "per_page", 20))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetProduct handler
// @Summary Get product
// @Description Get a single product with supplier and stock detail
// @Tags Product
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} model.ProductDetail
// @Failure 404 {object} errors.CustomError
// @Router /product/{id} [get]
func (s *RestHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if id == 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ProductApp.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
