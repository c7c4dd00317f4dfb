package transport

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	cartapp "github.com/sportify/backend/application/cart"
	discountapp "github.com/sportify/backend/application/discount"
	orderapp "github.com/sportify/backend/application/order"
	productapp "github.com/sportify/backend/application/product"
	settingsapp "github.com/sportify/backend/application/settings"
	stockapp "github.com/sportify/backend/application/stock"
	userapp "github.com/sportify/backend/application/user"
	"github.com/sportify/backend/constant"
	"github.com/sportify/backend/model"
	"github.com/sportify/backend/utils/errors"
	validatorx "github.com/sportify/backend/utils/validator"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	UserApp     userapp.UserApp
	ProductApp  productapp.ProductApp
	CartApp     cartapp.CartApp
	OrderApp    orderapp.OrderApp
	StockApp    stockapp.StockApp
	DiscountApp discountapp.DiscountApp
	SettingsApp settingsapp.SettingsApp
}

func NewTransport(internalAPIKey string, rh *RestHandler) http.Handler {
	router := mux.NewRouter()

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public routes
	router.HandleFunc("/register", rh.Register).Methods(http.MethodPost)
	router.HandleFunc("/login", rh.Login).Methods(http.MethodPost)
	router.HandleFunc("/products", rh.ListProducts).Methods(http.MethodGet)
	router.HandleFunc("/product/{id}", rh.GetProduct).Methods(http.MethodGet)

	// Authenticated routes
	router.HandleFunc("/cart", rh.GetCart).Methods(http.MethodGet)
	router.HandleFunc("/cart/item", rh.AddCartItem).Methods(http.MethodPost)
	router.HandleFunc("/cart/item", rh.UpdateCartItem).Methods(http.MethodPut)
	router.HandleFunc("/cart/item/{product_id}", rh.RemoveCartItem).Methods(http.MethodDelete)
	router.HandleFunc("/cart/discount", rh.ApplyCartDiscount).Methods(http.MethodPost)
	router.HandleFunc("/cart/discount", rh.RemoveCartDiscount).Methods(http.MethodDelete)

	router.HandleFunc("/order", rh.CreateOrder).Methods(http.MethodPost)
	router.HandleFunc("/order", rh.ListOrders).Methods(http.MethodGet)
	router.HandleFunc("/order/{id}", rh.GetOrder).Methods(http.MethodGet)
	router.HandleFunc("/order/{id}/pay", rh.PayOrder).Methods(http.MethodPost)
	router.HandleFunc("/order/{id}/cancel", rh.CancelOrder).Methods(http.MethodPost)

	// Internal routes, guarded by static API key instead of user JWT
	internal := router.PathPrefix("/internal/v1").Subrouter()
	internal.Use(InternalMiddleware(internalAPIKey))
	internal.HandleFunc("/order/{id}/cancel", rh.InternalCancelOrder).Methods(http.MethodPost)
	internal.HandleFunc("/order/{id}/status", rh.InternalUpdateOrderStatus).Methods(http.MethodPut)
	internal.HandleFunc("/stock/low-stock-notify", rh.InternalLowStockNotify).Methods(http.MethodPost)
	internal.HandleFunc("/stock/low-stock", rh.InternalListLowStock).Methods(http.MethodGet)
	internal.HandleFunc("/stock/add", rh.InternalAddStock).Methods(http.MethodPost)
	internal.HandleFunc("/stock/remove", rh.InternalRemoveStock).Methods(http.MethodPost)
	internal.HandleFunc("/stock/adjust", rh.InternalAdjustStock).Methods(http.MethodPost)
	internal.HandleFunc("/stock/reserve", rh.InternalReserveStock).Methods(http.MethodPost)
	internal.HandleFunc("/stock/release", rh.InternalReleaseStock).Methods(http.MethodPost)
	internal.HandleFunc("/stock/{product_id}", rh.InternalGetStock).Methods(http.MethodGet)
	internal.HandleFunc("/stock/{product_id}/movements", rh.InternalListMovements).Methods(http.MethodGet)
	internal.HandleFunc("/discount", rh.InternalCreateDiscount).Methods(http.MethodPost)
	internal.HandleFunc("/discount", rh.InternalListDiscounts).Methods(http.MethodGet)
	internal.HandleFunc("/discount/{id}", rh.InternalDeactivateDiscount).Methods(http.MethodDelete)
	internal.HandleFunc("/settings", rh.InternalGetSettings).Methods(http.MethodGet)
	internal.HandleFunc("/settings", rh.InternalUpdateSettings).Methods(http.MethodPut)

	// middleware
	router.Use(LoggingMiddleware())
	router.Use(AuthMiddleware(rh.UserApp))

	return router
}

// Register handler
// @Summary Register user
// @Description Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 200 {object} model.RegisterResponse
// @Failure 400 {object} errors.CustomError
// @Router /register [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Register(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Login handler
// @Summary Login user
// @Description Login with email or phone and receive JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} errors.CustomError
// @Router /login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
