package middleware

import (
	"net/http"

	"ordernest/internal/domain/entity"
	"ordernest/internal/domain/repository"

	"github.com/labstack/echo/v4"
)

// AccountMiddleware restricts routes to one account type. The account type is
// fixed at registration, so the lookup result is stable per user.
type AccountMiddleware struct {
	userRepo repository.UserRepository
}

func NewAccountMiddleware(userRepo repository.UserRepository) *AccountMiddleware {
	return &AccountMiddleware{
		userRepo: userRepo,
	}
}

func (m *AccountMiddleware) RetailerOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(entity.AccountTypeRetailer, "Retailer account required", next)
}

func (m *AccountMiddleware) CustomerOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(entity.AccountTypeCustomer, "Customer account required", next)
}

func (m *AccountMiddleware) require(accountType entity.AccountType, message string, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to verify account type")
		}

		if user.AccountType != accountType {
			return echo.NewHTTPError(http.StatusForbidden, message)
		}

		return next(c)
	}
}
