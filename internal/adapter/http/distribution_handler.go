package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	distDomain "rbf-backend/internal/domain/distribution"
	"rbf-backend/internal/domain/payment"
	"rbf-backend/internal/usecase/distribution"
)

// Distributor runs one payment's fan-out. Satisfied by
// usecase/distribution.Usecase.
type Distributor interface {
	Distribute(ctx context.Context, paymentID string) (*distribution.Result, error)
}

type DistributionHandler struct{ uc Distributor }

func NewDistributionHandler(uc Distributor) *DistributionHandler {
	return &DistributionHandler{uc: uc}
}

type distributeReq struct {
	PaymentID string `param:"payment_id" validate:"required,hex32"`
}

func (h *DistributionHandler) DistributePayment(c echo.Context) error {
	var req distributeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	res, err := h.uc.Distribute(c.Request().Context(), req.PaymentID)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrNotFound):
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "payment not found"})
		case errors.Is(err, payment.ErrNotSettled):
			return c.JSON(http.StatusConflict, ErrorResponse{Error: "payment is not settled"})
		case errors.Is(err, distDomain.ErrInvalidInput):
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		}
	}
	return c.JSON(http.StatusOK, res)
}
