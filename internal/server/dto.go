package server

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/kreolabs/boutik/internal/apperr"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkRequest runs the validator tags and folds failures into the
// validation sentinel so RespondError maps them to 400.
func checkRequest(req any) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	return nil
}

type addClientRequest struct {
	Name string `json:"name" validate:"required"`
}

type addTransactionRequest struct {
	Description string  `json:"description" validate:"required"`
	Amount      float64 `json:"amount" validate:"gte=0"`
}

type partialPaymentRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
}

type settleRequest struct {
	FullClear bool `json:"fullClear"`
}

type bottlesOwedRequest struct {
	Beer     int `json:"beer" validate:"gte=0"`
	Guinness int `json:"guinness" validate:"gte=0"`
	Malta    int `json:"malta" validate:"gte=0"`
	Coca     int `json:"coca" validate:"gte=0"`
	Chopines int `json:"chopines" validate:"gte=0"`
}

type recordReturnRequest struct {
	Description string `json:"description" validate:"required"`
}

type categoryRequest struct {
	Name          string  `json:"name" validate:"required"`
	VATPercentage float64 `json:"vatPercentage" validate:"gte=0,lte=100"`
}

type templateRequest struct {
	Name          string  `json:"name" validate:"required"`
	UnitPrice     float64 `json:"unitPrice" validate:"gte=0"`
	IsVATNil      bool    `json:"isVatNil"`
	IsVATIncluded bool    `json:"isVatIncluded"`
	VATPercentage float64 `json:"vatPercentage" validate:"gte=0,lte=100"`
}

type orderItemRequest struct {
	TemplateID    string  `json:"templateId"`
	Name          string  `json:"name" validate:"required"`
	Quantity      float64 `json:"quantity" validate:"gte=0"`
	UnitPrice     float64 `json:"unitPrice" validate:"gte=0"`
	IsVATNil      bool    `json:"isVatNil"`
	IsVATIncluded bool    `json:"isVatIncluded"`
	VATPercentage float64 `json:"vatPercentage" validate:"gte=0,lte=100"`
	IsAvailable   bool    `json:"isAvailable"`
}

type orderRequest struct {
	CategoryID string             `json:"categoryId" validate:"required"`
	OrderDate  string             `json:"orderDate" validate:"required"`
	Items      []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type updateOrderRequest struct {
	OrderDate string             `json:"orderDate" validate:"required"`
	Items     []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type priceItemRequest struct {
	Name      string  `json:"name" validate:"required"`
	UnitPrice float64 `json:"unitPrice" validate:"gte=0"`
	Category  string  `json:"category"`
}

type overItemRequest struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

type overQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

type overAdjustRequest struct {
	Delta int `json:"delta" validate:"required"`
}
