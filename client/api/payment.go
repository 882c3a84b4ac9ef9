package api

import (
	"context"
	"net/http"

	"momsdigitales/util/model"
)

// CreateCheckout pide al backend la URL de la sesión de pago alojada.
func (c *Client) CreateCheckout(ctx context.Context, in model.CheckoutRequest) (string, error) {
	var res model.CheckoutResponse
	if err := c.doJSON(ctx, http.MethodPost, "/payment/create-checkout-session", in, &res); err != nil {
		return "", err
	}
	return res.URL, nil
}
