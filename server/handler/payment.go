package handler

import (
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"momsdigitales/logs"
	"momsdigitales/server/etc"
	"momsdigitales/util"
	"momsdigitales/util/model"
)

// CheckoutHandler imita a la pasarela: devuelve una URL que vuelve a /payment-success.
func CheckoutHandler(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	var in model.CheckoutRequest
	if err := util.DecodeJSON(req.Body, &in); err != nil || in.PriceID == "" {
		etc.Fail(w, http.StatusBadRequest, "Plan requerido")
		return
	}
	session := "cs_test_" + uuid.NewString()
	logs.Info("checkout", "price_id", in.PriceID, "session_id", session, "with_email", in.Email != "")

	q := url.Values{}
	q.Set("session_id", session)
	q.Set("price", in.PriceID)
	etc.Response(w, http.StatusOK, model.CheckoutResponse{URL: "https://checkout.stripe.test/pay?" + q.Encode()})
}
