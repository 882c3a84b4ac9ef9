package payment

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"os"
	"os/exec"
	"runtime"

	"gopkg.in/yaml.v3"

	"momsdigitales/client/session"
	"momsdigitales/logs"
	"momsdigitales/util/model"
)

//go:embed plans.yaml
var defaultPlans []byte

var ErrNoPlans = errors.New("no hay planes configurados")

type Plan struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	PriceID  string   `yaml:"priceId"`
	Price    string   `yaml:"price"`
	Period   string   `yaml:"period"`
	Featured bool     `yaml:"featured"`
	Features []string `yaml:"features"`
}

type catalog struct {
	Plans []Plan `yaml:"plans"`
}

// LoadPlans lee el catálogo de path, o el embebido si path está vacío.
func LoadPlans(path string) ([]Plan, error) {
	data := defaultPlans
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading plans: %w", err)
		}
		data = b
	}
	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding plans: %w", err)
	}
	if len(c.Plans) == 0 {
		return nil, ErrNoPlans
	}
	return c.Plans, nil
}

type Backend interface {
	CreateCheckout(ctx context.Context, in model.CheckoutRequest) (string, error)
}

// Checkout pide la sesión de pago. El email solo se manda con sesión iniciada.
func Checkout(ctx context.Context, b Backend, plan Plan, s session.State) (string, error) {
	in := model.CheckoutRequest{PriceID: plan.PriceID}
	if s.IsAuthenticated() {
		in.Email = s.User.Email
	}
	return b.CreateCheckout(ctx, in)
}

// Opener abre una URL fuera de la terminal.
type Opener func(url string) error

// OpenBrowser usa el abridor del sistema.
func OpenBrowser(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}
	if err := cmd.Start(); err != nil {
		logs.Warn("no se pudo abrir el navegador", "error", err)
		return err
	}
	go cmd.Wait()
	return nil
}

// Reference es el identificador que se enseña tras volver del pago.
func Reference(q url.Values) string {
	if id := q.Get("session_id"); id != "" {
		return id
	}
	return fmt.Sprintf("REF-MANUAL-%d", rand.IntN(10000))
}
