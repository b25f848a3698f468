package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mehedihasanwd/easy-cart-api-v2/internal/domain"
)

const intentsURL = "https://api.stripe.com/v1/payment_intents"

type Gateway struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

func NewGateway(secretKey string) *Gateway {
	return &Gateway{secretKey: secretKey, baseURL: intentsURL, httpClient: &http.Client{Timeout: 10 * time.Second}}
}

type intentResp struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

type errResp struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateIntent authorizes a card charge for the given amount in minor units.
// Nothing is captured yet; the caller hands the client secret to the buyer
// for confirmation.
func (g *Gateway) CreateIntent(ctx context.Context, amountMinor int64, currency string) (*domain.PaymentIntent, error) {
	if g.secretKey == "" {
		return nil, fmt.Errorf("%w: missing STRIPE_SECRET_KEY", domain.ErrGateway)
	}
	if amountMinor <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrGateway)
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountMinor, 10))
	form.Set("currency", currency)
	form.Set("payment_method_types[]", "card")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		var e errResp
		if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
			return nil, fmt.Errorf("%w: status %d: %s", domain.ErrGateway, res.StatusCode, e.Error.Message)
		}
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrGateway, res.StatusCode, string(body))
	}

	var intent intentResp
	if err := json.NewDecoder(res.Body).Decode(&intent); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrGateway, err)
	}
	if intent.ID == "" || intent.ClientSecret == "" {
		return nil, fmt.Errorf("%w: incomplete payment intent response", domain.ErrGateway)
	}
	return &domain.PaymentIntent{ID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}
