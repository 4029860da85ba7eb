package payments

import (
	"fmt"
	"log"

	"edhub/config"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// ChargeRequest describes a single course purchase sent to the gateway
type ChargeRequest struct {
	UserID     uint    `json:"user_id"`
	CourseID   uint    `json:"course_id"`
	Amount     float64 `json:"amount"`
	Method     string  `json:"method"`
	CouponCode string  `json:"coupon_code,omitempty"`
}

// ChargeResult is the gateway's settlement outcome
type ChargeResult struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

// Gateway settles course purchases. With no gateway URL configured every
// charge settles locally with a generated transaction id; when a URL is set
// the charge is forwarded to the remote sandbox.
type Gateway struct {
	client *resty.Client
	url    string
	apiKey string
}

func NewGateway(cfg *config.Config) *Gateway {
	return &Gateway{
		client: resty.New(),
		url:    cfg.GatewayURL,
		apiKey: cfg.GatewayAPIKey,
	}
}

// Charge settles a purchase and returns the transaction outcome
func (g *Gateway) Charge(req ChargeRequest) (*ChargeResult, error) {
	if g.url == "" {
		// Local settlement. Transaction ids are UUIDs, globally unique.
		return &ChargeResult{
			TransactionID: uuid.NewString(),
			Status:        "completed",
		}, nil
	}

	resp, err := g.client.R().
		SetHeader("Authorization", "Bearer "+g.apiKey).
		SetBody(req).
		SetResult(&ChargeResult{}).
		Post(g.url + "/charges")
	if err != nil {
		log.Printf("Payment gateway unreachable: %v", err)
		return nil, err
	}
	if resp.StatusCode() != 200 && resp.StatusCode() != 201 {
		log.Printf("Payment gateway rejected charge: %s", resp.String())
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode())
	}

	result := resp.Result().(*ChargeResult)
	if result.TransactionID == "" {
		return nil, fmt.Errorf("gateway returned no transaction id")
	}

	return result, nil
}
