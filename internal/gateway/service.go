package gateway

import (
	"context"
	"fmt"

	pe "github.com/shieldai/shield/internal/errors"
	"github.com/shieldai/shield/internal/estimator"
)

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse is the body returned by POST /chat.
type ChatResponse struct {
	Answer *string `json:"answer"`
}

// PredictResponse is the body returned by POST /predict.
type PredictResponse struct {
	Premium *float64 `json:"premium"`
}

// Chat asks the assistant a question and returns its answer.
func (c *Client) Chat(ctx context.Context, question string) (string, error) {
	var resp ChatResponse
	if err := c.Post(ctx, EndpointChat, ChatRequest{Question: question}, &resp); err != nil {
		return "", err
	}
	if resp.Answer == nil {
		return "", pe.GatewayDecode(EndpointChat, fmt.Errorf("response has no answer field"))
	}
	return *resp.Answer, nil
}

// Predict submits the whole form and returns the computed premium.
// The form is encoded as-is; range hints are not enforced here.
func (c *Client) Predict(ctx context.Context, form estimator.FormState) (float64, error) {
	var resp PredictResponse
	if err := c.Post(ctx, EndpointPredict, form, &resp); err != nil {
		return 0, err
	}
	if resp.Premium == nil {
		return 0, pe.GatewayDecode(EndpointPredict, fmt.Errorf("response has no premium field"))
	}
	return *resp.Premium, nil
}
