package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const requestTimeout = 10 * time.Second

type Flutterwave struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewFlutterwave(secretKey, baseURL string) *Flutterwave {
	return &Flutterwave{
		secretKey: secretKey,
		baseURL:   baseURL,
		client:    &http.Client{Timeout: requestTimeout},
	}
}

type flutterwaveEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (f *Flutterwave) Initiate(ctx context.Context, req InitiateRequest) (*InitiateResult, error) {
	payload := map[string]interface{}{
		"tx_ref":       req.TxRef,
		"amount":       req.Amount.StringFixed(2),
		"currency":     req.Currency,
		"redirect_url": req.RedirectURL,
		"customer":     req.Customer,
	}

	body, err := f.post(ctx, "/payments", payload)
	if err != nil {
		return nil, err
	}

	var envelope flutterwaveEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}
	if envelope.Status != "success" {
		return nil, &Error{StatusCode: http.StatusOK, Message: envelope.Message}
	}

	var data struct {
		Link string `json:"link"`
	}
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}

	return &InitiateResult{CheckoutURL: data.Link, Raw: body}, nil
}

func (f *Flutterwave) Verify(ctx context.Context, providerTxID string) (*VerifyResult, error) {
	body, err := f.get(ctx, "/transactions/"+providerTxID+"/verify")
	if err != nil {
		return nil, err
	}

	var envelope flutterwaveEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}
	if envelope.Status != "success" {
		return nil, &Error{StatusCode: http.StatusOK, Message: envelope.Message}
	}

	var data struct {
		Status   string      `json:"status"`
		Amount   json.Number `json:"amount"`
		Currency string      `json:"currency"`
		TxRef    string      `json:"tx_ref"`
	}
	dec := json.NewDecoder(bytes.NewReader(envelope.Data))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}

	amount, err := decimalFromNumber(data.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse verified amount: %w", err)
	}

	return &VerifyResult{
		Status:   data.Status,
		Amount:   amount,
		Currency: data.Currency,
		TxRef:    data.TxRef,
		Raw:      body,
	}, nil
}

func (f *Flutterwave) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return f.do(req)
}

func (f *Flutterwave) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return f.do(req)
}

func (f *Flutterwave) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+f.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(body)
		var envelope flutterwaveEnvelope
		if json.Unmarshal(body, &envelope) == nil && envelope.Message != "" {
			msg = envelope.Message
		}
		return nil, &Error{StatusCode: resp.StatusCode, Message: msg}
	}

	return body, nil
}
