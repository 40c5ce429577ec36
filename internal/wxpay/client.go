package wxpay

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minimall/mallcore/internal/config"
	"github.com/minimall/mallcore/pkg/clients"
	"go.uber.org/zap"
)

const (
	unifiedOrderURL = "https://api.mch.weixin.qq.com/pay/unifiedorder"
	orderQueryURL   = "https://api.mch.weixin.qq.com/pay/orderquery"

	contentTypeXML = "text/xml"

	ResultSuccess = "SUCCESS"
)

var (
	ErrBadSignature       = errors.New("invalid notification signature")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrGatewayRejected    = errors.New("payment gateway rejected request")
)

// Notification is the neutral view of an asynchronous payment notification
// consumed by the payment service.
type Notification struct {
	OutTradeNo    string
	TransactionID string
	ResultCode    string
	TotalFee      int64
}

func (n *Notification) Succeeded() bool {
	return n.ResultCode == ResultSuccess
}

type Client struct {
	appID     string
	mchID     string
	apiKey    string
	notifyURL string
	client    clients.HTTPClientI
	mock      bool
}

// New builds a gateway client. Without merchant credentials the client runs
// in mock mode: prepay handles are synthesized locally and notification
// signatures are not checked, which keeps the payment flow usable in local
// and test environments.
func New(cfg *config.Config, client clients.HTTPClientI) *Client {
	c := &Client{
		appID:     cfg.WechatAppID,
		mchID:     cfg.WechatMchID,
		apiKey:    cfg.WechatAPIKey,
		notifyURL: cfg.WechatNotifyURL,
		client:    client,
		mock:      !cfg.GatewayConfigured(),
	}
	if c.mock {
		zap.L().Warn("wechat pay credentials missing, gateway client running in mock mode")
	}
	return c
}

func (c *Client) MockMode() bool {
	return c.mock
}

// Fen converts a major-unit amount to integer minor units. Amounts cross the
// gateway boundary in fen; the domain stores yuan decimals.
func Fen(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Yuan converts gateway minor units back to a major-unit amount.
func Yuan(fen int64) float64 {
	return float64(fen) / 100
}

func nonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// UnifiedOrder requests a prepay handle for an order. In mock mode a
// deterministic handle is returned without any network round-trip.
func (c *Client) UnifiedOrder(ctx context.Context, outTradeNo string, amount float64, body, clientIP, openID string) (string, error) {
	if c.mock {
		return "MOCKPREPAY" + outTradeNo, nil
	}

	params := map[string]string{
		"appid":            c.appID,
		"mch_id":           c.mchID,
		"nonce_str":        nonce(),
		"body":             body,
		"out_trade_no":     outTradeNo,
		"total_fee":        strconv.FormatInt(Fen(amount), 10),
		"spbill_create_ip": clientIP,
		"notify_url":       c.notifyURL,
		"trade_type":       "JSAPI",
		"openid":           openID,
	}
	params["sign"] = Sign(params, c.apiKey)

	resp, err := c.post(ctx, unifiedOrderURL, params)
	if err != nil {
		return "", err
	}

	prepayID := resp["prepay_id"]
	if prepayID == "" {
		return "", fmt.Errorf("%w: %s", ErrGatewayRejected, resp["err_code_des"])
	}
	return prepayID, nil
}

// ClientParams derives the client-signable payment parameters from a prepay
// handle. The client passes them verbatim to the in-app payment SDK.
func (c *Client) ClientParams(prepayID string) map[string]string {
	params := map[string]string{
		"appId":     c.appID,
		"timeStamp": strconv.FormatInt(time.Now().Unix(), 10),
		"nonceStr":  nonce(),
		"package":   "prepay_id=" + prepayID,
		"signType":  "MD5",
	}
	params["paySign"] = Sign(params, c.apiKey)
	return params
}

// ParseNotification decodes and verifies an inbound payment notification.
// Signature verification is skipped only in mock mode.
func (c *Client) ParseNotification(payload []byte) (*Notification, error) {
	params, err := DecodeXML(payload)
	if err != nil {
		return nil, err
	}

	if !c.mock && !VerifySign(params, c.apiKey) {
		return nil, ErrBadSignature
	}

	totalFee, _ := strconv.ParseInt(params["total_fee"], 10, 64)
	return &Notification{
		OutTradeNo:    params["out_trade_no"],
		TransactionID: params["transaction_id"],
		ResultCode:    params["result_code"],
		TotalFee:      totalFee,
	}, nil
}

// QueryOrder actively polls the gateway for the state of a payment, used
// when a notification may have been lost. In mock mode the payment is
// reported as successful so local flows can complete.
func (c *Client) QueryOrder(ctx context.Context, outTradeNo string) (*Notification, error) {
	if c.mock {
		return &Notification{
			OutTradeNo:    outTradeNo,
			TransactionID: "MOCKTXN" + outTradeNo,
			ResultCode:    ResultSuccess,
		}, nil
	}

	params := map[string]string{
		"appid":        c.appID,
		"mch_id":       c.mchID,
		"out_trade_no": outTradeNo,
		"nonce_str":    nonce(),
	}
	params["sign"] = Sign(params, c.apiKey)

	resp, err := c.post(ctx, orderQueryURL, params)
	if err != nil {
		return nil, err
	}

	resultCode := resp["result_code"]
	if resp["trade_state"] != ResultSuccess {
		resultCode = resp["trade_state"]
	}

	totalFee, _ := strconv.ParseInt(resp["total_fee"], 10, 64)
	return &Notification{
		OutTradeNo:    resp["out_trade_no"],
		TransactionID: resp["transaction_id"],
		ResultCode:    resultCode,
		TotalFee:      totalFee,
	}, nil
}

func (c *Client) post(ctx context.Context, url string, params map[string]string) (map[string]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	statusCode, respBody, err := c.client.Post(url, contentTypeXML, EncodeXML(params))
	if err != nil {
		zap.L().Error("gateway request failed", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrGatewayUnavailable, err)
	}
	if statusCode != http.StatusOK {
		zap.L().Error("gateway returned unexpected status", zap.String("url", url), zap.Int("status", statusCode))
		return nil, fmt.Errorf("%w: status %d", ErrGatewayUnavailable, statusCode)
	}

	resp, err := DecodeXML(respBody)
	if err != nil {
		return nil, err
	}
	if resp["return_code"] != ResultSuccess {
		return nil, fmt.Errorf("%w: %s", ErrGatewayRejected, resp["return_msg"])
	}
	if !VerifySign(resp, c.apiKey) {
		return nil, ErrBadSignature
	}
	return resp, nil
}
