// Package sms sends text messages through the Aliyun short message service.
package sms

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dysmsapi "github.com/alibabacloud-go/dysmsapi-20170525/v4/client"
	"github.com/alibabacloud-go/tea/tea"
)

// DefaultEndpoint is the public Dysms API endpoint.
const DefaultEndpoint = "dysmsapi.aliyuncs.com"

// codeOK is the response code of an accepted request.
const codeOK = "OK"

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrSendFailed       = errors.New("sms send failed")
)

// Config holds gateway credentials and the template used for notifications.
type Config struct {
	Endpoint        string
	RegionID        string
	AccessKeyID     string
	AccessKeySecret string
	SignName        string
	TemplateCode    string
	Timeout         time.Duration
}

// Client sends templated messages; the template is expected to expose
// ${title} and ${body} parameters.
type Client struct {
	api          *dysmsapi.Client
	signName     string
	templateCode string
}

// NewClient creates an SMS client. It performs no network calls.
func NewClient(cfg Config) (*Client, error) {
	if cfg.AccessKeyID == "" || cfg.AccessKeySecret == "" {
		return nil, fmt.Errorf("%w: access key is empty", ErrInvalidParameter)
	}

	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}

	config := &openapi.Config{
		AccessKeyId:     tea.String(cfg.AccessKeyID),
		AccessKeySecret: tea.String(cfg.AccessKeySecret),
		RegionId:        tea.String(cfg.RegionID),
		Endpoint:        tea.String(cfg.Endpoint),
	}

	if cfg.Timeout > 0 {
		ms := int(cfg.Timeout / time.Millisecond)
		config.ConnectTimeout = tea.Int(ms)
		config.ReadTimeout = tea.Int(ms)
	}

	api, err := dysmsapi.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("create dysms client: %w", err)
	}

	return &Client{api: api, signName: cfg.SignName, templateCode: cfg.TemplateCode}, nil
}

// Send delivers a message to a single phone number given as digits with country code.
func (c *Client) Send(phone, title, body string) error {
	if phone == "" {
		return fmt.Errorf("%w: phone number is empty", ErrInvalidParameter)
	}

	params, err := json.Marshal(map[string]string{"title": title, "body": body})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	request := &dysmsapi.SendSmsRequest{
		PhoneNumbers:  tea.String(phone),
		SignName:      tea.String(c.signName),
		TemplateCode:  tea.String(c.templateCode),
		TemplateParam: tea.String(string(params)),
	}

	response, err := c.api.SendSms(request)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	if response.Body == nil || response.Body.Code == nil {
		return fmt.Errorf("%w: empty response", ErrSendFailed)
	}

	if *response.Body.Code != codeOK {
		return fmt.Errorf("%w: %s: %s", ErrSendFailed, *response.Body.Code, tea.StringValue(response.Body.Message))
	}

	return nil
}
