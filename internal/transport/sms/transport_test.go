package sms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mocks "github.com/aliskhannn/channel-notifier/internal/mocks/transport/sms"
	"github.com/aliskhannn/channel-notifier/internal/transport"
)

func TestTransport_normalizePhone(t *testing.T) {
	tr := NewTransport(nil, validator.New(), time.Second)

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "+7 (999) 123-45-67", want: "79991234567"},
		{in: "+14155550100", want: "14155550100"},
		{in: "8613800000000", want: "8613800000000"},
		{in: "12345", wantErr: true},
		{in: "", wantErr: true},
		{in: "1234567890123456", wantErr: true},
	}

	for _, tt := range tests {
		got, err := tr.normalizePhone(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, transport.ErrInvalidEndpoint, tt.in)
			continue
		}

		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestTransport_Send(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockgatewayClient(ctrl)
	tr := NewTransport(client, validator.New(), time.Second)

	client.EXPECT().Send("79991234567", "Hi", "test").Return(nil)

	assert.NoError(t, tr.Send(context.Background(), "+7 999 123 45 67", "Hi", "test"))
}

func TestTransport_Send_GatewayError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockgatewayClient(ctrl)
	tr := NewTransport(client, validator.New(), time.Second)

	gwErr := errors.New("isv.BUSINESS_LIMIT_CONTROL")
	client.EXPECT().Send("79991234567", "Hi", "test").Return(gwErr)

	err := tr.Send(context.Background(), "+79991234567", "Hi", "test")
	assert.ErrorIs(t, err, gwErr)
}

func TestTransport_Send_InvalidPhoneSkipsGateway(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockgatewayClient(ctrl)
	tr := NewTransport(client, validator.New(), time.Second)

	err := tr.Send(context.Background(), "123", "Hi", "test")
	assert.ErrorIs(t, err, transport.ErrInvalidEndpoint)
}
