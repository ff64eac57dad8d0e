package houdiniswap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeBuilderRequiresKind(t *testing.T) {
	client := newTestClient(t, "http://localhost:1")

	_, err := client.ExchangeBuilder().
		Amount("1.0").
		FromToken("ETH").
		ToToken("BNB").
		AddressTo("0x1234567890abcdef1234567890abcdef12345678").
		Execute(context.Background())

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "exchange type")
}

func TestExchangeBuilderCEXValidation(t *testing.T) {
	client := newTestClient(t, "http://localhost:1")

	tests := []struct {
		name  string
		build func() *ExchangeBuilder
		want  string
	}{
		{
			"missing amount",
			func() *ExchangeBuilder {
				return client.ExchangeBuilder().CEX().FromToken("ETH").ToToken("BNB").AddressTo("0xabcdef1234")
			},
			"amount is required",
		},
		{
			"missing from token",
			func() *ExchangeBuilder {
				return client.ExchangeBuilder().CEX().Amount("1.0").ToToken("BNB").AddressTo("0xabcdef1234")
			},
			"from_token is required",
		},
		{
			"missing destination address",
			func() *ExchangeBuilder {
				return client.ExchangeBuilder().CEX().Amount("1.0").FromToken("ETH").ToToken("BNB")
			},
			"address_to is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build().Execute(context.Background())
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Message, tt.want)
		})
	}
}

func TestExchangeBuilderRemembersSetterError(t *testing.T) {
	client := newTestClient(t, "http://localhost:1")

	_, err := client.ExchangeBuilder().
		CEX().
		Amount("-5"). // invalid amount recorded here
		FromToken("ETH").
		ToToken("BNB").
		AddressTo("0x1234567890abcdef1234567890abcdef12345678").
		Execute(context.Background())

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "greater than 0")
}

func TestExchangeBuilderCEXExecute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/exchange", r.URL.Path)
		w.Write([]byte(`{"houdiniId":"` + testHoudiniID + `","status":0}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	resp, err := client.ExchangeBuilder().
		CEX().
		Amount("1.0").
		FromToken("ETH").
		ToToken("BNB").
		AddressTo("0x1234567890abcdef1234567890abcdef12345678").
		Anonymous(true).
		Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, testHoudiniID, resp.HoudiniID)
	assert.Equal(t, StatusWaiting, resp.Status)
}

func TestExchangeBuilderDEXValidation(t *testing.T) {
	client := newTestClient(t, "http://localhost:1")

	// All CEX requirements satisfied; the DEX extras are still missing.
	_, err := client.ExchangeBuilder().
		DEX().
		Amount("1.0").
		FromToken("tok-1").
		ToToken("tok-2").
		AddressTo("0x1234567890abcdef1234567890abcdef12345678").
		Execute(context.Background())

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "address_from is required")
}

func TestExchangeBuilderDEXExecute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dexExchange", r.URL.Path)
		w.Write([]byte(`{"houdiniId":"` + testHoudiniID + `"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	resp, err := client.ExchangeBuilder().
		DEX().
		Amount("1.0").
		FromToken("tok-1").
		ToToken("tok-2").
		AddressFrom("0x1234567890abcdef1234567890abcdef12345678").
		AddressTo("0xabcdef1234567890abcdef1234567890abcdef12").
		Swap("swap-1").
		QuoteID("quote-1").
		Route(RouteDTOFromPayload(Payload{"bridge": "wormhole"})).
		Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, testHoudiniID, resp.HoudiniID)
}

func TestExchangeBuilderRejectsEmptyRoute(t *testing.T) {
	client := newTestClient(t, "http://localhost:1")

	_, err := client.ExchangeBuilder().
		DEX().
		Route(RouteDTO{}).
		Execute(context.Background())

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "route must not be empty")
}
