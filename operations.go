package houdiniswap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Operations are thin typed wrappers: validate and normalize inputs, consult
// the cache where applicable, delegate to the request engine, and
// strict-decode the response into a record, failing closed with an APIError
// on an unexpected response shape.

// GetCEXTokens lists tokens supported for CEX exchanges. Results are
// memoized when caching is enabled.
func (c *Client) GetCEXTokens(ctx context.Context) ([]Token, error) {
	if c.cache != nil {
		if cached, ok := c.cache.get(cacheKeyCEXTokens, c.cacheTTL); ok {
			if c.metrics != nil {
				c.metrics.RecordCacheHit("cex_tokens")
			}
			return cached.([]Token), nil
		}
		if c.metrics != nil {
			c.metrics.RecordCacheMiss("cex_tokens")
		}
	}

	response, err := c.request(ctx, "GET", endpointTokens, nil, nil)
	if err != nil {
		return nil, err
	}
	payloads, err := asPayloadList(response, "tokens")
	if err != nil {
		return nil, err
	}
	tokens := make([]Token, 0, len(payloads))
	for _, p := range payloads {
		token, err := TokenFromPayload(p)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}

	if c.cache != nil {
		c.cache.set(cacheKeyCEXTokens, tokens)
	}
	return tokens, nil
}

// GetDEXTokens lists one page of tokens supported for DEX exchanges. chain
// is an optional short-name filter; pass "" for all chains. Results are
// memoized per page/pageSize/chain when caching is enabled.
func (c *Client) GetDEXTokens(ctx context.Context, page, pageSize int, chain string) (DEXTokensPage, error) {
	if err := validatePage(page, "page"); err != nil {
		return DEXTokensPage{}, err
	}
	if err := validatePageSize(pageSize, "page_size"); err != nil {
		return DEXTokensPage{}, err
	}

	cacheKey := cacheKeyDEXTokens(page, pageSize, chain)
	if c.cache != nil {
		if cached, ok := c.cache.get(cacheKey, c.cacheTTL); ok {
			if c.metrics != nil {
				c.metrics.RecordCacheHit("dex_tokens")
			}
			return cached.(DEXTokensPage), nil
		}
		if c.metrics != nil {
			c.metrics.RecordCacheMiss("dex_tokens")
		}
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(pageSize))
	if chain != "" {
		query.Set("chain", chain)
	}

	response, err := c.request(ctx, "GET", endpointDEXTokens, query, nil)
	if err != nil {
		return DEXTokensPage{}, err
	}
	obj, ok := response.(map[string]any)
	if !ok {
		return DEXTokensPage{}, shapeError("dexTokens", "object", response)
	}
	count, err := payloadInt(obj, "count")
	if err != nil {
		return DEXTokensPage{}, err
	}
	result := DEXTokensPage{Count: count}
	if items, ok := obj["tokens"].([]any); ok {
		result.Tokens = make([]DEXToken, 0, len(items))
		for _, item := range items {
			p, ok := item.(map[string]any)
			if !ok {
				return DEXTokensPage{}, shapeError("dexTokens", "object elements", item)
			}
			token, err := DEXTokenFromPayload(p)
			if err != nil {
				return DEXTokensPage{}, err
			}
			result.Tokens = append(result.Tokens, token)
		}
	}

	if c.cache != nil {
		c.cache.set(cacheKey, result)
	}
	return result, nil
}

// GetCEXQuote fetches a quote for a CEX exchange. amount accepts an int,
// float64, decimal.Decimal or numeric string; useXmr is optional.
func (c *Client) GetCEXQuote(ctx context.Context, amount any, fromToken, toToken string, anonymous bool, useXmr *bool) (Quote, error) {
	if err := validateAmount(amount, "amount"); err != nil {
		return Quote{}, err
	}
	amountStr, err := normalizeAmountString(amount)
	if err != nil {
		return Quote{}, err
	}
	if fromToken, err = sanitizeText(fromToken, "from_token"); err != nil {
		return Quote{}, err
	}
	if toToken, err = sanitizeText(toToken, "to_token"); err != nil {
		return Quote{}, err
	}

	query := url.Values{}
	query.Set("amount", amountStr)
	query.Set("from", fromToken)
	query.Set("to", toToken)
	query.Set("anonymous", strconv.FormatBool(anonymous))
	if useXmr != nil {
		query.Set("useXmr", strconv.FormatBool(*useXmr))
	}

	response, err := c.request(ctx, "GET", endpointQuote, query, nil)
	if err != nil {
		return Quote{}, err
	}
	obj, ok := response.(map[string]any)
	if !ok {
		return Quote{}, shapeError("quote", "object", response)
	}
	return QuoteFromPayload(obj)
}

// GetDEXQuote fetches candidate quotes for a DEX swap. The returned slice
// may be empty when no routes are available.
func (c *Client) GetDEXQuote(ctx context.Context, amount any, tokenIDFrom, tokenIDTo string) ([]DEXQuote, error) {
	if err := validateAmount(amount, "amount"); err != nil {
		return nil, err
	}
	amountStr, err := normalizeAmountString(amount)
	if err != nil {
		return nil, err
	}
	if tokenIDFrom, err = sanitizeText(tokenIDFrom, "token_id_from"); err != nil {
		return nil, err
	}
	if tokenIDTo, err = sanitizeText(tokenIDTo, "token_id_to"); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("amount", amountStr)
	query.Set("tokenIdFrom", tokenIDFrom)
	query.Set("tokenIdTo", tokenIDTo)

	response, err := c.request(ctx, "GET", endpointDEXQuote, query, nil)
	if err != nil {
		return nil, err
	}
	payloads, err := asPayloadList(response, "dexQuote")
	if err != nil {
		return nil, err
	}
	quotes := make([]DEXQuote, 0, len(payloads))
	for _, p := range payloads {
		quote, err := DEXQuoteFromPayload(p)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}

// CEXExchangeRequest carries the parameters for PostCEXExchange. Amount
// accepts an int, float64, decimal.Decimal or numeric string; the optional
// string fields are omitted from the wire payload when empty.
type CEXExchangeRequest struct {
	Amount      any
	FromToken   string
	ToToken     string
	AddressTo   string
	Anonymous   bool
	ReceiverTag string
	WalletID    string
	IP          string
	UserAgent   string
	Timezone    string
	UseXmr      *bool
}

// PostCEXExchange submits a CEX exchange. This is a state-changing call: the
// returned record's HoudiniID correlates all subsequent status lookups.
func (c *Client) PostCEXExchange(ctx context.Context, req CEXExchangeRequest) (ExchangeResponse, error) {
	if err := validateAmount(req.Amount, "amount"); err != nil {
		return ExchangeResponse{}, err
	}
	amount, err := normalizeAmountDecimal(req.Amount)
	if err != nil {
		return ExchangeResponse{}, err
	}
	fromToken, err := sanitizeText(req.FromToken, "from_token")
	if err != nil {
		return ExchangeResponse{}, err
	}
	toToken, err := sanitizeText(req.ToToken, "to_token")
	if err != nil {
		return ExchangeResponse{}, err
	}
	addressTo, err := sanitizeText(req.AddressTo, "address_to")
	if err != nil {
		return ExchangeResponse{}, err
	}

	// The API expects amount as a JSON number; encoding the decimal's
	// canonical text avoids a float64 round trip.
	body := map[string]any{
		"amount":    json.Number(amount.String()),
		"from":      fromToken,
		"to":        toToken,
		"addressTo": addressTo,
		"anonymous": req.Anonymous,
	}
	setOptionalString(body, "receiverTag", req.ReceiverTag)
	setOptionalString(body, "walletId", req.WalletID)
	setOptionalString(body, "ip", req.IP)
	setOptionalString(body, "userAgent", req.UserAgent)
	setOptionalString(body, "timezone", req.Timezone)
	if req.UseXmr != nil {
		body["useXmr"] = *req.UseXmr
	}

	response, err := c.request(ctx, "POST", endpointExchange, nil, body)
	if err != nil {
		return ExchangeResponse{}, err
	}
	obj, ok := response.(map[string]any)
	if !ok {
		return ExchangeResponse{}, shapeError("exchange", "object", response)
	}
	return ExchangeResponseFromPayload(obj)
}

// DEXExchangeRequest carries the parameters for PostDEXExchange. Route must
// be the opaque route returned by GetDEXQuote, passed back unmodified.
type DEXExchangeRequest struct {
	Amount      any
	TokenIDFrom string
	TokenIDTo   string
	AddressFrom string
	AddressTo   string
	Swap        string
	QuoteID     string
	Route       RouteDTO
}

// PostDEXExchange submits a DEX exchange against a previously fetched quote.
func (c *Client) PostDEXExchange(ctx context.Context, req DEXExchangeRequest) (ExchangeResponse, error) {
	if err := validateAmount(req.Amount, "amount"); err != nil {
		return ExchangeResponse{}, err
	}
	amount, err := normalizeAmountDecimal(req.Amount)
	if err != nil {
		return ExchangeResponse{}, err
	}
	tokenIDFrom, err := sanitizeText(req.TokenIDFrom, "token_id_from")
	if err != nil {
		return ExchangeResponse{}, err
	}
	tokenIDTo, err := sanitizeText(req.TokenIDTo, "token_id_to")
	if err != nil {
		return ExchangeResponse{}, err
	}
	addressFrom, err := sanitizeText(req.AddressFrom, "address_from")
	if err != nil {
		return ExchangeResponse{}, err
	}
	addressTo, err := sanitizeText(req.AddressTo, "address_to")
	if err != nil {
		return ExchangeResponse{}, err
	}
	swap, err := sanitizeText(req.Swap, "swap")
	if err != nil {
		return ExchangeResponse{}, err
	}
	quoteID, err := sanitizeText(req.QuoteID, "quote_id")
	if err != nil {
		return ExchangeResponse{}, err
	}
	if req.Route.IsZero() {
		return ExchangeResponse{}, newValidationErrorf("route is required")
	}

	body := map[string]any{
		"amount":      json.Number(amount.String()),
		"tokenIdFrom": tokenIDFrom,
		"tokenIdTo":   tokenIDTo,
		"addressFrom": addressFrom,
		"addressTo":   addressTo,
		"swap":        swap,
		"quoteId":     quoteID,
		"route":       req.Route.Payload(),
	}

	response, err := c.request(ctx, "POST", endpointDEXExchange, nil, body)
	if err != nil {
		return ExchangeResponse{}, err
	}
	obj, ok := response.(map[string]any)
	if !ok {
		return ExchangeResponse{}, shapeError("dexExchange", "object", response)
	}
	return ExchangeResponseFromPayload(obj)
}

// DEXApproveRequest carries the parameters for PostDEXApprove.
type DEXApproveRequest struct {
	TokenIDFrom string
	TokenIDTo   string
	AddressFrom string
	Amount      any
	Swap        string
	Route       RouteDTO
}

// PostDEXApprove prepares the token approval transaction(s) required before
// a DEX swap. The caller must sign and broadcast the returned transaction
// data; an empty slice means no approval is needed.
func (c *Client) PostDEXApprove(ctx context.Context, req DEXApproveRequest) ([]DEXApproveResponse, error) {
	if err := validateAmount(req.Amount, "amount"); err != nil {
		return nil, err
	}
	amount, err := normalizeAmountDecimal(req.Amount)
	if err != nil {
		return nil, err
	}
	tokenIDFrom, err := sanitizeText(req.TokenIDFrom, "token_id_from")
	if err != nil {
		return nil, err
	}
	tokenIDTo, err := sanitizeText(req.TokenIDTo, "token_id_to")
	if err != nil {
		return nil, err
	}
	addressFrom, err := sanitizeText(req.AddressFrom, "address_from")
	if err != nil {
		return nil, err
	}
	swap, err := sanitizeText(req.Swap, "swap")
	if err != nil {
		return nil, err
	}
	if req.Route.IsZero() {
		return nil, newValidationErrorf("route is required")
	}

	body := map[string]any{
		"tokenIdFrom": tokenIDFrom,
		"tokenIdTo":   tokenIDTo,
		"addressFrom": addressFrom,
		"amount":      json.Number(amount.String()),
		"swap":        swap,
		"route":       req.Route.Payload(),
	}

	response, err := c.request(ctx, "POST", endpointDEXApprove, nil, body)
	if err != nil {
		return nil, err
	}
	payloads, err := asPayloadList(response, "dexApprove")
	if err != nil {
		return nil, err
	}
	approvals := make([]DEXApproveResponse, 0, len(payloads))
	for _, p := range payloads {
		approval, err := DEXApproveResponseFromPayload(p)
		if err != nil {
			return nil, err
		}
		approvals = append(approvals, approval)
	}
	return approvals, nil
}

// PostDEXConfirmTx reports the blockchain transaction hash for a submitted
// DEX exchange and returns whether the server accepted the confirmation.
func (c *Client) PostDEXConfirmTx(ctx context.Context, transactionID, txHash string) (bool, error) {
	transactionID, err := sanitizeText(transactionID, "transaction_id")
	if err != nil {
		return false, err
	}
	if err := validateHexString(txHash, "tx_hash"); err != nil {
		return false, err
	}

	body := map[string]any{
		"id":     transactionID,
		"txHash": strings.TrimSpace(txHash),
	}

	response, err := c.request(ctx, "POST", endpointDEXConfirmTx, nil, body)
	if err != nil {
		return false, err
	}
	// The endpoint returns a bare boolean, which the engine wraps when it is
	// not valid JSON.
	switch v := response.(type) {
	case bool:
		return v, nil
	case map[string]any:
		if raw, ok := v["response"].(string); ok {
			return strings.EqualFold(strings.TrimSpace(raw), "true"), nil
		}
		if b, ok := v["response"].(bool); ok {
			return b, nil
		}
	}
	return false, shapeError("dexConfirmTx", "boolean", response)
}

// GetStatus fetches the lifecycle snapshot for a transaction by its
// correlation id.
func (c *Client) GetStatus(ctx context.Context, houdiniID string) (Status, error) {
	if err := validateCorrelationID(houdiniID); err != nil {
		return Status{}, err
	}

	query := url.Values{}
	query.Set("id", houdiniID)

	response, err := c.request(ctx, "GET", endpointStatus, query, nil)
	if err != nil {
		return Status{}, err
	}
	obj, ok := response.(map[string]any)
	if !ok {
		return Status{}, shapeError("status", "object", response)
	}
	if _, ok := obj["houdiniId"]; !ok {
		obj["houdiniId"] = houdiniID
	}
	return StatusFromPayload(obj)
}

// GetMinMax fetches the exchange amount bounds for a token pair. cexOnly is
// optional.
func (c *Client) GetMinMax(ctx context.Context, fromToken, toToken string, anonymous bool, cexOnly *bool) (MinMax, error) {
	fromToken, err := sanitizeText(fromToken, "from_token")
	if err != nil {
		return MinMax{}, err
	}
	toToken, err = sanitizeText(toToken, "to_token")
	if err != nil {
		return MinMax{}, err
	}

	query := url.Values{}
	query.Set("from", fromToken)
	query.Set("to", toToken)
	query.Set("anonymous", strconv.FormatBool(anonymous))
	if cexOnly != nil {
		query.Set("cexOnly", strconv.FormatBool(*cexOnly))
	}

	response, err := c.request(ctx, "GET", endpointMinMax, query, nil)
	if err != nil {
		return MinMax{}, err
	}
	items, ok := response.([]any)
	if !ok {
		return MinMax{}, shapeError("minMax", "list", response)
	}
	return MinMaxFromList(items)
}

// GetVolume fetches the platform's total swap volume.
func (c *Client) GetVolume(ctx context.Context) (Volume, error) {
	response, err := c.request(ctx, "GET", endpointVolume, nil, nil)
	if err != nil {
		return Volume{}, err
	}
	// The endpoint has returned both a single-element array and a bare
	// object.
	switch v := response.(type) {
	case []any:
		if len(v) > 0 {
			if obj, ok := v[0].(map[string]any); ok {
				return VolumeFromPayload(obj)
			}
		}
	case map[string]any:
		return VolumeFromPayload(v)
	}
	return Volume{}, shapeError("volume", "list or object", response)
}

// GetWeeklyVolume fetches per-week swap volume records.
func (c *Client) GetWeeklyVolume(ctx context.Context) ([]WeeklyVolume, error) {
	response, err := c.request(ctx, "GET", endpointWeeklyVolume, nil, nil)
	if err != nil {
		return nil, err
	}
	switch v := response.(type) {
	case []any:
		volumes := make([]WeeklyVolume, 0, len(v))
		for _, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, shapeError("weeklyVolume", "object elements", item)
			}
			volume, err := WeeklyVolumeFromPayload(obj)
			if err != nil {
				return nil, err
			}
			volumes = append(volumes, volume)
		}
		return volumes, nil
	case map[string]any:
		volume, err := WeeklyVolumeFromPayload(v)
		if err != nil {
			return nil, err
		}
		return []WeeklyVolume{volume}, nil
	}
	return nil, shapeError("weeklyVolume", "list or object", response)
}

func setOptionalString(body map[string]any, key, value string) {
	if value != "" {
		body[key] = value
	}
}

// asPayloadList asserts that response is a JSON array of objects, failing
// closed with an APIError on any other shape.
func asPayloadList(response any, endpoint string) ([]map[string]any, error) {
	items, ok := response.([]any)
	if !ok {
		return nil, shapeError(endpoint, "list", response)
	}
	payloads := make([]map[string]any, 0, len(items))
	for _, item := range items {
		p, ok := item.(map[string]any)
		if !ok {
			return nil, shapeError(endpoint, "object elements", item)
		}
		payloads = append(payloads, p)
	}
	return payloads, nil
}

func shapeError(endpoint, expected string, response any) *APIError {
	return &APIError{
		Message:  fmt.Sprintf("unexpected response type from %s endpoint: expected %s, got %T", endpoint, expected, response),
		Response: response,
	}
}
