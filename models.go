package houdiniswap

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Payload is the loosely typed JSON object shape returned by the API before
// strict decoding into a record.
type Payload = map[string]any

// TransactionStatus is the closed set of transaction lifecycle states. The
// server owns transitions; the client only classifies a status as terminal
// or not.
type TransactionStatus int

const (
	StatusNew         TransactionStatus = -1
	StatusWaiting     TransactionStatus = 0
	StatusConfirming  TransactionStatus = 1
	StatusExchanging  TransactionStatus = 2
	StatusAnonymizing TransactionStatus = 3
	StatusFinished    TransactionStatus = 4
	StatusExpired     TransactionStatus = 5
	StatusFailed      TransactionStatus = 6
	StatusRefunded    TransactionStatus = 7
	StatusDeleted     TransactionStatus = 8
)

var statusNames = map[TransactionStatus]string{
	StatusNew:         "NEW",
	StatusWaiting:     "WAITING",
	StatusConfirming:  "CONFIRMING",
	StatusExchanging:  "EXCHANGING",
	StatusAnonymizing: "ANONYMIZING",
	StatusFinished:    "FINISHED",
	StatusExpired:     "EXPIRED",
	StatusFailed:      "FAILED",
	StatusRefunded:    "REFUNDED",
	StatusDeleted:     "DELETED",
}

// ParseTransactionStatus converts a numeric status code into a
// TransactionStatus. Codes outside the defined enumeration fail with a
// ValidationError rather than mapping to a default state.
func ParseTransactionStatus(code int) (TransactionStatus, error) {
	s := TransactionStatus(code)
	if _, ok := statusNames[s]; !ok {
		return 0, newValidationErrorf("unknown transaction status code %d", code)
	}
	return s, nil
}

// IsTerminal reports whether no further transition is expected from s.
func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case StatusFinished, StatusExpired, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

func (s TransactionStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("TransactionStatus(%d)", int(s))
}

// Network describes a blockchain a token lives on. It is embedded by value in
// Token; decoded networks never share state.
type Network struct {
	Name              string
	ShortName         string
	AddressValidation string
	MemoNeeded        bool
	ExplorerURL       string
	AddressURL        string
	Priority          *int
	Kind              string
	ChainID           *int
	Icon              string
}

// NetworkFromPayload decodes a Network. Name, short name and the address
// validation pattern are required.
func NetworkFromPayload(p Payload) (Network, error) {
	n := Network{
		Name:              payloadString(p, "name"),
		ShortName:         payloadString(p, "shortName"),
		AddressValidation: payloadString(p, "addressValidation"),
		MemoNeeded:        payloadBool(p, "memoNeeded"),
		ExplorerURL:       payloadString(p, "explorerUrl"),
		AddressURL:        payloadString(p, "addressUrl"),
		Kind:              payloadString(p, "kind"),
		Icon:              payloadString(p, "icon"),
	}
	var err error
	if n.Priority, err = payloadIntPtr(p, "priority"); err != nil {
		return Network{}, err
	}
	if n.ChainID, err = payloadIntPtr(p, "chainId"); err != nil {
		return Network{}, err
	}
	if n.Name == "" {
		return Network{}, newValidationErrorf("network payload missing required field %q", "name")
	}
	if n.ShortName == "" {
		return Network{}, newValidationErrorf("network payload missing required field %q", "shortName")
	}
	if n.AddressValidation == "" {
		return Network{}, newValidationErrorf("network payload missing required field %q", "addressValidation")
	}
	return n, nil
}

// Token is a tradable asset on a CEX route, addressed by symbol.
type Token struct {
	ID              string
	Name            string
	Symbol          string
	Network         Network
	DisplayName     string
	Icon            string
	Keyword         string
	Color           string
	Chain           *int
	Address         string
	HasMarkup       *bool
	NetworkPriority *int
	HasFixed        *bool
	HasFixedReverse *bool
}

// TokenFromPayload decodes a Token. ID, name, symbol and network are required.
func TokenFromPayload(p Payload) (Token, error) {
	networkPayload, ok := p["network"].(map[string]any)
	if !ok {
		return Token{}, newValidationErrorf("token payload missing required field %q", "network")
	}
	network, err := NetworkFromPayload(networkPayload)
	if err != nil {
		return Token{}, err
	}
	t := Token{
		ID:              payloadString(p, "id"),
		Name:            payloadString(p, "name"),
		Symbol:          payloadString(p, "symbol"),
		Network:         network,
		DisplayName:     payloadString(p, "displayName"),
		Icon:            payloadString(p, "icon"),
		Keyword:         payloadString(p, "keyword"),
		Color:           payloadString(p, "color"),
		Address:         payloadString(p, "address"),
		HasMarkup:       payloadBoolPtr(p, "hasMarkup"),
		HasFixed:        payloadBoolPtr(p, "hasFixed"),
		HasFixedReverse: payloadBoolPtr(p, "hasFixedReverse"),
	}
	if t.Chain, err = payloadIntPtr(p, "chain"); err != nil {
		return Token{}, err
	}
	if t.NetworkPriority, err = payloadIntPtr(p, "networkPriority"); err != nil {
		return Token{}, err
	}
	for _, req := range []struct{ field, value string }{
		{"id", t.ID}, {"name", t.Name}, {"symbol", t.Symbol},
	} {
		if req.value == "" {
			return Token{}, newValidationErrorf("token payload missing required field %q", req.field)
		}
	}
	return t, nil
}

// DEXToken is a token on a specific chain addressed by an opaque id. DEX token
// ids and CEX token symbols live in distinct identity spaces and are never
// interchangeable.
type DEXToken struct {
	ID       string
	Address  string
	Chain    string
	Decimals int
	Symbol   string
	Name     string
	Created  string
	Modified string
	Enabled  *bool
	HasDEX   *bool
}

// DEXTokenFromPayload decodes a DEXToken. The opaque id is required.
func DEXTokenFromPayload(p Payload) (DEXToken, error) {
	t := DEXToken{
		ID:       payloadString(p, "id"),
		Address:  payloadString(p, "address"),
		Chain:    payloadString(p, "chain"),
		Symbol:   payloadString(p, "symbol"),
		Name:     payloadString(p, "name"),
		Created:  payloadString(p, "created"),
		Modified: payloadString(p, "modified"),
		Enabled:  payloadBoolPtr(p, "enabled"),
		HasDEX:   payloadBoolPtr(p, "hasDex"),
	}
	if t.ID == "" {
		return DEXToken{}, newValidationErrorf("dex token payload missing required field %q", "id")
	}
	decimals, err := payloadInt(p, "decimals")
	if err != nil {
		return DEXToken{}, err
	}
	t.Decimals = decimals
	return t, nil
}

// DEXTokensPage is one page of a paginated DEX token listing. Count is the
// server-reported total across all pages.
type DEXTokensPage struct {
	Count  int
	Tokens []DEXToken
}

// Quote is a priced CEX exchange estimate. Monetary fields are exact
// decimals; they default to zero only when genuinely absent from the payload.
type Quote struct {
	AmountIn   decimal.Decimal
	AmountOut  decimal.Decimal
	Min        *decimal.Decimal
	Max        *decimal.Decimal
	UseXmr     *bool
	Duration   *int
	DeviceInfo string
	IsMobile   *bool
	ClientID   string
}

// QuoteFromPayload decodes a Quote.
func QuoteFromPayload(p Payload) (Quote, error) {
	q := Quote{
		DeviceInfo: payloadString(p, "deviceInfo"),
		ClientID:   payloadString(p, "clientId"),
		UseXmr:     payloadBoolPtr(p, "useXmr"),
		IsMobile:   payloadBoolPtr(p, "isMobile"),
	}
	var err error
	if q.AmountIn, err = payloadDecimal(p, "amountIn"); err != nil {
		return Quote{}, err
	}
	if q.AmountOut, err = payloadDecimal(p, "amountOut"); err != nil {
		return Quote{}, err
	}
	if q.Min, err = payloadDecimalPtr(p, "min"); err != nil {
		return Quote{}, err
	}
	if q.Max, err = payloadDecimalPtr(p, "max"); err != nil {
		return Quote{}, err
	}
	if q.Duration, err = payloadIntPtr(p, "duration"); err != nil {
		return Quote{}, err
	}
	return q, nil
}

// DEXQuote is a priced DEX exchange estimate for one candidate route.
type DEXQuote struct {
	Swap         string
	QuoteID      string
	AmountOut    decimal.Decimal
	AmountOutUSD *decimal.Decimal
	Duration     *int
	Gas          *int
	FeeUSD       *decimal.Decimal
	Path         []string
	Route        RouteDTO
}

// DEXQuoteFromPayload decodes a DEXQuote. The raw route payload, when
// present, is retained opaquely for the subsequent exchange or approval call.
func DEXQuoteFromPayload(p Payload) (DEXQuote, error) {
	q := DEXQuote{
		Swap:    payloadString(p, "swap"),
		QuoteID: payloadString(p, "quoteId"),
	}
	var err error
	if q.AmountOut, err = payloadDecimal(p, "amountOut"); err != nil {
		return DEXQuote{}, err
	}
	if q.AmountOutUSD, err = payloadDecimalPtr(p, "amountOutUsd"); err != nil {
		return DEXQuote{}, err
	}
	if q.FeeUSD, err = payloadDecimalPtr(p, "feeUsd"); err != nil {
		return DEXQuote{}, err
	}
	if q.Duration, err = payloadIntPtr(p, "duration"); err != nil {
		return DEXQuote{}, err
	}
	if q.Gas, err = payloadIntPtr(p, "gas"); err != nil {
		return DEXQuote{}, err
	}
	if path, ok := p["path"].([]any); ok {
		q.Path = make([]string, 0, len(path))
		for _, item := range path {
			s, ok := item.(string)
			if !ok {
				return DEXQuote{}, newValidationErrorf("dex quote path element is not a string")
			}
			q.Path = append(q.Path, s)
		}
	}
	if raw, ok := p["raw"].(map[string]any); ok {
		q.Route = RouteDTOFromPayload(raw)
	}
	return q, nil
}

// RouteDTO is the opaque routing/fee payload returned alongside a DEX quote.
// It is required verbatim by the subsequent exchange and approval calls and
// is never parsed beyond surfacing it back as a payload.
type RouteDTO struct {
	payload Payload
}

// RouteDTOFromPayload wraps a raw route payload.
func RouteDTOFromPayload(p Payload) RouteDTO {
	return RouteDTO{payload: p}
}

// Payload returns the wrapped route exactly as it was decoded.
func (r RouteDTO) Payload() Payload {
	return r.payload
}

// IsZero reports whether the route holds no payload.
func (r RouteDTO) IsZero() bool {
	return r.payload == nil
}

// ExchangeResponse is the transaction record created by submitting an
// exchange. HoudiniID is the correlation id used for all subsequent status
// lookups.
type ExchangeResponse struct {
	HoudiniID       string
	Created         string
	SenderAddress   string
	ReceiverAddress string
	Anonymous       bool
	Expires         string
	Status          TransactionStatus
	InAmount        decimal.Decimal
	InSymbol        string
	OutAmount       decimal.Decimal
	OutSymbol       string
	SenderTag       string
	ReceiverTag     string
	Notified        *bool
	ETA             *int
	InAmountUSD     *decimal.Decimal
	InCreated       string
	Quote           *Quote
	InToken         *Token
	OutToken        *Token
	Metadata        Payload
	IsDEX           *bool
}

// ExchangeResponseFromPayload decodes an ExchangeResponse. The correlation id
// is required; nested quote and token sub-records decode independently and
// may be absent.
func ExchangeResponseFromPayload(p Payload) (ExchangeResponse, error) {
	r := ExchangeResponse{
		HoudiniID:       payloadString(p, "houdiniId"),
		Created:         payloadString(p, "created"),
		SenderAddress:   payloadString(p, "senderAddress"),
		ReceiverAddress: payloadString(p, "receiverAddress"),
		Anonymous:       payloadBool(p, "anonymous"),
		Expires:         payloadString(p, "expires"),
		InSymbol:        payloadString(p, "inSymbol"),
		OutSymbol:       payloadString(p, "outSymbol"),
		SenderTag:       payloadString(p, "senderTag"),
		ReceiverTag:     payloadString(p, "receiverTag"),
		InCreated:       payloadString(p, "inCreated"),
		Notified:        payloadBoolPtr(p, "notified"),
		IsDEX:           payloadBoolPtr(p, "isDex"),
	}
	if r.HoudiniID == "" {
		return ExchangeResponse{}, newValidationErrorf("exchange payload missing required field %q", "houdiniId")
	}
	statusCode, err := payloadInt(p, "status")
	if err != nil {
		return ExchangeResponse{}, err
	}
	if r.Status, err = ParseTransactionStatus(statusCode); err != nil {
		return ExchangeResponse{}, err
	}
	if r.InAmount, err = payloadDecimal(p, "inAmount"); err != nil {
		return ExchangeResponse{}, err
	}
	if r.OutAmount, err = payloadDecimal(p, "outAmount"); err != nil {
		return ExchangeResponse{}, err
	}
	if r.InAmountUSD, err = payloadDecimalPtr(p, "inAmountUsd"); err != nil {
		return ExchangeResponse{}, err
	}
	if r.ETA, err = payloadIntPtr(p, "eta"); err != nil {
		return ExchangeResponse{}, err
	}
	if quotePayload, ok := p["quote"].(map[string]any); ok {
		quote, err := QuoteFromPayload(quotePayload)
		if err != nil {
			return ExchangeResponse{}, err
		}
		r.Quote = &quote
	}
	if tokenPayload, ok := p["inToken"].(map[string]any); ok {
		token, err := TokenFromPayload(tokenPayload)
		if err != nil {
			return ExchangeResponse{}, err
		}
		r.InToken = &token
	}
	if tokenPayload, ok := p["outToken"].(map[string]any); ok {
		token, err := TokenFromPayload(tokenPayload)
		if err != nil {
			return ExchangeResponse{}, err
		}
		r.OutToken = &token
	}
	if metadata, ok := p["metadata"].(map[string]any); ok {
		r.Metadata = metadata
	}
	return r, nil
}

// DEXApproveResponse carries the transaction data a caller must sign to
// approve token spending before a DEX swap.
type DEXApproveResponse struct {
	Data      string
	To        string
	From      string
	FromChain Payload
}

// DEXApproveResponseFromPayload decodes a DEXApproveResponse.
func DEXApproveResponseFromPayload(p Payload) (DEXApproveResponse, error) {
	r := DEXApproveResponse{
		Data: payloadString(p, "data"),
		To:   payloadString(p, "to"),
		From: payloadString(p, "from"),
	}
	if chain, ok := p["fromChain"].(map[string]any); ok {
		r.FromChain = chain
	}
	return r, nil
}

// Status is a point-in-time snapshot of a transaction's lifecycle state.
type Status struct {
	HoudiniID       string
	Status          TransactionStatus
	Created         string
	SenderAddress   string
	ReceiverAddress string
	Anonymous       *bool
	Expires         string
	InAmount        *decimal.Decimal
	InSymbol        string
	OutAmount       *decimal.Decimal
	OutSymbol       string
	ETA             *int
}

// StatusFromPayload decodes a Status. A status code outside the defined
// enumeration fails with a ValidationError.
func StatusFromPayload(p Payload) (Status, error) {
	s := Status{
		HoudiniID:       payloadString(p, "houdiniId"),
		Created:         payloadString(p, "created"),
		SenderAddress:   payloadString(p, "senderAddress"),
		ReceiverAddress: payloadString(p, "receiverAddress"),
		Expires:         payloadString(p, "expires"),
		InSymbol:        payloadString(p, "inSymbol"),
		OutSymbol:       payloadString(p, "outSymbol"),
		Anonymous:       payloadBoolPtr(p, "anonymous"),
	}
	statusCode, err := payloadInt(p, "status")
	if err != nil {
		return Status{}, err
	}
	if s.Status, err = ParseTransactionStatus(statusCode); err != nil {
		return Status{}, err
	}
	if s.InAmount, err = payloadDecimalPtr(p, "inAmount"); err != nil {
		return Status{}, err
	}
	if s.OutAmount, err = payloadDecimalPtr(p, "outAmount"); err != nil {
		return Status{}, err
	}
	if s.ETA, err = payloadIntPtr(p, "eta"); err != nil {
		return Status{}, err
	}
	return s, nil
}

// MinMax holds the minimum and maximum exchange amounts for a token pair.
type MinMax struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// MinMaxFromList decodes a MinMax from the endpoint's two-element array shape.
func MinMaxFromList(items []any) (MinMax, error) {
	if len(items) < 2 {
		return MinMax{}, newValidationErrorf("min/max payload requires at least 2 elements, got %d", len(items))
	}
	minVal, err := decodeDecimal(items[0])
	if err != nil {
		return MinMax{}, newValidationErrorf("min/max element 0: %v", err)
	}
	maxVal, err := decodeDecimal(items[1])
	if err != nil {
		return MinMax{}, newValidationErrorf("min/max element 1: %v", err)
	}
	return MinMax{Min: minVal, Max: maxVal}, nil
}

// Volume is the platform's total transacted volume.
type Volume struct {
	Count              int
	TotalTransactedUSD decimal.Decimal
}

// VolumeFromPayload decodes a Volume.
func VolumeFromPayload(p Payload) (Volume, error) {
	var v Volume
	count, err := payloadInt(p, "count")
	if err != nil {
		return Volume{}, err
	}
	v.Count = count
	if v.TotalTransactedUSD, err = payloadDecimal(p, "totalTransactedUSD"); err != nil {
		return Volume{}, err
	}
	return v, nil
}

// WeeklyVolume is one week's transacted volume.
type WeeklyVolume struct {
	Count      int
	Anonymous  int
	Volume     decimal.Decimal
	Week       int
	Year       int
	Commission decimal.Decimal
}

// WeeklyVolumeFromPayload decodes a WeeklyVolume.
func WeeklyVolumeFromPayload(p Payload) (WeeklyVolume, error) {
	var v WeeklyVolume
	var err error
	if v.Count, err = payloadInt(p, "count"); err != nil {
		return WeeklyVolume{}, err
	}
	if v.Anonymous, err = payloadInt(p, "anonymous"); err != nil {
		return WeeklyVolume{}, err
	}
	if v.Week, err = payloadInt(p, "week"); err != nil {
		return WeeklyVolume{}, err
	}
	if v.Year, err = payloadInt(p, "year"); err != nil {
		return WeeklyVolume{}, err
	}
	if v.Volume, err = payloadDecimal(p, "volume"); err != nil {
		return WeeklyVolume{}, err
	}
	if v.Commission, err = payloadDecimal(p, "commission"); err != nil {
		return WeeklyVolume{}, err
	}
	return v, nil
}

// ---- payload accessors ----

func payloadString(p Payload, key string) string {
	s, _ := p[key].(string)
	return s
}

func payloadBool(p Payload, key string) bool {
	b, _ := p[key].(bool)
	return b
}

func payloadBoolPtr(p Payload, key string) *bool {
	if b, ok := p[key].(bool); ok {
		return &b
	}
	return nil
}

// payloadInt returns the integer at key, or zero when the key is absent or
// null. A value that exists but is not an integral number is an error.
func payloadInt(p Payload, key string) (int, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, newValidationErrorf("field %q is not an integer: %v", key, n)
		}
		return int(i), nil
	case float64:
		if n != float64(int64(n)) {
			return 0, newValidationErrorf("field %q is not an integer: %v", key, n)
		}
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	default:
		return 0, newValidationErrorf("field %q is not an integer: %v", key, v)
	}
}

func payloadIntPtr(p Payload, key string) (*int, error) {
	if v, ok := p[key]; !ok || v == nil {
		return nil, nil
	}
	i, err := payloadInt(p, key)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// payloadDecimal returns the exact decimal at key, defaulting to zero only
// when the key is genuinely absent or null. A present but unparseable value
// is an error, never silently substituted.
func payloadDecimal(p Payload, key string) (decimal.Decimal, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return decimal.Zero, nil
	}
	d, err := decodeDecimal(v)
	if err != nil {
		return decimal.Decimal{}, newValidationErrorf("field %q: %v", key, err)
	}
	return d, nil
}

func payloadDecimalPtr(p Payload, key string) (*decimal.Decimal, error) {
	if v, ok := p[key]; !ok || v == nil {
		return nil, nil
	}
	d, err := payloadDecimal(p, key)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// decodeDecimal converts a decoded JSON value into an exact decimal. JSON
// numbers arrive as json.Number (the engine decodes with UseNumber) so the
// wire text is preserved; float64 is accepted for payloads built in tests and
// goes through its shortest round-trip string form, never float arithmetic.
func decodeDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case json.Number:
		return decimal.NewFromString(n.String())
	case string:
		return decimal.NewFromString(n)
	case float64:
		return decimal.NewFromString(strconv.FormatFloat(n, 'f', -1, 64))
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case decimal.Decimal:
		return n, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("value %v (%T) is not a number", v, v)
	}
}
