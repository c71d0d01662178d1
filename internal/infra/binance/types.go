package binance

// placeOrderResponse is the subset of POST /api/v3/order we need.
type placeOrderResponse struct {
	Symbol  string `json:"symbol"`
	OrderID int64  `json:"orderId"`
	Status  string `json:"status"`
}

// apiError is Binance's error envelope, e.g.
// {"code":-2010,"msg":"Account has insufficient balance for requested action."}
type apiError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// streamMessage wraps combined-stream payloads.
type streamMessage struct {
	Stream string     `json:"stream"`
	Data   miniTicker `json:"data"`
}

// miniTicker carries the fields we use from <symbol>@miniTicker.
type miniTicker struct {
	Event  string `json:"e"`
	Symbol string `json:"s"`
	Close  string `json:"c"`
}
