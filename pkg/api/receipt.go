package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// ReceiptServiceName is the fully-qualified name of the ReceiptService.
const ReceiptServiceName = "moneymate.v1.ReceiptService"

const ReceiptServiceAnalyzeReceiptProcedure = "/moneymate.v1.ReceiptService/AnalyzeReceipt"

// ReceiptServiceHandler is implemented by the server.
type ReceiptServiceHandler interface {
	AnalyzeReceipt(context.Context, *connect.Request[AnalyzeReceiptRequest]) (*connect.Response[AnalyzeReceiptResponse], error)
}

// NewReceiptServiceHandler returns the path to mount the service on and its handler.
func NewReceiptServiceHandler(svc ReceiptServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	route(mux, ReceiptServiceAnalyzeReceiptProcedure, svc.AnalyzeReceipt, opts)
	return servicePath(ReceiptServiceName), mux
}

// ReceiptServiceClient calls a remote ReceiptService.
type ReceiptServiceClient struct {
	analyzeReceipt *connect.Client[AnalyzeReceiptRequest, AnalyzeReceiptResponse]
}

func NewReceiptServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ReceiptServiceClient {
	opts = clientOptions(opts)
	return &ReceiptServiceClient{
		analyzeReceipt: newClient[AnalyzeReceiptRequest, AnalyzeReceiptResponse](httpClient, baseURL, ReceiptServiceAnalyzeReceiptProcedure, opts),
	}
}

func (c *ReceiptServiceClient) AnalyzeReceipt(ctx context.Context, req *connect.Request[AnalyzeReceiptRequest]) (*connect.Response[AnalyzeReceiptResponse], error) {
	return c.analyzeReceipt.CallUnary(ctx, req)
}
