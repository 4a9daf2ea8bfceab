package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// SessionServiceName is the fully-qualified name of the SessionService.
const SessionServiceName = "moneymate.v1.SessionService"

// Procedure paths of the SessionService.
const (
	SessionServiceCreateSessionProcedure     = "/moneymate.v1.SessionService/CreateSession"
	SessionServiceGetSessionProcedure        = "/moneymate.v1.SessionService/GetSession"
	SessionServiceDeleteSessionProcedure     = "/moneymate.v1.SessionService/DeleteSession"
	SessionServiceListSessionsProcedure      = "/moneymate.v1.SessionService/ListSessions"
	SessionServiceAddItemProcedure           = "/moneymate.v1.SessionService/AddItem"
	SessionServiceUpdateItemProcedure        = "/moneymate.v1.SessionService/UpdateItem"
	SessionServiceDeleteItemProcedure        = "/moneymate.v1.SessionService/DeleteItem"
	SessionServiceFinalizeItemsProcedure     = "/moneymate.v1.SessionService/FinalizeItems"
	SessionServiceReopenItemsProcedure       = "/moneymate.v1.SessionService/ReopenItems"
	SessionServiceAddParticipantProcedure    = "/moneymate.v1.SessionService/AddParticipant"
	SessionServiceRemoveParticipantProcedure = "/moneymate.v1.SessionService/RemoveParticipant"
	SessionServiceToggleAssignmentProcedure  = "/moneymate.v1.SessionService/ToggleAssignment"
	SessionServiceSplitEvenlyProcedure       = "/moneymate.v1.SessionService/SplitEvenly"
	SessionServiceGetSummaryProcedure        = "/moneymate.v1.SessionService/GetSummary"
)

// SessionServiceHandler is implemented by the server.
type SessionServiceHandler interface {
	CreateSession(context.Context, *connect.Request[CreateSessionRequest]) (*connect.Response[SessionResponse], error)
	GetSession(context.Context, *connect.Request[GetSessionRequest]) (*connect.Response[SessionResponse], error)
	DeleteSession(context.Context, *connect.Request[DeleteSessionRequest]) (*connect.Response[DeleteSessionResponse], error)
	ListSessions(context.Context, *connect.Request[ListSessionsRequest]) (*connect.Response[ListSessionsResponse], error)
	AddItem(context.Context, *connect.Request[AddItemRequest]) (*connect.Response[AddItemResponse], error)
	UpdateItem(context.Context, *connect.Request[UpdateItemRequest]) (*connect.Response[SessionResponse], error)
	DeleteItem(context.Context, *connect.Request[DeleteItemRequest]) (*connect.Response[SessionResponse], error)
	FinalizeItems(context.Context, *connect.Request[FinalizeItemsRequest]) (*connect.Response[SessionResponse], error)
	ReopenItems(context.Context, *connect.Request[ReopenItemsRequest]) (*connect.Response[SessionResponse], error)
	AddParticipant(context.Context, *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error)
	RemoveParticipant(context.Context, *connect.Request[RemoveParticipantRequest]) (*connect.Response[SessionResponse], error)
	ToggleAssignment(context.Context, *connect.Request[ToggleAssignmentRequest]) (*connect.Response[SessionResponse], error)
	SplitEvenly(context.Context, *connect.Request[SplitEvenlyRequest]) (*connect.Response[SessionResponse], error)
	GetSummary(context.Context, *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error)
}

// NewSessionServiceHandler returns the path to mount the service on and its handler.
func NewSessionServiceHandler(svc SessionServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	route(mux, SessionServiceCreateSessionProcedure, svc.CreateSession, opts)
	route(mux, SessionServiceGetSessionProcedure, svc.GetSession, opts)
	route(mux, SessionServiceDeleteSessionProcedure, svc.DeleteSession, opts)
	route(mux, SessionServiceListSessionsProcedure, svc.ListSessions, opts)
	route(mux, SessionServiceAddItemProcedure, svc.AddItem, opts)
	route(mux, SessionServiceUpdateItemProcedure, svc.UpdateItem, opts)
	route(mux, SessionServiceDeleteItemProcedure, svc.DeleteItem, opts)
	route(mux, SessionServiceFinalizeItemsProcedure, svc.FinalizeItems, opts)
	route(mux, SessionServiceReopenItemsProcedure, svc.ReopenItems, opts)
	route(mux, SessionServiceAddParticipantProcedure, svc.AddParticipant, opts)
	route(mux, SessionServiceRemoveParticipantProcedure, svc.RemoveParticipant, opts)
	route(mux, SessionServiceToggleAssignmentProcedure, svc.ToggleAssignment, opts)
	route(mux, SessionServiceSplitEvenlyProcedure, svc.SplitEvenly, opts)
	route(mux, SessionServiceGetSummaryProcedure, svc.GetSummary, opts)
	return servicePath(SessionServiceName), mux
}

// SessionServiceClient calls a remote SessionService.
type SessionServiceClient struct {
	createSession     *connect.Client[CreateSessionRequest, SessionResponse]
	getSession        *connect.Client[GetSessionRequest, SessionResponse]
	deleteSession     *connect.Client[DeleteSessionRequest, DeleteSessionResponse]
	listSessions      *connect.Client[ListSessionsRequest, ListSessionsResponse]
	addItem           *connect.Client[AddItemRequest, AddItemResponse]
	updateItem        *connect.Client[UpdateItemRequest, SessionResponse]
	deleteItem        *connect.Client[DeleteItemRequest, SessionResponse]
	finalizeItems     *connect.Client[FinalizeItemsRequest, SessionResponse]
	reopenItems       *connect.Client[ReopenItemsRequest, SessionResponse]
	addParticipant    *connect.Client[AddParticipantRequest, AddParticipantResponse]
	removeParticipant *connect.Client[RemoveParticipantRequest, SessionResponse]
	toggleAssignment  *connect.Client[ToggleAssignmentRequest, SessionResponse]
	splitEvenly       *connect.Client[SplitEvenlyRequest, SessionResponse]
	getSummary        *connect.Client[GetSummaryRequest, GetSummaryResponse]
}

// NewSessionServiceClient creates a client for the service at baseURL
// (e.g. "http://localhost:8080").
func NewSessionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SessionServiceClient {
	opts = clientOptions(opts)
	return &SessionServiceClient{
		createSession:     newClient[CreateSessionRequest, SessionResponse](httpClient, baseURL, SessionServiceCreateSessionProcedure, opts),
		getSession:        newClient[GetSessionRequest, SessionResponse](httpClient, baseURL, SessionServiceGetSessionProcedure, opts),
		deleteSession:     newClient[DeleteSessionRequest, DeleteSessionResponse](httpClient, baseURL, SessionServiceDeleteSessionProcedure, opts),
		listSessions:      newClient[ListSessionsRequest, ListSessionsResponse](httpClient, baseURL, SessionServiceListSessionsProcedure, opts),
		addItem:           newClient[AddItemRequest, AddItemResponse](httpClient, baseURL, SessionServiceAddItemProcedure, opts),
		updateItem:        newClient[UpdateItemRequest, SessionResponse](httpClient, baseURL, SessionServiceUpdateItemProcedure, opts),
		deleteItem:        newClient[DeleteItemRequest, SessionResponse](httpClient, baseURL, SessionServiceDeleteItemProcedure, opts),
		finalizeItems:     newClient[FinalizeItemsRequest, SessionResponse](httpClient, baseURL, SessionServiceFinalizeItemsProcedure, opts),
		reopenItems:       newClient[ReopenItemsRequest, SessionResponse](httpClient, baseURL, SessionServiceReopenItemsProcedure, opts),
		addParticipant:    newClient[AddParticipantRequest, AddParticipantResponse](httpClient, baseURL, SessionServiceAddParticipantProcedure, opts),
		removeParticipant: newClient[RemoveParticipantRequest, SessionResponse](httpClient, baseURL, SessionServiceRemoveParticipantProcedure, opts),
		toggleAssignment:  newClient[ToggleAssignmentRequest, SessionResponse](httpClient, baseURL, SessionServiceToggleAssignmentProcedure, opts),
		splitEvenly:       newClient[SplitEvenlyRequest, SessionResponse](httpClient, baseURL, SessionServiceSplitEvenlyProcedure, opts),
		getSummary:        newClient[GetSummaryRequest, GetSummaryResponse](httpClient, baseURL, SessionServiceGetSummaryProcedure, opts),
	}
}

func (c *SessionServiceClient) CreateSession(ctx context.Context, req *connect.Request[CreateSessionRequest]) (*connect.Response[SessionResponse], error) {
	return c.createSession.CallUnary(ctx, req)
}

func (c *SessionServiceClient) GetSession(ctx context.Context, req *connect.Request[GetSessionRequest]) (*connect.Response[SessionResponse], error) {
	return c.getSession.CallUnary(ctx, req)
}

func (c *SessionServiceClient) DeleteSession(ctx context.Context, req *connect.Request[DeleteSessionRequest]) (*connect.Response[DeleteSessionResponse], error) {
	return c.deleteSession.CallUnary(ctx, req)
}

func (c *SessionServiceClient) ListSessions(ctx context.Context, req *connect.Request[ListSessionsRequest]) (*connect.Response[ListSessionsResponse], error) {
	return c.listSessions.CallUnary(ctx, req)
}

func (c *SessionServiceClient) AddItem(ctx context.Context, req *connect.Request[AddItemRequest]) (*connect.Response[AddItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *SessionServiceClient) UpdateItem(ctx context.Context, req *connect.Request[UpdateItemRequest]) (*connect.Response[SessionResponse], error) {
	return c.updateItem.CallUnary(ctx, req)
}

func (c *SessionServiceClient) DeleteItem(ctx context.Context, req *connect.Request[DeleteItemRequest]) (*connect.Response[SessionResponse], error) {
	return c.deleteItem.CallUnary(ctx, req)
}

func (c *SessionServiceClient) FinalizeItems(ctx context.Context, req *connect.Request[FinalizeItemsRequest]) (*connect.Response[SessionResponse], error) {
	return c.finalizeItems.CallUnary(ctx, req)
}

func (c *SessionServiceClient) ReopenItems(ctx context.Context, req *connect.Request[ReopenItemsRequest]) (*connect.Response[SessionResponse], error) {
	return c.reopenItems.CallUnary(ctx, req)
}

func (c *SessionServiceClient) AddParticipant(ctx context.Context, req *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *SessionServiceClient) RemoveParticipant(ctx context.Context, req *connect.Request[RemoveParticipantRequest]) (*connect.Response[SessionResponse], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}

func (c *SessionServiceClient) ToggleAssignment(ctx context.Context, req *connect.Request[ToggleAssignmentRequest]) (*connect.Response[SessionResponse], error) {
	return c.toggleAssignment.CallUnary(ctx, req)
}

func (c *SessionServiceClient) SplitEvenly(ctx context.Context, req *connect.Request[SplitEvenlyRequest]) (*connect.Response[SessionResponse], error) {
	return c.splitEvenly.CallUnary(ctx, req)
}

func (c *SessionServiceClient) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}
