package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/dmitrijs2005/echojournal/internal/journal"
)

const (
	serviceName = "echojournal.agent.v1.PulseAgent"

	pingMethod            = "/" + serviceName + "/Ping"
	createEntryMethod     = "/" + serviceName + "/CreateEntry"
	listEntriesMethod     = "/" + serviceName + "/ListEntries"
	updateSentimentMethod = "/" + serviceName + "/UpdateSentiment"
)

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type CreateEntryRequest struct {
	UserID    string `json:"userId"`
	EntryText string `json:"entryText"`
}

type CreateEntryResponse struct {
	EntryID string `json:"entryId"`
	Message string `json:"message"`
}

type ListEntriesRequest struct {
	UserID string `json:"userId"`
	Limit  int32  `json:"limit"`
}

type ListEntriesResponse struct {
	Entries []journal.JournalEntry `json:"entries"`
	Total   int32                  `json:"total"`
}

type UpdateSentimentRequest struct {
	UserID           string   `json:"userId"`
	EntryID          string   `json:"entryId"`
	SentimentSummary string   `json:"sentimentSummary"`
	Score            *float64 `json:"score,omitempty"`
}

type UpdateSentimentResponse struct {
	Message string `json:"message"`
}

// PulseAgentServer is implemented by GRPCServer.
type PulseAgentServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	CreateEntry(context.Context, *CreateEntryRequest) (*CreateEntryResponse, error)
	ListEntries(context.Context, *ListEntriesRequest) (*ListEntriesResponse, error)
	UpdateSentiment(context.Context, *UpdateSentimentRequest) (*UpdateSentimentResponse, error)
}

func unary[Req, Resp any](fullMethod string, call func(PulseAgentServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PulseAgentServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PulseAgentServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// PulseAgentServiceDesc describes the agent service for grpc.Server.
var PulseAgentServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*PulseAgentServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unary(pingMethod, PulseAgentServer.Ping)},
		{MethodName: "CreateEntry", Handler: unary(createEntryMethod, PulseAgentServer.CreateEntry)},
		{MethodName: "ListEntries", Handler: unary(listEntriesMethod, PulseAgentServer.ListEntries)},
		{MethodName: "UpdateSentiment", Handler: unary(updateSentimentMethod, PulseAgentServer.UpdateSentiment)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "echojournal/agent/v1/pulse.json",
}

// AgentClient calls the agent service over a client connection.
type AgentClient struct {
	cc grpc.ClientConnInterface
}

func NewAgentClient(cc grpc.ClientConnInterface) *AgentClient {
	return &AgentClient{cc: cc}
}

func (c *AgentClient) invoke(ctx context.Context, method string, in, out any, opts ...grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *AgentClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	if err := c.invoke(ctx, pingMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AgentClient) CreateEntry(ctx context.Context, in *CreateEntryRequest, opts ...grpc.CallOption) (*CreateEntryResponse, error) {
	out := new(CreateEntryResponse)
	if err := c.invoke(ctx, createEntryMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AgentClient) ListEntries(ctx context.Context, in *ListEntriesRequest, opts ...grpc.CallOption) (*ListEntriesResponse, error) {
	out := new(ListEntriesResponse)
	if err := c.invoke(ctx, listEntriesMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AgentClient) UpdateSentiment(ctx context.Context, in *UpdateSentimentRequest, opts ...grpc.CallOption) (*UpdateSentimentResponse, error) {
	out := new(UpdateSentimentResponse)
	if err := c.invoke(ctx, updateSentimentMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
