package grpc

import (
	"context"
	"errors"
	"math"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/echojournal/internal/common"
)

func (s *GRPCServer) Ping(ctx context.Context, req *PingRequest) (*PingResponse, error) {

	return &PingResponse{Status: "OK"}, nil

}

func (s *GRPCServer) CreateEntry(ctx context.Context, req *CreateEntryRequest) (*CreateEntryResponse, error) {

	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.EntryText) == "" {
		return nil, status.Error(codes.InvalidArgument, "missing userId or entryText")
	}

	id, err := s.entries.CreateEntry(ctx, req.UserID, req.EntryText)
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Agent created entry", "user_id", req.UserID, "entry_id", id)
	return &CreateEntryResponse{EntryID: id, Message: "Journal entry added successfully"}, nil

}

func (s *GRPCServer) ListEntries(ctx context.Context, req *ListEntriesRequest) (*ListEntriesResponse, error) {

	if strings.TrimSpace(req.UserID) == "" {
		return nil, status.Error(codes.InvalidArgument, "missing userId")
	}
	if req.Limit < 0 {
		return nil, status.Error(codes.InvalidArgument, "limit must not be negative")
	}

	list, total, err := s.entries.ListEntries(ctx, req.UserID, int(req.Limit))
	if err != nil {
		return nil, toStatus(err)
	}

	return &ListEntriesResponse{Entries: list, Total: int32(min(total, math.MaxInt32))}, nil

}

func (s *GRPCServer) UpdateSentiment(ctx context.Context, req *UpdateSentimentRequest) (*UpdateSentimentResponse, error) {

	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.EntryID) == "" || strings.TrimSpace(req.SentimentSummary) == "" {
		return nil, status.Error(codes.InvalidArgument, "missing userId, entryId, or sentimentSummary")
	}

	if err := s.entries.UpdateSentiment(ctx, req.EntryID, req.UserID, req.SentimentSummary, req.Score); err != nil {
		return nil, toStatus(err)
	}

	return &UpdateSentimentResponse{Message: "Sentiment updated successfully"}, nil

}

// toStatus hides backend details from agents.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, "invalid request")
	case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.NotFound, "entry not found")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
