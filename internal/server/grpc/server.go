// Package grpc serves the agent API used by automated journaling agents.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"

	"github.com/dmitrijs2005/echojournal/internal/journal"
	"github.com/dmitrijs2005/echojournal/internal/logging"
)

type entrySvc interface {
	CreateEntry(ctx context.Context, userID, text string) (string, error)
	ListEntries(ctx context.Context, userID string, limit int) ([]journal.JournalEntry, int, error)
	UpdateSentiment(ctx context.Context, entryID, userID, summary string, score *float64) error
}

type GRPCServer struct {
	address      string
	entries      entrySvc
	logger       logging.Logger
	agentID      string
	agentKeyHash string
}

var _ PulseAgentServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, es entrySvc, agentID, agentKeyHash string) *GRPCServer {
	return &GRPCServer{
		address:      a,
		logger:       l.With("module", "grpc_server"),
		entries:      es,
		agentID:      agentID,
		agentKeyHash: agentKeyHash,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.agentInterceptor))
	srv.RegisterService(&PulseAgentServiceDesc, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
