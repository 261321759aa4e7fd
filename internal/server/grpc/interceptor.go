package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/echojournal/internal/common"
	"github.com/dmitrijs2005/echojournal/internal/server/auth"
)

func firstValue(md metadata.MD, key string) string {
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}

// agentInterceptor admits only the configured agent. Ping stays open for
// health probes.
func (s *GRPCServer) agentInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if info.FullMethod == pingMethod {
		return handler(ctx, req)
	}

	md, _ := metadata.FromIncomingContext(ctx)

	agentID := firstValue(md, common.AgentIDHeaderName)
	if len(agentID) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing agent id")
	}
	if agentID != s.agentID {
		s.logger.Warn(ctx, "Unknown agent rejected", "agent_id", agentID, "method", info.FullMethod)
		return nil, status.Error(codes.Unauthenticated, "unknown agent")
	}

	if s.agentKeyHash != "" {
		if err := auth.VerifyAgentKey(s.agentKeyHash, firstValue(md, common.AgentKeyHeaderName)); err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid agent key")
		}
	}

	return handler(ctx, req)
}
