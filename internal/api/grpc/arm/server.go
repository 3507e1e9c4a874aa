package arm

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	domain "github.com/oshokin/arm-toggle/internal/domain/arm"
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	GetArmState(ctx context.Context) *domain.State
}

// Server implements ArmServiceServer.
type Server struct {
	// service provides the recorded state.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// GetArmState returns the last recorded armed flag.
func (s *Server) GetArmState(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	state := s.service.GetArmState(ctx)
	if state == nil {
		return nil, status.Error(codes.Unavailable, "arm state is not available")
	}

	return wrapperspb.Bool(state.IsArmed), nil
}
