// Package grpc serves the gRPC side of the catalog: the standard health service and server
// reflection.
package grpc

import (
	"context"
	"errors"
	"net"
	"time"

	"catalog_service/internal/domain"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// ServiceName is the name reported to health checks alongside the overall ("") status.
const ServiceName = "catalog.CatalogService"

type Server struct {
	server *grpc.Server
	health *health.Server
	log    *logrus.Logger
}

func NewServer(logger *logrus.Logger) *Server {
	s := &Server{
		health: health.NewServer(),
		log:    logger,
	}
	s.server = grpc.NewServer(grpc.ChainUnaryInterceptor(s.logUnary))

	healthpb.RegisterHealthServer(s.server, s.health)
	reflection.Register(s.server)
	logger.Info("gRPC health and reflection services registered")

	s.SetServing(false)
	return s
}

// SetServing switches the reported health status of the server and of ServiceName.
func (s *Server) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

// Serve blocks until the server stops. A graceful stop is not reported as an error.
func (s *Server) Serve(lis net.Listener) error {
	s.log.Infof("gRPC server listening on %s", lis.Addr())
	if err := s.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// GracefulStop marks the server NOT_SERVING and waits for in-flight calls.
func (s *Server) GracefulStop() {
	s.SetServing(false)
	s.health.Shutdown()
	s.server.GracefulStop()
}

func (s *Server) logUnary(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	err = ToStatus(err)

	entry := s.log.WithFields(logrus.Fields{
		"method":  info.FullMethod,
		"code":    status.Code(err).String(),
		"latency": time.Since(start).String(),
	})
	if err != nil {
		entry.Warnf("gRPC Handler: call failed: %v", err)
	} else {
		entry.Debug("gRPC Handler: call completed")
	}
	return resp, err
}

// ToStatus converts domain errors into gRPC status errors. Errors that already carry a
// status are returned unchanged.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var vErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrResourceNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.As(err, &vErr),
		errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrInvalidSort):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, domain.ErrIntegrityViolation):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}
