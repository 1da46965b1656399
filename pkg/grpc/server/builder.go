package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	health "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/godilite/shotstats/pkg/metrics"
)

const defaultPort = 50051

type options struct {
	port         int
	listener     net.Listener
	logger       *zap.Logger
	metrics      *metrics.Metrics
	reflection   bool
	logRequests  bool
	interceptors []grpc.UnaryServerInterceptor
	grpcOptions  []grpc.ServerOption
}

type Option func(*options)

// WithPort sets the TCP port. Port 0 picks a free port.
func WithPort(port int) Option {
	return func(o *options) { o.port = port }
}

// WithListener serves on lis instead of opening a TCP port. Tests pass a
// bufconn listener here.
func WithListener(lis net.Listener) Option {
	return func(o *options) { o.listener = lis }
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics records the duration and status code of every unary call.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func WithReflection(enabled bool) Option {
	return func(o *options) { o.reflection = enabled }
}

// WithLogging logs one line per completed call.
func WithLogging(enabled bool) Option {
	return func(o *options) { o.logRequests = enabled }
}

// WithUnaryInterceptors appends interceptors after the built-in chain.
func WithUnaryInterceptors(interceptors ...grpc.UnaryServerInterceptor) Option {
	return func(o *options) { o.interceptors = append(o.interceptors, interceptors...) }
}

func WithServerOptions(opts ...grpc.ServerOption) Option {
	return func(o *options) { o.grpcOptions = append(o.grpcOptions, opts...) }
}

// Server is a gRPC server with a health service whose status follows the
// registered services.
type Server struct {
	grpc   *grpc.Server
	health *health.Server
	lis    net.Listener
	logger *zap.Logger
}

// New builds the server and binds its listener. Nothing is served until Start.
func New(opts ...Option) (*Server, error) {
	o := &options{port: defaultPort}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	lis := o.listener
	if lis == nil {
		if o.port < 0 || o.port > 65535 {
			return nil, fmt.Errorf("invalid port %d: must be between 0 and 65535", o.port)
		}
		var err error
		if lis, err = net.Listen("tcp", fmt.Sprintf(":%d", o.port)); err != nil {
			return nil, fmt.Errorf("failed to listen on port %d: %w", o.port, err)
		}
	}

	// Recovery runs outermost so a panic anywhere below still yields a status.
	chain := []grpc.UnaryServerInterceptor{RecoveryInterceptor(o.logger), RequestIDInterceptor()}
	if o.metrics != nil {
		chain = append(chain, MetricsInterceptor(o.metrics))
	}
	if o.logRequests {
		chain = append(chain, LoggingInterceptor(o.logger))
	}
	chain = append(chain, o.interceptors...)

	srv := grpc.NewServer(append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(chain...)}, o.grpcOptions...)...)
	if o.reflection {
		reflection.Register(srv)
	}

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	return &Server{
		grpc:   srv,
		health: hs,
		lis:    lis,
		logger: o.logger.Named("grpc-server"),
	}, nil
}

// Register adds a service implementation and reports it as SERVING under its
// full service name.
func (s *Server) Register(desc *grpc.ServiceDesc, impl any) {
	s.grpc.RegisterService(desc, impl)
	s.health.SetServingStatus(desc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	s.logger.Info("registered service", zap.String("service", desc.ServiceName))
}

// Start serves in the background. The returned channel receives the serve
// error, if any, and is closed when serving stops.
func (s *Server) Start() <-chan error {
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.logger.Info("gRPC server starting", zap.String("addr", s.lis.Addr().String()))

	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		if err := s.grpc.Serve(s.lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			s.logger.Error("gRPC server failed", zap.Error(err))
			errc <- err
		}
	}()
	return errc
}

// Shutdown reports NOT_SERVING, drains in-flight calls and stops hard when ctx
// expires first.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("gRPC server shutting down")
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("gRPC server stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("forced shutdown due to timeout")
		s.grpc.Stop()
		return ctx.Err()
	}
}

// Addr returns the server's listening address.
func (s *Server) Addr() net.Addr {
	return s.lis.Addr()
}
