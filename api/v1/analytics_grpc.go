package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	Analytics_GetDashboardStats_FullMethodName   = "/shotstats.v1.Analytics/GetDashboardStats"
	Analytics_GetTrend_FullMethodName            = "/shotstats.v1.Analytics/GetTrend"
	Analytics_GetLeaderboard_FullMethodName      = "/shotstats.v1.Analytics/GetLeaderboard"
	Analytics_GetRecentSessions_FullMethodName   = "/shotstats.v1.Analytics/GetRecentSessions"
	Analytics_GetSessionAnalysis_FullMethodName  = "/shotstats.v1.Analytics/GetSessionAnalysis"
	Analytics_GetShotDistribution_FullMethodName = "/shotstats.v1.Analytics/GetShotDistribution"
	Analytics_GetScoreTrend_FullMethodName       = "/shotstats.v1.Analytics/GetScoreTrend"
)

// AnalyticsClient is the client API for the Analytics service.
type AnalyticsClient interface {
	GetDashboardStats(ctx context.Context, in *DashboardStatsRequest, opts ...grpc.CallOption) (*DashboardStatsResponse, error)
	GetTrend(ctx context.Context, in *TrendRequest, opts ...grpc.CallOption) (*TrendResponse, error)
	GetLeaderboard(ctx context.Context, in *LeaderboardRequest, opts ...grpc.CallOption) (*LeaderboardResponse, error)
	GetRecentSessions(ctx context.Context, in *RecentSessionsRequest, opts ...grpc.CallOption) (*RecentSessionsResponse, error)
	GetSessionAnalysis(ctx context.Context, in *SessionAnalysisRequest, opts ...grpc.CallOption) (*SessionAnalysisResponse, error)
	GetShotDistribution(ctx context.Context, in *ShotDistributionRequest, opts ...grpc.CallOption) (*ShotDistributionResponse, error)
	GetScoreTrend(ctx context.Context, in *ScoreTrendRequest, opts ...grpc.CallOption) (*ScoreTrendResponse, error)
}

type analyticsClient struct {
	cc grpc.ClientConnInterface
}

func NewAnalyticsClient(cc grpc.ClientConnInterface) AnalyticsClient {
	return &analyticsClient{cc}
}

func invoke[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in *Req, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *analyticsClient) GetDashboardStats(ctx context.Context, in *DashboardStatsRequest, opts ...grpc.CallOption) (*DashboardStatsResponse, error) {
	return invoke[DashboardStatsRequest, DashboardStatsResponse](ctx, c.cc, Analytics_GetDashboardStats_FullMethodName, in, opts)
}

func (c *analyticsClient) GetTrend(ctx context.Context, in *TrendRequest, opts ...grpc.CallOption) (*TrendResponse, error) {
	return invoke[TrendRequest, TrendResponse](ctx, c.cc, Analytics_GetTrend_FullMethodName, in, opts)
}

func (c *analyticsClient) GetLeaderboard(ctx context.Context, in *LeaderboardRequest, opts ...grpc.CallOption) (*LeaderboardResponse, error) {
	return invoke[LeaderboardRequest, LeaderboardResponse](ctx, c.cc, Analytics_GetLeaderboard_FullMethodName, in, opts)
}

func (c *analyticsClient) GetRecentSessions(ctx context.Context, in *RecentSessionsRequest, opts ...grpc.CallOption) (*RecentSessionsResponse, error) {
	return invoke[RecentSessionsRequest, RecentSessionsResponse](ctx, c.cc, Analytics_GetRecentSessions_FullMethodName, in, opts)
}

func (c *analyticsClient) GetSessionAnalysis(ctx context.Context, in *SessionAnalysisRequest, opts ...grpc.CallOption) (*SessionAnalysisResponse, error) {
	return invoke[SessionAnalysisRequest, SessionAnalysisResponse](ctx, c.cc, Analytics_GetSessionAnalysis_FullMethodName, in, opts)
}

func (c *analyticsClient) GetShotDistribution(ctx context.Context, in *ShotDistributionRequest, opts ...grpc.CallOption) (*ShotDistributionResponse, error) {
	return invoke[ShotDistributionRequest, ShotDistributionResponse](ctx, c.cc, Analytics_GetShotDistribution_FullMethodName, in, opts)
}

func (c *analyticsClient) GetScoreTrend(ctx context.Context, in *ScoreTrendRequest, opts ...grpc.CallOption) (*ScoreTrendResponse, error) {
	return invoke[ScoreTrendRequest, ScoreTrendResponse](ctx, c.cc, Analytics_GetScoreTrend_FullMethodName, in, opts)
}

// AnalyticsServer is the server API for the Analytics service. Implementations
// must embed UnimplementedAnalyticsServer.
type AnalyticsServer interface {
	GetDashboardStats(context.Context, *DashboardStatsRequest) (*DashboardStatsResponse, error)
	GetTrend(context.Context, *TrendRequest) (*TrendResponse, error)
	GetLeaderboard(context.Context, *LeaderboardRequest) (*LeaderboardResponse, error)
	GetRecentSessions(context.Context, *RecentSessionsRequest) (*RecentSessionsResponse, error)
	GetSessionAnalysis(context.Context, *SessionAnalysisRequest) (*SessionAnalysisResponse, error)
	GetShotDistribution(context.Context, *ShotDistributionRequest) (*ShotDistributionResponse, error)
	GetScoreTrend(context.Context, *ScoreTrendRequest) (*ScoreTrendResponse, error)
	mustEmbedUnimplementedAnalyticsServer()
}

type UnimplementedAnalyticsServer struct{}

func (UnimplementedAnalyticsServer) GetDashboardStats(context.Context, *DashboardStatsRequest) (*DashboardStatsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetDashboardStats not implemented")
}
func (UnimplementedAnalyticsServer) GetTrend(context.Context, *TrendRequest) (*TrendResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetTrend not implemented")
}
func (UnimplementedAnalyticsServer) GetLeaderboard(context.Context, *LeaderboardRequest) (*LeaderboardResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLeaderboard not implemented")
}
func (UnimplementedAnalyticsServer) GetRecentSessions(context.Context, *RecentSessionsRequest) (*RecentSessionsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetRecentSessions not implemented")
}
func (UnimplementedAnalyticsServer) GetSessionAnalysis(context.Context, *SessionAnalysisRequest) (*SessionAnalysisResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetSessionAnalysis not implemented")
}
func (UnimplementedAnalyticsServer) GetShotDistribution(context.Context, *ShotDistributionRequest) (*ShotDistributionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetShotDistribution not implemented")
}
func (UnimplementedAnalyticsServer) GetScoreTrend(context.Context, *ScoreTrendRequest) (*ScoreTrendResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetScoreTrend not implemented")
}
func (UnimplementedAnalyticsServer) mustEmbedUnimplementedAnalyticsServer() {}

func RegisterAnalyticsServer(s grpc.ServiceRegistrar, srv AnalyticsServer) {
	s.RegisterService(&Analytics_ServiceDesc, srv)
}

// unaryHandler adapts a typed method to grpc.MethodHandler.
func unaryHandler[Req any, Resp any](method string, call func(AnalyticsServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AnalyticsServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AnalyticsServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var Analytics_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "shotstats.v1.Analytics",
	HandlerType: (*AnalyticsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetDashboardStats",
			Handler:    unaryHandler(Analytics_GetDashboardStats_FullMethodName, AnalyticsServer.GetDashboardStats),
		},
		{
			MethodName: "GetTrend",
			Handler:    unaryHandler(Analytics_GetTrend_FullMethodName, AnalyticsServer.GetTrend),
		},
		{
			MethodName: "GetLeaderboard",
			Handler:    unaryHandler(Analytics_GetLeaderboard_FullMethodName, AnalyticsServer.GetLeaderboard),
		},
		{
			MethodName: "GetRecentSessions",
			Handler:    unaryHandler(Analytics_GetRecentSessions_FullMethodName, AnalyticsServer.GetRecentSessions),
		},
		{
			MethodName: "GetSessionAnalysis",
			Handler:    unaryHandler(Analytics_GetSessionAnalysis_FullMethodName, AnalyticsServer.GetSessionAnalysis),
		},
		{
			MethodName: "GetShotDistribution",
			Handler:    unaryHandler(Analytics_GetShotDistribution_FullMethodName, AnalyticsServer.GetShotDistribution),
		},
		{
			MethodName: "GetScoreTrend",
			Handler:    unaryHandler(Analytics_GetScoreTrend_FullMethodName, AnalyticsServer.GetScoreTrend),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shotstats/v1/analytics",
}
