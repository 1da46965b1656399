package grpc

import (
	"time"

	pb "github.com/godilite/shotstats/api/v1"
	"github.com/godilite/shotstats/internal/analysis"
	"github.com/godilite/shotstats/internal/service"
	"github.com/godilite/shotstats/internal/target"
)

func toDashboardProto(s service.DashboardStats) *pb.DashboardStatsResponse {
	out := &pb.DashboardStatsResponse{
		TotalSessions:      int64(s.TotalSessions),
		TotalShots:         int64(s.TotalShots),
		AverageScore:       s.AverageScore,
		BestScore:          s.BestScore,
		AverageScoreNormal: s.AverageScoreNormal,
		BestScoreNormal:    s.BestScoreNormal,
		BestTeiler:         s.BestTeiler,
		AvgSpread:          s.AvgSpread,
	}
	if o := s.AvgOffset; o != nil {
		out.AvgOffset = &pb.Offset{
			X:          o.X,
			Y:          o.Y,
			Distance:   o.Distance,
			DirectionX: o.Direction.X,
			DirectionY: o.Direction.Y,
		}
	}
	return out
}

func toTrendProto(s service.TrendSeries) *pb.TrendResponse {
	points := make([]*pb.TrendPoint, len(s.Points))
	for i, p := range s.Points {
		points[i] = &pb.TrendPoint{
			Period: p.Period,
			Key:    p.Key,
			Value:  p.Value,
			Count:  int64(p.Count),
			Date:   p.Date.Format(time.DateOnly),
		}
	}
	return &pb.TrendResponse{
		Metric:        string(s.Metric),
		Period:        string(s.Period),
		TotalSessions: int64(s.TotalSessions),
		Points:        points,
	}
}

func toLeaderboardProto(b service.Leaderboard) *pb.LeaderboardResponse {
	entries := make([]*pb.LeaderboardEntry, len(b.Entries))
	for i, e := range b.Entries {
		entries[i] = &pb.LeaderboardEntry{
			Rank:             int32(e.Rank),
			UserId:           e.UserID,
			Username:         e.Username,
			Firstname:        e.Firstname,
			Lastname:         e.Lastname,
			TotalSessions:    int64(e.TotalSessions),
			TotalShots:       int64(e.TotalShots),
			AvgScore:         e.AvgScore,
			BestSessionScore: e.BestSessionScore,
			BestTeiler:       e.BestTeiler,
			MemberSince:      e.MemberSince.UTC().Format(time.RFC3339),
		}
	}
	return &pb.LeaderboardResponse{
		Entries:      entries,
		TotalPlayers: int64(b.TotalPlayers),
		SortBy:       string(b.SortBy),
		TimeRange:    b.TimeRange,
		GeneratedAt:  b.GeneratedAt.UTC().Format(time.RFC3339),
	}
}

func toRecentSessionsProto(p service.RecentSessionsPage) *pb.RecentSessionsResponse {
	sessions := make([]*pb.RecentSession, len(p.Sessions))
	for i, s := range p.Sessions {
		row := &pb.RecentSession{
			SessionId:        s.SessionID,
			SessionDate:      s.SessionDate.UTC().Format(time.RFC3339),
			Discipline:       s.Discipline,
			ShotsCount:       int64(s.ShotsCount),
			TotalScore:       s.TotalScore,
			TotalScoreNormal: int64(s.TotalScoreNormal),
		}
		if a := s.Analysis; a != nil {
			row.Analysis = &pb.SessionMetrics{
				BestTeiler: a.BestTeiler,
				AvgTeiler:  a.AvgTeiler,
				Spread:     a.Spread,
				Offset:     a.Offset,
			}
			if d := a.Direction; d != nil {
				row.Analysis.DirectionX = d.X
				row.Analysis.DirectionY = d.Y
				row.Analysis.Angle = d.Angle
			}
		}
		sessions[i] = row
	}

	pg := p.Pagination
	return &pb.RecentSessionsResponse{
		Sessions: sessions,
		Pagination: &pb.Pagination{
			Page:       int64(pg.Page),
			PerPage:    int64(pg.PerPage),
			Total:      int64(pg.Total),
			TotalPages: int64(pg.TotalPages),
			HasNext:    pg.HasNext,
			HasPrev:    pg.HasPrev,
		},
	}
}

func toSessionAnalysisProto(d service.SessionDetail) *pb.SessionAnalysisResponse {
	rings := make([]*pb.Ring, len(d.Rings))
	for i, r := range d.Rings {
		rings[i] = &pb.Ring{Value: int32(r.Value), Radius: r.Radius, Color: r.Color, InnerTen: r.InnerTen}
	}

	shots := make([]*pb.Shot, len(d.Shots))
	for i, s := range d.Shots {
		shots[i] = &pb.Shot{
			Number:   int32(s.Number),
			X:        s.X,
			Y:        s.Y,
			Ring:     int32(s.Ring),
			Ring01:   s.Ring01,
			Teiler01: s.Teiler01,
			InnerTen: s.InnerTen,
			Color:    target.ScoreColor(s.Ring01),
		}
	}

	out := &pb.SessionAnalysisResponse{
		SessionId:    d.SessionID,
		ShooterId:    d.ShooterID,
		SessionDate:  d.SessionDate.UTC().Format(time.RFC3339),
		Discipline:   d.Discipline,
		Target:       string(d.Target),
		TotalScore:   d.TotalScore,
		Rings:        rings,
		Shots:        shots,
		Analysis:     toAnalysisProto(d.Analysis),
		Distribution: toDistributionProto(d.Distribution),
	}
	if p := d.BestPair; p != nil {
		out.BestPair = &pb.TeilerPair{Distance: p.Distance, FromShot: int32(p.FromShot), ToShot: int32(p.ToShot)}
	}
	return out
}

func toAnalysisProto(a *analysis.Analysis) *pb.GroupAnalysis {
	if a == nil {
		return nil
	}
	dist := a.Tendency.QuadrantDistribution
	return &pb.GroupAnalysis{
		Teiler: &pb.TeilerStats{
			Best:               a.Teiler.Best,
			Worst:              a.Teiler.Worst,
			Average:            a.Teiler.Average,
			FromExternalSource: a.Teiler.FromExternalSource,
		},
		Spread: &pb.Spread{
			XStd:   a.Spread.XStd,
			YStd:   a.Spread.YStd,
			Total:  a.Spread.Total,
			Radius: a.Spread.Radius,
		},
		Center: &pb.Center{
			X:          a.Center.X,
			Y:          a.Center.Y,
			Offset:     a.Center.Offset,
			DirectionX: a.Center.Direction.X,
			DirectionY: a.Center.Direction.Y,
			Angle:      a.Center.Direction.Angle,
			Label:      analysis.FormatDirection(a.Center.X, a.Center.Y),
		},
		Tendency: &pb.Tendency{
			TopRight:    int32(dist.TopRight),
			TopLeft:     int32(dist.TopLeft),
			BottomLeft:  int32(dist.BottomLeft),
			BottomRight: int32(dist.BottomRight),
			Dominant:    string(a.Tendency.Dominant),
		},
	}
}

func toDistributionProto(buckets []analysis.DistributionBucket) []*pb.DistributionBucket {
	out := make([]*pb.DistributionBucket, len(buckets))
	for i, b := range buckets {
		out[i] = &pb.DistributionBucket{Ring: int32(b.Ring), Count: int32(b.Count)}
	}
	return out
}
