// Package v1 is the wire contract of the shotstats.v1.Analytics service.
// Messages are plain structs encoded with the JSON codec registered in this
// package.
package v1

type DashboardStatsRequest struct {
	UserId    int64  `json:"user_id"`
	TimeRange string `json:"time_range,omitempty"`
}

func (r *DashboardStatsRequest) GetUserId() int64 {
	if r == nil {
		return 0
	}
	return r.UserId
}

func (r *DashboardStatsRequest) GetTimeRange() string {
	if r == nil {
		return ""
	}
	return r.TimeRange
}

type DashboardStatsResponse struct {
	TotalSessions      int64   `json:"total_sessions"`
	TotalShots         int64   `json:"total_shots"`
	AverageScore       string  `json:"average_score"`
	BestScore          string  `json:"best_score"`
	AverageScoreNormal string  `json:"average_score_normal"`
	BestScoreNormal    string  `json:"best_score_normal"`
	BestTeiler         *string `json:"best_teiler"`
	AvgSpread          *string `json:"avg_spread"`
	AvgOffset          *Offset `json:"avg_offset"`
}

type Offset struct {
	X          string `json:"x"`
	Y          string `json:"y"`
	Distance   string `json:"distance"`
	DirectionX string `json:"direction_x"`
	DirectionY string `json:"direction_y"`
}

type TrendRequest struct {
	UserId int64  `json:"user_id"`
	Metric string `json:"metric,omitempty"`
	Period string `json:"period,omitempty"`
	Limit  int32  `json:"limit,omitempty"`
}

func (r *TrendRequest) GetUserId() int64 {
	if r == nil {
		return 0
	}
	return r.UserId
}

type TrendResponse struct {
	Metric        string        `json:"metric"`
	Period        string        `json:"period"`
	TotalSessions int64         `json:"total_sessions"`
	Points        []*TrendPoint `json:"points"`
}

type TrendPoint struct {
	Period string  `json:"period"`
	Key    string  `json:"key"`
	Value  float64 `json:"value"`
	Count  int64   `json:"count"`
	Date   string  `json:"date"`
}

type LeaderboardRequest struct {
	SortBy    string `json:"sort_by,omitempty"`
	TimeRange string `json:"time_range,omitempty"`
	Limit     int32  `json:"limit,omitempty"`
}

type LeaderboardResponse struct {
	Entries      []*LeaderboardEntry `json:"entries"`
	TotalPlayers int64               `json:"total_players"`
	SortBy       string              `json:"sort_by"`
	TimeRange    string              `json:"time_range"`
	GeneratedAt  string              `json:"generated_at"`
}

type LeaderboardEntry struct {
	Rank             int32    `json:"rank"`
	UserId           int64    `json:"user_id"`
	Username         string   `json:"username"`
	Firstname        string   `json:"firstname"`
	Lastname         string   `json:"lastname"`
	TotalSessions    int64    `json:"total_sessions"`
	TotalShots       int64    `json:"total_shots"`
	AvgScore         float64  `json:"avg_score"`
	BestSessionScore float64  `json:"best_session_score"`
	BestTeiler       *float64 `json:"best_teiler"`
	MemberSince      string   `json:"member_since"`
}

type RecentSessionsRequest struct {
	UserId    int64  `json:"user_id"`
	TimeRange string `json:"time_range,omitempty"`
	Page      int32  `json:"page,omitempty"`
	PerPage   int32  `json:"per_page,omitempty"`
}

func (r *RecentSessionsRequest) GetUserId() int64 {
	if r == nil {
		return 0
	}
	return r.UserId
}

type RecentSessionsResponse struct {
	Sessions   []*RecentSession `json:"sessions"`
	Pagination *Pagination      `json:"pagination"`
}

type RecentSession struct {
	SessionId        string          `json:"session_id"`
	SessionDate      string          `json:"session_date"`
	Discipline       string          `json:"discipline"`
	ShotsCount       int64           `json:"shots_count"`
	TotalScore       float64         `json:"total_score"`
	TotalScoreNormal int64           `json:"total_score_normal"`
	Analysis         *SessionMetrics `json:"analysis,omitempty"`
}

type SessionMetrics struct {
	BestTeiler float64  `json:"best_teiler"`
	AvgTeiler  *float64 `json:"avg_teiler"`
	Spread     *float64 `json:"spread"`
	Offset     *float64 `json:"offset"`
	DirectionX string   `json:"direction_x,omitempty"`
	DirectionY string   `json:"direction_y,omitempty"`
	Angle      float64  `json:"angle,omitempty"`
}

type Pagination struct {
	Page       int64 `json:"page"`
	PerPage    int64 `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

type SessionAnalysisRequest struct {
	SessionId string `json:"session_id"`
}

func (r *SessionAnalysisRequest) GetSessionId() string {
	if r == nil {
		return ""
	}
	return r.SessionId
}

type SessionAnalysisResponse struct {
	SessionId    string                `json:"session_id"`
	ShooterId    string                `json:"shooter_id"`
	SessionDate  string                `json:"session_date"`
	Discipline   string                `json:"discipline"`
	Target       string                `json:"target"`
	TotalScore   float64               `json:"total_score"`
	Rings        []*Ring               `json:"rings"`
	Shots        []*Shot               `json:"shots"`
	Analysis     *GroupAnalysis        `json:"analysis"`
	BestPair     *TeilerPair           `json:"best_pair,omitempty"`
	Distribution []*DistributionBucket `json:"distribution"`
}

type Ring struct {
	Value    int32   `json:"value"`
	Radius   float64 `json:"radius"`
	Color    string  `json:"color"`
	InnerTen bool    `json:"inner_ten,omitempty"`
}

type Shot struct {
	Number   int32    `json:"number"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Ring     int32    `json:"ring"`
	Ring01   float64  `json:"ring01"`
	Teiler01 *float64 `json:"teiler01"`
	InnerTen bool     `json:"inner_ten"`
	Color    string   `json:"color"`
}

type GroupAnalysis struct {
	Teiler   *TeilerStats `json:"teiler"`
	Spread   *Spread      `json:"spread"`
	Center   *Center      `json:"center"`
	Tendency *Tendency    `json:"tendency"`
}

type TeilerStats struct {
	Best               float64 `json:"best"`
	Worst              float64 `json:"worst"`
	Average            float64 `json:"average"`
	FromExternalSource bool    `json:"from_external_source"`
}

type Spread struct {
	XStd   float64 `json:"x_std"`
	YStd   float64 `json:"y_std"`
	Total  float64 `json:"total"`
	Radius float64 `json:"radius"`
}

type Center struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Offset     float64 `json:"offset"`
	DirectionX string  `json:"direction_x"`
	DirectionY string  `json:"direction_y"`
	Angle      float64 `json:"angle"`
	Label      string  `json:"label"`
}

type Tendency struct {
	TopRight    int32  `json:"top_right"`
	TopLeft     int32  `json:"top_left"`
	BottomLeft  int32  `json:"bottom_left"`
	BottomRight int32  `json:"bottom_right"`
	Dominant    string `json:"dominant"`
}

type TeilerPair struct {
	Distance float64 `json:"distance"`
	FromShot int32   `json:"from_shot"`
	ToShot   int32   `json:"to_shot"`
}

type DistributionBucket struct {
	Ring  int32 `json:"ring"`
	Count int32 `json:"count"`
}

type ShotDistributionRequest struct {
	UserId int64 `json:"user_id"`
}

func (r *ShotDistributionRequest) GetUserId() int64 {
	if r == nil {
		return 0
	}
	return r.UserId
}

type ShotDistributionResponse struct {
	Buckets []*DistributionBucket `json:"buckets"`
}

type ScoreTrendRequest struct {
	UserId int64 `json:"user_id"`
}

func (r *ScoreTrendRequest) GetUserId() int64 {
	if r == nil {
		return 0
	}
	return r.UserId
}

type ScoreTrendResponse struct {
	Points []*ScorePoint `json:"points"`
}

type ScorePoint struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
}
