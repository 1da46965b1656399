package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestJSONCodecRegistered(t *testing.T) {
	codec := encoding.GetCodec(CodecName)
	require.NotNil(t, codec)

	teiler := "4.2"
	data, err := codec.Marshal(&DashboardStatsResponse{TotalSessions: 3, BestTeiler: &teiler})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"best_teiler":"4.2"`)

	var out DashboardStatsResponse
	require.NoError(t, codec.Unmarshal(data, &out))
	assert.EqualValues(t, 3, out.TotalSessions)
	assert.Equal(t, "4.2", *out.BestTeiler)
}

func TestNilRequestGetters(t *testing.T) {
	var req *DashboardStatsRequest
	assert.Zero(t, req.GetUserId())
	assert.Empty(t, req.GetTimeRange())
}
