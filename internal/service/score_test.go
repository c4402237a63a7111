package service

import (
	"testing"

	"MatchServer/model"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	// 对称性
	d1 := haversineKm(52.52, 13.405, 48.137, 11.575) // Berlin -> Munich
	d2 := haversineKm(48.137, 11.575, 52.52, 13.405)
	assert.InDelta(t, d1, d2, 1e-9)

	// Berlin-Munich 实际大圆距离约 504km
	assert.InDelta(t, 504, d1, 5)

	// 同点为零
	assert.Zero(t, haversineKm(52.52, 13.405, 52.52, 13.405))
}

func TestIntersects(t *testing.T) {
	assert.True(t, intersects([]string{"Gay", "queer"}, []string{"GAY"}))
	assert.False(t, intersects([]string{"lesbian"}, []string{"gay"}))
	// 任一侧为空都不算交集
	assert.False(t, intersects(nil, []string{"gay"}))
	assert.False(t, intersects([]string{"gay"}, nil))
}

func TestIntentsOf_AllFalseMeansUnset(t *testing.T) {
	// 三项全关视为未设置，按全意向兜底
	unset := intentsOf(&model.UserProfile{})
	assert.Equal(t, allIntents, unset)

	romance := intentsOf(&model.UserProfile{WantRomance: true})
	assert.Equal(t, intentFlags{romance: true}, romance)

	// 未设置的一方与任何人都有完全重叠
	assert.Equal(t, 1, intentOverlap(unset, romance))
	assert.Equal(t, 3, intentOverlap(unset, allIntents))
}

func TestCompletenessRatio(t *testing.T) {
	assert.Zero(t, completenessRatio(&model.UserProfile{}))
	assert.InDelta(t, 1.0/3, completenessRatio(&model.UserProfile{Bio: "hi"}), 1e-9)
	full := &model.UserProfile{
		Bio:          "hi",
		City:         "Berlin",
		Orientations: []model.OrientationTag{{Name: "queer"}},
	}
	assert.InDelta(t, 1.0, completenessRatio(full), 1e-9)
}
