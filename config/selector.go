package config

// SelectorConfig 候选人筛选评分策略。
// 权重与阈值来源于线上调参结果，没有领域上的必然性，按配置处理。
type SelectorConfig struct {
	OrientationPoints  int `json:"orientationPoints" yaml:"orientationPoints"`   // 取向匹配满分
	DistancePoints     int `json:"distancePoints" yaml:"distancePoints"`         // 距离满分
	DistanceUnknownPts int `json:"distanceUnknownPts" yaml:"distanceUnknownPts"` // 任一方缺坐标时的固定分
	IntentPoints       int `json:"intentPoints" yaml:"intentPoints"`             // 意向重叠满分
	AgePoints          int `json:"agePoints" yaml:"agePoints"`                   // 年龄接近满分
	AgeUnknownPts      int `json:"ageUnknownPts" yaml:"ageUnknownPts"`           // 任一方缺年龄时的固定分
	CompletenessPoints int `json:"completenessPoints" yaml:"completenessPoints"` // 资料完整度满分

	AcceptThreshold int `json:"acceptThreshold" yaml:"acceptThreshold"` // 准入阈值（<= 阈值丢弃）
	PoolLimit       int `json:"poolLimit" yaml:"poolLimit"`             // 过滤前原始候选池上限
	DefaultLimit    int `json:"defaultLimit" yaml:"defaultLimit"`       // 未指定 limit 时的返回条数

	DefaultMaxDistanceKm float64 `json:"defaultMaxDistanceKm" yaml:"defaultMaxDistanceKm"` // 未配置最大距离时的默认值
	DefaultAgeRangeWidth int     `json:"defaultAgeRangeWidth" yaml:"defaultAgeRangeWidth"` // 未配置年龄区间宽度时的默认值
}

// DefaultSelectorConfig 返回与线上一致的默认策略。
// 注意：PoolLimit 在过滤前生效，候选池靠后的兼容用户可能取不到，
// 这是沿用线上的既有行为，不要在这里"顺手修复"。
func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{
		OrientationPoints:  30,
		DistancePoints:     25,
		DistanceUnknownPts: 15,
		IntentPoints:       20,
		AgePoints:          15,
		AgeUnknownPts:      10,
		CompletenessPoints: 10,

		AcceptThreshold: 30,
		PoolLimit:       20,
		DefaultLimit:    10,

		DefaultMaxDistanceKm: 100,
		DefaultAgeRangeWidth: 10,
	}
}
