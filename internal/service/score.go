package service

import (
	"math"
	"strings"

	"MatchServer/model"
)

// earthRadiusKm 地球半径，大圆距离计算用
const earthRadiusKm = 6371.0

// haversineKm 计算两点间大圆距离（公里）
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// intersects 判断两个标签集合是否存在交集（大小写不敏感）
func intersects(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, item := range a {
		set[strings.ToLower(item)] = struct{}{}
	}
	for _, item := range b {
		if _, ok := set[strings.ToLower(item)]; ok {
			return true
		}
	}
	return false
}

// intentFlags 意向三元组
type intentFlags struct {
	friendship bool
	romance    bool
	poly       bool
}

// anySet 是否至少设置了一个意向
func (f intentFlags) anySet() bool {
	return f.friendship || f.romance || f.poly
}

// allIntents 全意向（意向未知时的兜底）
var allIntents = intentFlags{friendship: true, romance: true, poly: true}

// intentsOf 从画像提取意向，全 false 视为未设置并按全意向处理
func intentsOf(profile *model.UserProfile) intentFlags {
	flags := intentFlags{
		friendship: profile.WantFriendship,
		romance:    profile.WantRomance,
		poly:       profile.WantPoly,
	}
	if !flags.anySet() {
		return allIntents
	}
	return flags
}

// intentOverlap 双方同时期望的意向数量（0-3）
func intentOverlap(a, b intentFlags) int {
	overlap := 0
	if a.friendship && b.friendship {
		overlap++
	}
	if a.romance && b.romance {
		overlap++
	}
	if a.poly && b.poly {
		overlap++
	}
	return overlap
}

// completenessRatio 候选人资料完整度（0-1），按 简介/城市/取向 三项计
func completenessRatio(profile *model.UserProfile) float64 {
	present := 0
	if strings.TrimSpace(profile.Bio) != "" {
		present++
	}
	if strings.TrimSpace(profile.City) != "" {
		present++
	}
	if len(profile.Orientations) > 0 {
		present++
	}
	return float64(present) / 3
}
